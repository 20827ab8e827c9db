package assemble

import "pipestage/pkg/domain"

// Insert splices node into list at the index the position resolves to for
// the list's current length. Suppressed positions leave the list
// unchanged.
func Insert(list []Node, node Node, pos domain.Position) []Node {
	idx, ok := pos.Index(len(list))
	if !ok {
		return list
	}
	out := make([]Node, 0, len(list)+1)
	out = append(out, list[:idx]...)
	out = append(out, node)
	out = append(out, list[idx:]...)
	return out
}
