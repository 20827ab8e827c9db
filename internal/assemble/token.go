// Package assemble binds IO descriptors to template slots and builds the
// final command line. Argument lists are trees of tokens: a slot inserts
// its prefix and values as one group occupying a single position, and the
// finished tree is flattened depth-first into the command tokens.
package assemble

import "strings"

// Node is one argument token or a nested group of tokens.
type Node struct {
	value    string
	children []Node
	group    bool
}

// Leaf wraps a single token.
func Leaf(s string) Node { return Node{value: s} }

// Group wraps tokens that travel together through positional insertion,
// e.g. a prefix flag and its value.
func Group(nodes ...Node) Node { return Node{children: nodes, group: true} }

// Leaves splits a whitespace-delimited argument string into leaf tokens.
// A plain space split keeps positions stable against the numeric position
// scheme; empty tokens are dropped later by Flatten.
func Leaves(args string) []Node {
	if args == "" {
		return nil
	}
	parts := strings.Split(args, " ")
	nodes := make([]Node, len(parts))
	for i, p := range parts {
		nodes[i] = Leaf(p)
	}
	return nodes
}

// Flatten walks the tree depth-first and returns the token list, dropping
// empty leaves. Nesting depth is unbounded.
func Flatten(nodes []Node) []string {
	var out []string
	for _, n := range nodes {
		if n.group {
			out = append(out, Flatten(n.children)...)
			continue
		}
		if n.value != "" {
			out = append(out, n.value)
		}
	}
	return out
}
