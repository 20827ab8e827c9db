package core

import "strings"

type patternKind int

const (
	patternContains patternKind = iota
	patternSuffix
	patternPrefix
	patternInfix
)

// Pattern is a parsed caret-delimited file name pattern:
//
//	"^.bam"   suffix  - name ends with ".bam"
//	"hepg2^"  prefix  - name starts with "hepg2"
//	"^R1^"    infix   - name contains "R1" as a separated extension
//	          segment (preceded by one of '_', '-', '.')
//	"I1"      contains - name contains "I1" anywhere
//
// Each pattern is parsed once; matching never re-parses.
type Pattern struct {
	kind patternKind
	text string
}

// ParsePattern parses the caret notation into a Pattern.
func ParsePattern(s string) Pattern {
	lead := strings.HasPrefix(s, "^")
	trail := strings.HasSuffix(s, "^") && len(s) > 1
	switch {
	case lead && trail:
		return Pattern{kind: patternInfix, text: strings.Trim(s, "^")}
	case lead:
		return Pattern{kind: patternSuffix, text: strings.TrimPrefix(s, "^")}
	case trail:
		return Pattern{kind: patternPrefix, text: strings.TrimSuffix(s, "^")}
	default:
		return Pattern{kind: patternContains, text: s}
	}
}

// ParsePatterns parses every pattern in order.
func ParsePatterns(ss []string) []Pattern {
	out := make([]Pattern, len(ss))
	for i, s := range ss {
		out[i] = ParsePattern(s)
	}
	return out
}

// Match reports whether a file name matches the pattern.
func (p Pattern) Match(name string) bool {
	switch p.kind {
	case patternSuffix:
		return strings.HasSuffix(name, p.text)
	case patternPrefix:
		return strings.HasPrefix(name, p.text)
	case patternInfix:
		for _, sep := range []string{"_", "-", "."} {
			if strings.Contains(name, sep+p.text) {
				return true
			}
		}
		return false
	default:
		return strings.Contains(name, p.text)
	}
}

// MatchAll reports whether the name matches every pattern. An empty
// pattern list matches everything.
func MatchAll(name string, patterns []Pattern) bool {
	for _, p := range patterns {
		if !p.Match(name) {
			return false
		}
	}
	return true
}

// Selected applies include/exclude pattern lists: a name is selected when
// it matches all include patterns (or none were given) and the exclude
// list, if given, does not fully match it.
func Selected(name string, include, exclude []Pattern) bool {
	if len(include) > 0 && !MatchAll(name, include) {
		return false
	}
	if len(exclude) > 0 && MatchAll(name, exclude) {
		return false
	}
	return true
}
