package domain

import (
	"encoding/json"
	"fmt"
)

type positionKind int

const (
	positionAbsolute positionKind = iota
	positionAppend
	positionFromEnd
	positionSuppressed
)

// Position describes where a slot's token pair is inserted into the
// argument list. The wire format is the numeric scheme used by module
// templates:
//
//	n >= 0      absolute index from the start of the list
//	-1          append at the end
//	-99 < p < -1  end-relative: insert at max(0, len+p+1), so -2 lands
//	            immediately before the last element
//	anything else (including -100) suppresses insertion entirely
//
// Suppressed arguments are still staged; they just never appear on the
// command line.
type Position struct {
	kind   positionKind
	offset int
}

// AbsolutePosition returns a Position at absolute index n. Negative n is
// treated as suppressed.
func AbsolutePosition(n int) Position {
	if n < 0 {
		return SuppressedPosition()
	}
	return Position{kind: positionAbsolute, offset: n}
}

// AppendPosition returns the append-at-end Position (-1).
func AppendPosition() Position { return Position{kind: positionAppend, offset: -1} }

// FromEndPosition returns an end-relative Position for -99 < p < -1.
// Values outside that range are suppressed.
func FromEndPosition(p int) Position {
	if p >= -1 || p <= -99 {
		return SuppressedPosition()
	}
	return Position{kind: positionFromEnd, offset: p}
}

// SuppressedPosition returns the Position that never inserts.
func SuppressedPosition() Position { return Position{kind: positionSuppressed, offset: -100} }

// PositionFromInt decodes the numeric template scheme into a Position.
func PositionFromInt(n int) Position {
	switch {
	case n >= 0:
		return AbsolutePosition(n)
	case n == -1:
		return AppendPosition()
	case n > -99:
		return FromEndPosition(n)
	default:
		return Position{kind: positionSuppressed, offset: n}
	}
}

// IsSuppressed reports whether insertion is suppressed for this position.
func (p Position) IsSuppressed() bool { return p.kind == positionSuppressed }

// Index resolves the insertion index for a list of the given length. The
// second return is false when insertion is suppressed. End-relative
// positions clamp at zero, matching the behavior the numeric scheme was
// defined against.
func (p Position) Index(length int) (int, bool) {
	switch p.kind {
	case positionAbsolute:
		if p.offset > length {
			return length, true
		}
		return p.offset, true
	case positionAppend:
		return length, true
	case positionFromEnd:
		idx := length + p.offset + 1
		if idx < 0 {
			idx = 0
		}
		return idx, true
	default:
		return 0, false
	}
}

// Int returns the numeric wire value for the position.
func (p Position) Int() int {
	switch p.kind {
	case positionAbsolute:
		return p.offset
	case positionAppend:
		return -1
	case positionFromEnd:
		return p.offset
	default:
		return p.offset
	}
}

func (p Position) String() string {
	switch p.kind {
	case positionAbsolute:
		return fmt.Sprintf("absolute(%d)", p.offset)
	case positionAppend:
		return "append"
	case positionFromEnd:
		return fmt.Sprintf("from_end(%d)", p.offset)
	default:
		return "suppressed"
	}
}

// MarshalJSON encodes the numeric template scheme.
func (p Position) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.Int())
}

// UnmarshalJSON decodes the numeric template scheme.
func (p *Position) UnmarshalJSON(b []byte) error {
	var n int
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("position must be an integer: %w", err)
	}
	*p = PositionFromInt(n)
	return nil
}
