package domain

import "encoding/json"

// FilePathValue is a tagged variant over "one path" versus "an ordered
// sequence of paths". It replaces ad hoc runtime inspection of string vs
// list values in the documents this pipeline consumes.
type FilePathValue struct {
	paths    []string
	multiple bool
}

// SinglePath wraps one path.
func SinglePath(p string) FilePathValue {
	return FilePathValue{paths: []string{p}}
}

// MultiplePaths wraps an ordered sequence of paths. The slice is copied.
func MultiplePaths(ps []string) FilePathValue {
	cp := make([]string, len(ps))
	copy(cp, ps)
	return FilePathValue{paths: cp, multiple: true}
}

// IsZero reports whether the value holds no paths at all.
func (v FilePathValue) IsZero() bool { return len(v.paths) == 0 }

// IsMultiple reports whether the value was constructed as a sequence.
func (v FilePathValue) IsMultiple() bool { return v.multiple }

// First returns the first path, or "" when empty. Type inference only ever
// inspects the first path of a sequence.
func (v FilePathValue) First() string {
	if len(v.paths) == 0 {
		return ""
	}
	return v.paths[0]
}

// Paths returns a copy of the ordered path list.
func (v FilePathValue) Paths() []string {
	cp := make([]string, len(v.paths))
	copy(cp, v.paths)
	return cp
}

// Len returns the number of paths held.
func (v FilePathValue) Len() int { return len(v.paths) }

// MarshalJSON writes a bare string for single values and an array for
// sequences, mirroring the persisted document formats.
func (v FilePathValue) MarshalJSON() ([]byte, error) {
	if !v.multiple {
		return json.Marshal(v.First())
	}
	return json.Marshal(v.paths)
}

// UnmarshalJSON accepts either a bare string or an array of strings.
func (v *FilePathValue) UnmarshalJSON(b []byte) error {
	var one string
	if err := json.Unmarshal(b, &one); err == nil {
		*v = SinglePath(one)
		return nil
	}
	var many []string
	if err := json.Unmarshal(b, &many); err != nil {
		return err
	}
	*v = MultiplePaths(many)
	return nil
}
