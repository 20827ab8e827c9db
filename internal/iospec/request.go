// Package iospec parses run requests and normalizes them into IO
// descriptors. A run request is the JSON document a caller submits for one
// job: primary input/output files, optional directories the bare names
// resolve against, alternates, and per-run overrides.
package iospec

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"pipestage/pkg/domain"
)

// RunRequest is the wire form of one job submission. File lists accept
// either a JSON array or a comma-separated string; dryrun accepts a bool
// or a string, where the bare flag convention (empty string) means true.
type RunRequest struct {
	ModuleName       string     `json:"module_name,omitempty"`
	ProgramName      string     `json:"program_name,omitempty"`
	ProgramSubname   string     `json:"program_subname,omitempty"`
	SampleID         string     `json:"sampleid,omitempty"`
	Input            StringList `json:"input"`
	Output           StringList `json:"output"`
	InputDir         string     `json:"inputdir,omitempty"`
	OutputDir        string     `json:"outputdir,omitempty"`
	AlternateInputs  StringList `json:"alternate_inputs,omitempty"`
	AlternateOutputs StringList `json:"alternate_outputs,omitempty"`
	Pargs            string     `json:"pargs,omitempty"`
	Options          string     `json:"options,omitempty"`
	DryRun           FlexBool   `json:"dryrun,omitempty"`
}

// ParseRequest decodes a run request document.
func ParseRequest(data []byte) (*RunRequest, error) {
	var req RunRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, domain.NewConfigError("run request malformed", err)
	}
	return &req, nil
}

// LoadRequest reads and decodes a run request file.
func LoadRequest(path string) (*RunRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, domain.NewConfigError(fmt.Sprintf("run request unreadable: %s", path), err)
	}
	return ParseRequest(data)
}

// StringList is a file list that unmarshals from a JSON array or a
// comma-separated string. Entries are trimmed; empties are dropped.
type StringList []string

func (l *StringList) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "[") {
		var raw []string
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		*l = cleanList(raw)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("file list must be a string or array: %w", err)
	}
	*l = cleanList(strings.Split(s, ","))
	return nil
}

func (l StringList) MarshalJSON() ([]byte, error) {
	return json.Marshal([]string(l))
}

func cleanList(raw []string) []string {
	var out []string
	for _, s := range raw {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// FlexBool unmarshals from a JSON bool or string. A present key with an
// empty string value reads as true, matching the bare-flag convention of
// submitted run documents.
type FlexBool bool

func (b *FlexBool) UnmarshalJSON(data []byte) error {
	switch strings.TrimSpace(string(data)) {
	case "true":
		*b = true
		return nil
	case "false", "null":
		*b = false
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("dryrun must be a bool or string: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "true", "yes", "1":
		*b = true
	default:
		*b = false
	}
	return nil
}
