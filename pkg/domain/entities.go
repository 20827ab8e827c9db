// Package domain defines the core value types shared by the pipestage
// staging and argument-assembly pipeline: tool templates, IO descriptors,
// resolved module instances, and the error kinds the run state machine
// surfaces.
package domain

// SlotKind identifies how a template slot's value is staged.
type SlotKind string

// Supported slot kinds. A file slot stages individual objects; a folder
// slot stages a whole prefix and is referenced by its local directory.
const (
	// SlotFile stages one or more individual files.
	SlotFile SlotKind = "file"
	// SlotFolder stages an entire folder.
	SlotFolder SlotKind = "folder"
)

// Slot is one template-declared command-line position, typed by file kind
// and type, with an insertion position and an optional prefix flag.
type Slot struct {
	// FileType is the canonical (uppercase) file type matched against
	// inferred input types. May be compound, e.g. "FASTQ.GZ". Empty for
	// untyped folder slots.
	FileType string   `json:"file_type"`
	Kind     SlotKind `json:"kind"`
	Position Position `json:"position"`
	Prefix   string   `json:"prefix"`
}

// TemplateDefaults carries optional per-module default IO declared by the
// template author, applied when the run request leaves them out.
type TemplateDefaults struct {
	OutputFile       string   `json:"output_file,omitempty"`
	AlternateInputs  []string `json:"alternate_inputs,omitempty"`
	AlternateOutputs []string `json:"alternate_outputs,omitempty"`
}

// Template is the declarative description of one tool module's argument
// slots. Immutable once fetched from the template store.
type Template struct {
	ProgramName    string `json:"program_name"`
	ProgramSubname string `json:"program_subname"`
	ProgramVersion string `json:"program_version"`
	ModuleVersion  string `json:"module_version"`
	// BaseArguments is the whitespace-delimited pre-IO argument string the
	// positional-insertion passes start from.
	BaseArguments        string            `json:"program_arguments"`
	InputSlots           []Slot            `json:"program_input"`
	OutputSlots          []Slot            `json:"program_output"`
	AlternateInputSlots  []Slot            `json:"alternate_inputs"`
	AlternateOutputSlots []Slot            `json:"alternate_outputs"`
	Options              string            `json:"options,omitempty"`
	Defaults             *TemplateDefaults `json:"defaults,omitempty"`
}

// IODescriptor is the canonical, normalized form of one run request.
// Built once per job and immutable after construction.
type IODescriptor struct {
	SampleID string `json:"sample_id"`
	// PrimaryInputs and PrimaryOutputs are full remote paths.
	PrimaryInputs    []string `json:"input"`
	PrimaryOutputs   []string `json:"output"`
	AlternateInputs  []string `json:"alternate_inputs"`
	AlternateOutputs []string `json:"alternate_outputs"`
	// ProgramNameOverride and ProgramSubnameOverride replace the template's
	// program name and subname when non-empty.
	ProgramNameOverride    string `json:"program_name,omitempty"`
	ProgramSubnameOverride string `json:"program_subname,omitempty"`
	// BaseArgumentsOverride replaces the template's program arguments when
	// non-empty (the request's "pargs" field).
	BaseArgumentsOverride string `json:"program_arguments"`
	Options               string `json:"options,omitempty"`
	DryRun                bool   `json:"dryrun,omitempty"`
}

// SlotBinding is one resolved (or deliberately unresolved) binding of
// descriptor files to a template slot. Files holds names only; Directory
// holds the remote folder they live in.
type SlotBinding struct {
	Slot      Slot          `json:"slot"`
	Files     FilePathValue `json:"files"`
	Directory string        `json:"directory"`
	// Resolved is false when no template slot matched the supplied file
	// type; the assembler skips unresolved bindings without error.
	Resolved bool `json:"resolved"`
}

// ModuleInstance is the per-job binding of a Template to a concrete
// IODescriptor. Created once by the slot matcher, consumed exactly once by
// the argument assembler, then kept only in the run log.
type ModuleInstance struct {
	ProgramName    string `json:"program_name"`
	ProgramSubname string `json:"program_subname"`
	ProgramVersion string `json:"program_version"`
	ModuleVersion  string `json:"module_version"`
	BaseArguments  string `json:"program_arguments"`
	Options        string `json:"options,omitempty"`
	SampleID       string `json:"sample_id"`
	DryRun         bool   `json:"dryrun,omitempty"`

	Input            SlotBinding   `json:"program_input"`
	Output           SlotBinding   `json:"program_output"`
	AlternateInputs  []SlotBinding `json:"alternate_inputs"`
	AlternateOutputs []SlotBinding `json:"alternate_outputs"`
}

// DryRunMarker is the literal token appended to an assembled command when
// the run is a dry run. Consumers detect the marker instead of executing.
const DryRunMarker = "-dryrun"
