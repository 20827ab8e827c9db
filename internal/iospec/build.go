package iospec

import (
	"fmt"
	"strings"

	"pipestage/internal/naming"
	"pipestage/pkg/domain"
)

// Build normalizes a run request into an IODescriptor against the module
// template: template defaults fill missing fields, bare file names are
// qualified against the request directories, the sample ID is inferred
// when absent, and empty output names are defaulted from the sample ID and
// the template's output file type.
func Build(req *RunRequest, tmpl *domain.Template) (*domain.IODescriptor, error) {
	inputs, err := qualify(req.Input, req.InputDir, "input")
	if err != nil {
		return nil, err
	}
	if len(inputs) == 0 {
		return nil, domain.NewConfigError("run request has no input files", nil)
	}

	sampleID := req.SampleID
	if sampleID == "" {
		sampleID = naming.InferSampleID(naming.FileOnly(inputs[0]))
	}

	outputs := []string(req.Output)
	altInputs := []string(req.AlternateInputs)
	altOutputs := []string(req.AlternateOutputs)
	if d := tmpl.Defaults; d != nil {
		if len(outputs) == 0 && d.OutputFile != "" {
			outputs = []string{expandSampleID(d.OutputFile, sampleID)}
		}
		if len(altInputs) == 0 {
			altInputs = d.AlternateInputs
		}
		if len(altOutputs) == 0 {
			altOutputs = d.AlternateOutputs
		}
	}
	if len(outputs) == 0 {
		if name := defaultOutputName(sampleID, tmpl.OutputSlots); name != "" {
			outputs = []string{name}
		}
	}
	for i, name := range outputs {
		outputs[i] = formatOutputName(name, sampleID, tmpl.OutputSlots)
	}

	outputs, err = qualify(outputs, req.OutputDir, "output")
	if err != nil {
		return nil, err
	}
	altInputs, err = qualify(altInputs, req.InputDir, "alternate input")
	if err != nil {
		return nil, err
	}
	altOutputs, err = qualify(altOutputs, req.OutputDir, "alternate output")
	if err != nil {
		return nil, err
	}

	return &domain.IODescriptor{
		SampleID:               sampleID,
		PrimaryInputs:          inputs,
		PrimaryOutputs:         outputs,
		AlternateInputs:        altInputs,
		AlternateOutputs:       altOutputs,
		ProgramNameOverride:    req.ProgramName,
		ProgramSubnameOverride: req.ProgramSubname,
		BaseArgumentsOverride:  req.Pargs,
		Options:                req.Options,
		DryRun:                 bool(req.DryRun),
	}, nil
}

// qualify turns bare file names into full paths under dir. Names that
// already carry a path pass through. A bare name with no directory to
// resolve against is a configuration error.
func qualify(names []string, dir, kind string) ([]string, error) {
	out := make([]string, 0, len(names))
	for _, name := range names {
		if strings.Contains(name, "/") {
			out = append(out, name)
			continue
		}
		if dir == "" {
			return nil, domain.NewConfigError(
				fmt.Sprintf("%s file %q is a bare name and no directory was given", kind, name), nil)
		}
		out = append(out, naming.FullPath(dir, name))
	}
	return out, nil
}

// formatOutputName defaults an empty output name to <sample>.<type> when
// the template declares an output file type; a name without an extension
// gets the type appended. Untyped slots pass names through unchanged.
func formatOutputName(name, sampleID string, slots []domain.Slot) string {
	fileType := firstFileType(slots)
	if name == "" {
		if fileType == "" {
			return ""
		}
		return sampleID + "." + fileType
	}
	if fileType != "" && !strings.Contains(naming.FileOnly(name), ".") {
		return name + "." + fileType
	}
	return name
}

func defaultOutputName(sampleID string, slots []domain.Slot) string {
	if fileType := firstFileType(slots); fileType != "" {
		return sampleID + "." + fileType
	}
	return ""
}

func firstFileType(slots []domain.Slot) string {
	for _, s := range slots {
		if s.FileType != "" {
			return strings.ToLower(s.FileType)
		}
	}
	return ""
}

func expandSampleID(pattern, sampleID string) string {
	return strings.ReplaceAll(pattern, "<sample_id>", sampleID)
}
