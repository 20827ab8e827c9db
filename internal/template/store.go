// Package template fetches and decodes module templates. A template is a
// JSON document named <module>.template.json under the configured template
// root, describing a tool's program name, base arguments, and typed IO
// slots.
package template

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"pipestage/internal/ctxlog"
	"pipestage/internal/naming"
	"pipestage/internal/transfer"
	"pipestage/pkg/domain"
)

// Store fetches module templates from the configured template root, local
// or remote.
type Store struct {
	svc  *transfer.Service
	root string
}

// NewStore creates a template store over the transfer service.
func NewStore(svc *transfer.Service, root string) *Store {
	return &Store{svc: svc, root: root}
}

// Fetch stages the template for module into workDir and decodes it. In
// mock mode no transfer happens, so the template root must be a local
// folder and is read in place.
func (s *Store) Fetch(ctx context.Context, module, workDir string) (*domain.Template, error) {
	remote := naming.TemplatePath(s.root, module)
	ctxlog.FromContext(ctx).Info("fetching template", "module", module, "path", remote)
	local := remote
	if !s.svc.MockMode() {
		var err error
		local, err = s.svc.DownloadFile(ctx, remote, workDir)
		if err != nil {
			return nil, domain.NewConfigError(fmt.Sprintf("template for %s not found at %s", module, remote), err)
		}
	}
	data, err := os.ReadFile(local)
	if err != nil {
		return nil, domain.NewConfigError(fmt.Sprintf("template for %s unreadable at %s", module, local), err)
	}
	return Parse(data)
}

// Parse decodes and validates a template document.
func Parse(data []byte) (*domain.Template, error) {
	var doc templateDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, domain.NewConfigError("template malformed", err)
	}
	tmpl := doc.toTemplate()
	if err := validate(tmpl); err != nil {
		return nil, err
	}
	return tmpl, nil
}

func validate(t *domain.Template) error {
	if t.ProgramName == "" {
		return domain.NewConfigError("template missing program_name", nil)
	}
	if len(t.InputSlots) == 0 {
		return domain.NewConfigError("template missing program_input", nil)
	}
	if len(t.OutputSlots) == 0 {
		return domain.NewConfigError("template missing program_output", nil)
	}
	for _, slot := range append(append([]domain.Slot{}, t.InputSlots...), t.AlternateInputSlots...) {
		if slot.Kind != domain.SlotFile && slot.Kind != domain.SlotFolder {
			return domain.NewConfigError(fmt.Sprintf("template slot has unknown kind %q", slot.Kind), nil)
		}
	}
	return nil
}

// templateDoc is the wire form. Slot fields are prefixed input_/output_ in
// the stored JSON; decoding maps them onto domain.Slot and canonicalizes
// file types to uppercase.
type templateDoc struct {
	ProgramName      string                   `json:"program_name"`
	ProgramSubname   string                   `json:"program_subname"`
	ProgramVersion   string                   `json:"program_version"`
	ModuleVersion    string                   `json:"module_version"`
	ProgramArguments string                   `json:"program_arguments"`
	ProgramInput     []inputSlotDoc           `json:"program_input"`
	ProgramOutput    []outputSlotDoc          `json:"program_output"`
	AlternateInputs  []inputSlotDoc           `json:"alternate_inputs"`
	AlternateOutputs []outputSlotDoc          `json:"alternate_outputs"`
	Options          string                   `json:"options"`
	Defaults         *domain.TemplateDefaults `json:"defaults"`
}

type inputSlotDoc struct {
	Type     string          `json:"input_type"`
	FileType string          `json:"input_file_type"`
	Position domain.Position `json:"input_position"`
	Prefix   string          `json:"input_prefix"`
}

type outputSlotDoc struct {
	Type     string          `json:"output_type"`
	FileType string          `json:"output_file_type"`
	Position domain.Position `json:"output_position"`
	Prefix   string          `json:"output_prefix"`
}

func (d inputSlotDoc) toSlot() domain.Slot {
	return domain.Slot{
		FileType: strings.ToUpper(d.FileType),
		Kind:     domain.SlotKind(strings.ToLower(d.Type)),
		Position: d.Position,
		Prefix:   d.Prefix,
	}
}

func (d outputSlotDoc) toSlot() domain.Slot {
	return domain.Slot{
		FileType: strings.ToUpper(d.FileType),
		Kind:     domain.SlotKind(strings.ToLower(d.Type)),
		Position: d.Position,
		Prefix:   d.Prefix,
	}
}

func (d templateDoc) toTemplate() *domain.Template {
	tmpl := &domain.Template{
		ProgramName:    d.ProgramName,
		ProgramSubname: d.ProgramSubname,
		ProgramVersion: d.ProgramVersion,
		ModuleVersion:  d.ModuleVersion,
		BaseArguments:  d.ProgramArguments,
		Options:        d.Options,
		Defaults:       d.Defaults,
	}
	for _, s := range d.ProgramInput {
		tmpl.InputSlots = append(tmpl.InputSlots, s.toSlot())
	}
	for _, s := range d.ProgramOutput {
		tmpl.OutputSlots = append(tmpl.OutputSlots, s.toSlot())
	}
	for _, s := range d.AlternateInputs {
		tmpl.AlternateInputSlots = append(tmpl.AlternateInputSlots, s.toSlot())
	}
	for _, s := range d.AlternateOutputs {
		tmpl.AlternateOutputSlots = append(tmpl.AlternateOutputSlots, s.toSlot())
	}
	return tmpl
}
