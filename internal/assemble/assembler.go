package assemble

import (
	"context"
	"strings"

	"pipestage/internal/ctxlog"
	"pipestage/internal/naming"
	"pipestage/internal/transfer"
	"pipestage/pkg/domain"
)

// Command is the finished, flattened command line plus the local file
// stdout should be redirected into when the tool writes its primary output
// to stdout (a suppressed output position).
type Command struct {
	Tokens []string `json:"tokens"`
	Stdout string   `json:"stdout,omitempty"`
}

func (c *Command) String() string { return strings.Join(c.Tokens, " ") }

// StagedInstance is a module instance whose resolved input bindings have
// been downloaded, carrying the local paths each binding staged to.
// AlternateValues is index-aligned with Instance.AlternateInputs.
type StagedInstance struct {
	Instance        *domain.ModuleInstance
	InputValues     []string
	AlternateValues [][]string
}

// Assembler stages a module instance's inputs and builds its command line.
type Assembler struct {
	svc *transfer.Service
}

// New creates an Assembler over the transfer service.
func New(svc *transfer.Service) *Assembler { return &Assembler{svc: svc} }

// Stage downloads every resolved input binding into inputDir. Unresolved
// bindings are skipped; suppressed input positions are still staged.
func (a *Assembler) Stage(ctx context.Context, inst *domain.ModuleInstance, inputDir string) (*StagedInstance, error) {
	staged := &StagedInstance{
		Instance:        inst,
		AlternateValues: make([][]string, len(inst.AlternateInputs)),
	}
	var err error
	if staged.InputValues, err = a.stageBinding(ctx, inst.Input, inputDir); err != nil {
		return nil, err
	}
	for i, b := range inst.AlternateInputs {
		if staged.AlternateValues[i], err = a.stageBinding(ctx, b, inputDir); err != nil {
			return nil, err
		}
	}
	return staged, nil
}

// Build splices every binding of a staged instance into the base argument
// tokens by slot position and flattens the result. Insertion order is
// fixed: primary input, primary output, alternate inputs, alternate
// outputs, then the program subname and program name at the front. Outputs
// are never staged; they map to local paths under outputDir. A dry run
// appends the dry-run marker as the final token.
func (a *Assembler) Build(ctx context.Context, staged *StagedInstance, outputDir string) *Command {
	inst := staged.Instance
	args := inst.BaseArguments
	if inst.Options != "" {
		if args != "" {
			args += " "
		}
		args += inst.Options
	}
	tokens := Leaves(args)
	cmd := &Command{}

	tokens = insertValues(tokens, inst.Input, staged.InputValues)
	tokens = insertOutput(tokens, inst.Output, outputDir, cmd)
	for i, b := range inst.AlternateInputs {
		tokens = insertValues(tokens, b, staged.AlternateValues[i])
	}
	for _, b := range inst.AlternateOutputs {
		tokens = insertOutput(tokens, b, outputDir, nil)
	}

	if inst.ProgramSubname != "" {
		tokens = Insert(tokens, Leaf(inst.ProgramSubname), domain.AbsolutePosition(0))
	}
	tokens = Insert(tokens, Leaf(inst.ProgramName), domain.AbsolutePosition(0))

	cmd.Tokens = Flatten(tokens)
	if inst.DryRun {
		cmd.Tokens = append(cmd.Tokens, domain.DryRunMarker)
	}
	ctxlog.FromContext(ctx).Info("command assembled", "command", cmd.String())
	return cmd
}

// Assemble is Stage followed by Build.
func (a *Assembler) Assemble(ctx context.Context, inst *domain.ModuleInstance, inputDir, outputDir string) (*Command, error) {
	staged, err := a.Stage(ctx, inst, inputDir)
	if err != nil {
		return nil, err
	}
	return a.Build(ctx, staged, outputDir), nil
}

// stageBinding downloads one resolved input binding and returns the local
// paths its token group will carry.
func (a *Assembler) stageBinding(ctx context.Context, b domain.SlotBinding, inputDir string) ([]string, error) {
	if !b.Resolved {
		return nil, nil
	}
	if b.Slot.Kind == domain.SlotFolder {
		local, err := a.svc.DownloadFolder(ctx, b.Directory, inputDir)
		if err != nil {
			return nil, err
		}
		return []string{local}, nil
	}
	remote := naming.FullPaths(b.Directory, b.Files.Paths())
	return a.svc.DownloadFiles(ctx, remote, inputDir)
}

// insertValues splices one resolved input binding's staged values in.
func insertValues(tokens []Node, b domain.SlotBinding, values []string) []Node {
	if !b.Resolved {
		return tokens
	}
	return Insert(tokens, slotGroup(b.Slot.Prefix, values), b.Slot.Position)
}

// insertOutput maps one resolved output binding to its local path under
// outputDir and splices it in. A suppressed single-file primary output
// becomes the command's stdout redirect.
func insertOutput(tokens []Node, b domain.SlotBinding, outputDir string, cmd *Command) []Node {
	if !b.Resolved {
		return tokens
	}
	var values []string
	if b.Slot.Kind == domain.SlotFolder {
		values = []string{outputDir}
	} else {
		values = naming.FullPaths(outputDir, b.Files.Paths())
	}
	if b.Slot.Position.IsSuppressed() {
		if cmd != nil && b.Slot.Kind == domain.SlotFile && len(values) == 1 {
			cmd.Stdout = values[0]
		}
		return tokens
	}
	return Insert(tokens, slotGroup(b.Slot.Prefix, values), b.Slot.Position)
}

// slotGroup builds the token group for one slot: its prefix flag followed
// by the values. Empty prefixes vanish at flatten time.
func slotGroup(prefix string, values []string) Node {
	nodes := make([]Node, 0, len(values)+1)
	nodes = append(nodes, Leaf(prefix))
	for _, v := range values {
		nodes = append(nodes, Leaf(v))
	}
	return Group(nodes...)
}
