package assemble

import (
	"context"
	"strings"

	"pipestage/internal/ctxlog"
	"pipestage/internal/naming"
	"pipestage/pkg/domain"
)

// folderKey is the matching key for extensionless (folder) paths and for
// untyped folder slots.
const folderKey = "FOLDER"

// Resolve binds an IO descriptor to a module template, producing the
// per-job ModuleInstance. Matching is by inferred file type,
// case-insensitive and compound-suffix aware; paths with no extension
// match untyped folder slots. Whether a binding stages a folder is decided
// by the matched slot's kind, so a typed folder slot can claim a file path
// and stage its containing folder (a reference genome with its index
// sidecars). A primary input or output with no matching slot is bound
// unresolved and logged; it is not an error.
func Resolve(ctx context.Context, tmpl *domain.Template, desc *domain.IODescriptor) *domain.ModuleInstance {
	log := ctxlog.FromContext(ctx)

	program := tmpl.ProgramName
	if desc.ProgramNameOverride != "" {
		program = desc.ProgramNameOverride
	}
	subname := tmpl.ProgramSubname
	if desc.ProgramSubnameOverride != "" {
		subname = desc.ProgramSubnameOverride
	}
	baseArgs := tmpl.BaseArguments
	if desc.BaseArgumentsOverride != "" {
		baseArgs = desc.BaseArgumentsOverride
	}
	options := tmpl.Options
	if desc.Options != "" {
		options = desc.Options
	}

	inst := &domain.ModuleInstance{
		ProgramName:    program,
		ProgramSubname: subname,
		ProgramVersion: tmpl.ProgramVersion,
		ModuleVersion:  tmpl.ModuleVersion,
		BaseArguments:  baseArgs,
		Options:        options,
		SampleID:       desc.SampleID,
		DryRun:         desc.DryRun,
	}

	inst.Input = bindPrimary(log, "input", tmpl.InputSlots, desc.PrimaryInputs)
	inst.Output = bindPrimary(log, "output", tmpl.OutputSlots, desc.PrimaryOutputs)
	inst.AlternateInputs = bindAlternates(log, "alternate input", tmpl.AlternateInputSlots, desc.AlternateInputs)
	inst.AlternateOutputs = bindAlternates(log, "alternate output", tmpl.AlternateOutputSlots, desc.AlternateOutputs)
	return inst
}

type logger interface {
	Warn(msg interface{}, keyvals ...interface{})
	Debug(msg interface{}, keyvals ...interface{})
}

// bindPrimary binds a primary file list against the slot list. The first
// slot whose key matches wins.
func bindPrimary(log logger, role string, slots []domain.Slot, paths []string) domain.SlotBinding {
	if len(paths) == 0 {
		return domain.SlotBinding{}
	}
	key := pathKey(paths[0])
	slot, ok := matchSlot(slots, key)
	if !ok {
		log.Warn("no template slot matches, skipping", "role", role, "paths", paths, "type", key)
		return domain.SlotBinding{Files: filesValue(paths), Directory: naming.FolderOf(paths)}
	}
	return newBinding(slot, paths)
}

// bindAlternates walks the template's alternate slots in declaration
// order. Each slot claims the descriptor files of its type; a later slot
// declaring an already-claimed type is shadowed. Files whose type no slot
// declares are skipped with a warning.
func bindAlternates(log logger, role string, slots []domain.Slot, paths []string) []domain.SlotBinding {
	byKey := make(map[string][]string)
	var order []string
	for _, p := range paths {
		key := pathKey(p)
		if _, seen := byKey[key]; !seen {
			order = append(order, key)
		}
		byKey[key] = append(byKey[key], p)
	}

	claimed := make(map[string]bool)
	var bindings []domain.SlotBinding
	for _, slot := range slots {
		key := slotKey(slot)
		group, ok := byKey[key]
		if !ok {
			continue
		}
		if claimed[key] {
			log.Debug("slot shadowed by earlier slot of same type", "role", role, "type", key)
			continue
		}
		claimed[key] = true
		bindings = append(bindings, newBinding(slot, group))
	}
	for _, key := range order {
		if !claimed[key] {
			log.Warn("no template slot matches, skipping", "role", role, "paths", byKey[key], "type", key)
		}
	}
	return bindings
}

func newBinding(slot domain.Slot, paths []string) domain.SlotBinding {
	if slot.Kind == domain.SlotFolder {
		// the raw path is kept so a file claimed by a folder slot can be
		// re-resolved inside the staged folder
		return domain.SlotBinding{Slot: slot, Directory: paths[0], Resolved: true}
	}
	return domain.SlotBinding{
		Slot:      slot,
		Files:     filesValue(paths),
		Directory: naming.FolderOf(paths),
		Resolved:  true,
	}
}

// pathKey is the matching key of a path: its uppercase inferred type, or
// folderKey for extensionless paths.
func pathKey(path string) string {
	if t := naming.InferType(path); t != "" {
		return strings.ToUpper(t)
	}
	return folderKey
}

// slotKey is the matching key a slot claims: its declared type, or
// folderKey for untyped folder slots.
func slotKey(slot domain.Slot) string {
	if slot.FileType != "" {
		return strings.ToUpper(slot.FileType)
	}
	if slot.Kind == domain.SlotFolder {
		return folderKey
	}
	return ""
}

func matchSlot(slots []domain.Slot, key string) (domain.Slot, bool) {
	for _, s := range slots {
		if slotKey(s) == key {
			return s, true
		}
	}
	return domain.Slot{}, false
}

// filesValue builds the binding value: one file binds single, more bind
// as a sequence. Names only; the directory travels separately.
func filesValue(paths []string) domain.FilePathValue {
	names := naming.FileOnlyAll(paths)
	if len(names) == 1 {
		return domain.SinglePath(names[0])
	}
	return domain.MultiplePaths(names)
}
