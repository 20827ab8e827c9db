package template

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	localdriver "pipestage/internal/infra/transfer/local"
	memorydriver "pipestage/internal/infra/transfer/memory"
	"pipestage/internal/transfer"
	"pipestage/pkg/domain"
)

const bwaTemplate = `{
  "program_name": "bwa",
  "program_subname": "mem",
  "program_version": "0.7.17",
  "module_version": "1.0.0",
  "program_arguments": "-t 4",
  "program_input": [
    {"input_type": "file", "input_file_type": "fastq.gz", "input_position": -1, "input_prefix": ""}
  ],
  "program_output": [
    {"output_type": "file", "output_file_type": "sam", "output_position": -100, "output_prefix": ""}
  ],
  "alternate_inputs": [
    {"input_type": "file", "input_file_type": "fasta", "input_position": 0, "input_prefix": ""}
  ],
  "defaults": {"output_file": "<sample_id>.sam"}
}`

func writeTemplate(t *testing.T, dir, module, body string) string {
	t.Helper()
	path := filepath.Join(dir, module+".template.json")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write template: %v", err)
	}
	return path
}

func TestFetchDecodesSlots(t *testing.T) {
	root := t.TempDir()
	writeTemplate(t, root, "bwamem", bwaTemplate)
	store := NewStore(transfer.NewService(localdriver.New(), nil), root)

	tmpl, err := store.Fetch(context.Background(), "bwamem", t.TempDir())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if tmpl.ProgramName != "bwa" || tmpl.ProgramSubname != "mem" {
		t.Fatalf("program = %q %q", tmpl.ProgramName, tmpl.ProgramSubname)
	}
	if tmpl.BaseArguments != "-t 4" {
		t.Fatalf("base arguments = %q", tmpl.BaseArguments)
	}
	in := tmpl.InputSlots[0]
	if in.FileType != "FASTQ.GZ" || in.Kind != domain.SlotFile || in.Position.Int() != -1 {
		t.Fatalf("input slot = %+v", in)
	}
	out := tmpl.OutputSlots[0]
	if !out.Position.IsSuppressed() {
		t.Fatalf("output position should be suppressed: %+v", out)
	}
	if tmpl.AlternateInputSlots[0].FileType != "FASTA" {
		t.Fatalf("alternate input = %+v", tmpl.AlternateInputSlots[0])
	}
	if tmpl.Defaults == nil || tmpl.Defaults.OutputFile != "<sample_id>.sam" {
		t.Fatalf("defaults = %+v", tmpl.Defaults)
	}
}

func TestFetchMockModeReadsInPlace(t *testing.T) {
	root := t.TempDir()
	writeTemplate(t, root, "bwamem", bwaTemplate)
	store := NewStore(transfer.NewMockService(memorydriver.New()), root)

	tmpl, err := store.Fetch(context.Background(), "bwamem", t.TempDir())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if tmpl.ProgramName != "bwa" {
		t.Fatalf("program = %q", tmpl.ProgramName)
	}
}

func TestFetchMissingTemplate(t *testing.T) {
	store := NewStore(transfer.NewService(localdriver.New(), nil), t.TempDir())
	_, err := store.Fetch(context.Background(), "nosuch", t.TempDir())
	var cerr *domain.ConfigError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected ConfigError, got %v", err)
	}
}

func TestParseValidation(t *testing.T) {
	cases := map[string]string{
		"no program": `{"program_input": [{"input_type":"file"}], "program_output": [{"output_type":"file"}]}`,
		"no input":   `{"program_name": "x", "program_output": [{"output_type":"file"}]}`,
		"no output":  `{"program_name": "x", "program_input": [{"input_type":"file"}]}`,
		"bad kind":   `{"program_name": "x", "program_input": [{"input_type":"pipe"}], "program_output": [{"output_type":"file"}]}`,
		"malformed":  `{not json`,
	}
	for name, body := range cases {
		if _, err := Parse([]byte(body)); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}
