package assemble

import (
	"context"
	"reflect"
	"strings"
	"testing"

	"pipestage/internal/infra/transfer/memory"
	"pipestage/internal/transfer"
	"pipestage/pkg/domain"
)

func TestAssembleBwaEndToEnd(t *testing.T) {
	inst := Resolve(context.Background(), bwaTemplate(), bwaDescriptor())
	asm := New(transfer.NewMockService(memory.New()))

	cmd, err := asm.Assemble(context.Background(), inst, "/work/in", "/work/out")
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	want := []string{
		"bwa", "mem",
		"/work/in/genome.fa",
		"-t", "4",
		"/work/in/s1_R1.fastq.gz", "/work/in/s1_R2.fastq.gz",
		"-L", "/work/in/capture.bed",
	}
	if !reflect.DeepEqual(cmd.Tokens, want) {
		t.Fatalf("tokens = %v, want %v", cmd.Tokens, want)
	}
	if cmd.Stdout != "/work/out/s1.sam" {
		t.Fatalf("stdout redirect = %q", cmd.Stdout)
	}
	if got := cmd.String(); got != "bwa mem /work/in/genome.fa -t 4 /work/in/s1_R1.fastq.gz /work/in/s1_R2.fastq.gz -L /work/in/capture.bed" {
		t.Fatalf("String = %q", got)
	}
}

func TestAssembleOrderedInsertion(t *testing.T) {
	tmpl := &domain.Template{
		ProgramName:    "bwa",
		ProgramSubname: "mem",
		BaseArguments:  "-S -t 4",
		InputSlots: []domain.Slot{
			{FileType: "FASTQ", Kind: domain.SlotFile, Position: domain.AppendPosition()},
		},
		OutputSlots: []domain.Slot{
			{FileType: "SAM", Kind: domain.SlotFile, Position: domain.AbsolutePosition(0), Prefix: "-o"},
		},
		AlternateInputSlots: []domain.Slot{
			{FileType: "BED", Kind: domain.SlotFile, Position: domain.AbsolutePosition(0), Prefix: "-L"},
			{FileType: "FASTA", Kind: domain.SlotFile, Position: domain.FromEndPosition(-2)},
		},
	}
	desc := &domain.IODescriptor{
		SampleID:       "my",
		PrimaryInputs:  []string{"s3://run/in/my.fastq"},
		PrimaryOutputs: []string{"s3://run/out/my.sam"},
		AlternateInputs: []string{
			"s3://run/in/input1.fasta",
			"s3://run/in/input2.bed",
		},
		DryRun: true,
	}
	inst := Resolve(context.Background(), tmpl, desc)
	asm := New(transfer.NewMockService(memory.New()))

	cmd, err := asm.Assemble(context.Background(), inst, "/work/in", "/work/out")
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	want := []string{
		"bwa", "mem",
		"-L", "/work/in/input2.bed",
		"-o", "/work/out/my.sam",
		"-S", "-t", "4",
		"/work/in/input1.fasta",
		"/work/in/my.fastq",
		domain.DryRunMarker,
	}
	if !reflect.DeepEqual(cmd.Tokens, want) {
		t.Fatalf("tokens = %v, want %v", cmd.Tokens, want)
	}
}

func TestAssembleDryRunAppendsMarker(t *testing.T) {
	desc := bwaDescriptor()
	desc.DryRun = true
	inst := Resolve(context.Background(), bwaTemplate(), desc)
	asm := New(transfer.NewMockService(memory.New()))

	cmd, err := asm.Assemble(context.Background(), inst, "/work/in", "/work/out")
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if cmd.Tokens[len(cmd.Tokens)-1] != domain.DryRunMarker {
		t.Fatalf("last token = %q", cmd.Tokens[len(cmd.Tokens)-1])
	}
}

func TestAssembleFolderSlots(t *testing.T) {
	tmpl := &domain.Template{
		ProgramName: "bcl2fastq",
		InputSlots: []domain.Slot{
			{Kind: domain.SlotFolder, Position: domain.AppendPosition(), Prefix: "--runfolder-dir"},
		},
		OutputSlots: []domain.Slot{
			{Kind: domain.SlotFolder, Position: domain.AppendPosition(), Prefix: "--output-dir"},
		},
	}
	desc := &domain.IODescriptor{
		PrimaryInputs:  []string{"s3://run/bcl_out"},
		PrimaryOutputs: []string{"s3://run/fastqs"},
	}
	inst := Resolve(context.Background(), tmpl, desc)
	asm := New(transfer.NewMockService(memory.New()))

	cmd, err := asm.Assemble(context.Background(), inst, "/work/in", "/work/out")
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	want := []string{"bcl2fastq", "--runfolder-dir", "/work/in", "--output-dir", "/work/out"}
	if !reflect.DeepEqual(cmd.Tokens, want) {
		t.Fatalf("tokens = %v, want %v", cmd.Tokens, want)
	}
	if cmd.Stdout != "" {
		t.Fatalf("folder output should not redirect stdout: %q", cmd.Stdout)
	}
}

func TestAssembleMockModeIsIdempotent(t *testing.T) {
	asm := New(transfer.NewMockService(memory.New()))
	first, err := asm.Assemble(context.Background(),
		Resolve(context.Background(), bwaTemplate(), bwaDescriptor()), "/work/in", "/work/out")
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	second, err := asm.Assemble(context.Background(),
		Resolve(context.Background(), bwaTemplate(), bwaDescriptor()), "/work/in", "/work/out")
	if err != nil {
		t.Fatalf("Assemble again: %v", err)
	}
	if !reflect.DeepEqual(first.Tokens, second.Tokens) {
		t.Fatalf("mock assembly not idempotent: %v vs %v", first.Tokens, second.Tokens)
	}
}

func TestAssembleSkipsUnresolvedBindings(t *testing.T) {
	desc := bwaDescriptor()
	desc.PrimaryInputs = []string{"s3://run/in/s1.cram"}
	inst := Resolve(context.Background(), bwaTemplate(), desc)
	mock := memory.New()
	asm := New(transfer.NewMockService(mock))

	cmd, err := asm.Assemble(context.Background(), inst, "/work/in", "/work/out")
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	for _, tok := range cmd.Tokens {
		if tok == "/work/in/s1.cram" {
			t.Fatalf("unresolved input must not be inserted: %v", cmd.Tokens)
		}
	}
	for _, call := range mock.Calls() {
		if call.Remote == "s3://run/in/s1.cram" {
			t.Fatalf("unresolved input must not be staged")
		}
	}
}

func TestAssembleOptionsAppendAfterBaseArguments(t *testing.T) {
	desc := bwaDescriptor()
	desc.Options = "-k 19"
	inst := Resolve(context.Background(), bwaTemplate(), desc)
	asm := New(transfer.NewMockService(memory.New()))

	cmd, err := asm.Assemble(context.Background(), inst, "/work/in", "/work/out")
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	joined := cmd.String()
	if !strings.Contains(joined, "-t 4 -k 19") {
		t.Fatalf("options not appended to base arguments: %q", joined)
	}
}
