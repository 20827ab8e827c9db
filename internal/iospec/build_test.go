package iospec

import (
	"reflect"
	"testing"

	"pipestage/pkg/domain"
)

func fileSlot(fileType string) domain.Slot {
	return domain.Slot{FileType: fileType, Kind: domain.SlotFile, Position: domain.AppendPosition()}
}

func baseTemplate() *domain.Template {
	return &domain.Template{
		ProgramName: "bwa",
		InputSlots:  []domain.Slot{fileSlot("FASTQ.GZ")},
		OutputSlots: []domain.Slot{fileSlot("SAM")},
	}
}

func TestParseRequestFlexibleFields(t *testing.T) {
	req, err := ParseRequest([]byte(`{
		"input": "a_R1.fastq.gz, a_R2.fastq.gz",
		"output": ["out.sam"],
		"inputdir": "s3://run/fastqs",
		"outputdir": "s3://run/aligned",
		"dryrun": ""
	}`))
	if err != nil {
		t.Fatalf("ParseRequest: %v", err)
	}
	if !reflect.DeepEqual([]string(req.Input), []string{"a_R1.fastq.gz", "a_R2.fastq.gz"}) {
		t.Fatalf("input = %v", req.Input)
	}
	if !bool(req.DryRun) {
		t.Fatalf("empty-string dryrun should read true")
	}

	req2, err := ParseRequest([]byte(`{"input": "a.bam", "dryrun": false}`))
	if err != nil {
		t.Fatalf("ParseRequest bool: %v", err)
	}
	if bool(req2.DryRun) {
		t.Fatalf("dryrun false misread")
	}
}

func TestBuildQualifiesAndInfersSample(t *testing.T) {
	req := &RunRequest{
		Input:     StringList{"mysample_R1.fastq.gz", "mysample_R2.fastq.gz"},
		Output:    StringList{"mysample.sam"},
		InputDir:  "s3://run/fastqs",
		OutputDir: "s3://run/aligned",
	}
	desc, err := Build(req, baseTemplate())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if desc.SampleID != "mysample" {
		t.Fatalf("sample = %q", desc.SampleID)
	}
	want := []string{"s3://run/fastqs/mysample_R1.fastq.gz", "s3://run/fastqs/mysample_R2.fastq.gz"}
	if !reflect.DeepEqual(desc.PrimaryInputs, want) {
		t.Fatalf("inputs = %v", desc.PrimaryInputs)
	}
	if !reflect.DeepEqual(desc.PrimaryOutputs, []string{"s3://run/aligned/mysample.sam"}) {
		t.Fatalf("outputs = %v", desc.PrimaryOutputs)
	}
}

func TestBuildDefaultsOutputName(t *testing.T) {
	req := &RunRequest{
		Input:     StringList{"s3://run/fastqs/s1_R1.fastq.gz"},
		OutputDir: "s3://run/aligned",
	}
	desc, err := Build(req, baseTemplate())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !reflect.DeepEqual(desc.PrimaryOutputs, []string{"s3://run/aligned/s1.sam"}) {
		t.Fatalf("defaulted outputs = %v", desc.PrimaryOutputs)
	}
}

func TestBuildTemplateDefaults(t *testing.T) {
	tmpl := baseTemplate()
	tmpl.Defaults = &domain.TemplateDefaults{
		OutputFile:      "<sample_id>.aligned.sam",
		AlternateInputs: []string{"s3://ref/hg38/genome.fa"},
	}
	req := &RunRequest{
		Input:     StringList{"s3://run/fastqs/s1_R1.fastq.gz"},
		OutputDir: "s3://run/aligned",
	}
	desc, err := Build(req, tmpl)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !reflect.DeepEqual(desc.PrimaryOutputs, []string{"s3://run/aligned/s1.aligned.sam"}) {
		t.Fatalf("outputs = %v", desc.PrimaryOutputs)
	}
	if !reflect.DeepEqual(desc.AlternateInputs, []string{"s3://ref/hg38/genome.fa"}) {
		t.Fatalf("alternates = %v", desc.AlternateInputs)
	}
}

func TestBuildAppendsTypeToExtensionlessOutput(t *testing.T) {
	req := &RunRequest{
		Input:     StringList{"s3://run/in/s1.bam"},
		Output:    StringList{"final"},
		OutputDir: "s3://run/out",
	}
	desc, err := Build(req, baseTemplate())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !reflect.DeepEqual(desc.PrimaryOutputs, []string{"s3://run/out/final.sam"}) {
		t.Fatalf("outputs = %v", desc.PrimaryOutputs)
	}
}

func TestBuildErrors(t *testing.T) {
	if _, err := Build(&RunRequest{}, baseTemplate()); err == nil {
		t.Fatalf("expected error for missing input")
	}
	req := &RunRequest{Input: StringList{"bare.fastq.gz"}}
	if _, err := Build(req, baseTemplate()); err == nil {
		t.Fatalf("expected error for bare input without inputdir")
	}
}

func TestBuildExplicitSampleAndOverrides(t *testing.T) {
	req := &RunRequest{
		SampleID:       "custom",
		ProgramName:    "bwa-mem2",
		ProgramSubname: "mem",
		Input:          StringList{"s3://run/in/x_R1.fastq.gz"},
		Output:         StringList{"s3://run/out/x.sam"},
		Pargs:          "-t 8",
		Options:        "-k 19",
		DryRun:         FlexBool(true),
	}
	desc, err := Build(req, baseTemplate())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if desc.SampleID != "custom" || desc.BaseArgumentsOverride != "-t 8" || desc.Options != "-k 19" || !desc.DryRun {
		t.Fatalf("descriptor = %+v", desc)
	}
	if desc.ProgramNameOverride != "bwa-mem2" || desc.ProgramSubnameOverride != "mem" {
		t.Fatalf("program override = %q %q", desc.ProgramNameOverride, desc.ProgramSubnameOverride)
	}
}
