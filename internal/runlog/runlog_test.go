package runlog

import (
	"path/filepath"
	"testing"
	"time"

	"pipestage/pkg/domain"
)

func TestWriteReadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	rec := &Record{
		Module:     "bwamem",
		JobID:      "j42",
		SampleID:   "s1",
		State:      domain.StateDone,
		Command:    "bwa mem -t 4 s1_R1.fastq.gz",
		StartedAt:  time.Now().Add(-time.Minute).UTC().Truncate(time.Second),
		FinishedAt: time.Now().UTC().Truncate(time.Second),
	}
	path, err := Write(dir, rec)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if want := filepath.Join(dir, "bwamem.j42.job.log"); path != want {
		t.Fatalf("path = %q, want %q", path, want)
	}
	got, err := Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got.Module != rec.Module || got.JobID != rec.JobID || got.State != domain.StateDone {
		t.Fatalf("record = %+v", got)
	}
	if !got.StartedAt.Equal(rec.StartedAt) {
		t.Fatalf("started = %v, want %v", got.StartedAt, rec.StartedAt)
	}
}

func TestWriteFailureState(t *testing.T) {
	dir := t.TempDir()
	rec := &Record{
		Module:   "bwamem",
		JobID:    "j43",
		State:    domain.StateAssembled,
		ExitCode: 1,
		Error:    "program execution failed (exit 1)",
	}
	path, err := Write(dir, rec)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got.State != domain.StateAssembled || got.ExitCode != 1 || got.Error == "" {
		t.Fatalf("record = %+v", got)
	}
}
