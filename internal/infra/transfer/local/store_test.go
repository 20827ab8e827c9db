package local

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"pipestage/internal/transfer/core"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestDownloadFiles(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	writeFile(t, filepath.Join(src, "a.bam"), "aa")
	writeFile(t, filepath.Join(src, "b.bam"), "bb")

	store := New()
	local, err := store.DownloadFiles(context.Background(), []string{
		filepath.Join(src, "a.bam"), filepath.Join(src, "b.bam"),
	}, dst)
	if err != nil {
		t.Fatalf("DownloadFiles: %v", err)
	}
	want := []string{filepath.Join(dst, "a.bam"), filepath.Join(dst, "b.bam")}
	if !reflect.DeepEqual(local, want) {
		t.Fatalf("local = %v, want %v", local, want)
	}
	data, err := os.ReadFile(local[1])
	if err != nil || string(data) != "bb" {
		t.Fatalf("copied content = %q err %v", data, err)
	}
}

func TestDownloadFolderRecursive(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	writeFile(t, filepath.Join(src, "top.txt"), "t")
	writeFile(t, filepath.Join(src, "sub", "deep.txt"), "d")

	store := New()
	got, err := store.DownloadFolder(context.Background(), src, dst)
	if err != nil {
		t.Fatalf("DownloadFolder: %v", err)
	}
	if got != dst {
		t.Fatalf("dest = %q, want %q", got, dst)
	}
	if _, err := os.Stat(filepath.Join(dst, "sub", "deep.txt")); err != nil {
		t.Fatalf("nested file missing: %v", err)
	}
}

func TestUploadFolderCreatesDest(t *testing.T) {
	src := t.TempDir()
	writeFile(t, filepath.Join(src, "out.vcf"), "v")
	dst := filepath.Join(t.TempDir(), "nested", "remote")

	store := New()
	if _, err := store.UploadFolder(context.Background(), src, dst); err != nil {
		t.Fatalf("UploadFolder: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dst, "out.vcf")); err != nil {
		t.Fatalf("uploaded file missing: %v", err)
	}
}

func TestListFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "s_R1.fastq"), "")
	writeFile(t, filepath.Join(dir, "s_I1.fastq"), "")
	writeFile(t, filepath.Join(dir, "s.bam"), "")
	writeFile(t, filepath.Join(dir, "sub", "hidden.fastq"), "")

	store := New()
	names, err := store.ListFiles(context.Background(), dir,
		core.ParsePatterns([]string{"^.fastq"}), core.ParsePatterns([]string{"^I1^"}))
	if err != nil {
		t.Fatalf("ListFiles: %v", err)
	}
	if !reflect.DeepEqual(names, []string{"s_R1.fastq"}) {
		t.Fatalf("names = %v", names)
	}
}

func TestDownloadFolderRejectsFile(t *testing.T) {
	src := t.TempDir()
	writeFile(t, filepath.Join(src, "plain.txt"), "x")
	store := New()
	if _, err := store.DownloadFolder(context.Background(), filepath.Join(src, "plain.txt"), t.TempDir()); err == nil {
		t.Fatalf("expected error for file source")
	}
}
