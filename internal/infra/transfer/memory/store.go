// Package memory implements the mock transfer Store. No IO happens:
// downloads and uploads return computed paths, listings come from seeded
// folder contents, and every call is recorded for assertions.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"pipestage/internal/naming"
	"pipestage/internal/transfer/core"
)

// Call records one Store invocation.
type Call struct {
	Op     string
	Remote string
	Local  string
}

// Store is the in-memory mock transfer store.
type Store struct {
	mu      sync.Mutex
	calls   []Call
	folders map[string][]string
}

// New creates an empty mock transfer store.
func New() *Store {
	return &Store{folders: map[string][]string{}}
}

// Seed registers file names as the listing of folder.
func (s *Store) Seed(folder string, names ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := strings.TrimRight(folder, "/")
	s.folders[key] = append(s.folders[key], names...)
}

// Calls returns a copy of the recorded invocations.
func (s *Store) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Call, len(s.calls))
	copy(out, s.calls)
	return out
}

func (s *Store) record(c Call) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, c)
}

func (s *Store) Driver() core.Driver { return core.DriverMemory }

func (s *Store) DownloadFiles(ctx context.Context, remote []string, destDir string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	local := naming.FullPaths(destDir, naming.FileOnlyAll(remote))
	for i, r := range remote {
		s.record(Call{Op: "download_files", Remote: r, Local: local[i]})
	}
	return local, nil
}

func (s *Store) DownloadFolder(ctx context.Context, remoteFolder, destDir string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.record(Call{Op: "download_folder", Remote: remoteFolder, Local: destDir})
	return destDir, nil
}

func (s *Store) UploadFolder(ctx context.Context, localDir, remoteFolder string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.record(Call{Op: "upload_folder", Remote: remoteFolder, Local: localDir})
	return remoteFolder, nil
}

func (s *Store) ListFiles(ctx context.Context, folder string, include, exclude []core.Pattern) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.record(Call{Op: "list", Remote: folder})
	s.mu.Lock()
	seeded := s.folders[strings.TrimRight(folder, "/")]
	s.mu.Unlock()
	var names []string
	for _, name := range seeded {
		if core.Selected(name, include, exclude) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}
