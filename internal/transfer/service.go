package transfer

import (
	"context"
	"strings"

	"pipestage/internal/ctxlog"
	"pipestage/internal/naming"
	"pipestage/pkg/domain"
)

// Service is the transfer facade the rest of the pipeline uses. It routes
// each call to the driver inferred from the remote path, or to the mock
// driver when mock mode is enabled. All failures surface as
// *domain.TransferError.
type Service struct {
	local Store
	s3    Store
	mock  Store
}

// NewService builds a Service over the given drivers. The s3 store may be
// nil when no object-store configuration is available; calls that resolve
// to it then fail with a TransferError.
func NewService(local, s3 Store) *Service {
	return &Service{local: local, s3: s3}
}

// NewMockService builds a Service that routes every call to the mock
// store, regardless of path scheme. Assembly in mock mode is idempotent:
// no IO happens and returned paths are purely computed.
func NewMockService(mock Store) *Service {
	return &Service{mock: mock}
}

// MockMode reports whether every call is routed to the mock driver.
func (s *Service) MockMode() bool { return s.mock != nil }

func (s *Service) pick(path string) (Store, error) {
	if s.mock != nil {
		return s.mock, nil
	}
	if InferDriver(path) == DriverS3 {
		if s.s3 == nil {
			return nil, domain.NewTransferError("route", path, errS3Unconfigured)
		}
		return s.s3, nil
	}
	return s.local, nil
}

// DownloadFiles stages individual files into destDir, preserving order.
func (s *Service) DownloadFiles(ctx context.Context, remote []string, destDir string) ([]string, error) {
	if len(remote) == 0 {
		return nil, nil
	}
	ctxlog.FromContext(ctx).Info("downloading files", "paths", remote, "dest", destDir)
	store, err := s.pick(remote[0])
	if err != nil {
		return nil, err
	}
	local, err := store.DownloadFiles(ctx, remote, destDir)
	if err != nil {
		return nil, domain.NewTransferError("download_files", strings.Join(remote, ","), err)
	}
	return local, nil
}

// DownloadFile stages a single file into destDir.
func (s *Service) DownloadFile(ctx context.Context, remote, destDir string) (string, error) {
	local, err := s.DownloadFiles(ctx, []string{remote}, destDir)
	if err != nil {
		return "", err
	}
	return local[0], nil
}

// DownloadFolder recursively stages a folder into destDir. When a file
// path is passed where a folder is expected, the containing folder is
// staged and the staged file path is returned; this keeps index sidecar
// files (e.g. a FASTA's genome indexes) next to the file that needs them.
func (s *Service) DownloadFolder(ctx context.Context, remoteFolder, destDir string) (string, error) {
	ctxlog.FromContext(ctx).Info("downloading folder", "path", remoteFolder, "dest", destDir)
	store, err := s.pick(remoteFolder)
	if err != nil {
		return "", err
	}
	extended := ""
	if name := naming.FileOnly(strings.TrimRight(remoteFolder, "/")); strings.Contains(name, ".") {
		extended = strings.TrimRight(destDir, "/") + "/" + name
		remoteFolder = naming.Folder(remoteFolder)
	}
	local, err := store.DownloadFolder(ctx, remoteFolder, destDir)
	if err != nil {
		return "", domain.NewTransferError("download_folder", remoteFolder, err)
	}
	if extended != "" {
		return extended, nil
	}
	return local, nil
}

// UploadFolder recursively uploads localDir into remoteFolder.
func (s *Service) UploadFolder(ctx context.Context, localDir, remoteFolder string) (string, error) {
	ctxlog.FromContext(ctx).Info("uploading folder", "src", localDir, "dest", remoteFolder)
	store, err := s.pick(remoteFolder)
	if err != nil {
		return "", err
	}
	remote, err := store.UploadFolder(ctx, localDir, remoteFolder)
	if err != nil {
		return "", domain.NewTransferError("upload_folder", remoteFolder, err)
	}
	return remote, nil
}

// ListFiles lists file names directly under folder filtered by caret
// patterns, returned as full paths.
func (s *Service) ListFiles(ctx context.Context, folder string, include, exclude []string) ([]string, error) {
	store, err := s.pick(folder)
	if err != nil {
		return nil, err
	}
	names, err := store.ListFiles(ctx, folder, ParsePatterns(include), ParsePatterns(exclude))
	if err != nil {
		return nil, domain.NewTransferError("list", folder, err)
	}
	return naming.FullPaths(folder, names), nil
}
