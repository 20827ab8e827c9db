// Package core declares the transfer driver contracts: the Store
// interface, driver identifiers, caret-pattern matching, and driver
// inference from path schemes. Drivers live under
// internal/infra/transfer; the facade lives in internal/transfer.
package core

import "context"

// Driver identifies a transfer backend driver.
type Driver string

// Supported transfer drivers.
const (
	// DriverLocal copies between local filesystem paths.
	DriverLocal Driver = "local"
	// DriverS3 transfers against an S3-compatible object store.
	DriverS3 Driver = "s3"
	// DriverMemory is the mock driver: it records calls and returns
	// computed destination paths without touching storage.
	DriverMemory Driver = "memory"
)

// Store is the interface transfer drivers implement. Local paths are
// always plain filesystem paths; remote paths carry the driver's scheme.
type Store interface {
	Driver() Driver

	// DownloadFiles stages individual files into destDir and returns the
	// local paths in the same order as the remote list.
	DownloadFiles(ctx context.Context, remote []string, destDir string) ([]string, error)

	// DownloadFolder recursively stages a folder into destDir and returns
	// the local directory.
	DownloadFolder(ctx context.Context, remoteFolder, destDir string) (string, error)

	// UploadFolder recursively uploads localDir into remoteFolder and
	// returns the remote folder.
	UploadFolder(ctx context.Context, localDir, remoteFolder string) (string, error)

	// ListFiles returns the names of files directly under folder that
	// match every include pattern and do not match the exclude patterns.
	ListFiles(ctx context.Context, folder string, include, exclude []Pattern) ([]string, error)
}
