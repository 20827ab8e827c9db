// Package transfer moves job files between remote storage and a local
// working directory. It exposes one Service facade that auto-detects the
// backing driver from each path's scheme (object store vs local absolute
// path) and supports a mock mode that computes destination paths without
// performing IO. Contracts live in transfer/core; drivers live under
// internal/infra/transfer.
package transfer

import (
	"pipestage/internal/transfer/core"
)

type (
	// Driver identifies a transfer backend driver.
	Driver = core.Driver
	// Store is the interface transfer drivers implement.
	Store = core.Store
	// Pattern is a parsed caret-delimited file name pattern.
	Pattern = core.Pattern
)

const (
	// DriverLocal copies between local filesystem paths.
	DriverLocal = core.DriverLocal
	// DriverS3 transfers against an S3-compatible object store.
	DriverS3 = core.DriverS3
	// DriverMemory is the mock (no-IO) driver.
	DriverMemory = core.DriverMemory
)

// ParsePattern parses one caret pattern.
func ParsePattern(s string) Pattern { return core.ParsePattern(s) }

// ParsePatterns parses every caret pattern in order.
func ParsePatterns(ss []string) []Pattern { return core.ParsePatterns(ss) }

// InferDriver detects the backing driver for a path.
func InferDriver(path string) Driver { return core.InferDriver(path) }

// InferDriverAll detects the backing driver for a path list.
func InferDriverAll(paths []string) Driver { return core.InferDriverAll(paths) }
