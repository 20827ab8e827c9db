package core

import "strings"

// InferDriver detects the backing driver for a path: "s3:/"-prefixed
// paths (and amazonaws S3 URLs) use the object store, everything else the
// local filesystem.
func InferDriver(path string) Driver {
	if strings.HasPrefix(path, "s3:/") {
		return DriverS3
	}
	if strings.Contains(path, "amazonaws") && strings.Contains(path, "s3") {
		return DriverS3
	}
	return DriverLocal
}

// InferDriverAll detects the driver for a path list: the first non-empty
// path decides, defaulting to local.
func InferDriverAll(paths []string) Driver {
	for _, p := range paths {
		if p == "" {
			continue
		}
		return InferDriver(p)
	}
	return DriverLocal
}
