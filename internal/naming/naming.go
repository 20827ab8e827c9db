// Package naming implements the path and file-naming conventions shared by
// the staging pipeline: file/folder splitting that works for both local
// paths and object-store URLs, full-path joining, dotted file-type
// inference with a registered compound-suffix set, sample-ID inference,
// and the storage hierarchy (/team/user/pipeline/run/sample/module).
//
// filepath.Join is deliberately not used here: it would rewrite
// "s3://bucket/key" style URLs.
package naming

import "strings"

// compoundTypes are two-segment dotted suffixes treated as one file type.
var compoundTypes = []string{"fastq.gz"}

// ValidTypes enumerates the file types the pipeline recognizes.
var ValidTypes = []string{"FASTQ", "BAM", "SAM", "BED", "TXT", "CSV", "JSON", "GZ", "FASTQ.GZ", "WIG", "HTML"}

// fastqSampleMarkers separate a FASTQ sample ID from its lane/read/index
// suffix, e.g. mysample_R1.fastq.gz.
var fastqSampleMarkers = []string{"_L001", "_L002", "_L003", "_L004", "_R1", "_R2", "_I1", "_I2"}

// FileOnly returns the final path segment.
func FileOnly(path string) string {
	if i := strings.LastIndex(path, "/"); i >= 0 {
		return path[i+1:]
	}
	return path
}

// FileOnlyAll applies FileOnly to every path, preserving order.
func FileOnlyAll(paths []string) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = FileOnly(p)
	}
	return out
}

// Folder returns the containing folder of a path with a trailing slash.
// A path whose final segment has no dot is treated as already being a
// folder.
func Folder(path string) string {
	if path == "" {
		return ""
	}
	if strings.Contains(FileOnly(path), ".") {
		return path[:strings.LastIndex(path, "/")+1]
	}
	return strings.TrimRight(path, "/") + "/"
}

// FolderOf returns the containing folder of the first path in a value,
// or "" for an empty value.
func FolderOf(paths []string) string {
	if len(paths) == 0 {
		return ""
	}
	return Folder(paths[0])
}

// FullPath joins a root folder and a file name. A name that already
// contains the root is returned unchanged; an empty name resolves to the
// root itself (with a trailing slash), which is how folder-valued slots
// reference their staging directory.
func FullPath(root, name string) string {
	if name == "" {
		return strings.TrimRight(root, "/") + "/"
	}
	if root != "" && strings.Contains(name, root) {
		return name
	}
	if root == "" {
		return name
	}
	return strings.TrimRight(root, "/") + "/" + name
}

// FullPaths joins a root folder with every name, preserving order.
func FullPaths(root string, names []string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = FullPath(root, n)
	}
	return out
}

// InferType infers the canonical (lowercase) file type from a file name:
// the substring after the final dot, unless the name ends with a
// registered compound suffix, in which case the two final dot-segments
// form the type. Folder paths and extensionless names infer "".
func InferType(name string) string {
	base := FileOnly(name)
	if !strings.Contains(base, ".") {
		return ""
	}
	lower := strings.ToLower(base)
	for _, combo := range compoundTypes {
		if strings.HasSuffix(lower, combo) {
			parts := strings.Split(lower, ".")
			return parts[len(parts)-2] + "." + parts[len(parts)-1]
		}
	}
	parts := strings.Split(lower, ".")
	return parts[len(parts)-1]
}

// InferTypeOf infers the type from the first of a list of paths.
func InferTypeOf(paths []string) string {
	if len(paths) == 0 {
		return ""
	}
	return InferType(paths[0])
}

// IsValidType reports whether the (case-insensitive) type is registered.
func IsValidType(t string) bool {
	for _, v := range ValidTypes {
		if strings.EqualFold(t, v) {
			return true
		}
	}
	return false
}

// InferSampleID infers the sample ID from a file name. FASTQ names have
// their lane/read/index markers stripped; everything else uses the name up
// to the first dot.
func InferSampleID(fileName string) string {
	base := strings.SplitN(FileOnly(fileName), ".", 2)[0]
	if strings.Contains(strings.ToLower(fileName), "fastq") {
		for _, marker := range fastqSampleMarkers {
			if i := strings.LastIndex(base, marker); i >= 0 {
				return base[:i]
			}
		}
	}
	return base
}

// GroupBySample groups input file paths by their inferred sample IDs,
// preserving per-sample file order.
func GroupBySample(paths []string) map[string][]string {
	groups := make(map[string][]string)
	for _, p := range paths {
		sid := InferSampleID(FileOnly(p))
		groups[sid] = append(groups[sid], p)
	}
	return groups
}

// hierarchy segment offsets under /team/user/pipeline/run/sample/module.
const (
	segTeam = iota + 1
	segUser
	segPipeline
	segRun
	segSample
	segModule
)

func hierarchySegment(folder string, loc int) string {
	var parts []string
	switch {
	case strings.HasPrefix(folder, "s3://"):
		parts = strings.Split(folder[len("s3:/"):], "/")
	case strings.HasPrefix(folder, "/") || strings.HasPrefix(folder, "~/"):
		parts = strings.Split(folder, "/")
	default:
		parts = strings.Split(folder, "/")
		loc--
	}
	if loc >= 0 && loc < len(parts) {
		return parts[loc]
	}
	return ""
}

// TeamID extracts the team segment from a hierarchy location.
func TeamID(folder string) string { return hierarchySegment(folder, segTeam) }

// UserID extracts the user segment from a hierarchy location.
func UserID(folder string) string { return hierarchySegment(folder, segUser) }

// PipelineID extracts the pipeline segment from a hierarchy location.
func PipelineID(folder string) string { return hierarchySegment(folder, segPipeline) }

// RunID extracts the run segment from a hierarchy location.
func RunID(folder string) string { return hierarchySegment(folder, segRun) }

// SampleIDFromLocation extracts the sample segment from a hierarchy location.
func SampleIDFromLocation(folder string) string { return hierarchySegment(folder, segSample) }

// ModuleID extracts the module segment from a hierarchy location.
func ModuleID(folder string) string { return hierarchySegment(folder, segModule) }

// Scheme returns the storage scheme prefix of a path: "s3://" for object
// store locations, "/" otherwise.
func Scheme(path string) string {
	if strings.HasPrefix(path, "s3:") {
		return "s3://"
	}
	return "/"
}
