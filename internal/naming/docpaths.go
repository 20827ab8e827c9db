package naming

import "strings"

// Document name kinds for per-run artifacts.
const (
	DocIO      = "io_json"  // <module>.<job>.io.json
	DocJob     = "job_json" // <module>.<job>.job.json
	DocJobName = "job_name" // job_<module>_<job>
	DocJobDef  = "job_def"  // jdef_<module>_<job>
)

// RunDocName returns the conventional name of a per-run document.
func RunDocName(module, jobID, kind string) string {
	switch kind {
	case DocIO:
		return module + "." + jobID + ".io.json"
	case DocJob:
		return module + "." + jobID + ".job.json"
	case DocJobName:
		return "job_" + module + "_" + jobID
	case DocJobDef:
		return "jdef_" + module + "_" + jobID
	default:
		return module + "." + jobID
	}
}

// RunLogName returns the per-job run-log file name.
func RunLogName(module, jobID string) string {
	return module + "." + jobID + ".job.log"
}

// TemplatePath locates a module's template document under the template root.
func TemplatePath(templateRoot, module string) string {
	return FullPath(templateRoot, module+".template.json")
}

// ModuleIODir returns the io/ document folder for a module under the
// module root.
func ModuleIODir(moduleRoot, module string) string {
	return FullPath(moduleRoot, module) + "/io/"
}

// ModuleJobDir returns the job/ document folder for a module under the
// module root.
func ModuleJobDir(moduleRoot, module string) string {
	return FullPath(moduleRoot, module) + "/job/"
}

// RunIOPath locates a run's IO document.
func RunIOPath(moduleRoot, module, jobID string) string {
	return ModuleIODir(moduleRoot, module) + RunDocName(module, jobID, DocIO)
}

// RunJobPath locates a run's job document.
func RunJobPath(moduleRoot, module, jobID string) string {
	return ModuleJobDir(moduleRoot, module) + RunDocName(module, jobID, DocJob)
}

// JobIDFromDocPath extracts the job ID from a run document path named
// <module>.<jobID>.<suffix...>; it returns "" when the name does not have
// at least three dot segments.
func JobIDFromDocPath(path string) string {
	parts := strings.Split(FileOnly(path), ".")
	if len(parts) < 3 {
		return ""
	}
	return parts[1]
}

// RunBaseFolder returns the /team/user/pipeline/run/ base of a hierarchy
// location, keeping the original scheme.
func RunBaseFolder(path string) string {
	p := strings.Join([]string{TeamID(path), UserID(path), PipelineID(path), RunID(path)}, "/")
	return Scheme(path) + strings.Trim(p, "/") + "/"
}

// SampleBaseFolder returns the /team/user/pipeline/run/sample/ base of a
// hierarchy location.
func SampleBaseFolder(path string) string {
	return RunBaseFolder(path) + strings.Trim(SampleIDFromLocation(path), "/") + "/"
}

// ModuleBaseFolder returns the /team/user/pipeline/run/sample/module/ base
// of a hierarchy location.
func ModuleBaseFolder(path string) string {
	return SampleBaseFolder(path) + strings.Trim(ModuleID(path), "/") + "/"
}
