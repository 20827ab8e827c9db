// Package runlog persists the per-job run record: the resolved module
// instance, the assembled command, the execution outcome, and the state
// the run finished in. The record is written into the job's output folder
// before upload so it travels with the results.
package runlog

import (
	"encoding/json"
	"os"
	"time"

	"pipestage/internal/naming"
	"pipestage/pkg/domain"
)

// Record is the persisted run log document.
type Record struct {
	Module     string                 `json:"module"`
	JobID      string                 `json:"job_id"`
	SampleID   string                 `json:"sample_id,omitempty"`
	State      domain.RunState        `json:"state"`
	Command    string                 `json:"command,omitempty"`
	ExitCode   int                    `json:"exit_code"`
	DryRun     bool                   `json:"dryrun,omitempty"`
	StartedAt  time.Time              `json:"started_at"`
	FinishedAt time.Time              `json:"finished_at"`
	Error      string                 `json:"error,omitempty"`
	Instance   *domain.ModuleInstance `json:"module_instance,omitempty"`
}

// Write persists the record into dir as <module>.<job>.job.log and returns
// the written path.
func Write(dir string, rec *Record) (string, error) {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return "", err
	}
	path := naming.FullPath(dir, naming.RunLogName(rec.Module, rec.JobID))
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// Read loads a previously written record.
func Read(path string) (*Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}
