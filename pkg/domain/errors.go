package domain

import "fmt"

// ConfigError indicates a malformed or incomplete module template or
// runner configuration. Fatal; the run aborts before any staging.
type ConfigError struct {
	Reason string
	Err    error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("configuration: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("configuration: %s", e.Reason)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// NewConfigError builds a ConfigError with an optional cause.
func NewConfigError(reason string, err error) *ConfigError {
	return &ConfigError{Reason: reason, Err: err}
}

// TransferError indicates a download or upload failure. Fatal; no retries
// are attempted by this component.
type TransferError struct {
	Op   string // "download_files", "download_folder", "upload_folder", "list"
	Path string
	Err  error
}

func (e *TransferError) Error() string {
	return fmt.Sprintf("transfer %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *TransferError) Unwrap() error { return e.Err }

// NewTransferError wraps a storage failure for one transfer operation.
func NewTransferError(op, path string, err error) *TransferError {
	return &TransferError{Op: op, Path: path, Err: err}
}

// ExecError indicates the external tool exited nonzero or could not be
// started. Fatal; the run log still records the attempted command.
type ExecError struct {
	Command  string
	ExitCode int
	Err      error
}

func (e *ExecError) Error() string {
	return fmt.Sprintf("program execution failed (exit %d): %s: %v", e.ExitCode, e.Command, e.Err)
}

func (e *ExecError) Unwrap() error { return e.Err }

// NewExecError wraps a subprocess failure.
func NewExecError(command string, exitCode int, err error) *ExecError {
	return &ExecError{Command: command, ExitCode: exitCode, Err: err}
}
