// Package executor runs an assembled command as a subprocess. Dry-run
// commands are detected by their trailing marker token and never spawn.
package executor

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"time"

	"pipestage/internal/assemble"
	"pipestage/internal/ctxlog"
	"pipestage/pkg/domain"
)

// Options controls one execution.
type Options struct {
	// WorkDir is the subprocess working directory.
	WorkDir string
	// Timeout bounds the subprocess runtime; zero means no bound.
	Timeout time.Duration
	// Env entries are appended to the inherited environment.
	Env []string
	// Stdout receives the tool's standard output when the command has no
	// redirect target. Nil means the inherited standard output.
	Stdout io.Writer
}

// Result describes one finished (or skipped) execution.
type Result struct {
	Command   string        `json:"command"`
	ExitCode  int           `json:"exit_code"`
	DryRun    bool          `json:"dryrun,omitempty"`
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration"`
}

// Run executes the command. A command ending in the dry-run marker is
// reported as skipped without spawning anything. When the command carries
// a stdout redirect target, stdout streams into that file; otherwise the
// tool inherits standard output (or writes to opts.Stdout). Stderr is
// captured and logged on failure.
func Run(ctx context.Context, cmd *assemble.Command, opts Options) (*Result, error) {
	log := ctxlog.FromContext(ctx)
	res := &Result{Command: cmd.String(), StartedAt: time.Now()}

	if n := len(cmd.Tokens); n == 0 {
		return nil, domain.NewExecError("", -1, errors.New("empty command"))
	} else if cmd.Tokens[n-1] == domain.DryRunMarker {
		res.DryRun = true
		log.Info("dry run, skipping execution", "command", res.Command)
		return res, nil
	}

	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	proc := exec.CommandContext(ctx, cmd.Tokens[0], cmd.Tokens[1:]...)
	proc.Dir = opts.WorkDir
	proc.Env = append(os.Environ(), opts.Env...)

	var stderr bytes.Buffer
	proc.Stderr = &stderr
	proc.Stdout = os.Stdout
	if opts.Stdout != nil {
		proc.Stdout = opts.Stdout
	}
	if cmd.Stdout != "" {
		f, err := os.Create(cmd.Stdout)
		if err != nil {
			return nil, domain.NewExecError(res.Command, -1, err)
		}
		defer func() { _ = f.Close() }()
		proc.Stdout = f
	}

	log.Info("executing", "command", res.Command, "workdir", opts.WorkDir)
	err := proc.Run()
	res.Duration = time.Since(res.StartedAt)

	if err != nil {
		res.ExitCode = -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
		}
		log.Error("execution failed", "command", res.Command, "exit", res.ExitCode, "stderr", stderr.String())
		return res, domain.NewExecError(res.Command, res.ExitCode, err)
	}
	log.Info("execution finished", "command", cmd.Tokens[0], "duration", res.Duration)
	return res, nil
}
