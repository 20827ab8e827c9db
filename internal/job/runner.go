// Package job drives one module run end to end: fetch the template, build
// the IO descriptor, resolve and stage the instance, execute (or dry-run)
// the assembled command, persist the run log, and upload the output
// folder. Dry runs stop after the local run-log write; nothing leaves the
// working directory.
package job

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/xid"

	"pipestage/internal/assemble"
	"pipestage/internal/ctxlog"
	"pipestage/internal/executor"
	"pipestage/internal/iospec"
	"pipestage/internal/metrics"
	"pipestage/internal/naming"
	"pipestage/internal/runlog"
	"pipestage/internal/template"
	"pipestage/internal/transfer"
	"pipestage/pkg/domain"
)

// outputSubdir is the working-directory subfolder tool outputs land in and
// the only folder uploaded after the run.
const outputSubdir = "module_out"

// Runner executes module runs. Safe for concurrent use; every run gets its
// own working directory.
type Runner struct {
	templates   *template.Store
	svc         *transfer.Service
	metrics     *metrics.Recorder
	workRoot    string
	execTimeout time.Duration
}

// NewRunner constructs a Runner. metrics may be nil.
func NewRunner(templates *template.Store, svc *transfer.Service, rec *metrics.Recorder, workRoot string, execTimeout time.Duration) *Runner {
	return &Runner{
		templates:   templates,
		svc:         svc,
		metrics:     rec,
		workRoot:    workRoot,
		execTimeout: execTimeout,
	}
}

// Params identify one run.
type Params struct {
	// Module is the template name.
	Module string
	// Request is the parsed run request.
	Request *iospec.RunRequest
	// RequestPath, when set, contributes the job ID embedded in the
	// document name (<module>.<job>.io.json).
	RequestPath string
	// JobID overrides ID extraction; a fresh ID is generated when both it
	// and RequestPath are empty.
	JobID string
}

func (p Params) jobID() string {
	if p.JobID != "" {
		return p.JobID
	}
	if id := naming.JobIDFromDocPath(p.RequestPath); id != "" {
		return id
	}
	return xid.New().String()
}

// Run executes one module run and returns its run log record. The record
// is also persisted into the job's output folder, so a failed run still
// leaves a log behind; the returned error is the failure cause.
func (r *Runner) Run(ctx context.Context, p Params) (*runlog.Record, error) {
	jobID := p.jobID()
	log := ctxlog.FromContext(ctx).With("module", p.Module, "job", jobID)
	ctx = ctxlog.WithLogger(ctx, log)

	workDir := filepath.Join(r.workRoot, uuid.NewString())
	outDir := filepath.Join(workDir, outputSubdir)
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, domain.NewConfigError("cannot create working directory", err)
	}
	log.Info("run starting", "workdir", workDir)

	rec := &runlog.Record{
		Module:    p.Module,
		JobID:     jobID,
		State:     domain.StatePendingTemplate,
		StartedAt: time.Now().UTC(),
	}
	fail := func(err error) (*runlog.Record, error) {
		rec.Error = err.Error()
		rec.FinishedAt = time.Now().UTC()
		if _, werr := runlog.Write(outDir, rec); werr != nil {
			log.Error("run log write failed", "err", werr)
		}
		return rec, err
	}

	tmpl, err := timed(r, "template", func() (*domain.Template, error) {
		return r.templates.Fetch(ctx, p.Module, workDir)
	})
	if err != nil {
		return fail(err)
	}

	desc, err := iospec.Build(p.Request, tmpl)
	if err != nil {
		return fail(err)
	}
	rec.SampleID = desc.SampleID

	inst := assemble.Resolve(ctx, tmpl, desc)
	rec.Instance = inst
	rec.State = domain.StateResolvedInstance

	asm := assemble.New(r.svc)
	staged, err := timed(r, "stage", func() (*assemble.StagedInstance, error) {
		return asm.Stage(ctx, inst, workDir)
	})
	if err != nil {
		return fail(err)
	}
	rec.State = domain.StateStaged

	cmd := asm.Build(ctx, staged, outDir)
	rec.State = domain.StateAssembled
	rec.Command = cmd.String()

	res, err := timed(r, "execute", func() (*executor.Result, error) {
		return executor.Run(ctx, cmd, executor.Options{WorkDir: workDir, Timeout: r.execTimeout})
	})
	if res != nil {
		rec.ExitCode = res.ExitCode
		rec.DryRun = res.DryRun
	}
	if err != nil {
		return fail(err)
	}
	if res.DryRun {
		rec.State = domain.StateDryRunSkipped
	} else {
		rec.State = domain.StateExecuted
	}

	// persisted before upload so the log travels with the results
	if _, err := runlog.Write(outDir, rec); err != nil {
		return fail(err)
	}

	if res.DryRun {
		log.Info("dry run, skipping upload")
	} else if dest := uploadDestination(inst, desc); dest == "" {
		log.Warn("no output destination, skipping upload")
	} else {
		_, err := timed(r, "upload", func() (string, error) {
			return r.svc.UploadFolder(ctx, outDir, dest)
		})
		if err != nil {
			return fail(err)
		}
		rec.State = domain.StateUploaded
	}

	rec.State = domain.StateDone
	rec.FinishedAt = time.Now().UTC()
	if _, err := runlog.Write(outDir, rec); err != nil {
		return fail(err)
	}
	log.Info("run finished", "state", rec.State, "exit", rec.ExitCode)
	return rec, nil
}

// uploadDestination is the remote folder the output directory is pushed
// to: the resolved output binding's folder, falling back to the folder of
// the first declared output path.
func uploadDestination(inst *domain.ModuleInstance, desc *domain.IODescriptor) string {
	if inst.Output.Resolved && inst.Output.Directory != "" {
		return inst.Output.Directory
	}
	return naming.FolderOf(desc.PrimaryOutputs)
}

// timed runs fn and records its duration and outcome under stage.
func timed[T any](r *Runner, stage string, fn func() (T, error)) (T, error) {
	start := time.Now()
	v, err := fn()
	if r.metrics != nil {
		r.metrics.Observe(stage, err == nil, time.Since(start))
	}
	return v, err
}
