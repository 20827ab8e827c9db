// Command pipestage stages a module run's files, assembles its command
// line from the module template, executes it, and uploads the results.
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"pipestage/internal/config"
	"pipestage/internal/ctxlog"
	"pipestage/internal/iospec"
	"pipestage/internal/job"
	"pipestage/internal/metrics"
	"pipestage/internal/template"
	"pipestage/internal/transfer"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "pipestage",
		Short:         "Module staging and argument assembly for pipeline runs",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(newRunCmd())
	return root
}

func newRunCmd() *cobra.Command {
	var (
		moduleName string
		runArgs    string
		workingDir string
		configFile string
		mock       bool
		dryRun     bool
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run one module: stage inputs, assemble, execute, upload",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configFile)
			if err != nil {
				return err
			}
			if workingDir != "" {
				cfg.WorkingRoot = workingDir
			}
			if mock {
				cfg.Mock = true
			}

			level, err := log.ParseLevel(cfg.LogLevel)
			if err != nil {
				return fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
			}
			logger := log.NewWithOptions(os.Stderr, log.Options{
				ReportTimestamp: true,
				Level:           level,
			})
			ctx := ctxlog.WithLogger(cmd.Context(), logger)

			svc, err := transfer.Open(ctx, transfer.Options{
				Mock:              cfg.Mock,
				S3Region:          cfg.S3.Region,
				S3Endpoint:        cfg.S3.Endpoint,
				S3PathStyle:       cfg.S3.PathStyle,
				S3AccessKeyID:     cfg.S3.AccessKeyID,
				S3SecretAccessKey: cfg.S3.SecretAccessKey,
				S3SessionToken:    cfg.S3.SessionToken,
			})
			if err != nil {
				return err
			}

			req, err := iospec.LoadRequest(runArgs)
			if err != nil {
				return err
			}
			if dryRun {
				req.DryRun = true
			}

			runner := job.NewRunner(
				template.NewStore(svc, cfg.TemplateRoot),
				svc,
				metrics.NewRecorder("pipestage"),
				cfg.WorkingRoot,
				cfg.ExecTimeout,
			)
			rec, err := runner.Run(ctx, job.Params{
				Module:      moduleName,
				Request:     req,
				RequestPath: runArgs,
			})
			if err != nil {
				return err
			}
			logger.Info("run complete", "module", rec.Module, "job", rec.JobID, "state", rec.State)
			return nil
		},
	}
	cmd.Flags().StringVar(&moduleName, "module_name", "", "module template name")
	cmd.Flags().StringVar(&runArgs, "run_arguments", "", "path to the run request JSON document")
	cmd.Flags().StringVar(&workingDir, "working_dir", "", "local root for job working directories")
	cmd.Flags().StringVar(&configFile, "config", "", "path to a pipestage.yaml config file")
	cmd.Flags().BoolVar(&mock, "mock", false, "compute paths without touching storage")
	cmd.Flags().BoolVar(&dryRun, "dryrun", false, "assemble the command but do not execute it")
	_ = cmd.MarkFlagRequired("module_name")
	_ = cmd.MarkFlagRequired("run_arguments")
	_ = cmd.MarkFlagRequired("working_dir")
	return cmd
}
