package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"stitch/internal/logging"
	"stitch/internal/manifest"
	"stitch/internal/task"
	"stitch/internal/workspace"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "run <manifest>",
		Short: "Compose a manifest into its output file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			logWriter, closeLog, err := logging.OpenLogFile(cfg.Paths.LogDir, "stitch.log", os.Stderr)
			if err != nil {
				return fmt.Errorf("open log file: %w", err)
			}
			defer closeLog()

			logger, err := logging.New(logging.Options{
				Level:  cfg.Logging.Level,
				Format: cfg.Logging.Format,
				Writer: logWriter,
			})
			if err != nil {
				return err
			}

			m, err := manifest.Load(args[0])
			if err != nil {
				return err
			}

			runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			ws, err := workspace.Acquire(cfg.Paths.WorkspaceDir)
			if err != nil {
				return err
			}
			defer func() {
				if err := ws.Release(); err != nil {
					logger.Warn("workspace release failed", logging.Error(err))
				}
			}()

			tools, closeTools, err := buildToolset(cfg, logger)
			if err != nil {
				return err
			}
			defer closeTools()

			tsk, err := task.New(m, ws, tools, logger)
			if err != nil {
				return err
			}

			started := time.Now()
			if err := tsk.Process(runCtx); err != nil {
				return err
			}
			logger.Info("composition complete",
				"output", m.Output,
				"elapsed", time.Since(started).Round(time.Millisecond).String())
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", m.Output)
			return nil
		},
	}
}
