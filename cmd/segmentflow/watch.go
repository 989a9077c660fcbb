package main

import (
	"context"
	"errors"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/segment-flow/internal/processor"
	"github.com/nguyentantai21042004/segment-flow/internal/watcher"
)

func newWatchCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Process transcripts dropped into the input folder",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signalContext(cmd.Context())
			defer cancel()

			d, err := loadDeps(ctx, *configPath)
			if err != nil {
				return err
			}
			if err := ensureDirectories(d.cfg); err != nil {
				return err
			}

			pipe, err := d.pipeline(d.cfg)
			if err != nil {
				return err
			}

			proc := processor.New(d.cfg, pipe, d.log)
			w, err := watcher.New(d.cfg.Paths.Input, proc.Process, d.log, d.cfg.Performance.MaxConcurrent)
			if err != nil {
				return err
			}
			defer w.Stop()

			d.log.Info(ctx, "========================================")
			d.log.Info(ctx, "Transcript watcher is ready! (%s/%s, %d CPUs)", runtime.GOOS, runtime.GOARCH, runtime.NumCPU())
			d.log.Info(ctx, "Monitoring: %s", d.cfg.Paths.Input)
			d.log.Info(ctx, "Output: %s", d.cfg.Paths.Output)
			d.log.Info(ctx, "Strategy: %s", pipe.Strategy())
			d.log.Info(ctx, "Concurrent: %d transcripts at once", d.cfg.Performance.MaxConcurrent)
			d.log.Info(ctx, "Press Ctrl+C to stop")
			d.log.Info(ctx, "========================================")

			if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			d.log.Info(ctx, "Transcript watcher stopped")
			return nil
		},
	}
}
