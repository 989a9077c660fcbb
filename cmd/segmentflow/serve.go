package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/segment-flow/internal/httpapi"
	"github.com/nguyentantai21042004/segment-flow/internal/postgen"
)

func newServeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the upload and post generation HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			d, err := loadDeps(ctx, *configPath)
			if err != nil {
				return err
			}

			var posts postgen.Generator
			if d.client != nil {
				posts = postgen.New(d.client, d.cfg.Gemini.PostModel, d.log)
			}

			srv := httpapi.New(d.cfg, d.pipeline, posts, d.log)
			addr := fmt.Sprintf("%s:%d", d.cfg.Server.Host, d.cfg.Server.Port)

			errChan := make(chan error, 1)
			go func() {
				errChan <- srv.Listen(addr)
			}()

			d.log.Info(ctx, "========================================")
			d.log.Info(ctx, "Segment Flow API listening on %s", addr)
			d.log.Info(ctx, "Strategy: %s, min words: %d, max upload: %dMB",
				d.cfg.Segmentation.Strategy, d.cfg.Filter.MinWords, d.cfg.Server.MaxUploadSize)
			d.log.Info(ctx, "========================================")

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

			select {
			case <-sigChan:
				d.log.Info(ctx, "Shutdown signal received")
			case err := <-errChan:
				return fmt.Errorf("listen: %w", err)
			}

			d.log.Info(ctx, "Shutting down gracefully...")
			return srv.Shutdown()
		},
	}
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
}
