package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/segment-flow/internal/archive"
	"github.com/nguyentantai21042004/segment-flow/internal/pipeline"
)

func newRunCmd(configPath *string) *cobra.Command {
	var (
		file string
		out  string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Segment and filter one transcript, writing the accepted segments to a zip",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signalContext(cmd.Context())
			defer cancel()

			d, err := loadDeps(ctx, *configPath)
			if err != nil {
				return err
			}

			data, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("read transcript: %w", err)
			}

			pipe, err := d.pipeline(d.cfg)
			if err != nil {
				return err
			}

			result, err := pipe.Run(ctx, data)
			if errors.Is(err, pipeline.ErrEmptyResult) {
				fmt.Fprintf(cmd.OutOrStdout(), "No meaningful content found after filtering (%d segments considered).\n", len(result.Segments))
				return nil
			}
			if err != nil {
				return err
			}

			if err := archive.SaveZip(out, result.Accepted); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d of %d segments kept, written to %s\n", len(result.Accepted), len(result.Segments), out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "transcript to process")
	cmd.Flags().StringVarP(&out, "out", "o", archive.DownloadName, "zip file to write")
	cmd.MarkFlagRequired("file")
	return cmd
}
