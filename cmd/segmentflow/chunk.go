package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/segment-flow/internal/archive"
	"github.com/nguyentantai21042004/segment-flow/internal/config"
	"github.com/nguyentantai21042004/segment-flow/internal/pipeline"
)

func newChunkCmd(configPath *string) *cobra.Command {
	var (
		file      string
		output    string
		method    string
		threshold float64
		target    string
		counter   string
	)

	cmd := &cobra.Command{
		Use:   "chunk",
		Short: "Segment a transcript without filtering and print the chunk report",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			d, err := loadDepsOrDefault(ctx, *configPath, cmd.Flags().Changed("config"))
			if err != nil {
				return err
			}

			cfg := *d.cfg
			if cmd.Flags().Changed("method") {
				cfg.Segmentation.Strategy = method
			}
			if cmd.Flags().Changed("threshold") {
				cfg.Segmentation.SimilarityThreshold = threshold
			}
			if target != "" {
				cfg.Speakers.Target = target
			}
			if counter != "" {
				cfg.Speakers.Counterpart = counter
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			pipe, err := chunkPipeline(d, &cfg)
			if err != nil {
				return err
			}

			data, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("read transcript: %w", err)
			}

			segments, err := pipe.Segment(ctx, data)
			if err != nil {
				return err
			}
			if len(segments) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No chunks found for %s. Check the transcript or speaker labels.\n", cfg.Speakers.Target)
				return nil
			}

			report := archive.FormatReport(segments, pipe.Strategy())
			fmt.Fprint(cmd.OutOrStdout(), report)

			if output != "" {
				if err := os.WriteFile(output, []byte(report), 0644); err != nil {
					return fmt.Errorf("write report: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Chunks written to '%s'.\n", output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "transcript to segment")
	cmd.Flags().StringVarP(&output, "output", "o", "", "also write the report to this file")
	cmd.Flags().StringVar(&method, "method", config.StrategyTurn, "segmentation strategy: turn or similarity")
	cmd.Flags().Float64Var(&threshold, "threshold", 0.6, "similarity threshold in [0,1]")
	cmd.Flags().StringVar(&target, "target", "", "target speaker label")
	cmd.Flags().StringVar(&counter, "counterpart", "", "counterpart speaker label")
	cmd.MarkFlagRequired("file")
	return cmd
}

// chunkPipeline never calls the judge, so it works without Gemini keys.
func chunkPipeline(d *deps, cfg *config.Config) (pipeline.Pipeline, error) {
	eval, _ := d.evaluator()
	return pipeline.FromConfig(cfg, d.embedder, eval, d.log)
}
