package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/segment-flow/internal/gemini"
	"github.com/nguyentantai21042004/segment-flow/internal/postgen"
)

func newPostCmd(configPath *string) *cobra.Command {
	var (
		style      string
		transcript string
		out        string
	)

	cmd := &cobra.Command{
		Use:   "post",
		Short: "Turn a transcript and a style guide into a LinkedIn post",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signalContext(cmd.Context())
			defer cancel()

			d, err := loadDeps(ctx, *configPath)
			if err != nil {
				return err
			}
			if d.client == nil {
				return fmt.Errorf("post generator: %w", gemini.ErrNoAPIKeys)
			}

			gen := postgen.New(d.client, d.cfg.Gemini.PostModel, d.log)
			output, err := gen.GenerateFiles(ctx, style, transcript, out)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), output.Post)
			fmt.Fprintf(cmd.OutOrStdout(), "\nSaved %s and %s\n", output.MarkdownPath, output.DocxPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&style, "style", "", "writing style guide")
	cmd.Flags().StringVar(&transcript, "transcript", "", "transcript to turn into a post")
	cmd.Flags().StringVarP(&out, "out", "o", "data/posts", "directory for the .md and .docx output")
	cmd.MarkFlagRequired("style")
	cmd.MarkFlagRequired("transcript")
	return cmd
}
