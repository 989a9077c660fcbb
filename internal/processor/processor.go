package processor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nguyentantai21042004/segment-flow/internal/archive"
	"github.com/nguyentantai21042004/segment-flow/internal/pipeline"
)

// Process runs the pipeline over transcriptPath, writes the accepted segments
// to the output folder and archives the transcript. A transcript with no
// accepted segments is archived without output. Stage failures leave the
// transcript where it is.
func (p *implProcessor) Process(ctx context.Context, transcriptPath string) error {
	startTime := time.Now()
	name := strings.TrimSuffix(filepath.Base(transcriptPath), filepath.Ext(transcriptPath))

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Starting transcript processing: %s", transcriptPath)
	p.logger.Info(ctx, "========================================")

	data, err := os.ReadFile(transcriptPath)
	if err != nil {
		return fmt.Errorf("read transcript: %w", err)
	}

	result, err := p.pipeline.Run(ctx, data)
	switch {
	case errors.Is(err, pipeline.ErrEmptyResult):
		p.logger.Warn(ctx, "No content passed filtering for %s (%d segments considered)", name, len(result.Segments))
	case err != nil:
		return fmt.Errorf("run pipeline: %w", err)
	default:
		zipPath, err := p.writeOutputs(ctx, name, result)
		if err != nil {
			return err
		}
		p.logger.Info(ctx, "Output archive: %s", zipPath)
	}

	if err := p.moveToArchived(ctx, transcriptPath); err != nil {
		p.logger.Warn(ctx, "Failed to move transcript to archived folder: %v", err)
	}

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Processing completed: %s", name)
	p.logger.Info(ctx, "Processing time: %s", time.Since(startTime))
	p.logger.Info(ctx, "========================================")

	return nil
}

// writeOutputs writes <name>_segments.zip plus a plain-text report of every
// segment produced, accepted or not.
func (p *implProcessor) writeOutputs(ctx context.Context, name string, result *pipeline.Result) (string, error) {
	zipPath := filepath.Join(p.cfg.Paths.Output, name+"_segments.zip")
	tmpPath := zipPath + ".tmp"

	if err := archive.SaveZip(tmpPath, result.Accepted); err != nil {
		p.cleanupTempFile(ctx, tmpPath)
		return "", fmt.Errorf("save segments: %w", err)
	}
	if err := os.Rename(tmpPath, zipPath); err != nil {
		p.cleanupTempFile(ctx, tmpPath)
		return "", fmt.Errorf("move segments to output: %w", err)
	}

	reportPath := filepath.Join(p.cfg.Paths.Output, name+"_chunks.txt")
	report := archive.FormatReport(result.Segments, p.pipeline.Strategy())
	if err := os.WriteFile(reportPath, []byte(report), 0644); err != nil {
		p.logger.Warn(ctx, "Failed to write chunk report %s: %v", reportPath, err)
	}

	return zipPath, nil
}
