package processor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// moveToArchived moves the transcript out of the input folder. An existing
// file with the same name gets a timestamp suffix instead of being replaced.
func (p *implProcessor) moveToArchived(ctx context.Context, transcriptPath string) error {
	if err := os.MkdirAll(p.cfg.Paths.Archived, 0755); err != nil {
		return fmt.Errorf("create archived dir: %w", err)
	}

	filename := filepath.Base(transcriptPath)
	destPath := filepath.Join(p.cfg.Paths.Archived, filename)
	if _, err := os.Stat(destPath); err == nil {
		ext := filepath.Ext(filename)
		destPath = filepath.Join(p.cfg.Paths.Archived,
			fmt.Sprintf("%s_%s%s", filename[:len(filename)-len(ext)], time.Now().Format("20060102150405"), ext))
	}

	p.logger.Info(ctx, "Moving to archived folder: %s -> %s", transcriptPath, destPath)

	if err := os.Rename(transcriptPath, destPath); err != nil {
		return fmt.Errorf("move to archived: %w", err)
	}
	return nil
}

// cleanupTempFile removes a temporary file, logs warning if fails
func (p *implProcessor) cleanupTempFile(ctx context.Context, filePath string) {
	if err := os.Remove(filePath); err != nil && !os.IsNotExist(err) {
		p.logger.Warn(ctx, "Failed to cleanup temp file %s: %v", filePath, err)
	} else {
		p.logger.Debug(ctx, "Cleaned up temp file: %s", filePath)
	}
}
