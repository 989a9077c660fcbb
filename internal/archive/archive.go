// Package archive packages accepted segments for download.
package archive

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// DownloadName is the attachment name used for zipped segments.
const DownloadName = "filtered_chunks.zip"

// EntryName is the zip entry for the i-th segment, counting from 1.
func EntryName(i int) string {
	return fmt.Sprintf("filtered_chunk_%d.txt", i)
}

// WriteZip writes one deflated entry per segment, in order.
func WriteZip(w io.Writer, segments []string) error {
	zw := zip.NewWriter(w)
	for i, s := range segments {
		entry, err := zw.CreateHeader(&zip.FileHeader{Name: EntryName(i + 1), Method: zip.Deflate})
		if err != nil {
			_ = zw.Close()
			return fmt.Errorf("create %s: %w", EntryName(i+1), err)
		}
		if _, err := io.WriteString(entry, s); err != nil {
			_ = zw.Close()
			return fmt.Errorf("write %s: %w", EntryName(i+1), err)
		}
	}
	return zw.Close()
}

func Zip(segments []string) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteZip(&buf, segments); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SaveZip writes the archive to path, creating parent directories.
func SaveZip(path string, segments []string) error {
	data, err := Zip(segments)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write zip: %w", err)
	}
	return nil
}

var separator = strings.Repeat("-", 60)

// FormatReport renders segments as a plain-text chunk report.
func FormatReport(segments []string, method string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "=== Generated %d chunk(s) using method '%s' ===\n\n", len(segments), method)
	for i, s := range segments {
		fmt.Fprintf(&b, "[CHUNK %d]\n%s\n%s\n\n", i+1, s, separator)
	}
	return b.String()
}

// ParseReport recovers the segments from a report written by FormatReport.
func ParseReport(report string) []string {
	var (
		segments []string
		current  []string
	)
	flush := func() {
		if len(current) > 0 {
			segments = append(segments, strings.Join(current, " "))
			current = nil
		}
	}

	for _, line := range strings.Split(report, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "[CHUNK"):
			flush()
		case line == "", line == separator, strings.HasPrefix(line, "=== Generated"):
		default:
			current = append(current, line)
		}
	}
	flush()
	return segments
}
