// Package transcript reads label-per-line transcripts, where each speaker
// label sits on its own line followed by one or more lines of what they said.
package transcript

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"
)

var (
	ErrRead     = errors.New("transcript unreadable")
	ErrEncoding = errors.New("transcript is not valid UTF-8")
)

const maxLineSize = 1024 * 1024

var bom = []byte{0xEF, 0xBB, 0xBF}

// Utterance is one speaker turn. Speaker keeps the casing found in the file.
type Utterance struct {
	Speaker string
	Text    string
}

// SpeakerSet holds the two labels a run cares about. Matching is case-insensitive.
type SpeakerSet struct {
	Target      string
	Counterpart string
}

// IsLabel reports whether line names one of the two speakers.
func (s SpeakerSet) IsLabel(line string) bool {
	line = strings.TrimSpace(line)
	return s.IsTarget(line) || s.IsCounterpart(line)
}

func (s SpeakerSet) IsTarget(label string) bool {
	return strings.EqualFold(strings.TrimSpace(label), strings.TrimSpace(s.Target))
}

func (s SpeakerSet) IsCounterpart(label string) bool {
	return strings.EqualFold(strings.TrimSpace(label), strings.TrimSpace(s.Counterpart))
}

// Parse splits r into utterances in source order. Blank lines are skipped and
// content that appears before the first label is dropped.
func Parse(r io.Reader, speakers SpeakerSet) ([]Utterance, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var (
		utterances []Utterance
		current    string
		hasSpeaker bool
		pending    []string
	)

	flush := func() {
		if hasSpeaker && len(pending) > 0 {
			utterances = append(utterances, Utterance{Speaker: current, Text: strings.Join(pending, " ")})
		}
		pending = pending[:0]
	}

	first := true
	for scanner.Scan() {
		raw := scanner.Bytes()
		if first {
			raw = bytes.TrimPrefix(raw, bom)
			first = false
		}
		if !utf8.Valid(raw) {
			return nil, fmt.Errorf("parse transcript: %w", ErrEncoding)
		}

		line := strings.TrimSpace(string(raw))
		if line == "" {
			continue
		}

		if speakers.IsLabel(line) {
			flush()
			current = line
			hasSpeaker = true
			continue
		}

		if hasSpeaker {
			pending = append(pending, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("parse transcript: %w: %v", ErrRead, err)
	}

	flush()
	return utterances, nil
}

// ParseFile is Parse over the file at path.
func ParseFile(path string, speakers SpeakerSet) ([]Utterance, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open transcript: %w: %v", ErrRead, err)
	}
	defer f.Close()

	return Parse(f, speakers)
}
