package postgen

import "context"

// Generator turns a transcript into a social-media post written in the voice
// of a style guide.
type Generator interface {
	Generate(ctx context.Context, style, transcript string) (string, error)
	// GenerateFiles reads both inputs from disk and writes the post to destDir
	// as markdown and docx.
	GenerateFiles(ctx context.Context, stylePath, transcriptPath, destDir string) (*Output, error)
}

// Output lists the files written by GenerateFiles.
type Output struct {
	Post         string
	MarkdownPath string
	DocxPath     string
}
