package postgen

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nguyentantai21042004/segment-flow/internal/gemini"
)

var ErrEmptyInput = errors.New("style and transcript must both be non-empty")

const (
	temperature    = 0.7
	maxReplyTokens = 2048
)

const systemPrompt = "You are a helpful assistant that turns transcripts into LinkedIn posts."

const postPrompt = `Attached is a style sheet that I want you to use to create this post.
Take the content from this transcript and turn it into a post that uses specific details and words from it, packaged for LinkedIn while still fitting the style sheet. Use good copywriting tactics.
Don't use emojis and only output the post. Keep it between 500 and 1000 characters.

Writing style:
%s

Transcript content:
%s`

func (g *implGenerator) Generate(ctx context.Context, style, transcript string) (string, error) {
	style = strings.TrimSpace(style)
	transcript = strings.TrimSpace(transcript)
	if style == "" || transcript == "" {
		return "", ErrEmptyInput
	}

	g.logger.Info(ctx, "Generating post with %s (%d chars of transcript)", g.model, len(transcript))

	post, err := g.client.Generate(ctx, g.model, gemini.Request{
		System:      systemPrompt,
		Prompt:      fmt.Sprintf(postPrompt, style, transcript),
		Temperature: temperature,
		MaxTokens:   maxReplyTokens,
	})
	if err != nil {
		return "", fmt.Errorf("generate post: %w", err)
	}

	post = strings.TrimSpace(post)
	if post == "" {
		return "", fmt.Errorf("generate post: %w", gemini.ErrEmptyResponse)
	}
	return post, nil
}

func (g *implGenerator) GenerateFiles(ctx context.Context, stylePath, transcriptPath, destDir string) (*Output, error) {
	style, err := os.ReadFile(stylePath)
	if err != nil {
		return nil, fmt.Errorf("read style: %w", err)
	}
	transcript, err := os.ReadFile(transcriptPath)
	if err != nil {
		return nil, fmt.Errorf("read transcript: %w", err)
	}

	post, err := g.Generate(ctx, string(style), string(transcript))
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return nil, fmt.Errorf("create dest dir: %w", err)
	}

	name := strings.TrimSuffix(filepath.Base(transcriptPath), filepath.Ext(transcriptPath))
	out := &Output{
		Post:         post,
		MarkdownPath: filepath.Join(destDir, name+"_post.md"),
		DocxPath:     filepath.Join(destDir, name+"_post.docx"),
	}

	md := fmt.Sprintf("# %s\n\n_%s_\n\n%s\n", name, time.Now().Format("2006-01-02 15:04"), post)
	if err := os.WriteFile(out.MarkdownPath, []byte(md), 0644); err != nil {
		return nil, fmt.Errorf("write markdown: %w", err)
	}

	if err := markdownToDocx(name, post, out.DocxPath); err != nil {
		return nil, fmt.Errorf("write docx: %w", err)
	}

	g.logger.Info(ctx, "[DONE] %s -> %s, %s", name, out.MarkdownPath, out.DocxPath)
	return out, nil
}
