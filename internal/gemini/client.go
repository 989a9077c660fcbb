package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// embedBatchSize is the most texts the API accepts in one EmbedContent call.
const embedBatchSize = 100

var ErrEmptyResponse = errors.New("empty response from Gemini")

// Generate sends one prompt and returns the concatenated text parts of the first candidate.
func (c *implClient) Generate(ctx context.Context, model string, req Request) (string, error) {
	cfg := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(req.Temperature),
		MaxOutputTokens: req.MaxTokens,
	}
	if req.System != "" {
		cfg.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
	}

	var text string
	err := c.withRotation(ctx, func(client *genai.Client) error {
		result, err := client.Models.GenerateContent(ctx, model, genai.Text(req.Prompt), cfg)
		if err != nil {
			return err
		}

		text, err = responseText(result)
		return err
	})
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	return text, nil
}

// responseText joins the text parts of the first candidate. A reply with no
// text, as when thinking used up the whole output budget, is ErrEmptyResponse.
func responseText(result *genai.GenerateContentResponse) (string, error) {
	if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return "", ErrEmptyResponse
	}

	var b strings.Builder
	for _, part := range result.Candidates[0].Content.Parts {
		if part != nil && part.Text != "" {
			b.WriteString(part.Text)
		}
	}
	if strings.TrimSpace(b.String()) == "" {
		return "", ErrEmptyResponse
	}
	return b.String(), nil
}

// Embed returns one vector per text, in input order.
func (c *implClient) Embed(ctx context.Context, model string, texts []string) ([][]float32, error) {
	vectors := make([][]float32, 0, len(texts))

	for start := 0; start < len(texts); start += embedBatchSize {
		end := min(start+embedBatchSize, len(texts))

		contents := make([]*genai.Content, 0, end-start)
		for _, t := range texts[start:end] {
			contents = append(contents, genai.NewContentFromText(t, genai.RoleUser))
		}

		var batch [][]float32
		err := c.withRotation(ctx, func(client *genai.Client) error {
			result, err := client.Models.EmbedContent(ctx, model, contents, nil)
			if err != nil {
				return err
			}
			if result == nil || len(result.Embeddings) != len(contents) {
				return ErrEmptyResponse
			}
			batch = batch[:0]
			for _, e := range result.Embeddings {
				batch = append(batch, e.Values)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("embed content: %w", err)
		}
		vectors = append(vectors, batch...)
	}

	return vectors, nil
}

// withRotation calls fn with a client for the current key and rotates keys on
// 429 / quota errors until every key has been tried once.
func (c *implClient) withRotation(ctx context.Context, fn func(*genai.Client) error) error {
	return c.rotate(ctx, func(key string) error {
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  key,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return fmt.Errorf("create client: %w", err)
		}
		return fn(client)
	})
}

func (c *implClient) rotate(ctx context.Context, call func(key string) error) error {
	var lastErr error

	for range len(c.apiKeys) {
		idx, key := c.key()

		err := call(key)
		if err == nil {
			return nil
		}
		if !isRateLimited(err) {
			return err
		}

		c.logger.Warn(ctx, "Key %d rate limited, rotating...", idx+1)
		c.rotateFrom(idx)
		lastErr = err
	}

	return fmt.Errorf("all API keys exhausted: %w", lastErr)
}

func (c *implClient) key() (int, string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.currentKey, c.apiKeys[c.currentKey]
}

// rotateFrom advances past idx unless a concurrent caller already did.
func (c *implClient) rotateFrom(idx int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.currentKey == idx {
		c.currentKey = (c.currentKey + 1) % len(c.apiKeys)
	}
}

func isRateLimited(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "429") || strings.Contains(msg, "quota") || strings.Contains(msg, "RESOURCE_EXHAUSTED")
}
