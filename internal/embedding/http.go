package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// --- Sentence embeddings (/embed) ---
type EmbedReq struct {
	Texts []string `json:"texts"`
}
type EmbedResp struct {
	Embeddings [][]float32 `json:"embeddings"`
}

type httpEmbedder struct {
	url string
	c   *http.Client
}

// NewHTTP posts texts to url+"/embed", e.g. a small sentence-transformers service.
func NewHTTP(url string) Embedder {
	return &httpEmbedder{url: url, c: &http.Client{Timeout: 60 * time.Second}}
}

func (h *httpEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	b, err := json.Marshal(EmbedReq{Texts: texts})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.url+"/embed", bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.c.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("embed %s: %s", resp.Status, string(body))
	}

	var out EmbedResp
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("embed decode: %w", err)
	}
	return out.Embeddings, nil
}
