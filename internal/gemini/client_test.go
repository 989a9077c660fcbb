package gemini

import (
	"context"
	"errors"
	"strings"
	"testing"

	"google.golang.org/genai"

	"github.com/nguyentantai21042004/segment-flow/internal/logger"
)

func newTestClient(t *testing.T, keys ...string) *implClient {
	t.Helper()
	c, err := New(keys, logger.Nop())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return c.(*implClient)
}

func TestNewWithoutKeys(t *testing.T) {
	if _, err := New(nil, logger.Nop()); !errors.Is(err, ErrNoAPIKeys) {
		t.Fatalf("New() error = %v, want ErrNoAPIKeys", err)
	}
}

func TestRotateOnRateLimit(t *testing.T) {
	c := newTestClient(t, "k1", "k2", "k3")

	var tried []string
	err := c.rotate(context.Background(), func(key string) error {
		tried = append(tried, key)
		if key == "k3" {
			return nil
		}
		return errors.New("Error 429, RESOURCE_EXHAUSTED")
	})
	if err != nil {
		t.Fatalf("rotate() error = %v", err)
	}
	if strings.Join(tried, ",") != "k1,k2,k3" {
		t.Errorf("tried = %v", tried)
	}
	if c.currentKey != 2 {
		t.Errorf("currentKey = %d, want 2", c.currentKey)
	}
}

func TestRotateStopsOnOtherErrors(t *testing.T) {
	c := newTestClient(t, "k1", "k2")
	boom := errors.New("permission denied")

	calls := 0
	err := c.rotate(context.Background(), func(string) error {
		calls++
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("rotate() error = %v, want %v", err, boom)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestRotateAllKeysExhausted(t *testing.T) {
	c := newTestClient(t, "k1", "k2")

	calls := 0
	err := c.rotate(context.Background(), func(string) error {
		calls++
		return errors.New("quota exceeded")
	})
	if err == nil || !strings.Contains(err.Error(), "all API keys exhausted") {
		t.Fatalf("rotate() error = %v", err)
	}
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
}

func TestIsRateLimited(t *testing.T) {
	tests := []struct {
		msg  string
		want bool
	}{
		{"Error 429: too many requests", true},
		{"quota exceeded for project", true},
		{"RESOURCE_EXHAUSTED", true},
		{"invalid argument", false},
	}
	for _, tt := range tests {
		if got := isRateLimited(errors.New(tt.msg)); got != tt.want {
			t.Errorf("isRateLimited(%q) = %v, want %v", tt.msg, got, tt.want)
		}
	}
}

func TestResponseText(t *testing.T) {
	content := func(texts ...string) *genai.GenerateContentResponse {
		var parts []*genai.Part
		for _, s := range texts {
			parts = append(parts, &genai.Part{Text: s})
		}
		return &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{{Content: &genai.Content{Parts: parts}}},
		}
	}

	tests := []struct {
		name    string
		result  *genai.GenerateContentResponse
		want    string
		wantErr error
	}{
		{"joined parts", content("Substance: 4\n", "YES"), "Substance: 4\nYES", nil},
		{"nil response", nil, "", ErrEmptyResponse},
		{"no candidates", &genai.GenerateContentResponse{}, "", ErrEmptyResponse},
		{"nil content", &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{}}}, "", ErrEmptyResponse},
		{"no text parts", content(), "", ErrEmptyResponse},
		{"only empty text", content("", " \n"), "", ErrEmptyResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := responseText(tt.result)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("responseText() error = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("responseText() = %q, want %q", got, tt.want)
			}
		})
	}
}
