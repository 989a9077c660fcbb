package segmenter

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/nguyentantai21042004/segment-flow/internal/embedding"
	"github.com/nguyentantai21042004/segment-flow/internal/transcript"
)

var speakers = transcript.SpeakerSet{Target: "Target", Counterpart: "Speaker A"}

func utt(speaker, text string) transcript.Utterance {
	return transcript.Utterance{Speaker: speaker, Text: text}
}

// fakeEmbedder hands out the prepared vectors in order.
type fakeEmbedder struct {
	vectors [][]float32
	err     error
	calls   int
	texts   []string
}

func (f *fakeEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	f.calls++
	f.texts = texts
	if f.err != nil {
		return nil, f.err
	}
	return f.vectors[:len(texts)], nil
}

// unitAt returns a 2-d unit vector whose cosine with (1,0) is sim.
func unitAt(sim float64) []float32 {
	return []float32{float32(sim), float32(math.Sqrt(1 - sim*sim))}
}

func assertSegments(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("segments = %q, want %q", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Errorf("segment %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestTurnBased(t *testing.T) {
	tests := []struct {
		name       string
		utterances []transcript.Utterance
		want       []string
	}{
		{
			name: "scenario A",
			utterances: []transcript.Utterance{
				utt("Speaker A", "Hi"),
				utt("Target", "Line one. Line two."),
				utt("Speaker A", "Bye"),
			},
			want: []string{"Line one. Line two."},
		},
		{
			name: "consecutive target turns merge",
			utterances: []transcript.Utterance{
				utt("target", "a"),
				utt("TARGET", "b"),
				utt("Speaker A", "q"),
				utt("Target", "c"),
			},
			want: []string{"a b", "c"},
		},
		{
			name: "counterpart only",
			utterances: []transcript.Utterance{
				utt("Speaker A", "q1"),
				utt("Speaker A", "q2"),
			},
			want: nil,
		},
		{
			name: "other speakers ignored",
			utterances: []transcript.Utterance{
				utt("Target", "a"),
				utt("Guest", "interjection"),
				utt("Target", "b"),
			},
			want: []string{"a b"},
		},
		{
			name:       "empty input",
			utterances: nil,
			want:       nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTurnBased(speakers).Segment(context.Background(), tt.utterances)
			if err != nil {
				t.Fatalf("Segment() error = %v", err)
			}
			assertSegments(t, got, tt.want)
		})
	}
}

func TestTurnBasedCountsMaximalRuns(t *testing.T) {
	seq := []transcript.Utterance{
		utt("Target", "1"), utt("Target", "2"),
		utt("Speaker A", "q"),
		utt("Speaker A", "q"),
		utt("Target", "3"),
		utt("Speaker A", "q"),
		utt("Target", "4"), utt("Target", "5"),
	}

	got, err := NewTurnBased(speakers).Segment(context.Background(), seq)
	if err != nil {
		t.Fatalf("Segment() error = %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("len(segments) = %d, want 3 (%q)", len(got), got)
	}
	for i, s := range got {
		if s == "" {
			t.Errorf("segment %d is empty", i)
		}
	}
}

func TestSimilarityBasedScenarioC(t *testing.T) {
	tests := []struct {
		name string
		sim  float64
		want []string
	}{
		{"similar texts merge", 0.9, []string{"first thought second thought"}},
		{"dissimilar texts split", 0.3, []string{"first thought", "second thought"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			emb := &fakeEmbedder{vectors: [][]float32{unitAt(1), unitAt(tt.sim)}}
			seg := NewSimilarityBased(speakers, emb, 0.6)

			got, err := seg.Segment(context.Background(), []transcript.Utterance{
				utt("Target", "first thought"),
				utt("Speaker A", "ignored question"),
				utt("Target", "second thought"),
			})
			if err != nil {
				t.Fatalf("Segment() error = %v", err)
			}
			assertSegments(t, got, tt.want)

			if len(emb.texts) != 2 {
				t.Errorf("embedded %d texts, want only the 2 target texts", len(emb.texts))
			}
		})
	}
}

func TestSimilarityBasedThresholdBounds(t *testing.T) {
	utterances := []transcript.Utterance{
		utt("Target", "a"), utt("Target", "b"), utt("Target", "c"), utt("Target", "d"),
	}
	vectors := [][]float32{unitAt(1), unitAt(0.95), {-1, 0}, unitAt(0.5)}

	got, err := NewSimilarityBased(speakers, &fakeEmbedder{vectors: vectors}, 0).Segment(context.Background(), utterances)
	if err != nil {
		t.Fatalf("Segment() error = %v", err)
	}
	assertSegments(t, got, []string{"a b c d"})

	got, err = NewSimilarityBased(speakers, &fakeEmbedder{vectors: vectors}, 1).Segment(context.Background(), utterances)
	if err != nil {
		t.Fatalf("Segment() error = %v", err)
	}
	assertSegments(t, got, []string{"a", "b", "c", "d"})
}

func TestSimilarityBasedNoTargetText(t *testing.T) {
	emb := &fakeEmbedder{}
	got, err := NewSimilarityBased(speakers, emb, 0.6).Segment(context.Background(), []transcript.Utterance{
		utt("Speaker A", "only questions"),
	})
	if err != nil {
		t.Fatalf("Segment() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("segments = %q, want none", got)
	}
	if emb.calls != 0 {
		t.Errorf("embedder called %d times, want 0", emb.calls)
	}
}

func TestSimilarityBasedEmbedderFailure(t *testing.T) {
	emb := &fakeEmbedder{err: errors.New("connection refused")}
	got, err := NewSimilarityBased(speakers, emb, 0.6).Segment(context.Background(), []transcript.Utterance{
		utt("Target", "a"), utt("Target", "b"),
	})
	if !errors.Is(err, ErrEmbedding) {
		t.Fatalf("Segment() error = %v, want ErrEmbedding", err)
	}
	if got != nil {
		t.Errorf("segments = %q, want no partial output", got)
	}
}

func TestSimilarityBasedVectorCountMismatch(t *testing.T) {
	emb := embedFunc(func(texts []string) [][]float32 { return [][]float32{{1, 0}} })
	_, err := NewSimilarityBased(speakers, emb, 0.6).Segment(context.Background(), []transcript.Utterance{
		utt("Target", "a"), utt("Target", "b"),
	})
	if !errors.Is(err, ErrEmbedding) {
		t.Fatalf("Segment() error = %v, want ErrEmbedding", err)
	}
}

type embedFunc func(texts []string) [][]float32

func (f embedFunc) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	return f(texts), nil
}

func TestCosine(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float64
	}{
		{"identical", []float32{1, 2, 3}, []float32{1, 2, 3}, 1},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0},
		{"opposite clamps to zero", []float32{1, 0}, []float32{-1, 0}, 0},
		{"zero vector", []float32{0, 0}, []float32{1, 0}, 0},
		{"length mismatch", []float32{1}, []float32{1, 0}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Cosine(tt.a, tt.b); math.Abs(got-tt.want) > 1e-6 {
				t.Errorf("Cosine() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		strategy  string
		withEmb   bool
		threshold float64
		wantName  string
		wantErr   bool
	}{
		{"turn", "turn", false, 0.6, "turn", false},
		{"similarity", "similarity", true, 0.6, "similarity", false},
		{"similarity without embedder", "similarity", false, 0.6, "", true},
		{"threshold out of range", "similarity", true, 1.2, "", true},
		{"unknown", "paragraph", true, 0.6, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var e embedding.Embedder
			if tt.withEmb {
				e = &fakeEmbedder{}
			}

			seg, err := New(tt.strategy, speakers, e, tt.threshold)
			if (err != nil) != tt.wantErr {
				t.Fatalf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && seg.Name() != tt.wantName {
				t.Errorf("Name() = %q, want %q", seg.Name(), tt.wantName)
			}
		})
	}
}
