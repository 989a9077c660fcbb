package watcher

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/nguyentantai21042004/segment-flow/internal/logger"
)

func TestIsTranscriptFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"data/input/episode.txt", true},
		{"EPISODE.TXT", true},
		{"notes.md", false},
		{"data/input/.episode.txt", false},
		{"archive.txt.zip", false},
		{"txt", false},
	}
	for _, tt := range tests {
		if got := isTranscriptFile(tt.path); got != tt.want {
			t.Errorf("isTranscriptFile(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

type recorder struct {
	mu    sync.Mutex
	seen  []string
	fired chan string
}

func (r *recorder) handle(_ context.Context, path string) error {
	r.mu.Lock()
	r.seen = append(r.seen, filepath.Base(path))
	r.mu.Unlock()
	r.fired <- filepath.Base(path)
	return errors.New("logged, not fatal")
}

func waitFor(t *testing.T, ch <-chan string, want string) {
	t.Helper()
	select {
	case got := <-ch:
		if got != want {
			t.Errorf("handled %q, want %q", got, want)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for %s", want)
	}
}

func TestStart(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "waiting.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "ignored.mp4"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	rec := &recorder{fired: make(chan string, 4)}
	w, err := New(dir, rec.handle, logger.Nop(), 1)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer w.Stop()
	w.(*implWatcher).settleDelay = 0

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Start(ctx) }()

	waitFor(t, rec.fired, "waiting.txt")

	if err := os.WriteFile(filepath.Join(dir, "fresh.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	waitFor(t, rec.fired, "fresh.txt")

	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Errorf("Start() error = %v, want context.Canceled", err)
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()
	if len(rec.seen) != 2 {
		t.Errorf("handled %v, want 2 files", rec.seen)
	}
}

func TestNewMissingDir(t *testing.T) {
	if _, err := New(filepath.Join(t.TempDir(), "absent"), nil, logger.Nop(), 1); err == nil {
		t.Fatal("New() should fail for a missing directory")
	}
}

func TestStartHandlesFileOnceWhenCreatedBeforeScan(t *testing.T) {
	dir := t.TempDir()

	var (
		mu    sync.Mutex
		calls int
	)
	started := make(chan struct{}, 4)
	release := make(chan struct{})
	handler := func(_ context.Context, path string) error {
		mu.Lock()
		calls++
		mu.Unlock()
		started <- struct{}{}
		<-release
		return nil
	}

	w, err := New(dir, handler, logger.Nop(), 2)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer w.Stop()
	w.(*implWatcher).settleDelay = 0

	// Watch is registered, so this file is both queued as an event and
	// picked up by the startup scan.
	if err := os.WriteFile(filepath.Join(dir, "a.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Start(ctx) }()

	select {
	case <-started:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for the handler")
	}

	// Leave time for the queued create event to be consumed while the
	// first handler is still running.
	time.Sleep(500 * time.Millisecond)
	close(release)
	cancel()
	<-done

	mu.Lock()
	defer mu.Unlock()
	if calls != 1 {
		t.Errorf("handler calls = %d, want 1", calls)
	}
}

func TestDispatchSkipsMissingFile(t *testing.T) {
	called := false
	w := &implWatcher{
		handler:   func(context.Context, string) error { called = true; return nil },
		logger:    logger.Nop(),
		semaphore: make(chan struct{}, 1),
		inFlight:  make(map[string]struct{}),
	}

	if err := w.dispatch(context.Background(), filepath.Join(t.TempDir(), "gone.txt")); err != nil {
		t.Fatalf("dispatch() error = %v", err)
	}
	w.wg.Wait()
	if called {
		t.Error("handler called for a missing file")
	}
	if len(w.inFlight) != 0 {
		t.Errorf("inFlight = %v, want empty", w.inFlight)
	}
}
