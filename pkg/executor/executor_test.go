package executor

import (
	"context"
	"strings"
	"testing"
)

func TestExecute(t *testing.T) {
	out, err := New().Execute(context.Background(), "echo", "hello")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if strings.TrimSpace(out) != "hello" {
		t.Errorf("Execute() = %q, want hello", out)
	}
}

func TestExecuteWithInput(t *testing.T) {
	out, err := New().ExecuteWithInput(context.Background(), []byte("piped text"), "cat")
	if err != nil {
		t.Fatalf("ExecuteWithInput() error = %v", err)
	}
	if out != "piped text" {
		t.Errorf("ExecuteWithInput() = %q, want %q", out, "piped text")
	}
}

func TestExecuteFailureIncludesStderr(t *testing.T) {
	_, err := New().Execute(context.Background(), "sh", "-c", "echo boom >&2; exit 3")
	if err == nil {
		t.Fatal("Execute() expected error")
	}
	if !strings.Contains(err.Error(), "boom") {
		t.Errorf("error %q does not include stderr", err)
	}
}
