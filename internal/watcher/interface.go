package watcher

import "context"

// Watcher monitors the input folder and hands each new transcript to a handler.
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
}

// EventHandler processes one transcript file.
type EventHandler func(ctx context.Context, filePath string) error
