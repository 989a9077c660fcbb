package processor

import "context"

// Processor handles one transcript dropped into the input folder.
type Processor interface {
	Process(ctx context.Context, transcriptPath string) error
}
