package embedding

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nguyentantai21042004/segment-flow/pkg/executor"
)

type commandEmbedder struct {
	exec executor.Executor
	name string
	args []string
}

// NewCommand runs a local program per call. The program receives an EmbedReq
// as JSON on stdin and must print an EmbedResp as JSON on stdout.
func NewCommand(exec executor.Executor, name string, args ...string) Embedder {
	return &commandEmbedder{exec: exec, name: name, args: args}
}

func (c *commandEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	input, err := json.Marshal(EmbedReq{Texts: texts})
	if err != nil {
		return nil, err
	}

	out, err := c.exec.ExecuteWithInput(ctx, input, c.name, c.args...)
	if err != nil {
		return nil, fmt.Errorf("embed command: %w", err)
	}

	var resp EmbedResp
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		return nil, fmt.Errorf("embed command decode: %w", err)
	}
	return resp.Embeddings, nil
}
