package tool

import (
	"github.com/habiliai/parallelweb/parallel"
	"github.com/samber/lo"
)

// Toolkit bundles the tools backed by one Parallel account.
type Toolkit struct {
	apiKey string
	opts   []parallel.Option
}

func NewToolkit(apiKey string, opts ...parallel.Option) *Toolkit {
	return &Toolkit{
		apiKey: apiKey,
		opts:   opts,
	}
}

// Tools returns a freshly built ParallelWebTool. Credential problems surface
// here rather than in NewToolkit.
func (k *Toolkit) Tools() ([]Tool, error) {
	t, err := NewParallelWebTool(k.apiKey, k.opts...)
	if err != nil {
		return nil, err
	}
	return []Tool{t}, nil
}

func ToolIDs(tools []Tool) []string {
	return lo.Map(tools, func(t Tool, _ int) string {
		return t.ID()
	})
}
