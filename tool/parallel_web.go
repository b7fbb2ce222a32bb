package tool

import (
	"context"
	"encoding/json"

	"github.com/habiliai/parallelweb/errors"
	"github.com/habiliai/parallelweb/parallel"
	"github.com/invopop/jsonschema"
)

const (
	ParallelWebToolID   = "parallel_web_search"
	ParallelWebToolName = "Parallel Web Search"

	parallelWebToolDescription = "Tool to research and get ranked, compressed excerpts for questions about " +
		"current events from several websites. Input should be the main objective of the web research " +
		"and, optionally, a few search queries as additional guidance."
)

// ParallelWebTool exposes a Parallel search client as a tool. It holds no
// state besides the client, so calls are independent of each other.
type ParallelWebTool struct {
	searcher Searcher
	schema   *jsonschema.Schema
}

var _ Tool = (*ParallelWebTool)(nil)

// NewParallelWebTool builds the tool and its client. An empty apiKey falls
// back to PARALLEL_API_KEY.
func NewParallelWebTool(apiKey string, opts ...parallel.Option) (*ParallelWebTool, error) {
	client, err := parallel.NewClient(append([]parallel.Option{parallel.WithAPIKey(apiKey)}, opts...)...)
	if err != nil {
		return nil, err
	}

	return NewParallelWebToolWithSearcher(client), nil
}

func NewParallelWebToolWithSearcher(searcher Searcher) *ParallelWebTool {
	return &ParallelWebTool{
		searcher: searcher,
		schema:   SearchArgumentsSchema(),
	}
}

func (t *ParallelWebTool) ID() string          { return ParallelWebToolID }
func (t *ParallelWebTool) Name() string        { return ParallelWebToolName }
func (t *ParallelWebTool) Description() string { return parallelWebToolDescription }

func (t *ParallelWebTool) ArgumentSchema() *jsonschema.Schema {
	return t.schema
}

func (t *ParallelWebTool) Run(ctx context.Context, objective string, searchQueries []string) (string, error) {
	req, err := parallel.NewSearchRequest(objective, searchQueries)
	if err != nil {
		return "", err
	}

	res, err := t.searcher.Search(ctx, req)
	if err != nil {
		return "", err
	}

	return encodeResult(res)
}

func (t *ParallelWebTool) RunAsync(ctx context.Context, objective string, searchQueries []string) *parallel.Future[string] {
	return parallel.Go(ctx, func(ctx context.Context) (string, error) {
		req, err := parallel.NewSearchRequest(objective, searchQueries)
		if err != nil {
			return "", err
		}

		// the search observes ctx itself, so cancellation comes back as its error
		res, err := t.searcher.SearchAsync(ctx, req).Wait()
		if err != nil {
			return "", err
		}

		return encodeResult(res)
	})
}

func (t *ParallelWebTool) Invoke(ctx context.Context, args SearchArguments) (string, error) {
	return t.Run(ctx, args.Objective, args.SearchQueries)
}

func encodeResult(res *parallel.SearchResult) (string, error) {
	out, err := json.Marshal(res)
	if err != nil {
		return "", errors.Wrap(err, "failed to encode search result")
	}
	return string(out), nil
}

// SearchArgumentsSchema describes SearchArguments as a JSON schema. Unknown
// properties are not allowed.
func SearchArgumentsSchema() *jsonschema.Schema {
	r := &jsonschema.Reflector{
		DoNotReference: true,
		ExpandedStruct: true,
	}
	return r.Reflect(&SearchArguments{})
}
