package tool

import (
	"context"

	"github.com/habiliai/parallelweb/parallel"
	"github.com/invopop/jsonschema"
)

type (
	// Tool is what a host framework needs in order to offer a callable tool
	// to a language model.
	Tool interface {
		// ID is the machine name used when registering the tool.
		ID() string
		Name() string
		Description() string
		ArgumentSchema() *jsonschema.Schema
		Run(ctx context.Context, objective string, searchQueries []string) (string, error)
		RunAsync(ctx context.Context, objective string, searchQueries []string) *parallel.Future[string]
		// Invoke is Run with arguments a host framework has already decoded.
		Invoke(ctx context.Context, args SearchArguments) (string, error)
	}

	// Searcher is the part of parallel.Client the tool depends on.
	Searcher interface {
		Search(ctx context.Context, req *parallel.SearchRequest) (*parallel.SearchResult, error)
		SearchAsync(ctx context.Context, req *parallel.SearchRequest) *parallel.Future[*parallel.SearchResult]
	}

	SearchArguments struct {
		Objective     string   `json:"objective" mapstructure:"objective" jsonschema:"required,maxLength=5000" jsonschema_description:"Natural-language description of the web research goal. Include any source or freshness guidance."`
		SearchQueries []string `json:"search_queries,omitempty" mapstructure:"search_queries" jsonschema:"maxItems=5" jsonschema_description:"Search queries to guide the search."`
	}
)

var _ Searcher = (*parallel.Client)(nil)
