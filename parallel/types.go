package parallel

import (
	"strings"
	"unicode/utf8"

	"github.com/habiliai/parallelweb/errors"
)

const (
	MaxObjectiveLength = 5000
	MaxSearchQueries   = 5

	DefaultMaxResults        = 10
	MinMaxResults            = 1
	MaxMaxResults            = 40
	DefaultMaxCharsPerResult = 1500
	MinMaxCharsPerResult     = 100
	MaxMaxCharsPerResult     = 30000
)

// Processor selects the search quality tier of the remote service.
type Processor string

const (
	ProcessorBase Processor = "base"
	ProcessorPro  Processor = "pro"
)

func (p Processor) Valid() bool {
	return p == ProcessorBase || p == ProcessorPro
}

type (
	SearchRequest struct {
		Objective     string   `json:"objective"`
		SearchQueries []string `json:"search_queries"`
	}

	SearchConfig struct {
		MaxResults        int       `json:"max_results" mapstructure:"max_results"`
		Processor         Processor `json:"processor" mapstructure:"processor"`
		MaxCharsPerResult int       `json:"max_chars_per_result" mapstructure:"max_chars_per_result"`
	}

	ExcerptResults struct {
		URL      string   `json:"url"`
		Title    string   `json:"title"`
		Excerpts []string `json:"excerpts"`
	}

	SearchResult struct {
		SearchID string         `json:"search_id"`
		Results  ExcerptResults `json:"results"`
	}
)

// NewSearchRequest builds a validated request. A nil query list becomes empty
// so that it is sent as [] rather than null.
func NewSearchRequest(objective string, searchQueries []string) (*SearchRequest, error) {
	req := &SearchRequest{
		Objective:     objective,
		SearchQueries: searchQueries,
	}
	if req.SearchQueries == nil {
		req.SearchQueries = []string{}
	}

	if err := req.Validate(); err != nil {
		return nil, err
	}

	return req, nil
}

func (r *SearchRequest) Validate() error {
	if strings.TrimSpace(r.Objective) == "" {
		return errors.NewValidationError("objective", "must not be empty")
	}
	if n := utf8.RuneCountInString(r.Objective); n > MaxObjectiveLength {
		return errors.NewValidationError("objective", "must be <= %d characters, got %d", MaxObjectiveLength, n)
	}
	if n := len(r.SearchQueries); n > MaxSearchQueries {
		return errors.NewValidationError("search_queries", "must have at most %d items, got %d", MaxSearchQueries, n)
	}
	return nil
}

func DefaultSearchConfig() SearchConfig {
	return SearchConfig{
		MaxResults:        DefaultMaxResults,
		Processor:         ProcessorBase,
		MaxCharsPerResult: DefaultMaxCharsPerResult,
	}
}

func (c SearchConfig) Validate() error {
	if c.MaxResults < MinMaxResults || c.MaxResults > MaxMaxResults {
		return errors.NewValidationError("max_results", "must be between %d and %d, got %d", MinMaxResults, MaxMaxResults, c.MaxResults)
	}
	if !c.Processor.Valid() {
		return errors.NewValidationError("processor", "must be %q or %q, got %q", ProcessorBase, ProcessorPro, c.Processor)
	}
	if c.MaxCharsPerResult < MinMaxCharsPerResult || c.MaxCharsPerResult > MaxMaxCharsPerResult {
		return errors.NewValidationError("max_chars_per_result", "must be between %d and %d, got %d", MinMaxCharsPerResult, MaxMaxCharsPerResult, c.MaxCharsPerResult)
	}
	return nil
}
