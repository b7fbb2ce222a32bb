package parallel

import (
	"encoding/json"
	"strings"

	"github.com/habiliai/parallelweb/errors"
	"github.com/mitchellh/mapstructure"
)

// wireResult mirrors SearchResult with pointers so absent fields can be told
// apart from empty ones.
type wireResult struct {
	SearchID *string `json:"search_id"`
	Results  *struct {
		URL      *string   `json:"url"`
		Title    *string   `json:"title"`
		Excerpts *[]string `json:"excerpts"`
	} `json:"results"`
}

func decodeSearchResult(statusCode int, raw []byte) (*SearchResult, error) {
	var w wireResult
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, &errors.ParseError{StatusCode: statusCode, Err: err}
	}

	var missing []string
	if w.SearchID == nil {
		missing = append(missing, "search_id")
	}
	if w.Results == nil {
		missing = append(missing, "results")
	} else {
		if w.Results.URL == nil {
			missing = append(missing, "results.url")
		}
		if w.Results.Title == nil {
			missing = append(missing, "results.title")
		}
		if w.Results.Excerpts == nil {
			missing = append(missing, "results.excerpts")
		}
	}
	if len(missing) > 0 {
		return nil, &errors.ParseError{
			StatusCode: statusCode,
			Reason:     "missing required fields: " + strings.Join(missing, ", "),
		}
	}

	excerpts := *w.Results.Excerpts
	if excerpts == nil {
		excerpts = []string{}
	}

	return &SearchResult{
		SearchID: *w.SearchID,
		Results: ExcerptResults{
			URL:      *w.Results.URL,
			Title:    *w.Results.Title,
			Excerpts: excerpts,
		},
	}, nil
}

// errorDetail extracts the "error" member of a JSON error body. Objects are
// reduced to their "message" member when present.
func errorDetail(raw []byte) string {
	var body map[string]any
	if err := json.Unmarshal(raw, &body); err != nil {
		return ""
	}

	switch v := body["error"].(type) {
	case nil:
		return ""
	case string:
		return v
	case map[string]any:
		if msg, ok := v["message"].(string); ok {
			return msg
		}
	}

	encoded, err := json.Marshal(body["error"])
	if err != nil {
		return ""
	}
	return string(encoded)
}

// ClientConfig is the key/value form of a client's configuration, as found in
// config files or tool arguments.
type ClientConfig struct {
	BaseURL string       `mapstructure:"base_url"`
	APIKey  string       `mapstructure:"parallel_api_key"`
	Config  SearchConfig `mapstructure:"config"`
}

// DecodeClientConfig decodes raw strictly: any key the client does not know
// about is a validation error. Omitted search settings keep their defaults.
func DecodeClientConfig(raw map[string]any) (*ClientConfig, error) {
	out := ClientConfig{
		Config: DefaultSearchConfig(),
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		Result:           &out,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create config decoder")
	}

	if err := decoder.Decode(raw); err != nil {
		return nil, errors.NewValidationError("config", "%v", err)
	}

	if err := out.Config.Validate(); err != nil {
		return nil, err
	}

	return &out, nil
}

func (c *ClientConfig) Options() []Option {
	opts := []Option{WithSearchConfig(c.Config)}
	if c.BaseURL != "" {
		opts = append(opts, WithBaseURL(c.BaseURL))
	}
	if c.APIKey != "" {
		opts = append(opts, WithAPIKey(c.APIKey))
	}
	return opts
}

// NewClientFromMap builds a client from raw configuration. Options in opts
// are applied after those derived from raw.
func NewClientFromMap(raw map[string]any, opts ...Option) (*Client, error) {
	cc, err := DecodeClientConfig(raw)
	if err != nil {
		return nil, err
	}

	return NewClient(append(cc.Options(), opts...)...)
}
