package config

import (
	"os"
	"strings"

	"github.com/habiliai/parallelweb/errors"
)

const (
	APIKeyEnv      = "PARALLEL_API_KEY"
	APIURLEnv      = "PARALLEL_API_URL"
	DefaultAPIURL  = "https://api.parallel.ai/v1beta"
	missingKeyHint = `No Parallel API key found. Set "PARALLEL_API_KEY" or pass an api key.`
)

// LookupEnvFunc has the signature of os.LookupEnv.
type LookupEnvFunc func(key string) (string, bool)

type ParallelConfig struct {
	APIKey string `json:"api_key"`
	APIUrl string `json:"api_url"`
}

func (c *ParallelConfig) Validate() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return errors.Wrap(errors.ErrConfiguration, missingKeyHint)
	}
	return nil
}

// NewParallelConfig reads PARALLEL_API_KEY and PARALLEL_API_URL through
// lookupEnv, or os.LookupEnv when it is nil.
func NewParallelConfig(lookupEnv LookupEnvFunc) *ParallelConfig {
	if lookupEnv == nil {
		lookupEnv = os.LookupEnv
	}

	config := &ParallelConfig{}
	if v, ok := lookupEnv(APIKeyEnv); ok {
		config.APIKey = v
	}
	if v, ok := lookupEnv(APIURLEnv); ok {
		config.APIUrl = v
	}

	if strings.TrimSpace(config.APIUrl) == "" {
		config.APIUrl = DefaultAPIURL
	}

	return config
}

// ResolveParallelConfig layers non-blank explicit values over the
// environment. It is meant to be called once, while a client is being built.
func ResolveParallelConfig(apiKey, apiURL string, lookupEnv LookupEnvFunc) (*ParallelConfig, error) {
	config := NewParallelConfig(lookupEnv)
	if strings.TrimSpace(apiKey) != "" {
		config.APIKey = apiKey
	}
	if strings.TrimSpace(apiURL) != "" {
		config.APIUrl = apiURL
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}
