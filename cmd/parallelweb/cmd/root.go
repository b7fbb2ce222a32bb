package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/habiliai/parallelweb/config"
	"github.com/habiliai/parallelweb/internal/mylog"
	"github.com/habiliai/parallelweb/parallel"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var version = "dev"

type rootParams struct {
	APIKey     string
	BaseURL    string
	ConfigFile string
	EnvFile    string
	LogLevel   string
	LogHandler string

	logger *slog.Logger
	client *parallel.ClientConfig
}

func newRootCmd() *cobra.Command {
	params := &rootParams{}
	logConfig := config.NewLogConfig()

	cmd := &cobra.Command{
		Use:           "parallelweb",
		Short:         "Search the web through the Parallel search API",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(params.EnvFile); err == nil {
				if err := godotenv.Load(params.EnvFile); err != nil {
					return errors.Wrapf(err, "failed to load env file %s", params.EnvFile)
				}
			}

			params.logger = mylog.NewLogger(params.LogLevel, params.LogHandler)

			if params.ConfigFile != "" {
				raw, err := config.LoadFile(params.ConfigFile)
				if err != nil {
					return err
				}
				if params.client, err = parallel.DecodeClientConfig(raw); err != nil {
					return errors.Wrapf(err, "invalid config file %s", params.ConfigFile)
				}
			}

			return nil
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&params.APIKey, "api-key", "", "Parallel API key (default: $PARALLEL_API_KEY)")
	flags.StringVar(&params.BaseURL, "base-url", "", "Parallel API base URL (default: $PARALLEL_API_URL or "+config.DefaultAPIURL+")")
	flags.StringVarP(&params.ConfigFile, "config", "c", "", "YAML or JSON client config file")
	flags.StringVar(&params.EnvFile, "env-file", ".env", "dotenv file loaded when present")
	flags.StringVar(&params.LogLevel, "log-level", logConfig.LogLevel, "log level (debug, info, warn, error)")
	flags.StringVar(&params.LogHandler, "log-handler", logConfig.LogHandler, "log handler (text, json)")

	cmd.AddCommand(
		newSearchCmd(params),
		newSchemaCmd(),
		newMCPCmd(params),
	)

	return cmd
}

// clientOptions layers command line flags over the config file. The API key
// is passed separately, see apiKey.
func (p *rootParams) clientOptions(searchConfig parallel.SearchConfig) []parallel.Option {
	opts := []parallel.Option{
		parallel.WithSearchConfig(searchConfig),
		parallel.WithLogger(p.logger),
	}

	baseURL := p.BaseURL
	if baseURL == "" && p.client != nil {
		baseURL = p.client.BaseURL
	}
	if baseURL != "" {
		opts = append(opts, parallel.WithBaseURL(baseURL))
	}

	return opts
}

// apiKey prefers the flag over the config file; empty means environment.
func (p *rootParams) apiKey() string {
	if p.APIKey != "" {
		return p.APIKey
	}
	if p.client != nil {
		return p.client.APIKey
	}
	return ""
}

func (p *rootParams) searchConfig() parallel.SearchConfig {
	if p.client != nil {
		return p.client.Config
	}
	return parallel.DefaultSearchConfig()
}

func Execute() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %+v\n", err)
		os.Exit(1)
	}
}
