package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/habiliai/parallelweb/parallel"
	"github.com/habiliai/parallelweb/tool"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func newSearchCmd(root *rootParams) *cobra.Command {
	params := &struct {
		Objective         string
		Queries           []string
		Processor         string
		MaxResults        int
		MaxCharsPerResult int
		Async             bool
		Compact           bool
	}{}

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Run one web search and print the result as JSON",
		Example: `  parallelweb search -o "When was the UN founded? Prefer UN websites." -q "Founding year UN"
  parallelweb search -o "Latest Go release" --processor pro --max-results 5 --async`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			searchConfig := root.searchConfig()
			flags := cmd.Flags()
			if flags.Changed("processor") {
				searchConfig.Processor = parallel.Processor(params.Processor)
			}
			if flags.Changed("max-results") {
				searchConfig.MaxResults = params.MaxResults
			}
			if flags.Changed("max-chars") {
				searchConfig.MaxCharsPerResult = params.MaxCharsPerResult
			}

			t, err := tool.NewParallelWebTool(root.apiKey(), root.clientOptions(searchConfig)...)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			queries := lo.Compact(params.Queries)

			var out string
			if params.Async {
				out, err = t.RunAsync(ctx, params.Objective, queries).Wait()
			} else {
				out, err = t.Run(ctx, params.Objective, queries)
			}
			if err != nil {
				return errors.Wrapf(err, "search failed")
			}

			if !params.Compact {
				var buf bytes.Buffer
				if err := json.Indent(&buf, []byte(out), "", "  "); err == nil {
					out = buf.String()
				}
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}

	defaults := parallel.DefaultSearchConfig()
	flags := cmd.Flags()
	flags.StringVarP(&params.Objective, "objective", "o", "", "natural-language research goal")
	flags.StringArrayVarP(&params.Queries, "query", "q", nil, "search query to guide the search (repeatable, at most 5)")
	flags.StringVar(&params.Processor, "processor", string(defaults.Processor), "search processor (base, pro)")
	flags.IntVar(&params.MaxResults, "max-results", defaults.MaxResults, "maximum number of results")
	flags.IntVar(&params.MaxCharsPerResult, "max-chars", defaults.MaxCharsPerResult, "maximum characters per result")
	flags.BoolVar(&params.Async, "async", false, "run the search in the background and wait for it")
	flags.BoolVar(&params.Compact, "compact", false, "print compact JSON")
	_ = cmd.MarkFlagRequired("objective")

	return cmd
}
