package cmd

import (
	"github.com/habiliai/parallelweb/tool"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
)

func newMCPCmd(root *rootParams) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the search tool over MCP on stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tools, err := tool.NewToolkit(root.apiKey(), root.clientOptions(root.searchConfig())...).Tools()
			if err != nil {
				return err
			}

			s, err := tool.NewMCPServer(version, root.logger, tools...)
			if err != nil {
				return err
			}

			root.logger.Info("serving mcp on stdio", "tools", tool.ToolIDs(tools))
			return server.ServeStdio(s)
		},
	}
}
