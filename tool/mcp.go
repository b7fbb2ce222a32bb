package tool

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/habiliai/parallelweb/errors"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/mitchellh/mapstructure"
)

const mcpServerName = "parallelweb"

// NewMCPServer exposes tools over the Model Context Protocol.
func NewMCPServer(version string, logger *slog.Logger, tools ...Tool) (*server.MCPServer, error) {
	s := server.NewMCPServer(mcpServerName, version, server.WithToolCapabilities(false))

	for _, t := range tools {
		schema, err := json.Marshal(t.ArgumentSchema())
		if err != nil {
			return nil, errors.Wrapf(err, "failed to encode argument schema of %s", t.ID())
		}

		s.AddTool(mcp.NewToolWithRawSchema(t.ID(), t.Description(), schema), mcpToolHandler(t, logger))
	}

	return s, nil
}

// mcpToolHandler reports tool failures as error results so the model sees
// them; only protocol problems are returned as Go errors.
func mcpToolHandler(t Tool, logger *slog.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, err := decodeArguments(req.GetArguments())
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		out, err := t.Invoke(ctx, args)
		if err != nil {
			logger.Warn("tool call failed", "tool", t.ID(), "error", err)
			return mcp.NewToolResultError(err.Error()), nil
		}

		return mcp.NewToolResultText(out), nil
	}
}

func decodeArguments(raw map[string]any) (args SearchArguments, err error) {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused: true,
		Result:      &args,
	})
	if err != nil {
		return args, errors.Wrap(err, "failed to create argument decoder")
	}

	if err := decoder.Decode(raw); err != nil {
		return args, errors.NewValidationError("arguments", "%v", err)
	}

	return args, nil
}
