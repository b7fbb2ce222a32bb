package tool

import (
	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
)

// DefineGenkitTool registers t on g under its ID so genkit flows and models
// can call it.
func DefineGenkitTool(g *genkit.Genkit, t Tool) ai.Tool {
	return genkit.DefineTool(
		g,
		t.ID(),
		t.Description(),
		func(ctx *ai.ToolContext, input SearchArguments) (string, error) {
			return t.Invoke(ctx, input)
		},
	)
}
