package tool_test

import (
	"github.com/firebase/genkit/go/genkit"
	"github.com/habiliai/parallelweb/tool"
)

func (s *ToolTestSuite) TestDefineGenkitTool() {
	g, err := genkit.Init(s)
	s.Require().NoError(err)

	stub := newStubSearcher()
	genkitTool := tool.DefineGenkitTool(g, tool.NewParallelWebToolWithSearcher(stub))
	s.Require().NotNil(genkitTool)
	s.Equal(tool.ParallelWebToolID, genkitTool.Definition().Name)

	res, err := genkitTool.RunRaw(s, map[string]any{
		"objective":      "Find launch date of the UN",
		"search_queries": []string{"When was UN founded?"},
	})
	s.Require().NoError(err)

	out, ok := res.(string)
	s.Require().True(ok)
	s.requireResultJSON(out)
	s.Equal("Find launch date of the UN", stub.lastRequest().Objective)
}
