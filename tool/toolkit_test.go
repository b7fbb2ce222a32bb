package tool_test

import (
	"github.com/habiliai/parallelweb/errors"
	"github.com/habiliai/parallelweb/parallel"
	"github.com/habiliai/parallelweb/tool"
)

func (s *ToolTestSuite) TestToolkitReturnsOneTool() {
	tools, err := tool.NewToolkit("dummy-key").Tools()
	s.Require().NoError(err)
	s.Require().Len(tools, 1)

	t, ok := tools[0].(*tool.ParallelWebTool)
	s.Require().True(ok)
	s.NotEmpty(t.Name())
	s.NotEmpty(t.Description())
	s.Equal([]string{"parallel_web_search"}, tool.ToolIDs(tools))

	raw, err := t.ArgumentSchema().MarshalJSON()
	s.Require().NoError(err)
	s.Contains(string(raw), `"objective"`)
	s.Contains(string(raw), `"search_queries"`)
}

func (s *ToolTestSuite) TestToolkitForwardsClientOptions() {
	tools, err := tool.NewToolkit("dummy-key", parallel.WithBaseURL(s.server.URL)).Tools()
	s.Require().NoError(err)

	out, err := tools[0].Run(s, "objective", nil)
	s.Require().NoError(err)
	s.requireResultJSON(out)
}

func (s *ToolTestSuite) TestToolkitMissingCredential() {
	_, err := tool.NewToolkit("", parallel.WithLookupEnv(func(string) (string, bool) { return "", false })).Tools()
	s.True(errors.Is(err, errors.ErrConfiguration))
}
