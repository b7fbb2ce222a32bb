package tool_test

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/habiliai/parallelweb/config"
	"github.com/habiliai/parallelweb/errors"
	"github.com/habiliai/parallelweb/internal/mytesting"
	"github.com/habiliai/parallelweb/parallel"
	"github.com/habiliai/parallelweb/tool"
	"github.com/samber/lo"
)

func (s *ToolTestSuite) requireResultJSON(out string) {
	var decoded map[string]any
	s.Require().NoError(json.Unmarshal([]byte(out), &decoded))
	s.Equal("sid-123", decoded["search_id"])

	results, ok := decoded["results"].(map[string]any)
	s.Require().True(ok)
	s.ElementsMatch([]string{"url", "title", "excerpts"}, lo.Keys(results))
	s.Equal("UN Charter", results["title"])
}

func (s *ToolTestSuite) TestMetadata() {
	s.Equal("parallel_web_search", s.tool.ID())
	s.Equal("Parallel Web Search", s.tool.Name())
	s.Contains(s.tool.Description(), "ranked, compressed excerpts")
}

func (s *ToolTestSuite) TestArgumentSchema() {
	raw, err := json.Marshal(s.tool.ArgumentSchema())
	s.Require().NoError(err)

	var schema struct {
		Type       string   `json:"type"`
		Required   []string `json:"required"`
		Properties map[string]struct {
			Type      string `json:"type"`
			MaxLength int    `json:"maxLength"`
			MaxItems  int    `json:"maxItems"`
			Items     *struct {
				Type string `json:"type"`
			} `json:"items"`
		} `json:"properties"`
	}
	s.Require().NoError(json.Unmarshal(raw, &schema))

	s.Equal("object", schema.Type)
	s.Equal([]string{"objective"}, schema.Required)
	s.Equal("string", schema.Properties["objective"].Type)
	s.Equal(parallel.MaxObjectiveLength, schema.Properties["objective"].MaxLength)
	s.Equal("array", schema.Properties["search_queries"].Type)
	s.Equal(parallel.MaxSearchQueries, schema.Properties["search_queries"].MaxItems)
	s.Require().NotNil(schema.Properties["search_queries"].Items)
	s.Equal("string", schema.Properties["search_queries"].Items.Type)
}

func (s *ToolTestSuite) TestRun() {
	out, err := s.tool.Run(s, "Find launch date of the UN", []string{"When was UN founded?"})
	s.Require().NoError(err)
	s.requireResultJSON(out)
	s.Equal(int32(1), s.calls.Load())
}

func (s *ToolTestSuite) TestRunAsync() {
	out, err := s.tool.RunAsync(s, "Find launch date of the UN", []string{"When was UN founded?"}).Await(s)
	s.Require().NoError(err)
	s.requireResultJSON(out)

	syncOut, err := s.tool.Run(s, "Find launch date of the UN", []string{"When was UN founded?"})
	s.Require().NoError(err)
	s.JSONEq(syncOut, out)
}

func (s *ToolTestSuite) TestRunWithStubSearcher() {
	stub := newStubSearcher()
	t := tool.NewParallelWebToolWithSearcher(stub)

	out, err := t.Run(s, "Find launch date of the UN", []string{"When was UN founded?"})
	s.Require().NoError(err)
	s.requireResultJSON(out)
	s.Equal("Find launch date of the UN", stub.lastRequest().Objective)
	s.Equal([]string{"When was UN founded?"}, stub.lastRequest().SearchQueries)

	out, err = t.RunAsync(s, "Find async test path", []string{"async testing best practices"}).Await(s)
	s.Require().NoError(err)
	s.requireResultJSON(out)
	s.Equal("Find async test path", stub.lastRequest().Objective)
	s.Equal([]string{"async testing best practices"}, stub.lastRequest().SearchQueries)
}

func (s *ToolTestSuite) TestInvoke() {
	out, err := s.tool.Invoke(s, tool.SearchArguments{Objective: "Find launch date of the UN"})
	s.Require().NoError(err)
	s.requireResultJSON(out)
}

func (s *ToolTestSuite) TestRunPropagatesValidation() {
	tooLong := strings.Repeat("x", parallel.MaxObjectiveLength+1)

	_, err := s.tool.Run(s, tooLong, nil)
	s.True(errors.Is(err, errors.ErrValidation))

	_, err = s.tool.RunAsync(s, "o", []string{"a", "b", "c", "d", "e", "f"}).Await(s)
	s.True(errors.Is(err, errors.ErrValidation))

	s.Equal(int32(0), s.calls.Load())
}

func (s *ToolTestSuite) TestRunPropagatesSearchFailure() {
	stub := newStubSearcher()
	stub.err = &errors.HTTPStatusError{StatusCode: 500, Status: "Internal Server Error"}
	t := tool.NewParallelWebToolWithSearcher(stub)

	out, err := t.Run(s, "objective", nil)
	s.Empty(out)
	s.True(errors.Is(err, errors.ErrHTTPStatus))

	out, err = t.RunAsync(s, "objective", nil).Await(s)
	s.Empty(out)
	s.True(errors.Is(err, errors.ErrHTTPStatus))
}

func (s *ToolTestSuite) TestMissingCredential() {
	t, err := tool.NewParallelWebTool("", parallel.WithLookupEnv(mytesting.EnvOf(nil)))
	s.Nil(t)
	s.True(errors.Is(err, errors.ErrConfiguration))
}

func (s *ToolTestSuite) TestCredentialFromEnv() {
	s.T().Setenv(config.APIKeyEnv, "env-secret-key")

	t, err := tool.NewParallelWebTool("", parallel.WithBaseURL(s.server.URL))
	s.Require().NoError(err)

	out, err := t.Run(s, "objective", nil)
	s.Require().NoError(err)
	s.requireResultJSON(out)
}

func (s *ToolTestSuite) TestRunAsyncCancelledInFlight() {
	blocking, started := mytesting.NewStallingServer()
	defer blocking.Close()

	for i := 0; i < 10; i++ {
		var released atomic.Bool
		t, err := tool.NewParallelWebTool("test-key",
			parallel.WithBaseURL(blocking.URL),
			parallel.WithSessionFactory(func() (*http.Client, func()) {
				transport := http.DefaultTransport.(*http.Transport).Clone()
				return &http.Client{Transport: transport}, func() {
					time.Sleep(20 * time.Millisecond)
					transport.CloseIdleConnections()
					released.Store(true)
				}
			}),
		)
		s.Require().NoError(err)

		ctx, cancel := context.WithCancel(s)
		f := t.RunAsync(ctx, "Find launch date of the UN", nil)
		<-started
		cancel()

		out, err := f.Wait()
		s.Empty(out)
		s.True(errors.Is(err, errors.ErrTransport), "got %v", err)
		s.True(errors.Is(err, context.Canceled))
		s.True(released.Load(), "session must be released before the result is delivered")
	}
}
