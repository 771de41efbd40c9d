package mcpserver

import (
	"context"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/starfeel/star/internal/analyzer"
	"github.com/starfeel/star/internal/export"
	"github.com/starfeel/star/internal/lexicon"
	"github.com/starfeel/star/internal/model"
)

func newAnalyzer(t *testing.T) *analyzer.Analyzer {
	t.Helper()
	lex, err := lexicon.Default()
	if err != nil {
		t.Fatal(err)
	}
	an, err := analyzer.New(lex, nil)
	if err != nil {
		t.Fatal(err)
	}
	return an
}

func call(t *testing.T, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	req := mcp.CallToolRequest{}
	req.Params.Name = ToolName
	req.Params.Arguments = args
	res, err := handler(newAnalyzer(t), false)(context.Background(), req)
	if err != nil {
		t.Fatalf("handler() error = %v", err)
	}
	if len(res.Content) != 1 {
		t.Fatalf("handler() returned %d content items, want 1", len(res.Content))
	}
	return res
}

func text(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	tc, ok := res.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("content is %T, want mcp.TextContent", res.Content[0])
	}
	return tc.Text
}

func TestAnalyzeTool(t *testing.T) {
	res := call(t, map[string]any{"text": "できた、やった！"})
	if res.IsError {
		t.Fatalf("tool error: %s", text(t, res))
	}
	got, err := export.UnmarshalJSON([]byte(text(t, res)))
	if err != nil {
		t.Fatalf("tool output is not a result: %v", err)
	}
	if got.Primary != model.Act {
		t.Errorf("Primary = %s, want ACT", got.Primary)
	}
}

func TestAnalyzeToolTextFormat(t *testing.T) {
	res := call(t, map[string]any{"text": "この料理、本当においしい！", "format": "text"})
	if res.IsError {
		t.Fatalf("tool error: %s", text(t, res))
	}
	if out := text(t, res); !strings.Contains(out, "Primary:       SENSE") {
		t.Errorf("text output lacks the primary line:\n%s", out)
	}
}

func TestAnalyzeToolErrors(t *testing.T) {
	tests := []struct {
		name string
		args map[string]any
	}{
		{"missing text", map[string]any{}},
		{"text not a string", map[string]any{"text": 3}},
		{"invalid input", map[string]any{"text": "a\x00b"}},
		{"csv format", map[string]any{"text": "a", "format": "csv"}},
		{"unknown format", map[string]any{"text": "a", "format": "xml"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if res := call(t, tt.args); !res.IsError {
				t.Errorf("handler(%v) succeeded, want a tool error", tt.args)
			}
		})
	}
}

func TestNew(t *testing.T) {
	if s := New(newAnalyzer(t), "test", false); s == nil {
		t.Fatal("New() = nil")
	}
}
