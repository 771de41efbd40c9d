package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/starfeel/star/internal/analyzer"
	"github.com/starfeel/star/internal/lexicon"
	"github.com/starfeel/star/internal/model"
)

func newTestServer(t *testing.T, cfg Config) *httptest.Server {
	t.Helper()
	lex, err := lexicon.Default()
	if err != nil {
		t.Fatal(err)
	}
	an, err := analyzer.New(lex, nil)
	if err != nil {
		t.Fatal(err)
	}
	ts := httptest.NewServer(New(an, cfg).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func post(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestAnalyze(t *testing.T) {
	ts := newTestServer(t, Config{})

	resp := post(t, ts.URL+"/api/analyze", `{"text":"この料理、本当においしい！"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	var res model.Result
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		t.Fatal(err)
	}
	if res.Primary != model.Sense || res.Tier != model.TierHigh {
		t.Errorf("result = %s/%s, want SENSE/high", res.Primary, res.Tier)
	}
}

func TestAnalyzeErrors(t *testing.T) {
	ts := newTestServer(t, Config{})

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"not json", `text`, http.StatusBadRequest},
		{"missing text", `{}`, http.StatusBadRequest},
		{"unknown field", `{"text":"a","lang":"ja"}`, http.StatusBadRequest},
		{"nul byte", `{"text":"a\u0000b"}`, http.StatusBadRequest},
		{"empty text", `{"text":""}`, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, ts.URL+"/api/analyze", tt.body)
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			if tt.status != http.StatusOK {
				var e errorResponse
				if err := json.NewDecoder(resp.Body).Decode(&e); err != nil || e.Error == "" {
					t.Errorf("error body = %+v, %v", e, err)
				}
			}
		})
	}

	resp, err := http.Get(ts.URL + "/api/analyze")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("GET /api/analyze status = %d, want 405", resp.StatusCode)
	}
}

func TestBatch(t *testing.T) {
	ts := newTestServer(t, Config{Workers: 2})

	resp := post(t, ts.URL+"/api/analyze/batch", `{"texts":["できた、やった！","a\u0000","xyz"]}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var out batchResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if len(out.Results) != 3 {
		t.Fatalf("got %d results, want 3", len(out.Results))
	}
	for i, item := range out.Results {
		if item.Index != i {
			t.Errorf("results[%d].Index = %d", i, item.Index)
		}
	}
	if out.Results[0].Result == nil || out.Results[0].Result.Primary != model.Act {
		t.Errorf("results[0] = %+v, want ACT", out.Results[0])
	}
	if out.Results[1].Error == "" || out.Results[1].Result != nil {
		t.Errorf("results[1] = %+v, want an error", out.Results[1])
	}
	if out.Results[2].Result == nil || !out.Results[2].Result.Ambiguous {
		t.Errorf("results[2] = %+v, want an ambiguous result", out.Results[2])
	}
}

func TestBatchLimit(t *testing.T) {
	ts := newTestServer(t, Config{MaxBatch: 1})
	resp := post(t, ts.URL+"/api/analyze/batch", `{"texts":["a","b"]}`)
	if resp.StatusCode != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d, want 413", resp.StatusCode)
	}
}

func TestInfo(t *testing.T) {
	ts := newTestServer(t, Config{Version: "test"})
	resp, err := http.Get(ts.URL + "/api/info")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var info infoResponse
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		t.Fatal(err)
	}
	if info.Version != "test" || info.Tokenizer != "none" || info.Mode != model.ModeKeyword {
		t.Errorf("info = %+v", info)
	}
	if info.Lexicon != lexicon.DefaultSource {
		t.Errorf("Lexicon = %q, want %q", info.Lexicon, lexicon.DefaultSource)
	}
	if len(info.Categories) != 4 || len(info.Keywords) == 0 {
		t.Errorf("info lists %d categories and %d keyword groups", len(info.Categories), len(info.Keywords))
	}
}

func TestCORS(t *testing.T) {
	ts := newTestServer(t, Config{CORSOrigins: []string{"https://example.com"}})

	req, err := http.NewRequest(http.MethodOptions, ts.URL+"/api/analyze", nil)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Origin", "https://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "https://example.com" {
		t.Errorf("Access-Control-Allow-Origin = %q", got)
	}

	req.Header.Set("Origin", "https://other.example")
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("disallowed origin got Access-Control-Allow-Origin = %q", got)
	}
}
