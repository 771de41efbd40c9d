package config

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

func TestLoadDefaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	got, err := Load(v)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	want := Settings{
		Tokenizer: TokenizerSettings{Backend: "auto"},
		Serve:     ServeSettings{Addr: ":8080", CORSOrigins: []string{"*"}, MaxBatch: 1000},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("STAR_TOKENIZER_BACKEND", "MeCab")
	t.Setenv("STAR_SERVE_ADDR", "127.0.0.1:9090")
	t.Setenv("STAR_BATCH_WORKERS", "4")
	t.Setenv("STAR_SERVE_MAX_BATCH", "50")

	v := viper.New()
	SetDefaults(v)
	got, err := Load(v)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got.Tokenizer.Backend != "mecab" {
		t.Errorf("Tokenizer.Backend = %q, want mecab", got.Tokenizer.Backend)
	}
	if got.Serve.Addr != "127.0.0.1:9090" {
		t.Errorf("Serve.Addr = %q", got.Serve.Addr)
	}
	if got.Batch.Workers != 4 {
		t.Errorf("Batch.Workers = %d, want 4", got.Batch.Workers)
	}
	if got.Serve.MaxBatch != 50 {
		t.Errorf("Serve.MaxBatch = %d, want 50", got.Serve.MaxBatch)
	}
}

func TestLoadFromFile(t *testing.T) {
	doc := `
tokenizer:
  backend: none
analysis:
  lexicon: /etc/star/lexicon.yaml
serve:
  cors_origins: [https://a.example, https://b.example]
  max_batch: 25
`
	v := viper.New()
	SetDefaults(v)
	v.SetConfigType("yaml")
	if err := v.ReadConfig(strings.NewReader(doc)); err != nil {
		t.Fatal(err)
	}
	got, err := Load(v)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got.Tokenizer.Backend != "none" || got.Analysis.Lexicon != "/etc/star/lexicon.yaml" {
		t.Errorf("Load() = %+v", got)
	}
	if diff := cmp.Diff([]string{"https://a.example", "https://b.example"}, got.Serve.CORSOrigins); diff != "" {
		t.Errorf("CORSOrigins mismatch (-want +got):\n%s", diff)
	}
	if got.Serve.MaxBatch != 25 {
		t.Errorf("Serve.MaxBatch = %d, want 25", got.Serve.MaxBatch)
	}
}

func TestValidate(t *testing.T) {
	valid := Settings{
		Tokenizer: TokenizerSettings{Backend: "kagome"},
		Serve:     ServeSettings{Addr: ":8080"},
	}
	tests := []struct {
		name    string
		mutate  func(*Settings)
		wantErr string
	}{
		{"valid", func(*Settings) {}, ""},
		{"bad backend", func(s *Settings) { s.Tokenizer.Backend = "sudachi" }, "tokenizer.backend"},
		{"empty addr", func(s *Settings) { s.Serve.Addr = " " }, "serve.addr"},
		{"negative workers", func(s *Settings) { s.Batch.Workers = -1 }, "batch.workers"},
		{"negative max batch", func(s *Settings) { s.Serve.MaxBatch = -5 }, "serve.max_batch"},
		{"empty origin", func(s *Settings) { s.Serve.CORSOrigins = []string{""} }, "cors_origins"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid
			tt.mutate(&s)
			err := s.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidateReportsAllProblems(t *testing.T) {
	s := Settings{Tokenizer: TokenizerSettings{Backend: "x"}, Batch: BatchSettings{Workers: -2}}
	err := s.Validate()
	if err == nil {
		t.Fatal("Validate() = nil")
	}
	for _, want := range []string{"tokenizer.backend", "serve.addr", "batch.workers"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Validate() error lacks %q: %v", want, err)
		}
	}
}

func TestDefaultFileLoads(t *testing.T) {
	var doc map[string]any
	if err := yaml.Unmarshal([]byte(DefaultFile), &doc); err != nil {
		t.Fatalf("DefaultFile is not YAML: %v", err)
	}

	v := viper.New()
	SetDefaults(v)
	v.SetConfigType("yaml")
	if err := v.ReadConfig(strings.NewReader(DefaultFile)); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(v); err != nil {
		t.Errorf("Load(DefaultFile) error = %v", err)
	}
}
