// Package server exposes the analyzer as a JSON REST API.
//
// Endpoints:
//
//	POST /api/analyze        body: {"text":"..."}
//	POST /api/analyze/batch  body: {"texts":["...", "..."]}
//	GET  /api/info
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/rs/cors"

	"github.com/starfeel/star/internal/analyzer"
	"github.com/starfeel/star/internal/lexicon"
	"github.com/starfeel/star/internal/model"
)

const maxBodyBytes = 1 << 20

// DefaultMaxBatch caps the number of texts in one batch request.
const DefaultMaxBatch = 1000

// Config controls the HTTP surface.
type Config struct {
	Addr        string
	CORSOrigins []string
	Workers     int
	MaxBatch    int
	Version     string
	Debug       bool
}

// Server serves one analyzer over HTTP.
type Server struct {
	an  *analyzer.Analyzer
	cfg Config
}

func New(an *analyzer.Analyzer, cfg Config) *Server {
	if cfg.MaxBatch <= 0 {
		cfg.MaxBatch = DefaultMaxBatch
	}
	if len(cfg.CORSOrigins) == 0 {
		cfg.CORSOrigins = []string{"*"}
	}
	return &Server{an: an, cfg: cfg}
}

// ---- JSON types ---------------------------------------------------------

type analyzeRequest struct {
	Text *string `json:"text"`
}

type batchRequest struct {
	Texts []string `json:"texts"`
}

type batchItemJSON struct {
	Index  int           `json:"index"`
	Result *model.Result `json:"result,omitempty"`
	Error  string        `json:"error,omitempty"`
}

type batchResponse struct {
	Results []batchItemJSON `json:"results"`
}

type infoResponse struct {
	Name       string               `json:"name"`
	Version    string               `json:"version"`
	Tokenizer  string               `json:"tokenizer"`
	Mode       model.Mode           `json:"mode"`
	Lexicon    string               `json:"lexicon"`
	Categories []model.Category     `json:"categories"`
	Keywords   []lexicon.GroupCount `json:"keywords"`
	Thresholds lexicon.Thresholds   `json:"thresholds"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// ---- helpers ------------------------------------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[serve] encode error: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func decode(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// ---- handlers -----------------------------------------------------------

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "POST required")
		return
	}
	var body analyzeRequest
	if err := decode(w, r, &body); err != nil || body.Text == nil {
		writeError(w, http.StatusBadRequest, "body must be JSON with a 'text' field")
		return
	}

	res, err := s.an.Analyze(*body.Text)
	if err != nil {
		if analyzer.IsInvalidInput(err) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleBatch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "POST required")
		return
	}
	var body batchRequest
	if err := decode(w, r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "body must be JSON with a 'texts' array")
		return
	}
	if len(body.Texts) > s.cfg.MaxBatch {
		writeError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("at most %d texts per request", s.cfg.MaxBatch))
		return
	}

	items, err := s.an.AnalyzeBatch(r.Context(), body.Texts, s.cfg.Workers)
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	out := batchResponse{Results: make([]batchItemJSON, 0, len(items))}
	for _, item := range items {
		j := batchItemJSON{Index: item.Index}
		if item.Err != nil {
			j.Error = item.Err.Error()
		} else {
			res := item.Result
			j.Result = &res
		}
		out.Results = append(out.Results, j)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "GET required")
		return
	}
	lex := s.an.Lexicon()
	writeJSON(w, http.StatusOK, infoResponse{
		Name:       "star",
		Version:    s.cfg.Version,
		Tokenizer:  s.an.TokenizerName(),
		Mode:       s.an.Mode(),
		Lexicon:    lex.Source(),
		Categories: model.Categories[:],
		Keywords:   lex.Summary(),
		Thresholds: lex.Thresholds(),
	})
}

// Handler returns the API routes wrapped in the CORS policy.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/analyze/batch", s.handleBatch)
	mux.HandleFunc("/api/analyze", s.handleAnalyze)
	mux.HandleFunc("/api/info", s.handleInfo)

	c := cors.New(cors.Options{
		AllowedOrigins: s.cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
		Debug:          false,
	})
	var h http.Handler = c.Handler(mux)
	if s.cfg.Debug {
		h = logRequests(h)
	}
	return h
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("[serve] %s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[serve] listening on %s", s.cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve %s: %w", s.cfg.Addr, err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	}
}
