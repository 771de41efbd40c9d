// Package tokenizer adapts Japanese morphological analyzers to the narrow
// interface the analysis engine needs. Every backend is optional: when none
// can be acquired the engine runs on the Null backend in keyword-only mode.
package tokenizer

import (
	"log"
	"strings"

	"github.com/starfeel/star/internal/model"
)

// Backend names accepted by Open.
const (
	BackendAuto   = "auto"
	BackendKagome = "kagome"
	BackendMecab  = "mecab"
	BackendNone   = "none"
)

// Backends lists every backend name in auto-selection order.
var Backends = []string{BackendKagome, BackendMecab, BackendNone}

// Tokenizer splits text into morphological tokens.
type Tokenizer interface {
	// Available reports whether Tokenize can return tokens.
	Available() bool
	// Tokenize returns the tokens of text, or nil when the backend is
	// unavailable or fails for this input.
	Tokenize(text string) []model.Token
	Name() string
	Close() error
}

// Options configures backend acquisition.
type Options struct {
	Debug     bool
	MecabPath string
}

// Null is the always-unavailable backend.
type Null struct{}

func (Null) Available() bool { return false }

func (Null) Tokenize(string) []model.Token { return nil }

func (Null) Name() string { return BackendNone }

func (Null) Close() error { return nil }

// Open acquires the named backend. It never fails: any acquisition problem
// is logged in debug mode and Null is returned instead.
func Open(backend string, opts Options) Tokenizer {
	name := strings.ToLower(strings.TrimSpace(backend))
	if name == "" {
		name = BackendAuto
	}

	switch name {
	case BackendAuto:
		for _, candidate := range Backends {
			if t := open(candidate, opts); t.Available() {
				return t
			}
		}
		return Null{}
	case BackendKagome, BackendMecab, BackendNone:
		return open(name, opts)
	default:
		if opts.Debug {
			log.Printf("[tokenizer] unknown backend %q, using keyword-only mode", backend)
		}
		return Null{}
	}
}

func open(name string, opts Options) Tokenizer {
	var (
		t   Tokenizer
		err error
	)
	switch name {
	case BackendKagome:
		t, err = NewKagome()
	case BackendMecab:
		var m *Mecab
		m, err = NewMecab(opts.MecabPath)
		if err == nil {
			t = NewLocked(m)
		}
	default:
		return Null{}
	}
	if err != nil {
		if opts.Debug {
			log.Printf("[tokenizer] %s unavailable: %v", name, err)
		}
		return Null{}
	}
	if opts.Debug {
		log.Printf("[tokenizer] using %s backend", t.Name())
	}
	return t
}
