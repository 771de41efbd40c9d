package tokenizer

import (
	"fmt"

	"github.com/ikawaha/kagome-dict/ipa"
	kagome "github.com/ikawaha/kagome/v2/tokenizer"

	"github.com/starfeel/star/internal/model"
)

// Kagome is the in-process backend built on the IPA dictionary. It is safe
// for concurrent use.
type Kagome struct {
	t *kagome.Tokenizer
}

// NewKagome loads the IPA dictionary and builds a tokenizer.
func NewKagome() (k *Kagome, err error) {
	// Dictionary loading panics on a corrupt embedded dictionary.
	defer func() {
		if r := recover(); r != nil {
			k, err = nil, fmt.Errorf("load ipa dictionary: %v", r)
		}
	}()
	t, err := kagome.New(ipa.Dict(), kagome.OmitBosEos())
	if err != nil {
		return nil, fmt.Errorf("create kagome tokenizer: %w", err)
	}
	return &Kagome{t: t}, nil
}

func (k *Kagome) Available() bool { return k != nil && k.t != nil }

func (k *Kagome) Tokenize(text string) []model.Token {
	if !k.Available() || text == "" {
		return nil
	}
	raw := k.t.Tokenize(text)
	tokens := make([]model.Token, 0, len(raw))
	for _, r := range raw {
		if r.Surface == "" {
			continue
		}
		tok := model.Token{Surface: r.Surface}
		if pos := r.POS(); len(pos) > 0 && pos[0] != "*" {
			tok.POS = pos[0]
		}
		if base, ok := r.BaseForm(); ok && base != "*" {
			tok.BaseForm = base
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

func (k *Kagome) Name() string { return BackendKagome }

func (k *Kagome) Close() error { return nil }
