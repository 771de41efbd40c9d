// Package analyzer classifies Japanese emotional text into the STAR
// categories. An Analyzer is built once from a validated lexicon and a
// tokenizer and is safe for concurrent use.
package analyzer

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"unicode/utf8"

	"github.com/starfeel/star/internal/lexicon"
	"github.com/starfeel/star/internal/model"
	"github.com/starfeel/star/internal/tokenizer"
)

// Analyzer runs the STAR+FEEL pipeline: normalize, tokenize, classify the
// sentence type, score the four lexicons, quantify FEEL and resolve.
type Analyzer struct {
	lex   *lexicon.Lexicon
	tok   tokenizer.Tokenizer
	mode  model.Mode
	debug bool
	trace bool
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithDebug logs tokenizer selection and per-call decisions.
func WithDebug(debug bool) Option {
	return func(a *Analyzer) { a.debug = debug }
}

// WithTrace attaches the intermediate state of every call to its result.
func WithTrace(trace bool) Option {
	return func(a *Analyzer) { a.trace = trace }
}

// New builds an analyzer. A nil tokenizer means keyword-only mode. The
// analyzer takes ownership of tok and closes it in Close.
func New(lex *lexicon.Lexicon, tok tokenizer.Tokenizer, opts ...Option) (*Analyzer, error) {
	if lex == nil {
		return nil, fmt.Errorf("%w: no lexicon", lexicon.ErrConfig)
	}
	if tok == nil {
		tok = tokenizer.Null{}
	}
	a := &Analyzer{lex: lex, tok: tok, mode: model.ModeKeyword}
	for _, opt := range opts {
		opt(a)
	}
	if tok.Available() {
		a.mode = model.ModeTokenizer
	}
	if a.debug {
		log.Printf("[analyzer] lexicon %s, tokenizer %s, mode %s", lex.Source(), tok.Name(), a.mode)
	}
	return a, nil
}

// Mode reports whether tokens were available when the analyzer was built.
func (a *Analyzer) Mode() model.Mode { return a.mode }

func (a *Analyzer) TokenizerName() string { return a.tok.Name() }

func (a *Analyzer) Lexicon() *lexicon.Lexicon { return a.lex }

// Close releases the tokenizer.
func (a *Analyzer) Close() error {
	return a.tok.Close()
}

func (a *Analyzer) validate(text string) error {
	if !utf8.ValidString(text) {
		return fmt.Errorf("%w: not valid UTF-8", ErrInvalidInput)
	}
	if strings.IndexByte(text, 0) >= 0 {
		return fmt.Errorf("%w: contains NUL byte", ErrInvalidInput)
	}
	if limit := a.lex.MaxInputRunes(); limit > 0 {
		if n := utf8.RuneCountInString(text); n > limit {
			return fmt.Errorf("%w: %d characters exceeds limit of %d", ErrInvalidInput, n, limit)
		}
	}
	return nil
}

// Analyze classifies text. Empty or whitespace-only text is valid and yields
// the all-zero result.
func (a *Analyzer) Analyze(text string) (model.Result, error) {
	if err := a.validate(text); err != nil {
		return model.Result{}, err
	}

	normalized := normalize(text)
	runes := []rune(normalized)

	mode := a.mode
	var tokens []model.Token
	if normalized != "" && mode == model.ModeTokenizer {
		tokens = a.tok.Tokenize(normalized)
		if len(tokens) == 0 {
			mode = model.ModeKeyword
		}
	}
	spans := alignTokens(runes, tokens)

	intensity := findIntensity(runes, a.lex.IntensityWords())
	sentence := classifySentence(runes, spans, a.lex.SentenceMarkers(), intensity, nil)

	s := &scorer{
		lex:       a.lex,
		runes:     runes,
		spans:     spans,
		clauses:   clauseIDs(runes),
		intensity: intensity,
	}
	scores := s.score()

	var (
		raw     [len(model.Categories)]float64
		matches [len(model.Categories)][]model.Match
		total   int
	)
	for i, cs := range scores {
		raw[i] = cs.raw
		matches[i] = cs.matches
		total += len(cs.matches)
	}

	feel, indicators := quantifyFeel(runes, normalized, a.lex.Feel())
	res := resolve(raw, a.lex)

	result := model.Result{
		Text:             text,
		Primary:          res.primary,
		Scores:           model.NewByCategory(res.scores),
		RawScores:        model.NewByCategory(raw),
		Tier:             res.tier,
		Feel:             feel,
		SentenceType:     sentence,
		Ambiguous:        res.ambiguous,
		Keywords:         model.NewByCategory(matches),
		Mode:             mode,
		StructurePattern: a.lex.StructurePattern(res.primary),
		Progression:      progression(runes, matches),
		MixedEmotions:    res.mixed,
		Patterns:         detectPatterns(normalized, feel, a.lex.EmotionPatterns()),
		Quality:          assessQuality(len(runes), total, res.scores, a.lex.Quality()),
	}

	if a.trace {
		var (
			steps       [len(model.Categories)][]string
			multipliers [len(model.Categories)]float64
		)
		for i, cs := range scores {
			steps[i] = cs.steps
			multipliers[i] = cs.multiplier
		}
		result.Trace = &model.Trace{
			NormalizedText: normalized,
			Tokens:         tokens,
			FeelIndicators: indicators,
			Steps:          model.NewByCategory(steps),
			Multipliers:    model.NewByCategory(multipliers),
			SentenceTypes:  model.NewByCategory(s.sentences),
		}
	}

	if a.debug {
		log.Printf("[analyzer] primary=%s tier=%s sentence=%s feel=%.2f mode=%s", result.Primary, result.Tier, sentence, feel, mode)
	}
	return result, nil
}

// IsInvalidInput reports whether err came from input validation.
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}
