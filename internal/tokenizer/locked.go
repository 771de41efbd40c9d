package tokenizer

import (
	"sync"

	"github.com/starfeel/star/internal/model"
)

// Locked serializes every call to a backend that is not reentrant.
type Locked struct {
	mu sync.Mutex
	t  Tokenizer
}

// NewLocked wraps t.
func NewLocked(t Tokenizer) *Locked {
	return &Locked{t: t}
}

func (l *Locked) Available() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.t.Available()
}

func (l *Locked) Tokenize(text string) []model.Token {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.t.Tokenize(text)
}

func (l *Locked) Name() string { return l.t.Name() }

func (l *Locked) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.t.Close()
}
