package lexicon

import (
	"errors"
	"fmt"
	"strings"
)

// ErrConfig is matched by every configuration failure.
var ErrConfig = errors.New("invalid analysis configuration")

// ConfigError lists every problem found while loading an analysis document.
type ConfigError struct {
	Source   string
	Problems []string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("analysis configuration %s: %s", e.Source, strings.Join(e.Problems, "; "))
}

func (e *ConfigError) Unwrap() error {
	return ErrConfig
}

// problems collects validation failures in the order they are found.
type problems []string

func (p *problems) addf(format string, args ...any) {
	*p = append(*p, fmt.Sprintf(format, args...))
}

func (p problems) err(source string) error {
	if len(p) == 0 {
		return nil
	}
	return &ConfigError{Source: source, Problems: p}
}
