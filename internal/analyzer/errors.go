package analyzer

import "errors"

// ErrInvalidInput is returned for text the engine cannot analyze: invalid
// UTF-8, NUL bytes, or more characters than the configured limit.
var ErrInvalidInput = errors.New("invalid input text")
