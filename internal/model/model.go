// Package model defines the data structures shared by the analysis engine and
// every consumer of its results (CLI, HTTP, MCP, exporters).
package model

import (
	"fmt"
	"strings"
)

// Category is one of the four STAR classes.
type Category string

const (
	Sense  Category = "SENSE"
	Think  Category = "THINK"
	Act    Category = "ACT"
	Relate Category = "RELATE"
)

// Categories lists every category in tie-break priority order.
var Categories = [...]Category{Sense, Think, Act, Relate}

// Index returns the position of c in Categories, or -1.
func (c Category) Index() int {
	for i, cat := range Categories {
		if cat == c {
			return i
		}
	}
	return -1
}

// ExpectedSentenceType is the sentence structure the theory associates with c.
func (c Category) ExpectedSentenceType() SentenceType {
	switch c {
	case Sense, Think:
		return SentenceSV
	case Act, Relate:
		return SentenceSOV
	default:
		return SentenceUnknown
	}
}

// ParseCategory accepts a category name in any letter case.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToUpper(strings.TrimSpace(s)))
	if c.Index() < 0 {
		return "", fmt.Errorf("unknown category %q", s)
	}
	return c, nil
}

// SentenceType is the structural pattern detected for an input.
type SentenceType string

const (
	SentenceSV      SentenceType = "SV"
	SentenceSOV     SentenceType = "SOV"
	SentenceUnknown SentenceType = "UNKNOWN"
)

// Tier is the coarse confidence bucket of the primary category.
type Tier string

const (
	TierHigh   Tier = "high"
	TierMedium Tier = "medium"
	TierLow    Tier = "low"
)

// Mode records whether morphological tokens were available for an analysis.
type Mode string

const (
	ModeTokenizer Mode = "tokenizer"
	ModeKeyword   Mode = "keyword"
)

// Token is one morphological unit produced by a tokenizer backend.
type Token struct {
	Surface  string `json:"surface" yaml:"surface"`
	POS      string `json:"pos" yaml:"pos"`
	BaseForm string `json:"base_form,omitempty" yaml:"base_form,omitempty"`
}
