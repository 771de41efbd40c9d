// Package export renders analysis results as text reports, JSON, YAML and
// CSV, and reads the structured formats back. Every result field keeps the
// same name in every format.
package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/starfeel/star/internal/model"
)

// Format names an output format.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatCSV  Format = "csv"
)

// Formats lists every supported format.
var Formats = []Format{FormatText, FormatJSON, FormatYAML, FormatCSV}

// ErrUnknownFormat is returned for a format name outside Formats.
var ErrUnknownFormat = errors.New("unknown output format")

// ParseFormat accepts a format name in any letter case.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w %q (want text, json, yaml or csv)", ErrUnknownFormat, s)
}

// Write renders results. JSON and YAML emit a single document for one result
// and a list otherwise.
func Write(w io.Writer, format Format, results []model.Result) error {
	switch format {
	case FormatText:
		for i, r := range results {
			if i > 0 {
				if _, err := fmt.Fprintln(w); err != nil {
					return err
				}
			}
			if err := WriteText(w, r); err != nil {
				return err
			}
		}
		return nil
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if len(results) == 1 {
			return enc.Encode(results[0])
		}
		return enc.Encode(results)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		if len(results) == 1 {
			return enc.Encode(results[0])
		}
		return enc.Encode(results)
	case FormatCSV:
		cw := NewCSVWriter(w)
		for _, r := range results {
			if err := cw.Write(r); err != nil {
				return err
			}
		}
		return cw.Flush()
	}
	return fmt.Errorf("%w %q", ErrUnknownFormat, format)
}

// WriteList is Write with JSON and YAML always emitting a list, for callers
// whose result count varies with input.
func WriteList(w io.Writer, format Format, results []model.Result) error {
	if results == nil {
		results = []model.Result{}
	}
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(results)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(results)
	}
	return Write(w, format, results)
}

// MarshalJSON encodes one result.
func MarshalJSON(r model.Result) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, FormatJSON, []model.Result{r}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes one result, rejecting unknown fields.
func UnmarshalJSON(data []byte) (model.Result, error) {
	var r model.Result
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&r); err != nil {
		return model.Result{}, fmt.Errorf("decode json result: %w", err)
	}
	return r, nil
}

// MarshalYAML encodes one result.
func MarshalYAML(r model.Result) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, FormatYAML, []model.Result{r}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalYAML decodes one result, rejecting unknown fields.
func UnmarshalYAML(data []byte) (model.Result, error) {
	var r model.Result
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&r); err != nil {
		return model.Result{}, fmt.Errorf("decode yaml result: %w", err)
	}
	return r, nil
}
