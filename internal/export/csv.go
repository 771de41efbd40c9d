package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/starfeel/star/internal/model"
)

// Columns is the tabular layout of a result shared by CSV and SQL sinks.
var Columns = []string{
	"text", "primary",
	"sense", "think", "act", "relate",
	"raw_sense", "raw_think", "raw_act", "raw_relate",
	"tier", "feel", "sentence_type", "ambiguous", "mode",
	"sense_keywords", "think_keywords", "act_keywords", "relate_keywords",
}

// keywordSep joins the distinct keywords of a category in one cell.
const keywordSep = "|"

// Record flattens a result into Columns order. Floats use the shortest
// representation that parses back to the same value.
func Record(r model.Result) []string {
	rec := make([]string, 0, len(Columns))
	rec = append(rec, r.Text, string(r.Primary))
	for _, v := range r.Scores.Array() {
		rec = append(rec, formatFloat(v))
	}
	for _, v := range r.RawScores.Array() {
		rec = append(rec, formatFloat(v))
	}
	rec = append(rec,
		string(r.Tier),
		formatFloat(r.Feel),
		string(r.SentenceType),
		strconv.FormatBool(r.Ambiguous),
		string(r.Mode),
	)
	for _, c := range model.Categories {
		rec = append(rec, strings.Join(r.KeywordList(c), keywordSep))
	}
	return rec
}

// FromRecord rebuilds a result from a row in Columns order. Match details
// other than the keyword are not stored in a row.
func FromRecord(rec []string) (model.Result, error) {
	if len(rec) != len(Columns) {
		return model.Result{}, fmt.Errorf("csv row has %d fields, want %d", len(rec), len(Columns))
	}
	var (
		r    model.Result
		errs []error
	)
	parse := func(col int) float64 {
		v, err := strconv.ParseFloat(rec[col], 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", Columns[col], err))
		}
		return v
	}

	r.Text = rec[0]
	primary, err := model.ParseCategory(rec[1])
	if err != nil {
		errs = append(errs, fmt.Errorf("primary: %w", err))
	}
	r.Primary = primary
	r.Scores = model.NewByCategory([len(model.Categories)]float64{parse(2), parse(3), parse(4), parse(5)})
	r.RawScores = model.NewByCategory([len(model.Categories)]float64{parse(6), parse(7), parse(8), parse(9)})
	r.Tier = model.Tier(rec[10])
	r.Feel = parse(11)
	r.SentenceType = model.SentenceType(rec[12])
	ambiguous, err := strconv.ParseBool(rec[13])
	if err != nil {
		errs = append(errs, fmt.Errorf("ambiguous: %w", err))
	}
	r.Ambiguous = ambiguous
	r.Mode = model.Mode(rec[14])

	var keywords [len(model.Categories)][]model.Match
	for i := range model.Categories {
		cell := rec[15+i]
		if cell == "" {
			continue
		}
		for _, kw := range strings.Split(cell, keywordSep) {
			keywords[i] = append(keywords[i], model.Match{Keyword: kw})
		}
	}
	r.Keywords = model.NewByCategory(keywords)

	if err := errors.Join(errs...); err != nil {
		return model.Result{}, err
	}
	return r, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// CSVWriter writes a header row followed by one row per result.
type CSVWriter struct {
	w      *csv.Writer
	header bool
}

func NewCSVWriter(w io.Writer) *CSVWriter {
	return &CSVWriter{w: csv.NewWriter(w)}
}

func (cw *CSVWriter) Write(r model.Result) error {
	if !cw.header {
		if err := cw.w.Write(Columns); err != nil {
			return err
		}
		cw.header = true
	}
	return cw.w.Write(Record(r))
}

// Flush writes the header even when no result was written.
func (cw *CSVWriter) Flush() error {
	if !cw.header {
		if err := cw.w.Write(Columns); err != nil {
			return err
		}
		cw.header = true
	}
	cw.w.Flush()
	return cw.w.Error()
}

// ReadCSV parses output of CSVWriter.
func ReadCSV(r io.Reader) ([]model.Result, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(Columns)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	for i, name := range header {
		if name != Columns[i] {
			return nil, fmt.Errorf("csv column %d is %q, want %q", i, name, Columns[i])
		}
	}

	var results []model.Result
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return results, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		res, err := FromRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("csv line %d: %w", line, err)
		}
		results = append(results, res)
	}
}
