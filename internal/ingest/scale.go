package ingest

import (
	"fmt"
	"strconv"
	"strings"
)

// ScaleKind selects how a raw ordinal value is decoded
type ScaleKind int

const (
	// ScaleRating accepts an integer or a "N (Label)" string, e.g. "1 (Poor)"
	ScaleRating ScaleKind = iota
	// ScaleAgreement additionally accepts the five agreement labels,
	// e.g. "Strongly Agree"
	ScaleAgreement
)

// Five-point agreement lexicon used by the webhook channel. Checked in
// order: "neither" alone must not shadow the two-word disagree/agree labels.
var agreementLabels = []struct {
	label string
	code  int
}{
	{"strongly disagree", 1},
	{"somewhat disagree", 2},
	{"neither agree nor disagree", 3},
	{"neither", 3},
	{"somewhat agree", 4},
	{"strongly agree", 5},
}

// DecodeOrdinal converts a raw ordinal value to its integer code.
// Empty strings and the literal "0" mean "no answer" (codes are 1-based),
// so both decode to not-ok rather than an error. Malformed values also
// decode to not-ok; the caller decides whether that matters.
func DecodeOrdinal(raw string, kind ScaleKind) (int, bool) {
	s := strings.TrimSpace(raw)
	if s == "" || s == "0" {
		return 0, false
	}

	// "1 (Poor)", "2 (Neutral)" etc: the numeral before the parenthesis
	if i := strings.Index(s, "("); i >= 0 {
		s = strings.TrimSpace(s[:i])
		n, err := strconv.Atoi(s)
		if err != nil || n == 0 {
			return 0, false
		}
		return n, true
	}

	if n, err := strconv.Atoi(s); err == nil {
		return n, true
	}

	if kind == ScaleAgreement {
		lower := strings.ToLower(s)
		for _, a := range agreementLabels {
			if strings.Contains(lower, a.label) {
				return a.code, true
			}
		}
	}

	return 0, false
}

// ScaleRange is the declared inclusive bounds of an ordinal scale
type ScaleRange struct {
	Min int
	Max int
}

func (r ScaleRange) validate() error {
	if r.Min >= r.Max {
		return fmt.Errorf("degenerate scale range [%d, %d]", r.Min, r.Max)
	}
	return nil
}

// Normalize rescales code from [r.Min, r.Max] onto [-1, 1].
// Ranges are validated when the field schema is built, never per record.
func (r ScaleRange) Normalize(code int) float64 {
	return 2*float64(code-r.Min)/float64(r.Max-r.Min) - 1
}
