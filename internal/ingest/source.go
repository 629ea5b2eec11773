package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"net/url"
	"strconv"
)

// Qualtrics exports put two metadata rows (question text, import ids)
// between the header and the first real submission
const metadataRows = 2

// ReadCSV parses a Qualtrics export into raw submissions keyed by column
// name. A failure here is a source read error: the whole batch aborts
// before any record is processed.
func ReadCSV(r io.Reader) ([]Raw, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	var rows []Raw
	line := 0
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row: %w", err)
		}
		line++
		if line <= metadataRows {
			continue
		}
		row := make(Raw, len(header))
		for i, h := range header {
			if i < len(rec) {
				row[h] = rec[i]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// RawFromJSON normalizes a decoded JSON payload into one raw submission.
// Single-element arrays collapse to their scalar, numbers render without a
// trailing ".0", nulls become absent.
func RawFromJSON(data map[string]interface{}) Raw {
	raw := make(Raw, len(data))
	for k, v := range data {
		if s, ok := stringify(v); ok {
			raw[k] = s
		}
	}
	return raw
}

// RawFromForm normalizes form-encoded fields, collapsing single-element
// value lists the way the webhook sender produces them
func RawFromForm(values url.Values) Raw {
	raw := make(Raw, len(values))
	for k, v := range values {
		if len(v) > 0 {
			raw[k] = v[0]
		}
	}
	return raw
}

func stringify(v interface{}) (string, bool) {
	switch t := v.(type) {
	case nil:
		return "", false
	case string:
		return t, true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(t), true
	case []interface{}:
		if len(t) == 1 {
			return stringify(t[0])
		}
		return "", false
	default:
		return fmt.Sprintf("%v", t), true
	}
}
