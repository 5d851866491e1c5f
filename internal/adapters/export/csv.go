// Package export renders store collections as CSV downloads.
package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrNoRecords is returned when a collection has nothing to export.
var ErrNoRecords = errors.New("export: no records")

// CSV renders a slice of records as CSV. Headers are the first record's JSON
// keys in declaration order; every record is rendered against that header
// set. Values containing a comma, quote or newline are quoted with inner
// quotes doubled.
func CSV[T any](records []T) ([]byte, error) {
	if len(records) == 0 {
		return nil, ErrNoRecords
	}

	first, err := json.Marshal(records[0])
	if err != nil {
		return nil, fmt.Errorf("export: encode record: %w", err)
	}
	headers, err := keyOrder(first)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteString(strings.Join(headers, ","))
	buf.WriteByte('\n')

	for _, record := range records {
		raw, err := json.Marshal(record)
		if err != nil {
			return nil, fmt.Errorf("export: encode record: %w", err)
		}
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(raw, &fields); err != nil {
			return nil, fmt.Errorf("export: decode record: %w", err)
		}
		row := make([]string, len(headers))
		for i, h := range headers {
			row[i] = escape(stringify(fields[h]))
		}
		buf.WriteString(strings.Join(row, ","))
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}

// Filename builds the dated download name for a collection export.
func Filename(base string, now time.Time) string {
	return fmt.Sprintf("%s_%s.csv", base, now.Format("2006-01-02"))
}

// keyOrder walks the top level of a JSON object and returns its keys in
// encounter order, which for a marshalled struct is field declaration order.
func keyOrder(raw []byte) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("export: read header record: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, errors.New("export: record is not an object")
	}

	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("export: read header record: %w", err)
		}
		key, ok := tok.(string)
		if !ok {
			return nil, errors.New("export: record is not an object")
		}
		keys = append(keys, key)
		// Skip the key's value so nested keys are not collected.
		var discard json.RawMessage
		if err := dec.Decode(&discard); err != nil {
			return nil, fmt.Errorf("export: read header record: %w", err)
		}
	}
	return keys, nil
}

// stringify renders a JSON value the way a cell reads best: strings lose
// their quotes, string arrays join on commas, and anything nested stays as
// compact JSON.
func stringify(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return strings.Join(list, ",")
	}
	return string(raw)
}

func escape(value string) string {
	if !strings.ContainsAny(value, ",\"\n") {
		return value
	}
	return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
}
