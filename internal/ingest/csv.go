// Package ingest parses the management platform, directory and vulnerability
// scanner CSV exports and merges them into the classified device set.
package ingest

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

var (
	ErrCSV           = errors.New("error parsing CSV export")
	ErrCSVHeader     = errors.New("CSV export is missing a required column")
	ErrRowSkipped    = errors.New("CSV row skipped")
	ErrUnknownSource = errors.New("unknown source kind")

	utf8BOM = []byte{0xEF, 0xBB, 0xBF}
)

// table is a parsed CSV export with case-insensitive column lookup.
type table struct {
	columns map[string]int
	rows    []row
}

// row is a single data record, line is its 1-based record number counting the header.
type row struct {
	t      *table
	fields []string
	line   int
}

func normalizeHeader(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

func parseTable(data []byte) (*table, error) {
	data = bytes.TrimPrefix(data, utf8BOM)

	r := csv.NewReader(bytes.NewReader(data))
	r.LazyQuotes = true
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, errors.Wrap(ErrCSV, err.Error())
	}

	if len(records) == 0 {
		return nil, errors.Wrap(ErrCSV, "empty export")
	}

	t := &table{columns: map[string]int{}}

	for idx, name := range records[0] {
		key := normalizeHeader(name)
		if _, exists := t.columns[key]; !exists && key != "" {
			t.columns[key] = idx
		}
	}

	for idx, fields := range records[1:] {
		if blankRecord(fields) {
			continue
		}

		t.rows = append(t.rows, row{t: t, fields: fields, line: idx + 2})
	}

	return t, nil
}

func blankRecord(fields []string) bool {
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}

	return true
}

// has returns true when any of the column aliases is present.
func (t *table) has(aliases ...string) bool {
	for _, alias := range aliases {
		if _, exists := t.columns[normalizeHeader(alias)]; exists {
			return true
		}
	}

	return false
}

// require returns ErrCSVHeader unless every group has at least one of its aliases present.
func (t *table) require(groups ...[]string) error {
	for _, aliases := range groups {
		if !t.has(aliases...) {
			return errors.Wrap(ErrCSVHeader, strings.Join(aliases, "|"))
		}
	}

	return nil
}

// get returns the first non-empty value among the column aliases.
func (r row) get(aliases ...string) string {
	for _, alias := range aliases {
		idx, exists := r.t.columns[normalizeHeader(alias)]
		if !exists || idx >= len(r.fields) {
			continue
		}

		if v := strings.TrimSpace(r.fields[idx]); v != "" {
			return v
		}
	}

	return ""
}

func (r row) skip(reason string) error {
	return errors.Wrap(ErrRowSkipped, fmt.Sprintf("row %d: %s", r.line, reason))
}
