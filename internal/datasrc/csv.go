// Package datasrc is the CSV/data collaborator (C11): it loads delimited
// text into a header row plus data rows, leaving the conversion into script
// Values to internal/script's dataParseCSV built-in. It never imports
// internal/script, keeping the dependency direction the same as the other
// out-of-core collaborators (markdown, drawing, schema).
package datasrc

import (
	"encoding/csv"
	"strconv"
	"strings"
)

// Table is the header-plus-rows shape ParseCSV produces.
type Table struct {
	Header []string
	Rows   [][]string
}

// ParseCSV reads text as delimiter-separated values with a header row, using
// delim as the field separator. Ragged rows (a
// data row whose field count doesn't match the header) are reported as an
// error rather than silently padded or truncated.
func ParseCSV(text string, delim rune) (*Table, error) {
	r := csv.NewReader(strings.NewReader(text))
	r.Comma = delim
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return &Table{}, nil
	}

	header := records[0]
	rows := records[1:]
	for _, row := range rows {
		if len(row) != len(header) {
			return nil, &RaggedRowError{Want: len(header), Got: len(row)}
		}
	}
	return &Table{Header: header, Rows: rows}, nil
}

// RaggedRowError signals a CSV data row whose field count doesn't match the
// header row's.
type RaggedRowError struct {
	Want, Got int
}

func (e *RaggedRowError) Error() string {
	return "ragged CSV row: expected " + strconv.Itoa(e.Want) + " fields, got " + strconv.Itoa(e.Got)
}
