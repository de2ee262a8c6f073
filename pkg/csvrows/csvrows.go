// Copyright (c) 2026 Temple. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package csvrows converts an uploaded CSV document into flat rows keyed by column name.

The first record is the header. Every following record becomes one [Record]:
a map[string]string from header name to cell value, which is the shape
consumed by bulk import, plus the line of the document the record started on
so that failures can be reported against the file the editor uploaded.

Normalisation:

  - A leading UTF-8 byte order mark (spreadsheet exports) is dropped.
  - Header names and cells are trimmed and converted to Unicode NFC so that
    Devanagari text typed on different systems compares equal.
  - Records with only empty cells are skipped.
*/
package csvrows

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// ErrNoHeader is returned when the document has no header record.
var ErrNoHeader = errors.New("csvrows: missing header row")

const bom = '\uFEFF'

// Record is one data row of the document.
type Record struct {
	// Line is the 1-based line the record starts on; the header is line 1.
	Line   int
	Values map[string]string
}

// Parse reads the whole CSV document from reader.
//
// Rows shorter than the header simply omit the trailing columns; cells beyond
// the header are ignored. A document with a header and no data returns an
// empty, non-nil slice.
func Parse(reader io.Reader) ([]Record, error) {
	buffered := bufio.NewReader(reader)
	if r, _, err := buffered.ReadRune(); err == nil && r != bom {
		_ = buffered.UnreadRune()
	}

	csvReader := csv.NewReader(buffered)
	csvReader.FieldsPerRecord = -1
	csvReader.TrimLeadingSpace = true

	header, err := csvReader.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrNoHeader
	}
	if err != nil {
		return nil, fmt.Errorf("csvrows: read header: %w", err)
	}

	columns := make([]string, len(header))
	for i, name := range header {
		columns[i] = clean(name)
	}

	records := make([]Record, 0)
	for {
		record, err := csvReader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csvrows: read record: %w", err)
		}

		row := make(map[string]string, len(columns))
		blank := true
		for i, cell := range record {
			if i >= len(columns) || columns[i] == "" {
				continue
			}
			value := clean(cell)
			if value != "" {
				blank = false
			}
			row[columns[i]] = value
		}

		if !blank {
			line, _ := csvReader.FieldPos(0)
			records = append(records, Record{Line: line, Values: row})
		}
	}

	return records, nil
}

// Values returns the cell maps of records, in order.
func Values(records []Record) []map[string]string {
	values := make([]map[string]string, len(records))
	for i, record := range records {
		values[i] = record.Values
	}
	return values
}

func clean(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}
