// Package csv implements the lenient delimited-text parsing used by bulk
// catalog import and export. Unlike encoding/csv it never rejects input:
// stray quotes are taken literally, rows may have ragged widths, and
// fully-blank rows are silently dropped.
package csv

import (
	"strings"
)

// Parse splits raw delimited text into rows of fields. A doubled quote
// inside a quoted field is a literal quote, commas separate fields only
// outside quotes, and bare \n or \r\n terminate rows only outside quotes,
// so quoted cells may span multiple lines. Fully-blank rows are skipped.
func Parse(text string) [][]string {
	var rows [][]string
	var row []string
	var field strings.Builder
	inQuotes := false
	atFieldStart := true

	flushField := func() {
		row = append(row, field.String())
		field.Reset()
		atFieldStart = true
	}
	flushRow := func() {
		flushField()
		if !blankRow(row) {
			rows = append(rows, row)
		}
		row = nil
	}

	for i := 0; i < len(text); i++ {
		c := text[i]

		if inQuotes {
			if c == '"' {
				if i+1 < len(text) && text[i+1] == '"' {
					field.WriteByte('"')
					i++
					continue
				}
				inQuotes = false
				continue
			}
			field.WriteByte(c)
			continue
		}

		switch c {
		case '"':
			if atFieldStart {
				inQuotes = true
				atFieldStart = false
			} else {
				// Stray quote mid-field: keep it literally.
				field.WriteByte(c)
			}
		case ',':
			flushField()
		case '\n':
			flushRow()
		case '\r':
			if i+1 < len(text) && text[i+1] == '\n' {
				flushRow()
				i++
			} else {
				field.WriteByte(c)
			}
		default:
			field.WriteByte(c)
			atFieldStart = false
		}
	}

	// Unterminated final row (no trailing newline).
	if field.Len() > 0 || len(row) > 0 {
		flushRow()
	}

	return rows
}

func blankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// Table is a parsed document with a header row and column lookup.
type Table struct {
	Header []string
	Rows   [][]string

	index map[string]int
}

// ParseTable parses text and treats the first non-blank row as the header.
// Returns nil when the document has no rows at all.
func ParseTable(text string) *Table {
	rows := Parse(text)
	if len(rows) == 0 {
		return nil
	}

	t := &Table{
		Header: rows[0],
		Rows:   rows[1:],
		index:  make(map[string]int, len(rows[0])),
	}
	for i, h := range t.Header {
		key := normalizeHeader(h)
		if _, taken := t.index[key]; !taken {
			t.index[key] = i
		}
	}
	return t
}

// Get returns the trimmed cell under the named column for a row, or ""
// when the column is unknown or the row is too short. Column matching is
// case-insensitive.
func (t *Table) Get(row []string, column string) string {
	i, ok := t.index[normalizeHeader(column)]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func normalizeHeader(h string) string {
	return strings.ToLower(strings.TrimSpace(h))
}

// Write renders rows back to delimited text with minimal quoting: a field
// is quoted only when it contains a comma, quote, or line break, with
// inner quotes doubled. The structural inverse of Parse.
func Write(rows [][]string) string {
	var b strings.Builder
	for _, row := range rows {
		for i, cell := range row {
			if i > 0 {
				b.WriteByte(',')
			}
			writeCell(&b, cell)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func writeCell(b *strings.Builder, cell string) {
	if !strings.ContainsAny(cell, ",\"\n\r") {
		b.WriteString(cell)
		return
	}
	b.WriteByte('"')
	b.WriteString(strings.ReplaceAll(cell, `"`, `""`))
	b.WriteByte('"')
}
