package gsheets

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// encode formats the grid as comma separated values with minimal quoting and CRLF
// row terminators. Line breaks inside a cell are written as is. Empty rows are written
// as blank lines and a row with a single empty cell as "" so that decode can tell them
// apart.
func encode(values [][]string) ([]byte, error) {
	var b bytes.Buffer
	var row bytes.Buffer

	w := csv.NewWriter(&row)
	w.Comma = ','

	for _, record := range values {
		row.Reset()

		if len(record) == 1 && record[0] == "" {
			b.WriteString("\"\"\r\n")
			continue
		}

		if err := w.Write(record); err != nil {
			return nil, err
		}

		w.Flush()
		if err := w.Error(); err != nil {
			return nil, err
		}

		b.Write(bytes.TrimSuffix(row.Bytes(), []byte("\n")))
		b.WriteString("\r\n")
	}

	return b.Bytes(), nil
}

// decode parses CSV into a grid of strings. Rows may have differing numbers of fields,
// blank lines are returned as empty rows and carriage returns inside quoted fields are
// preserved.
func decode(f io.Reader) ([][]string, error) {
	b, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}

	if !utf8.Valid(b) {
		return nil, fmt.Errorf("CSV is not valid UTF-8")
	}

	r := csv.NewReader(bytes.NewReader(protectCR(b)))
	r.Comma = ','
	r.FieldsPerRecord = -1
	r.ReuseRecord = false

	records := [][]string{}
	last := 0

	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}

		// ... restore the blank lines skipped by the CSV reader
		start, _ := r.FieldPos(0)
		for line := last + 1; line < start; line++ {
			records = append(records, []string{})
		}

		end, _ := r.FieldPos(len(record) - 1)
		last = end + strings.Count(record[len(record)-1], "\n")

		records = append(records, record)
	}

	// ... and any trailing blank lines
	lines := bytes.Count(b, []byte("\n"))
	if len(b) > 0 && b[len(b)-1] != '\n' {
		lines++
	}

	for line := last + 1; line <= lines; line++ {
		records = append(records, []string{})
	}

	return records, nil
}

// protectCR doubles the CR of every CRLF inside a quoted field, since the CSV reader
// folds CRLF to LF everywhere.
func protectCR(b []byte) []byte {
	out := make([]byte, 0, len(b))
	quoted := false

	for i, c := range b {
		switch {
		case c == '"':
			quoted = !quoted

		case quoted && c == '\r' && i+1 < len(b) && b[i+1] == '\n':
			out = append(out, '\r')
		}

		out = append(out, c)
	}

	return out
}
