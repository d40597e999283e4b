package importer

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"needsleads/pkg/types"
)

// Row is one data record of the export, keyed by header name.
type Row map[string]string

// ReadFile loads and parses the CSV export at path. A missing file is reported
// as types.ErrInputNotFound before anything is read.
func ReadFile(path string) ([]Row, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", types.ErrInputNotFound, path)
		}
		return nil, fmt.Errorf("failed to stat input: %w", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}

	return ParseCSV(string(content)), nil
}

// ParseCSV turns the content of a spreadsheet export into rows keyed by the
// header line. Quoted fields may hold commas, doubled quotes and line breaks.
// CRLF line endings are accepted and blank lines are skipped. Records with
// fewer fields than the header are dropped; fields beyond the header are
// ignored.
func ParseCSV(content string) []Row {
	lines := strings.Split(content, "\n")
	headers := parseHeader(lines[0])

	var (
		rows     []Row
		record   []string
		field    strings.Builder
		inQuotes bool
	)

	for _, line := range lines[1:] {
		line = strings.TrimSuffix(line, "\r")

		// blank lines between records carry no row
		if !inQuotes && len(record) == 0 && line == "" {
			continue
		}

		for j := 0; j < len(line); j++ {
			c := line[j]

			switch {
			case c == '"' && inQuotes && j+1 < len(line) && line[j+1] == '"':
				field.WriteByte('"')
				j++
			case c == '"':
				inQuotes = !inQuotes
			case c == ',' && !inQuotes:
				record = append(record, field.String())
				field.Reset()
			default:
				field.WriteByte(c)
			}
		}

		// the record continues on the next physical line
		if inQuotes {
			field.WriteByte('\n')
			continue
		}

		record = append(record, field.String())
		field.Reset()

		if len(record) >= len(headers) {
			row := make(Row, len(headers))
			for i, header := range headers {
				row[header] = record[i]
			}
			rows = append(rows, row)
		}

		record = record[:0]
	}

	return rows
}

func parseHeader(line string) []string {
	headers := strings.Split(line, ",")
	for i, h := range headers {
		h = strings.TrimSpace(h)
		h = strings.TrimPrefix(h, `"`)
		h = strings.TrimSuffix(h, `"`)
		headers[i] = h
	}
	return headers
}
