package dataset

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"

	"freight-netback/internal/errors"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// rawTable is a header plus string records, before schema validation
type rawTable struct {
	header  []string
	records [][]string
	lines   []int
}

func (t *rawTable) add(line int, record []string) {
	if len(record) < len(t.header) {
		padded := make([]string, len(t.header))
		copy(padded, record)
		record = padded
	}
	t.records = append(t.records, record)
	t.lines = append(t.lines, line)
}

// readCSV parses CSV content. Blank lines are skipped; short rows are padded
// with empty cells; a row wider than the header is a parse error.
func readCSV(content []byte) (*rawTable, error) {
	content = bytes.TrimPrefix(content, utf8BOM)

	reader := csv.NewReader(bytes.NewReader(content))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, errors.Parse("no columns to parse from input", nil)
	}
	if err != nil {
		return nil, errors.Parse("failed to read header row", err)
	}

	raw := &rawTable{header: normalizeHeader(header)}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Parse("malformed CSV row", err)
		}

		line, _ := reader.FieldPos(0)
		if len(record) > len(raw.header) {
			return nil, errors.Parse(fmt.Sprintf("expected %d fields in line %d, saw %d", len(raw.header), line, len(record)), nil)
		}
		raw.add(line, record)
	}

	return raw, nil
}

// normalizeHeader names empty header cells "Unnamed: <i>" and suffixes
// repeated names with ".1", ".2", ... so every column is addressable.
// Names are otherwise kept byte for byte.
func normalizeHeader(header []string) []string {
	out := make([]string, len(header))
	used := make(map[string]bool, len(header))
	counts := make(map[string]int)

	for i, name := range header {
		if name == "" {
			name = fmt.Sprintf("Unnamed: %d", i)
		}
		candidate := name
		for used[candidate] {
			counts[name]++
			candidate = fmt.Sprintf("%s.%d", name, counts[name])
		}
		used[candidate] = true
		out[i] = candidate
	}
	return out
}
