package dataset

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"freight-netback/internal/errors"
)

// readXLSX reads one worksheet (the first when sheet is empty). The first
// non-blank row is the header; cells beyond it become "Unnamed: <i>" columns.
// Raw cell values are used so number formats do not leak into the rates.
func readXLSX(content []byte, sheet string) (*rawTable, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, errors.Parse("input is not a readable XLSX workbook", err)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
		if sheet == "" {
			return nil, errors.Parse("no sheets found in workbook", nil)
		}
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, errors.Parse(fmt.Sprintf("failed to read sheet %q", sheet), err)
	}

	start := 0
	for start < len(rows) && blank(rows[start]) {
		start++
	}
	if start == len(rows) {
		return nil, errors.Parse(fmt.Sprintf("no columns to parse from sheet %q", sheet), nil)
	}

	width := 0
	for _, row := range rows[start:] {
		if len(row) > width {
			width = len(row)
		}
	}
	header := make([]string, width)
	copy(header, rows[start])

	raw := &rawTable{header: normalizeHeader(header)}
	for i := start + 1; i < len(rows); i++ {
		if blank(rows[i]) {
			continue
		}
		raw.add(i+1, rows[i])
	}
	return raw, nil
}

func blank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
