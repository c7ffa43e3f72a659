// Package dataset loads and validates freight rate tables.
//
// A table is fatal to load only when it is not tabular (PARSE_ERROR) or
// lacks a required column (SCHEMA_ERROR). Unparseable rate cells are kept
// as missing and surface later as an invalid lookup.
package dataset

import (
	"context"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"freight-netback/core/input"
	"freight-netback/core/types"
	"freight-netback/internal/errors"
	"freight-netback/internal/logging"
)

// Options tunes loading
type Options struct {
	// Sheet selects the XLSX worksheet; empty means the first one
	Sheet string

	// MaxBytes caps the content size read from a source; 0 means no cap
	MaxBytes int64
}

// ParseCSV reads CSV from r into a validated table
func ParseCSV(r io.Reader) (*types.RateTable, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Parse("failed to read CSV input", err)
	}
	info := input.SourceInfo{Type: input.SourceUpload, Name: "stream", Format: input.FormatCSV}
	return Load(input.NewEnvelope(info, content), Options{})
}

// LoadSource reads a source and loads it
func LoadSource(ctx context.Context, src input.Source, opts Options) (*types.RateTable, error) {
	env, err := input.Read(ctx, src, opts.MaxBytes)
	if err != nil {
		return nil, err
	}
	return Load(env, opts)
}

// Load parses and validates an envelope. The envelope is not modified.
func Load(env *input.Envelope, opts Options) (*types.RateTable, error) {
	log := logging.Named("dataset")

	var (
		raw *rawTable
		err error
	)
	switch env.Source.Format {
	case input.FormatXLSX:
		raw, err = readXLSX(env.Content, opts.Sheet)
	default:
		raw, err = readCSV(env.Content)
	}
	if err != nil {
		log.Warn("dataset rejected", zap.Stringer("source", env), zap.Error(err))
		return nil, err
	}

	table, err := build(raw, env.ContentHash)
	if err != nil {
		log.Warn("dataset rejected", zap.Stringer("source", env), zap.Error(err))
		return nil, err
	}

	log.Info("dataset loaded",
		zap.Stringer("source", env),
		zap.Int("rows", table.Len()),
		zap.Int("missing_rates", table.MissingRates()),
		zap.String("fingerprint", shortHash(env.ContentHash)),
	)
	return table, nil
}

// Validate checks that every required column is present, by exact name.
// The returned SCHEMA_ERROR lists the missing and the available columns.
func Validate(header []string) error {
	present := make(map[string]bool, len(header))
	for _, h := range header {
		present[h] = true
	}

	var missing []string
	for _, col := range types.RequiredColumns() {
		if !present[col] {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return errors.Schema(missing, header)
	}
	return nil
}

// CoerceRate converts a rate cell to a number. Empty or non-numeric cells
// become missing rather than failing the load.
func CoerceRate(cell string) decimal.NullDecimal {
	s := strings.TrimSpace(cell)
	if s == "" {
		return decimal.NullDecimal{}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(d)
}

func build(raw *rawTable, fingerprint string) (*types.RateTable, error) {
	if err := Validate(raw.header); err != nil {
		return nil, err
	}

	rateIdx := indexOf(raw.header, types.ColumnRate)
	rows := make([]types.Row, 0, len(raw.records))
	for i, record := range raw.records {
		values := make(map[string]string, len(raw.header))
		for j, col := range raw.header {
			values[col] = record[j]
		}
		rows = append(rows, types.NewRow(raw.lines[i], values, CoerceRate(record[rateIdx])))
	}

	return types.NewRateTable(raw.header, rows, fingerprint), nil
}

func indexOf(header []string, column string) int {
	for i, h := range header {
		if h == column {
			return i
		}
	}
	return -1
}

func shortHash(h string) string {
	if len(h) > 16 {
		return h[:16]
	}
	return h
}
