// Package session holds a loaded rate table together with everything needed
// to answer dropdown and quote requests against it.
//
// A Session is read-only once opened. Callers pass it explicitly to every
// operation; there is no process-wide table.
package session

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"freight-netback/core/catalog"
	"freight-netback/core/dataset"
	"freight-netback/core/input"
	"freight-netback/core/pricing"
	"freight-netback/core/types"
	"freight-netback/internal/logging"
)

// Options configures how a session is opened
type Options struct {
	// ID names the session; empty generates a random UUID
	ID string

	// Order is the country ordering
	Order catalog.Order

	// LocalRate is the default local rate for quotes
	LocalRate decimal.Decimal

	// Dataset tunes table loading
	Dataset dataset.Options
}

// DefaultOptions returns sorted countries and the default local rate
func DefaultOptions() Options {
	return Options{
		Order:     catalog.DefaultOrder,
		LocalRate: pricing.DefaultLocalRate,
	}
}

// Session is one loaded rate table and its derived views
type Session struct {
	id       string
	source   input.SourceInfo
	loadedAt time.Time

	table   *types.RateTable
	catalog *catalog.Catalog
	calc    *pricing.Calculator
}

// Open loads a table from src and wraps it in a session.
// Parse and schema errors are returned unchanged.
func Open(ctx context.Context, src input.Source, opts Options) (*Session, error) {
	table, err := dataset.LoadSource(ctx, src, opts.Dataset)
	if err != nil {
		return nil, err
	}
	return New(src.Info(), table, opts), nil
}

// New wraps an already loaded table
func New(source input.SourceInfo, table *types.RateTable, opts Options) *Session {
	id := opts.ID
	if id == "" {
		id = uuid.NewString()
	}
	order := opts.Order
	if order == "" {
		order = catalog.DefaultOrder
	}

	s := &Session{
		id:       id,
		source:   source,
		loadedAt: time.Now().UTC(),
		table:    table,
		catalog:  catalog.New(table, order),
		calc:     pricing.NewCalculator(opts.LocalRate),
	}

	logging.Named("session").Info("session opened",
		zap.String("id", s.id),
		zap.String("source", source.Name),
		zap.Int("rows", table.Len()),
	)
	return s
}

// ID returns the session id
func (s *Session) ID() string {
	return s.id
}

// Source describes where the table came from
func (s *Session) Source() input.SourceInfo {
	return s.source
}

// LoadedAt is when the table was loaded
func (s *Session) LoadedAt() time.Time {
	return s.loadedAt
}

// Table returns the loaded table
func (s *Session) Table() *types.RateTable {
	return s.table
}

// Catalog returns the dropdown index of the table
func (s *Session) Catalog() *catalog.Catalog {
	return s.catalog
}

// Calculator returns the session calculator
func (s *Session) Calculator() *pricing.Calculator {
	return s.calc
}

// Countries returns the country dropdown values
func (s *Session) Countries() []string {
	return s.catalog.Countries()
}

// Units returns the unit dropdown values
func (s *Session) Units() []string {
	return s.catalog.Units()
}

// Ports returns the ports of a country; empty means the default country
func (s *Session) Ports(country string) []string {
	return s.catalog.Ports(country)
}

// Lookup resolves a selection against the table
func (s *Session) Lookup(key types.SelectionKey) types.LookupResult {
	return pricing.Lookup(s.table, key)
}

// Quote validates the figures and quotes a selection. A missing local rate
// takes the session default. Only invalid figures produce an error.
func (s *Session) Quote(key types.SelectionKey, cost decimal.Decimal, localRate decimal.NullDecimal) (types.Quote, error) {
	in, err := s.calc.Input(cost, localRate)
	if err != nil {
		return types.Quote{}, err
	}
	return s.calc.Quote(s.table, key, in), nil
}

// Summary describes a session
type Summary struct {
	ID           string           `json:"id" yaml:"id"`
	Source       input.SourceInfo `json:"source" yaml:"source"`
	LoadedAt     time.Time        `json:"loaded_at" yaml:"loaded_at"`
	Rows         int              `json:"rows" yaml:"rows"`
	Columns      []string         `json:"columns" yaml:"columns"`
	MissingRates int              `json:"missing_rates" yaml:"missing_rates"`
	Fingerprint  string           `json:"fingerprint" yaml:"fingerprint"`
	Catalog      catalog.Stats    `json:"catalog" yaml:"catalog"`
}

// Summary returns a description of the session
func (s *Session) Summary() Summary {
	return Summary{
		ID:           s.id,
		Source:       s.source,
		LoadedAt:     s.loadedAt,
		Rows:         s.table.Len(),
		Columns:      s.table.Columns(),
		MissingRates: s.table.MissingRates(),
		Fingerprint:  s.table.Fingerprint(),
		Catalog:      s.catalog.Stats(),
	}
}
