package session

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"freight-netback/core/catalog"
	"freight-netback/core/dataset/datasettest"
	"freight-netback/core/input"
	"freight-netback/core/types"
	"freight-netback/internal/errors"
)

func openSample(t *testing.T, opts Options) *Session {
	t.Helper()
	src := input.NewUploadSource("rates.csv", strings.NewReader(datasettest.SampleCSV))
	s, err := Open(context.Background(), src, opts)
	require.NoError(t, err)
	return s
}

func TestOpen(t *testing.T) {
	s := openSample(t, DefaultOptions())

	assert.NotEmpty(t, s.ID())
	assert.Equal(t, input.SourceUpload, s.Source().Type)
	assert.Equal(t, "rates.csv", s.Source().Name)
	assert.False(t, s.LoadedAt().IsZero())
	assert.Equal(t, 8, s.Table().Len())

	assert.Equal(t, []string{"Bangladesh", "India", "Vietnam"}, s.Countries())
	assert.Equal(t, []string{"20ft", "40ft"}, s.Units())
	assert.Equal(t, []string{"Chittagong"}, s.Ports(""))
	assert.Equal(t, []string{"Chennai", "Mundra", "Nhava Sheva"}, s.Ports("India"))
}

func TestOpenFirstSeenOrder(t *testing.T) {
	opts := DefaultOptions()
	opts.Order = catalog.OrderFirstSeen
	opts.ID = "default"
	s := openSample(t, opts)

	assert.Equal(t, "default", s.ID())
	assert.Equal(t, []string{"India", "Vietnam", "Bangladesh"}, s.Countries())
	assert.Equal(t, []string{"Chennai", "Mundra", "Nhava Sheva"}, s.Ports(""))
}

func TestOpenRejectsBadSchema(t *testing.T) {
	src := input.NewUploadSource("rates.csv", strings.NewReader("Unit,Country\n20ft,India\n"))
	_, err := Open(context.Background(), src, DefaultOptions())

	require.Error(t, err)
	missing, ok := errors.MissingColumns(err)
	require.True(t, ok)
	assert.Equal(t, []string{"Destination Port", "Rate 1st Half of Month"}, missing)
}

func TestSessionQuote(t *testing.T) {
	s := openSample(t, DefaultOptions())
	k := types.SelectionKey{Country: "India", DestinationPort: "Nhava Sheva", Unit: "20ft"}

	q, err := s.Quote(k, decimal.NewFromInt(50), decimal.NullDecimal{})
	require.NoError(t, err)
	assert.True(t, q.Netback.Value.Equal(decimal.RequireFromString("49.78")))
	assert.True(t, q.Netback.Input.LocalRate.Equal(decimal.RequireFromString("0.02")))

	assert.Equal(t, q.Lookup, s.Lookup(k))

	_, err = s.Quote(k, decimal.NewFromInt(-5), decimal.NullDecimal{})
	assert.True(t, errors.IsType(err, errors.TypeInput))
}

func TestSummary(t *testing.T) {
	s := openSample(t, DefaultOptions())
	sum := s.Summary()

	assert.Equal(t, s.ID(), sum.ID)
	assert.Equal(t, 8, sum.Rows)
	assert.Equal(t, 3, sum.MissingRates)
	assert.Len(t, sum.Fingerprint, 64)
	assert.Equal(t, catalog.Stats{Countries: 3, Ports: 6, Units: 2}, sum.Catalog)
}

func TestSessionsAreIndependent(t *testing.T) {
	a := openSample(t, DefaultOptions())
	src := input.NewUploadSource("other.csv", strings.NewReader(
		"Unit,Destination Port,Country,Rate 1st Half of Month\n20ft,Mundra,India,1150\n"))
	b, err := Open(context.Background(), src, DefaultOptions())
	require.NoError(t, err)

	k := types.SelectionKey{Country: "India", DestinationPort: "Mundra", Unit: "20ft"}
	assert.True(t, a.Lookup(k).Rate.Equal(decimal.NewFromInt(4400)))
	assert.True(t, b.Lookup(k).Rate.Equal(decimal.NewFromInt(1150)))
	assert.NotEqual(t, a.ID(), b.ID())
}

func TestRegistry(t *testing.T) {
	r := NewRegistry(0)
	s := openSample(t, DefaultOptions())
	r.Put(s)

	got, err := r.Get(s.ID())
	require.NoError(t, err)
	assert.Same(t, s, got)
	assert.Equal(t, 1, r.Len())

	_, err = r.Get("missing")
	assert.True(t, errors.IsType(err, errors.TypeNotFound))

	require.NoError(t, r.Delete(s.ID()))
	assert.Equal(t, 0, r.Len())
	assert.True(t, errors.IsType(r.Delete(s.ID()), errors.TypeNotFound))
}

func TestRegistryEvictsOldest(t *testing.T) {
	r := NewRegistry(2)
	var evicted []string
	r.OnEvict(func(s *Session) { evicted = append(evicted, s.ID()) })

	for i := 0; i < 3; i++ {
		opts := DefaultOptions()
		opts.ID = fmt.Sprintf("s%d", i)
		r.Put(openSample(t, opts))
	}

	assert.Equal(t, []string{"s0"}, evicted)
	assert.Equal(t, 2, r.Len())
	_, err := r.Get("s0")
	assert.Error(t, err)

	var ids []string
	for _, sum := range r.List() {
		ids = append(ids, sum.ID)
	}
	assert.Equal(t, []string{"s1", "s2"}, ids)
}

func TestRegistryReplaceSameID(t *testing.T) {
	r := NewRegistry(2)
	opts := DefaultOptions()
	opts.ID = "default"

	first := openSample(t, opts)
	second := openSample(t, opts)
	r.Put(first)
	r.Put(second)

	assert.Equal(t, 1, r.Len())
	got, err := r.Get("default")
	require.NoError(t, err)
	assert.Same(t, second, got)
}

func TestRegistryConcurrentReads(t *testing.T) {
	r := NewRegistry(4)
	s := openSample(t, DefaultOptions())
	r.Put(s)
	k := types.SelectionKey{Country: "Vietnam", DestinationPort: "Haiphong", Unit: "40ft"}

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := r.Get(s.ID())
			if !assert.NoError(t, err) {
				return
			}
			q, err := got.Quote(k, decimal.NewFromInt(100), decimal.NullDecimal{})
			assert.NoError(t, err)
			assert.Equal(t, types.NetbackComputed, q.Netback.Status)
		}()
	}
	wg.Wait()
}
