package cmd

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"freight-netback/core/dataset/datasettest"
	"freight-netback/core/output"
	"freight-netback/core/types"
	"freight-netback/internal/config"
)

// resetFlags restores every flag to its default between executions
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	t.Cleanup(func() { config.Set(config.Default()) })

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func sampleFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rates.csv")
	require.NoError(t, os.WriteFile(path, []byte(datasettest.SampleCSV), 0o644))
	return path
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "netback version "+Version+"\n", out)
}

func TestOptionsJSON(t *testing.T) {
	data := sampleFile(t)

	out, err := execute(t, "options", "--data", data, "--format", "json")
	require.NoError(t, err)

	var report output.OptionsReport
	require.NoError(t, json.Unmarshal([]byte(out), &report), out)
	assert.Equal(t, []string{"Bangladesh", "India", "Vietnam"}, report.Countries)
	assert.Equal(t, []string{"20ft", "40ft"}, report.Units)
	assert.Equal(t, "Bangladesh", report.Country)
	assert.Equal(t, []string{"Chittagong"}, report.Ports)

	out, err = execute(t, "options", "--data", data, "--format", "json", "--country", "India")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &report), out)
	assert.Equal(t, []string{"Chennai", "Mundra", "Nhava Sheva"}, report.Ports)
}

func TestOptionsAllAndVerbose(t *testing.T) {
	data := sampleFile(t)

	out, err := execute(t, "options", "--data", data, "--all", "--format", "json")
	require.NoError(t, err)
	var report output.OptionsReport
	require.NoError(t, json.Unmarshal([]byte(out), &report), out)
	assert.Equal(t, []output.CountryPorts{
		{Country: "Bangladesh", Ports: []string{"Chittagong"}},
		{Country: "India", Ports: []string{"Chennai", "Mundra", "Nhava Sheva"}},
		{Country: "Vietnam", Ports: []string{"Haiphong", "Ho Chi Minh"}},
	}, report.PortsByCountry)

	out, err = execute(t, "options", "--data", data, "--all", "--format", "cli")
	require.NoError(t, err)
	assert.Contains(t, out, "India      │ Chennai, Mundra, Nhava Sheva")

	out, err = execute(t, "quote", "--data", data, "--format", "cli", "--verbose",
		"--country", "India", "--port", "Nhava Sheva", "--unit", "20ft", "--cost", "50")
	require.NoError(t, err)
	assert.Contains(t, out, "matching rows: 2, first on line 2")
}

func TestQuote(t *testing.T) {
	data := sampleFile(t)

	tests := []struct {
		name    string
		args    []string
		lookup  types.LookupStatus
		netback types.NetbackStatus
		value   string
	}{
		{
			name:    "computed",
			args:    []string{"--country", "India", "--port", "Nhava Sheva", "--unit", "20ft", "--cost", "50"},
			lookup:  types.LookupFound,
			netback: types.NetbackComputed,
			value:   "49.78",
		},
		{
			name:    "local rate override",
			args:    []string{"--country", "India", "--port", "Nhava Sheva", "--unit", "20ft", "--cost", "50", "--local-rate", "0"},
			lookup:  types.LookupFound,
			netback: types.NetbackComputed,
			value:   "49.8",
		},
		{
			name:    "no cost",
			args:    []string{"--country", "India", "--port", "Mundra", "--unit", "20ft"},
			lookup:  types.LookupFound,
			netback: types.NetbackNeedsCost,
		},
		{
			name:    "unusable rate",
			args:    []string{"--country", "Bangladesh", "--port", "Chittagong", "--unit", "20ft", "--cost", "50"},
			lookup:  types.LookupInvalid,
			netback: types.NetbackUnavailable,
		},
		{
			name:    "no such row",
			args:    []string{"--country", "Vietnam", "--port", "Haiphong", "--unit", "20ft", "--cost", "50"},
			lookup:  types.LookupNotFound,
			netback: types.NetbackUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"quote", "--data", data, "--format", "json"}, tt.args...)
			out, err := execute(t, args...)
			require.NoError(t, err)

			var report output.QuoteReport
			require.NoError(t, json.Unmarshal([]byte(out), &report), out)
			assert.Equal(t, tt.lookup, report.Lookup.Status)
			assert.Equal(t, tt.netback, report.Netback.Status)
			assert.Equal(t, tt.value, report.Netback.Value)
		})
	}
}

func TestQuoteCLIFormat(t *testing.T) {
	data := sampleFile(t)

	out, err := execute(t, "quote", "--data", data, "--country", "India", "--port", "Nhava Sheva", "--unit", "20ft", "--cost", "50")
	require.NoError(t, err)
	assert.Contains(t, out, "Freight Rate (Rate 1st Half of Month): $4,600.00")
	assert.Contains(t, out, "Calculated Netback: $49.78")
}

func TestQuoteRejectsBadFigures(t *testing.T) {
	data := sampleFile(t)
	base := []string{"quote", "--data", data, "--country", "India", "--port", "Mundra", "--unit", "20ft"}

	_, err := execute(t, append(base, "--cost", "-1")...)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cost must not be negative")

	_, err = execute(t, append(base, "--cost", "1", "--local-rate", "-0.5")...)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "local rate must not be negative")

	_, err = execute(t, append(base, "--cost", "fifty")...)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a number")

	_, err = execute(t, append(base, "--format", "html")...)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
}

func TestQuoteRejectsEmptySelection(t *testing.T) {
	data := filepath.Join(t.TempDir(), "rates.csv")
	csv := "Country,Destination Port,Unit,Rate 1st Half of Month\n,,,1200\n"
	require.NoError(t, os.WriteFile(data, []byte(csv), 0o644))

	_, err := execute(t, "quote", "--data", data, "--country", "", "--port", "", "--unit", "", "--cost", "50")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--country must not be empty")

	_, err = execute(t, "quote", "--data", data, "--country", "India", "--port", "Mundra", "--unit", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--unit must not be empty")
}

func TestMissingDataset(t *testing.T) {
	t.Setenv("PATH", "/usr/bin:/bin")

	_, err := execute(t, "options")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no rate table")

	_, err = execute(t, "options", "--data", filepath.Join(t.TempDir(), "absent.csv"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestConfigShowAndInit(t *testing.T) {
	out, err := execute(t, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "country_order: sorted")
	assert.Contains(t, out, "local_rate: 0.02")

	path := filepath.Join(t.TempDir(), "netback.json")
	_, err = execute(t, "config", "init", path)
	require.NoError(t, err)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.Default().Server.Addr, cfg.Server.Addr)
}

func TestServerPreloadsDefaultSession(t *testing.T) {
	dataPath = sampleFile(t)
	t.Cleanup(func() { dataPath = "" })

	srv, err := newAPIServer(t.Context(), config.Default())
	require.NoError(t, err)

	sess, err := srv.Sessions().Get(DefaultSessionID)
	require.NoError(t, err)
	assert.Equal(t, 8, sess.Summary().Rows)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/sessions/default/units", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"units":["20ft","40ft"]}`, rec.Body.String())
}

func TestServerWithoutDataset(t *testing.T) {
	t.Setenv("PATH", "/usr/bin:/bin")
	cfg, err := config.Load("")
	require.NoError(t, err)

	srv, err := newAPIServer(t.Context(), cfg)
	require.NoError(t, err)
	assert.Equal(t, 0, srv.Sessions().Len())
}
