package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriterPlain(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, true)

	w.Header("Freight Rate Information")
	w.Field("Country", "India")
	w.Success("Freight Rate: %s", "$4,600.00")
	w.Warning("careful")
	w.List("Units", nil)
	w.Debug("hidden at normal verbosity")

	out := buf.String()
	assert.Contains(t, out, "━━━ Freight Rate Information ━━━")
	assert.Contains(t, out, "Country: India")
	assert.Contains(t, out, "✓ Freight Rate: $4,600.00")
	assert.Contains(t, out, "⚠ careful")
	assert.Contains(t, out, "Units: (none)")
	assert.NotContains(t, out, "hidden")
	assert.NotContains(t, out, "\x1b[")
}

func TestWriterVerbosity(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, true)

	w.SetVerbosity(0)
	w.Info("quiet")
	assert.Empty(t, buf.String())

	w.SetVerbosity(2)
	w.Debug("loud")
	assert.Contains(t, buf.String(), "loud")
}

func TestTable(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, true)

	tbl := w.NewTable("Country", "Ports")
	tbl.AddRow("India", "3")
	tbl.AddRow("Bangladesh")
	tbl.Render()

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Len(t, lines, 4)
	assert.Equal(t, "Country    │ Ports", lines[0])
	assert.Equal(t, "India      │ 3", lines[2])
	assert.Equal(t, "Bangladesh │", lines[3])
}
