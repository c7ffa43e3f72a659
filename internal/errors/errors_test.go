package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaCarriesColumns(t *testing.T) {
	err := Schema([]string{"Unit", "Country"}, []string{"Destination Port", "Rate 1st Half of Month"})

	assert.Equal(t, TypeSchema, err.Type)
	assert.Contains(t, err.Error(), "'Unit', 'Country'")
	assert.Contains(t, err.Error(), "Available columns are: Destination Port, Rate 1st Half of Month")

	missing, ok := MissingColumns(err)
	require.True(t, ok)
	assert.Equal(t, []string{"Unit", "Country"}, missing)

	available, ok := AvailableColumns(err)
	require.True(t, ok)
	assert.Equal(t, []string{"Destination Port", "Rate 1st Half of Month"}, available)
}

func TestSchemaSingularNoun(t *testing.T) {
	err := Schema([]string{"Unit"}, nil)
	assert.Contains(t, err.Message, "required column 'Unit' not found")
}

func TestIsTypeThroughWrapping(t *testing.T) {
	base := Parse("bad csv", fmt.Errorf("line 3"))
	wrapped := fmt.Errorf("loading dataset: %w", base)

	assert.True(t, IsType(wrapped, TypeParse))
	assert.False(t, IsType(wrapped, TypeSchema))
	assert.False(t, IsType(fmt.Errorf("plain"), TypeParse))

	_, ok := MissingColumns(wrapped)
	assert.False(t, ok)
}

func TestErrorString(t *testing.T) {
	assert.Equal(t, "[INPUT_ERROR] cost must be non-negative", Input("cost must be non-negative").Error())
	assert.Equal(t, "[PARSE_ERROR] bad csv: eof", Parse("bad csv", fmt.Errorf("eof")).Error())
	assert.Equal(t, "[NOT_FOUND] session not found: abc", NotFound("session", "abc").Error())
}
