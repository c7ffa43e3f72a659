package input

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"freight-netback/internal/errors"
)

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name string
		want Format
	}{
		{"Sample File - Export(Sample File).csv", FormatCSV},
		{"rates.XLSX", FormatXLSX},
		{"rates.xlsm", FormatXLSX},
		{"rates", FormatCSV},
		{"rates.txt", FormatCSV},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectFormat(tt.name))
		})
	}
}

func TestReadFileSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rates.csv")
	require.NoError(t, os.WriteFile(path, []byte("Unit\n20ft\n"), 0644))

	env, err := Read(context.Background(), NewFileSource(path), 0)
	require.NoError(t, err)

	assert.Equal(t, SourceFile, env.Source.Type)
	assert.Equal(t, FormatCSV, env.Source.Format)
	assert.Equal(t, "Unit\n20ft\n", string(env.Content))
	assert.Equal(t, int64(10), env.Metadata.Size)
	assert.Len(t, env.ContentHash, 64)
}

func TestReadMissingFile(t *testing.T) {
	_, err := Read(context.Background(), NewFileSource(filepath.Join(t.TempDir(), "absent.csv")), 0)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeInput))
	assert.Contains(t, err.Error(), "not found")
}

func TestReadUploadOnce(t *testing.T) {
	src := NewUploadSource("upload.xlsx", strings.NewReader("bytes"))
	assert.Equal(t, SourceInfo{Type: SourceUpload, Name: "upload.xlsx", Format: FormatXLSX}, src.Info())

	env, err := Read(context.Background(), src, 0)
	require.NoError(t, err)
	assert.Equal(t, "bytes", string(env.Content))

	_, err = Read(context.Background(), src, 0)
	assert.True(t, errors.IsType(err, errors.TypeInput))
}

func TestReadLimit(t *testing.T) {
	_, err := Read(context.Background(), NewUploadSource("big.csv", strings.NewReader("0123456789")), 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds 5 bytes")

	env, err := Read(context.Background(), NewUploadSource("exact.csv", strings.NewReader("01234")), 5)
	require.NoError(t, err)
	assert.Equal(t, "01234", string(env.Content))
}

func TestReadCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Read(ctx, NewUploadSource("x.csv", strings.NewReader("")), 0)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSourceTypeText(t *testing.T) {
	b, err := SourceUpload.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "upload", string(b))
	assert.Equal(t, "unknown", SourceType(9).String())
}
