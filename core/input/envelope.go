// Package input - Normalized input envelope
// Every way of obtaining a rate table (fixed file, upload stream) produces
// an Envelope; the dataset loader consumes nothing else.
package input

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"freight-netback/core/determinism"
	"freight-netback/internal/errors"
)

// SourceType indicates where a table came from
type SourceType int

const (
	SourceFile   SourceType = iota // Fixed local path
	SourceUpload                   // Uploaded stream
)

// String returns the source type name
func (t SourceType) String() string {
	switch t {
	case SourceFile:
		return "file"
	case SourceUpload:
		return "upload"
	default:
		return "unknown"
	}
}

// MarshalText lets SourceType render by name in JSON and YAML
func (t SourceType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText parses a source type name
func (t *SourceType) UnmarshalText(text []byte) error {
	switch string(text) {
	case "file":
		*t = SourceFile
	case "upload":
		*t = SourceUpload
	default:
		return fmt.Errorf("unknown source type %q", text)
	}
	return nil
}

// Format is the tabular encoding of the content
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// DetectFormat picks the format from a file name; anything that is not an
// Excel workbook is read as CSV.
func DetectFormat(name string) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx", ".xlsm":
		return FormatXLSX
	default:
		return FormatCSV
	}
}

// SourceInfo describes where the input came from
type SourceInfo struct {
	Type   SourceType `json:"type" yaml:"type"`
	Name   string     `json:"name" yaml:"name"`
	Format Format     `json:"format" yaml:"format"`
}

// Source yields the raw bytes of a rate table
type Source interface {
	// Info describes the source without reading it
	Info() SourceInfo

	// Open returns a reader over the content
	Open(ctx context.Context) (io.ReadCloser, error)
}

// FileSource reads a table from a fixed path
type FileSource struct {
	Path string
}

// NewFileSource creates a source for a local file
func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

// Info implements Source
func (s *FileSource) Info() SourceInfo {
	return SourceInfo{Type: SourceFile, Name: s.Path, Format: DetectFormat(s.Path)}
}

// Open implements Source
func (s *FileSource) Open(ctx context.Context) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Newf(errors.TypeInput,
				"dataset file '%s' not found. Please ensure the file is in the correct directory", s.Path)
		}
		return nil, errors.Wrapf(errors.TypeInput, err, "failed to open dataset %s", s.Path)
	}
	return f, nil
}

// UploadSource reads a table from an uploaded stream. It can be opened once.
type UploadSource struct {
	name   string
	body   io.Reader
	opened bool
}

// NewUploadSource wraps an uploaded body; name is the client file name
func NewUploadSource(name string, body io.Reader) *UploadSource {
	return &UploadSource{name: name, body: body}
}

// Info implements Source
func (s *UploadSource) Info() SourceInfo {
	return SourceInfo{Type: SourceUpload, Name: s.name, Format: DetectFormat(s.name)}
}

// Open implements Source
func (s *UploadSource) Open(ctx context.Context) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.opened {
		return nil, errors.Newf(errors.TypeInput, "upload %s was already consumed", s.name)
	}
	s.opened = true
	return io.NopCloser(s.body), nil
}

// Envelope is the normalized input to the dataset loader
type Envelope struct {
	// Source describes the origin
	Source SourceInfo

	// Content is the full raw content
	Content []byte

	// ContentHash is the hex SHA-256 of Content
	ContentHash string

	// Metadata
	Metadata EnvelopeMetadata
}

// EnvelopeMetadata contains metadata about the envelope
type EnvelopeMetadata struct {
	ReadAt time.Time
	Size   int64
}

// Read drains a source into an envelope. A positive limit caps the content
// size in bytes.
func Read(ctx context.Context, src Source, limit int64) (*Envelope, error) {
	rc, err := src.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	var r io.Reader = rc
	if limit > 0 {
		r = io.LimitReader(rc, limit+1)
	}

	content, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrapf(errors.TypeInput, err, "failed to read dataset %s", src.Info().Name)
	}
	if limit > 0 && int64(len(content)) > limit {
		return nil, errors.Newf(errors.TypeInput, "dataset %s exceeds %d bytes", src.Info().Name, limit).
			WithContext(errors.ContextLimit, limit)
	}

	return NewEnvelope(src.Info(), content), nil
}

// NewEnvelope builds an envelope over content already in memory
func NewEnvelope(info SourceInfo, content []byte) *Envelope {
	return &Envelope{
		Source:      info,
		Content:     content,
		ContentHash: determinism.ComputeHash(content).Hex(),
		Metadata: EnvelopeMetadata{
			ReadAt: time.Now().UTC(),
			Size:   int64(len(content)),
		},
	}
}

// String returns a short description for logs
func (e *Envelope) String() string {
	return fmt.Sprintf("%s:%s (%s, %d bytes)", e.Source.Type, e.Source.Name, e.Source.Format, e.Metadata.Size)
}
