// Package output serializes datasets into tabular artifacts.
package output

import (
	"fmt"
	"io"
	"strconv"

	"github.com/rmcnab/motorsales/internal/dataset"
)

// Format represents output format types.
type Format string

const (
	FormatCSV   Format = "csv"
	FormatJSON  Format = "json"
	FormatJSONL Format = "jsonl"
	FormatYAML  Format = "yaml"
)

// Ext returns the file extension for the format.
func (f Format) Ext() string {
	return string(f)
}

// Writer handles dataset serialization.
type Writer interface {
	// Write outputs a single record.
	Write(rec dataset.Record) error

	// WriteAll outputs the whole dataset.
	WriteAll(recs []dataset.Record) error

	// Flush ensures all data is written.
	Flush() error

	// Close flushes and releases resources.
	Close() error
}

// WriterOption configures a writer.
type WriterOption func(*writerConfig)

type writerConfig struct {
	pretty bool
	indent string
}

// WithPretty enables pretty-printing for JSON output.
func WithPretty(enabled bool) WriterOption {
	return func(c *writerConfig) {
		c.pretty = enabled
	}
}

// WithIndent sets the indentation string for JSON output.
func WithIndent(indent string) WriterOption {
	return func(c *writerConfig) {
		c.indent = indent
	}
}

// NewWriter creates a writer for the specified format.
func NewWriter(w io.Writer, format Format, opts ...WriterOption) (Writer, error) {
	cfg := &writerConfig{
		pretty: true,
		indent: "  ",
	}
	for _, opt := range opts {
		opt(cfg)
	}

	switch format {
	case FormatCSV:
		return NewCSVWriter(w), nil
	case FormatJSON:
		return NewJSONWriter(w, cfg.pretty, cfg.indent), nil
	case FormatJSONL:
		return NewJSONLWriter(w), nil
	case FormatYAML:
		return NewYAMLWriter(w), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// header lists the dataset columns in output order.
var header = []string{
	"price", "title", "subtitle", "year", "style",
	"mileage", "engine", "transmission", "fuel", "make", "model",
}

// row renders a record as CSV cells; missing values become empty cells.
func row(r dataset.Record) []string {
	return []string{
		formatFloat(r.Price),
		r.Title,
		r.Subtitle,
		formatInt(r.Year),
		string(r.Style),
		formatInt(r.Mileage),
		formatFloat(r.Engine),
		string(r.Transmission),
		string(r.Fuel),
		r.Make,
		r.Model,
	}
}

func formatFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func formatInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}
