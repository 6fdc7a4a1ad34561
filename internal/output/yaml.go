package output

import (
	"bufio"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/rmcnab/motorsales/internal/dataset"
)

// YAMLWriter buffers records and writes them as one YAML sequence.
type YAMLWriter struct {
	w     *bufio.Writer
	items []dataset.Record
}

// NewYAMLWriter creates a YAML writer.
func NewYAMLWriter(w io.Writer) *YAMLWriter {
	return &YAMLWriter{
		w:     bufio.NewWriter(w),
		items: make([]dataset.Record, 0),
	}
}

// Write buffers a single record.
func (w *YAMLWriter) Write(rec dataset.Record) error {
	w.items = append(w.items, rec)
	return nil
}

// WriteAll buffers all records at once.
func (w *YAMLWriter) WriteAll(recs []dataset.Record) error {
	w.items = append(w.items, recs...)
	return nil
}

// Flush writes the buffered records as a YAML sequence.
func (w *YAMLWriter) Flush() error {
	enc := yaml.NewEncoder(w.w)
	enc.SetIndent(2)
	if err := enc.Encode(w.items); err != nil {
		return err
	}
	if err := enc.Close(); err != nil {
		return err
	}
	return w.w.Flush()
}

// Close flushes the writer.
func (w *YAMLWriter) Close() error {
	return w.Flush()
}
