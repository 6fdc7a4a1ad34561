package output

import (
	"encoding/csv"
	"io"

	"github.com/rmcnab/motorsales/internal/dataset"
)

// CSVWriter writes records as CSV with a fixed header row. The csv
// package handles quoting and commas inside titles.
type CSVWriter struct {
	w           *csv.Writer
	wroteHeader bool
}

// NewCSVWriter creates a CSV writer.
func NewCSVWriter(w io.Writer) *CSVWriter {
	return &CSVWriter{w: csv.NewWriter(w)}
}

// Write appends one record, emitting the header row first if needed.
func (w *CSVWriter) Write(rec dataset.Record) error {
	if !w.wroteHeader {
		if err := w.w.Write(header); err != nil {
			return err
		}
		w.wroteHeader = true
	}
	return w.w.Write(row(rec))
}

// WriteAll writes the whole dataset. An empty dataset still produces
// the header row.
func (w *CSVWriter) WriteAll(recs []dataset.Record) error {
	if !w.wroteHeader {
		if err := w.w.Write(header); err != nil {
			return err
		}
		w.wroteHeader = true
	}
	for _, rec := range recs {
		if err := w.w.Write(row(rec)); err != nil {
			return err
		}
	}
	return nil
}

// Flush writes buffered rows to the underlying writer.
func (w *CSVWriter) Flush() error {
	w.w.Flush()
	return w.w.Error()
}

// Close flushes the writer.
func (w *CSVWriter) Close() error {
	return w.Flush()
}
