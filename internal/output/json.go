package output

import (
	"bufio"
	"encoding/json"
	"io"

	"github.com/rmcnab/motorsales/internal/dataset"
)

// JSONWriter buffers records and writes them as one JSON array.
type JSONWriter struct {
	w      *bufio.Writer
	pretty bool
	indent string
	items  []dataset.Record
}

// NewJSONWriter creates a JSON writer.
func NewJSONWriter(w io.Writer, pretty bool, indent string) *JSONWriter {
	return &JSONWriter{
		w:      bufio.NewWriter(w),
		pretty: pretty,
		indent: indent,
		items:  make([]dataset.Record, 0),
	}
}

// Write buffers a single record for array output.
func (w *JSONWriter) Write(rec dataset.Record) error {
	w.items = append(w.items, rec)
	return nil
}

// WriteAll buffers all records at once.
func (w *JSONWriter) WriteAll(recs []dataset.Record) error {
	w.items = append(w.items, recs...)
	return nil
}

// Flush writes the buffered records as a JSON array.
func (w *JSONWriter) Flush() error {
	var out []byte
	var err error

	if w.pretty {
		out, err = json.MarshalIndent(w.items, "", w.indent)
	} else {
		out, err = json.Marshal(w.items)
	}
	if err != nil {
		return err
	}

	if _, err := w.w.Write(out); err != nil {
		return err
	}
	if _, err := w.w.WriteString("\n"); err != nil {
		return err
	}
	return w.w.Flush()
}

// Close flushes the writer.
func (w *JSONWriter) Close() error {
	return w.Flush()
}

// JSONLWriter writes newline-delimited JSON, one record per line.
type JSONLWriter struct {
	w *bufio.Writer
}

// NewJSONLWriter creates a JSONL writer.
func NewJSONLWriter(w io.Writer) *JSONLWriter {
	return &JSONLWriter{w: bufio.NewWriter(w)}
}

// Write writes a single record as a JSON line.
func (w *JSONLWriter) Write(rec dataset.Record) error {
	out, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	if _, err := w.w.Write(out); err != nil {
		return err
	}
	if _, err := w.w.WriteString("\n"); err != nil {
		return err
	}
	return w.w.Flush()
}

// WriteAll writes records as JSON lines.
func (w *JSONLWriter) WriteAll(recs []dataset.Record) error {
	for _, rec := range recs {
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the buffer.
func (w *JSONLWriter) Flush() error {
	return w.w.Flush()
}

// Close flushes the writer.
func (w *JSONLWriter) Close() error {
	return w.Flush()
}
