package serializer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Format identifies an output encoding.
type Format string

const (
	// FormatJSON renders indented JSON.
	FormatJSON Format = "json"

	// FormatYAML renders YAML.
	FormatYAML Format = "yaml"

	// FormatText renders the value's Summary() when it has one, falling
	// back to YAML otherwise.
	FormatText Format = "text"
)

// IsUnknown reports whether the format is not one of the supported encodings.
func (f Format) IsUnknown() bool {
	switch f {
	case FormatJSON, FormatYAML, FormatText:
		return false
	}
	return true
}

// Summarizer is implemented by values that can render themselves as a
// line-oriented text report.
type Summarizer interface {
	Summary() string
}

// Writer serializes values to an output stream in a fixed format.
type Writer struct {
	format Format
	out    io.Writer
	path   string
}

// NewWriter creates a Writer targeting the given stream.
func NewWriter(format Format, out io.Writer) *Writer {
	return &Writer{format: format, out: out}
}

// NewFileWriterOrStdout creates a Writer targeting the given file path, or
// stdout when the path is empty or "-". File creation is deferred to the
// first Serialize call so that construction cannot fail.
func NewFileWriterOrStdout(format Format, path string) *Writer {
	if path == "" || path == StdoutURI {
		return NewWriter(format, os.Stdout)
	}
	return &Writer{format: format, path: path}
}

// Serialize encodes the value in the writer's format.
func (w *Writer) Serialize(ctx context.Context, value any) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	out, cleanup, err := w.target()
	if err != nil {
		return err
	}
	defer cleanup()

	switch w.format {
	case FormatJSON:
		data, err := json.MarshalIndent(value, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to serialize to json: %w", err)
		}
		_, err = fmt.Fprintln(out, string(data))
		return err
	case FormatYAML:
		data, err := yaml.Marshal(value)
		if err != nil {
			return fmt.Errorf("failed to serialize to yaml: %w", err)
		}
		_, err = out.Write(data)
		return err
	case FormatText:
		if s, ok := value.(Summarizer); ok {
			_, err := fmt.Fprintln(out, s.Summary())
			return err
		}
		data, err := yaml.Marshal(value)
		if err != nil {
			return fmt.Errorf("failed to serialize to yaml: %w", err)
		}
		_, err = out.Write(data)
		return err
	default:
		return fmt.Errorf("unknown output format: %q", w.format)
	}
}

// target resolves the output stream, opening the file lazily when the
// writer was built from a path.
func (w *Writer) target() (io.Writer, func(), error) {
	if w.out != nil {
		return w.out, func() {}, nil
	}

	f, err := os.Create(w.path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file %q: %w", w.path, err)
	}
	return f, func() { _ = f.Close() }, nil
}
