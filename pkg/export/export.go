// Package export serializes a note sequence to JSON, Markdown or a paginated
// document. Every transform is pure: the notes are only read.
package export

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aretw0/supernotes/pkg/core"
)

// Format names an export target.
type Format string

const (
	FormatJSON     Format = "json"
	FormatMarkdown Format = "md"
	FormatPDF      Format = "pdf"
	FormatText     Format = "txt"
)

var (
	// ErrRendererUnavailable is returned for document formats whose renderer
	// is not configured. Other formats are unaffected.
	ErrRendererUnavailable = errors.New("document renderer is not available")
	ErrUnknownFormat       = errors.New("unknown export format")
)

// ParseFormat maps user input ("json", "md"/"markdown", "pdf", "txt"/"text")
// to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")) {
	case "json":
		return FormatJSON, nil
	case "md", "markdown":
		return FormatMarkdown, nil
	case "pdf":
		return FormatPDF, nil
	case "txt", "text":
		return FormatText, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// Filename is the default download name for a format.
func Filename(f Format) string {
	return "notes-export." + string(f)
}

// JSON pretty-prints every field of every note.
func JSON(notes []core.Note) ([]byte, error) {
	return core.JSONCodec{Indent: true}.Marshal(notes)
}

// ParseJSON reads notes written by JSON.
func ParseJSON(data []byte) ([]core.Note, error) {
	return core.JSONCodec{}.Unmarshal(data)
}

// Markdown renders each note as a level-1 heading, an optional tags line, the
// raw content and a horizontal rule.
func Markdown(notes []core.Note) string {
	parts := make([]string, len(notes))
	for i, n := range notes {
		var b strings.Builder
		fmt.Fprintf(&b, "# %s\n\n", n.Title)
		if len(n.Tags) > 0 {
			fmt.Fprintf(&b, "Tags: %s\n\n", strings.Join(n.Tags, ", "))
		}
		fmt.Fprintf(&b, "%s\n\n---\n", n.Content)
		parts[i] = b.String()
	}
	return strings.Join(parts, "\n")
}

// Exporter dispatches a format to its serializer or document renderer.
type Exporter struct {
	// Renderers maps document formats (pdf, txt) to their renderer.
	Renderers map[Format]DocumentRenderer
	// Now stamps document exports. Defaults to time.Now.
	Now func() time.Time
}

// NewExporter creates an Exporter with the plain-text renderer registered.
// Register a PDF renderer with Register.
func NewExporter() *Exporter {
	return &Exporter{
		Renderers: map[Format]DocumentRenderer{
			FormatText: &TextRenderer{},
		},
		Now: time.Now,
	}
}

// Register sets the renderer for a document format.
func (e *Exporter) Register(f Format, r DocumentRenderer) {
	if e.Renderers == nil {
		e.Renderers = make(map[Format]DocumentRenderer)
	}
	e.Renderers[f] = r
}

// Export writes notes to w in format f. Nothing is written when the format is
// unknown or its renderer is missing.
func (e *Exporter) Export(w io.Writer, f Format, notes []core.Note) error {
	switch f {
	case FormatJSON:
		data, err := JSON(notes)
		if err != nil {
			return fmt.Errorf("failed to encode json export: %w", err)
		}
		_, err = w.Write(data)
		return err
	case FormatMarkdown:
		_, err := io.WriteString(w, Markdown(notes))
		return err
	case FormatPDF, FormatText:
		r := e.Renderers[f]
		if r == nil {
			return fmt.Errorf("%w: %s", ErrRendererUnavailable, f)
		}
		now := time.Now
		if e.Now != nil {
			now = e.Now
		}
		// Render into a buffer so a failing renderer leaves w untouched.
		var buf bytes.Buffer
		if err := r.Render(&buf, NewDocument(notes, now())); err != nil {
			return fmt.Errorf("failed to render %s export: %w", f, err)
		}
		_, err := buf.WriteTo(w)
		return err
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
}
