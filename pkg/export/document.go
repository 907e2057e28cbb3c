package export

import (
	"io"
	"strings"
	"time"

	"github.com/aretw0/supernotes/pkg/core"
)

// DocumentTitle heads every document export.
const DocumentTitle = "My Notes Export"

// TimestampLayout renders dates in document exports.
const TimestampLayout = "1/2/2006, 3:04:05 PM"

// Document is the structured content handed to a DocumentRenderer.
// The first page carries the header; every later page holds one note.
type Document struct {
	Title      string
	ExportedAt time.Time
	Pages      []Page
}

// Page is one note laid out for a document.
type Page struct {
	Title   string
	Meta    string
	Content string
}

// Subtitle is the export timestamp line printed under the title.
func (d Document) Subtitle() string {
	return "Exported on: " + d.ExportedAt.Format(TimestampLayout)
}

// DocumentRenderer lays out a Document in some concrete format.
type DocumentRenderer interface {
	Render(w io.Writer, doc Document) error
}

// NewDocument builds the per-note pages. Creation dates are shown in the
// location of exportedAt.
func NewDocument(notes []core.Note, exportedAt time.Time) Document {
	doc := Document{
		Title:      DocumentTitle,
		ExportedAt: exportedAt,
		Pages:      make([]Page, 0, len(notes)),
	}
	for _, n := range notes {
		meta := "Created: " + n.CreatedAt.In(exportedAt.Location()).Format(TimestampLayout)
		if len(n.Tags) > 0 {
			meta += " | Tags: " + strings.Join(n.Tags, ", ")
		}
		doc.Pages = append(doc.Pages, Page{
			Title:   n.Title,
			Meta:    meta,
			Content: n.Content,
		})
	}
	return doc
}
