package export

import (
	"bufio"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// DefaultTextWidth is the column width used when TextRenderer.Width is unset.
const DefaultTextWidth = 80

// TextRenderer lays out a Document as plain text, pages separated by a form
// feed. Content is word-wrapped by display width, so wide runes (CJK, emoji)
// take two columns.
type TextRenderer struct {
	Width int
}

func (r *TextRenderer) Render(w io.Writer, doc Document) error {
	width := r.Width
	if width <= 0 {
		width = DefaultTextWidth
	}

	bw := bufio.NewWriter(w)
	bw.WriteString(center(doc.Title, width) + "\n")
	bw.WriteString(center(doc.Subtitle(), width) + "\n\n")

	for i, p := range doc.Pages {
		if i > 0 {
			bw.WriteString("\f\n")
		}
		bw.WriteString(p.Title + "\n")
		bw.WriteString(p.Meta + "\n\n")
		for _, line := range Wrap(p.Content, width) {
			bw.WriteString(line + "\n")
		}
		bw.WriteString(strings.Repeat("-", width) + "\n")
	}
	return bw.Flush()
}

func center(s string, width int) string {
	pad := (width - runewidth.StringWidth(s)) / 2
	if pad <= 0 {
		return s
	}
	return strings.Repeat(" ", pad) + s
}

// Wrap breaks text into lines no wider than width display columns. Existing
// newlines are kept; words wider than a line are split.
func Wrap(text string, width int) []string {
	if width <= 0 {
		width = DefaultTextWidth
	}
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		lines = append(lines, wrapParagraph(para, width)...)
	}
	return lines
}

func wrapParagraph(para string, width int) []string {
	words := strings.Fields(para)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	var line strings.Builder
	lineWidth := 0

	flush := func() {
		lines = append(lines, line.String())
		line.Reset()
		lineWidth = 0
	}

	for _, word := range words {
		ww := runewidth.StringWidth(word)
		if lineWidth > 0 && lineWidth+1+ww > width {
			flush()
		}
		for ww > width {
			head := runewidth.Truncate(word, width, "")
			if head == "" {
				// A single rune wider than the line still has to go somewhere.
				_, size := utf8.DecodeRuneInString(word)
				head = word[:size]
			}
			if lineWidth > 0 {
				flush()
			}
			lines = append(lines, head)
			word = word[len(head):]
			ww = runewidth.StringWidth(word)
		}
		if word == "" {
			continue
		}
		if lineWidth > 0 {
			line.WriteByte(' ')
			lineWidth++
		}
		line.WriteString(word)
		lineWidth += ww
	}
	if lineWidth > 0 {
		flush()
	}
	return lines
}
