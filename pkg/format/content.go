// Package format renders the lightweight markdown used in note content and
// implements the editor toolbar insertions that produce it.
package format

import (
	"html"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

var (
	fencedCode = regexp.MustCompile("(?s)```(.*?)```")
	inlineCode = regexp.MustCompile("`(.*?)`")
	image      = regexp.MustCompile(`!\[(.*?)\]\((.*?)\)`)
	link       = regexp.MustCompile(`\[(.*?)\]\((.*?)\)`)
	bold       = regexp.MustCompile(`\*\*(.*?)\*\*`)
	italicStar = regexp.MustCompile(`\*(.*?)\*`)
	italicLine = regexp.MustCompile(`_(.*?)_`)
)

// Content converts raw note text to HTML.
//
// Supported: **bold**, *italic*, _italic_, ```fenced code```, `inline code`,
// [label](url) links opening in a new tab, ![alt](url) images and line
// breaks. Raw text is HTML-escaped, so untrusted input cannot inject markup.
// Code spans, links and images are rendered first and set aside, which keeps
// the emphasis rules from rewriting their contents.
func Content(raw string) string {
	raw = strings.ReplaceAll(raw, "\x00", "")
	raw = strings.ReplaceAll(raw, "\x01", "")
	raw = strings.ReplaceAll(raw, "\r\n", "\n")

	var spans []string
	stash := func(rendered string) string {
		spans = append(spans, rendered)
		return placeholder(len(spans) - 1)
	}

	text := fencedCode.ReplaceAllStringFunc(raw, func(m string) string {
		body := fencedCode.FindStringSubmatch(m)[1]
		return stash("<pre><code>" + html.EscapeString(body) + "</code></pre>")
	})
	text = inlineCode.ReplaceAllStringFunc(text, func(m string) string {
		body := inlineCode.FindStringSubmatch(m)[1]
		return stash("<code>" + html.EscapeString(body) + "</code>")
	})
	// Images before links: the link pattern would otherwise consume the
	// bracketed part of an image and strand the "!".
	text = image.ReplaceAllStringFunc(text, func(m string) string {
		sub := image.FindStringSubmatch(m)
		return stash(`<img src="` + safeURL(sub[2]) + `" alt="` + html.EscapeString(sub[1]) + `">`)
	})
	text = link.ReplaceAllStringFunc(text, func(m string) string {
		sub := link.FindStringSubmatch(m)
		return stash(`<a href="` + safeURL(sub[2]) + `" target="_blank" rel="noopener noreferrer">` +
			html.EscapeString(sub[1]) + `</a>`)
	})

	text = html.EscapeString(text)
	text = bold.ReplaceAllString(text, "<strong>$1</strong>")
	text = italicStar.ReplaceAllString(text, "<em>$1</em>")
	text = italicLine.ReplaceAllString(text, "<em>$1</em>")
	text = strings.ReplaceAll(text, "\n", "<br>")

	// Later spans may embed earlier placeholders (a code span inside a link
	// label), so restore in reverse.
	for i := len(spans) - 1; i >= 0; i-- {
		text = strings.Replace(text, placeholder(i), spans[i], 1)
	}
	return text
}

// placeholder uses distinct open and close bytes so adjacent placeholders
// cannot combine with the text between them into a different index.
func placeholder(i int) string {
	return "\x00" + strconv.Itoa(i) + "\x01"
}

// safeURL escapes u for an attribute value and neutralises schemes other than
// http, https and mailto.
func safeURL(u string) string {
	u = strings.TrimSpace(u)
	if strings.ContainsAny(u, "\x00\x01") {
		return "#"
	}
	parsed, err := url.Parse(u)
	if err != nil {
		return "#"
	}
	switch strings.ToLower(parsed.Scheme) {
	case "", "http", "https", "mailto":
		return html.EscapeString(u)
	default:
		return "#"
	}
}
