package format

import (
	"errors"
	"fmt"
	"strings"
)

// Action is a toolbar button.
type Action string

const (
	ActionBold   Action = "bold"
	ActionItalic Action = "italic"
	ActionCode   Action = "code"
	ActionLink   Action = "link"
	ActionImage  Action = "image"
)

var ErrUnknownAction = errors.New("unknown formatting action")

// ParseAction maps a toolbar name to an Action.
func ParseAction(s string) (Action, error) {
	switch a := Action(strings.ToLower(strings.TrimSpace(s))); a {
	case ActionBold, ActionItalic, ActionCode, ActionLink, ActionImage:
		return a, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownAction, s)
	}
}

// Selection is a byte range in the edited text. Start == End is a cursor.
type Selection struct {
	Start, End int
}

// Apply wraps the selected text with the markup for action and returns the
// new text with the selection to show afterwards. A non-empty selection stays
// selected (now including the markup); an empty one leaves the cursor where
// the user is expected to type next.
func Apply(text string, sel Selection, action Action) (string, Selection) {
	start := clamp(sel.Start, 0, len(text))
	end := clamp(sel.End, start, len(text))
	selected := text[start:end]

	var formatted string
	offset := 0
	switch action {
	case ActionBold:
		formatted = "**" + selected + "**"
		offset = 2
	case ActionItalic:
		formatted = "_" + selected + "_"
		offset = 1
	case ActionCode:
		if strings.Contains(selected, "\n") {
			formatted = "```\n" + selected + "\n```"
			offset = 4
		} else {
			formatted = "`" + selected + "`"
			offset = 1
		}
	case ActionLink:
		formatted = "[" + orDefault(selected, "text") + "](url)"
		offset = 1
	case ActionImage:
		formatted = "![" + orDefault(selected, "alt text") + "](image-url)"
		offset = 1
	default:
		formatted = selected
	}

	out := text[:start] + formatted + text[end:]
	if selected != "" {
		return out, Selection{Start: start, End: start + len(formatted)}
	}
	pos := start + len(formatted) - offset
	return out, Selection{Start: pos, End: pos}
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
