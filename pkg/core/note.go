// Package core holds the note domain: the Note entity, the Store that owns the
// collection, and the ports (Storage, Codec) it persists through.
package core

import (
	"slices"
	"strconv"
	"strings"
	"time"
)

// DefaultColor is the background color assigned when a draft carries none.
const DefaultColor = "#ffffff"

// Note is the central entity of the domain.
// It is a short user-authored record identified by a numeric ID that is
// unique within a Store and never reused during a session.
type Note struct {
	ID        int       `json:"id" yaml:"id"`
	Title     string    `json:"title" yaml:"title"`
	Content   string    `json:"content" yaml:"content"`
	Color     string    `json:"color" yaml:"color"`
	Pinned    bool      `json:"pinned" yaml:"pinned"`
	Tags      []string  `json:"tags" yaml:"tags"`
	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" yaml:"updatedAt"`
}

// HasTag reports whether the note carries tag.
func (n Note) HasTag(tag string) bool {
	return slices.Contains(n.Tags, tag)
}

// Draft carries the editable fields of a note, as entered in a form.
// Add consumes a Draft; Edit hands one back.
type Draft struct {
	Title   string
	Content string
	Color   string
	Tags    []string
}

// Draft returns the editable fields of the note.
func (n Note) Draft() Draft {
	return Draft{
		Title:   n.Title,
		Content: n.Content,
		Color:   n.Color,
		Tags:    slices.Clone(n.Tags),
	}
}

// clone returns a deep copy so callers never alias store state.
func (n Note) clone() Note {
	n.Tags = slices.Clone(n.Tags)
	return n
}

// NormalizeTags trims every tag, drops empty ones and removes duplicates,
// keeping the first occurrence. The result is never nil.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" || slices.Contains(out, t) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// EventType represents the kind of change applied to the store.
type EventType string

const (
	EventCreate EventType = "CREATE"
	EventModify EventType = "MODIFY"
	EventDelete EventType = "DELETE"
	EventClear  EventType = "CLEAR"
	EventReload EventType = "RELOAD"
)

// Event represents a change in the store or in its underlying storage.
// ID is zero for collection-wide events (clear, reload).
type Event struct {
	Type      EventType
	ID        int
	Timestamp int64 // Unix timestamp
}

// String implements lifecycle.Event.
func (e Event) String() string {
	if e.ID == 0 {
		return string(e.Type)
	}
	return string(e.Type) + " #" + strconv.Itoa(e.ID)
}
