// Package query turns the store's note collection into a display-ready list:
// filter (or search), stable sort, then pinned-first partition.
package query

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/aretw0/supernotes/pkg/core"
)

// Filter selects which notes enter the pipeline.
type Filter string

const (
	FilterNone   Filter = "none"
	FilterPinned Filter = "pinned"
	FilterTag    Filter = "tag"
)

// Sort orders the filtered notes.
type Sort string

const (
	SortNone   Sort = "none"
	SortNewest Sort = "newest"
	SortOldest Sort = "oldest"
	SortTitle  Sort = "title"
)

var (
	ErrUnknownFilter = errors.New("unknown filter")
	ErrUnknownSort   = errors.New("unknown sort")
)

// Query describes one pass of the pipeline.
type Query struct {
	Filter Filter
	Sort   Sort

	// ActiveTags is the tag set used by FilterTag. An empty set passes nothing.
	ActiveTags []string
	// Glob treats ActiveTags as doublestar patterns (e.g. "work/**").
	Glob bool

	// Search, when non-empty, replaces the filter stage with a
	// case-insensitive substring match on title or content.
	Search string

	// Language drives the title collation. The zero value means English.
	Language language.Tag
}

// SelectAndOrder runs filter (or search), sort and partition over notes.
// The input slice is never modified.
func SelectAndOrder(notes []core.Note, q Query) []core.Note {
	var selected []core.Note
	if q.Search != "" {
		selected = Search(notes, q.Search)
	} else {
		selected = filter(notes, q)
	}
	sortNotes(selected, q)
	return Partition(selected)
}

// Search keeps the notes whose title or content contains term, ignoring case.
// An empty term matches every note.
func Search(notes []core.Note, term string) []core.Note {
	term = strings.ToLower(term)
	out := make([]core.Note, 0, len(notes))
	for _, n := range notes {
		if strings.Contains(strings.ToLower(n.Title), term) ||
			strings.Contains(strings.ToLower(n.Content), term) {
			out = append(out, n)
		}
	}
	return out
}

// Partition moves pinned notes ahead of unpinned ones, keeping the relative
// order inside each group.
func Partition(notes []core.Note) []core.Note {
	out := make([]core.Note, 0, len(notes))
	for _, n := range notes {
		if n.Pinned {
			out = append(out, n)
		}
	}
	for _, n := range notes {
		if !n.Pinned {
			out = append(out, n)
		}
	}
	return out
}

func filter(notes []core.Note, q Query) []core.Note {
	out := make([]core.Note, 0, len(notes))
	for _, n := range notes {
		switch q.Filter {
		case FilterPinned:
			if !n.Pinned {
				continue
			}
		case FilterTag:
			if !matchesAnyTag(n, q.ActiveTags, q.Glob) {
				continue
			}
		}
		out = append(out, n)
	}
	return out
}

func matchesAnyTag(n core.Note, active []string, glob bool) bool {
	for _, want := range active {
		for _, tag := range n.Tags {
			if tag == want {
				return true
			}
			if glob {
				ok, err := doublestar.Match(want, tag)
				if err == nil && ok {
					return true
				}
			}
		}
	}
	return false
}

func sortNotes(notes []core.Note, q Query) {
	switch q.Sort {
	case SortNewest:
		slices.SortStableFunc(notes, func(a, b core.Note) int {
			return b.CreatedAt.Compare(a.CreatedAt)
		})
	case SortOldest:
		slices.SortStableFunc(notes, func(a, b core.Note) int {
			return a.CreatedAt.Compare(b.CreatedAt)
		})
	case SortTitle:
		tag := q.Language
		if tag == language.Und {
			tag = language.English
		}
		c := collate.New(tag)
		slices.SortStableFunc(notes, func(a, b core.Note) int {
			return c.CompareString(a.Title, b.Title)
		})
	}
}

// ParseFilter maps user input to a Filter. "" and "all" mean FilterNone.
func ParseFilter(s string) (Filter, error) {
	switch f := Filter(strings.ToLower(strings.TrimSpace(s))); f {
	case "", "all", FilterNone:
		return FilterNone, nil
	case FilterPinned, FilterTag:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFilter, s)
	}
}

// ParseSort maps user input to a Sort. "" means SortNone.
func ParseSort(s string) (Sort, error) {
	switch o := Sort(strings.ToLower(strings.TrimSpace(s))); o {
	case "", SortNone:
		return SortNone, nil
	case SortNewest, SortOldest, SortTitle:
		return o, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownSort, s)
	}
}
