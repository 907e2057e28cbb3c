package query

import (
	"slices"
	"strings"

	"github.com/aretw0/supernotes/pkg/core"
)

// ParseTags splits comma-delimited tag input, trimming and dropping empties.
func ParseTags(input string) []string {
	return core.NormalizeTags(strings.Split(input, ","))
}

// MergeTags appends add to current, keeping the first occurrence of each tag.
func MergeTags(current []string, add ...string) []string {
	return core.NormalizeTags(append(slices.Clone(current), add...))
}

// RemoveTag drops tag from current.
func RemoveTag(current []string, tag string) []string {
	return slices.DeleteFunc(slices.Clone(current), func(t string) bool { return t == tag })
}

// AllTags lists every distinct tag across notes, in first-seen order.
func AllTags(notes []core.Note) []string {
	var all []string
	for _, n := range notes {
		all = append(all, n.Tags...)
	}
	return core.NormalizeTags(all)
}
