package query

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aretw0/supernotes/pkg/core"
)

func TestParseTags(t *testing.T) {
	assert.Equal(t, []string{"work", "home"}, ParseTags(" work, ,home,work "))
	assert.Equal(t, []string{}, ParseTags(""))
}

func TestMergeAndRemoveTags(t *testing.T) {
	current := []string{"a", "b"}
	merged := MergeTags(current, "b", "c", " a ")
	assert.Equal(t, []string{"a", "b", "c"}, merged)
	assert.Equal(t, []string{"a", "b"}, current)

	assert.Equal(t, []string{"a", "c"}, RemoveTag(merged, "b"))
	assert.Equal(t, []string{"a", "b", "c"}, merged)
}

func TestAllTags(t *testing.T) {
	notes := []core.Note{
		{Tags: []string{"x", "y"}},
		{Tags: []string{"y", "z"}},
		{},
	}
	assert.Equal(t, []string{"x", "y", "z"}, AllTags(notes))
}
