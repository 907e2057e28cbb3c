package codec

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/supernotes/pkg/core"
)

func sampleNotes() []core.Note {
	at := time.Date(2024, 3, 9, 14, 30, 5, 123_000_000, time.UTC)
	return []core.Note{
		{ID: 1, Title: "First", Content: "line one\nline two", Color: "#ffffff", Tags: []string{"a", "b"}, CreatedAt: at, UpdatedAt: at},
		{ID: 3, Title: "Pinned: yes", Content: "- not a list", Color: "#aabbcc", Pinned: true, Tags: []string{}, CreatedAt: at.Add(time.Hour), UpdatedAt: at.Add(2 * time.Hour)},
	}
}

func TestCodecs(t *testing.T) {
	tests := []struct {
		name string
	}{
		{"json"},
		{"yaml"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, err := ByName(tc.name)
			require.NoError(t, err)

			data, err := c.Marshal(sampleNotes())
			require.NoError(t, err)

			parsed, err := c.Unmarshal(data)
			require.NoError(t, err)
			assert.Equal(t, sampleNotes(), parsed)
		})
	}
}

func TestCodecs_EmptySnapshot(t *testing.T) {
	data, err := YAML{}.Marshal(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(data))

	data, err = core.JSONCodec{}.Marshal(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestByName(t *testing.T) {
	c, err := ByName(".yml")
	require.NoError(t, err)
	assert.Equal(t, ".yaml", Extension(c))

	c, err = ByName("")
	require.NoError(t, err)
	assert.Equal(t, ".json", Extension(c))

	_, err = ByName("toml")
	assert.ErrorIs(t, err, ErrUnknownCodec)
}
