package core

import (
	"encoding/json"
	"fmt"
)

// JSONCodec is the default snapshot encoding. It is the same shape the JSON
// export produces, so a snapshot and an export are interchangeable.
type JSONCodec struct {
	// Indent pretty-prints the snapshot with two spaces.
	Indent bool
}

// Marshal encodes notes as a JSON array. A nil slice encodes as [].
func (c JSONCodec) Marshal(notes []Note) ([]byte, error) {
	if notes == nil {
		notes = []Note{}
	}
	if c.Indent {
		return json.MarshalIndent(notes, "", "  ")
	}
	return json.Marshal(notes)
}

// Unmarshal decodes a JSON array of notes. Missing tags decode as an empty
// slice.
func (c JSONCodec) Unmarshal(data []byte) ([]Note, error) {
	var notes []Note
	if err := json.Unmarshal(data, &notes); err != nil {
		return nil, fmt.Errorf("invalid json: %w", err)
	}
	for i := range notes {
		if notes[i].Tags == nil {
			notes[i].Tags = []string{}
		}
	}
	return notes, nil
}
