package codec

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/supernotes/pkg/core"
)

// YAML encodes the snapshot as a YAML sequence using the same field names as
// the JSON schema.
type YAML struct{}

func (YAML) Marshal(notes []core.Note) ([]byte, error) {
	if notes == nil {
		notes = []core.Note{}
	}
	return yaml.Marshal(notes)
}

func (YAML) Unmarshal(data []byte) ([]core.Note, error) {
	var notes []core.Note
	if err := yaml.Unmarshal(data, &notes); err != nil {
		return nil, fmt.Errorf("invalid yaml: %w", err)
	}
	for i := range notes {
		if notes[i].Tags == nil {
			notes[i].Tags = []string{}
		}
	}
	return notes, nil
}
