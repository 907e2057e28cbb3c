// Package codec provides the snapshot encodings a Store can persist with.
package codec

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aretw0/supernotes/pkg/core"
)

// ErrUnknownCodec is returned by ByName for unsupported names.
var ErrUnknownCodec = errors.New("unknown codec")

// Default returns the codec used when none is configured.
func Default() core.Codec {
	return core.JSONCodec{}
}

// ByName resolves a codec by name ("json", "yaml"/"yml").
func ByName(name string) (core.Codec, error) {
	switch strings.ToLower(strings.TrimPrefix(name, ".")) {
	case "", "json":
		return core.JSONCodec{}, nil
	case "yaml", "yml":
		return YAML{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownCodec, name)
	}
}

// Extension returns the file extension conventionally used for a codec.
func Extension(c core.Codec) string {
	if _, ok := c.(YAML); ok {
		return ".yaml"
	}
	return ".json"
}
