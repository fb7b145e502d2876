package confloader

import (
	"errors"

	"github.com/knadh/koanf/maps"
)

// ErrReadBytesNotSupported is returned when ReadBytes is called on a map provider.
var ErrReadBytesNotSupported = errors.New("confloader: map provider has no byte form, use Read")

// mapProvider serves an in-memory map to koanf. Keys may be dotted.
type mapProvider map[string]any

// ReadBytes implements koanf.Provider.
func (m mapProvider) ReadBytes() ([]byte, error) {
	return nil, ErrReadBytesNotSupported
}

// Read implements koanf.Provider. Dotted keys are expanded into nested maps.
func (m mapProvider) Read() (map[string]any, error) {
	return maps.Unflatten(m, "."), nil
}
