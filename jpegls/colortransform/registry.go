package colortransform

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/cocosip/go-jpegls/jpegls/pixel"
)

// ErrTransformNotFound is returned when a transform is not registered.
var ErrTransformNotFound = errors.New("color transform not found")

// Factory builds a transform for samples with bits significant bits.
type Factory[S pixel.Sample] func(bits int) Transform[S]

// Registry manages the available color transforms for one sample type
type Registry[S pixel.Sample] struct {
	mu        sync.RWMutex
	factories map[string]Factory[S]
}

// NewRegistry creates a registry holding the built-in transforms.
func NewRegistry[S pixel.Sample]() *Registry[S] {
	r := &Registry[S]{factories: make(map[string]Factory[S])}
	r.Register("none", func(int) Transform[S] { return None[S]{} })
	r.Register("hp1", func(bits int) Transform[S] { return NewHP1[S](bits) })
	r.Register("hp2", func(bits int) Transform[S] { return NewHP2[S](bits) })
	r.Register("hp3", func(bits int) Transform[S] { return NewHP3[S](bits) })
	return r
}

var (
	registry8  = NewRegistry[uint8]()
	registry16 = NewRegistry[uint16]()
)

// Default returns the process-wide registry for S.
func Default[S pixel.Sample]() *Registry[S] {
	var s S
	if _, ok := any(s).(uint16); ok {
		return any(registry16).(*Registry[S])
	}
	return any(registry8).(*Registry[S])
}

// Get builds the transform registered under name in the default registry.
func Get[S pixel.Sample](name string, bits int) (Transform[S], error) {
	return Default[S]().Get(name, bits)
}

// Register registers a transform factory under name, replacing any existing one
func (r *Registry[S]) Register(name string, f Factory[S]) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.factories[name] = f
}

// Get builds the transform registered under name
func (r *Registry[S]) Get(name string, bits int) (Transform[S], error) {
	r.mu.RLock()
	f, ok := r.factories[name]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrTransformNotFound, name)
	}
	return f(bits), nil
}

// Names returns the registered transform names, sorted
func (r *Registry[S]) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Color transform identifiers as stored in the HP "mrfx" application marker.
var transformIDs = []string{"none", "hp1", "hp2", "hp3"}

// NameForID maps a stored transform identifier to its registry name.
func NameForID(id int) (string, error) {
	if id < 0 || id >= len(transformIDs) {
		return "", fmt.Errorf("%w: id %d", ErrTransformNotFound, id)
	}
	return transformIDs[id], nil
}
