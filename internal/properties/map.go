package properties

import (
	"fmt"
	"strings"

	"github.com/kamusis/credscan/internal/textenc"
)

// Map is a parsed properties file. Keys keeps first-insertion order so that
// extraction output follows file order; a duplicate key overwrites the value
// in place.
type Map struct {
	keys   []string
	values map[string]string
}

// NewMap returns an empty Map.
func NewMap() *Map {
	return &Map{values: make(map[string]string)}
}

func (m *Map) ensureInit() {
	if m.values == nil {
		m.values = make(map[string]string)
	}
}

// Set stores value under key.
func (m *Map) Set(key, value string) {
	m.ensureInit()
	if _, exists := m.values[key]; !exists {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Get returns the value for key and whether it was present.
func (m *Map) Get(key string) (string, bool) {
	if m == nil || m.values == nil {
		return "", false
	}
	v, ok := m.values[key]
	return v, ok
}

// Value returns the value for key, or "" when the key is absent.
func (m *Map) Value(key string) string {
	v, _ := m.Get(key)
	return v
}

// Has reports whether key is present.
func (m *Map) Has(key string) bool {
	_, ok := m.Get(key)
	return ok
}

// Keys returns the keys in first-insertion order.
func (m *Map) Keys() []string {
	if m == nil {
		return nil
	}
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Parse builds a Map from properties text. Blank lines, '#' comments and lines
// without '=' are skipped; each remaining line is split on its first '='.
// There is no line continuation.
func Parse(text string) *Map {
	m := NewMap()
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		m.Set(strings.TrimSpace(key), strings.TrimSpace(value))
	}
	return m
}

// Load reads and parses a properties file.
func Load(path, encoding string) (*Map, error) {
	text, err := textenc.ReadFile(path, encoding)
	if err != nil {
		return nil, fmt.Errorf("failed to read properties file: %w", err)
	}
	return Parse(text), nil
}
