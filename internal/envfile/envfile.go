package envfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Map holds dotenv variables with case-insensitive keys.
type Map struct {
	values map[string]entry
	order  []string
}

type entry struct {
	key   string
	value string
}

// NewMap returns an empty Map.
func NewMap() *Map {
	return &Map{values: make(map[string]entry)}
}

// Set stores value under key, replacing any earlier value for the same
// key regardless of case.
func (m *Map) Set(key, value string) {
	folded := strings.ToUpper(key)
	if _, exists := m.values[folded]; !exists {
		m.order = append(m.order, folded)
	}
	m.values[folded] = entry{key: key, value: value}
}

// Get returns the value for key, matched case-insensitively.
func (m *Map) Get(key string) (string, bool) {
	e, ok := m.values[strings.ToUpper(key)]
	return e.value, ok
}

// Value returns the value for key or an empty string.
func (m *Map) Value(key string) string {
	v, _ := m.Get(key)
	return v
}

// Keys returns the keys in order of first appearance, spelled as in their
// most recent assignment.
func (m *Map) Keys() []string {
	keys := make([]string, 0, len(m.order))
	for _, folded := range m.order {
		keys = append(keys, m.values[folded].key)
	}
	return keys
}

// Len returns the number of distinct keys.
func (m *Map) Len() int {
	return len(m.values)
}

// Load reads the dotenv file at path. A missing file yields an empty Map
// and no error.
func Load(path string) (*Map, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return NewMap(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	m, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return m, nil
}

// Exists reports whether a dotenv file is present at path.
func Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// Parse reads dotenv lines from r. Lines have no length limit, so large
// encrypted payloads load intact.
func Parse(r io.Reader) (*Map, error) {
	m := NewMap()
	br := bufio.NewReader(r)

	first := true
	for {
		line, err := br.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
		if line != "" {
			line = strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")
			if first {
				line = strings.TrimPrefix(line, "\ufeff")
				first = false
			}
			if key, value, ok := parseLine(line); ok {
				m.Set(key, value)
			}
		}
		if err != nil {
			return m, nil
		}
	}
}

func parseLine(line string) (string, string, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return "", "", false
	}

	key, value, found := strings.Cut(trimmed, "=")
	if !found {
		return "", "", false
	}

	key = strings.TrimSpace(key)
	if key == "" {
		return "", "", false
	}

	return key, unquote(strings.TrimSpace(value)), true
}

// unquote strips one pair of matching outer quotes.
func unquote(value string) string {
	if len(value) < 2 {
		return value
	}

	first, last := value[0], value[len(value)-1]
	if first == last && (first == '"' || first == '\'') {
		return value[1 : len(value)-1]
	}

	return value
}
