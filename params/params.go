package params

import (
	"strconv"
	"strings"
)

// Map is a string-keyed parameter tree. Nested values are expected to be
// Map/map[string]any, []any, or scalars; anything else is carried through
// untouched for custom hooks to interpret.
type Map map[string]any

// New returns an empty parameter map.
func New() Map {
	return Map{}
}

// Clone returns a deep copy of the map. Nested map[string]any and []any
// values are copied recursively; scalars are shared.
func (m Map) Clone() Map {
	if m == nil {
		return nil
	}
	out := make(Map, len(m))
	for key, value := range m {
		out[key] = cloneValue(value)
	}
	return out
}

// With returns a copy of the map with key set to value. The receiver is
// never modified; a nil receiver yields a single-entry map.
func (m Map) With(key string, value any) Map {
	out := m.Clone()
	if out == nil {
		out = Map{}
	}
	out[key] = value
	return out
}

// WithIn returns a copy of the map with the nested path set to value,
// creating intermediate maps as needed. Existing non-map values along the
// path are replaced.
func (m Map) WithIn(path []string, value any) Map {
	if len(path) == 0 {
		return m.Clone()
	}
	out := m.Clone()
	if out == nil {
		out = Map{}
	}
	node := out
	for _, key := range path[:len(path)-1] {
		child, ok := asMap(node[key])
		if !ok {
			child = Map{}
		}
		node[key] = child
		node = child
	}
	node[path[len(path)-1]] = value
	return out
}

// Sub returns the nested map stored under key, or nil when the key is absent
// or holds a non-map value. The returned map aliases the receiver's storage;
// mutate through With/WithIn, never in place.
func (m Map) Sub(key string) Map {
	if m == nil {
		return nil
	}
	child, ok := asMap(m[key])
	if !ok {
		return nil
	}
	return child
}

// Has reports whether key is present, regardless of its value.
func (m Map) Has(key string) bool {
	if m == nil {
		return false
	}
	_, ok := m[key]
	return ok
}

// String returns the value under key coerced to a string. Numeric values are
// formatted; other types report false.
func (m Map) String(key string) (string, bool) {
	if m == nil {
		return "", false
	}
	switch value := m[key].(type) {
	case string:
		return value, true
	case int:
		return strconv.Itoa(value), true
	case int64:
		return strconv.FormatInt(value, 10), true
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64), true
	default:
		return "", false
	}
}

// Int returns the value under key coerced to an int. String values are
// parsed after trimming; floats must be integral.
func (m Map) Int(key string) (int, bool) {
	if m == nil {
		return 0, false
	}
	switch value := m[key].(type) {
	case int:
		return value, true
	case int64:
		return int(value), true
	case float64:
		if value != float64(int(value)) {
			return 0, false
		}
		return int(value), true
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}

// IsEmpty reports whether the map holds no keys.
func (m Map) IsEmpty() bool {
	return len(m) == 0
}

func cloneValue(value any) any {
	switch typed := value.(type) {
	case Map:
		return typed.Clone()
	case map[string]any:
		return Map(typed).Clone()
	case []any:
		out := make([]any, len(typed))
		for i, item := range typed {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return value
	}
}

func asMap(value any) (Map, bool) {
	switch typed := value.(type) {
	case Map:
		return typed, true
	case map[string]any:
		return Map(typed), true
	default:
		return nil, false
	}
}
