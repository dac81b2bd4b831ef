package restcountries

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Entry is one key/value pair of an OrderedMap.
type Entry[V any] struct {
	Key   string
	Value V
}

// OrderedMap decodes a JSON object while preserving the order of its keys.
//
// encoding/json unmarshals objects into Go maps, which lose key order. The
// REST Countries API keys currencies, languages, and native names by code,
// and the flattened columns must join those values in document order, so the
// object is decoded token by token into a slice of entries instead.
type OrderedMap[V any] []Entry[V]

// UnmarshalJSON implements json.Unmarshaler. JSON null and the empty object
// both decode to a nil map.
func (m *OrderedMap[V]) UnmarshalJSON(data []byte) error {
	*m = nil

	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("expected JSON object, got %v", tok)
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("expected object key, got %v", keyTok)
		}

		var value V
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("value for key %q: %w", key, err)
		}

		*m = append(*m, Entry[V]{Key: key, Value: value})
	}

	// Consume the closing brace.
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

// MarshalJSON implements json.Marshaler, writing the entries back out as a
// JSON object in entry order. Used when snapshotting raw API responses.
func (m OrderedMap[V]) MarshalJSON() ([]byte, error) {
	if m == nil {
		return []byte("null"), nil
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range m {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		value, err := json.Marshal(e.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Keys returns the keys in document order.
func (m OrderedMap[V]) Keys() []string {
	if len(m) == 0 {
		return nil
	}
	keys := make([]string, len(m))
	for i, e := range m {
		keys[i] = e.Key
	}
	return keys
}

// Values returns the values in document order.
func (m OrderedMap[V]) Values() []V {
	if len(m) == 0 {
		return nil
	}
	values := make([]V, len(m))
	for i, e := range m {
		values[i] = e.Value
	}
	return values
}
