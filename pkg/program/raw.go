package program

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// RawKind tags which variant a [Raw] holds.
type RawKind int

const (
	// RawNull is an absent or JSON null value.
	RawNull RawKind = iota
	// RawText is a string. It may itself contain JSON.
	RawText
	// RawStructured is a decoded JSON object, array, number or bool.
	RawStructured
)

func (k RawKind) String() string {
	switch k {
	case RawText:
		return "text"
	case RawStructured:
		return "structured"
	default:
		return "null"
	}
}

// Raw holds a loosely-typed column that may be null, a string, or structured
// JSON. Structured values are made of [Object], []any, string, float64, bool
// and nil, so object key order survives decoding.
type Raw struct {
	kind  RawKind
	text  string
	value any
}

// Null returns the null Raw. It equals the zero value.
func Null() Raw { return Raw{} }

// Text wraps a string value.
func Text(s string) Raw { return Raw{kind: RawText, text: s} }

// Structured converts an arbitrary Go value (maps, slices, structs) into a
// structured Raw by round-tripping it through JSON. Map keys come out sorted.
func Structured(v any) (Raw, error) {
	if v == nil {
		return Null(), nil
	}
	if s, ok := v.(string); ok {
		return Text(s), nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return Raw{}, fmt.Errorf("marshal structured value: %w", err)
	}
	var r Raw
	if err := r.UnmarshalJSON(data); err != nil {
		return Raw{}, err
	}
	return r, nil
}

// MustStructured is like [Structured] but panics on error.
func MustStructured(v any) Raw {
	r, err := Structured(v)
	if err != nil {
		panic(err)
	}
	return r
}

// Kind reports which variant r holds.
func (r Raw) Kind() RawKind { return r.kind }

// IsNull reports whether r holds no value.
func (r Raw) IsNull() bool { return r.kind == RawNull }

// Text returns the string of a RawText value, or "" otherwise.
func (r Raw) Text() string { return r.text }

// Value returns the decoded JSON of a RawStructured value, or nil otherwise.
func (r Raw) Value() any { return r.value }

// UnmarshalJSON implements json.Unmarshaler.
func (r *Raw) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*r = Raw{}
		return nil
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*r = Text(s)
		return nil
	}
	v, err := ParseJSON(trimmed)
	if err != nil {
		return err
	}
	*r = Raw{kind: RawStructured, value: v}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (r Raw) MarshalJSON() ([]byte, error) {
	switch r.kind {
	case RawText:
		return json.Marshal(r.text)
	case RawStructured:
		return json.Marshal(r.value)
	default:
		return []byte("null"), nil
	}
}

// Member is one key/value pair of an [Object].
type Member struct {
	Key   string
	Value any
}

// Object is a JSON object that remembers key order.
type Object []Member

// Get returns the value stored under key.
func (o Object) Get(key string) (any, bool) {
	for _, m := range o {
		if m.Key == key {
			return m.Value, true
		}
	}
	return nil, false
}

// MarshalJSON writes the members in their original order.
func (o Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, m := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(m.Key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(m.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// ParseJSON decodes a complete JSON document, keeping object key order.
// Duplicate keys keep their first position and their last value.
func ParseJSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	v, err := decodeValue(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("unexpected data after JSON value")
	}
	return v, nil
}

func decodeValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	delim, ok := tok.(json.Delim)
	if !ok {
		return tok, nil
	}

	switch delim {
	case '{':
		obj := Object{}
		index := map[string]int{}
		for dec.More() {
			kt, err := dec.Token()
			if err != nil {
				return nil, err
			}
			key, ok := kt.(string)
			if !ok {
				return nil, fmt.Errorf("object key is %T, want string", kt)
			}
			v, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}
			if i, dup := index[key]; dup {
				obj[i].Value = v
				continue
			}
			index[key] = len(obj)
			obj = append(obj, Member{Key: key, Value: v})
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return obj, nil
	case '[':
		arr := []any{}
		for dec.More() {
			v, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}
			arr = append(arr, v)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return arr, nil
	default:
		return nil, fmt.Errorf("unexpected delimiter %q", delim)
	}
}
