// Package record implements the schema-less record model the dashboard
// operates on: an ordered, key-sorted mapping from field names to tagged
// values, discovered at runtime from whatever the upstream API returns.
package record

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// Kind tags the runtime type of a Value
type Kind int

const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindBool
	KindNested
	KindList
)

// String returns the kind name for diagnostics
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindNested:
		return "nested"
	case KindList:
		return "list"
	default:
		return "unknown"
	}
}

// Value is a tagged variant over the JSON value space. The zero Value
// is null.
type Value struct {
	kind   Kind
	str    string
	num    float64
	b      bool
	nested *Record
	list   []Value
}

// Null returns the null value
func Null() Value {
	return Value{kind: KindNull}
}

// String wraps a string value
func String(s string) Value {
	return Value{kind: KindString, str: s}
}

// Number wraps a numeric value
func Number(n float64) Value {
	return Value{kind: KindNumber, num: n}
}

// Bool wraps a boolean value
func Bool(b bool) Value {
	return Value{kind: KindBool, b: b}
}

// Nested wraps an embedded record
func Nested(r Record) Value {
	return Value{kind: KindNested, nested: &r}
}

// List wraps a list of values
func List(vs []Value) Value {
	return Value{kind: KindList, list: vs}
}

// Kind returns the value's tag
func (v Value) Kind() Kind {
	return v.kind
}

// IsNull reports whether the value is null
func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// Str returns the string payload; zero unless KindString
func (v Value) Str() string {
	return v.str
}

// Num returns the numeric payload; zero unless KindNumber
func (v Value) Num() float64 {
	return v.num
}

// B returns the boolean payload; false unless KindBool
func (v Value) B() bool {
	return v.b
}

// Record returns the nested record payload; empty unless KindNested
func (v Value) Record() Record {
	if v.nested == nil {
		return New()
	}
	return *v.nested
}

// Items returns the list payload; nil unless KindList
func (v Value) Items() []Value {
	return v.list
}

// Equal reports deep equality of two values
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindString:
		return v.str == other.str
	case KindNumber:
		return v.num == other.num
	case KindBool:
		return v.b == other.b
	case KindNested:
		return v.Record().Equal(other.Record())
	case KindList:
		if len(v.list) != len(other.list) {
			return false
		}
		for i := range v.list {
			if !v.list[i].Equal(other.list[i]) {
				return false
			}
		}
		return true
	}
	return false
}

// MarshalJSON implements json.Marshaler
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNull:
		return []byte("null"), nil
	case KindString:
		return json.Marshal(v.str)
	case KindNumber:
		return json.Marshal(v.num)
	case KindBool:
		return json.Marshal(v.b)
	case KindNested:
		return json.Marshal(v.Record())
	case KindList:
		if v.list == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.list)
	}
	return nil, fmt.Errorf("record: cannot marshal value of kind %d", v.kind)
}

// UnmarshalJSON implements json.Unmarshaler
func (v *Value) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return fmt.Errorf("record: empty value")
	}

	switch trimmed[0] {
	case 'n':
		*v = Null()
		return nil
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*v = String(s)
		return nil
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(trimmed, &b); err != nil {
			return err
		}
		*v = Bool(b)
		return nil
	case '{':
		var r Record
		if err := json.Unmarshal(trimmed, &r); err != nil {
			return err
		}
		*v = Nested(r)
		return nil
	case '[':
		var items []Value
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return err
		}
		*v = List(items)
		return nil
	default:
		var n float64
		if err := json.Unmarshal(trimmed, &n); err != nil {
			return err
		}
		*v = Number(n)
		return nil
	}
}

// Record is an open-ended mapping from field name to Value. Fields are
// kept sorted by name so iteration order is deterministic regardless of
// the order the upstream API emitted them in.
type Record struct {
	keys []string
	vals map[string]Value
}

// New creates an empty record
func New() Record {
	return Record{vals: map[string]Value{}}
}

// FromPairs builds a record from alternating name/value pairs; handy in
// tests and skeleton tables.
func FromPairs(pairs ...interface{}) Record {
	r := New()
	for i := 0; i+1 < len(pairs); i += 2 {
		name, ok := pairs[i].(string)
		if !ok {
			continue
		}
		switch val := pairs[i+1].(type) {
		case Value:
			r.Set(name, val)
		case string:
			r.Set(name, String(val))
		case float64:
			r.Set(name, Number(val))
		case int:
			r.Set(name, Number(float64(val)))
		case bool:
			r.Set(name, Bool(val))
		case nil:
			r.Set(name, Null())
		}
	}
	return r
}

// Len returns the number of fields
func (r Record) Len() int {
	return len(r.keys)
}

// Fields returns the field names in sorted order
func (r Record) Fields() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

// Get returns the value for a field
func (r Record) Get(name string) (Value, bool) {
	v, ok := r.vals[name]
	return v, ok
}

// Has reports whether a field is present
func (r Record) Has(name string) bool {
	_, ok := r.vals[name]
	return ok
}

// Set stores a field value, keeping the key list sorted
func (r *Record) Set(name string, v Value) {
	if r.vals == nil {
		r.vals = map[string]Value{}
	}
	if _, exists := r.vals[name]; !exists {
		idx := sort.SearchStrings(r.keys, name)
		r.keys = append(r.keys, "")
		copy(r.keys[idx+1:], r.keys[idx:])
		r.keys[idx] = name
	}
	r.vals[name] = v
}

// Delete removes a field if present
func (r *Record) Delete(name string) {
	if _, exists := r.vals[name]; !exists {
		return
	}
	delete(r.vals, name)
	idx := sort.SearchStrings(r.keys, name)
	r.keys = append(r.keys[:idx], r.keys[idx+1:]...)
}

// Clone returns an independent copy of the record
func (r Record) Clone() Record {
	out := New()
	for _, k := range r.keys {
		out.Set(k, r.vals[k])
	}
	return out
}

// Equal reports whether two records have the same fields and values
func (r Record) Equal(other Record) bool {
	if len(r.keys) != len(other.keys) {
		return false
	}
	for _, k := range r.keys {
		ov, ok := other.vals[k]
		if !ok || !r.vals[k].Equal(ov) {
			return false
		}
	}
	return true
}

// MarshalJSON implements json.Marshaler, emitting fields in sorted order
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(r.vals[k])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON implements json.Unmarshaler
func (r *Record) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := New()
	for k, msg := range raw {
		var v Value
		if err := json.Unmarshal(msg, &v); err != nil {
			return fmt.Errorf("record: field %q: %w", k, err)
		}
		out.Set(k, v)
	}
	*r = out
	return nil
}

// DecodeList parses a JSON array of records
func DecodeList(data []byte) ([]Record, error) {
	var out []Record
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}
