package wire

import (
	"bytes"
	"encoding/json"
	"fmt"
	"iter"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Object is an insertion-ordered mapping from string keys to values.
type Object struct {
	entries *orderedmap.OrderedMap[string, Value]
}

// NewObject creates an empty object.
func NewObject() *Object {
	return &Object{entries: orderedmap.New[string, Value]()}
}

// Set inserts or overwrites the value for key. New keys keep insertion
// order; overwritten keys keep their original position.
func (o *Object) Set(key string, v Value) {
	o.entries.Set(key, v)
}

// Get returns the value for key.
func (o *Object) Get(key string) (Value, bool) {
	return o.entries.Get(key)
}

// Len returns the number of keys.
func (o *Object) Len() int {
	return o.entries.Len()
}

// All iterates key/value pairs in insertion order.
func (o *Object) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		for pair := o.entries.Oldest(); pair != nil; pair = pair.Next() {
			if !yield(pair.Key, pair.Value) {
				return
			}
		}
	}
}

// GetString returns the string payload stored under key.
func (o *Object) GetString(key string) (string, bool) {
	v, ok := o.Get(key)
	if !ok {
		return "", false
	}

	return v.Str()
}

// GetInt returns the integer payload stored under key.
func (o *Object) GetInt(key string) (int64, bool) {
	v, ok := o.Get(key)
	if !ok {
		return 0, false
	}

	return v.Int()
}

// GetBool returns the boolean payload stored under key.
func (o *Object) GetBool(key string) (bool, bool) {
	v, ok := o.Get(key)
	if !ok {
		return false, false
	}

	return v.Bool()
}

// GetObject returns the nested object stored under key.
func (o *Object) GetObject(key string) (*Object, bool) {
	v, ok := o.Get(key)
	if !ok {
		return nil, false
	}

	return v.Object()
}

// GetArray returns the nested array stored under key.
func (o *Object) GetArray(key string) (*Array, bool) {
	v, ok := o.Get(key)
	if !ok {
		return nil, false
	}

	return v.Array()
}

// MarshalJSON implements json.Marshaler, emitting keys in insertion order.
func (o *Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte('{')

	first := true
	for pair := o.entries.Oldest(); pair != nil; pair = pair.Next() {
		if !first {
			buf.WriteByte(',')
		}

		first = false

		key, err := json.Marshal(pair.Key)
		if err != nil {
			return nil, err
		}

		buf.Write(key)
		buf.WriteByte(':')

		val, err := pair.Value.MarshalJSON()
		if err != nil {
			return nil, err
		}

		buf.Write(val)
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// UnmarshalJSON implements json.Unmarshaler. The data must encode an object.
func (o *Object) UnmarshalJSON(data []byte) error {
	var v Value
	if err := v.UnmarshalJSON(data); err != nil {
		return err
	}

	obj, ok := v.Object()
	if !ok {
		return fmt.Errorf("expected object, got %s", v.Kind())
	}

	*o = *obj

	return nil
}

// Array is an ordered sequence of values.
type Array struct {
	items []Value
}

// NewArray creates an array holding the given values.
func NewArray(items ...Value) *Array {
	return &Array{items: items}
}

// Append adds a value to the end of the array.
func (a *Array) Append(v Value) {
	a.items = append(a.items, v)
}

// Len returns the number of elements.
func (a *Array) Len() int {
	return len(a.items)
}

// At returns the element at index i.
func (a *Array) At(i int) Value {
	return a.items[i]
}

// All iterates elements in order.
func (a *Array) All() iter.Seq[Value] {
	return func(yield func(Value) bool) {
		for _, v := range a.items {
			if !yield(v) {
				return
			}
		}
	}
}

// MarshalJSON implements json.Marshaler.
func (a *Array) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte('[')

	for i, v := range a.items {
		if i > 0 {
			buf.WriteByte(',')
		}

		val, err := v.MarshalJSON()
		if err != nil {
			return nil, err
		}

		buf.Write(val)
	}

	buf.WriteByte(']')

	return buf.Bytes(), nil
}

// UnmarshalJSON implements json.Unmarshaler. The data must encode an array.
func (a *Array) UnmarshalJSON(data []byte) error {
	var v Value
	if err := v.UnmarshalJSON(data); err != nil {
		return err
	}

	arr, ok := v.Array()
	if !ok {
		return fmt.Errorf("expected array, got %s", v.Kind())
	}

	*a = *arr

	return nil
}
