package wire

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Kind identifies the variant held by a Value.
type Kind int

const (
	// KindNull is the null variant.
	KindNull Kind = iota
	// KindString is a string value.
	KindString
	// KindInt is an integer value.
	KindInt
	// KindFloat is a floating-point value.
	KindFloat
	// KindBool is a boolean value.
	KindBool
	// KindObject is a nested insertion-ordered object.
	KindObject
	// KindArray is a nested array.
	KindArray
)

// String returns the kind's name for diagnostics.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Value is one node of the generic wire tree. The zero value is null.
//
// Container payloads live only in the object and array variants; a
// primitive variant cannot carry a nested object or array, so the
// aliasing hazards of mixed shapes cannot arise.
type Value struct {
	kind Kind
	str  string
	i    int64
	f    float64
	b    bool
	obj  *Object
	arr  *Array
}

// Null returns the null value.
func Null() Value { return Value{kind: KindNull} }

// String returns a string value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Int returns an integer value.
func Int(i int64) Value { return Value{kind: KindInt, i: i} }

// Float returns a floating-point value.
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// ObjectValue wraps an object as a value. A nil object becomes null.
func ObjectValue(o *Object) Value {
	if o == nil {
		return Null()
	}

	return Value{kind: KindObject, obj: o}
}

// ArrayValue wraps an array as a value. A nil array becomes null.
func ArrayValue(a *Array) Value {
	if a == nil {
		return Null()
	}

	return Value{kind: KindArray, arr: a}
}

// Kind returns the active variant.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether the value is the null variant.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Str returns the string payload if the value is a string.
func (v Value) Str() (string, bool) {
	return v.str, v.kind == KindString
}

// Int returns the integer payload if the value is an integer.
func (v Value) Int() (int64, bool) {
	return v.i, v.kind == KindInt
}

// Float returns the floating-point payload if the value is a float.
func (v Value) Float() (float64, bool) {
	return v.f, v.kind == KindFloat
}

// Bool returns the boolean payload if the value is a bool.
func (v Value) Bool() (bool, bool) {
	return v.b, v.kind == KindBool
}

// Object returns the object payload if the value is an object.
func (v Value) Object() (*Object, bool) {
	return v.obj, v.kind == KindObject
}

// Array returns the array payload if the value is an array.
func (v Value) Array() (*Array, bool) {
	return v.arr, v.kind == KindArray
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNull:
		return []byte("null"), nil
	case KindString:
		return json.Marshal(v.str)
	case KindInt:
		return strconv.AppendInt(nil, v.i, 10), nil
	case KindFloat:
		return json.Marshal(v.f)
	case KindBool:
		return strconv.AppendBool(nil, v.b), nil
	case KindObject:
		return v.obj.MarshalJSON()
	case KindArray:
		return v.arr.MarshalJSON()
	default:
		return nil, fmt.Errorf("cannot marshal value of kind %s", v.kind)
	}
}

// UnmarshalJSON implements json.Unmarshaler, preserving object key order
// and the integer/float distinction.
func (v *Value) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	out, err := decodeValue(dec)
	if err != nil {
		return err
	}

	*v = out

	return nil
}

// decodeValue reads one complete value from the decoder's token stream.
func decodeValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Value{}, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return decodeObject(dec)
		case '[':
			return decodeArray(dec)
		default:
			return Value{}, fmt.Errorf("unexpected delimiter %q", t)
		}

	case string:
		return String(t), nil

	case json.Number:
		if i, err := strconv.ParseInt(t.String(), 10, 64); err == nil {
			return Int(i), nil
		}

		f, err := t.Float64()
		if err != nil {
			return Value{}, fmt.Errorf("invalid number %q: %w", t.String(), err)
		}

		return Float(f), nil

	case bool:
		return Bool(t), nil

	case nil:
		return Null(), nil

	default:
		return Value{}, fmt.Errorf("unexpected token %v", tok)
	}
}

func decodeObject(dec *json.Decoder) (Value, error) {
	obj := NewObject()

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return Value{}, err
		}

		key, ok := keyTok.(string)
		if !ok {
			return Value{}, fmt.Errorf("unexpected object key token %v", keyTok)
		}

		val, err := decodeValue(dec)
		if err != nil {
			return Value{}, err
		}

		obj.Set(key, val)
	}

	// Consume the closing brace.
	if _, err := dec.Token(); err != nil {
		return Value{}, err
	}

	return ObjectValue(obj), nil
}

func decodeArray(dec *json.Decoder) (Value, error) {
	arr := NewArray()

	for dec.More() {
		val, err := decodeValue(dec)
		if err != nil {
			return Value{}, err
		}

		arr.Append(val)
	}

	// Consume the closing bracket.
	if _, err := dec.Token(); err != nil {
		return Value{}, err
	}

	return ArrayValue(arr), nil
}
