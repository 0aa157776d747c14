package wire

import (
	"encoding/json"
	"fmt"

	"github.com/wagiedev/dap-sdk-go/internal/errors"
)

// ToObject lowers a typed protocol value into its generic object form.
//
// A pre-built *Object passes through unchanged. Anything else is
// serialized schema-driven through its json struct tags: optional fields
// are pointers (nil encodes as null unless omitted), enums are
// string-typed constants, union types select their active branch via a
// custom MarshalJSON, and byte slices encode as base64 strings. Field
// order follows struct declaration order.
//
// Values whose root does not encode as an object (bare arrays,
// primitives) and shapes the json package cannot serialize fail with
// ErrNotSerializable. These are integration errors: a request type that
// trips them is mis-declared, the wire data is not at fault.
func ToObject(v any) (*Object, error) {
	switch t := v.(type) {
	case nil:
		return nil, fmt.Errorf("%w: nil value", errors.ErrNotSerializable)

	case *Object:
		return t, nil

	case Value:
		obj, ok := t.Object()
		if !ok {
			return nil, fmt.Errorf("%w: %s root", errors.ErrNotSerializable, t.Kind())
		}

		return obj, nil
	}

	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrNotSerializable, err)
	}

	if len(data) == 0 || data[0] != '{' {
		return nil, fmt.Errorf("%w: root does not encode as an object", errors.ErrNotSerializable)
	}

	obj := NewObject()
	if err := obj.UnmarshalJSON(data); err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrNotSerializable, err)
	}

	return obj, nil
}

// FromObject decodes a generic object into a typed protocol value via its
// json struct tags. It is the inverse of ToObject for round-trippable
// shapes and is used to project response bodies into typed records.
func FromObject(obj *Object, out any) error {
	data, err := obj.MarshalJSON()
	if err != nil {
		return err
	}

	return json.Unmarshal(data, out)
}
