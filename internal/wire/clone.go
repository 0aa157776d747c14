package wire

import "strings"

// StringCloner is the string duplication strategy used by DeepClone.
// CopyString suits scratch copies; an interner's GetAndPut suits copies
// into long-lived caches.
type StringCloner func(string) string

// CopyString clones a string into fresh backing storage.
func CopyString(s string) string {
	return strings.Clone(s)
}

// DeepClone recursively clones a value, delegating every string copy
// (keys included) to cloneString. Shape, ordering, and the active numeric
// variant are preserved exactly; the clone shares no storage with the
// original.
func DeepClone(cloneString StringCloner, v Value) Value {
	switch v.kind {
	case KindString:
		return String(cloneString(v.str))

	case KindObject:
		return ObjectValue(CloneObject(cloneString, v.obj))

	case KindArray:
		clone := &Array{items: make([]Value, 0, v.arr.Len())}
		for item := range v.arr.All() {
			clone.Append(DeepClone(cloneString, item))
		}

		return ArrayValue(clone)

	default:
		// Null, int, float, and bool carry no shared storage.
		return v
	}
}

// CloneObject deep-clones an object with the given string strategy.
func CloneObject(cloneString StringCloner, obj *Object) *Object {
	clone := NewObject()
	for key, value := range obj.All() {
		clone.Set(cloneString(key), DeepClone(cloneString, value))
	}

	return clone
}
