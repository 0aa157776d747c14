package wire

import (
	"fmt"
	"strings"

	"github.com/wagiedev/dap-sdk-go/internal/errors"
)

// InjectIntoAncestor walks a dotted path of nested objects and inserts or
// overwrites key at that depth. An empty path targets the root.
//
// Fails with ErrAncestorDoesNotExist when a path segment is absent and
// ErrAncestorIsNotAnObject when a segment resolves to a non-object value.
// This is how caller-supplied vendor fields are merged into a
// strongly-typed request's arguments without widening its static shape.
func InjectIntoAncestor(obj *Object, path, key string, value Value) error {
	target := obj

	if path != "" {
		for seg := range strings.SplitSeq(path, ".") {
			child, ok := target.Get(seg)
			if !ok {
				return fmt.Errorf("%w: %q in path %q", errors.ErrAncestorDoesNotExist, seg, path)
			}

			childObj, ok := child.Object()
			if !ok {
				return fmt.Errorf("%w: %q in path %q is %s",
					errors.ErrAncestorIsNotAnObject, seg, path, child.Kind())
			}

			target = childObj
		}
	}

	target.Set(key, value)

	return nil
}

// Merge bulk-overwrites obj's root with every key of extra, preserving
// extra's ordering for newly added keys. A nil extra is a no-op.
func Merge(obj, extra *Object) {
	if extra == nil {
		return
	}

	for key, value := range extra.All() {
		obj.Set(key, value)
	}
}
