package wire

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wagiedev/dap-sdk-go/internal/errors"
)

// stopReason is an enum-style string constant set used to exercise the
// schema-driven lowering of enum fields.
type stopReason string

const (
	stopReasonBreakpoint stopReason = "breakpoint"
	stopReasonException  stopReason = "exception"
)

// evaluateContext is a union over a plain expression and a hover lookup;
// the active branch is selected by a custom MarshalJSON.
type evaluateContext struct {
	Expression string
	Hover      bool
}

func (c evaluateContext) MarshalJSON() ([]byte, error) {
	if c.Hover {
		return json.Marshal(map[string]string{"hover": c.Expression})
	}

	return json.Marshal(c.Expression)
}

// testArguments exercises the value shapes ToObject must support:
// primitives, enums, optionals, nested structs, unions, and byte slices.
type testArguments struct {
	Name      string          `json:"name"`
	Reason    stopReason      `json:"reason"`
	ThreadID  int64           `json:"threadId"`
	Ratio     float64         `json:"ratio"`
	Verified  bool            `json:"verified"`
	Column    *int            `json:"column"`
	Source    *testSource     `json:"source,omitempty"`
	Context   evaluateContext `json:"context"`
	Checksum  []byte          `json:"checksum,omitempty"`
	Targets   []string        `json:"targets,omitempty"`
}

type testSource struct {
	Path string `json:"path"`
	Line int    `json:"line"`
}

// TestToObject_SupportedShapes tests that a struct covering primitives,
// enums, optionals, nested structs, and union fields lowers into the
// generic form with field names as keys and absent optionals as null.
func TestToObject_SupportedShapes(t *testing.T) {
	args := &testArguments{
		Name:     "main.go",
		Reason:   stopReasonBreakpoint,
		ThreadID: 7,
		Ratio:    0.5,
		Verified: true,
		Column:   nil,
		Source:   &testSource{Path: "/src/main.go", Line: 12},
		Context:  evaluateContext{Expression: "x + y"},
		Checksum: []byte{0xde, 0xad},
		Targets:  []string{"a", "b"},
	}

	obj, err := ToObject(args)
	require.NoError(t, err)

	name, ok := obj.GetString("name")
	require.True(t, ok)
	require.Equal(t, "main.go", name)

	reason, ok := obj.GetString("reason")
	require.True(t, ok)
	require.Equal(t, "breakpoint", reason)

	threadID, ok := obj.GetInt("threadId")
	require.True(t, ok)
	require.Equal(t, int64(7), threadID)

	ratio, ok := obj.Get("ratio")
	require.True(t, ok)
	require.Equal(t, KindFloat, ratio.Kind())

	column, ok := obj.Get("column")
	require.True(t, ok, "absent optional must be present as null")
	require.True(t, column.IsNull())

	source, ok := obj.GetObject("source")
	require.True(t, ok)

	line, ok := source.GetInt("line")
	require.True(t, ok)
	require.Equal(t, int64(12), line)

	context, ok := obj.GetString("context")
	require.True(t, ok, "data-less union branch encodes as its tag value")
	require.Equal(t, "x + y", context)

	checksum, ok := obj.GetString("checksum")
	require.True(t, ok, "byte slices encode as base64 strings")
	require.Equal(t, "3q0=", checksum)

	targets, ok := obj.GetArray("targets")
	require.True(t, ok)
	require.Equal(t, 2, targets.Len())
}

// TestToObject_UnionActiveBranch tests that the data-carrying union
// branch recurses into a nested object.
func TestToObject_UnionActiveBranch(t *testing.T) {
	obj, err := ToObject(&testArguments{
		Context: evaluateContext{Expression: "p", Hover: true},
	})
	require.NoError(t, err)

	context, ok := obj.GetObject("context")
	require.True(t, ok)

	hover, ok := context.GetString("hover")
	require.True(t, ok)
	require.Equal(t, "p", hover)
}

// TestToObject_RejectsNonObjectRoots tests that bare arrays, primitives,
// nil, and unserializable shapes fail fast with ErrNotSerializable.
func TestToObject_RejectsNonObjectRoots(t *testing.T) {
	cases := []struct {
		name  string
		value any
	}{
		{"nil", nil},
		{"bare array", []int{1, 2, 3}},
		{"string", "hello"},
		{"integer", 42},
		{"channel", make(chan int)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ToObject(tc.value)
			require.ErrorIs(t, err, errors.ErrNotSerializable)
		})
	}
}

// TestToObject_PassThrough tests that a pre-built object passes through
// unchanged.
func TestToObject_PassThrough(t *testing.T) {
	obj := NewObject()
	obj.Set("k", String("v"))

	out, err := ToObject(obj)
	require.NoError(t, err)
	require.Same(t, obj, out)
}

// TestObject_PreservesInsertionOrder tests that keys marshal in insertion
// order and round-trip through JSON in the same order.
func TestObject_PreservesInsertionOrder(t *testing.T) {
	obj := NewObject()
	obj.Set("zeta", Int(1))
	obj.Set("alpha", Int(2))
	obj.Set("mid", Int(3))
	obj.Set("zeta", Int(4)) // overwrite keeps position

	data, err := obj.MarshalJSON()
	require.NoError(t, err)
	require.JSONEq(t, `{"zeta":4,"alpha":2,"mid":3}`, string(data))
	require.Equal(t, `{"zeta":4,"alpha":2,"mid":3}`, string(data))

	round := NewObject()
	require.NoError(t, round.UnmarshalJSON(data))

	var keys []string
	for key := range round.All() {
		keys = append(keys, key)
	}

	require.Equal(t, []string{"zeta", "alpha", "mid"}, keys)
}

// TestValue_IntFloatDistinction tests that decoding keeps integers and
// floats in separate variants.
func TestValue_IntFloatDistinction(t *testing.T) {
	var v Value
	require.NoError(t, v.UnmarshalJSON([]byte(`{"i":3,"f":3.5,"big":9007199254740993}`)))

	obj, ok := v.Object()
	require.True(t, ok)

	i, ok := obj.GetInt("i")
	require.True(t, ok)
	require.Equal(t, int64(3), i)

	f, ok := obj.Get("f")
	require.True(t, ok)
	require.Equal(t, KindFloat, f.Kind())

	// Integers beyond float53 precision must survive exactly.
	big, ok := obj.GetInt("big")
	require.True(t, ok)
	require.Equal(t, int64(9007199254740993), big)
}

// TestInjectIntoAncestor tests dotted-path injection into nested objects.
func TestInjectIntoAncestor(t *testing.T) {
	var root Value
	require.NoError(t, root.UnmarshalJSON([]byte(`{"arguments":{"env":{"inner":1}}}`)))

	obj, _ := root.Object()

	require.NoError(t, InjectIntoAncestor(obj, "arguments.env", "PATH", String("/usr/bin")))

	args, _ := obj.GetObject("arguments")
	env, _ := args.GetObject("env")

	path, ok := env.GetString("PATH")
	require.True(t, ok)
	require.Equal(t, "/usr/bin", path)
}

// TestInjectIntoAncestor_EmptyPathTargetsRoot tests the root injection case.
func TestInjectIntoAncestor_EmptyPathTargetsRoot(t *testing.T) {
	obj := NewObject()

	require.NoError(t, InjectIntoAncestor(obj, "", "k", Int(1)))

	k, ok := obj.GetInt("k")
	require.True(t, ok)
	require.Equal(t, int64(1), k)
}

// TestInjectIntoAncestor_MissingAncestor tests that a missing path segment
// fails ErrAncestorDoesNotExist.
func TestInjectIntoAncestor_MissingAncestor(t *testing.T) {
	obj := NewObject()
	obj.Set("arguments", ObjectValue(NewObject()))

	err := InjectIntoAncestor(obj, "arguments.env", "k", Int(1))
	require.ErrorIs(t, err, errors.ErrAncestorDoesNotExist)
}

// TestInjectIntoAncestor_NonObjectAncestor tests that a path segment
// resolving to a non-object fails ErrAncestorIsNotAnObject.
func TestInjectIntoAncestor_NonObjectAncestor(t *testing.T) {
	obj := NewObject()
	obj.Set("arguments", String("oops"))

	err := InjectIntoAncestor(obj, "arguments", "k", Int(1))
	require.ErrorIs(t, err, errors.ErrAncestorIsNotAnObject)
}

// TestMerge tests the root-level bulk overwrite.
func TestMerge(t *testing.T) {
	obj := NewObject()
	obj.Set("a", Int(1))
	obj.Set("b", Int(2))

	extra := NewObject()
	extra.Set("b", Int(20))
	extra.Set("c", Int(30))

	Merge(obj, extra)

	b, _ := obj.GetInt("b")
	require.Equal(t, int64(20), b)

	c, _ := obj.GetInt("c")
	require.Equal(t, int64(30), c)

	require.Equal(t, 3, obj.Len())

	// Nil extra is a no-op.
	Merge(obj, nil)
	require.Equal(t, 3, obj.Len())
}

// TestDeepClone_RoundTrip tests that to_object followed by deep_clone
// yields a value deep-equal to the original for nested shapes.
func TestDeepClone_RoundTrip(t *testing.T) {
	var original Value
	require.NoError(t, original.UnmarshalJSON([]byte(
		`{"s":"text","n":null,"i":-4,"f":2.25,"b":true,`+
			`"o":{"nested":["x",{"deep":1}]},"a":[1,"two",false,null]}`)))

	clone := DeepClone(CopyString, original)

	originalJSON, err := original.MarshalJSON()
	require.NoError(t, err)

	cloneJSON, err := clone.MarshalJSON()
	require.NoError(t, err)

	require.Equal(t, string(originalJSON), string(cloneJSON))
}

// TestDeepClone_SharesNoStorage tests that mutating a cloned object does
// not affect the original.
func TestDeepClone_SharesNoStorage(t *testing.T) {
	obj := NewObject()
	inner := NewObject()
	inner.Set("k", String("v"))
	obj.Set("inner", ObjectValue(inner))

	clone := DeepClone(CopyString, ObjectValue(obj))

	cloneObj, _ := clone.Object()
	cloneInner, _ := cloneObj.GetObject("inner")
	cloneInner.Set("k", String("changed"))

	v, _ := inner.GetString("k")
	require.Equal(t, "v", v)
}

// TestDeepClone_UsesStringStrategy tests that every string copy, keys
// included, flows through the supplied cloner.
func TestDeepClone_UsesStringStrategy(t *testing.T) {
	var original Value
	require.NoError(t, original.UnmarshalJSON([]byte(`{"key":"value","arr":["s"]}`)))

	var seen []string

	DeepClone(func(s string) string {
		seen = append(seen, s)

		return s
	}, original)

	require.ElementsMatch(t, []string{"key", "value", "arr", "s"}, seen)
}
