package protocol

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestModuleID_UnmarshalJSON tests that numeric and string module ids
// both decode to the canonical string form.
func TestModuleID_UnmarshalJSON(t *testing.T) {
	var fromNumber, fromString, fromLarge ModuleID

	require.NoError(t, json.Unmarshal([]byte(`42`), &fromNumber))
	require.Equal(t, ModuleID("42"), fromNumber)

	require.NoError(t, json.Unmarshal([]byte(`"libc.so.6"`), &fromString))
	require.Equal(t, ModuleID("libc.so.6"), fromString)

	// json.Number keeps large ids exact.
	require.NoError(t, json.Unmarshal([]byte(`9007199254740993`), &fromLarge))
	require.Equal(t, ModuleID("9007199254740993"), fromLarge)

	var id ModuleID
	require.Error(t, json.Unmarshal([]byte(`true`), &id))
}

// TestState_String tests the diagnostic names.
func TestState_String(t *testing.T) {
	require.Equal(t, "not_started", StateNotStarted.String())
	require.Equal(t, "launched", StateLaunched.String())
	require.Equal(t, "attached", StateAttached.String())
	require.Equal(t, "terminated", StateTerminated.String())
	require.Equal(t, "state(99)", State(99).String())
}
