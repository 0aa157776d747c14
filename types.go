package dapsdk

import (
	"github.com/wagiedev/dap-sdk-go/internal/protocol"
	"github.com/wagiedev/dap-sdk-go/internal/wire"
)

// Re-export protocol types from internal package.

// State is the session lifecycle state.
type State = protocol.State

// Session lifecycle states.
const (
	StateNotStarted = protocol.StateNotStarted
	StateLaunched   = protocol.StateLaunched
	StateAttached   = protocol.StateAttached
	StateTerminated = protocol.StateTerminated
)

// EndMode selects how EndSession shuts the debuggee down.
type EndMode = protocol.EndMode

// End modes.
const (
	EndModeTerminate  = protocol.EndModeTerminate
	EndModeDisconnect = protocol.EndModeDisconnect
)

// InitializeArguments are the arguments of the initialize request.
type InitializeArguments = protocol.InitializeArguments

// ClientCapabilities is the closed set of client capability bits.
type ClientCapabilities = protocol.ClientCapabilities

// Capabilities is the adapter capability set from the initialize response.
type Capabilities = protocol.Capabilities

// ExceptionBreakpointsFilter is one adapter-declared exception filter.
type ExceptionBreakpointsFilter = protocol.ExceptionBreakpointsFilter

// ColumnDescriptor is one adapter-declared module column.
type ColumnDescriptor = protocol.ColumnDescriptor

// BreakpointMode is one adapter-declared breakpoint mode.
type BreakpointMode = protocol.BreakpointMode

// LaunchArguments are the adapter-independent launch arguments.
type LaunchArguments = protocol.LaunchArguments

// TerminateArguments are the arguments of the terminate request.
type TerminateArguments = protocol.TerminateArguments

// DisconnectArguments are the arguments of the disconnect request.
type DisconnectArguments = protocol.DisconnectArguments

// Thread is one thread of the debuggee.
type Thread = protocol.Thread

// Module is one module loaded by the debuggee.
type Module = protocol.Module

// ModuleID is a module identifier in canonical string form.
type ModuleID = protocol.ModuleID

// Re-export the generic wire representation used for extra fields and
// event payloads.

// Value is one node of the generic wire tree.
type Value = wire.Value

// Object is an insertion-ordered mapping from string keys to values.
type Object = wire.Object

// Array is an ordered sequence of values.
type Array = wire.Array

// Kind identifies the variant held by a Value.
type Kind = wire.Kind

// Value kinds.
const (
	KindNull   = wire.KindNull
	KindString = wire.KindString
	KindInt    = wire.KindInt
	KindFloat  = wire.KindFloat
	KindBool   = wire.KindBool
	KindObject = wire.KindObject
	KindArray  = wire.KindArray
)

// NewObject creates an empty insertion-ordered object.
func NewObject() *Object { return wire.NewObject() }

// NewArray creates an array holding the given values.
func NewArray(items ...Value) *Array { return wire.NewArray(items...) }

// Null returns the null value.
func Null() Value { return wire.Null() }

// String returns a string value.
func String(s string) Value { return wire.String(s) }

// Int returns an integer value.
func Int(i int64) Value { return wire.Int(i) }

// Float returns a floating-point value.
func Float(f float64) Value { return wire.Float(f) }

// Bool returns a boolean value.
func Bool(b bool) Value { return wire.Bool(b) }

// ObjectValue wraps an object as a value.
func ObjectValue(o *Object) Value { return wire.ObjectValue(o) }

// ArrayValue wraps an array as a value.
func ArrayValue(a *Array) Value { return wire.ArrayValue(a) }
