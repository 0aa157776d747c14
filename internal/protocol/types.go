package protocol

import (
	"encoding/json"
	"fmt"

	"github.com/wagiedev/dap-sdk-go/internal/wire"
)

// State is the session lifecycle state.
type State int

const (
	// StateNotStarted is the initial state; no debuggee is running.
	StateNotStarted State = iota
	// StateLaunched means a launch request completed successfully.
	StateLaunched
	// StateAttached is reserved for attach support, which is not
	// implemented. Operations that would need it fail explicitly.
	StateAttached
	// StateTerminated means the adapter's output stream ended.
	StateTerminated
)

// String returns the state's name for diagnostics.
func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "not_started"
	case StateLaunched:
		return "launched"
	case StateAttached:
		return "attached"
	case StateTerminated:
		return "terminated"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// EndMode selects how EndSession shuts the debuggee down.
type EndMode string

const (
	// EndModeTerminate gracefully terminates the debuggee.
	EndModeTerminate EndMode = "terminate"
	// EndModeDisconnect detaches from the debuggee.
	EndModeDisconnect EndMode = "disconnect"
)

// InitializeArguments are the arguments of the initialize request.
// The supports* booleans are the client capability bits; the session
// captures them when the request is sent.
type InitializeArguments struct {
	ClientID                      string `json:"clientID,omitempty"`
	ClientName                    string `json:"clientName,omitempty"`
	AdapterID                     string `json:"adapterID"`
	Locale                        string `json:"locale,omitempty"`
	LinesStartAt1                 bool   `json:"linesStartAt1"`
	ColumnsStartAt1               bool   `json:"columnsStartAt1"`
	PathFormat                    string `json:"pathFormat,omitempty"`
	SupportsVariableType          bool   `json:"supportsVariableType,omitempty"`
	SupportsVariablePaging        bool   `json:"supportsVariablePaging,omitempty"`
	SupportsRunInTerminalRequest  bool   `json:"supportsRunInTerminalRequest,omitempty"`
	SupportsMemoryReferences      bool   `json:"supportsMemoryReferences,omitempty"`
	SupportsProgressReporting     bool   `json:"supportsProgressReporting,omitempty"`
	SupportsInvalidatedEvent      bool   `json:"supportsInvalidatedEvent,omitempty"`
	SupportsMemoryEvent           bool   `json:"supportsMemoryEvent,omitempty"`
	SupportsStartDebuggingRequest bool   `json:"supportsStartDebuggingRequest,omitempty"`
	SupportsANSIStyling           bool   `json:"supportsANSIStyling,omitempty"`
}

// ClientCapabilities is the closed set of client capability bits, derived
// once from the outgoing initialize arguments.
type ClientCapabilities struct {
	SupportsVariableType          bool
	SupportsVariablePaging        bool
	SupportsRunInTerminalRequest  bool
	SupportsMemoryReferences      bool
	SupportsProgressReporting     bool
	SupportsInvalidatedEvent      bool
	SupportsMemoryEvent           bool
	SupportsStartDebuggingRequest bool
	SupportsANSIStyling           bool
}

// clientCapabilities extracts the capability bits from initialize arguments.
func clientCapabilities(args *InitializeArguments) ClientCapabilities {
	return ClientCapabilities{
		SupportsVariableType:          args.SupportsVariableType,
		SupportsVariablePaging:        args.SupportsVariablePaging,
		SupportsRunInTerminalRequest:  args.SupportsRunInTerminalRequest,
		SupportsMemoryReferences:      args.SupportsMemoryReferences,
		SupportsProgressReporting:     args.SupportsProgressReporting,
		SupportsInvalidatedEvent:      args.SupportsInvalidatedEvent,
		SupportsMemoryEvent:           args.SupportsMemoryEvent,
		SupportsStartDebuggingRequest: args.SupportsStartDebuggingRequest,
		SupportsANSIStyling:           args.SupportsANSIStyling,
	}
}

// Capabilities is the closed set of adapter capability bits plus the
// adapter-declared auxiliary arrays, derived once from the initialize
// response body.
type Capabilities struct {
	SupportsConfigurationDoneRequest      bool `json:"supportsConfigurationDoneRequest,omitempty"`
	SupportsFunctionBreakpoints           bool `json:"supportsFunctionBreakpoints,omitempty"`
	SupportsConditionalBreakpoints        bool `json:"supportsConditionalBreakpoints,omitempty"`
	SupportsHitConditionalBreakpoints     bool `json:"supportsHitConditionalBreakpoints,omitempty"`
	SupportsEvaluateForHovers             bool `json:"supportsEvaluateForHovers,omitempty"`
	SupportsStepBack                      bool `json:"supportsStepBack,omitempty"`
	SupportsSetVariable                   bool `json:"supportsSetVariable,omitempty"`
	SupportsRestartFrame                  bool `json:"supportsRestartFrame,omitempty"`
	SupportsGotoTargetsRequest            bool `json:"supportsGotoTargetsRequest,omitempty"`
	SupportsStepInTargetsRequest          bool `json:"supportsStepInTargetsRequest,omitempty"`
	SupportsCompletionsRequest            bool `json:"supportsCompletionsRequest,omitempty"`
	SupportsModulesRequest                bool `json:"supportsModulesRequest,omitempty"`
	SupportsRestartRequest                bool `json:"supportsRestartRequest,omitempty"`
	SupportsExceptionOptions              bool `json:"supportsExceptionOptions,omitempty"`
	SupportsValueFormattingOptions        bool `json:"supportsValueFormattingOptions,omitempty"`
	SupportsExceptionInfoRequest          bool `json:"supportsExceptionInfoRequest,omitempty"`
	SupportTerminateDebuggee              bool `json:"supportTerminateDebuggee,omitempty"`
	SupportSuspendDebuggee                bool `json:"supportSuspendDebuggee,omitempty"`
	SupportsDelayedStackTraceLoading      bool `json:"supportsDelayedStackTraceLoading,omitempty"`
	SupportsLoadedSourcesRequest          bool `json:"supportsLoadedSourcesRequest,omitempty"`
	SupportsLogPoints                     bool `json:"supportsLogPoints,omitempty"`
	SupportsTerminateThreadsRequest       bool `json:"supportsTerminateThreadsRequest,omitempty"`
	SupportsSetExpression                 bool `json:"supportsSetExpression,omitempty"`
	SupportsTerminateRequest              bool `json:"supportsTerminateRequest,omitempty"`
	SupportsDataBreakpoints               bool `json:"supportsDataBreakpoints,omitempty"`
	SupportsReadMemoryRequest             bool `json:"supportsReadMemoryRequest,omitempty"`
	SupportsWriteMemoryRequest            bool `json:"supportsWriteMemoryRequest,omitempty"`
	SupportsDisassembleRequest            bool `json:"supportsDisassembleRequest,omitempty"`
	SupportsCancelRequest                 bool `json:"supportsCancelRequest,omitempty"`
	SupportsBreakpointLocationsRequest    bool `json:"supportsBreakpointLocationsRequest,omitempty"`
	SupportsClipboardContext              bool `json:"supportsClipboardContext,omitempty"`
	SupportsSteppingGranularity           bool `json:"supportsSteppingGranularity,omitempty"`
	SupportsInstructionBreakpoints        bool `json:"supportsInstructionBreakpoints,omitempty"`
	SupportsExceptionFilterOptions        bool `json:"supportsExceptionFilterOptions,omitempty"`
	SupportsSingleThreadExecutionRequests bool `json:"supportsSingleThreadExecutionRequests,omitempty"`

	CompletionTriggerCharacters []string                     `json:"completionTriggerCharacters,omitempty"`
	ExceptionBreakpointFilters  []ExceptionBreakpointsFilter `json:"exceptionBreakpointFilters,omitempty"`
	AdditionalModuleColumns     []ColumnDescriptor           `json:"additionalModuleColumns,omitempty"`
	SupportedChecksumAlgorithms []string                     `json:"supportedChecksumAlgorithms,omitempty"`
	BreakpointModes             []BreakpointMode             `json:"breakpointModes,omitempty"`
}

// ExceptionBreakpointsFilter describes one exception filter option the
// adapter offers for the setExceptionBreakpoints request.
type ExceptionBreakpointsFilter struct {
	Filter               string `json:"filter"`
	Label                string `json:"label"`
	Description          string `json:"description,omitempty"`
	Default              bool   `json:"default,omitempty"`
	SupportsCondition    bool   `json:"supportsCondition,omitempty"`
	ConditionDescription string `json:"conditionDescription,omitempty"`
}

// ColumnDescriptor describes one additional module column the adapter
// wants a modules view to render.
type ColumnDescriptor struct {
	AttributeName string `json:"attributeName"`
	Label         string `json:"label"`
	Format        string `json:"format,omitempty"`
	Type          string `json:"type,omitempty"`
	Width         int    `json:"width,omitempty"`
}

// BreakpointMode describes one breakpoint mode the adapter supports.
type BreakpointMode struct {
	Mode        string   `json:"mode"`
	Label       string   `json:"label"`
	Description string   `json:"description,omitempty"`
	AppliesTo   []string `json:"appliesTo"`
}

// LaunchArguments are the adapter-independent arguments of the launch
// request. Adapter-specific settings are supplied through the
// extra-fields mechanism so they never widen this static shape.
type LaunchArguments struct {
	NoDebug bool        `json:"noDebug,omitempty"`
	Restart *wire.Value `json:"__restart,omitempty"`
}

// TerminateArguments are the arguments of the terminate request.
type TerminateArguments struct {
	Restart bool `json:"restart,omitempty"`
}

// DisconnectArguments are the arguments of the disconnect request.
type DisconnectArguments struct {
	Restart           bool `json:"restart,omitempty"`
	TerminateDebuggee bool `json:"terminateDebuggee,omitempty"`
	SuspendDebuggee   bool `json:"suspendDebuggee,omitempty"`
}

// Thread is one thread of the debuggee.
type Thread struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Module is one module loaded by the debuggee.
type Module struct {
	ID             ModuleID `json:"id"`
	Name           string   `json:"name"`
	Path           string   `json:"path,omitempty"`
	IsOptimized    bool     `json:"isOptimized,omitempty"`
	IsUserCode     bool     `json:"isUserCode,omitempty"`
	Version        string   `json:"version,omitempty"`
	SymbolStatus   string   `json:"symbolStatus,omitempty"`
	SymbolFilePath string   `json:"symbolFilePath,omitempty"`
	DateTimeStamp  string   `json:"dateTimeStamp,omitempty"`
	AddressRange   string   `json:"addressRange,omitempty"`
}

// ModuleID is a module identifier. Adapters send either a number or a
// string; both decode to the canonical string form used for
// deduplication.
type ModuleID string

// UnmarshalJSON implements json.Unmarshaler, accepting both encodings.
func (id *ModuleID) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}

		*id = ModuleID(s)

		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("module id must be a number or string: %w", err)
	}

	*id = ModuleID(n.String())

	return nil
}
