// Package errors defines the error types used throughout the DAP SDK.
//
// All errors either are sentinel values checked with errors.Is or
// implement the DAPSDKError interface for type-based handling.
package errors
