package db

import "fmt"

// --------------------------------------------------------------------------
// Helper Types
// --------------------------------------------------------------------------

type Implementation string

const (
	ImplMemory Implementation = "memory"
	ImplFile   Implementation = "file"
	ImplBolt   Implementation = "bolt"
)

// Entry is a single key-value pair as returned by Scan.
type Entry struct {
	Key   string
	Value string
}

// --------------------------------------------------------------------------
// Store Interface
// --------------------------------------------------------------------------

// Factory is a function type that creates a new OrderedKV instance.
// This is used to abstract the creation of the backend from the code using it.
type Factory func() (OrderedKV, error)

// OrderedKV defines the contract every storage backend must satisfy.
// Keys are opaque strings compared bytewise; values are opaque strings the
// backend never interprets.
//
// Scan gives no ordering guarantee on its result. Backends built on unordered
// maps may return entries in any order, so callers needing key order must
// sort after scanning.
type OrderedKV interface {
	// Put inserts or updates a key-value pair. An empty key is rejected
	// with ErrCInvalidKey.
	Put(key, value string) (err error)
	// Get returns the value for a key. The boolean return value indicates
	// whether a value for the key was found. An empty key is rejected with
	// ErrCInvalidKey.
	Get(key string) (value string, loaded bool, err error)
	// Delete removes a key-value pair. Deleting a missing key is a no-op.
	// An empty key is rejected with ErrCInvalidKey.
	Delete(key string) (err error)
	// Keys returns all keys currently in the store, in no particular order.
	Keys() (keys []string, err error)
	// Scan returns every entry whose key k satisfies start <= k < end under
	// lexicographic byte comparison. Empty bounds are rejected with
	// ErrCInvalidKey. The result order is unspecified.
	Scan(start, end string) (entries []Entry, err error)
	// Clear removes all entries.
	Clear() (err error)
	// Close releases any resources held by the backend.
	Close() (err error)
}

// --------------------------------------------------------------------------
// Custom Error Type
// --------------------------------------------------------------------------

// Error is a custom error type that wraps an error code (of type ErrCode)
// and an error message.
type Error struct {
	Code ErrCode // The error code
	Msg  string  // The error message
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("KVError (code %s): %s", e.Code, e.Msg)
}

// NewError creates a new Error with the given code and message.
func NewError(code ErrCode, msg string) *Error {
	return &Error{
		Code: code,
		Msg:  msg,
	}
}

// NewErrorf creates a new Error with the given code and a formatted message.
func NewErrorf(code ErrCode, format string, args ...interface{}) *Error {
	return NewError(code, fmt.Sprintf(format, args...))
}

// CodeOf extracts the error code from an error. Errors that are not of type
// *Error report ErrCInternal.
func CodeOf(err error) ErrCode {
	if err == nil {
		return ErrCNone
	}
	if e, ok := err.(*Error); ok {
		return e.Code
	}
	return ErrCInternal
}

// --------------------------------------------------------------------------
// Error Codes
// --------------------------------------------------------------------------

type ErrCode uint64

const (
	ErrCNone          ErrCode = iota // 0: No error.
	ErrCInvalidKey                   // 1: An empty key was supplied to a store operation.
	ErrCInvalidValue                 // 2: A malformed value (year-month tag, date, ...) was supplied.
	ErrCNotFound                     // 3: A point lookup missed.
	ErrCSerialization                // 4: Payload encoding/decoding failed, including corrupt snapshots.
	ErrCIO                           // 5: The backend hit an I/O failure.
	ErrCInternal                     // 6: Anything else.
)

func (c ErrCode) String() string {
	switch c {
	case ErrCNone:
		return "None"
	case ErrCInvalidKey:
		return "InvalidKey"
	case ErrCInvalidValue:
		return "InvalidValue"
	case ErrCNotFound:
		return "NotFound"
	case ErrCSerialization:
		return "SerializationError"
	case ErrCIO:
		return "IoError"
	case ErrCInternal:
		return "InternalError"
	default:
		return "Unknown"
	}
}
