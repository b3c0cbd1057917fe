// Package arborerrors implements the typed error taxonomy of the error
// handling design, adapted from the teacher's internal/errors builder-
// style *Error types down to the five kinds named there: InputMissing,
// ParseError, ProtocolError, ResourceError, SubscriberLag.
package arborerrors

import (
	"fmt"
	"time"
)

// Kind identifies which of the five taxonomy entries an error belongs
// to, independent of its Go type.
type Kind string

const (
	KindInputMissing  Kind = "input_missing"
	KindParse         Kind = "parse"
	KindProtocol      Kind = "protocol"
	KindResource      Kind = "resource"
	KindSubscriberLag Kind = "subscriber_lag"
)

// InputMissingError: node id not found, file not tracked, snapshot
// absent. Surfaced to the caller; never retried.
type InputMissingError struct {
	What       string // "node", "file", "snapshot"
	Identifier string
	Underlying error
	Timestamp  time.Time
}

// NewInputMissingError creates an InputMissingError for the given kind
// of missing thing and its identifier.
func NewInputMissingError(what, identifier string) *InputMissingError {
	return &InputMissingError{What: what, Identifier: identifier, Timestamp: time.Now()}
}

// WithUnderlying attaches a wrapped cause.
func (e *InputMissingError) WithUnderlying(err error) *InputMissingError {
	e.Underlying = err
	return e
}

func (e *InputMissingError) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("%s %q not found: %v", e.What, e.Identifier, e.Underlying)
	}
	return fmt.Sprintf("%s %q not found", e.What, e.Identifier)
}

func (e *InputMissingError) Unwrap() error { return e.Underlying }

// Code maps to the JSON-RPC error code the protocol layer should use.
func (e *InputMissingError) Code() int { return -32001 }

// ParseError: the extractor could not tokenize a file. Logged at warn;
// that file's subgraph is left empty (or removed); the indexer
// continues.
type ParseError struct {
	FilePath   string
	Language   string
	Underlying error
	Timestamp  time.Time
}

// NewParseError creates a ParseError for path in the given language.
func NewParseError(path, language string, err error) *ParseError {
	return &ParseError{FilePath: path, Language: language, Underlying: err, Timestamp: time.Now()}
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error in %s (%s): %v", e.FilePath, e.Language, e.Underlying)
}

func (e *ParseError) Unwrap() error { return e.Underlying }

func (e *ParseError) Code() int { return -32002 }

// ProtocolError: malformed JSON-RPC. The caller replies with the wire
// code and keeps the connection open.
type ProtocolError struct {
	Method     string
	Reason     string
	Underlying error
	Timestamp  time.Time
}

// NewProtocolError creates a ProtocolError for the given method/reason.
// Pass a blank method when the request could not be parsed far enough
// to identify one.
func NewProtocolError(method, reason string) *ProtocolError {
	return &ProtocolError{Method: method, Reason: reason, Timestamp: time.Now()}
}

// WithUnderlying attaches a wrapped cause.
func (e *ProtocolError) WithUnderlying(err error) *ProtocolError {
	e.Underlying = err
	return e
}

func (e *ProtocolError) Error() string {
	if e.Method != "" {
		return fmt.Sprintf("protocol error in %q: %s", e.Method, e.Reason)
	}
	return fmt.Sprintf("protocol error: %s", e.Reason)
}

func (e *ProtocolError) Unwrap() error { return e.Underlying }

// Code returns -32700 (parse error) when no method was identified, and
// -32602 (invalid params) otherwise, matching JSON-RPC 2.0 conventions.
func (e *ProtocolError) Code() int {
	if e.Method == "" {
		return -32700
	}
	return -32602
}

// ResourceError: socket accept failure, lock poisoning, channel closed.
// Logged at error; the accept loop retries on transient errors,
// terminates on fatal ones.
type ResourceError struct {
	Resource    string
	Operation   string
	Underlying  error
	Timestamp   time.Time
	recoverable bool
}

// NewResourceError creates a ResourceError for the given resource and
// operation, defaulting to recoverable (transient); call
// WithRecoverable(false) for fatal conditions.
func NewResourceError(resource, op string, err error) *ResourceError {
	return &ResourceError{Resource: resource, Operation: op, Underlying: err, Timestamp: time.Now(), recoverable: true}
}

// WithRecoverable overrides the default recoverable classification.
func (e *ResourceError) WithRecoverable(recoverable bool) *ResourceError {
	e.recoverable = recoverable
	return e
}

// Recoverable reports whether the accept/processing loop should retry
// rather than terminate.
func (e *ResourceError) Recoverable() bool { return e.recoverable }

func (e *ResourceError) Error() string {
	return fmt.Sprintf("resource error: %s %s failed: %v", e.Resource, e.Operation, e.Underlying)
}

func (e *ResourceError) Unwrap() error { return e.Underlying }

func (e *ResourceError) Code() int { return -32003 }

// SubscriberLagError: a broadcast subscriber fell behind. Logged; the
// subscriber observes a Lagged signal; the writer is never blocked on
// it.
type SubscriberLagError struct {
	SubscriberID string
	Dropped      int
	Timestamp    time.Time
}

// NewSubscriberLagError creates a SubscriberLagError reporting how many
// messages were dropped for the given subscriber.
func NewSubscriberLagError(subscriberID string, dropped int) *SubscriberLagError {
	return &SubscriberLagError{SubscriberID: subscriberID, Dropped: dropped, Timestamp: time.Now()}
}

func (e *SubscriberLagError) Error() string {
	return fmt.Sprintf("subscriber %s lagged, dropped %d messages", e.SubscriberID, e.Dropped)
}

func (e *SubscriberLagError) Code() int { return -32004 }

// Coded is implemented by every taxonomy error, letting the protocol
// layer map a Go error straight to a wire error code without a
// parallel type switch.
type Coded interface {
	error
	Code() int
}

var (
	_ Coded = (*InputMissingError)(nil)
	_ Coded = (*ParseError)(nil)
	_ Coded = (*ProtocolError)(nil)
	_ Coded = (*ResourceError)(nil)
	_ Coded = (*SubscriberLagError)(nil)
)
