// Package errors provides centralized error definitions for the application.
// Errors are organized by domain to avoid duplication and provide consistent naming.
//
// Naming conventions:
//   - Exported errors (Err*): Use for errors that callers need to check with errors.Is
//   - All sentinel errors should be defined as variables, not inline errors.New calls
//   - Use fmt.Errorf with %w to wrap sentinel errors with context
package errors

import "errors"

// Channel and entity resolution errors.
var (
	// ErrResolution indicates a channel handle could not be turned into a channel.
	// It wraps the more specific ErrChannelNotFound or ErrNotAChannel.
	ErrResolution = errors.New("channel resolution failed")

	// ErrChannelNotFound indicates a channel could not be found.
	ErrChannelNotFound = errors.New("channel not found")

	// ErrNotAChannel indicates the entity is not a channel type.
	ErrNotAChannel = errors.New("entity is not a channel")

	// ErrNoParticipantCount indicates the full channel carried no participant count.
	ErrNoParticipantCount = errors.New("channel has no participant count")
)

// Response and parsing errors.
var (
	// ErrEmptyResponse indicates an empty response was received.
	ErrEmptyResponse = errors.New("empty response")

	// ErrUnexpectedType indicates an unexpected type was encountered.
	ErrUnexpectedType = errors.New("unexpected type")
)

// Upstream errors.
var (
	// ErrRateLimited indicates rate limiting was triggered.
	ErrRateLimited = errors.New("rate limited")

	// ErrTransient indicates a retryable upstream API failure.
	ErrTransient = errors.New("transient upstream error")

	// ErrFloodWait indicates Telegram asked the client to back off.
	ErrFloodWait = errors.New("flood wait")
)

// Configuration errors.
var (
	// ErrMissingConfig indicates a required setting for the selected mode is empty.
	ErrMissingConfig = errors.New("missing required config")

	// ErrUnknownSink indicates REPORT_SINK names no known publisher.
	ErrUnknownSink = errors.New("unknown report sink")
)
