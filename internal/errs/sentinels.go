// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import "errors"

// Common sentinels across the client core. Callers match with errors.Is and
// decide how each class is presented to the user.
var (
	// ErrValidation indicates bad local input; the operation never reached the network.
	ErrValidation = errors.New("validation")

	// ErrAuthentication indicates the backend explicitly rejected credentials or a session.
	ErrAuthentication = errors.New("authentication failed")

	// ErrTransport indicates the backend was unreachable or the connection failed mid-request.
	ErrTransport = errors.New("transport failure")

	// ErrProtocol indicates the backend responded, but not in the expected shape
	// or content type (e.g. an HTML error page where JSON was expected).
	ErrProtocol = errors.New("unexpected response")

	// ErrUnknownRole indicates the backend reported a role outside the canonical set.
	ErrUnknownRole = errors.New("unknown role")

	// ErrNoSession indicates a protected call was attempted without a stored session.
	ErrNoSession = errors.New("no active session")
)
