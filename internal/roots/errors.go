package roots

import "errors"

// Domain errors for root solving.
var (
	// ErrInvalidBracket indicates the interval is inverted, has no sign
	// change, or evaluates to a non-finite value at an endpoint.
	ErrInvalidBracket = errors.New("roots: invalid bracket")

	// ErrUnknownMethod indicates an unregistered method name.
	ErrUnknownMethod = errors.New("roots: unknown method")
)
