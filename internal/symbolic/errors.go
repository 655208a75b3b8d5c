package symbolic

import (
	"errors"
	"fmt"
)

// ErrUnboundSymbol indicates an expression references a symbol that is
// neither the free variable nor present in the parameter binding.
var ErrUnboundSymbol = errors.New("symbolic: unbound symbol")

// ParseError reports a syntax error and its byte offset in the input.
type ParseError struct {
	Offset int
	Msg    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("symbolic: parse error at offset %d: %s", e.Offset, e.Msg)
}
