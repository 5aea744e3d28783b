package glsl

import (
	"errors"
	"fmt"
)

// Sentinel errors wrapped by *Error.
var (
	// ErrSyntax reports malformed source.
	ErrSyntax = errors.New("glsl: syntax error")
	// ErrType reports an ill-typed expression or declaration.
	ErrType = errors.New("glsl: type error")
	// ErrUndefined reports a reference to an unknown identifier or function.
	ErrUndefined = errors.New("glsl: undefined")
	// ErrUnsupported reports a valid construct this compiler does not handle.
	ErrUnsupported = errors.New("glsl: unsupported")
	// ErrRecursion reports a direct or indirect recursive call.
	ErrRecursion = errors.New("glsl: recursion")
	// ErrExport reports an export that does not resolve.
	ErrExport = errors.New("glsl: bad export")
	// ErrEmptySource reports a translation unit with no declarations.
	ErrEmptySource = errors.New("glsl: empty source")
)

// Error is a positioned compile error.
type Error struct {
	Pos Pos
	Msg string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d:%d: %s: %s", e.Pos.Line, e.Pos.Col, e.Err, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

func errorf(pos Pos, kind error, format string, args ...any) *Error {
	return &Error{Pos: pos, Msg: fmt.Sprintf(format, args...), Err: kind}
}

// Pos is a 1-based line and column in the source.
type Pos struct {
	Line, Col int
}
