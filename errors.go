package jqcore

import "fmt"

// ErrKind is the taxonomy from spec section 7: a handful of kinds, not
// Go types, since every kind carries the same rendering/wrapping shape.
type ErrKind uint8

const (
	// ErrValueK is a value thrown by the user, via `error` or `error(v)`.
	ErrValueK ErrKind = iota
	// ErrTypeK is an expected-kind-vs-actual mismatch.
	ErrTypeK
	// ErrIndexK is an unindexable value or an invalid path operation.
	ErrIndexK
	// ErrArithK is an unsupported operand pair for +, -, *, /, %.
	ErrArithK
	// ErrParseK is a fromjson failure.
	ErrParseK
	// ErrStringK is a catch-all message from a builtin.
	ErrStringK
)

// Error is jqcore's single error type. It wraps an optional Cause so
// that errors.Is/errors.As compose across Pipe/Comma boundaries the way
// they would for any other Go error, following the Op+Cause+Unwrap+Is
// shape used for wrapped pipeline-stage errors in the Go ecosystem.
type Error struct {
	Kind ErrKind

	// Val is the thrown value, set only for ErrValueK.
	Val Val
	// Want/Got describe an ErrTypeK mismatch.
	Want ValKind
	Got  Val
	// Msg is a pre-rendered message for ErrIndexK/ErrArithK/ErrParseK/ErrStringK.
	// An ErrTypeK error with a non-empty Msg renders Msg instead of Want/Got.
	Msg string

	Cause error
}

// Sentinels usable with errors.Is; Error.Is matches by Kind so a
// concrete error compares equal to these regardless of its payload.
var (
	ErrType  = &Error{Kind: ErrTypeK}
	ErrIndex = &Error{Kind: ErrIndexK}
	ErrArith = &Error{Kind: ErrArithK}
	ErrParse = &Error{Kind: ErrParseK}
)

func (e *Error) Error() string { return e.Render() }

func (e *Error) Unwrap() error { return e.Cause }

// Is lets errors.Is(err, jqcore.ErrType) succeed for any *Error sharing
// that Kind, matching how sentinel-by-kind comparisons are used for
// wrapped pipeline errors elsewhere in the examples pool.
func (e *Error) Is(target error) bool {
	if other, ok := target.(*Error); ok {
		return e.Kind == other.Kind
	}
	return false
}

// Render produces the human-readable boundary string surfaced to
// callers and logs.
func (e *Error) Render() string {
	switch e.Kind {
	case ErrValueK:
		return e.Val.String()
	case ErrTypeK:
		if e.Msg != "" {
			return e.Msg
		}
		return fmt.Sprintf("%s expected, got %s", e.Want, e.Got.Kind())
	case ErrIndexK:
		if e.Msg != "" {
			return e.Msg
		}
		return "invalid path expression"
	case ErrArithK:
		return e.Msg
	case ErrParseK:
		return fmt.Sprintf("fromjson error: %s", e.Msg)
	case ErrStringK:
		return e.Msg
	default:
		return "unknown error"
	}
}

func valErr(v Val) error { return &Error{Kind: ErrValueK, Val: v} }

func strErr(format string, args ...interface{}) error {
	return &Error{Kind: ErrStringK, Msg: fmt.Sprintf(format, args...)}
}

func arithErr(op string, a, b Val) error {
	return &Error{
		Kind: ErrArithK,
		Msg:  fmt.Sprintf("%s (%s) and %s (%s) cannot be %s", a.Kind(), a.String(), b.Kind(), b.String(), op),
	}
}
