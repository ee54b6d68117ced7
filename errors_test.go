package jqcore

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorIsMatchesByKind(t *testing.T) {
	var err error = &Error{Kind: ErrTypeK, Want: KindInt, Got: Str("x")}
	assert.True(t, errors.Is(err, ErrType))
	assert.False(t, errors.Is(err, ErrIndex))
}

func TestErrorUnwrapExposesCause(t *testing.T) {
	cause := &Error{Kind: ErrStringK, Msg: "inner"}
	wrapped := &Error{Kind: ErrIndexK, Msg: "outer", Cause: cause}
	assert.Equal(t, cause, errors.Unwrap(wrapped))
	assert.True(t, errors.Is(wrapped, ErrIndex))
}

func TestErrorRenderVariants(t *testing.T) {
	typeErr := &Error{Kind: ErrTypeK, Want: KindStr, Got: Int(1)}
	assert.Equal(t, "string expected, got number", typeErr.Render())

	valueErr := valErr(Str("boom"))
	assert.Equal(t, `"boom"`, valueErr.Error())

	parseErr := &Error{Kind: ErrParseK, Msg: "unexpected end of input"}
	assert.Contains(t, parseErr.Render(), "unexpected end of input")
}

func TestArithErrMessage(t *testing.T) {
	err := arithErr("added", Int(1), Str("x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot be added")
}

func TestStrErrFormats(t *testing.T) {
	err := strErr("bad thing: %d", 42)
	assert.Equal(t, "bad thing: 42", err.Error())
}
