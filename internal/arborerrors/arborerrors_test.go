package arborerrors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInputMissingError(t *testing.T) {
	err := NewInputMissingError("node", "foo.go:Bar")
	assert.Equal(t, `node "foo.go:Bar" not found`, err.Error())
	assert.Equal(t, -32001, err.Code())
	assert.Nil(t, err.Unwrap())

	wrapped := errors.New("lookup failed")
	err = err.WithUnderlying(wrapped)
	assert.ErrorIs(t, err, wrapped)
}

func TestParseError(t *testing.T) {
	cause := errors.New("unexpected token")
	err := NewParseError("main.go", "go", cause)
	assert.Contains(t, err.Error(), "main.go")
	assert.Contains(t, err.Error(), "go")
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, -32002, err.Code())
}

func TestProtocolErrorCodes(t *testing.T) {
	unparsed := NewProtocolError("", "malformed json")
	assert.Equal(t, -32700, unparsed.Code())

	badParams := NewProtocolError("discover", "missing query")
	assert.Equal(t, -32602, badParams.Code())
	assert.Contains(t, badParams.Error(), "discover")
}

func TestResourceErrorRecoverable(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewResourceError("broadcast-socket", "accept", cause)
	assert.True(t, err.Recoverable())

	err = err.WithRecoverable(false)
	assert.False(t, err.Recoverable())
	assert.Equal(t, -32003, err.Code())
}

func TestSubscriberLagError(t *testing.T) {
	err := NewSubscriberLagError("sub-1", 42)
	assert.Contains(t, err.Error(), "sub-1")
	assert.Contains(t, err.Error(), "42")
	assert.Equal(t, -32004, err.Code())
}

func TestAllKindsImplementCoded(t *testing.T) {
	var codeds []Coded = []Coded{
		NewInputMissingError("file", "x"),
		NewParseError("x", "go", errors.New("e")),
		NewProtocolError("m", "r"),
		NewResourceError("r", "op", errors.New("e")),
		NewSubscriberLagError("s", 1),
	}
	for _, c := range codeds {
		assert.NotZero(t, c.Code())
		assert.NotEmpty(t, c.Error())
	}
}
