package derrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasCode(t *testing.T) {
	base := New(CodeNotFound, "missing")

	assert.True(t, HasCode(base, CodeNotFound))
	assert.False(t, HasCode(base, CodeConflict))
	assert.False(t, HasCode(errors.New("plain"), CodeNotFound))
	assert.False(t, HasCode(nil, CodeNotFound))

	wrapped := Wrap(base, CodeInternal, "lookup failed")
	assert.True(t, HasCode(wrapped, CodeInternal))
	assert.True(t, HasCode(wrapped, CodeNotFound), "inner codes stay visible through wrapping")

	refmt := fmt.Errorf("context: %w", wrapped)
	assert.True(t, HasCode(refmt, CodeInternal))
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, CodeConflict, CodeOf(New(CodeConflict, "busy")))
	assert.Equal(t, CodeInternal, CodeOf(errors.New("plain")))

	wrapped := Wrap(New(CodeNotFound, "missing"), CodeUnavailable, "backend down")
	assert.Equal(t, CodeUnavailable, CodeOf(wrapped), "outermost code wins")
}

func TestWrapNilReturnsNil(t *testing.T) {
	assert.NoError(t, Wrap(nil, CodeInternal, "ignored"))
}

func TestErrorStringIncludesCause(t *testing.T) {
	err := Wrap(errors.New("connection refused"), CodeUnavailable, "store unreachable")
	assert.Contains(t, err.Error(), "unavailable")
	assert.Contains(t, err.Error(), "connection refused")
}
