package port

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNativeCallError_Is(t *testing.T) {
	cause := errors.New("boom")
	err := NewNativeCallError("load_url", 3, cause)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNativeCallFailure)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "load_url")
	assert.Contains(t, err.Error(), "wv-3")
}

func TestNewNativeCallError_KeepsExisting(t *testing.T) {
	inner := &NativeCallError{Op: "attach", Handle: 1, Err: errors.New("x")}
	err := NewNativeCallError("outer", 2, fmt.Errorf("ctx: %w", inner))

	var nce *NativeCallError
	require.True(t, errors.As(err, &nce))
	assert.Equal(t, "attach", nce.Op)
	assert.NoError(t, NewNativeCallError("noop", 1, nil))
}

func TestLibraryError(t *testing.T) {
	err := error(&LibraryError{
		Path:        "/opt/libnativeview.so",
		Hint:        "install the runtime",
		DownloadURL: "https://example.com/runtime",
		Err:         errors.New("no such file"),
	})

	assert.ErrorIs(t, err, ErrLibraryNotFound)
	assert.True(t, IsFatal(err))
	assert.Contains(t, err.Error(), "/opt/libnativeview.so")
	assert.Contains(t, err.Error(), "install the runtime")
}

func TestEnvironmentError(t *testing.T) {
	err := fmt.Errorf("create: %w", &EnvironmentError{Attempts: 100})

	assert.ErrorIs(t, err, ErrEnvironmentTimeout)
	assert.True(t, IsFatal(err))
	assert.False(t, IsFatal(ErrInvalidHandle))
	assert.False(t, IsFatal(ErrEngineUnavailable))
}

func TestInlineDispatcher(t *testing.T) {
	ran := false
	InlineDispatcher.Dispatch(func() { ran = true })
	assert.True(t, ran)
}
