package port

import (
	"errors"
	"fmt"

	"github.com/bnema/nativeview/internal/domain/entity"
)

var (
	// ErrEngineUnavailable means no engine can run on this machine. Callers show a fallback.
	ErrEngineUnavailable = errors.New("nativeview: engine unavailable")
	// ErrLibraryNotFound means the native library could not be loaded.
	ErrLibraryNotFound = errors.New("nativeview: native library not found")
	// ErrEnvironmentTimeout means the engine environment never became ready.
	ErrEnvironmentTimeout = errors.New("nativeview: engine environment timeout")
	// ErrInvalidHandle means the handle is zero, unknown or destroyed.
	ErrInvalidHandle = errors.New("nativeview: invalid handle")
	// ErrNativeCallFailure means a call across the native boundary failed.
	ErrNativeCallFailure = errors.New("nativeview: native call failed")
	// ErrUnsupported means the engine does not provide the requested operation.
	ErrUnsupported = errors.New("nativeview: operation not supported by engine")
)

// NativeCallError records a failed call on a specific view.
type NativeCallError struct {
	Op     string
	Handle entity.WebViewHandle
	Err    error
}

func (e *NativeCallError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("native call %s on %s failed", e.Op, e.Handle)
	}
	return fmt.Sprintf("native call %s on %s: %v", e.Op, e.Handle, e.Err)
}

func (e *NativeCallError) Unwrap() error { return e.Err }

// Is matches ErrNativeCallFailure.
func (e *NativeCallError) Is(target error) bool {
	return target == ErrNativeCallFailure
}

// NewNativeCallError wraps err unless it already is a NativeCallError.
func NewNativeCallError(op string, h entity.WebViewHandle, err error) error {
	if err == nil {
		return nil
	}
	var existing *NativeCallError
	if errors.As(err, &existing) {
		return err
	}
	return &NativeCallError{Op: op, Handle: h, Err: err}
}

// LibraryError describes a native library that could not be loaded, with a
// remediation hint for the user.
type LibraryError struct {
	Path        string
	Hint        string
	DownloadURL string
	Err         error
}

func (e *LibraryError) Error() string {
	msg := "native library not found"
	if e.Path != "" {
		msg += ": " + e.Path
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.Hint != "" {
		msg += " (" + e.Hint + ")"
	}
	return msg
}

func (e *LibraryError) Unwrap() error { return e.Err }

// Is matches ErrLibraryNotFound.
func (e *LibraryError) Is(target error) bool {
	return target == ErrLibraryNotFound
}

// EnvironmentError reports an environment that failed to start or never became ready.
type EnvironmentError struct {
	Attempts int
	Err      error
}

func (e *EnvironmentError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("engine environment not ready after %d checks: %v", e.Attempts, e.Err)
	}
	return fmt.Sprintf("engine environment not ready after %d checks", e.Attempts)
}

func (e *EnvironmentError) Unwrap() error { return e.Err }

// Is matches ErrEnvironmentTimeout.
func (e *EnvironmentError) Is(target error) bool {
	return target == ErrEnvironmentTimeout
}

// IsFatal reports whether err ends the bridge instance that produced it.
// An environment timeout is handled exactly like a missing library.
func IsFatal(err error) bool {
	return errors.Is(err, ErrLibraryNotFound) || errors.Is(err, ErrEnvironmentTimeout)
}
