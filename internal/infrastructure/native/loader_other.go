//go:build !(darwin || freebsd || linux || windows)

package native

import "github.com/bnema/nativeview/internal/application/port"

func openLibrary(string) (uintptr, error) { return 0, port.ErrUnsupported }

func lookupSymbol(uintptr, string) (uintptr, error) { return 0, port.ErrUnsupported }

func closeLibrary(uintptr) error { return nil }

func registerFunc(any, uintptr) {}

func newCallback(any) uintptr { return 0 }

func platformHint() string { return "native webviews are not supported on this platform" }
