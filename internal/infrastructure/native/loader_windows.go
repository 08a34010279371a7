//go:build windows

package native

import (
	"github.com/ebitengine/purego"
	"golang.org/x/sys/windows"
)

func openLibrary(path string) (uintptr, error) {
	h, err := windows.LoadLibrary(path)
	if err != nil {
		return 0, err
	}
	return uintptr(h), nil
}

func lookupSymbol(handle uintptr, name string) (uintptr, error) {
	return windows.GetProcAddress(windows.Handle(handle), name)
}

func closeLibrary(handle uintptr) error {
	return windows.FreeLibrary(windows.Handle(handle))
}

func registerFunc(fptr any, sym uintptr) {
	purego.RegisterFunc(fptr, sym)
}

func newCallback(fn any) uintptr {
	return purego.NewCallback(fn)
}

func platformHint() string {
	return "install the Microsoft Edge WebView2 Runtime and place nativeview.dll next to the executable"
}
