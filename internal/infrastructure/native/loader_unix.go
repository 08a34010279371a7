//go:build darwin || freebsd || linux

package native

import (
	"runtime"

	"github.com/ebitengine/purego"
)

func openLibrary(path string) (uintptr, error) {
	return purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_LOCAL)
}

func lookupSymbol(handle uintptr, name string) (uintptr, error) {
	return purego.Dlsym(handle, name)
}

func closeLibrary(handle uintptr) error {
	return purego.Dlclose(handle)
}

func registerFunc(fptr any, sym uintptr) {
	purego.RegisterFunc(fptr, sym)
}

func newCallback(fn any) uintptr {
	return purego.NewCallback(fn)
}

func platformHint() string {
	if runtime.GOOS == "darwin" {
		return "install libnativeview.dylib next to the executable or set " + EnvLibraryPath
	}
	return "install libnativeview.so in the library path or set " + EnvLibraryPath
}
