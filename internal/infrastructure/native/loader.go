package native

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/bnema/nativeview/internal/application/port"
)

// EnvLibraryPath overrides the library search.
const EnvLibraryPath = "NATIVEVIEW_LIBRARY"

// LoaderConfig locates the native library.
type LoaderConfig struct {
	// Path is an explicit library path; it disables the search.
	Path string
	// SearchDirs are tried before the system loader.
	SearchDirs []string
	// DownloadURL is reported when the library or its runtime is missing.
	DownloadURL string
}

// LibraryName returns the platform file name of the native library.
func LibraryName() string {
	switch runtime.GOOS {
	case "windows":
		return "nativeview.dll"
	case "darwin":
		return "libnativeview.dylib"
	default:
		return "libnativeview.so"
	}
}

type library struct {
	handle uintptr
	path   string
	table  table
}

// candidates lists the paths tried in order. The bare library name comes
// last so the system loader search applies.
func (c LoaderConfig) candidates() []string {
	if c.Path != "" {
		return []string{c.Path}
	}
	if env := os.Getenv(EnvLibraryPath); env != "" {
		return []string{env}
	}

	name := LibraryName()
	var paths []string
	for _, dir := range c.SearchDirs {
		paths = append(paths, filepath.Join(dir, name))
	}
	if exe, err := os.Executable(); err == nil {
		paths = append(paths, filepath.Join(filepath.Dir(exe), name))
	}
	return append(paths, name)
}

// loadLibrary opens the first loadable candidate and binds its table.
func loadLibrary(cfg LoaderConfig) (*library, error) {
	var errs []error
	for _, path := range cfg.candidates() {
		handle, err := openLibrary(path)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", path, err))
			continue
		}

		lib := &library{handle: handle, path: path}
		if err := bindTable(handle, &lib.table); err != nil {
			_ = closeLibrary(handle)
			return nil, &port.LibraryError{
				Path:        path,
				Hint:        "the library is too old or not a nativeview build",
				DownloadURL: cfg.DownloadURL,
				Err:         err,
			}
		}
		return lib, nil
	}

	path := cfg.Path
	if path == "" {
		path = LibraryName()
	}
	return nil, &port.LibraryError{
		Path:        path,
		Hint:        platformHint(),
		DownloadURL: cfg.DownloadURL,
		Err:         errors.Join(errs...),
	}
}

func bindTable(handle uintptr, t *table) error {
	var missing []string
	for _, b := range t.bindings() {
		sym, err := lookupSymbol(handle, b.name)
		if err != nil || sym == 0 {
			if !b.optional {
				missing = append(missing, b.name)
			}
			continue
		}
		registerFunc(b.fptr, sym)
	}
	if len(missing) > 0 {
		return &MissingSymbolsError{Symbols: missing}
	}
	return nil
}

func (l *library) close() error {
	if l == nil || l.handle == 0 {
		return nil
	}
	err := closeLibrary(l.handle)
	l.handle = 0
	return err
}
