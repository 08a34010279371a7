// Package native drives a native webview through a flat C function table
// loaded at runtime with purego. No cgo is involved; the shared library
// exports the nativeview_* symbols below.
package native

import "fmt"

// Symbol names exported by the native library.
const (
	symCreate                = "nativeview_create"
	symCreateWithSettings    = "nativeview_create_with_settings"
	symDestroy               = "nativeview_destroy"
	symAttach                = "nativeview_attach"
	symSetBounds             = "nativeview_set_bounds"
	symSetVisible            = "nativeview_set_visible"
	symLoadURL               = "nativeview_load_url"
	symLoadHTML              = "nativeview_load_html"
	symGoBack                = "nativeview_go_back"
	symGoForward             = "nativeview_go_forward"
	symReload                = "nativeview_reload"
	symStopLoading           = "nativeview_stop_loading"
	symCanGoBack             = "nativeview_can_go_back"
	symCanGoForward          = "nativeview_can_go_forward"
	symIsLoading             = "nativeview_is_loading"
	symGetProgress           = "nativeview_get_progress"
	symGetCurrentURL         = "nativeview_get_current_url"
	symGetTitle              = "nativeview_get_title"
	symEvaluateScript        = "nativeview_evaluate_script"
	symSetNavigationCallback = "nativeview_set_navigation_callback"
	symFreeString            = "nativeview_free_string"

	symSetBoundsFlipped   = "nativeview_set_bounds_flipped"
	symInitEnvironment    = "nativeview_init_environment"
	symIsEnvironmentReady = "nativeview_is_environment_ready"
	symGetVersion         = "nativeview_get_version"
	symContainerHeight    = "nativeview_get_container_height"
	symDetach             = "nativeview_detach"
	symNeedsForceDisplay  = "nativeview_needs_force_display"
	symSetUserAgent       = "nativeview_set_user_agent"
	symSetAlpha           = "nativeview_set_alpha"
	symBringToFront       = "nativeview_bring_to_front"
	symSendToBack         = "nativeview_send_to_back"
	symSetCrashCallback   = "nativeview_set_crash_callback"
)

// table is the Go view of the native function table. Bounds are passed as
// int32 and progress as a percentage so no call carries floating point
// arguments. Owned strings are returned as raw pointers and released with
// freeString.
type table struct {
	create                func() int64
	createWithSettings    func(javascript, fileAccess bool) int64
	destroy               func(id int64)
	attach                func(id int64, host uintptr) bool
	setBounds             func(id int64, x, y, w, h int32)
	setVisible            func(id int64, visible bool)
	loadURL               func(id int64, url string) bool
	loadHTML              func(id int64, html, baseURL string)
	goBack                func(id int64)
	goForward             func(id int64)
	reload                func(id int64)
	stopLoading           func(id int64)
	canGoBack             func(id int64) bool
	canGoForward          func(id int64) bool
	isLoading             func(id int64) bool
	getProgress           func(id int64) int32
	getCurrentURL         func(id int64) uintptr
	getTitle              func(id int64) uintptr
	evaluateScript        func(id int64, script string)
	setNavigationCallback func(id int64, cb uintptr)
	freeString            func(ptr uintptr)

	// Optional entries; nil when the library does not export them.
	setBoundsFlipped   func(id int64, x, y, w, h, containerHeight int32)
	initEnvironment    func() bool
	isEnvironmentReady func() bool
	getVersion         func() uintptr
	containerHeight    func(host uintptr) int32
	detach             func(id int64)
	needsForceDisplay  func() bool
	setUserAgent       func(id int64, userAgent string)
	setAlpha           func(id int64, alphaPercent int32)
	bringToFront       func(id int64)
	sendToBack         func(id int64)
	setCrashCallback   func(cb uintptr)
}

type binding struct {
	name     string
	fptr     any
	optional bool
}

func (t *table) bindings() []binding {
	return []binding{
		{symCreate, &t.create, false},
		{symCreateWithSettings, &t.createWithSettings, false},
		{symDestroy, &t.destroy, false},
		{symAttach, &t.attach, false},
		{symSetBounds, &t.setBounds, false},
		{symSetVisible, &t.setVisible, false},
		{symLoadURL, &t.loadURL, false},
		{symLoadHTML, &t.loadHTML, false},
		{symGoBack, &t.goBack, false},
		{symGoForward, &t.goForward, false},
		{symReload, &t.reload, false},
		{symStopLoading, &t.stopLoading, false},
		{symCanGoBack, &t.canGoBack, false},
		{symCanGoForward, &t.canGoForward, false},
		{symIsLoading, &t.isLoading, false},
		{symGetProgress, &t.getProgress, false},
		{symGetCurrentURL, &t.getCurrentURL, false},
		{symGetTitle, &t.getTitle, false},
		{symEvaluateScript, &t.evaluateScript, false},
		{symSetNavigationCallback, &t.setNavigationCallback, false},
		{symFreeString, &t.freeString, false},

		{symSetBoundsFlipped, &t.setBoundsFlipped, true},
		{symInitEnvironment, &t.initEnvironment, true},
		{symIsEnvironmentReady, &t.isEnvironmentReady, true},
		{symGetVersion, &t.getVersion, true},
		{symContainerHeight, &t.containerHeight, true},
		{symDetach, &t.detach, true},
		{symNeedsForceDisplay, &t.needsForceDisplay, true},
		{symSetUserAgent, &t.setUserAgent, true},
		{symSetAlpha, &t.setAlpha, true},
		{symBringToFront, &t.bringToFront, true},
		{symSendToBack, &t.sendToBack, true},
		{symSetCrashCallback, &t.setCrashCallback, true},
	}
}

// MissingSymbolsError lists required symbols a library does not export.
type MissingSymbolsError struct {
	Symbols []string
}

func (e *MissingSymbolsError) Error() string {
	return fmt.Sprintf("native library is missing %d required symbol(s): %v", len(e.Symbols), e.Symbols)
}
