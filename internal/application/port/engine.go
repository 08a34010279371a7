// Package port defines the contracts between the bridge and the engines behind it.
// An Engine is the Go view of the flat native function table; everything beyond
// the core table is an optional capability discovered with a type assertion.
package port

import (
	"context"

	"github.com/bnema/nativeview/internal/domain/entity"
)

//go:generate mockgen -source=engine.go -destination=mocks/mock_engine.go -package=mock_port

// NativeID is the engine-side identifier of a view. It is only meaningful to the
// engine that issued it and is never shown to application code.
type NativeID int64

// HostSurface is the host UI element a native view is attached to.
type HostSurface interface {
	// Handle returns the host reference passed across the native boundary
	// (window pointer, HWND, widget pointer).
	Handle() uintptr
}

// RawSurface wraps a host reference obtained elsewhere.
type RawSurface uintptr

// Handle implements HostSurface.
func (s RawSurface) Handle() uintptr { return uintptr(s) }

// NavigationCallback is invoked synchronously on the engine thread before a
// navigation commits. Returning false cancels the navigation.
type NavigationCallback func(id NativeID, url string) bool

// Engine is the uniform contract every backing engine implements.
// Methods other than Create, Availability and Name are only called with IDs
// returned by Create and not yet destroyed.
type Engine interface {
	Name() string
	Availability(ctx context.Context) entity.Availability

	Create(ctx context.Context, cfg entity.ViewConfig) (NativeID, error)
	Attach(id NativeID, host HostSurface) error
	Destroy(id NativeID) error

	SetBounds(id NativeID, rect entity.BoundsRect) error
	SetVisible(id NativeID, visible bool) error

	LoadURL(id NativeID, url string) error
	LoadHTML(id NativeID, html, baseURL string) error
	GoBack(id NativeID) error
	GoForward(id NativeID) error
	Reload(id NativeID) error
	StopLoading(id NativeID) error
	EvaluateScript(id NativeID, script string) error

	CanGoBack(id NativeID) (bool, error)
	CanGoForward(id NativeID) (bool, error)
	IsLoading(id NativeID) (bool, error)
	Progress(id NativeID) (float64, error)
	CurrentURL(id NativeID) (string, error)
	Title(id NativeID) (string, error)

	// SetNavigationCallback installs or, with nil, removes the decision hook.
	SetNavigationCallback(id NativeID, cb NavigationCallback) error
}
