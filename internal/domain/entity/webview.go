package entity

import (
	"fmt"
	"math"
)

// WebViewHandle identifies a native view owned by the handle registry.
// Handles come from a monotonic counter and are never reused within a process.
type WebViewHandle uint64

// NoHandle is the zero handle. It never refers to a live view.
const NoHandle WebViewHandle = 0

// Valid reports whether the handle is non-zero.
func (h WebViewHandle) Valid() bool {
	return h != NoHandle
}

func (h WebViewHandle) String() string {
	if h == NoHandle {
		return "none"
	}
	return fmt.Sprintf("wv-%d", uint64(h))
}

// LifecycleState is the position of a handle in its lifecycle.
type LifecycleState int

const (
	LifecycleUninitialized LifecycleState = iota
	// LifecycleEnvironmentPending is only used by out-of-process engines
	// while the engine environment is starting.
	LifecycleEnvironmentPending
	LifecycleCreated
	LifecycleAttached
	LifecycleDestroyed
)

func (s LifecycleState) String() string {
	switch s {
	case LifecycleUninitialized:
		return "uninitialized"
	case LifecycleEnvironmentPending:
		return "environment_pending"
	case LifecycleCreated:
		return "created"
	case LifecycleAttached:
		return "attached"
	case LifecycleDestroyed:
		return "destroyed"
	default:
		return fmt.Sprintf("lifecycle(%d)", int(s))
	}
}

// ViewConfig holds the settings a native view is created with.
type ViewConfig struct {
	JavaScriptEnabled bool
	AllowsFileAccess  bool
	UserAgent         string
}

// DefaultViewConfig returns the settings used when none are given.
func DefaultViewConfig() ViewConfig {
	return ViewConfig{
		JavaScriptEnabled: true,
		AllowsFileAccess:  false,
	}
}

// WebViewState is the uniform model of engine state.
// Empty strings mean "unknown" for the URL and title fields.
type WebViewState struct {
	CurrentURL      string
	NavigatingURL   string
	IsLoading       bool
	CanGoBack       bool
	CanGoForward    bool
	PageTitle       string
	LoadingProgress float64
}

// DisplayURL returns the committed URL, or the pending one when nothing is committed yet.
func (s WebViewState) DisplayURL() string {
	if s.CurrentURL != "" {
		return s.CurrentURL
	}
	return s.NavigatingURL
}

// NavigationRequest is produced by the engine when it asks whether to load a URL.
type NavigationRequest struct {
	TargetURL string
	Handle    WebViewHandle
}

// NavigationDecision is the answer policy gives to a NavigationRequest.
type NavigationDecision bool

const (
	NavigationAllow  NavigationDecision = true
	NavigationCancel NavigationDecision = false
)

func (d NavigationDecision) String() string {
	if d {
		return "allow"
	}
	return "cancel"
}

// BoundsRect is a placement in device-independent units.
// ContainerHeight is only set for engines with a bottom-left origin.
type BoundsRect struct {
	X               float64
	Y               float64
	Width           float64
	Height          float64
	ContainerHeight float64
}

// Empty reports whether the rect has no visible area.
func (r BoundsRect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// FlipY converts a top-left origin rect into bottom-left coordinates using ContainerHeight.
// The rect is returned unchanged when no container height is known.
func (r BoundsRect) FlipY() BoundsRect {
	if r.ContainerHeight <= 0 {
		return r
	}
	out := r
	out.Y = r.ContainerHeight - r.Y - r.Height
	return out
}

// Rounded returns the rect snapped to whole units, as passed over the C ABI.
func (r BoundsRect) Rounded() (x, y, w, h, container int32) {
	return int32(math.Round(r.X)), int32(math.Round(r.Y)),
		int32(math.Round(r.Width)), int32(math.Round(r.Height)),
		int32(math.Round(r.ContainerHeight))
}

func (r BoundsRect) String() string {
	return fmt.Sprintf("%.0fx%.0f@%.0f,%.0f", r.Width, r.Height, r.X, r.Y)
}
