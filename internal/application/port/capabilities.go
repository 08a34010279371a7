package port

import (
	"context"

	"github.com/bnema/nativeview/internal/domain/entity"
)

// EnvironmentInitializer is implemented by out-of-process engines whose runtime
// environment starts asynchronously before any view can be created.
type EnvironmentInitializer interface {
	// InitEnvironment starts bring-up. It reports false when there is nothing to wait for.
	InitEnvironment(ctx context.Context) (bool, error)
	EnvironmentReady() bool
}

// CrashHandler receives renderer failures on an engine thread.
type CrashHandler func(id NativeID, reason entity.CrashReason)

// CrashNotifier is implemented by engines that report renderer process death.
type CrashNotifier interface {
	SetCrashHandler(fn CrashHandler)
}

// ContainerMeasurer is implemented by engines with a bottom-left origin.
// Bounds sent to them carry the container height so Y can be flipped.
type ContainerMeasurer interface {
	FlipsY() bool
	ContainerHeight(host HostSurface) (float64, error)
}

// Detacher removes a view from its host without destroying it.
type Detacher interface {
	Detach(id NativeID) error
}

// RenderQuirks is implemented by engines that may present a blank surface
// after attach until geometry and visibility are re-applied.
type RenderQuirks interface {
	NeedsForceDisplay() bool
}

// Presentation groups the optional view controls some engines expose.
type Presentation interface {
	SetUserAgent(id NativeID, userAgent string) error
	SetAlpha(id NativeID, alpha float64) error
	BringToFront(id NativeID) error
	SendToBack(id NativeID) error
}
