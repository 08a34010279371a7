// Package webkit runs views in-process on WebKitGTK 6 through gotk4. The engine
// is only compiled with the webkit_cgo build tag; other builds report it as
// unavailable.
package webkit

import (
	"errors"
	"runtime"

	"github.com/bnema/nativeview/internal/domain/entity"
)

const engineName = "webkitgtk"

// ErrNotBuilt is reported when the binary was built without webkit_cgo.
var ErrNotBuilt = errors.New("built without WebKitGTK support (rebuild with -tags webkit_cgo)")

var errNoHost = errors.New("view is not attached to a host")

// terminationReason maps WebKitWebProcessTerminationReason.
func terminationReason(code int) entity.CrashReason {
	switch code {
	case 0:
		return entity.CrashReasonCrashed
	case 1:
		return entity.CrashReasonExceededMemory
	case 2:
		return entity.CrashReasonTerminatedByAPI
	default:
		return entity.CrashReasonUnknown
	}
}

func unavailable(err error) entity.Availability {
	return entity.Availability{
		Engine:       engineName,
		Platform:     runtime.GOOS,
		ErrorMessage: err.Error(),
	}
}
