//go:build webkit_cgo

package webkit

import (
	"github.com/diamondburned/gotk4/pkg/glib/v2"

	"github.com/bnema/nativeview/internal/application/port"
)

// Dispatcher posts work to the GTK main loop.
func Dispatcher() port.Dispatcher {
	return port.DispatcherFunc(func(fn func()) {
		glib.IdleAdd(func() bool {
			fn()
			return false
		})
	})
}

// onMain runs fn on the GTK main loop and waits for it. Calls made from the
// main loop run inline.
func onMain(fn func()) {
	if glib.MainContextDefault().IsOwner() {
		fn()
		return
	}
	done := make(chan struct{})
	glib.IdleAdd(func() bool {
		defer close(done)
		fn()
		return false
	})
	<-done
}
