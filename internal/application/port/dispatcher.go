package port

// Dispatcher runs work on the UI thread.
type Dispatcher interface {
	Dispatch(fn func())
}

// DispatcherFunc adapts a function to Dispatcher.
type DispatcherFunc func(fn func())

// Dispatch implements Dispatcher.
func (f DispatcherFunc) Dispatch(fn func()) { f(fn) }

// InlineDispatcher runs work on the calling goroutine.
// It suits headless hosts and tests where there is no UI thread.
var InlineDispatcher Dispatcher = DispatcherFunc(func(fn func()) { fn() })
