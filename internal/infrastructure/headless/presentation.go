package headless

import (
	"slices"

	"github.com/bnema/nativeview/internal/application/port"
)

// SetUserAgent implements port.Presentation.
func (e *Engine) SetUserAgent(id port.NativeID, userAgent string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record("set_user_agent")
	v, err := e.lookup(id)
	if err != nil {
		return err
	}
	v.userAgent = userAgent
	return nil
}

// SetAlpha implements port.Presentation.
func (e *Engine) SetAlpha(id port.NativeID, alpha float64) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record("set_alpha")
	v, err := e.lookup(id)
	if err != nil {
		return err
	}
	if alpha < 0 || alpha > 1 {
		return errInvalidAlpha
	}
	v.alpha = alpha
	return nil
}

// BringToFront implements port.Presentation.
func (e *Engine) BringToFront(id port.NativeID) error {
	return e.restack(id, "bring_to_front", true)
}

// SendToBack implements port.Presentation.
func (e *Engine) SendToBack(id port.NativeID) error {
	return e.restack(id, "send_to_back", false)
}

func (e *Engine) restack(id port.NativeID, op string, front bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record(op)
	if _, err := e.lookup(id); err != nil {
		return err
	}
	e.zorder = slices.DeleteFunc(e.zorder, func(z port.NativeID) bool { return z == id })
	if front {
		e.zorder = append(e.zorder, id)
	} else {
		e.zorder = append([]port.NativeID{id}, e.zorder...)
	}
	return nil
}

// Stacking returns live views from back to front.
func (e *Engine) Stacking() []port.NativeID {
	e.mu.Lock()
	defer e.mu.Unlock()
	return slices.Clone(e.zorder)
}

// Presentation reports the visibility, alpha and user agent of id.
func (e *Engine) Presentation(id port.NativeID) (visible bool, alpha float64, userAgent string, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	v, err := e.lookup(id)
	if err != nil {
		return false, 0, "", err
	}
	return v.visible, v.alpha, v.userAgent, nil
}
