package port

import (
	"context"

	"github.com/bnema/nativeview/internal/domain/entity"
)

// UnavailableEngine stands in for an engine that cannot run here. Availability
// reports why; every other call fails with ErrEngineUnavailable.
type UnavailableEngine struct {
	av entity.Availability
}

var _ Engine = (*UnavailableEngine)(nil)

// NewUnavailableEngine returns an engine reporting av.
func NewUnavailableEngine(av entity.Availability) *UnavailableEngine {
	av.Available = false
	return &UnavailableEngine{av: av}
}

func (u *UnavailableEngine) Name() string { return u.av.Engine }

func (u *UnavailableEngine) Availability(context.Context) entity.Availability { return u.av }

func (u *UnavailableEngine) Create(context.Context, entity.ViewConfig) (NativeID, error) {
	return 0, ErrEngineUnavailable
}

func (u *UnavailableEngine) Attach(NativeID, HostSurface) error          { return ErrEngineUnavailable }
func (u *UnavailableEngine) Destroy(NativeID) error                      { return ErrEngineUnavailable }
func (u *UnavailableEngine) SetBounds(NativeID, entity.BoundsRect) error { return ErrEngineUnavailable }
func (u *UnavailableEngine) SetVisible(NativeID, bool) error             { return ErrEngineUnavailable }
func (u *UnavailableEngine) LoadURL(NativeID, string) error              { return ErrEngineUnavailable }
func (u *UnavailableEngine) LoadHTML(NativeID, string, string) error     { return ErrEngineUnavailable }
func (u *UnavailableEngine) GoBack(NativeID) error                       { return ErrEngineUnavailable }
func (u *UnavailableEngine) GoForward(NativeID) error                    { return ErrEngineUnavailable }
func (u *UnavailableEngine) Reload(NativeID) error                       { return ErrEngineUnavailable }
func (u *UnavailableEngine) StopLoading(NativeID) error                  { return ErrEngineUnavailable }
func (u *UnavailableEngine) EvaluateScript(NativeID, string) error       { return ErrEngineUnavailable }
func (u *UnavailableEngine) CanGoBack(NativeID) (bool, error)            { return false, ErrEngineUnavailable }
func (u *UnavailableEngine) CanGoForward(NativeID) (bool, error)         { return false, ErrEngineUnavailable }
func (u *UnavailableEngine) IsLoading(NativeID) (bool, error)            { return false, ErrEngineUnavailable }
func (u *UnavailableEngine) Progress(NativeID) (float64, error)          { return 0, ErrEngineUnavailable }
func (u *UnavailableEngine) CurrentURL(NativeID) (string, error)         { return "", ErrEngineUnavailable }
func (u *UnavailableEngine) Title(NativeID) (string, error)              { return "", ErrEngineUnavailable }
func (u *UnavailableEngine) SetNavigationCallback(NativeID, NavigationCallback) error {
	return ErrEngineUnavailable
}
