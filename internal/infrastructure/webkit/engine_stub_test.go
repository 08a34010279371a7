//go:build !webkit_cgo

package webkit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/nativeview/internal/application/port"
	"github.com/bnema/nativeview/internal/domain/entity"
)

func TestOpen_WithoutCgoIsUnavailable(t *testing.T) {
	e, err := Open(context.Background())
	require.ErrorIs(t, err, ErrNotBuilt)
	require.NotNil(t, e)

	av := e.Availability(context.Background())
	assert.False(t, av.Available)
	assert.Equal(t, engineName, av.Engine)
	assert.Contains(t, av.ErrorMessage, "webkit_cgo")

	_, err = e.Create(context.Background(), entity.DefaultViewConfig())
	assert.ErrorIs(t, err, port.ErrEngineUnavailable)
	assert.False(t, Probe(context.Background()).Available)
}

func TestDispatcher_RunsInline(t *testing.T) {
	ran := false
	Dispatcher().Dispatch(func() { ran = true })
	assert.True(t, ran)
}
