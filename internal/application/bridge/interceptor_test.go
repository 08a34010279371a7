package bridge

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/bnema/nativeview/internal/domain/entity"
)

func TestInterceptor_NoPolicyAllows(t *testing.T) {
	var begun []string
	i := newInterceptor(zerolog.Nop(), func(req entity.NavigationRequest) {
		begun = append(begun, req.TargetURL)
	}, nil)

	assert.False(t, i.Active())
	assert.Equal(t, entity.NavigationAllow, i.Decide(entity.NavigationRequest{TargetURL: "https://a"}))
	assert.Equal(t, []string{"https://a"}, begun)
}

func TestInterceptor_HookRunsBeforePolicy(t *testing.T) {
	var order []string
	i := newInterceptor(zerolog.Nop(), func(entity.NavigationRequest) {
		order = append(order, "hook")
	}, func(entity.NavigationRequest) {
		order = append(order, "rejected")
	})
	i.Set(func(url string) bool {
		order = append(order, "policy:"+url)
		return false
	})

	assert.Equal(t, entity.NavigationCancel, i.Decide(entity.NavigationRequest{TargetURL: "https://x"}))
	assert.Equal(t, []string{"hook", "policy:https://x", "rejected"}, order)
}

func TestInterceptor_ReplaceAndClear(t *testing.T) {
	i := newInterceptor(zerolog.Nop(), nil, nil)
	tr := i.Trampoline()

	i.Set(func(string) bool { return false })
	assert.Equal(t, entity.NavigationCancel, tr.Decide(entity.NavigationRequest{TargetURL: "https://a"}))

	i.Set(func(string) bool { return true })
	assert.Equal(t, entity.NavigationAllow, tr.Decide(entity.NavigationRequest{TargetURL: "https://a"}))

	i.Set(nil)
	assert.False(t, i.Active())
	assert.Equal(t, entity.NavigationAllow, tr.Decide(entity.NavigationRequest{TargetURL: "https://a"}))
}

func TestInterceptor_PanicCancels(t *testing.T) {
	rejected := 0
	i := newInterceptor(zerolog.Nop(), nil, func(entity.NavigationRequest) { rejected++ })
	i.Set(func(string) bool { panic("policy bug") })

	assert.NotPanics(t, func() {
		assert.Equal(t, entity.NavigationCancel, i.Decide(entity.NavigationRequest{TargetURL: "https://a"}))
	})
	assert.Equal(t, 1, rejected)
}

func TestTrampoline_NilAllows(t *testing.T) {
	var tr *Trampoline
	assert.Equal(t, entity.NavigationAllow, tr.Decide(entity.NavigationRequest{TargetURL: "https://a"}))
}
