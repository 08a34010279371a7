package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/nativeview/internal/domain/entity"
)

func TestParseStep(t *testing.T) {
	tests := []struct {
		raw  string
		want Step
	}{
		{"load:https://example.com/a?b=c", Step{Kind: StepLoad, Arg: "https://example.com/a?b=c"}},
		{"load:example.com/docs", Step{Kind: StepLoad, Arg: "https://example.com/docs"}},
		{"redirect:about:blank", Step{Kind: StepRedirect, Arg: "about:blank"}},
		{"BACK", Step{Kind: StepBack}},
		{"crash", Step{Kind: StepCrash, Arg: string(entity.CrashReasonCrashed)}},
		{"crash:exceeded_memory", Step{Kind: StepCrash, Arg: "exceeded_memory"}},
		{"wait:150ms", Step{Kind: StepWait, Arg: "150ms", Wait: 150 * time.Millisecond}},
		{"fail:on", Step{Kind: StepFail, Arg: "on", On: true}},
		{"fail:off", Step{Kind: StepFail, Arg: "off"}},
		{"alpha:0.5", Step{Kind: StepAlpha, Arg: "0.5", Alpha: 0.5}},
		{"bounds:10, 20, 300, 200", Step{
			Kind: StepBounds,
			Arg:  "10, 20, 300, 200",
			Rect: entity.BoundsRect{X: 10, Y: 20, Width: 300, Height: 200},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseStep(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseStep_Errors(t *testing.T) {
	for _, raw := range []string{
		"teleport",
		"load",
		"title:",
		"wait:soon",
		"wait:-1s",
		"fail:maybe",
		"alpha:1.5",
		"bounds:1,2,3",
		"bounds:a,b,c,d",
	} {
		t.Run(raw, func(t *testing.T) {
			_, err := ParseStep(raw)
			assert.Error(t, err)
		})
	}
}

func TestStep_String(t *testing.T) {
	assert.Equal(t, "reload", Step{Kind: StepReload}.String())
	assert.Equal(t, "title:Hi", Step{Kind: StepTitle, Arg: "Hi"}.String())
}

func TestParseScript(t *testing.T) {
	script := `# warm up
load:https://example.com/

sync
  title:Example  
`
	steps, err := ParseScript(strings.NewReader(script))
	require.NoError(t, err)
	require.Len(t, steps, 3)
	assert.Equal(t, StepLoad, steps[0].Kind)
	assert.Equal(t, StepSync, steps[1].Kind)
	assert.Equal(t, "Example", steps[2].Arg)
}

func TestParseScript_ReportsLine(t *testing.T) {
	_, err := ParseScript(strings.NewReader("load:https://example.com/\n\nbogus\n"))
	assert.ErrorContains(t, err, "line 3")
}

func TestParseSteps_StopsAtFirstError(t *testing.T) {
	_, err := ParseSteps([]string{"sync", "nope", "back"})
	assert.ErrorContains(t, err, "nope")
}
