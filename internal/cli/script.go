package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/bnema/nativeview/internal/domain/entity"
	"github.com/bnema/nativeview/internal/domain/url"
)

// StepKind names a simulator action.
type StepKind string

const (
	StepLoad     StepKind = "load"
	StepHTML     StepKind = "html"
	StepBack     StepKind = "back"
	StepForward  StepKind = "forward"
	StepReload   StepKind = "reload"
	StepStop     StepKind = "stop"
	StepRedirect StepKind = "redirect"
	StepTitle    StepKind = "title"
	StepJS       StepKind = "js"
	StepCrash    StepKind = "crash"
	StepFail     StepKind = "fail"
	StepWait     StepKind = "wait"
	StepBounds   StepKind = "bounds"
	StepShow     StepKind = "show"
	StepHide     StepKind = "hide"
	StepAlpha    StepKind = "alpha"
	StepSync     StepKind = "sync"
)

// Step is one parsed simulator instruction.
type Step struct {
	Kind  StepKind
	Arg   string
	Wait  time.Duration
	Rect  entity.BoundsRect
	Alpha float64
	On    bool
}

func (s Step) String() string {
	if s.Arg == "" {
		return string(s.Kind)
	}
	return string(s.Kind) + ":" + s.Arg
}

var argRequired = map[StepKind]bool{
	StepLoad: true, StepHTML: true, StepRedirect: true, StepTitle: true,
	StepJS: true, StepWait: true, StepBounds: true, StepAlpha: true, StepFail: true,
}

// ParseStep parses "kind" or "kind:arg".
func ParseStep(raw string) (Step, error) {
	raw = strings.TrimSpace(raw)
	name, arg, _ := strings.Cut(raw, ":")
	step := Step{Kind: StepKind(strings.ToLower(strings.TrimSpace(name))), Arg: strings.TrimSpace(arg)}

	switch step.Kind {
	case StepLoad, StepRedirect:
		step.Arg = url.Normalize(step.Arg)
	case StepHTML, StepTitle, StepJS,
		StepBack, StepForward, StepReload, StepStop, StepShow, StepHide, StepSync:
	case StepCrash:
		if step.Arg == "" {
			step.Arg = string(entity.CrashReasonCrashed)
		}
	case StepWait:
		d, err := time.ParseDuration(step.Arg)
		if err != nil || d < 0 {
			return Step{}, fmt.Errorf("step %q: invalid duration", raw)
		}
		step.Wait = d
	case StepFail:
		switch step.Arg {
		case "on":
			step.On = true
		case "off":
		default:
			return Step{}, fmt.Errorf("step %q: want fail:on or fail:off", raw)
		}
	case StepAlpha:
		a, err := strconv.ParseFloat(step.Arg, 64)
		if err != nil || a < 0 || a > 1 {
			return Step{}, fmt.Errorf("step %q: alpha must be within [0, 1]", raw)
		}
		step.Alpha = a
	case StepBounds:
		rect, err := parseRect(step.Arg)
		if err != nil {
			return Step{}, fmt.Errorf("step %q: %w", raw, err)
		}
		step.Rect = rect
	default:
		return Step{}, fmt.Errorf("unknown step %q", raw)
	}

	if argRequired[step.Kind] && step.Arg == "" {
		return Step{}, fmt.Errorf("step %q needs an argument", raw)
	}
	return step, nil
}

// parseRect reads "x,y,w,h".
func parseRect(s string) (entity.BoundsRect, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return entity.BoundsRect{}, fmt.Errorf("want x,y,w,h")
	}
	var v [4]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return entity.BoundsRect{}, fmt.Errorf("bad number %q", p)
		}
		v[i] = f
	}
	return entity.BoundsRect{X: v[0], Y: v[1], Width: v[2], Height: v[3]}, nil
}

// ParseSteps parses each argument as a step.
func ParseSteps(args []string) ([]Step, error) {
	steps := make([]Step, 0, len(args))
	for _, a := range args {
		s, err := ParseStep(a)
		if err != nil {
			return nil, err
		}
		steps = append(steps, s)
	}
	return steps, nil
}

// ParseScript reads one step per line. Blank lines and # comments are skipped.
func ParseScript(r io.Reader) ([]Step, error) {
	var steps []Step
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		s, err := ParseStep(text)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		steps = append(steps, s)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return steps, nil
}
