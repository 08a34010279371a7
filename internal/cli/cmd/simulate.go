package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/bnema/nativeview/internal/bootstrap"
	"github.com/bnema/nativeview/internal/cli"
	"github.com/bnema/nativeview/internal/cli/model"
	"github.com/bnema/nativeview/internal/cli/styles"
	"github.com/bnema/nativeview/internal/infrastructure/config"
	"github.com/bnema/nativeview/internal/infrastructure/headless"
)

type simulateFlags struct {
	script       string
	block        []string
	monitor      bool
	flipY        bool
	envDelay     time.Duration
	loadLatency  time.Duration
	forceDisplay bool
}

var simFlags simulateFlags

var simulateCmd = &cobra.Command{
	Use:   "simulate [step...]",
	Short: "Drive a headless view through the bridge",
	Long: `Open one view on the headless engine and run steps against it, printing
every state change, rejected navigation and recovery the bridge reports.

Steps:
  load:URL  html:MARKUP  back  forward  reload  stop  sync
  redirect:URL  title:TEXT  js:SCRIPT  crash[:REASON]  fail:on|off
  wait:DURATION  bounds:X,Y,W,H  show  hide  alpha:0..1

Examples:
  nativeview simulate load:https://example.com/ sync title:Hello sync
  nativeview simulate --block ads. load:https://ads.example/ sync
  nativeview simulate --script steps.txt --monitor`,
	RunE: runSimulate,
}

func init() {
	rootCmd.AddCommand(simulateCmd)
	f := simulateCmd.Flags()
	f.StringVar(&simFlags.script, "script", "", "read steps from a file, one per line")
	f.StringSliceVar(&simFlags.block, "block", nil, "reject navigations to URLs containing this text")
	f.BoolVar(&simFlags.monitor, "monitor", false, "show a live monitor instead of event lines")
	f.BoolVar(&simFlags.flipY, "flip-y", false, "use a bottom-left origin like macOS views")
	f.DurationVar(&simFlags.envDelay, "env-delay", 0, "require an engine environment that becomes ready after this delay")
	f.DurationVar(&simFlags.loadLatency, "load-latency", 0, "delay load completion")
	f.BoolVar(&simFlags.forceDisplay, "force-display", false, "report the blank-after-attach quirk")
}

func (f simulateFlags) headlessOptions() headless.Options {
	opts := headless.DefaultOptions()
	opts.FlipY = f.flipY
	if f.flipY {
		opts.ContainerHeight = 800
	}
	opts.EnvironmentDelay = f.envDelay
	opts.LoadLatency = f.loadLatency
	opts.ForceDisplay = f.forceDisplay
	return opts
}

func loadSteps(args []string, script string) ([]cli.Step, error) {
	if script == "" {
		if len(args) == 0 {
			return nil, fmt.Errorf("no steps given (pass steps as arguments or use --script)")
		}
		return cli.ParseSteps(args)
	}
	if len(args) > 0 {
		return nil, fmt.Errorf("use either step arguments or --script, not both")
	}
	file, err := os.Open(script)
	if err != nil {
		return nil, fmt.Errorf("open script: %w", err)
	}
	defer file.Close()
	return cli.ParseScript(file)
}

func runSimulate(cmd *cobra.Command, args []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	steps, err := loadSteps(args, simFlags.script)
	if err != nil {
		return err
	}

	rt, err := a.Runtime(bootstrap.Options{
		Kind:     config.EngineHeadless,
		Headless: simFlags.headlessOptions(),
		Quiet:    simFlags.monitor,
	})
	if err != nil {
		return err
	}
	defer func() { _ = rt.Close() }()

	ctx, cancel := signal.NotifyContext(rt.Context(), os.Interrupt)
	defer cancel()

	if simFlags.monitor {
		return simulateWithMonitor(ctx, cancel, a.Theme, rt, steps)
	}
	return simulateToWriter(ctx, cmd.OutOrStdout(), a.Theme, rt, steps)
}

func eventLine(ev cli.Event) styles.EventLine {
	return styles.EventLine{At: ev.At, Kind: string(ev.Kind), Label: ev.Step, Detail: eventDetail(ev)}
}

func eventDetail(ev cli.Event) string {
	if ev.Kind == cli.EventState {
		st := ev.State
		return fmt.Sprintf("url=%q loading=%t progress=%.0f%% back=%t forward=%t title=%q",
			st.DisplayURL(), st.IsLoading, st.LoadingProgress*100, st.CanGoBack, st.CanGoForward, st.PageTitle)
	}
	return ev.Detail
}

func simulateToWriter(ctx context.Context, w io.Writer, theme *styles.Theme, rt *bootstrap.Runtime, steps []cli.Step) error {
	renderer := styles.NewEventRenderer(theme)
	sim, err := cli.NewSimulator(rt, simFlags.block, func(ev cli.Event) {
		fmt.Fprintln(w, renderer.Render(eventLine(ev)))
	})
	if err != nil {
		return err
	}
	_, err = sim.Run(ctx, steps)
	return err
}

func simulateWithMonitor(
	ctx context.Context,
	cancel context.CancelFunc,
	theme *styles.Theme,
	rt *bootstrap.Runtime,
	steps []cli.Step,
) error {
	feed := make(chan model.MonitorEvent, 64)
	sim, err := cli.NewSimulator(rt, simFlags.block, func(ev cli.Event) {
		select {
		case feed <- model.MonitorEvent{Line: eventLine(ev), State: ev.State}:
		case <-ctx.Done():
		}
	})
	if err != nil {
		return err
	}

	runErr := make(chan error, 1)
	go func() {
		defer close(feed)
		_, err := sim.Run(ctx, steps)
		runErr <- err
	}()

	if _, err := tea.NewProgram(model.NewMonitorModel(theme, feed, cancel), tea.WithAltScreen()).Run(); err != nil {
		cancel()
		<-runErr
		return fmt.Errorf("monitor: %w", err)
	}
	cancel()
	if err := <-runErr; err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
