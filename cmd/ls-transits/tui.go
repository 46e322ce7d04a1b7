package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/litescript/ls-transits/internal/aspect"
	"github.com/litescript/ls-transits/internal/aspectarian"
	"github.com/litescript/ls-transits/internal/chart"
	"github.com/litescript/ls-transits/internal/state"
	"github.com/litescript/ls-transits/internal/ui"
)

func newTUICmd(a *app) *cobra.Command {
	var (
		sf      scanFlags
		logFile string
	)
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Browse the aspectarian in a terminal UI",
		Long: `Browse the events of a window, step to the next or previous window, and
open the chart of any event. When orbs_file is configured the orb table is
reloaded whenever the file changes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !term.IsTerminal(int(os.Stdout.Fd())) {
				return fmt.Errorf("ls-transits tui requires a TTY (terminal)")
			}
			opts, err := sf.options()
			if err != nil {
				return err
			}
			start, stop, err := sf.window()
			if err != nil {
				return err
			}

			// The alternate screen owns the terminal; log to a file or nowhere.
			a.log.SetOutput(io.Discard)
			if logFile != "" {
				f, err := tea.LogToFile(logFile, "ls-transits")
				if err != nil {
					return err
				}
				defer f.Close()
				a.log.SetOutput(f)
			}

			orbs, err := aspect.LoadTable(a.cfg.OrbsFile)
			if err != nil {
				return err
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			stateCfg := state.DefaultConfig(start)
			stateCfg.Window.Stop = stop
			stateCfg.Orbs = orbs
			stateMgr := state.NewManager(stateCfg)

			scanner := aspectarian.New(a.searcher, a.oracle, opts, a.log)
			chartFn := func(jd float64, orbs *aspect.Table) (*chart.Chart, error) {
				return chart.Compute(a.oracle, jd, a.chartOptions(orbs, true))
			}

			p := tea.NewProgram(ui.New(ctx, stateMgr, scanner, chartFn), tea.WithAltScreen(), tea.WithContext(ctx))

			if a.cfg.OrbsFile != "" {
				w, err := ui.NewOrbWatcher(a.cfg.OrbsFile)
				if err != nil {
					return fmt.Errorf("watch orbs: %w", err)
				}
				if err := w.Start(); err != nil {
					return fmt.Errorf("watch orbs: %w", err)
				}
				defer w.Stop()
				go w.Forward(p)
			}

			if _, err := p.Run(); err != nil && ctx.Err() == nil {
				return fmt.Errorf("running TUI: %w", err)
			}
			return nil
		},
	}
	sf.register(cmd)
	cmd.Flags().StringVar(&logFile, "log-file", "", "write logs to this file while the UI runs")
	return cmd
}
