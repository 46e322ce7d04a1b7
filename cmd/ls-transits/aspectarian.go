package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/litescript/ls-transits/internal/aspect"
	"github.com/litescript/ls-transits/internal/aspectarian"
	"github.com/litescript/ls-transits/internal/ephem"
)

// scanFlags select what an aspectarian scan covers.
type scanFlags struct {
	from    string
	days    float64
	bodies  []string
	aspects []string
	kinds   []string
	workers int
}

func (f *scanFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&f.from, "from", "now", "start of the window")
	fl.Float64Var(&f.days, "days", 30, "window length in days")
	fl.StringSliceVar(&f.bodies, "bodies", nil, "bodies to scan (default Sun, Moon and planets)")
	fl.StringSliceVar(&f.aspects, "aspects", nil, "aspects to scan (default the major aspects)")
	fl.StringSliceVar(&f.kinds, "kinds", nil, "event kinds: aspects, stations, ingresses (default all)")
	fl.IntVar(&f.workers, "workers", 0, "concurrent searches (0 uses all CPUs)")
}

func (f *scanFlags) options() (aspectarian.Options, error) {
	opts := aspectarian.DefaultOptions()
	opts.Workers = f.workers

	if len(f.bodies) > 0 {
		bodies, err := parseBodies(f.bodies)
		if err != nil {
			return opts, err
		}
		opts.Bodies = bodies
	}
	if len(f.aspects) > 0 {
		opts.Aspects = opts.Aspects[:0]
		for _, s := range f.aspects {
			asp, err := aspect.Parse(s)
			if err != nil {
				return opts, err
			}
			opts.Aspects = append(opts.Aspects, aspect.Fold(asp))
		}
	}
	for _, s := range f.kinds {
		k, err := aspectarian.ParseKind(s)
		if err != nil {
			return opts, err
		}
		opts.Kinds = append(opts.Kinds, k)
	}
	return opts, nil
}

func (f *scanFlags) window() (start, stop float64, err error) {
	if f.days <= 0 {
		return 0, 0, fmt.Errorf("--days must be positive, got %g", f.days)
	}
	start, err = parseTime(f.from)
	if err != nil {
		return 0, 0, err
	}
	return start, start + f.days, nil
}

func parseBodies(names []string) ([]ephem.Body, error) {
	bodies := make([]ephem.Body, 0, len(names))
	for _, n := range names {
		b, err := ephem.ParseBody(n)
		if err != nil {
			return nil, err
		}
		bodies = append(bodies, b)
	}
	return bodies, nil
}

func newAspectarianCmd(a *app) *cobra.Command {
	var (
		sf     scanFlags
		asJSON bool
		tz     string
	)
	cmd := &cobra.Command{
		Use:   "aspectarian",
		Short: "List the events of a time window",
		Long: `List every exact aspect between pairs of bodies, every station and every
sign ingress in a window, sorted by time.`,
		Example: `  ls-transits aspectarian --from 2024-04-01 --days 14
  ls-transits aspectarian --bodies sun,mercury,venus --kinds aspects --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, err := sf.options()
			if err != nil {
				return err
			}
			start, stop, err := sf.window()
			if err != nil {
				return err
			}
			loc, err := time.LoadLocation(tz)
			if err != nil {
				return fmt.Errorf("time zone: %w", err)
			}

			ctx, stopSignals := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stopSignals()

			scanner := aspectarian.New(a.searcher, a.oracle, opts, a.log)
			began := time.Now()
			events, err := scanner.Scan(ctx, start, stop)
			if err != nil {
				a.log.Error("scan failed: %v", err)
				return err
			}
			a.log.Info("%d events in %s", len(events), time.Since(began).Round(time.Millisecond))

			w := cmd.OutOrStdout()
			if asJSON {
				return aspectarian.ExportEvents(events, start, stop).WriteJSON(w)
			}
			aspectarian.WriteTable(w, events, loc)
			return nil
		},
	}
	sf.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "write JSON")
	cmd.Flags().StringVar(&tz, "tz", "UTC", "time zone for the table, e.g. Local or Europe/Paris")
	return cmd
}
