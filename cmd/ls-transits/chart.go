package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/litescript/ls-transits/internal/aspect"
	"github.com/litescript/ls-transits/internal/aspectarian"
	"github.com/litescript/ls-transits/internal/chart"
	"github.com/litescript/ls-transits/internal/ephem"
)

// chartBodies are the Sun, the Moon, the planets and the mean node.
var chartBodies = append(append([]ephem.Body(nil), aspectarian.DefaultBodies...), ephem.MeanNode)

// chartOptions are the chart settings taken from the configuration.
func (a *app) chartOptions(orbs *aspect.Table, houses bool) chart.Options {
	return chart.Options{
		Bodies:   chartBodies,
		Flags:    a.searcher.Flags(),
		Orbs:     orbs,
		Houses:   houses,
		Observer: a.observer,
		System:   a.system,
	}
}

func newChartCmd(a *app) *cobra.Command {
	var (
		at     string
		bodies []string
		houses bool
		royal  bool
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Show the sky at one time",
		Long: `Show the positions of the bodies at one time with their sign, nakshatra
and navamsa, the exaltation strength of the classical planets and the aspects
in orb. With --houses the configured observer's cusps are added, together
with each planet's bhava and residential strength.`,
		Example: `  ls-transits chart --at "2024-04-08 18:17" --houses
  ls-transits chart --royal --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			jd, err := parseTime(at)
			if err != nil {
				return err
			}
			orbs, err := aspect.LoadTable(a.cfg.OrbsFile)
			if err != nil {
				return err
			}
			opts := a.chartOptions(orbs, houses)
			if len(bodies) > 0 {
				if opts.Bodies, err = parseBodies(bodies); err != nil {
					return err
				}
			}

			c, err := chart.Compute(a.oracle, jd, opts)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if asJSON {
				return c.ToExport().WriteJSON(w)
			}
			c.WriteTable(w)

			if royal {
				rs, err := a.searcher.SaturnRoyalStars(jd)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "\nSaturn %s  Aldebaran %s  Regulus %s  Antares %s  Fomalhaut %s\n",
					chart.FormatLon(rs.Saturn), chart.FormatLon(rs.Aldebaran), chart.FormatLon(rs.Regulus),
					chart.FormatLon(rs.Antares), chart.FormatLon(rs.Fomalhaut))
				fmt.Fprintf(w, "Royal stars index: %.1f\n", rs.Index)
			}
			return nil
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&at, "at", "now", "chart time")
	fl.StringSliceVar(&bodies, "bodies", nil, "bodies to show (default Sun, Moon, planets and mean node)")
	fl.BoolVar(&houses, "houses", false, "add house cusps for the configured observer")
	fl.BoolVar(&royal, "royal", false, "add the Saturn royal stars index (table output only)")
	fl.BoolVar(&asJSON, "json", false, "write JSON")
	return cmd
}
