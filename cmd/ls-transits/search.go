package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/litescript/ls-transits/internal/chart"
	"github.com/litescript/ls-transits/internal/ephem"
	"github.com/litescript/ls-transits/internal/search"
)

// printResult writes a found event, or where the search gave up.
func printResult(w io.Writer, what string, res search.Result, opts search.Options) {
	if !res.Found() {
		fmt.Fprintf(w, "No %s within %g days (stopped at %s)\n", what, opts.DaySpan, formatJD(res.JD))
		return
	}
	fmt.Fprintf(w, "%s: %s at %s\n", what, formatJD(res.JD), chart.FormatLon(res.Pos.Lon()))
}

func newRetroCmd(a *app) *cobra.Command {
	var sf searchFlags
	cmd := &cobra.Command{
		Use:   "retro <body>",
		Short: "Find the next station of a planet",
		Long: `Find the next time a body changes direction, turning retrograde or
direct. The Sun, the Moon and the mean nodes never station.`,
		Example: `  ls-transits retro mercury --from 2024-01-01
  ls-transits retro mars -b`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := ephem.ParseBody(args[0])
			if err != nil {
				return err
			}
			jd, err := sf.start()
			if err != nil {
				return err
			}
			before, err := a.oracle.Compute(jd, body, a.searcher.Flags())
			if err != nil {
				return err
			}
			opts := sf.options()
			res, err := a.searcher.NextRetro(body, jd, opts)
			if err != nil {
				return err
			}

			// Searching back, the direction at the start is the one taken at
			// the station.
			turn := "direct"
			if before.Direct() != opts.Backward {
				turn = "retrograde"
			}
			printResult(cmd.OutOrStdout(), fmt.Sprintf("%s stations %s", body, turn), res, opts)
			return nil
		},
	}
	sf.register(cmd)
	return cmd
}

func newCrossCmd(a *app) *cobra.Command {
	var (
		sf    searchFlags
		exact bool
	)
	cmd := &cobra.Command{
		Use:   "cross <body> <longitude>",
		Short: "Find when a body passes a longitude",
		Long: `Step a body forward until it has passed a fixed longitude. Crossings
made and undone inside one retrograde loop are still seen. Without --exact
the reported time is the first step past the crossing.`,
		Example: `  ls-transits cross jupiter 120 --from 2024-01-01 --exact`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := ephem.ParseBody(args[0])
			if err != nil {
				return err
			}
			lon, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("longitude: %w", err)
			}
			jd, err := sf.start()
			if err != nil {
				return err
			}
			opts := sf.options()

			var res search.Result
			if exact {
				res, err = a.searcher.NextAspect(body, 0, lon, jd, opts)
			} else {
				res, err = a.searcher.GoPast(body, lon, jd, opts)
			}
			if err != nil {
				return err
			}
			printResult(cmd.OutOrStdout(), fmt.Sprintf("%s passes %s", body, chart.FormatLon(lon)), res, opts)
			return nil
		},
	}
	sf.register(cmd)
	cmd.Flags().BoolVar(&exact, "exact", false, "refine to the exact crossing")
	return cmd
}

func newYearsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "years <from> <to>",
		Short: "Count solar years between two times",
		Long: `Count the solar returns between two times. Whole years are returns of
the Sun to its longitude at <from>; the fraction is the part of the last year
elapsed. Negative when <to> is before <from>.`,
		Example: `  ls-transits years 1990-05-17 now`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			jd1, err := parseTime(args[0])
			if err != nil {
				return err
			}
			jd2, err := parseTime(args[1])
			if err != nil {
				return err
			}
			years, err := a.searcher.YearsDiff(jd1, jd2)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%.6f\n", years)
			return nil
		},
	}
}
