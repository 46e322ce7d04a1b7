package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/litescript/ls-transits/internal/aspect"
	"github.com/litescript/ls-transits/internal/chart"
	"github.com/litescript/ls-transits/internal/ephem"
	"github.com/litescript/ls-transits/internal/search"
)

func newAspectCmd(a *app) *cobra.Command {
	var both bool
	cmd := &cobra.Command{
		Use:   "aspect",
		Short: "Find the next exact aspect",
		Long: `Find the next time a body makes an exact aspect to a fixed longitude,
another body or fixed star, or a house cusp. Aspects are named (square,
trine, ...) or given in degrees, counted forward from the aspected point.
With --both the aspect is matched on either side.`,
	}
	cmd.PersistentFlags().BoolVar(&both, "both", false, "match the aspect on either side")

	cmd.AddCommand(
		newAspectFixedCmd(a, &both),
		newAspectWithCmd(a, &both),
		newAspectCuspCmd(a, &both),
	)
	return cmd
}

func aspectLabel(who string, asp float64, what string, both bool) string {
	name := aspect.Name(asp)
	if both {
		name = aspect.Name(aspect.Fold(asp))
	}
	return fmt.Sprintf("%s %s %s", who, name, what)
}

func newAspectFixedCmd(a *app, both *bool) *cobra.Command {
	var sf searchFlags
	cmd := &cobra.Command{
		Use:     "fixed <body> <aspect> <longitude>",
		Short:   "Aspect to a fixed longitude",
		Example: `  ls-transits aspect fixed saturn conjunction 0 --from 2024-01-01`,
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := ephem.ParseBody(args[0])
			if err != nil {
				return err
			}
			asp, err := aspect.Parse(args[1])
			if err != nil {
				return err
			}
			lon, err := strconv.ParseFloat(args[2], 64)
			if err != nil {
				return fmt.Errorf("longitude: %w", err)
			}
			jd, err := sf.start()
			if err != nil {
				return err
			}
			opts := sf.options()

			var res search.Result
			if *both {
				res, err = a.searcher.NextAspect180(body, asp, lon, jd, opts)
			} else {
				res, err = a.searcher.NextAspect(body, asp, lon, jd, opts)
			}
			if err != nil {
				return err
			}
			printResult(cmd.OutOrStdout(), aspectLabel(body.String(), asp, chart.FormatLon(lon), *both), res, opts)
			return nil
		},
	}
	sf.register(cmd)
	return cmd
}

func newAspectWithCmd(a *app, both *bool) *cobra.Command {
	var sf searchFlags
	cmd := &cobra.Command{
		Use:   "with <body> <aspect> <body-or-star>",
		Short: "Aspect to another body or a fixed star",
		Example: `  ls-transits aspect with mars square saturn
  ls-transits aspect with venus conjunction regulus --both`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := ephem.ParseBody(args[0])
			if err != nil {
				return err
			}
			asp, err := aspect.Parse(args[1])
			if err != nil {
				return err
			}
			other := parseTarget(args[2])
			jd, err := sf.start()
			if err != nil {
				return err
			}
			opts := sf.options()

			var res search.Result
			if *both {
				res, err = a.searcher.NextAspectWith180(body, asp, other, jd, opts)
			} else {
				res, err = a.searcher.NextAspectWith(body, asp, other, jd, opts)
			}
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			printResult(w, aspectLabel(body.String(), asp, other.String(), *both), res, opts)
			if res.Found() {
				fmt.Fprintf(w, "  %s at %s\n", other, chart.FormatLon(res.Other.Lon()))
			}
			return nil
		},
	}
	sf.register(cmd)
	return cmd
}

func newAspectCuspCmd(a *app, both *bool) *cobra.Command {
	var sf searchFlags
	cmd := &cobra.Command{
		Use:   "cusp <body-or-star> <aspect> <house>",
		Short: "Aspect to a house cusp",
		Long: `Find the next time a body or star makes an aspect to a house cusp of
the configured observer. House 1 is the ascendant; with a quadrant system
house 10 is the midheaven.`,
		Example: `  ls-transits aspect cusp sun conjunction 10 --span 2`,
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := parseTarget(args[0])
			asp, err := aspect.Parse(args[1])
			if err != nil {
				return err
			}
			house, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("house: %w", err)
			}
			jd, err := sf.start()
			if err != nil {
				return err
			}
			opts := sf.options()
			q := search.CuspQuery{Cusp: house, Observer: a.observer, System: a.system}

			var res search.Result
			if *both {
				res, err = a.searcher.NextAspectCusp180(target, asp, q, jd, opts)
			} else {
				res, err = a.searcher.NextAspectCusp(target, asp, q, jd, opts)
			}
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			printResult(w, aspectLabel(target.String(), asp, fmt.Sprintf("cusp %d", house), *both), res, opts)
			if res.Found() {
				if cusp, ok := res.Houses.Cusp(house); ok {
					fmt.Fprintf(w, "  cusp %d (%s) at %s\n", house, res.Houses.System, chart.FormatLon(cusp))
				}
			}
			return nil
		},
	}
	sf.register(cmd)
	return cmd
}
