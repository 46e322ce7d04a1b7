package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/litescript/ls-transits/internal/astro"
	"github.com/litescript/ls-transits/internal/config"
	"github.com/litescript/ls-transits/internal/ephem"
	"github.com/litescript/ls-transits/internal/logging"
	"github.com/litescript/ls-transits/internal/metrics"
	"github.com/litescript/ls-transits/internal/search"
	"github.com/litescript/ls-transits/internal/version"
)

// app carries what every command needs once configuration is loaded.
type app struct {
	v        *viper.Viper
	cfg      config.Config
	log      *logging.Logger
	metrics  *metrics.Metrics
	oracle   ephem.Oracle
	searcher *search.Searcher
	observer astro.Observer
	system   astro.HouseSystem
	srv      *http.Server
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:   "ls-transits",
		Short: "Planetary stations, aspects and ingresses",
		Long: `ls-transits searches continuous time for astronomical events: stations
of the planets, exact aspects to fixed points, bodies, fixed stars and house
cusps, and sign ingresses. Results print as tables or JSON, or browse in a
terminal UI.`,
		Version:           version.Version,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(*cobra.Command, []string) { a.teardown() },
	}

	pf := root.PersistentFlags()
	pf.String("config", "", "config file (default .ls-transits.toml)")
	pf.String("env-file", ".env", "dotenv file read before the environment")
	pf.String("log-level", "", "log level (debug, info, warn, error)")
	pf.String("backend", "", "ephemeris backend (analytic, horizons)")
	pf.String("sidereal", "", "ayanamsa for sidereal positions (lahiri, raman, fagan-bradley)")
	pf.Bool("topocentric", false, "positions as seen from the configured observer")
	pf.String("metrics-addr", "", "serve Prometheus metrics on this address")

	for key, flag := range map[string]string{
		"log_level":    "log-level",
		"backend":      "backend",
		"sidereal":     "sidereal",
		"topocentric":  "topocentric",
		"metrics_addr": "metrics-addr",
	} {
		_ = a.v.BindPFlag(key, pf.Lookup(flag))
	}

	root.AddCommand(
		newRetroCmd(a),
		newCrossCmd(a),
		newAspectCmd(a),
		newAspectarianCmd(a),
		newYearsCmd(a),
		newChartCmd(a),
		newTUICmd(a),
	)
	return root
}

// setup loads configuration and builds the oracle chain.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	envFile, _ := cmd.Flags().GetString("env-file")
	if err := config.Init(a.v, cfgFile, envFile); err != nil {
		return err
	}
	cfg, err := config.Load(a.v)
	if err != nil {
		return err
	}
	a.cfg = cfg

	a.log = logging.New(cfg.Level())
	a.log.SetOutput(cmd.ErrOrStderr())

	ecfg, err := cfg.Ephemeris()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	a.observer = ecfg.Observer
	if a.system, err = cfg.Houses(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	a.metrics = metrics.New(reg)

	if a.oracle, err = ephem.Open(ecfg, a.metrics); err != nil {
		return fmt.Errorf("open ephemeris: %w", err)
	}
	a.searcher = search.New(a.oracle, cfg.Flags(),
		search.WithLogger(a.log),
		search.WithMetrics(a.metrics),
	)
	a.log.Debug("ephemeris %s, flags %d", a.oracle.Name(), cfg.Flags())

	if cfg.MetricsAddr != "" {
		a.serveMetrics(cfg.MetricsAddr, reg)
	}
	return nil
}

func (a *app) serveMetrics(addr string, reg *prometheus.Registry) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	a.srv = &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		a.log.Info("metrics on http://%s/metrics", addr)
		if err := a.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.Error("metrics server: %v", err)
		}
	}()
}

func (a *app) teardown() {
	if a.srv == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_ = a.srv.Shutdown(ctx)
}

// timeLayouts are the accepted calendar formats, all read as UTC.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// parseTime reads "now", a calendar time or a bare Julian day.
func parseTime(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "now") {
		return astro.JulianNow(), nil
	}
	if jd, err := strconv.ParseFloat(s, 64); err == nil {
		return jd, nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return astro.JulianDate(t), nil
		}
	}
	return 0, fmt.Errorf("cannot parse time %q: want now, YYYY-MM-DD[ HH:MM[:SS]], RFC 3339 or a Julian day", s)
}

func formatJD(jd float64) string {
	return fmt.Sprintf("%s UT (JD %.6f)", astro.TimeFromJulian(jd).Format("2006-01-02 15:04:05"), jd)
}

// parseTarget reads a body name, or failing that, a fixed star name.
func parseTarget(s string) search.Target {
	if b, err := ephem.ParseBody(s); err == nil {
		return search.BodyTarget(b)
	}
	return search.StarTarget(strings.TrimSpace(s))
}

// searchFlags are the options shared by the event searches.
type searchFlags struct {
	from     string
	step     float64
	span     float64
	backward bool
}

func (f *searchFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&f.from, "from", "now", "start time")
	fl.Float64Var(&f.step, "step", 0, "initial step in days (0 picks the default)")
	fl.Float64Var(&f.span, "span", 0, "give up after this many days (0 searches without limit)")
	fl.BoolVarP(&f.backward, "backward", "b", false, "search back in time")
}

func (f *searchFlags) start() (float64, error) {
	return parseTime(f.from)
}

func (f *searchFlags) options() search.Options {
	return search.Options{Step: f.step, Backward: f.backward, DaySpan: f.span}
}
