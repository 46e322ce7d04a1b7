// Package config loads ls-transits settings from defaults, an optional
// .ls-transits.toml, a .env file, LS_TRANSITS_* environment variables and
// command-line flags bound by the CLI.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/litescript/ls-transits/internal/astro"
	"github.com/litescript/ls-transits/internal/ephem"
	"github.com/litescript/ls-transits/internal/logging"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "LS_TRANSITS"

// ObserverConfig is the topocentric observer position.
type ObserverConfig struct {
	Lat float64 `mapstructure:"lat"`
	Lon float64 `mapstructure:"lon"`
	Alt float64 `mapstructure:"alt"`
}

// Config holds all runtime configuration.
type Config struct {
	LogLevel       string         `mapstructure:"log_level"`
	Backend        string         `mapstructure:"backend"`
	HorizonsURL    string         `mapstructure:"horizons_url"`
	RequestTimeout time.Duration  `mapstructure:"request_timeout"`
	CacheSize      int            `mapstructure:"cache_size"`
	Sidereal       string         `mapstructure:"sidereal"` // ayanamsa name, empty for tropical
	Topocentric    bool           `mapstructure:"topocentric"`
	Observer       ObserverConfig `mapstructure:"observer"`
	HouseSystem    string         `mapstructure:"house_system"`
	OrbsFile       string         `mapstructure:"orbs_file"`
	MetricsAddr    string         `mapstructure:"metrics_addr"`
}

// SetDefaults registers the built-in default for every key. Keys without a
// default are invisible to environment overrides during Unmarshal.
func SetDefaults(v *viper.Viper) {
	d := ephem.DefaultConfig()
	v.SetDefault("log_level", "warn")
	v.SetDefault("backend", d.Mode.String())
	v.SetDefault("horizons_url", d.HorizonsURL)
	v.SetDefault("request_timeout", d.RequestTimeout)
	v.SetDefault("cache_size", d.CacheSize)
	v.SetDefault("sidereal", "")
	v.SetDefault("topocentric", false)
	v.SetDefault("observer.lat", 0.0)
	v.SetDefault("observer.lon", 0.0)
	v.SetDefault("observer.alt", 0.0)
	v.SetDefault("house_system", "porphyry")
	v.SetDefault("orbs_file", "")
	v.SetDefault("metrics_addr", "")
}

// Init points v at its sources. cfgFile overrides the search for
// .ls-transits.toml in the working and home directories; dotenv names a
// .env file whose variables are exported unless already set. Missing
// optional files are not an error.
func Init(v *viper.Viper, cfgFile, dotenv string) error {
	if dotenv != "" {
		if err := godotenv.Load(dotenv); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", dotenv, err)
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(".ls-transits")
		v.SetConfigType("toml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

// Load applies defaults and decodes v.
func Load(v *viper.Viper) (Config, error) {
	SetDefaults(v)
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

// Level returns the parsed log level.
func (c Config) Level() logging.Level {
	return logging.ParseLevel(c.LogLevel)
}

// Ephemeris projects the configuration onto the oracle configuration.
func (c Config) Ephemeris() (ephem.Config, error) {
	mode, err := ephem.ParseMode(c.Backend)
	if err != nil {
		return ephem.Config{}, err
	}
	ay, err := ephem.ParseAyanamsa(c.Sidereal)
	if err != nil {
		return ephem.Config{}, err
	}
	if c.CacheSize < 0 {
		return ephem.Config{}, fmt.Errorf("cache_size must not be negative, got %d", c.CacheSize)
	}
	return ephem.Config{
		Mode:           mode,
		HorizonsURL:    c.HorizonsURL,
		RequestTimeout: c.RequestTimeout,
		CacheSize:      c.CacheSize,
		Ayanamsa:       ay,
		Observer: astro.Observer{
			LatDeg: c.Observer.Lat,
			LonDeg: c.Observer.Lon,
			AltM:   c.Observer.Alt,
		},
	}, nil
}

// Flags returns the oracle flags implied by the sidereal and topocentric
// settings. Speeds are always requested.
func (c Config) Flags() ephem.Flags {
	f := ephem.DefaultFlags
	if strings.TrimSpace(c.Sidereal) != "" {
		f |= ephem.FlagSidereal
	}
	if c.Topocentric {
		f |= ephem.FlagTopocentric
	}
	return f
}

// Houses returns the configured house system.
func (c Config) Houses() (astro.HouseSystem, error) {
	return astro.ParseHouseSystem(c.HouseSystem)
}
