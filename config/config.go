// Package config collects the settings of a playback session.
//
// Settings are resolved in layers. Defaults come first, then a .env file,
// then GANTT_* environment variables, and finally command-line flags.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/Pallavi2687/cpu-scheduler-frontend/playback"
	"github.com/Pallavi2687/cpu-scheduler-frontend/render"
	"github.com/Pallavi2687/cpu-scheduler-frontend/schedclient"
)

// DefaultEnvFile is the dotenv file read when no other is named.
const DefaultEnvFile = ".env"

// Environment variables read by Load.
const (
	EnvTickInterval = "GANTT_TICK_INTERVAL"
	EnvAPIBaseURL   = "GANTT_API_BASE_URL"
	EnvMonitorPort  = "GANTT_MONITOR_PORT"
	EnvTraceDB      = "GANTT_TRACE_DB"
	EnvSpeed        = "GANTT_SPEED"
	EnvWidth        = "GANTT_WIDTH"
	EnvLogEvents    = "GANTT_LOG_EVENTS"
)

// Flag names registered by RegisterFlags.
const (
	FlagTickInterval = "tick-interval"
	FlagAPIBaseURL   = "api-base-url"
	FlagMonitorPort  = "monitor-port"
	FlagTraceDB      = "trace-db"
	FlagSpeed        = "speed"
	FlagWidth        = "width"
	FlagLogEvents    = "log-events"
)

// ErrInvalidConfig is wrapped by every error returned by Validate.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds the settings of a playback session.
type Config struct {
	// TickInterval is the wall-clock time every block takes to animate.
	TickInterval time.Duration

	// APIBaseURL is the address of the scheduling service.
	APIBaseURL string

	// MonitorPort is the port of the monitoring server. 0 picks a free port.
	MonitorPort int

	// TraceDB is the path of the trace database, without the .sqlite3
	// suffix. Tracing is off when it is empty.
	TraceDB string

	// Speed scales the real-time engine. 2 plays twice as fast.
	Speed float64

	// Width is the number of columns of the terminal track.
	Width int

	// LogEvents turns on the engine event log.
	LogEvents bool
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		TickInterval: playback.DefaultTickInterval,
		APIBaseURL:   schedclient.DefaultBaseURL,
		Speed:        1,
		Width:        render.DefaultWidth,
	}
}

// Load returns the defaults overridden by the dotenv file and the
// environment. A missing dotenv file is not an error.
func Load(envFile string) (Config, error) {
	cfg := Default()

	if envFile != "" {
		err := godotenv.Load(envFile)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return cfg, fmt.Errorf("config: reading %s: %w", envFile, err)
		}
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// ApplyEnv overrides the settings that lookup knows about.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	var result *multierror.Error

	get := func(key string) (string, bool) {
		v, ok := lookup(key)
		if !ok {
			return "", false
		}

		v = strings.TrimSpace(v)

		return v, v != ""
	}

	if v, ok := get(EnvTickInterval); ok {
		d, err := parseInterval(v)
		if err != nil {
			result = multierror.Append(result, envError(EnvTickInterval, err))
		} else {
			c.TickInterval = d
		}
	}

	if v, ok := get(EnvAPIBaseURL); ok {
		c.APIBaseURL = v
	}

	if v, ok := get(EnvMonitorPort); ok {
		port, err := strconv.Atoi(v)
		if err != nil {
			result = multierror.Append(result, envError(EnvMonitorPort, err))
		} else {
			c.MonitorPort = port
		}
	}

	if v, ok := get(EnvTraceDB); ok {
		c.TraceDB = v
	}

	if v, ok := get(EnvSpeed); ok {
		speed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			result = multierror.Append(result, envError(EnvSpeed, err))
		} else {
			c.Speed = speed
		}
	}

	if v, ok := get(EnvWidth); ok {
		width, err := strconv.Atoi(v)
		if err != nil {
			result = multierror.Append(result, envError(EnvWidth, err))
		} else {
			c.Width = width
		}
	}

	if v, ok := get(EnvLogEvents); ok {
		on, err := strconv.ParseBool(v)
		if err != nil {
			result = multierror.Append(result, envError(EnvLogEvents, err))
		} else {
			c.LogEvents = on
		}
	}

	return result.ErrorOrNil()
}

func envError(key string, err error) error {
	return fmt.Errorf("config: %s: %w", key, err)
}

// parseInterval accepts a Go duration ("600ms") or a bare number of
// milliseconds ("600").
func parseInterval(v string) (time.Duration, error) {
	if ms, err := strconv.ParseFloat(v, 64); err == nil {
		return time.Duration(ms * float64(time.Millisecond)), nil
	}

	return time.ParseDuration(v)
}

// RegisterFlags defines one flag per setting, with the defaults as flag
// defaults.
func RegisterFlags(flags *pflag.FlagSet) {
	d := Default()

	flags.Duration(FlagTickInterval, d.TickInterval,
		"wall-clock time every block takes to animate")
	flags.String(FlagAPIBaseURL, d.APIBaseURL, "base URL of the scheduling service")
	flags.Int(FlagMonitorPort, d.MonitorPort,
		"port of the monitoring server, 0 picks a free port")
	flags.String(FlagTraceDB, d.TraceDB,
		"record the playback into this database (without .sqlite3)")
	flags.Float64(FlagSpeed, d.Speed, "playback speed factor")
	flags.Int(FlagWidth, d.Width, "columns of the terminal track")
	flags.Bool(FlagLogEvents, d.LogEvents, "log every engine event to stderr")
}

// ApplyFlags overrides the settings whose flags were set on the command
// line. Settings without a defined flag are left alone.
func (c *Config) ApplyFlags(flags *pflag.FlagSet) error {
	var err error

	changed := func(name string) bool {
		return err == nil && flags.Lookup(name) != nil && flags.Changed(name)
	}

	if changed(FlagTickInterval) {
		c.TickInterval, err = flags.GetDuration(FlagTickInterval)
	}

	if changed(FlagAPIBaseURL) {
		c.APIBaseURL, err = flags.GetString(FlagAPIBaseURL)
	}

	if changed(FlagMonitorPort) {
		c.MonitorPort, err = flags.GetInt(FlagMonitorPort)
	}

	if changed(FlagTraceDB) {
		c.TraceDB, err = flags.GetString(FlagTraceDB)
	}

	if changed(FlagSpeed) {
		c.Speed, err = flags.GetFloat64(FlagSpeed)
	}

	if changed(FlagWidth) {
		c.Width, err = flags.GetInt(FlagWidth)
	}

	if changed(FlagLogEvents) {
		c.LogEvents, err = flags.GetBool(FlagLogEvents)
	}

	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	return nil
}

// Validate reports every setting that cannot be used.
func (c Config) Validate() error {
	var result *multierror.Error

	if c.TickInterval <= 0 {
		result = multierror.Append(result, fmt.Errorf(
			"%w: tick interval must be positive, got %s",
			ErrInvalidConfig, c.TickInterval))
	}

	if c.Speed <= 0 {
		result = multierror.Append(result, fmt.Errorf(
			"%w: speed must be positive, got %g", ErrInvalidConfig, c.Speed))
	}

	if c.Width <= 0 {
		result = multierror.Append(result, fmt.Errorf(
			"%w: width must be positive, got %d", ErrInvalidConfig, c.Width))
	}

	if c.MonitorPort < 0 || c.MonitorPort > 65535 {
		result = multierror.Append(result, fmt.Errorf(
			"%w: monitor port %d out of range", ErrInvalidConfig, c.MonitorPort))
	}

	if c.APIBaseURL == "" {
		result = multierror.Append(result, fmt.Errorf(
			"%w: API base URL is empty", ErrInvalidConfig))
	}

	return result.ErrorOrNil()
}
