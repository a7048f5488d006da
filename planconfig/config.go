// Package planconfig provides functional-options defaults for the planning
// core, plus an optional .env overlay for deployment-time tuning.
//
// The functional-options shape mirrors builder.Config in the teacher
// library (github.com/katalvlaran/lvlath/builder): a plain struct built by
// applying a left-to-right chain of Option values over sensible defaults.
package planconfig

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds tunables shared by board and optimizer callers. It is a
// plain value type; construct it with New and zero or more Options.
type Config struct {
	// DefaultSolveBudget is used by callers that don't pass an explicit
	// max_time_seconds to Optimizer.Solve.
	DefaultSolveBudget time.Duration

	// DefaultNumRoutes is used when a caller doesn't specify num_routes.
	DefaultNumRoutes int

	// PenaltyDimensionName names the penalty dimension that Solve's
	// dropped-node warning reports (spec.md §4.6.2); no penalty value is
	// computed on it.
	PenaltyDimensionName string
}

// Option configures a Config during construction.
type Option func(*Config)

// WithDefaultSolveBudget overrides the default wall-clock solve budget.
func WithDefaultSolveBudget(d time.Duration) Option {
	return func(c *Config) { c.DefaultSolveBudget = d }
}

// WithDefaultNumRoutes overrides the default route count.
func WithDefaultNumRoutes(n int) Option {
	return func(c *Config) { c.DefaultNumRoutes = n }
}

// WithPenaltyDimensionName overrides the default penalty dimension name.
func WithPenaltyDimensionName(name string) Option {
	return func(c *Config) { c.PenaltyDimensionName = name }
}

// New returns a Config with production-sensible defaults, then applies opts
// in order (later options win on conflicting fields).
func New(opts ...Option) Config {
	cfg := Config{
		DefaultSolveBudget:   30 * time.Second,
		DefaultNumRoutes:     1,
		PenaltyDimensionName: "time",
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// FromEnv loads a .env file (if present; a missing file is not an error,
// since godotenv.Load's error is discarded, mirroring
// haricheung-agentic-shell's startup sequence) and returns Options
// overriding New's defaults from FLEETPLAN_SOLVE_BUDGET_SECONDS and
// FLEETPLAN_NUM_ROUTES when present and well-formed. Malformed values are
// ignored in favor of the built-in default rather than failing startup.
func FromEnv(envPath string) []Option {
	if envPath != "" {
		_ = godotenv.Load(envPath)
	} else {
		_ = godotenv.Load()
	}

	var opts []Option
	if v, ok := os.LookupEnv("FLEETPLAN_SOLVE_BUDGET_SECONDS"); ok {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			opts = append(opts, WithDefaultSolveBudget(time.Duration(secs)*time.Second))
		}
	}
	if v, ok := os.LookupEnv("FLEETPLAN_NUM_ROUTES"); ok {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			opts = append(opts, WithDefaultNumRoutes(n))
		}
	}

	return opts
}

// NewFromEnv returns a Config built from New's defaults, FromEnv's
// overlay (loaded from envPath, or the process's default .env search
// when envPath is empty), then opts, in that precedence order.
func NewFromEnv(envPath string, opts ...Option) Config {
	return New(append(FromEnv(envPath), opts...)...)
}
