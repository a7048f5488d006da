package planconfig_test

import (
	"testing"
	"time"

	"github.com/VeBaS-UAV/mamoge-taskplanner/planconfig"
	"github.com/stretchr/testify/assert"
)

func TestNew_Defaults(t *testing.T) {
	cfg := planconfig.New()
	assert.Equal(t, 30*time.Second, cfg.DefaultSolveBudget)
	assert.Equal(t, 1, cfg.DefaultNumRoutes)
	assert.Equal(t, "time", cfg.PenaltyDimensionName)
}

func TestNew_OptionsOverrideDefaults(t *testing.T) {
	cfg := planconfig.New(
		planconfig.WithDefaultSolveBudget(5*time.Second),
		planconfig.WithDefaultNumRoutes(3),
		planconfig.WithPenaltyDimensionName("battery"),
	)
	assert.Equal(t, 5*time.Second, cfg.DefaultSolveBudget)
	assert.Equal(t, 3, cfg.DefaultNumRoutes)
	assert.Equal(t, "battery", cfg.PenaltyDimensionName)
}

// TestFromEnv_MissingFileFallsBackToDefaults mirrors the documented
// behavior: a missing .env file is not an error, and no Option is
// returned for a variable that isn't set.
func TestFromEnv_MissingFileFallsBackToDefaults(t *testing.T) {
	opts := planconfig.FromEnv("/nonexistent/path/.env")
	cfg := planconfig.New(opts...)
	assert.Equal(t, 30*time.Second, cfg.DefaultSolveBudget)
	assert.Equal(t, 1, cfg.DefaultNumRoutes)
}

func TestFromEnv_MalformedValueIgnored(t *testing.T) {
	t.Setenv("FLEETPLAN_SOLVE_BUDGET_SECONDS", "not-a-number")
	t.Setenv("FLEETPLAN_NUM_ROUTES", "-5")

	cfg := planconfig.NewFromEnv("/nonexistent/path/.env")
	assert.Equal(t, 30*time.Second, cfg.DefaultSolveBudget)
	assert.Equal(t, 1, cfg.DefaultNumRoutes)
}

func TestFromEnv_WellFormedValuesOverride(t *testing.T) {
	t.Setenv("FLEETPLAN_SOLVE_BUDGET_SECONDS", "45")
	t.Setenv("FLEETPLAN_NUM_ROUTES", "4")

	cfg := planconfig.NewFromEnv("/nonexistent/path/.env")
	assert.Equal(t, 45*time.Second, cfg.DefaultSolveBudget)
	assert.Equal(t, 4, cfg.DefaultNumRoutes)
}
