package config

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_MODE", "dev")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.AppMode)
	assert.True(t, cfg.IsDev())
	assert.False(t, cfg.IsProd())

	sim := cfg.Simulation
	assert.Equal(t, 3, sim.SlotCount)
	assert.Equal(t, 12, sim.DaysPerYear)
	assert.Equal(t, time.Minute, sim.RealPerGameDay)
	assert.Equal(t, 2, sim.BankruptcyGraceDays)
	assert.True(t, sim.DailyWithdrawalLimit.Equal(decimal.NewFromInt(500)))
	assert.True(t, sim.StartingCash.Equal(decimal.NewFromInt(100000)))
	assert.True(t, sim.MortgageAnnualRate.Equal(decimal.NewFromFloat(0.06)))
}

func TestLoad_RejectsUnknownMode(t *testing.T) {
	t.Setenv("APP_MODE", "staging")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_SimulationOverrides(t *testing.T) {
	t.Setenv("APP_MODE", "dev")
	t.Setenv("SIM_SLOT_COUNT", "5")
	t.Setenv("SIM_REAL_MS_PER_GAME_DAY", "120000")
	t.Setenv("SIM_DAILY_WITHDRAWAL_LIMIT", "750.50")

	cfg, err := Load()
	require.NoError(t, err)

	sim := cfg.Simulation
	assert.Equal(t, 5, sim.SlotCount)
	assert.Equal(t, 2*time.Minute, sim.RealPerGameDay)
	assert.True(t, sim.DailyWithdrawalLimit.Equal(decimal.NewFromFloat(750.50)))
}

func TestDecimalEnv_FallsBackOnGarbage(t *testing.T) {
	t.Setenv("SIM_STARTING_CASH", "not-a-number")

	v := decimalEnv("SIM_STARTING_CASH", "100000.00")
	assert.True(t, v.Equal(decimal.NewFromInt(100000)))
}
