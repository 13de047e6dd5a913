package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWithoutFile(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "data", cfg.Storage.DataDir)
	assert.Equal(t, 12, cfg.Storage.LockAttempts)
	assert.Equal(t, 3, cfg.Storage.WriteRetries)
	assert.Equal(t, int64(5000000), cfg.Pricing.PriceWarnCeiling)
	assert.Equal(t, int64(1150000), cfg.Subscription.BasePrice)
	assert.Equal(t, "info", cfg.Logger.Level)

	require.Len(t, cfg.Partners, 3)
	var sum float64
	for _, p := range cfg.Partners {
		sum += p.Percent
	}
	assert.InDelta(t, 100.0, sum, 1e-9)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("storage:\n  data_dir: elsewhere\npricing:\n  light_surcharge: 25000\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "elsewhere", cfg.Storage.DataDir)
	assert.Equal(t, int64(25000), cfg.Pricing.LightSurcharge)
	assert.Equal(t, int64(100000), cfg.Pricing.PlayRateDay, "defaults fill unset keys")
	assert.Same(t, cfg, Get())
}
