package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/ledgerd/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "EUR", cfg.Finance.BaseCurrency)
	assert.Equal(t, 50, cfg.Finance.SearchLimit)
	assert.Equal(t, 7, cfg.Alerts.InvoiceLeadDays)
	assert.Equal(t, 80, cfg.Alerts.BudgetWarnPercent)
	assert.Equal(t, 6, cfg.Forecast.Lookback)
	assert.Equal(t, 3, cfg.Forecast.Horizon)
	assert.Equal(t, 25, cfg.DB.MaxOpenConns)
	assert.Equal(t, 5, cfg.DB.MaxIdleConns)
	assert.Equal(t, 5*time.Minute, cfg.DB.ConnMaxLifetime)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("BASE_CURRENCY", "USD")
	t.Setenv("DB_MAX_OPEN_CONNS", "10")
	t.Setenv("DB_CONN_MAX_LIFETIME", "90s")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "USD", cfg.Finance.BaseCurrency)
	assert.Equal(t, 10, cfg.DB.MaxOpenConns)
	assert.Equal(t, 90*time.Second, cfg.DB.ConnMaxLifetime)
}

func TestConnectionString(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres://postgres:@localhost:5432/ledgerd?sslmode=disable", cfg.ConnectionString())
}
