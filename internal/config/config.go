package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"Ledgerd"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	DB struct {
		Host            string        `envconfig:"DB_HOST" default:"localhost"`
		Port            int           `envconfig:"DB_PORT" default:"5432"`
		User            string        `envconfig:"DB_USER" default:"postgres"`
		Password        string        `envconfig:"DB_PASSWORD" default:""`
		Name            string        `envconfig:"DB_NAME" default:"ledgerd"`
		MaxOpenConns    int           `envconfig:"DB_MAX_OPEN_CONNS" default:"25"`
		MaxIdleConns    int           `envconfig:"DB_MAX_IDLE_CONNS" default:"5"`
		ConnMaxLifetime time.Duration `envconfig:"DB_CONN_MAX_LIFETIME" default:"5m"`
	}

	Server struct {
		Timeout time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
	}

	Finance struct {
		// BaseCurrency is the single reporting currency all normalized
		// amounts are expressed in.
		BaseCurrency string `envconfig:"BASE_CURRENCY" default:"EUR"`
		SearchLimit  int    `envconfig:"SEARCH_RESULT_LIMIT" default:"50"`
	}

	Alerts struct {
		InvoiceLeadDays   int `envconfig:"ALERT_INVOICE_LEAD_DAYS" default:"7"`
		BudgetWarnPercent int `envconfig:"ALERT_BUDGET_WARN_PERCENT" default:"80"`
	}

	Forecast struct {
		Lookback int `envconfig:"FORECAST_LOOKBACK" default:"6"`
		Horizon  int `envconfig:"FORECAST_HORIZON" default:"3"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
