package config

import (
	"testing"
	"time"

	sdkmath "cosmossdk.io/math"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Ledger: LedgerConfig{
			RatioPerSecond: "1000000000",
			MinStakeTime:   100 * time.Second,
		},
		Db: DbConfig{
			Username: "test",
			Password: "test",
			Address:  "mongodb://localhost:27017",
			DbName:   "test",
		},
		Bank: BankConfig{
			Endpoint:      "http://localhost:8081",
			Timeout:       15 * time.Second,
			MaxRetryTimes: 3,
			RetryInterval: 1 * time.Second,
		},
		Queue: QueueConfig{
			QueueUser:      "test",
			QueuePassword:  "test",
			Url:            "localhost:5672",
			QueueName:      "staking_events",
			PublishTimeout: 5 * time.Second,
		},
		API: APIConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Metrics: MetricsConfig{
			Host: "0.0.0.0",
			Port: 2112,
		},
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := validConfig()
	require.NoError(t, cfg.Validate())
}

func TestLedgerConfig(t *testing.T) {
	t.Run("ratio parses to fixed-point int", func(t *testing.T) {
		cfg := validConfig()
		ratio, err := cfg.Ledger.Ratio()
		require.NoError(t, err)
		assert.Equal(t, sdkmath.NewInt(1_000_000_000), ratio)
	})
	t.Run("non-numeric ratio is rejected", func(t *testing.T) {
		cfg := validConfig()
		cfg.Ledger.RatioPerSecond = "fast"
		require.Error(t, cfg.Validate())
	})
	t.Run("negative ratio is rejected", func(t *testing.T) {
		cfg := validConfig()
		cfg.Ledger.RatioPerSecond = "-1"
		require.Error(t, cfg.Validate())
	})
	t.Run("zero ratio and zero lock are allowed", func(t *testing.T) {
		cfg := validConfig()
		cfg.Ledger.RatioPerSecond = "0"
		cfg.Ledger.MinStakeTime = 0
		require.NoError(t, cfg.Validate())
	})
}

func TestConfigValidateFailures(t *testing.T) {
	t.Run("missing db name", func(t *testing.T) {
		cfg := validConfig()
		cfg.Db.DbName = ""
		require.Error(t, cfg.Validate())
	})
	t.Run("missing bank endpoint", func(t *testing.T) {
		cfg := validConfig()
		cfg.Bank.Endpoint = ""
		require.Error(t, cfg.Validate())
	})
	t.Run("out of range api port", func(t *testing.T) {
		cfg := validConfig()
		cfg.API.Port = 70000
		require.Error(t, cfg.Validate())
	})
	t.Run("missing queue name", func(t *testing.T) {
		cfg := validConfig()
		cfg.Queue.QueueName = ""
		require.Error(t, cfg.Validate())
	})
}
