package config

import (
	"fmt"
	"time"
)

// BankConfig points at the token balance service, the external ledger the
// stake ledger debits and credits spendable balances against.
type BankConfig struct {
	// Endpoint is the base URL of the bank API including the protocol
	// prefix, e.g. "http://bank.internal:8080".
	Endpoint      string        `mapstructure:"endpoint"`
	Timeout       time.Duration `mapstructure:"timeout"`
	MaxRetryTimes uint          `mapstructure:"max-retry-times"`
	RetryInterval time.Duration `mapstructure:"retry-interval"`
}

func (cfg *BankConfig) Validate() error {
	if cfg.Endpoint == "" {
		return fmt.Errorf("bank endpoint is required")
	}
	if cfg.Timeout <= 0 {
		return fmt.Errorf("bank timeout is required")
	}
	if cfg.MaxRetryTimes == 0 {
		return fmt.Errorf("bank max-retry-times is required")
	}
	if cfg.RetryInterval <= 0 {
		return fmt.Errorf("bank retry-interval is required")
	}
	return nil
}
