package config

import (
	"errors"
	"fmt"
	"time"

	sdkmath "cosmossdk.io/math"
)

// LedgerConfig carries the two construction-time ledger parameters. Both are
// immutable for the lifetime of the process; changing either requires a
// restart, which is intentional.
type LedgerConfig struct {
	// RatioPerSecond is the per-second growth ratio as a base-10 integer
	// scaled by 1e18, e.g. "1000000000" for +1e-9 per second.
	RatioPerSecond string `mapstructure:"ratio-per-second"`
	// MinStakeTime is the minimum duration between an account's last
	// settlement and a permitted withdrawal.
	MinStakeTime time.Duration `mapstructure:"min-stake-time"`
}

func (cfg *LedgerConfig) Validate() error {
	ratio, err := cfg.Ratio()
	if err != nil {
		return err
	}
	if ratio.IsNegative() {
		return errors.New("ratio-per-second must not be negative")
	}
	if cfg.MinStakeTime < 0 {
		return errors.New("min-stake-time must not be negative")
	}
	return nil
}

// Ratio parses RatioPerSecond into the fixed-point integer used by the
// compounding engine.
func (cfg *LedgerConfig) Ratio() (sdkmath.Int, error) {
	ratio, ok := sdkmath.NewIntFromString(cfg.RatioPerSecond)
	if !ok {
		return sdkmath.Int{}, fmt.Errorf("ratio-per-second %q is not a valid integer", cfg.RatioPerSecond)
	}
	return ratio, nil
}
