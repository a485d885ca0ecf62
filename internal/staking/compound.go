// Package staking implements the pure interest arithmetic of the stake
// ledger: continuous per-second compounding and fractional slashing. All
// fractions share a single 1e18 fixed-point scale.
package staking

import (
	"fmt"
	"math/big"

	sdkmath "cosmossdk.io/math"

	"github.com/stakeworks/stake-ledger/internal/types"
)

// RatioScale is the fixed-point denominator for the per-second growth ratio
// and for slash rates. A ratio of RatioScale means +100% per second.
var RatioScale = big.NewInt(1_000_000_000_000_000_000)

// maxAmountBits caps every settled value at the sdkmath.Int range. Working
// rates obey the same cap: repeated squaring grows them fast, and exceeding
// the cap must surface as an error rather than wrap.
const maxAmountBits = 256

// Compound returns principal grown by ratioPerSecond over elapsedSeconds,
// i.e. principal * (1 + ratio/1e18)^elapsedSeconds with floor rounding at
// each applied step.
//
// The loop is exponentiation by squaring on the additive rate: an odd
// exponent applies the current growth step to the principal, an even one
// squares the growth factor via r' = 2r + r^2 (the rate form of
// (1+r)^2 - 1) and halves the exponent. O(log elapsedSeconds) steps.
func Compound(principal, ratioPerSecond sdkmath.Int, elapsedSeconds uint64) (sdkmath.Int, error) {
	if elapsedSeconds == 0 || ratioPerSecond.IsZero() || principal.IsZero() {
		return principal, nil
	}
	if principal.IsNegative() || ratioPerSecond.IsNegative() {
		return sdkmath.Int{}, fmt.Errorf("negative compound input: %w", types.ErrInvalidAmount)
	}

	p := new(big.Int).Set(principal.BigInt())
	r := new(big.Int).Set(ratioPerSecond.BigInt())
	n := elapsedSeconds

	for n > 0 {
		if n&1 == 1 {
			// p += p * r / scale
			gain := new(big.Int).Mul(p, r)
			gain.Quo(gain, RatioScale)
			p.Add(p, gain)
			if p.BitLen() > maxAmountBits {
				return sdkmath.Int{}, fmt.Errorf("principal after %d remaining seconds: %w", n, types.ErrArithmeticOverflow)
			}
			n--
		} else {
			// r = 2r + r^2 / scale
			sq := new(big.Int).Mul(r, r)
			sq.Quo(sq, RatioScale)
			r.Add(r, r)
			r.Add(r, sq)
			if r.BitLen() > maxAmountBits {
				return sdkmath.Int{}, fmt.Errorf("working rate after halving to %d seconds: %w", n/2, types.ErrArithmeticOverflow)
			}
			n >>= 1
		}
	}

	return sdkmath.NewIntFromBigInt(p), nil
}

// AddChecked returns a + b, or ErrArithmeticOverflow when the sum leaves the
// representable amount range. sdkmath.Int.Add panics past 256 bits, so every
// ledger-side addition of amounts routes through here.
func AddChecked(a, b sdkmath.Int) (sdkmath.Int, error) {
	sum := new(big.Int).Add(a.BigInt(), b.BigInt())
	if sum.BitLen() > maxAmountBits {
		return sdkmath.Int{}, fmt.Errorf("amount sum: %w", types.ErrArithmeticOverflow)
	}
	return sdkmath.NewIntFromBigInt(sum), nil
}

// SlashAmount returns floor(amount * rate / 1e18). Rates are clamped to
// [0, 1e18], so a rate of 0 slashes nothing and 1e18 slashes everything.
func SlashAmount(amount, rate sdkmath.Int) sdkmath.Int {
	rate = ClampRate(rate)
	if amount.IsZero() || rate.IsZero() {
		return sdkmath.ZeroInt()
	}
	slashed := new(big.Int).Mul(amount.BigInt(), rate.BigInt())
	slashed.Quo(slashed, RatioScale)
	return sdkmath.NewIntFromBigInt(slashed)
}

// ClampRate bounds a slash rate to [0, 1e18].
func ClampRate(rate sdkmath.Int) sdkmath.Int {
	if rate.IsNil() || rate.IsNegative() {
		return sdkmath.ZeroInt()
	}
	max := sdkmath.NewIntFromBigInt(RatioScale)
	if rate.GT(max) {
		return max
	}
	return rate
}
