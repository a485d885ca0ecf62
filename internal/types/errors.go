package types

import "errors"

// Operation errors returned by the stake ledger. All of them are precondition
// violations: when one is returned, no ledger state has been mutated.
var (
	// ErrInsufficientBalance is returned when a stake request exceeds the
	// account's spendable balance reported by the bank.
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrInsufficientStake is returned when a withdraw request exceeds the
	// account's settled stake amount.
	ErrInsufficientStake = errors.New("insufficient stake")

	// ErrLockNotExpired is returned when a withdraw is attempted before the
	// minimum lock duration has elapsed since the account's last settlement.
	ErrLockNotExpired = errors.New("stake lock not expired")

	// ErrArithmeticOverflow is returned when compounding arithmetic exceeds
	// the representable amount range. Operations abort instead of wrapping,
	// otherwise the conservation invariant would silently break.
	ErrArithmeticOverflow = errors.New("arithmetic overflow")

	// ErrInvalidAmount is returned for negative or unset amounts.
	ErrInvalidAmount = errors.New("invalid amount")
)
