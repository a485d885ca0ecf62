package ledger

import (
	"context"
	"fmt"
	"math/big"
	"sync"
	"time"

	sdkmath "cosmossdk.io/math"
	"github.com/rs/zerolog/log"

	"github.com/stakeworks/stake-ledger/internal/clients/bankclient"
	"github.com/stakeworks/stake-ledger/internal/config"
	"github.com/stakeworks/stake-ledger/internal/db"
	"github.com/stakeworks/stake-ledger/internal/db/model"
	"github.com/stakeworks/stake-ledger/internal/observability/metrics"
	"github.com/stakeworks/stake-ledger/internal/staking"
	"github.com/stakeworks/stake-ledger/internal/types"
)

// Ledger is the stake accounting service. Each account has a stake record
// that grows by a fixed per-second compound ratio; records are settled to
// the current time before any mutation, so the stored amount plus elapsed
// time fully determine an account's stake.
//
// A process-wide mutex serializes mutating operations. Settlement reads a
// record, rewrites it and adjusts the running total; interleaving two such
// sequences would corrupt the total, and per-account locking buys little
// because the total is shared anyway.
type Ledger struct {
	mu sync.RWMutex

	ratioPerSecond sdkmath.Int
	minStakeTime   time.Duration

	database db.DbInterface
	bank     bankclient.BankInterface
	clock    Clock
	events   EventSink

	// totalStake mirrors the sum of all stored stake amounts. It is loaded
	// from the store at startup and maintained in memory because the store
	// cannot update a record and an aggregate atomically.
	totalStake sdkmath.Int
}

func New(
	ctx context.Context,
	cfg *config.LedgerConfig,
	database db.DbInterface,
	bank bankclient.BankInterface,
	clock Clock,
	events EventSink,
) (*Ledger, error) {
	ratio, err := cfg.Ratio()
	if err != nil {
		return nil, err
	}

	if clock == nil {
		clock = SystemClock()
	}

	totalStake, err := database.TotalStakedAmount(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load total staked amount: %w", err)
	}
	metrics.SetTotalStake(floatValue(totalStake))

	return &Ledger{
		ratioPerSecond: ratio,
		minStakeTime:   cfg.MinStakeTime,
		database:       database,
		bank:           bank,
		clock:          clock,
		events:         events,
		totalStake:     totalStake,
	}, nil
}

// Stake moves amount from the account's bank balance into its stake record.
// Staking restarts the account's withdrawal lock.
func (l *Ledger) Stake(ctx context.Context, account string, amount sdkmath.Int) (err error) {
	defer recordOpDuration("stake", time.Now(), &err)

	if err := validateAmount(amount); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now, settled, accrual, err := l.settle(ctx, account)
	if err != nil {
		return err
	}

	balance, err := l.bank.BalanceOf(ctx, account)
	if err != nil {
		return fmt.Errorf("failed to check balance: %w", err)
	}
	if balance.LT(amount) {
		return types.ErrInsufficientBalance
	}

	// Both sums are bounds-checked before the debit so an overflowing
	// request is rejected with no mutation on either ledger.
	newAmount, err := staking.AddChecked(settled, amount)
	if err != nil {
		return err
	}
	newTotal, err := staking.AddChecked(l.totalStake, accrual)
	if err == nil {
		newTotal, err = staking.AddChecked(newTotal, amount)
	}
	if err != nil {
		return err
	}

	if err := l.bank.Debit(ctx, account, amount); err != nil {
		return err
	}

	if err := l.database.SaveAccountStake(ctx, model.NewAccountStakeDocument(account, newAmount, now)); err != nil {
		// The bank debit already happened; compensate so funds are not
		// stranded outside both ledgers.
		if creditErr := l.bank.Credit(ctx, account, amount); creditErr != nil {
			log.Ctx(ctx).Error().Err(creditErr).
				Str("account", account).
				Str("amount", amount.String()).
				Msg("failed to compensate bank debit after store failure, manual intervention required")
		}
		return fmt.Errorf("failed to save stake record: %w", err)
	}

	l.setTotal(newTotal)
	l.emit(ctx, types.EventStake, account, amount, newAmount, now)
	return nil
}

// Withdraw moves amount from the account's settled stake back to its bank
// balance. It fails until minStakeTime has passed since the account's last
// settlement.
func (l *Ledger) Withdraw(ctx context.Context, account string, amount sdkmath.Int) (err error) {
	defer recordOpDuration("withdraw", time.Now(), &err)

	if err := validateAmount(amount); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	doc, err := l.database.GetAccountStake(ctx, account)
	if err != nil {
		return err
	}
	now := l.now(doc)
	if now-doc.LastUpdate <= int64(l.minStakeTime/time.Second) {
		return types.ErrLockNotExpired
	}

	stored, err := doc.AmountInt()
	if err != nil {
		return err
	}
	settled, err := l.settleAmount(stored, now-doc.LastUpdate)
	if err != nil {
		return err
	}
	if settled.LT(amount) {
		return types.ErrInsufficientStake
	}

	newAmount := settled.Sub(amount)
	newTotal, err := staking.AddChecked(l.totalStake, settled.Sub(stored))
	if err != nil {
		return err
	}
	newTotal = newTotal.Sub(amount)

	if err := l.database.SaveAccountStake(ctx, model.NewAccountStakeDocument(account, newAmount, now)); err != nil {
		return fmt.Errorf("failed to save stake record: %w", err)
	}

	if err := l.bank.Credit(ctx, account, amount); err != nil {
		// Roll the record back so the stake is not lost. The original
		// document still settles correctly from its old timestamp.
		if restoreErr := l.database.SaveAccountStake(ctx, doc); restoreErr != nil {
			log.Ctx(ctx).Error().Err(restoreErr).
				Str("account", account).
				Msg("failed to restore stake record after bank credit failure, manual intervention required")
			l.setTotal(newTotal)
			return err
		}
		return err
	}

	l.setTotal(newTotal)
	l.emit(ctx, types.EventWithdraw, account, amount, newAmount, now)
	return nil
}

// Slash burns a fraction of the account's settled stake. The rate is a
// 1e18-scaled ratio and is clamped to [0, 1]; the burned amount is rounded
// down and leaves the system entirely, no bank transfer happens.
func (l *Ledger) Slash(ctx context.Context, account string, rate sdkmath.Int) (err error) {
	defer recordOpDuration("slash", time.Now(), &err)

	if rate.IsNil() {
		return types.ErrInvalidAmount
	}
	rate = staking.ClampRate(rate)

	l.mu.Lock()
	defer l.mu.Unlock()

	now, settled, accrual, err := l.settle(ctx, account)
	if err != nil {
		return err
	}

	slashed := staking.SlashAmount(settled, rate)
	newAmount := settled.Sub(slashed)
	newTotal, err := staking.AddChecked(l.totalStake, accrual)
	if err != nil {
		return err
	}
	newTotal = newTotal.Sub(slashed)

	if err := l.database.SaveAccountStake(ctx, model.NewAccountStakeDocument(account, newAmount, now)); err != nil {
		return fmt.Errorf("failed to save stake record: %w", err)
	}

	l.setTotal(newTotal)
	l.emit(ctx, types.EventSlash, account, slashed, newAmount, now)
	return nil
}

// StakeOf returns the account's stake settled to the current time. It is a
// pure read, the stored record is left untouched.
func (l *Ledger) StakeOf(ctx context.Context, account string) (sdkmath.Int, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	doc, err := l.database.GetAccountStake(ctx, account)
	if err != nil {
		return sdkmath.Int{}, err
	}
	stored, err := doc.AmountInt()
	if err != nil {
		return sdkmath.Int{}, err
	}
	return l.settleAmount(stored, l.now(doc)-doc.LastUpdate)
}

// TotalStake returns the sum of all stored stake amounts. Unsettled accrual
// since each account's last update is not included.
func (l *Ledger) TotalStake(ctx context.Context) (sdkmath.Int, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.totalStake, nil
}

// settle loads the account's record, compounds it to the current time and
// persists nothing. Callers persist the post-operation amount themselves so
// a failed operation leaves no partial write. The returned accrual is the
// interest minted by this settlement and must be added to the total by the
// caller once its write succeeds.
func (l *Ledger) settle(ctx context.Context, account string) (now int64, settled, accrual sdkmath.Int, err error) {
	doc, err := l.database.GetAccountStake(ctx, account)
	if err != nil {
		return 0, sdkmath.Int{}, sdkmath.Int{}, err
	}

	stored, err := doc.AmountInt()
	if err != nil {
		return 0, sdkmath.Int{}, sdkmath.Int{}, err
	}

	now = l.now(doc)
	settled, err = l.settleAmount(stored, now-doc.LastUpdate)
	if err != nil {
		return 0, sdkmath.Int{}, sdkmath.Int{}, err
	}
	return now, settled, settled.Sub(stored), nil
}

func (l *Ledger) settleAmount(stored sdkmath.Int, elapsed int64) (sdkmath.Int, error) {
	if elapsed <= 0 || stored.IsZero() {
		return stored, nil
	}
	return staking.Compound(stored, l.ratioPerSecond, uint64(elapsed))
}

// now clamps the clock to the record's last update so a backwards clock step
// never produces negative elapsed time.
func (l *Ledger) now(doc *model.AccountStakeDocument) int64 {
	now := l.clock.Now().Unix()
	if now < doc.LastUpdate {
		return doc.LastUpdate
	}
	return now
}

func (l *Ledger) setTotal(total sdkmath.Int) {
	l.totalStake = total
	metrics.SetTotalStake(floatValue(total))
}

func (l *Ledger) emit(ctx context.Context, eventType types.EventType, account string, amount, resultingAmount sdkmath.Int, timestamp int64) {
	if l.events == nil {
		return
	}
	event := types.NewStakingEvent(eventType, account, amount, resultingAmount, l.totalStake, timestamp)
	if err := l.events.PublishStakingEvent(ctx, event); err != nil {
		// Event delivery is best effort, the state change already committed.
		log.Ctx(ctx).Error().Err(err).
			Str("event_type", eventType.String()).
			Str("account", account).
			Msg("failed to publish staking event")
	}
}

func validateAmount(amount sdkmath.Int) error {
	if amount.IsNil() || amount.IsNegative() {
		return types.ErrInvalidAmount
	}
	return nil
}

func recordOpDuration(operation string, startTime time.Time, err *error) {
	metrics.RecordLedgerOpDuration(operation, time.Since(startTime), *err != nil)
}

func floatValue(amount sdkmath.Int) float64 {
	f, _ := new(big.Float).SetInt(amount.BigInt()).Float64()
	return f
}
