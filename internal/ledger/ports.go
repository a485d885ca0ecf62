package ledger

import (
	"context"
	"time"

	"github.com/stakeworks/stake-ledger/internal/types"
)

// Clock supplies the current time. Settlement math depends on elapsed
// wall-clock seconds, so tests substitute a manual clock.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func SystemClock() Clock { return systemClock{} }

// EventSink receives staking events after a state change has been
// persisted. Delivery is best effort.
type EventSink interface {
	PublishStakingEvent(ctx context.Context, event *types.StakingEvent) error
}
