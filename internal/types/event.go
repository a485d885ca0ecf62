package types

import sdkmath "cosmossdk.io/math"

type EventType string

func (e EventType) String() string {
	return string(e)
}

const (
	EventStake    EventType = "stakeledger.v1.EventStake"
	EventWithdraw EventType = "stakeledger.v1.EventWithdraw"
	EventSlash    EventType = "stakeledger.v1.EventSlash"
)

// StakingEvent is emitted after every successful mutating ledger operation.
// Amount is the operation delta (staked, withdrawn or slashed amount),
// ResultingAmount the account's stake after the operation, TotalStake the
// aggregate after the operation and Timestamp the settlement time in unix
// seconds.
type StakingEvent struct {
	EventType       EventType   `json:"event_type"`
	Account         string      `json:"account"`
	Amount          sdkmath.Int `json:"amount"`
	ResultingAmount sdkmath.Int `json:"resulting_amount"`
	TotalStake      sdkmath.Int `json:"total_stake"`
	Timestamp       int64       `json:"timestamp"`
}

func NewStakingEvent(
	eventType EventType,
	account string,
	amount sdkmath.Int,
	resultingAmount sdkmath.Int,
	totalStake sdkmath.Int,
	timestamp int64,
) *StakingEvent {
	return &StakingEvent{
		EventType:       eventType,
		Account:         account,
		Amount:          amount,
		ResultingAmount: resultingAmount,
		TotalStake:      totalStake,
		Timestamp:       timestamp,
	}
}
