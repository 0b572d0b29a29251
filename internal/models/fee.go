package models

// DailyFeeSchedule is the singleton fee configuration. It carries the current
// per-person per-day fee plus at most one scheduled change: dates before
// EffectiveDate are charged PreviousFee, dates on or after it CurrentFee.
type DailyFeeSchedule struct {
	// CurrentFee is the fee charged per person for a full day.
	// Non-positive means "not configured"; resolution falls back to a default.
	CurrentFee float64 `json:"current_fee"`

	// PreviousFee is the fee that applied before the last scheduled change.
	// Nil when no change is scheduled.
	PreviousFee *float64 `json:"previous_fee,omitempty"`

	// EffectiveDate is the YYYY-MM-DD day from which CurrentFee applies.
	// Empty means CurrentFee applies to all dates.
	EffectiveDate string `json:"effective_date,omitempty"`

	// UpdatedAt is the Unix timestamp of the last admin change.
	UpdatedAt int64 `json:"updated_at"`
}
