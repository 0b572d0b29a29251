package models

// SettlementMode distinguishes how a settlement was computed.
type SettlementMode string

const (
	// ModeAuto derives day counts from recorded trips.
	ModeAuto SettlementMode = "auto"
	// ModeManual uses admin-entered day counts.
	ModeManual SettlementMode = "manual"
)

// SettlementResult is one member's row in a computed settlement.
type SettlementResult struct {
	// MemberID references the member; MemberName is the name captured at
	// computation time (kept verbatim in snapshots even if the member is
	// later renamed or removed).
	MemberID   string `json:"member_id"`
	MemberName string `json:"member_name"`

	// DriverDays is how many days this member was the recorded driver.
	DriverDays int `json:"driver_days"`

	// PassengerDays is how many days this member rode without driving.
	PassengerDays int `json:"passenger_days"`

	// ActiveDays is days with any participation. In auto mode it is
	// DriverDays+PassengerDays; in manual mode it is entered directly.
	ActiveDays int `json:"active_days"`

	// Debt is the total this member owes to drivers for their own seat.
	Debt float64 `json:"debt"`

	// Credit is what other riders owe this member for days they drove.
	Credit float64 `json:"credit"`

	// GrossCredit is an informational "if everyone always rode" figure
	// (full occupancy including the driver's own imputed seat). Not part
	// of Net.
	GrossCredit float64 `json:"gross_credit"`

	// Net is Credit - Debt. Positive means the member is owed money.
	Net float64 `json:"net"`
}

// SettlementSnapshot is an immutable saved settlement. Snapshots capture the
// results and the parameters that produced them; they are never recomputed,
// so later trip or roster edits leave saved history untouched.
type SettlementSnapshot struct {
	// ID is the unique identifier for the snapshot (UUID format).
	ID string `json:"id"`

	// Title is the admin-chosen name. Unique across snapshots.
	Title string `json:"title"`

	// Mode records whether the results came from the auto or manual calculator.
	Mode SettlementMode `json:"mode"`

	// Period is the settled period, e.g. "2024-01" for auto settlements or a
	// free-form label for manual ones. Unique per mode.
	Period string `json:"period"`

	// FeeAtSave is the full-day fee in effect when the snapshot was saved.
	FeeAtSave float64 `json:"fee_at_save"`

	// TotalWorkingDays is the manual-mode day count parameter. Zero for auto.
	TotalWorkingDays int `json:"total_working_days,omitempty"`

	// Results are the per-member rows as computed at save time.
	Results []SettlementResult `json:"results"`

	// CreatedAt is the Unix timestamp of the save; CreatedBy the admin's id.
	CreatedAt int64  `json:"created_at"`
	CreatedBy string `json:"created_by,omitempty"`
}
