package models

// TripType determines how much of the daily fee a trip charges.
type TripType string

const (
	// TripFull is a regular commute (both directions); charges the full fee.
	TripFull TripType = "full"
	// TripMorning is a one-way morning trip; charges half the fee.
	TripMorning TripType = "morning"
	// TripEvening is a one-way evening trip; charges half the fee.
	TripEvening TripType = "evening"
)

// Valid reports whether t is a known trip type. The empty string is
// accepted and treated as TripFull.
func (t TripType) Valid() bool {
	switch t {
	case TripFull, TripMorning, TripEvening, "":
		return true
	}
	return false
}

// TripRecord is one day's carpool entry. There is at most one record per
// calendar date.
type TripRecord struct {
	// ID is the unique identifier for the trip (UUID format).
	ID string `json:"id"`

	// Date is the calendar day in YYYY-MM-DD format. Unique across trips.
	Date string `json:"date"`

	// DriverID is the member who drove. Empty if no driver was assigned yet.
	DriverID string `json:"driver_id"`

	// ParticipantIDs are the members who rode that day. The list may or may
	// not include the driver; the settlement engine tolerates both (the
	// driver never pays for their own seat either way).
	ParticipantIDs []string `json:"participant_ids"`

	// Type is the trip type (full/morning/evening). Empty means full.
	Type TripType `json:"type"`

	// DistanceKm is the recorded route length from the GPS subsystem.
	// Stored for display only; the settlement engine does not use it.
	DistanceKm float64 `json:"distance_km,omitempty"`

	// CreatedAt and UpdatedAt are Unix timestamps.
	CreatedAt int64 `json:"created_at"`
	UpdatedAt int64 `json:"updated_at"`
}
