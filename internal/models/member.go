package models

// Member represents one participant in the carpool roster.
type Member struct {
	// ID is the unique identifier for the member (UUID format).
	ID string `json:"id"`

	// Name is the display name shown in the calendar and settlement views.
	Name string `json:"name"`

	// CreatedAt is the Unix timestamp when the member was added.
	CreatedAt int64 `json:"created_at"`
}
