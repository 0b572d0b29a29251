package settlement

import (
	"fmt"

	"github.com/jhensel/fahrgeld/internal/models"
)

// ManualInput carries the admin-entered day counts for a manual settlement.
type ManualInput struct {
	// TotalWorkingDays is the number of carpool days in the settled period.
	TotalWorkingDays int

	// DriverDays maps member id to days that member drove.
	DriverDays map[string]int

	// ActiveDays maps member id to days that member was present at all
	// (driving or riding). Entered directly, not derived.
	ActiveDays map[string]int
}

// ComputeManual derives a settlement from admin-entered counts instead of
// trip records. Unlike the auto calculator it assumes a full car on every
// driven day: credit = driverDays × (memberCount-1) × fee.
//
// The fee is the one in effect on the given date (normally "today"); manual
// mode has no per-trip dates to resolve against.
//
// Inconsistent inputs are tolerated, not rejected: a member entered with more
// driver days than active days gets zero passenger days rather than negative.
// Use CheckManualInputs to surface such inconsistencies to the admin.
func ComputeManual(members []models.Member, input ManualInput, schedule *models.DailyFeeSchedule, asOf string) []models.SettlementResult {
	fee := ResolveFee(asOf, schedule)
	memberCount := len(members)

	results := make([]models.SettlementResult, len(members))
	for i, m := range members {
		driverDays := input.DriverDays[m.ID]
		activeDays := input.ActiveDays[m.ID]

		passengerDays := activeDays - driverDays
		if passengerDays < 0 {
			passengerDays = 0
		}

		results[i] = models.SettlementResult{
			MemberID:      m.ID,
			MemberName:    m.Name,
			DriverDays:    driverDays,
			PassengerDays: passengerDays,
			ActiveDays:    activeDays,
			Debt:          float64(passengerDays) * fee,
			Credit:        float64(driverDays) * float64(memberCount-1) * fee,
			GrossCredit:   float64(driverDays) * float64(memberCount) * fee,
		}
		results[i].Net = results[i].Credit - results[i].Debt
	}

	return results
}

// CheckManualInputs returns advisory warnings for inconsistent manual counts.
// The calculator still produces a result regardless; whether to block saving
// on warnings is the caller's call.
func CheckManualInputs(members []models.Member, input ManualInput) []string {
	var warnings []string

	totalDriverDays := 0
	for _, m := range members {
		d := input.DriverDays[m.ID]
		a := input.ActiveDays[m.ID]
		totalDriverDays += d

		if d > a {
			warnings = append(warnings, fmt.Sprintf("%s: %d driver days exceed %d active days", m.Name, d, a))
		}
		if input.TotalWorkingDays > 0 && a > input.TotalWorkingDays {
			warnings = append(warnings, fmt.Sprintf("%s: %d active days exceed the %d working days of the period", m.Name, a, input.TotalWorkingDays))
		}
	}

	if input.TotalWorkingDays > 0 && totalDriverDays != input.TotalWorkingDays {
		warnings = append(warnings, fmt.Sprintf("entered driver days sum to %d, period has %d working days", totalDriverDays, input.TotalWorkingDays))
	}

	return warnings
}
