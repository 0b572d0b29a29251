// Package settlement implements the carpool cost-splitting engine: fee
// resolution against the (possibly mid-period changing) daily fee schedule,
// and the two settlement calculators — auto (from recorded trips) and manual
// (from admin-entered day counts).
//
// Everything in this package is a pure function over its inputs. The fee
// schedule is passed in explicitly rather than read from shared state, so
// every computation is reproducible.
package settlement

import (
	"github.com/jhensel/fahrgeld/internal/models"
)

// DefaultDailyFee applies when the schedule is missing or has no configured fee.
const DefaultDailyFee = 100.0

// ResolveFee returns the per-person full-day fee in effect on the given
// YYYY-MM-DD date. Dates before a scheduled change keep the previous fee;
// dates on or after it (or any date when no change is scheduled) get the
// current fee.
func ResolveFee(date string, schedule *models.DailyFeeSchedule) float64 {
	if schedule == nil {
		return DefaultDailyFee
	}

	current := schedule.CurrentFee
	if current <= 0 {
		current = DefaultDailyFee
	}

	if schedule.EffectiveDate != "" && date < schedule.EffectiveDate {
		if schedule.PreviousFee != nil && *schedule.PreviousFee > 0 {
			return *schedule.PreviousFee
		}
		return current
	}

	return current
}

// TripFee returns the fee one seat costs on the given trip: the resolved
// daily fee, halved for one-way (morning/evening) trips.
func TripFee(date string, tripType models.TripType, schedule *models.DailyFeeSchedule) float64 {
	fee := ResolveFee(date, schedule)
	if tripType == models.TripMorning || tripType == models.TripEvening {
		return fee / 2
	}
	return fee
}
