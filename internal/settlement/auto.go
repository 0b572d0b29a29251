package settlement

import (
	"github.com/jhensel/fahrgeld/internal/models"
)

// ComputeAuto derives a settlement from recorded trips.
//
// Per trip, each rider owes the trip fee for their own seat to the driver;
// the driver earns that fee once per rider. Invariant: the driver never pays
// for their own seat — some UI screens include the driver in the participant
// list and some do not, so the calculator filters the driver id out of the
// rider set rather than trusting the caller's convention.
//
// A trip with no assigned driver still charges its riders (the debt has no
// credit recipient). That is the recorded behavior of the product, not a bug
// to patch here; such a settlement does not sum to zero.
//
// The returned rows follow the order of the members slice. Trips ordering is
// irrelevant; the calculator aggregates.
func ComputeAuto(trips []models.TripRecord, members []models.Member, schedule *models.DailyFeeSchedule) []models.SettlementResult {
	results := make([]models.SettlementResult, len(members))
	byID := make(map[string]*models.SettlementResult, len(members))
	for i, m := range members {
		results[i] = models.SettlementResult{
			MemberID:   m.ID,
			MemberName: m.Name,
		}
		byID[m.ID] = &results[i]
	}

	memberCount := float64(len(members))

	for _, trip := range trips {
		fee := TripFee(trip.Date, trip.Type, schedule)
		riders := ridersExcludingDriver(trip)

		if driver, ok := byID[trip.DriverID]; ok {
			driver.DriverDays++
			driver.Credit += float64(len(riders)) * fee
			// Full occupancy including the driver's own imputed seat.
			driver.GrossCredit += memberCount * fee
		}

		for _, id := range riders {
			if rider, ok := byID[id]; ok {
				rider.PassengerDays++
				rider.Debt += fee
			}
		}
	}

	for i := range results {
		r := &results[i]
		r.ActiveDays = r.DriverDays + r.PassengerDays
		r.Net = r.Credit - r.Debt
	}

	return results
}

// ridersExcludingDriver returns the distinct participant ids of a trip with
// the driver (if listed) removed.
func ridersExcludingDriver(trip models.TripRecord) []string {
	riders := make([]string, 0, len(trip.ParticipantIDs))
	seen := make(map[string]bool, len(trip.ParticipantIDs))
	for _, id := range trip.ParticipantIDs {
		if id == "" || id == trip.DriverID || seen[id] {
			continue
		}
		seen[id] = true
		riders = append(riders, id)
	}
	return riders
}
