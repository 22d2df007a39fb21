package booking

import (
	"math"
	"time"
)

const dateLayout = "2006-01-02"

// CalculateRefund maps a fare and journey date to the refundable
// amount at the given moment. Cancelling one or more days ahead
// refunds 90%, same-day cancellation refunds 50%, and a past journey
// refunds nothing. Amounts are floored to integer currency units.
// Pure function: no clock access, no side effects.
func CalculateRefund(fare int, journeyDate string, now time.Time) int {
	journey, err := time.Parse(dateLayout, journeyDate)
	if err != nil {
		return 0
	}

	daysUntilJourney := int(math.Ceil(journey.Sub(now).Hours() / 24))

	switch {
	case daysUntilJourney >= 1:
		return int(math.Floor(float64(fare) * 0.9))
	case daysUntilJourney == 0:
		return int(math.Floor(float64(fare) * 0.5))
	default:
		return 0
	}
}
