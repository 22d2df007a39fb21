package catalog

import (
	"context"
	"math"

	"github.com/apper-canvas/nimblerailbook/internal/models"
	"github.com/google/uuid"
)

const serviceTaxRate = 0.05

// ReservationFee is the fixed per-passenger surcharge for a class
func ReservationFee(class models.ClassCode) int {
	if class == models.ClassSL {
		return 20
	}
	return 40
}

// ServiceTax is 5% of the base fare, rounded to the nearest unit.
// Rounding happens exactly once so every downstream total stays in
// integer currency units.
func ServiceTax(baseFare int) int {
	return int(math.Round(float64(baseFare) * serviceTaxRate))
}

// ComputeFareBreakdown decomposes a base fare into the payable total
// for the given passenger count. It is a total function over
// baseFare >= 0 and passengers >= 1.
func ComputeFareBreakdown(class models.ClassCode, baseFare, passengers int) models.FareBreakdown {
	fee := ReservationFee(class)
	tax := ServiceTax(baseFare)
	perPassenger := baseFare + fee + tax

	return models.FareBreakdown{
		BaseFare:          baseFare,
		ReservationFee:    fee,
		ServiceTax:        tax,
		TotalPerPassenger: perPassenger,
		Passengers:        passengers,
		TotalAmount:       perPassenger * passengers,
	}
}

// GetFareBreakdown computes the fare breakdown for a train and class.
// It returns nil when the train is absent or the class is not in the
// train's fare map. Passenger counts below one are a caller error and
// must be rejected upstream.
func (c *catalog) GetFareBreakdown(ctx context.Context, trainID uuid.UUID, class models.ClassCode, passengers int) *models.FareBreakdown {
	train := c.GetByID(ctx, trainID)
	if train == nil {
		return nil
	}

	baseFare, ok := train.Fare[class]
	if !ok {
		return nil
	}

	breakdown := ComputeFareBreakdown(class, baseFare, passengers)
	return &breakdown
}
