package catalog

import (
	"context"
	"fmt"

	"github.com/apper-canvas/nimblerailbook/internal/models"
	"github.com/google/uuid"
)

// layoutSpec fixes the coach/seat topology for a travel class
type layoutSpec struct {
	Coaches       int
	SeatsPerCoach int
}

var layoutSpecs = map[models.ClassCode]layoutSpec{
	models.Class1A: {Coaches: 4, SeatsPerCoach: 6},
	models.Class2A: {Coaches: 6, SeatsPerCoach: 8},
	models.Class3A: {Coaches: 8, SeatsPerCoach: 9},
	models.ClassSL: {Coaches: 12, SeatsPerCoach: 8},
	models.ClassCC: {Coaches: 4, SeatsPerCoach: 12},
	models.ClassEC: {Coaches: 2, SeatsPerCoach: 12},
}

var berthTypes = [5]string{"Lower", "Middle", "Upper", "Side Lower", "Side Upper"}

// GetSeatLayout synthesizes the coach/seat matrix for a class on a
// train, or nil when the train is absent or does not offer the class.
// Occupancy is illustrative: each seat is independently occupied with
// probability 0.3 and a fresh call produces a fresh layout. The result
// is never an availability authority.
func (c *catalog) GetSeatLayout(ctx context.Context, trainID uuid.UUID, class models.ClassCode) *models.SeatLayout {
	train := c.GetByID(ctx, trainID)
	if train == nil || !offersClass(train, class) {
		return nil
	}

	spec, ok := layoutSpecs[class]
	if !ok {
		return nil
	}

	return &models.SeatLayout{
		TrainID: trainID,
		Class:   class,
		Coaches: GenerateCoaches(class, spec.Coaches, spec.SeatsPerCoach, c.rng),
	}
}

// GenerateCoaches builds the coach sequence for a class. Coach names
// are the class code's first letter plus a 1-based index; seat numbers
// are "<coach>-<seat>".
func GenerateCoaches(class models.ClassCode, coachCount, seatsPerCoach int, rng Rand) []models.Coach {
	coaches := make([]models.Coach, 0, coachCount)

	for i := 1; i <= coachCount; i++ {
		coachName := fmt.Sprintf("%c%d", class[0], i)
		seats := make([]models.Seat, 0, seatsPerCoach)

		for j := 1; j <= seatsPerCoach; j++ {
			status := models.SeatStatusAvailable
			if rng.Float64() <= 0.3 {
				status = models.SeatStatusOccupied
			}
			seats = append(seats, models.Seat{
				SeatNumber: fmt.Sprintf("%s-%d", coachName, j),
				Status:     status,
				Type:       seatType(class, j),
			})
		}

		coaches = append(coaches, models.Coach{CoachName: coachName, Seats: seats})
	}

	return coaches
}

// seatType maps a 1-based seat index to its berth. Chair classes have
// a single type; sleeper classes cycle through the berth list with the
// 1-based index, so the cycle starts at "Middle" rather than "Lower".
func seatType(class models.ClassCode, seatIndex int) string {
	if class == models.ClassCC || class == models.ClassEC {
		return "chair"
	}
	return berthTypes[seatIndex%len(berthTypes)]
}

func offersClass(train *models.Train, class models.ClassCode) bool {
	for _, c := range train.Classes {
		if c == class {
			return true
		}
	}
	return false
}
