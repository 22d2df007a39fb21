package catalog

import (
	"context"
	"fmt"
	"math"

	"github.com/apper-canvas/nimblerailbook/internal/models"
	"github.com/google/uuid"
)

const (
	minIntermediateStops = 2
	maxIntermediateStops = 5
	minJourneyMinutes    = 4 * 60
	maxJourneyMinutes    = 12 * 60
	minRouteDistanceKm   = 300
	maxRouteDistanceKm   = 1800
	haltMinutes          = 2
)

// GetRouteDetails synthesizes a route for a train: origin, 2 to 5
// intermediate stoppages, and destination. The route is illustrative,
// not derived from real topology, and a fresh call produces different
// stops. Distances grow monotonically along the sequence and arrival
// times interpolate proportionally over a randomized journey window.
func (c *catalog) GetRouteDetails(ctx context.Context, trainID uuid.UUID) *models.RouteDetails {
	train := c.GetByID(ctx, trainID)
	if train == nil {
		return nil
	}

	intermediates := minIntermediateStops + c.rng.Intn(maxIntermediateStops-minIntermediateStops+1)
	totalDistance := minRouteDistanceKm + c.rng.Intn(maxRouteDistanceKm-minRouteDistanceKm)
	journeyMinutes := minJourneyMinutes + c.rng.Intn(maxJourneyMinutes-minJourneyMinutes)
	departure := parseClock(train.DepartureTime)

	stoppages := make([]models.Stoppage, 0, intermediates+2)

	// Origin: departure only, no halt
	stoppages = append(stoppages, models.Stoppage{
		StationName:   train.Origin,
		StationCode:   train.Origin,
		ArrivalTime:   formatClock(departure),
		DepartureTime: formatClock(departure),
		StopDuration:  "0 min",
		Distance:      0,
		Platform:      1 + c.rng.Intn(8),
	})

	segments := intermediates + 1
	for i := 1; i <= intermediates; i++ {
		distance := int(math.Round(float64(i*totalDistance) / float64(segments)))
		arrival := departure + i*journeyMinutes/segments
		stoppages = append(stoppages, models.Stoppage{
			StationName:   fmt.Sprintf("Intermediate Station %d", i),
			StationCode:   fmt.Sprintf("INT%d", i),
			ArrivalTime:   formatClock(arrival),
			DepartureTime: formatClock(arrival + haltMinutes),
			StopDuration:  fmt.Sprintf("%d min", haltMinutes),
			Distance:      distance,
			Platform:      1 + c.rng.Intn(8),
		})
	}

	// Destination: arrival only, no halt
	arrival := departure + journeyMinutes
	stoppages = append(stoppages, models.Stoppage{
		StationName:   train.Destination,
		StationCode:   train.Destination,
		ArrivalTime:   formatClock(arrival),
		DepartureTime: formatClock(arrival),
		StopDuration:  "0 min",
		Distance:      totalDistance,
		Platform:      1 + c.rng.Intn(8),
	})

	duration := train.Duration
	if duration == "" {
		duration = fmt.Sprintf("%dh %02dm", journeyMinutes/60, journeyMinutes%60)
	}

	return &models.RouteDetails{
		TrainID:       trainID,
		Origin:        train.Origin,
		Destination:   train.Destination,
		TotalDistance: totalDistance,
		TotalDuration: duration,
		Stoppages:     stoppages,
	}
}

// parseClock reads an HH:MM string as minutes since midnight; a
// malformed value falls back to midnight
func parseClock(s string) int {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return 0
	}
	return h*60 + m
}

// formatClock renders minutes since midnight as HH:MM, wrapping past
// midnight
func formatClock(minutes int) string {
	minutes %= 24 * 60
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
