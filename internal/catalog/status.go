package catalog

import (
	"context"
	"time"

	"github.com/apper-canvas/nimblerailbook/internal/models"
)

var runningStatuses = []string{
	"On Time",
	"Delayed by 15 min",
	"Delayed by 30 min",
	"Delayed by 1 hr",
	"Cancelled",
}

// GetTrainStatus returns a simulated live running status for a train,
// or nil when the train number is unknown. The status is drawn at
// random per call; it carries no real telemetry.
func (c *catalog) GetTrainStatus(ctx context.Context, trainNumber string) *models.TrainStatus {
	train := c.GetByTrainNumber(ctx, trainNumber)
	if train == nil {
		return nil
	}

	return &models.TrainStatus{
		Train:         train,
		CurrentStatus: runningStatuses[c.rng.Intn(len(runningStatuses))],
		NextStation:   "Intermediate Station",
		Platform:      1 + c.rng.Intn(10),
		LastUpdated:   time.Now(),
	}
}
