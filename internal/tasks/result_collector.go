package tasks

import (
	"context"
	"log/slog"
	"time"

	"turbocycle/internal/database"
	"turbocycle/internal/models"
)

// ResultCollector drains sweep results from a channel and commits them to
// the database in batches
type ResultCollector struct {
	repo          database.ResultRepository
	resultChan    <-chan *models.SweepResult
	batchSize     int           // maximum number of results in a batch before committing
	flushInterval time.Duration // time to flush batch even if not full
}

// NewResultCollector creates a collector with a batch size of 100 results
// and a 1 second flush interval
func NewResultCollector(repo database.ResultRepository, resultChan <-chan *models.SweepResult) *ResultCollector {
	return NewResultCollectorWithConfig(repo, resultChan, 100, 1*time.Second)
}

// NewResultCollectorWithConfig creates a collector with custom batch settings
func NewResultCollectorWithConfig(repo database.ResultRepository, resultChan <-chan *models.SweepResult, batchSize int, flushInterval time.Duration) *ResultCollector {
	return &ResultCollector{
		repo:          repo,
		resultChan:    resultChan,
		batchSize:     batchSize,
		flushInterval: flushInterval,
	}
}

// Start begins collecting results and writing them to the database in
// batches. Blocks until the context is cancelled or the result channel is
// closed; any buffered batch is flushed before returning.
func (c *ResultCollector) Start(ctx context.Context) error {
	batch := make([]*models.SweepResult, 0, c.batchSize)
	var lastFlushTime time.Time

	flushBatch := func() {
		if len(batch) > 0 {
			if err := c.repo.InsertBatch(batch); err != nil {
				slog.Error("Error inserting batch of sweep results", "batch_size", len(batch), "error", err)
			} else {
				lastFlushTime = time.Now()
				slog.Debug("Inserted batch of sweep results", "batch_size", len(batch))
			}
			batch = batch[:0] // Reset slice but keep capacity
		}
	}

	// Initialize lastFlushTime to now so the first result doesn't
	// immediately flush
	lastFlushTime = time.Now()

	for {
		select {
		case <-ctx.Done():
			// Flush any remaining results before exiting
			flushBatch()
			return ctx.Err()

		case res, ok := <-c.resultChan:
			if !ok {
				// Channel closed, flush any remaining results
				flushBatch()
				return nil
			}

			if res == nil {
				continue
			}

			batch = append(batch, res)

			// Flush when the batch is full or the interval has elapsed
			if len(batch) >= c.batchSize || time.Since(lastFlushTime) >= c.flushInterval {
				flushBatch()
			}
		}
	}
}
