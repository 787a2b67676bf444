package jobs

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"proxybuy/internal/core/domain/model/kernel"
	"proxybuy/internal/core/ports"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// QuoteExpirySweepJob periodically finds pending quotes whose validity
// deadline has passed and notifies the expiry notifier about each one.
//
// The job is observation-only: expiry stays implicit in the domain, so the
// sweep never touches approval state. Each quote is reported once per process
// lifetime; a notifier error leaves the quote unreported so the next sweep
// retries it.
type QuoteExpirySweepJob struct {
	db       *gorm.DB
	notifier ports.QuoteExpiryNotifier
	cron     *cron.Cron
	logger   *slog.Logger

	mu       sync.Mutex
	reported map[kernel.UUID]struct{}
}

// NewQuoteExpirySweepJob creates a new sweep job over the given database.
func NewQuoteExpirySweepJob(db *gorm.DB, notifier ports.QuoteExpiryNotifier, logger *slog.Logger) *QuoteExpirySweepJob {
	return &QuoteExpirySweepJob{
		db:       db,
		notifier: notifier,
		cron:     cron.New(),
		logger:   logger.With("component", "quote_expiry_sweep_job"),
		reported: make(map[kernel.UUID]struct{}),
	}
}

// Start begins the sweep job to run every minute.
func (j *QuoteExpirySweepJob) Start() error {
	_, err := j.cron.AddFunc("* * * * *", func() {
		ctx := context.Background()
		if err := j.sweep(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Quote expiry sweep failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Quote expiry sweep job started (running every minute)")
	return nil
}

// Stop stops the sweep job.
func (j *QuoteExpirySweepJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Quote expiry sweep job stopped")
}

func (j *QuoteExpirySweepJob) sweep(ctx context.Context) error {
	rows, err := j.db.WithContext(ctx).Raw(`
		SELECT id, order_id
		FROM quotes
		WHERE approval_state = 'pending' AND valid_until < ?
		ORDER BY valid_until`,
		time.Now().UTC(),
	).Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var rawQuoteID, rawOrderID uuid.UUID
		if err = rows.Scan(&rawQuoteID, &rawOrderID); err != nil {
			return err
		}

		quoteID, idErr := kernel.UUIDFromBytes(rawQuoteID[:])
		if idErr != nil {
			return idErr
		}
		orderID, idErr := kernel.UUIDFromBytes(rawOrderID[:])
		if idErr != nil {
			return idErr
		}

		if j.alreadyReported(quoteID) {
			continue
		}

		if err = j.notifier.NotifyQuoteExpired(ctx, quoteID, orderID); err != nil {
			j.logger.ErrorContext(ctx, "Quote expiry notification failed",
				"quote_id", quoteID.String(), "error", err)
			continue
		}

		j.markReported(quoteID)
	}

	return rows.Err()
}

func (j *QuoteExpirySweepJob) alreadyReported(quoteID kernel.UUID) bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	_, ok := j.reported[quoteID]
	return ok
}

func (j *QuoteExpirySweepJob) markReported(quoteID kernel.UUID) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.reported[quoteID] = struct{}{}
}
