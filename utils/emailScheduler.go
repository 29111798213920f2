package utils

import (
	"context"
	"coursehub/database"
	"coursehub/metrics"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const emailRetryBatch = 50

// EmailRetrier redelivers outbox rows left behind by failed sends.
type EmailRetrier struct {
	DB          *gorm.DB
	Sender      Sender
	Logger      *zap.Logger
	MaxAttempts int
}

// RetryPending makes one delivery attempt for every pending outbox row and
// returns how many were sent.
func (r *EmailRetrier) RetryPending(ctx context.Context) (int, error) {
	pending, err := database.FetchPendingEmails(ctx, r.DB, r.MaxAttempts, emailRetryBatch)
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, row := range pending {
		if err := r.Sender.Send(ctx, row.Recipient, row.Subject, row.Body); err != nil {
			metrics.Emails.WithLabelValues(row.Kind, metrics.OutcomeFailure).Inc()
			r.Logger.Warn("email retry failed",
				zap.Uint("outboxId", row.ID),
				zap.String("recipient", row.Recipient),
				zap.Int("attempts", row.Attempts+1),
				zap.Error(err),
			)
			if markErr := database.MarkEmailFailed(ctx, r.DB, row.ID, err); markErr != nil {
				return sent, markErr
			}
			continue
		}

		metrics.Emails.WithLabelValues(row.Kind, metrics.OutcomeSuccess).Inc()
		if err := database.MarkEmailSent(ctx, r.DB, row.ID); err != nil {
			return sent, err
		}
		sent++
	}

	if len(pending) > 0 {
		r.Logger.Info("email retry pass finished", zap.Int("pending", len(pending)), zap.Int("sent", sent))
	}
	return sent, nil
}

// InitializeEmailRetryScheduler runs RetryPending on a standard 5-field cron schedule.
func InitializeEmailRetryScheduler(schedule string, r *EmailRetrier) (*cron.Cron, error) {
	c := cron.New()

	_, err := c.AddFunc(schedule, func() {
		if _, err := r.RetryPending(context.Background()); err != nil {
			r.Logger.Error("email retry pass aborted", zap.Error(err))
		}
	})
	if err != nil {
		return nil, err
	}

	c.Start()
	r.Logger.Info("email retry scheduler started", zap.String("schedule", schedule))
	return c, nil
}
