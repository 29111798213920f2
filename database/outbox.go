package database

import (
	"context"
	"coursehub/models"
	"time"

	"gorm.io/gorm"
)

// EnqueueEmail stores an undelivered email for the retry scheduler.
func EnqueueEmail(ctx context.Context, db *gorm.DB, kind, to, subject, body string, cause error) (*models.EmailOutbox, error) {
	record := models.EmailOutbox{
		Kind:      kind,
		Recipient: to,
		Subject:   subject,
		Body:      body,
		Attempts:  1,
	}
	if cause != nil {
		record.LastError = cause.Error()
	}

	if err := db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// FetchPendingEmails returns unsent outbox rows that still have attempts left,
// oldest first.
func FetchPendingEmails(ctx context.Context, db *gorm.DB, maxAttempts, limit int) ([]models.EmailOutbox, error) {
	var out []models.EmailOutbox
	err := db.WithContext(ctx).
		Where("sent_at IS NULL AND attempts < ?", maxAttempts).
		Order("id").
		Limit(limit).
		Find(&out).Error
	return out, err
}

func MarkEmailSent(ctx context.Context, db *gorm.DB, id uint) error {
	now := time.Now()
	return db.WithContext(ctx).
		Model(&models.EmailOutbox{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"sent_at":  &now,
			"attempts": gorm.Expr("attempts + 1"),
		}).Error
}

func MarkEmailFailed(ctx context.Context, db *gorm.DB, id uint, cause error) error {
	return db.WithContext(ctx).
		Model(&models.EmailOutbox{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"last_error": cause.Error(),
			"attempts":   gorm.Expr("attempts + 1"),
		}).Error
}
