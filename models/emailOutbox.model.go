package models

import "time"

const (
	EmailKindEnrollment = "ENROLLMENT"
	EmailKindPayment    = "PAYMENT"
)

// EmailOutbox holds an email whose first delivery attempt failed.
type EmailOutbox struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Kind      string     `gorm:"index;default:'ENROLLMENT'" json:"kind"`
	Recipient string     `gorm:"not null" json:"recipient"`
	Subject   string     `json:"subject"`
	Body      string     `gorm:"type:text" json:"body"`
	Attempts  int        `gorm:"default:0" json:"attempts"`
	LastError string     `json:"lastError"`
	SentAt    *time.Time `gorm:"index" json:"sentAt"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

func (EmailOutbox) TableName() string {
	return "email_outbox"
}
