package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CourseProgress tracks which videos of a course a user has completed.
type CourseProgress struct {
	ID              string                      `gorm:"primaryKey;type:varchar(64)" json:"_id"`
	CourseID        string                      `gorm:"index;not null" json:"courseID"`
	UserID          string                      `gorm:"index;not null" json:"userId"`
	CompletedVideos datatypes.JSONSlice[string] `json:"completedVideos"`
	CreatedAt       time.Time                   `json:"createdAt"`
	UpdatedAt       time.Time                   `json:"updatedAt"`
}

func (CourseProgress) TableName() string {
	return "course_progress"
}

func (p *CourseProgress) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.CompletedVideos == nil {
		p.CompletedVideos = datatypes.JSONSlice[string]{}
	}
	return nil
}
