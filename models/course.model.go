package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Course is a purchasable course. Price is in major currency units.
type Course struct {
	ID                string    `gorm:"primaryKey;type:varchar(64)" json:"_id"`
	CourseName        string    `gorm:"not null" json:"courseName"`
	CourseDescription string    `json:"courseDescription"`
	Price             float64   `gorm:"default:0" json:"price"`
	StudentsEnrolled  []User    `gorm:"many2many:course_students;" json:"studentsEnrolled"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

func (c *Course) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// HasStudent reports whether userID is in the loaded enrolled-student list.
func (c *Course) HasStudent(userID string) bool {
	for _, student := range c.StudentsEnrolled {
		if student.ID == userID {
			return true
		}
	}
	return false
}
