package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	AccountTypeStudent    = "Student"
	AccountTypeInstructor = "Instructor"
	AccountTypeAdmin      = "Admin"
)

type User struct {
	ID             string           `gorm:"primaryKey;type:varchar(64)" json:"_id"`
	FirstName      string           `gorm:"default:''" json:"firstName"`
	LastName       string           `gorm:"default:''" json:"lastName"`
	Email          string           `gorm:"unique;not null" json:"email"`
	AccountType    string           `gorm:"default:'Student'" json:"accountType"`
	Courses        []Course         `gorm:"many2many:user_courses;" json:"courses"`
	CourseProgress []CourseProgress `gorm:"foreignKey:UserID" json:"courseProgress"`
	CreatedAt      time.Time        `json:"createdAt"`
	UpdatedAt      time.Time        `json:"updatedAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// HasCourse reports whether courseID is in the user's loaded course list.
func (u *User) HasCourse(courseID string) bool {
	for _, course := range u.Courses {
		if course.ID == courseID {
			return true
		}
	}
	return false
}

// ProgressFor returns the loaded progress record for courseID, if any.
func (u *User) ProgressFor(courseID string) *CourseProgress {
	for i := range u.CourseProgress {
		if u.CourseProgress[i].CourseID == courseID {
			return &u.CourseProgress[i]
		}
	}
	return nil
}
