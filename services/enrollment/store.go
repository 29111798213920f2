package enrollment

import (
	"context"
	"coursehub/database"
	"coursehub/models"
	"errors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Store is the persistence the enrollment workflow needs.
type Store interface {
	// FindCourse returns the course with its enrolled students loaded, or
	// ErrCourseNotFound.
	FindCourse(ctx context.Context, id string) (*models.Course, error)
	// FindUser returns the user, or ErrUserNotFound.
	FindUser(ctx context.Context, id string) (*models.User, error)
	// Transaction runs fn against a transactional view of the store.
	Transaction(ctx context.Context, fn func(tx EnrollmentTx) error) error
	// EnqueueEmail keeps an undelivered email for the retry scheduler.
	EnqueueEmail(ctx context.Context, kind, to, subject, body string, cause error) error
}

// EnrollmentTx holds the per-course mutations.
type EnrollmentTx interface {
	PushStudent(ctx context.Context, courseID, userID string) (*models.Course, error)
	CreateProgress(ctx context.Context, courseID, userID string) (*models.CourseProgress, error)
	PushUserEnrollment(ctx context.Context, userID, courseID, progressID string) (*models.User, error)
}

// GormStore implements Store and EnrollmentTx on a gorm handle.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) FindCourse(ctx context.Context, id string) (*models.Course, error) {
	var course models.Course
	err := s.db.WithContext(ctx).Preload("StudentsEnrolled").Where("id = ?", id).First(&course).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCourseNotFound
	}
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (s *GormStore) FindUser(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).
		Preload("Courses").
		Preload("CourseProgress").
		Where("id = ?", id).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *GormStore) Transaction(ctx context.Context, fn func(tx EnrollmentTx) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx})
	})
}

func (s *GormStore) EnqueueEmail(ctx context.Context, kind, to, subject, body string, cause error) error {
	_, err := database.EnqueueEmail(ctx, s.db, kind, to, subject, body, cause)
	return err
}

// PushStudent appends userID to the course's enrolled list and returns the
// updated course.
func (s *GormStore) PushStudent(ctx context.Context, courseID, userID string) (*models.Course, error) {
	db := s.db.WithContext(ctx)

	var exists int64
	if err := db.Model(&models.Course{}).Where("id = ?", courseID).Count(&exists).Error; err != nil {
		return nil, err
	}
	if exists == 0 {
		return nil, ErrCourseNotFound
	}

	err := db.Table("course_students").Create(map[string]interface{}{
		"course_id": courseID,
		"user_id":   userID,
	}).Error
	if err != nil {
		return nil, err
	}

	return s.FindCourse(ctx, courseID)
}

func (s *GormStore) CreateProgress(ctx context.Context, courseID, userID string) (*models.CourseProgress, error) {
	progress := models.CourseProgress{
		CourseID:        courseID,
		UserID:          userID,
		CompletedVideos: datatypes.JSONSlice[string]{},
	}
	if err := s.db.WithContext(ctx).Create(&progress).Error; err != nil {
		return nil, err
	}
	return &progress, nil
}

// PushUserEnrollment appends the course and progress references to the user
// and returns the updated user.
func (s *GormStore) PushUserEnrollment(ctx context.Context, userID, courseID, progressID string) (*models.User, error) {
	db := s.db.WithContext(ctx)

	var exists int64
	if err := db.Model(&models.User{}).Where("id = ?", userID).Count(&exists).Error; err != nil {
		return nil, err
	}
	if exists == 0 {
		return nil, ErrUserNotFound
	}

	err := db.Table("user_courses").Create(map[string]interface{}{
		"user_id":   userID,
		"course_id": courseID,
	}).Error
	if err != nil {
		return nil, err
	}

	// The progress list is the has-many side of course_progress.user_id.
	res := db.Model(&models.CourseProgress{}).Where("id = ?", progressID).Update("user_id", userID)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, errors.New("progress record not found")
	}

	return s.FindUser(ctx, userID)
}
