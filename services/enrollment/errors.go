package enrollment

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrMissingData     = errors.New("missing data")
	ErrCourseNotFound  = errors.New("course not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrAlreadyEnrolled = errors.New("already enrolled")
	ErrPaymentDeclined = errors.New("payment declined")
)

// AlreadyEnrolledError names the course that blocked a capture.
type AlreadyEnrolledError struct {
	CourseID   string
	CourseName string
}

func (e *AlreadyEnrolledError) Error() string {
	return fmt.Sprintf("already enrolled in course %s", e.CourseName)
}

func (e *AlreadyEnrolledError) Is(target error) bool {
	return target == ErrAlreadyEnrolled
}

// EnrollmentError reports a run that stopped partway. Courses listed in
// Result.Enrolled stay enrolled.
type EnrollmentError struct {
	Result Result
}

func (e *EnrollmentError) Error() string {
	return e.Result.Err.Error()
}

func (e *EnrollmentError) Unwrap() error {
	return e.Result.Err
}
