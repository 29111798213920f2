package enrollment

import (
	"context"
	"coursehub/metrics"
	"coursehub/models"
	"coursehub/utils"
	"fmt"

	"go.uber.org/zap"
)

// Mailer delivers one HTML email. utils.Sender satisfies it.
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// Service runs the enroll-students workflow. The caller's identity is always
// passed in explicitly.
type Service struct {
	store      Store
	mailer     Mailer
	authorizer PaymentAuthorizer
	logger     *zap.Logger
}

func NewService(store Store, mailer Mailer, authorizer PaymentAuthorizer, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:      store,
		mailer:     mailer,
		authorizer: authorizer,
		logger:     logger,
	}
}

// Receipt describes a completed capture.
type Receipt struct {
	Authorization *Authorization `json:"authorization"`
	Total         float64        `json:"total"`
	Enrolled      []string       `json:"enrolled"`
}

// Result is the outcome of an Enroll run. Enrolled lists the courses that
// were fully committed, in request order; Failed is the course that stopped
// the run.
type Result struct {
	Enrolled []string
	Failed   string
	Err      error
}

func (r Result) Success() bool {
	return r.Err == nil
}

// CapturePayment validates every course before touching anything, authorizes
// the summed price and then enrolls userID.
func (s *Service) CapturePayment(ctx context.Context, userID string, courseIDs []string) (*Receipt, error) {
	if userID == "" || len(courseIDs) == 0 {
		return nil, ErrInvalidInput
	}

	var total float64
	for _, courseID := range courseIDs {
		course, err := s.store.FindCourse(ctx, courseID)
		if err != nil {
			return nil, err
		}
		if course.HasStudent(userID) {
			return nil, &AlreadyEnrolledError{CourseID: course.ID, CourseName: course.CourseName}
		}
		total += course.Price
	}

	auth, err := s.authorizer.Authorize(ctx, userID, total)
	if err != nil {
		return nil, err
	}
	metrics.PaymentTotal.Observe(total)

	result := s.Enroll(ctx, courseIDs, userID)
	if !result.Success() {
		return nil, &EnrollmentError{Result: result}
	}

	return &Receipt{Authorization: auth, Total: total, Enrolled: result.Enrolled}, nil
}

// Enroll enrolls userID in each course in order and stops at the first
// failure. Each course commits on its own, so earlier courses stay enrolled
// when a later one fails.
func (s *Service) Enroll(ctx context.Context, courseIDs []string, userID string) Result {
	var result Result
	if len(courseIDs) == 0 || userID == "" {
		result.Err = ErrMissingData
		return result
	}

	for _, courseID := range courseIDs {
		if err := s.enrollOne(ctx, courseID, userID); err != nil {
			metrics.Enrollments.WithLabelValues(metrics.OutcomeFailure).Inc()
			s.logger.Error("enrollment failed",
				zap.String("userId", userID),
				zap.String("courseId", courseID),
				zap.Strings("enrolled", result.Enrolled),
				zap.Error(err),
			)
			result.Failed = courseID
			result.Err = err
			return result
		}
		metrics.Enrollments.WithLabelValues(metrics.OutcomeSuccess).Inc()
		result.Enrolled = append(result.Enrolled, courseID)
	}
	return result
}

func (s *Service) enrollOne(ctx context.Context, courseID, userID string) error {
	var (
		course *models.Course
		user   *models.User
	)

	err := s.store.Transaction(ctx, func(tx EnrollmentTx) error {
		c, err := tx.PushStudent(ctx, courseID, userID)
		if err != nil {
			return err
		}

		progress, err := tx.CreateProgress(ctx, courseID, userID)
		if err != nil {
			return fmt.Errorf("create progress: %w", err)
		}

		u, err := tx.PushUserEnrollment(ctx, userID, courseID, progress.ID)
		if err != nil {
			return err
		}

		course, user = c, u
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("course enrolled", zap.String("userId", userID), zap.String("courseId", courseID))
	s.notifyEnrollment(ctx, course, user)
	return nil
}

// notifyEnrollment sends the confirmation email. The enrollment is already
// committed, so a delivery failure only queues the message for retry.
func (s *Service) notifyEnrollment(ctx context.Context, course *models.Course, user *models.User) {
	subject := utils.CourseEnrollmentSubject(course.CourseName)
	body := utils.CourseEnrollmentEmail(course.CourseName, user.FirstName)

	err := s.mailer.Send(ctx, user.Email, subject, body)
	if err == nil {
		metrics.Emails.WithLabelValues(models.EmailKindEnrollment, metrics.OutcomeSuccess).Inc()
		return
	}

	metrics.Emails.WithLabelValues(models.EmailKindEnrollment, metrics.OutcomeQueued).Inc()
	s.logger.Warn("enrollment email not delivered, queued for retry",
		zap.String("recipient", user.Email),
		zap.String("courseId", course.ID),
		zap.Error(err),
	)
	if qerr := s.store.EnqueueEmail(ctx, models.EmailKindEnrollment, user.Email, subject, body, err); qerr != nil {
		s.logger.Error("could not queue enrollment email", zap.String("recipient", user.Email), zap.Error(qerr))
	}
}

// PaymentEmail is the input of SendPaymentSuccessEmail. Amount is in minor
// currency units.
type PaymentEmail struct {
	UserID    string
	OrderID   string
	PaymentID string
	Amount    float64
}

// SendPaymentSuccessEmail mails the payment receipt to the user. Nothing is
// persisted.
func (s *Service) SendPaymentSuccessEmail(ctx context.Context, in PaymentEmail) error {
	if in.UserID == "" || in.OrderID == "" || in.PaymentID == "" || in.Amount == 0 {
		return ErrInvalidInput
	}

	user, err := s.store.FindUser(ctx, in.UserID)
	if err != nil {
		return err
	}

	body := utils.PaymentSuccessEmail(user.FirstName, utils.MinorToMajor(in.Amount), in.OrderID, in.PaymentID)
	if err := s.mailer.Send(ctx, user.Email, "Payment Received", body); err != nil {
		metrics.Emails.WithLabelValues(models.EmailKindPayment, metrics.OutcomeFailure).Inc()
		s.logger.Error("payment email failed", zap.String("userId", in.UserID), zap.String("orderId", in.OrderID), zap.Error(err))
		return fmt.Errorf("send payment email: %w", err)
	}

	metrics.Emails.WithLabelValues(models.EmailKindPayment, metrics.OutcomeSuccess).Inc()
	return nil
}
