package controllers

import (
	"context"
	"coursehub/config"
	"coursehub/database"
	"coursehub/middleware"
	"coursehub/models"
	"coursehub/services/enrollment"
	validators "coursehub/validators/payment"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type stubMailer struct {
	mu     sync.Mutex
	fail   bool
	to     []string
	bodies []string
}

func (m *stubMailer) Send(_ context.Context, to, _, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return errors.New("smtp unavailable")
	}
	m.to = append(m.to, to)
	m.bodies = append(m.bodies, body)
	return nil
}

type testEnv struct {
	app    *fiber.App
	db     *gorm.DB
	mailer *stubMailer
}

// newTestEnv wires the real routes the way main.go does, on top of an
// in-memory database.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	config.AppConfig = &config.Config{JWTKey: "test-secret"}

	db, err := database.OpenInMemory()
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.User{ID: "u1", FirstName: "Asha", Email: "u1@example.com"}).Error)
	require.NoError(t, db.Create(&models.Course{ID: "c1", CourseName: "Go Basics", Price: 500}).Error)

	mailer := &stubMailer{}
	svc := enrollment.NewService(enrollment.NewGormStore(db), mailer, enrollment.MockAuthorizer{}, zap.NewNop())
	h := NewHandler(svc)

	app := fiber.New()
	group := app.Group("/api/v1/payment", middleware.JWTMiddleware, middleware.RequireAccountType(models.AccountTypeStudent))
	group.Post("/capturePayment", validators.CapturePayment(), h.CapturePayment)
	group.Post("/verifyPayment", h.VerifyPayment)
	group.Post("/sendSuccessEmail", validators.SendPaymentSuccessEmail(), h.SendPaymentSuccessEmail)

	return &testEnv{app: app, db: db, mailer: mailer}
}

func (e *testEnv) post(t *testing.T, path, accountType, body string) (int, map[string]interface{}) {
	t.Helper()
	token, err := middleware.GenerateJWT("u1", "u1@example.com", accountType)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/api/v1/payment"+path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func TestCapturePaymentSuccess(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.post(t, "/capturePayment", models.AccountTypeStudent, `{"coursesId":["c1"]}`)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Enrollment successful (payment mocked)", body["message"])

	var course models.Course
	require.NoError(t, env.db.Preload("StudentsEnrolled").First(&course, "id = ?", "c1").Error)
	assert.True(t, course.HasStudent("u1"))

	var progress models.CourseProgress
	require.NoError(t, env.db.First(&progress, "course_id = ? AND user_id = ?", "c1", "u1").Error)
	assert.Empty(t, progress.CompletedVideos)

	assert.Equal(t, []string{"u1@example.com"}, env.mailer.to)
}

func TestCapturePaymentErrors(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		enrollFirst bool
		wantStatus  int
		wantMessage string
	}{
		{name: "empty list", body: `{"coursesId":[]}`, wantStatus: fiber.StatusBadRequest, wantMessage: "Please provide valid Course Id(s)"},
		{name: "not an array", body: `{"coursesId":"c1"}`, wantStatus: fiber.StatusBadRequest, wantMessage: "Please provide valid Course Id(s)"},
		{name: "unknown course", body: `{"coursesId":["nope"]}`, wantStatus: fiber.StatusNotFound, wantMessage: "Could not find the course"},
		{name: "already enrolled", body: `{"coursesId":["c1"]}`, enrollFirst: true, wantStatus: fiber.StatusBadRequest, wantMessage: "Already Enrolled in course: Go Basics"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			if tt.enrollFirst {
				status, _ := env.post(t, "/capturePayment", models.AccountTypeStudent, `{"coursesId":["c1"]}`)
				require.Equal(t, fiber.StatusOK, status)
			}

			var before int64
			require.NoError(t, env.db.Model(&models.CourseProgress{}).Count(&before).Error)

			status, body := env.post(t, "/capturePayment", models.AccountTypeStudent, tt.body)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, false, body["success"])
			assert.Equal(t, tt.wantMessage, body["message"])

			var after int64
			require.NoError(t, env.db.Model(&models.CourseProgress{}).Count(&after).Error)
			assert.Equal(t, before, after, "rejected requests must not mutate")
		})
	}
}

func TestCapturePaymentRequiresStudent(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.post(t, "/capturePayment", models.AccountTypeInstructor, `{"coursesId":["c1"]}`)
	assert.Equal(t, fiber.StatusForbidden, status)
	assert.Equal(t, false, body["success"])
}

func TestVerifyPaymentAlwaysSucceeds(t *testing.T) {
	env := newTestEnv(t)

	for _, payload := range []string{`{}`, `{"razorpay_signature":"garbage"}`, `not json`} {
		status, body := env.post(t, "/verifyPayment", models.AccountTypeStudent, payload)
		assert.Equal(t, fiber.StatusOK, status)
		assert.Equal(t, true, body["success"])
	}
}

func TestSendPaymentSuccessEmail(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.post(t, "/sendSuccessEmail", models.AccountTypeStudent, `{"orderId":"order_1","paymentId":"pay_1","amount":50000}`)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "Email sent", body["message"])
	require.Len(t, env.mailer.bodies, 1)
	assert.Contains(t, env.mailer.bodies[0], "&#8377;500<")

	status, body = env.post(t, "/sendSuccessEmail", models.AccountTypeStudent, `{"orderId":"order_1","amount":50000}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "Please provide all the fields", body["message"])

	env.mailer.fail = true
	status, body = env.post(t, "/sendSuccessEmail", models.AccountTypeStudent, `{"orderId":"order_1","paymentId":"pay_1","amount":50000}`)
	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, "Could not send email", body["message"])
}

func TestCaptureErrorMapsEnrollmentFailuresToInternal(t *testing.T) {
	err := &enrollment.EnrollmentError{Result: enrollment.Result{
		Enrolled: []string{"c1"},
		Failed:   "c2",
		Err:      enrollment.ErrCourseNotFound,
	}}

	status, message := captureError(err)
	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, "course not found", message)
}
