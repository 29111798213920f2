package controllers

import (
	"coursehub/middleware"
	"coursehub/services/enrollment"
	validators "coursehub/validators/payment"
	"errors"

	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	Enrollment *enrollment.Service
}

func NewHandler(svc *enrollment.Service) *Handler {
	return &Handler{Enrollment: svc}
}

// CapturePayment enrolls the authenticated student in the requested courses.
// Payment is mocked.
func (h *Handler) CapturePayment(c *fiber.Ctx) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals(validators.LocalCapturePayment).(*validators.CapturePaymentRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Please provide valid Course Id(s)", nil)
	}

	_, err := h.Enrollment.CapturePayment(c.UserContext(), userID, reqData.CoursesID)
	if err != nil {
		status, message := captureError(err)
		return middleware.JsonResponse(c, status, false, message, nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollment successful (payment mocked)", nil)
}

func captureError(err error) (int, string) {
	var enrolled *enrollment.AlreadyEnrolledError
	var partial *enrollment.EnrollmentError

	switch {
	// Enrollment-stage failures are always internal, even a course that
	// vanished after validation.
	case errors.As(err, &partial):
		return fiber.StatusInternalServerError, partial.Error()
	case errors.Is(err, enrollment.ErrInvalidInput):
		return fiber.StatusBadRequest, "Please provide valid Course Id(s)"
	case errors.Is(err, enrollment.ErrCourseNotFound):
		return fiber.StatusNotFound, "Could not find the course"
	case errors.As(err, &enrolled):
		return fiber.StatusBadRequest, "Already Enrolled in course: " + enrolled.CourseName
	case errors.Is(err, enrollment.ErrPaymentDeclined):
		return fiber.StatusBadRequest, err.Error()
	default:
		return fiber.StatusInternalServerError, err.Error()
	}
}

// VerifyPayment is where a real gateway's signature check will go.
func (h *Handler) VerifyPayment(c *fiber.Ctx) error {
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Payment verification logic not implemented (mock mode)", nil)
}

func (h *Handler) SendPaymentSuccessEmail(c *fiber.Ctx) error {
	userID, ok := middleware.CurrentUserID(c)
	reqData, valid := c.Locals(validators.LocalPaymentEmail).(*validators.PaymentEmailRequest)
	if !ok || !valid {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Please provide all the fields", nil)
	}

	err := h.Enrollment.SendPaymentSuccessEmail(c.UserContext(), enrollment.PaymentEmail{
		UserID:    userID,
		OrderID:   reqData.OrderID,
		PaymentID: reqData.PaymentID,
		Amount:    reqData.Amount,
	})
	if errors.Is(err, enrollment.ErrInvalidInput) {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Please provide all the fields", nil)
	}
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Could not send email", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Email sent", nil)
}
