package paymentRoutes

import (
	controllers "coursehub/controllers/payment"
	"coursehub/middleware"
	"coursehub/models"
	validators "coursehub/validators/payment"

	"github.com/gofiber/fiber/v2"
)

// SetupPaymentRoutes mounts the student payment / enrollment routes.
func SetupPaymentRoutes(app *fiber.App, h *controllers.Handler) {
	paymentGroup := app.Group("/api/v1/payment", middleware.JWTMiddleware, middleware.RequireAccountType(models.AccountTypeStudent))

	paymentGroup.Post("/capturePayment", validators.CapturePayment(), h.CapturePayment)
	paymentGroup.Post("/verifyPayment", h.VerifyPayment)
	paymentGroup.Post("/sendSuccessEmail", validators.SendPaymentSuccessEmail(), h.SendPaymentSuccessEmail)
}
