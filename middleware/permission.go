package middleware

import (
	"github.com/gofiber/fiber/v2"
)

// RequireAccountType returns a middleware that only lets principals with the
// given account type (from the JWT) through. It must run after JWTMiddleware.
func RequireAccountType(accountType string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := CurrentUserID(c); !ok {
			return JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized: User ID not found", nil)
		}

		got, _ := c.Locals(localAccountType).(string)
		if got != accountType {
			return JsonResponse(c, fiber.StatusForbidden, false, "This is a protected route for "+accountType+"s", nil)
		}

		return c.Next()
	}
}
