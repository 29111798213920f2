package paymentValidator

import (
	"coursehub/middleware"
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

const (
	LocalCapturePayment = "validatedCapturePayment"
	LocalPaymentEmail   = "validatedPaymentEmail"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report errors under the JSON field names clients send.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

type CapturePaymentRequest struct {
	CoursesID []string `json:"coursesId" validate:"required,min=1,unique,dive,required"`
}

type PaymentEmailRequest struct {
	OrderID   string  `json:"orderId" validate:"required"`
	PaymentID string  `json:"paymentId" validate:"required"`
	Amount    float64 `json:"amount" validate:"required,gt=0"`
}

func CapturePayment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		const message = "Please provide valid Course Id(s)"

		reqData := new(CapturePaymentRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, message, nil)
		}

		if errs := validationErrors(reqData); len(errs) > 0 {
			return middleware.ValidationErrorResponse(c, message, errs)
		}

		c.Locals(LocalCapturePayment, reqData)
		return c.Next()
	}
}

func SendPaymentSuccessEmail() fiber.Handler {
	return func(c *fiber.Ctx) error {
		const message = "Please provide all the fields"

		reqData := new(PaymentEmailRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, message, nil)
		}

		if errs := validationErrors(reqData); len(errs) > 0 {
			return middleware.ValidationErrorResponse(c, message, errs)
		}

		c.Locals(LocalPaymentEmail, reqData)
		return c.Next()
	}
}

// validationErrors maps each failed field to a readable message.
func validationErrors(reqData interface{}) map[string]string {
	err := validate.Struct(reqData)
	if err == nil {
		return nil
	}

	errs := make(map[string]string)
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		errs["body"] = err.Error()
		return errs
	}

	for _, fe := range fieldErrs {
		field := fe.Field()
		// dive errors come back as coursesId[0]
		if i := strings.IndexByte(field, '['); i > 0 {
			field = field[:i]
		}
		if _, seen := errs[field]; seen {
			continue
		}

		switch fe.Tag() {
		case "required":
			errs[field] = field + " is required!"
		case "min":
			errs[field] = field + " must not be empty!"
		case "unique":
			errs[field] = field + " must not contain duplicates!"
		case "gt":
			errs[field] = field + " must be greater than 0!"
		default:
			errs[field] = field + " is invalid!"
		}
	}
	return errs
}
