package paymentValidator

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func post(t *testing.T, app *fiber.App, path, body string) (int, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func TestCapturePaymentValidator(t *testing.T) {
	app := fiber.New()
	app.Post("/capture", CapturePayment(), func(c *fiber.Ctx) error {
		req := c.Locals(LocalCapturePayment).(*CapturePaymentRequest)
		return c.JSON(fiber.Map{"success": true, "courses": req.CoursesID})
	})

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantField  string
	}{
		{name: "valid list", body: `{"coursesId":["c1","c2"]}`, wantStatus: fiber.StatusOK},
		{name: "missing field", body: `{}`, wantStatus: fiber.StatusBadRequest, wantField: "coursesId"},
		{name: "empty list", body: `{"coursesId":[]}`, wantStatus: fiber.StatusBadRequest, wantField: "coursesId"},
		{name: "not an array", body: `{"coursesId":"c1"}`, wantStatus: fiber.StatusBadRequest},
		{name: "blank id", body: `{"coursesId":["c1",""]}`, wantStatus: fiber.StatusBadRequest, wantField: "coursesId"},
		{name: "duplicate ids", body: `{"coursesId":["c1","c1"]}`, wantStatus: fiber.StatusBadRequest, wantField: "coursesId"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := post(t, app, "/capture", tt.body)
			assert.Equal(t, tt.wantStatus, status)
			if tt.wantStatus != fiber.StatusOK {
				assert.Equal(t, false, body["success"])
				assert.Equal(t, "Please provide valid Course Id(s)", body["message"])
			}
			if tt.wantField != "" {
				errs, ok := body["errors"].(map[string]interface{})
				require.True(t, ok)
				assert.Contains(t, errs, tt.wantField)
			}
		})
	}
}

func TestSendPaymentSuccessEmailValidator(t *testing.T) {
	app := fiber.New()
	app.Post("/email", SendPaymentSuccessEmail(), func(c *fiber.Ctx) error {
		req := c.Locals(LocalPaymentEmail).(*PaymentEmailRequest)
		return c.JSON(fiber.Map{"success": true, "amount": req.Amount})
	})

	status, body := post(t, app, "/email", `{"orderId":"o1","paymentId":"p1","amount":50000}`)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, float64(50000), body["amount"])

	status, body = post(t, app, "/email", `{"orderId":"o1","amount":50000}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "Please provide all the fields", body["message"])
	assert.Contains(t, body["errors"], "paymentId")

	status, _ = post(t, app, "/email", `{"orderId":"o1","paymentId":"p1","amount":0}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
}
