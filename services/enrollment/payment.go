package enrollment

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Authorization is what a payment authorizer hands back for an approved charge.
type Authorization struct {
	OrderID   string  `json:"orderId"`
	PaymentID string  `json:"paymentId"`
	Amount    float64 `json:"amount"`
}

// PaymentAuthorizer approves a charge before any enrollment mutation happens.
// A declined charge must return an error wrapping ErrPaymentDeclined.
type PaymentAuthorizer interface {
	Authorize(ctx context.Context, userID string, amount float64) (*Authorization, error)
}

// MockAuthorizer approves every charge without contacting a gateway.
type MockAuthorizer struct{}

func (MockAuthorizer) Authorize(ctx context.Context, userID string, amount float64) (*Authorization, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &Authorization{
		OrderID:   "order_mock_" + uuid.NewString(),
		PaymentID: "pay_mock_" + uuid.NewString(),
		Amount:    amount,
	}, nil
}

// NewAuthorizer returns the authorizer for mode. Only "mock" exists today.
func NewAuthorizer(mode string) (PaymentAuthorizer, error) {
	switch mode {
	case "mock", "":
		return MockAuthorizer{}, nil
	default:
		return nil, fmt.Errorf("unsupported payment mode %q", mode)
	}
}
