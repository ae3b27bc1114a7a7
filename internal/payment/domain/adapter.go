package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

// Gateway is the capability a payment method delegates its Stripe
// operations to. Implementations are selected by driver name.
type Gateway interface {
	Driver() string
	RetrieveIntent(ctx context.Context, intentID string) (*IntentDetails, error)
	Refund(ctx context.Context, req RefundRequest) (*RefundResult, error)
}

type GatewayConfig struct {
	PaymentMethodID snowflake.ID
	APIKey          string
	TestMode        bool
}

type GatewayFactory interface {
	Driver() string
	NewGateway(cfg GatewayConfig) (Gateway, error)
}

// IntentDetails is returned by gateways (not stored in DB).
type IntentDetails struct {
	ID              string
	Status          string
	Amount          int64
	AmountReceived  int64
	Currency        string
	PaymentMethodID string
	Metadata        map[string]string
}

type RefundRequest struct {
	IntentID string
	// Amount in minor currency units.
	Amount   int64
	Reason   string
	Metadata map[string]string
}

type RefundResult struct {
	ID       string
	Status   string
	Amount   int64
	Currency string
}
