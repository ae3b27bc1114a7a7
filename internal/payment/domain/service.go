package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

type CreatePaymentMethodInput struct {
	Name        string      `json:"name" binding:"required"`
	Description string      `json:"description"`
	Active      *bool       `json:"active"`
	Preferences Preferences `json:"preferences"`
}

// UpdatePaymentMethodInput carries partial updates; nil fields are kept.
type UpdatePaymentMethodInput struct {
	Name                         *string `json:"name"`
	Description                  *string `json:"description"`
	Active                       *bool   `json:"active"`
	APIKey                       *string `json:"api_key"`
	PublishableKey               *string `json:"publishable_key"`
	SetupFutureUsage             *string `json:"setup_future_usage"`
	WebhookEndpointSigningSecret *string `json:"webhook_endpoint_signing_secret"`
	TestMode                     *bool   `json:"test_mode"`
}

// IntentReference resolves a payment to its Stripe intent.
type IntentReference struct {
	PaymentID    snowflake.ID `json:"payment_id"`
	IntentID     string       `json:"intent_id"`
	DashboardURL string       `json:"dashboard_url,omitempty"`
}

type Service interface {
	Create(ctx context.Context, input CreatePaymentMethodInput) (*PaymentMethod, error)
	Update(ctx context.Context, id snowflake.ID, input UpdatePaymentMethodInput) (*PaymentMethod, error)
	Delete(ctx context.Context, id snowflake.ID) error
	Get(ctx context.Context, id snowflake.ID) (*PaymentMethod, error)
	List(ctx context.Context) ([]*PaymentMethod, error)
	WithSlug(ctx context.Context, slug string) ([]*PaymentMethod, error)

	IntentIDForPayment(ctx context.Context, payment *Payment) (string, error)
	ResolvePaymentIntent(ctx context.Context, paymentID snowflake.ID) (*IntentReference, error)
	RetrieveIntent(ctx context.Context, paymentMethodID snowflake.ID, intentID string) (*IntentDetails, error)
	Refund(ctx context.Context, paymentID snowflake.ID, amount decimal.Decimal) (*RefundResult, error)

	RefundReason(ctx context.Context) (*RefundReason, error)
	PreviousSources(ctx context.Context, order *Order) ([]*PaymentSource, error)
	PreviousSourcesForOrder(ctx context.Context, orderID snowflake.ID) ([]*PaymentSource, error)
}

var (
	ErrPaymentMethodNotFound   = errors.New("payment_method_not_found")
	ErrPaymentNotFound         = errors.New("payment_not_found")
	ErrOrderNotFound           = errors.New("order_not_found")
	ErrInvalidName             = errors.New("invalid_name")
	ErrInvalidSetupFutureUsage = errors.New("invalid_setup_future_usage")
	ErrSlugAlreadyAssigned     = errors.New("slug_already_assigned")
	ErrSlugUnavailable         = errors.New("slug_unavailable")
	ErrRefundReasonNotFound    = errors.New("refund_reason_not_found")
	ErrIntentNotFound          = errors.New("payment_intent_not_found")
	ErrInvalidIntentID         = errors.New("invalid_payment_intent_id")
	ErrInvalidAmount           = errors.New("invalid_amount")
	ErrGatewayNotFound         = errors.New("gateway_not_found")
	ErrInvalidConfig           = errors.New("invalid_config")
)
