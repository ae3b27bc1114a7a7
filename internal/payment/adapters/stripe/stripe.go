package stripe

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bwmarrin/snowflake"
	paymentdomain "github.com/railzwaylabs/railzway-stripe/internal/payment/domain"
	stripeapi "github.com/stripe/stripe-go/v82"
)

const Driver = "stripe"

type Factory struct{}

func NewFactory() *Factory {
	return &Factory{}
}

func (f *Factory) Driver() string {
	return Driver
}

func (f *Factory) NewGateway(cfg paymentdomain.GatewayConfig) (paymentdomain.Gateway, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, paymentdomain.ErrInvalidConfig
	}
	if !keyMatchesMode(apiKey, cfg.TestMode) {
		return nil, fmt.Errorf("%w: api key does not match test mode", paymentdomain.ErrInvalidConfig)
	}

	return &Gateway{
		paymentMethodID: cfg.PaymentMethodID,
		client:          stripeapi.NewClient(apiKey, nil),
	}, nil
}

type Gateway struct {
	paymentMethodID snowflake.ID
	client          *stripeapi.Client
}

func (g *Gateway) Driver() string {
	return Driver
}

func (g *Gateway) RetrieveIntent(ctx context.Context, intentID string) (*paymentdomain.IntentDetails, error) {
	if !paymentdomain.IsIntentID(intentID) {
		return nil, paymentdomain.ErrInvalidIntentID
	}

	intent, err := g.client.V1PaymentIntents.Retrieve(ctx, intentID, &stripeapi.PaymentIntentRetrieveParams{})
	if err != nil {
		return nil, mapError(err)
	}

	details := &paymentdomain.IntentDetails{
		ID:             intent.ID,
		Status:         string(intent.Status),
		Amount:         intent.Amount,
		AmountReceived: intent.AmountReceived,
		Currency:       string(intent.Currency),
		Metadata:       intent.Metadata,
	}
	if intent.PaymentMethod != nil {
		details.PaymentMethodID = intent.PaymentMethod.ID
	}
	return details, nil
}

func (g *Gateway) Refund(ctx context.Context, req paymentdomain.RefundRequest) (*paymentdomain.RefundResult, error) {
	if !paymentdomain.IsIntentID(req.IntentID) {
		return nil, paymentdomain.ErrInvalidIntentID
	}
	if req.Amount <= 0 {
		return nil, paymentdomain.ErrInvalidAmount
	}

	params := &stripeapi.RefundCreateParams{
		PaymentIntent: stripeapi.String(req.IntentID),
		Amount:        stripeapi.Int64(req.Amount),
	}
	params.AddMetadata("payment_method_id", g.paymentMethodID.String())
	if req.Reason != "" {
		params.AddMetadata("refund_reason", req.Reason)
	}
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}

	refund, err := g.client.V1Refunds.Create(ctx, params)
	if err != nil {
		return nil, mapError(err)
	}

	return &paymentdomain.RefundResult{
		ID:       refund.ID,
		Status:   string(refund.Status),
		Amount:   refund.Amount,
		Currency: string(refund.Currency),
	}, nil
}

func keyMatchesMode(apiKey string, testMode bool) bool {
	switch {
	case strings.HasPrefix(apiKey, "sk_test_"), strings.HasPrefix(apiKey, "rk_test_"):
		return testMode
	case strings.HasPrefix(apiKey, "sk_live_"), strings.HasPrefix(apiKey, "rk_live_"):
		return !testMode
	default:
		// Unknown key shapes are left for Stripe to reject.
		return true
	}
}

func mapError(err error) error {
	var stripeErr *stripeapi.Error
	if errors.As(err, &stripeErr) && stripeErr.Code == stripeapi.ErrorCodeResourceMissing {
		return paymentdomain.ErrIntentNotFound
	}
	return fmt.Errorf("stripe: %w", err)
}
