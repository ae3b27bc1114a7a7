package service

import (
	"context"
	"errors"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/railzwaylabs/railzway-stripe/internal/payment/domain"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// IntentIDForPayment prefers the transaction id recorded on the payment and
// only falls back to the stored intent for the order/method pair.
func (s *Service) IntentIDForPayment(ctx context.Context, payment *domain.Payment) (string, error) {
	if payment == nil {
		return "", nil
	}
	if strings.TrimSpace(payment.TransactionID) != "" {
		return payment.TransactionID, nil
	}
	return s.intentRepo.PickStripeIntentID(ctx, s.db, payment.OrderID, payment.PaymentMethodID)
}

func (s *Service) ResolvePaymentIntent(ctx context.Context, paymentID snowflake.ID) (*domain.IntentReference, error) {
	payment, err := s.paymentRepo.FindByID(ctx, s.db, paymentID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, domain.ErrPaymentNotFound
	}

	intentID, err := s.IntentIDForPayment(ctx, payment)
	if err != nil {
		return nil, err
	}
	if intentID == "" {
		return nil, domain.ErrIntentNotFound
	}

	ref := &domain.IntentReference{PaymentID: payment.ID, IntentID: intentID}
	method, err := s.Get(ctx, payment.PaymentMethodID)
	switch {
	case err == nil:
		ref.DashboardURL = method.DashboardURL(intentID)
	case !errors.Is(err, domain.ErrPaymentMethodNotFound):
		return nil, err
	}
	return ref, nil
}

func (s *Service) RetrieveIntent(ctx context.Context, paymentMethodID snowflake.ID, intentID string) (_ *domain.IntentDetails, err error) {
	intentID = strings.TrimSpace(intentID)
	if !domain.IsIntentID(intentID) {
		return nil, domain.ErrInvalidIntentID
	}

	method, err := s.Get(ctx, paymentMethodID)
	if err != nil {
		return nil, err
	}
	gateway, err := s.gateway(method)
	if err != nil {
		return nil, err
	}

	ctx, span := s.tracer.Start(ctx, "stripe.gateway.retrieve_intent", trace.WithAttributes(
		attribute.String("stripe.driver", gateway.Driver()),
		attribute.String("stripe.intent_id", intentID),
	))
	defer func() { endSpan(span, err) }()

	return gateway.RetrieveIntent(ctx, intentID)
}

func (s *Service) gateway(method *domain.PaymentMethod) (domain.Gateway, error) {
	return s.gateways.NewGateway(s.driver, domain.GatewayConfig{
		PaymentMethodID: method.ID,
		APIKey:          method.Preferences.APIKey,
		TestMode:        method.Preferences.TestMode,
	})
}
