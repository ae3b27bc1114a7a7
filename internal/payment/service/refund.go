package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/railzwaylabs/railzway-stripe/internal/payment/domain"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Stripe zero-decimal currencies; every other currency uses two decimals.
var zeroDecimalCurrencies = []string{
	"bif", "clp", "djf", "gnf", "jpy", "kmf", "krw", "mga",
	"pyg", "rwf", "ugx", "vnd", "vuv", "xaf", "xof", "xpf",
}

// RefundReason fails hard: a missing reason is a configuration error.
func (s *Service) RefundReason(ctx context.Context) (*domain.RefundReason, error) {
	reason, err := s.refundReasonRepo.FindByName(ctx, s.db, s.refundReasonName)
	if err != nil {
		return nil, err
	}
	if reason == nil {
		s.log.Error("refund reason missing", zap.String("name", s.refundReasonName))
		return nil, fmt.Errorf("%w: %q", domain.ErrRefundReasonNotFound, s.refundReasonName)
	}
	return reason, nil
}

func (s *Service) Refund(ctx context.Context, paymentID snowflake.ID, amount decimal.Decimal) (*domain.RefundResult, error) {
	if !amount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}

	payment, err := s.paymentRepo.FindByID(ctx, s.db, paymentID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, domain.ErrPaymentNotFound
	}
	if amount.GreaterThan(payment.Amount) {
		return nil, domain.ErrInvalidAmount
	}
	minor := minorUnits(amount, payment.Currency)
	if minor <= 0 {
		return nil, domain.ErrInvalidAmount
	}

	reason, err := s.RefundReason(ctx)
	if err != nil {
		return nil, err
	}

	intentID, err := s.IntentIDForPayment(ctx, payment)
	if err != nil {
		return nil, err
	}
	if intentID == "" {
		return nil, domain.ErrIntentNotFound
	}

	method, err := s.Get(ctx, payment.PaymentMethodID)
	if err != nil {
		return nil, err
	}
	gateway, err := s.gateway(method)
	if err != nil {
		return nil, err
	}

	spanCtx, span := s.tracer.Start(ctx, "stripe.gateway.refund", trace.WithAttributes(
		attribute.String("stripe.driver", gateway.Driver()),
		attribute.String("stripe.intent_id", intentID),
		attribute.Int64("stripe.amount", minor),
	))
	result, err := gateway.Refund(spanCtx, domain.RefundRequest{
		IntentID: intentID,
		Amount:   minor,
		Reason:   reason.Name,
		Metadata: map[string]string{"payment_id": payment.ID.String()},
	})
	endSpan(span, err)
	if err != nil {
		s.metrics.refunds.WithLabelValues(gateway.Driver(), "failed").Inc()
		s.log.Error("refund failed",
			zap.String("payment_id", payment.ID.String()),
			zap.String("intent_id", intentID),
			zap.Error(err),
		)
		return nil, err
	}

	s.metrics.refunds.WithLabelValues(gateway.Driver(), "succeeded").Inc()
	s.log.Info("refund issued",
		zap.String("payment_id", payment.ID.String()),
		zap.String("intent_id", intentID),
		zap.String("refund_id", result.ID),
		zap.String("amount", amount.String()),
	)
	return result, nil
}

func minorUnits(amount decimal.Decimal, currency string) int64 {
	if lo.Contains(zeroDecimalCurrencies, strings.ToLower(currency)) {
		return amount.Round(0).IntPart()
	}
	return amount.Shift(2).Round(0).IntPart()
}
