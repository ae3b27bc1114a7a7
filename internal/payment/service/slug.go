package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"

	"github.com/railzwaylabs/railzway-stripe/internal/payment/domain"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	maxSlugAttempts = 8
	randomSlugBytes = 16
)

// assignSlug gives method its slug. It must run in the transaction that
// inserted method; the unique index on slug decides every conflict.
func (s *Service) assignSlug(ctx context.Context, tx *gorm.DB, method *domain.PaymentMethod) (_ *domain.SlugEntry, err error) {
	ctx, span := s.tracer.Start(ctx, "stripe.slug.assign")
	defer func() { endSpan(span, err) }()

	existing, err := s.slugRepo.FindByPaymentMethodID(ctx, tx, method.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrSlugAlreadyAssigned
	}

	count, err := s.methodRepo.Count(ctx, tx)
	if err != nil {
		return nil, err
	}

	candidate, kind := "", slugKindRandom
	if count == 1 {
		candidate, kind = method.DefaultSlug(), slugKindDefault
	}

	now := s.clock.Now(ctx)
	for attempt := 1; attempt <= maxSlugAttempts; attempt++ {
		if candidate == "" {
			candidate, err = s.newSlug()
			if err != nil {
				return nil, err
			}
			kind = slugKindRandom
		}

		entry := &domain.SlugEntry{
			ID:              s.genID.Generate(),
			PaymentMethodID: method.ID,
			Slug:            candidate,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		inserted, err := s.slugRepo.InsertIfAbsent(ctx, tx, entry)
		if err != nil {
			return nil, err
		}
		if inserted {
			span.SetAttributes(
				attribute.String("stripe.slug_kind", kind),
				attribute.Int("stripe.slug_attempts", attempt),
			)
			s.metrics.slugsAssigned.WithLabelValues(kind).Inc()
			return entry, nil
		}

		s.metrics.slugCollisions.Inc()
		s.log.Debug("slug taken, drawing another",
			zap.String("payment_method_id", method.ID.String()),
			zap.String("slug", candidate),
			zap.Int("attempt", attempt),
		)
		candidate = ""
	}

	return nil, domain.ErrSlugUnavailable
}

// randomSlug returns 128 random bits as 32 lowercase hex characters.
func randomSlug() (string, error) {
	buf := make([]byte, randomSlugBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
