package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/railzwaylabs/railzway-stripe/internal/payment/domain"
	"gorm.io/gorm"
)

type paymentIntentRepo struct{}

func NewPaymentIntentRepository() domain.PaymentIntentRepository {
	return &paymentIntentRepo{}
}

func (r *paymentIntentRepo) Insert(ctx context.Context, db *gorm.DB, intent *domain.PaymentIntent) error {
	return db.WithContext(ctx).Create(intent).Error
}

func (r *paymentIntentRepo) PickStripeIntentID(ctx context.Context, db *gorm.DB, orderID, paymentMethodID snowflake.ID) (string, error) {
	var ids []string
	err := db.WithContext(ctx).
		Model(&domain.PaymentIntent{}).
		Where("order_id = ? AND payment_method_id = ?", orderID, paymentMethodID).
		Order("created_at ASC").
		Limit(1).
		Pluck("stripe_intent_id", &ids).Error
	if err != nil {
		return "", err
	}
	if len(ids) == 0 {
		return "", nil
	}
	return ids[0], nil
}
