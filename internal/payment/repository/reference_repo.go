package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/railzwaylabs/railzway-stripe/internal/payment/domain"
	"gorm.io/gorm"
)

type paymentRepo struct{}

func NewPaymentRepository() domain.PaymentRepository {
	return &paymentRepo{}
}

func (r *paymentRepo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Payment, error) {
	var payment domain.Payment
	if err := db.WithContext(ctx).Where("id = ?", id).First(&payment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &payment, nil
}

type orderRepo struct{}

func NewOrderRepository() domain.OrderRepository {
	return &orderRepo{}
}

func (r *orderRepo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Order, error) {
	var order domain.Order
	if err := db.WithContext(ctx).Where("id = ?", id).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

type walletRepo struct{}

func NewWalletRepository() domain.WalletRepository {
	return &walletRepo{}
}

func (r *walletRepo) ListPaymentSources(ctx context.Context, db *gorm.DB, userID snowflake.ID) ([]*domain.PaymentSource, error) {
	var sources []*domain.PaymentSource
	err := db.WithContext(ctx).Raw(
		`SELECT s.id, s.payment_method_id, s.stripe_payment_method_id, s.kind, s.created_at
		 FROM stripe_payment_sources s
		 JOIN wallet_payment_sources w ON w.payment_source_id = s.id
		 WHERE w.user_id = ?
		 ORDER BY w.created_at ASC, w.id ASC`,
		userID,
	).Scan(&sources).Error
	if err != nil {
		return nil, err
	}
	return sources, nil
}

type refundReasonRepo struct{}

func NewRefundReasonRepository() domain.RefundReasonRepository {
	return &refundReasonRepo{}
}

func (r *refundReasonRepo) FindByName(ctx context.Context, db *gorm.DB, name string) (*domain.RefundReason, error) {
	var reason domain.RefundReason
	if err := db.WithContext(ctx).Where("name = ?", name).First(&reason).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &reason, nil
}
