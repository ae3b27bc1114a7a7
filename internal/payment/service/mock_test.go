package service

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/railzwaylabs/railzway-stripe/internal/payment/domain"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type mockIntentRepo struct {
	mock.Mock
}

func (m *mockIntentRepo) Insert(ctx context.Context, db *gorm.DB, intent *domain.PaymentIntent) error {
	args := m.Called(intent)
	return args.Error(0)
}

func (m *mockIntentRepo) PickStripeIntentID(ctx context.Context, db *gorm.DB, orderID, paymentMethodID snowflake.ID) (string, error) {
	args := m.Called(orderID, paymentMethodID)
	return args.String(0), args.Error(1)
}
