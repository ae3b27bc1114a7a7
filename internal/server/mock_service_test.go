package server

import (
	"context"

	"github.com/bwmarrin/snowflake"
	paymentdomain "github.com/railzwaylabs/railzway-stripe/internal/payment/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type mockPaymentService struct {
	mock.Mock
}

func (m *mockPaymentService) methodResult(args mock.Arguments) (*paymentdomain.PaymentMethod, error) {
	if v := args.Get(0); v != nil {
		return v.(*paymentdomain.PaymentMethod), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPaymentService) methodsResult(args mock.Arguments) ([]*paymentdomain.PaymentMethod, error) {
	if v := args.Get(0); v != nil {
		return v.([]*paymentdomain.PaymentMethod), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPaymentService) Create(ctx context.Context, input paymentdomain.CreatePaymentMethodInput) (*paymentdomain.PaymentMethod, error) {
	return m.methodResult(m.Called(input))
}

func (m *mockPaymentService) Update(ctx context.Context, id snowflake.ID, input paymentdomain.UpdatePaymentMethodInput) (*paymentdomain.PaymentMethod, error) {
	return m.methodResult(m.Called(id, input))
}

func (m *mockPaymentService) Delete(ctx context.Context, id snowflake.ID) error {
	return m.Called(id).Error(0)
}

func (m *mockPaymentService) Get(ctx context.Context, id snowflake.ID) (*paymentdomain.PaymentMethod, error) {
	return m.methodResult(m.Called(id))
}

func (m *mockPaymentService) List(ctx context.Context) ([]*paymentdomain.PaymentMethod, error) {
	return m.methodsResult(m.Called())
}

func (m *mockPaymentService) WithSlug(ctx context.Context, slug string) ([]*paymentdomain.PaymentMethod, error) {
	return m.methodsResult(m.Called(slug))
}

func (m *mockPaymentService) IntentIDForPayment(ctx context.Context, payment *paymentdomain.Payment) (string, error) {
	args := m.Called(payment)
	return args.String(0), args.Error(1)
}

func (m *mockPaymentService) ResolvePaymentIntent(ctx context.Context, paymentID snowflake.ID) (*paymentdomain.IntentReference, error) {
	args := m.Called(paymentID)
	if v := args.Get(0); v != nil {
		return v.(*paymentdomain.IntentReference), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPaymentService) RetrieveIntent(ctx context.Context, paymentMethodID snowflake.ID, intentID string) (*paymentdomain.IntentDetails, error) {
	args := m.Called(paymentMethodID, intentID)
	if v := args.Get(0); v != nil {
		return v.(*paymentdomain.IntentDetails), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPaymentService) Refund(ctx context.Context, paymentID snowflake.ID, amount decimal.Decimal) (*paymentdomain.RefundResult, error) {
	args := m.Called(paymentID, amount.String())
	if v := args.Get(0); v != nil {
		return v.(*paymentdomain.RefundResult), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPaymentService) RefundReason(ctx context.Context) (*paymentdomain.RefundReason, error) {
	args := m.Called()
	if v := args.Get(0); v != nil {
		return v.(*paymentdomain.RefundReason), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPaymentService) PreviousSources(ctx context.Context, order *paymentdomain.Order) ([]*paymentdomain.PaymentSource, error) {
	args := m.Called(order)
	if v := args.Get(0); v != nil {
		return v.([]*paymentdomain.PaymentSource), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPaymentService) PreviousSourcesForOrder(ctx context.Context, orderID snowflake.ID) ([]*paymentdomain.PaymentSource, error) {
	args := m.Called(orderID)
	if v := args.Get(0); v != nil {
		return v.([]*paymentdomain.PaymentSource), args.Error(1)
	}
	return nil, args.Error(1)
}
