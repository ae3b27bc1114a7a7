package stripe

import (
	"context"
	"errors"
	"testing"

	paymentdomain "github.com/railzwaylabs/railzway-stripe/internal/payment/domain"
	stripeapi "github.com/stripe/stripe-go/v82"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGatewayValidatesConfig(t *testing.T) {
	f := NewFactory()

	_, err := f.NewGateway(paymentdomain.GatewayConfig{APIKey: "  "})
	assert.ErrorIs(t, err, paymentdomain.ErrInvalidConfig)

	_, err = f.NewGateway(paymentdomain.GatewayConfig{APIKey: "sk_live_abc", TestMode: true})
	assert.ErrorIs(t, err, paymentdomain.ErrInvalidConfig)

	_, err = f.NewGateway(paymentdomain.GatewayConfig{APIKey: "sk_test_abc", TestMode: false})
	assert.ErrorIs(t, err, paymentdomain.ErrInvalidConfig)

	gw, err := f.NewGateway(paymentdomain.GatewayConfig{APIKey: "sk_test_abc", TestMode: true})
	require.NoError(t, err)
	assert.Equal(t, Driver, gw.Driver())
}

func TestGatewayRejectsNonIntentIDs(t *testing.T) {
	gw, err := NewFactory().NewGateway(paymentdomain.GatewayConfig{APIKey: "sk_test_abc", TestMode: true})
	require.NoError(t, err)

	_, err = gw.RetrieveIntent(context.Background(), "seti_123")
	assert.ErrorIs(t, err, paymentdomain.ErrInvalidIntentID)

	_, err = gw.Refund(context.Background(), paymentdomain.RefundRequest{IntentID: "ch_123", Amount: 100})
	assert.ErrorIs(t, err, paymentdomain.ErrInvalidIntentID)

	_, err = gw.Refund(context.Background(), paymentdomain.RefundRequest{IntentID: "pi_123", Amount: -1})
	assert.ErrorIs(t, err, paymentdomain.ErrInvalidAmount)
}

func TestMapError(t *testing.T) {
	missing := &stripeapi.Error{Code: stripeapi.ErrorCodeResourceMissing}
	assert.ErrorIs(t, mapError(missing), paymentdomain.ErrIntentNotFound)

	other := errors.New("boom")
	mapped := mapError(other)
	assert.ErrorIs(t, mapped, other)
	assert.Contains(t, mapped.Error(), "stripe: ")
}
