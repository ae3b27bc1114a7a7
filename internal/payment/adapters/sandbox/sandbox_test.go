package sandbox

import (
	"context"
	"testing"

	paymentdomain "github.com/railzwaylabs/railzway-stripe/internal/payment/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetrieveIntent(t *testing.T) {
	f := NewFactory()
	gw, err := f.NewGateway(paymentdomain.GatewayConfig{PaymentMethodID: 9})
	require.NoError(t, err)

	intent, err := gw.RetrieveIntent(context.Background(), "pi_abc")
	require.NoError(t, err)
	assert.Equal(t, "pi_abc", intent.ID)
	assert.Equal(t, StatusSucceeded, intent.Status)
	assert.Equal(t, "9", intent.Metadata["payment_method_id"])

	_, err = gw.RetrieveIntent(context.Background(), "seti_abc")
	assert.ErrorIs(t, err, paymentdomain.ErrInvalidIntentID)

	_, err = gw.RetrieveIntent(context.Background(), "pi_missing_1")
	assert.ErrorIs(t, err, paymentdomain.ErrIntentNotFound)
}

func TestRefundTracksRemainingAmount(t *testing.T) {
	f := NewFactory()
	f.Seed(paymentdomain.IntentDetails{ID: "pi_seeded", Amount: 5000, AmountReceived: 5000, Currency: "eur"})
	gw, err := f.NewGateway(paymentdomain.GatewayConfig{})
	require.NoError(t, err)

	ctx := context.Background()
	first, err := gw.Refund(ctx, paymentdomain.RefundRequest{IntentID: "pi_seeded", Amount: 3000})
	require.NoError(t, err)
	assert.Equal(t, "re_sandbox_1", first.ID)
	assert.Equal(t, "eur", first.Currency)
	assert.Equal(t, int64(3000), first.Amount)

	// A second gateway from the same factory shares the ledger.
	other, err := f.NewGateway(paymentdomain.GatewayConfig{})
	require.NoError(t, err)
	_, err = other.Refund(ctx, paymentdomain.RefundRequest{IntentID: "pi_seeded", Amount: 2500})
	assert.ErrorIs(t, err, paymentdomain.ErrInvalidAmount)

	second, err := other.Refund(ctx, paymentdomain.RefundRequest{IntentID: "pi_seeded", Amount: 2000})
	require.NoError(t, err)
	assert.Equal(t, "re_sandbox_2", second.ID)
}

func TestRefundValidation(t *testing.T) {
	gw, err := NewFactory().NewGateway(paymentdomain.GatewayConfig{})
	require.NoError(t, err)

	_, err = gw.Refund(context.Background(), paymentdomain.RefundRequest{IntentID: "ch_1", Amount: 100})
	assert.ErrorIs(t, err, paymentdomain.ErrInvalidIntentID)

	_, err = gw.Refund(context.Background(), paymentdomain.RefundRequest{IntentID: "pi_1", Amount: 0})
	assert.ErrorIs(t, err, paymentdomain.ErrInvalidAmount)
}
