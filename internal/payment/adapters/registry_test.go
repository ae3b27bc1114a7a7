package adapters

import (
	"testing"

	paymentdomain "github.com/railzwaylabs/railzway-stripe/internal/payment/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistry(t *testing.T) {
	reg := NewDefaultRegistry()

	assert.True(t, reg.Exists("stripe"))
	assert.True(t, reg.Exists(" Sandbox "))
	assert.False(t, reg.Exists("xendit"))

	gw, err := reg.NewGateway("sandbox", paymentdomain.GatewayConfig{})
	require.NoError(t, err)
	assert.Equal(t, "sandbox", gw.Driver())

	_, err = reg.NewGateway("paypal", paymentdomain.GatewayConfig{})
	assert.ErrorIs(t, err, paymentdomain.ErrGatewayNotFound)

	_, err = reg.NewGateway("stripe", paymentdomain.GatewayConfig{})
	assert.ErrorIs(t, err, paymentdomain.ErrInvalidConfig)
}

func TestRequire(t *testing.T) {
	reg := NewDefaultRegistry()

	assert.NoError(t, reg.Require("stripe"))
	assert.NoError(t, reg.Require("SANDBOX"))

	err := reg.Require("braintree")
	assert.ErrorIs(t, err, paymentdomain.ErrGatewayNotFound)
	assert.Contains(t, err.Error(), "braintree")
}
