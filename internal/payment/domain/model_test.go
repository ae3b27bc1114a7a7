package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDashboardURL(t *testing.T) {
	testMethod := &PaymentMethod{Preferences: Preferences{TestMode: true}}
	liveMethod := &PaymentMethod{Preferences: Preferences{TestMode: false}}

	tests := []struct {
		name     string
		method   *PaymentMethod
		intentID string
		want     string
	}{
		{"test mode intent", testMethod, "pi_123", "https://dashboard.stripe.com/test/payments/pi_123"},
		{"live mode intent", liveMethod, "pi_123", "https://dashboard.stripe.com/payments/pi_123"},
		{"setup intent has no page", testMethod, "seti_123", ""},
		{"empty id", liveMethod, "", ""},
		{"prefix must lead", liveMethod, "xpi_123", ""},
		{"bare prefix", liveMethod, "pi_", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.method.DashboardURL(tt.intentID))
		})
	}
}

func TestPreferencesValidate(t *testing.T) {
	for _, v := range []string{"", "on_session", "off_session"} {
		assert.NoError(t, Preferences{SetupFutureUsage: v}.Validate(), v)
	}
	assert.ErrorIs(t, Preferences{SetupFutureUsage: "always"}.Validate(), ErrInvalidSetupFutureUsage)
	assert.ErrorIs(t, Preferences{SetupFutureUsage: "ON_SESSION"}.Validate(), ErrInvalidSetupFutureUsage)
}

func TestDefaultSlug(t *testing.T) {
	assert.Equal(t, "test", (&PaymentMethod{Preferences: Preferences{TestMode: true}}).DefaultSlug())
	assert.Equal(t, "live", (&PaymentMethod{}).DefaultSlug())
}

func TestSlugDelegatesToEntry(t *testing.T) {
	var nilMethod *PaymentMethod
	assert.Equal(t, "", nilMethod.Slug())
	assert.Equal(t, "", (&PaymentMethod{}).Slug())
	assert.Equal(t, "live", (&PaymentMethod{SlugEntry: &SlugEntry{Slug: "live"}}).Slug())
}

func TestPartialNames(t *testing.T) {
	for _, kind := range []PartialKind{PartialDefault, PartialCart, PartialProductPage, PartialRisky} {
		assert.Equal(t, "stripe", PartialNameFor(kind))
	}
}

func TestCapabilities(t *testing.T) {
	m := &PaymentMethod{}
	assert.True(t, m.SourceRequired())
	assert.False(t, m.PaymentProfilesSupported())
}
