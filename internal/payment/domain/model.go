package domain

import (
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

const (
	SetupFutureUsageNone       = ""
	SetupFutureUsageOnSession  = "on_session"
	SetupFutureUsageOffSession = "off_session"

	dashboardBaseURL = "https://dashboard.stripe.com"
)

var setupFutureUsageValues = []string{
	SetupFutureUsageNone,
	SetupFutureUsageOnSession,
	SetupFutureUsageOffSession,
}

// Preferences are the per-method Stripe settings. They are persisted as an
// encrypted blob and only exist in clear text in memory.
type Preferences struct {
	APIKey                       string `json:"api_key"`
	PublishableKey               string `json:"publishable_key"`
	SetupFutureUsage             string `json:"setup_future_usage"`
	WebhookEndpointSigningSecret string `json:"webhook_endpoint_signing_secret"`
	TestMode                     bool   `json:"test_mode"`
}

func (p Preferences) Validate() error {
	if !lo.Contains(setupFutureUsageValues, p.SetupFutureUsage) {
		return ErrInvalidSetupFutureUsage
	}
	return nil
}

// PaymentMethod is a Stripe configuration record.
type PaymentMethod struct {
	ID                   snowflake.ID   `json:"id" gorm:"primaryKey;autoIncrement:false"`
	Name                 string         `json:"name" gorm:"type:varchar(255);not null"`
	Description          string         `json:"description" gorm:"type:text"`
	Active               bool           `json:"active" gorm:"not null"`
	EncryptedPreferences datatypes.JSON `json:"-" gorm:"column:preferences;not null"`
	CreatedAt            time.Time      `json:"created_at" gorm:"not null"`
	UpdatedAt            time.Time      `json:"updated_at" gorm:"not null"`

	SlugEntry   *SlugEntry  `json:"-" gorm:"foreignKey:PaymentMethodID;constraint:OnDelete:CASCADE"`
	Preferences Preferences `json:"-" gorm:"-"`
}

func (PaymentMethod) TableName() string { return "stripe_payment_methods" }

// Slug returns the slug of the associated entry, or "" when none is loaded.
func (m *PaymentMethod) Slug() string {
	if m == nil || m.SlugEntry == nil {
		return ""
	}
	return m.SlugEntry.Slug
}

func (m *PaymentMethod) TestMode() bool {
	return m != nil && m.Preferences.TestMode
}

// DefaultSlug is the friendly slug proposed for the only method in a store.
func (m *PaymentMethod) DefaultSlug() string {
	if m.TestMode() {
		return "test"
	}
	return "live"
}

// DashboardURL links a payment intent to the Stripe dashboard. Only payment
// intent ids ("pi_") have a dashboard page; anything else yields "".
func (m *PaymentMethod) DashboardURL(intentID string) string {
	if !IsIntentID(intentID) {
		return ""
	}
	prefix := ""
	if m.TestMode() {
		prefix = "/test"
	}
	return dashboardBaseURL + prefix + "/payments/" + intentID
}

// IsIntentID reports whether id looks like a Stripe payment intent id.
func IsIntentID(id string) bool {
	return strings.HasPrefix(id, "pi_") && len(id) > len("pi_")
}

func (m *PaymentMethod) SourceRequired() bool { return true }

// PaymentProfilesSupported reports false: saved Stripe payment methods are
// tracked through wallet payment sources instead of gateway profiles.
func (m *PaymentMethod) PaymentProfilesSupported() bool { return false }

// PartialKind identifies a storefront/admin template slot.
type PartialKind string

const (
	PartialDefault     PartialKind = "default"
	PartialCart        PartialKind = "cart"
	PartialProductPage PartialKind = "product_page"
	PartialRisky       PartialKind = "risky"

	PartialName = "stripe"
)

// PartialNameFor returns the template name for the given slot. Every slot
// renders the same Stripe partial.
func PartialNameFor(PartialKind) string {
	return PartialName
}

// SlugEntry maps a unique slug to exactly one payment method.
type SlugEntry struct {
	ID              snowflake.ID `json:"id" gorm:"primaryKey;autoIncrement:false"`
	PaymentMethodID snowflake.ID `json:"payment_method_id" gorm:"not null;uniqueIndex"`
	Slug            string       `json:"slug" gorm:"type:varchar(64);not null;uniqueIndex"`
	CreatedAt       time.Time    `json:"created_at" gorm:"not null"`
	UpdatedAt       time.Time    `json:"updated_at" gorm:"not null"`
}

func (SlugEntry) TableName() string { return "stripe_slug_entries" }

// PaymentIntent records the Stripe intent created for an order/method pair.
type PaymentIntent struct {
	ID              snowflake.ID `json:"id" gorm:"primaryKey;autoIncrement:false"`
	OrderID         snowflake.ID `json:"order_id" gorm:"not null;index"`
	PaymentMethodID snowflake.ID `json:"payment_method_id" gorm:"not null;index"`
	StripeIntentID  string       `json:"stripe_intent_id" gorm:"type:varchar(255);not null"`
	CreatedAt       time.Time    `json:"created_at" gorm:"not null"`
	UpdatedAt       time.Time    `json:"updated_at" gorm:"not null"`
}

func (PaymentIntent) TableName() string { return "stripe_payment_intents" }

type Order struct {
	ID        snowflake.ID  `json:"id" gorm:"primaryKey;autoIncrement:false"`
	Number    string        `json:"number" gorm:"type:varchar(32);not null"`
	UserID    *snowflake.ID `json:"user_id" gorm:"type:bigint"`
	CreatedAt time.Time     `json:"created_at" gorm:"not null"`
}

func (Order) TableName() string { return "orders" }

type Payment struct {
	ID              snowflake.ID    `json:"id" gorm:"primaryKey;autoIncrement:false"`
	OrderID         snowflake.ID    `json:"order_id" gorm:"not null;index"`
	PaymentMethodID snowflake.ID    `json:"payment_method_id" gorm:"not null;index"`
	TransactionID   string          `json:"transaction_id" gorm:"type:varchar(255)"`
	Amount          decimal.Decimal `json:"amount" gorm:"type:decimal(12,2);not null"`
	Currency        string          `json:"currency" gorm:"type:varchar(3);not null"`
	State           string          `json:"state" gorm:"type:varchar(32);not null"`
	CreatedAt       time.Time       `json:"created_at" gorm:"not null"`
}

func (Payment) TableName() string { return "payments" }

// PaymentSource is a Stripe payment method saved against one of our
// payment methods.
type PaymentSource struct {
	ID                    snowflake.ID `json:"id" gorm:"primaryKey;autoIncrement:false"`
	PaymentMethodID       snowflake.ID `json:"payment_method_id" gorm:"not null;index"`
	StripePaymentMethodID string       `json:"stripe_payment_method_id" gorm:"type:varchar(255);not null"`
	Kind                  string       `json:"kind" gorm:"type:varchar(50)"`
	CreatedAt             time.Time    `json:"created_at" gorm:"not null"`
}

func (PaymentSource) TableName() string { return "stripe_payment_sources" }

type WalletPaymentSource struct {
	ID              snowflake.ID `json:"id" gorm:"primaryKey;autoIncrement:false"`
	UserID          snowflake.ID `json:"user_id" gorm:"not null;index"`
	PaymentSourceID snowflake.ID `json:"payment_source_id" gorm:"not null"`
	Default         bool         `json:"default" gorm:"not null"`
	CreatedAt       time.Time    `json:"created_at" gorm:"not null"`
}

func (WalletPaymentSource) TableName() string { return "wallet_payment_sources" }

type RefundReason struct {
	ID        snowflake.ID `json:"id" gorm:"primaryKey;autoIncrement:false"`
	Name      string       `json:"name" gorm:"type:varchar(255);not null;uniqueIndex"`
	Code      string       `json:"code" gorm:"type:varchar(64)"`
	Active    bool         `json:"active" gorm:"not null"`
	CreatedAt time.Time    `json:"created_at" gorm:"not null"`
}

func (RefundReason) TableName() string { return "refund_reasons" }

// Models lists every table owned by this module, in dependency order.
func Models() []any {
	return []any{
		&PaymentMethod{},
		&SlugEntry{},
		&PaymentIntent{},
		&Order{},
		&Payment{},
		&PaymentSource{},
		&WalletPaymentSource{},
		&RefundReason{},
	}
}
