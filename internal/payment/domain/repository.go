package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type PaymentMethodRepository interface {
	Insert(ctx context.Context, db *gorm.DB, method *PaymentMethod) error
	Update(ctx context.Context, db *gorm.DB, method *PaymentMethod) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*PaymentMethod, error)
	FindBySlug(ctx context.Context, db *gorm.DB, slug string) ([]*PaymentMethod, error)
	List(ctx context.Context, db *gorm.DB) ([]*PaymentMethod, error)
	Count(ctx context.Context, db *gorm.DB) (int64, error)
}

type SlugEntryRepository interface {
	// InsertIfAbsent reports false when the slug is already taken.
	InsertIfAbsent(ctx context.Context, db *gorm.DB, entry *SlugEntry) (bool, error)
	FindByPaymentMethodID(ctx context.Context, db *gorm.DB, paymentMethodID snowflake.ID) (*SlugEntry, error)
	DeleteByPaymentMethodID(ctx context.Context, db *gorm.DB, paymentMethodID snowflake.ID) error
}

type PaymentIntentRepository interface {
	Insert(ctx context.Context, db *gorm.DB, intent *PaymentIntent) error
	// PickStripeIntentID returns "" when no intent exists for the pair.
	PickStripeIntentID(ctx context.Context, db *gorm.DB, orderID, paymentMethodID snowflake.ID) (string, error)
}

type PaymentRepository interface {
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Payment, error)
}

type OrderRepository interface {
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Order, error)
}

type WalletRepository interface {
	ListPaymentSources(ctx context.Context, db *gorm.DB, userID snowflake.ID) ([]*PaymentSource, error)
}

type RefundReasonRepository interface {
	FindByName(ctx context.Context, db *gorm.DB, name string) (*RefundReason, error)
}

// SlugCache remembers which payment method owns a slug.
type SlugCache interface {
	Get(ctx context.Context, slug string) (snowflake.ID, bool, error)
	Set(ctx context.Context, slug string, paymentMethodID snowflake.ID) error
	Delete(ctx context.Context, slug string) error
}
