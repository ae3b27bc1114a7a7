package seed

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	gslug "github.com/gosimple/slug"
	"github.com/railzwaylabs/railzway-stripe/internal/payment/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const DefaultRefundReasonName = "Stripe refund"

// EnsureRefundReason seeds the refund reason used for Stripe refunds. It is
// safe to run repeatedly.
func EnsureRefundReason(ctx context.Context, db *gorm.DB, node *snowflake.Node, name string) (*domain.RefundReason, error) {
	if db == nil {
		return nil, errors.New("seed database handle is required")
	}
	if node == nil {
		return nil, errors.New("seed id generator is required")
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultRefundReasonName
	}

	reason := &domain.RefundReason{
		ID:        node.Generate(),
		Name:      name,
		Code:      gslug.Make(name),
		Active:    true,
		CreatedAt: time.Now().UTC(),
	}

	var out domain.RefundReason
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).Create(reason).Error; err != nil {
			return err
		}
		return tx.Where("name = ?", name).First(&out).Error
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
