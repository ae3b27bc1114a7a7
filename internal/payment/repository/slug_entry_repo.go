package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/railzwaylabs/railzway-stripe/internal/payment/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const pgUniqueViolation = "23505"

type slugEntryRepo struct{}

func NewSlugEntryRepository() domain.SlugEntryRepository {
	return &slugEntryRepo{}
}

// InsertIfAbsent relies on the unique index on slug: a conflicting slug
// inserts nothing and reports false. On postgres and sqlite a conflict on
// payment_method_id is not absorbed and surfaces as ErrSlugAlreadyAssigned.
// MySQL renders DoNothing as ON DUPLICATE KEY UPDATE, which swallows both
// keys, so callers must check FindByPaymentMethodID first.
func (r *slugEntryRepo) InsertIfAbsent(ctx context.Context, db *gorm.DB, entry *domain.SlugEntry) (bool, error) {
	result := db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "slug"}},
			DoNothing: true,
		}).
		Create(entry)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return false, domain.ErrSlugAlreadyAssigned
		}
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *slugEntryRepo) FindByPaymentMethodID(ctx context.Context, db *gorm.DB, paymentMethodID snowflake.ID) (*domain.SlugEntry, error) {
	var entries []domain.SlugEntry
	if err := db.WithContext(ctx).
		Where("payment_method_id = ?", paymentMethodID).
		Limit(1).
		Find(&entries).Error; err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, nil
	}
	return &entries[0], nil
}

func (r *slugEntryRepo) DeleteByPaymentMethodID(ctx context.Context, db *gorm.DB, paymentMethodID snowflake.ID) error {
	return db.WithContext(ctx).
		Where("payment_method_id = ?", paymentMethodID).
		Delete(&domain.SlugEntry{}).Error
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "Duplicate entry")
}
