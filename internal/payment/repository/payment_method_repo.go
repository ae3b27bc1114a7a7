package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/railzwaylabs/railzway-stripe/internal/payment/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type paymentMethodRepo struct{}

func NewPaymentMethodRepository() domain.PaymentMethodRepository {
	return &paymentMethodRepo{}
}

func (r *paymentMethodRepo) Insert(ctx context.Context, db *gorm.DB, method *domain.PaymentMethod) error {
	return db.WithContext(ctx).Omit(clause.Associations).Create(method).Error
}

func (r *paymentMethodRepo) Update(ctx context.Context, db *gorm.DB, method *domain.PaymentMethod) error {
	if method == nil {
		return gorm.ErrInvalidData
	}
	return db.WithContext(ctx).
		Model(&domain.PaymentMethod{}).
		Where("id = ?", method.ID).
		Updates(map[string]any{
			"name":        method.Name,
			"description": method.Description,
			"active":      method.Active,
			"preferences": method.EncryptedPreferences,
			"updated_at":  method.UpdatedAt,
		}).Error
}

func (r *paymentMethodRepo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&domain.PaymentMethod{}).Error
}

func (r *paymentMethodRepo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.PaymentMethod, error) {
	var method domain.PaymentMethod
	if err := db.WithContext(ctx).
		Preload("SlugEntry").
		Where("id = ?", id).
		First(&method).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &method, nil
}

// FindBySlug selects methods through the slug entry table, so a method is
// only returned while its entry exists.
func (r *paymentMethodRepo) FindBySlug(ctx context.Context, db *gorm.DB, slug string) ([]*domain.PaymentMethod, error) {
	owners := db.WithContext(ctx).
		Model(&domain.SlugEntry{}).
		Select("payment_method_id").
		Where("slug = ?", slug)

	var methods []*domain.PaymentMethod
	if err := db.WithContext(ctx).
		Preload("SlugEntry").
		Where("id IN (?)", owners).
		Order("created_at ASC").
		Find(&methods).Error; err != nil {
		return nil, err
	}
	return methods, nil
}

func (r *paymentMethodRepo) List(ctx context.Context, db *gorm.DB) ([]*domain.PaymentMethod, error) {
	var methods []*domain.PaymentMethod
	if err := db.WithContext(ctx).
		Preload("SlugEntry").
		Order("created_at ASC, id ASC").
		Find(&methods).Error; err != nil {
		return nil, err
	}
	return methods, nil
}

func (r *paymentMethodRepo) Count(ctx context.Context, db *gorm.DB) (int64, error) {
	var count int64
	if err := db.WithContext(ctx).Model(&domain.PaymentMethod{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
