package seed

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/railzwaylabs/railzway-stripe/internal/payment/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestEnsureRefundReasonIsIdempotent(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file:seed_refund_reason?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(&domain.RefundReason{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	ctx := context.Background()

	first, err := EnsureRefundReason(ctx, db, node, "")
	require.NoError(t, err)
	assert.Equal(t, DefaultRefundReasonName, first.Name)
	assert.Equal(t, "stripe-refund", first.Code)
	assert.True(t, first.Active)

	second, err := EnsureRefundReason(ctx, db, node, " Stripe refund ")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, db.Model(&domain.RefundReason{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestEnsureRefundReasonRequiresHandles(t *testing.T) {
	_, err := EnsureRefundReason(context.Background(), nil, nil, "x")
	assert.Error(t, err)
}
