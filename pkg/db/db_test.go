package db

import (
	"context"
	"testing"

	"github.com/railzwaylabs/railzway-stripe/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestOpenSQLite(t *testing.T) {
	cfg := config.Config{
		AppName:  "railzway-stripe-test",
		Mode:     config.ModeTest,
		Database: config.DatabaseConfig{Driver: "sqlite", DSN: ":memory:"},
	}

	conn, err := Open(cfg, zap.NewNop())
	require.NoError(t, err)

	var one int
	require.NoError(t, conn.Raw("SELECT 1").Scan(&one).Error)
	assert.Equal(t, 1, one)
}

func TestOpenUnknownDriver(t *testing.T) {
	cfg := config.Config{
		Database: config.DatabaseConfig{Driver: "oracle", DSN: "x"},
	}

	_, err := Open(cfg, zap.NewNop())
	assert.Error(t, err)
}

func TestLoggerRoutesThroughZap(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	cfg := config.Config{
		Mode:     config.ModeProduction,
		Database: config.DatabaseConfig{Driver: "sqlite", DSN: ":memory:", MaxOpenConns: 1},
	}

	conn, err := Open(cfg, zap.New(core))
	require.NoError(t, err)
	require.NoError(t, conn.Exec("CREATE TABLE widgets (id INTEGER PRIMARY KEY)").Error)

	var row struct{ ID int64 }
	err = conn.Table("widgets").Where("id = ?", 1).First(&row).Error
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.Zero(t, logs.FilterLevelExact(zapcore.ErrorLevel).Len())

	err = conn.Exec("SELECT * FROM missing_table").Error
	require.Error(t, err)

	failed := logs.FilterMessage("database query failed").All()
	require.Len(t, failed, 1)
	assert.Equal(t, "gorm", failed[0].LoggerName)
	assert.Contains(t, failed[0].ContextMap()["sql"], "missing_table")
}

func TestLoggerLogModeIsIndependent(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	base := NewLogger(zap.New(core), logger.Error)
	verbose := base.LogMode(logger.Info)

	base.Info(context.Background(), "hidden %d", 1)
	verbose.Info(context.Background(), "shown %d", 2)

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "shown 2", logs.All()[0].Message)
}
