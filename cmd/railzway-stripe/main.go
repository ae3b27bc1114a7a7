package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/railzwaylabs/railzway-stripe/internal/bootstrap"
	"github.com/railzwaylabs/railzway-stripe/internal/clock"
	"github.com/railzwaylabs/railzway-stripe/internal/config"
	"github.com/railzwaylabs/railzway-stripe/internal/migration"
	"github.com/railzwaylabs/railzway-stripe/internal/observability"
	"github.com/railzwaylabs/railzway-stripe/internal/payment"
	"github.com/railzwaylabs/railzway-stripe/internal/redis"
	"github.com/railzwaylabs/railzway-stripe/internal/security/vault"
	"github.com/railzwaylabs/railzway-stripe/internal/seed"
	"github.com/railzwaylabs/railzway-stripe/internal/server"
	"github.com/railzwaylabs/railzway-stripe/pkg/db"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "railzway-stripe",
		Short:   "Stripe payment method service",
		Version: readVersionFromEnv(),
	}
	root.AddCommand(newMigrateCmd(), newServeCmd(), newAllCmd())
	return root
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations and seed reference data",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate()
		},
	}
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the admin API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			runServe()
			return nil
		},
	}
}

func newAllCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "all",
		Short: "Run migrations, then start the admin API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := runMigrate(); err != nil {
				return err
			}
			runServe()
			return nil
		},
	}
}

func runMigrate() error {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(registerSnowflake),
		db.Module,
		migration.Module,
		fx.Invoke(seedReferenceData),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := app.Start(ctx); err != nil {
		return fmt.Errorf("migrate failed: %w", err)
	}
	_ = app.Stop(context.Background())
	return nil
}

func runServe() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(registerSnowflake),
		db.Module,
		bootstrap.Module,
		clock.Module,
		redis.Module,
		vault.Module,
		payment.Module,
		server.Module,
	)
	app.Run()
}

func seedReferenceData(conn *gorm.DB, node *snowflake.Node, cfg config.Config, log *zap.Logger) error {
	reason, err := seed.EnsureRefundReason(context.Background(), conn, node, cfg.Stripe.RefundReasonName)
	if err != nil {
		return fmt.Errorf("seed refund reason: %w", err)
	}
	log.Info("refund reason ready", zap.String("name", reason.Name))
	return nil
}

func registerSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}

func readVersionFromEnv() string {
	if v := strings.TrimSpace(os.Getenv("APP_VERSION")); v != "" {
		return v
	}
	return "dev"
}
