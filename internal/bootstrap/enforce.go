package bootstrap

import (
	"context"
	"fmt"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

// EnforceSchemaGate keeps the server from starting on a schema the migrate
// command has not activated.
func EnforceSchemaGate(lc fx.Lifecycle, gate SchemaGate, log *zap.Logger) {
	log = log.Named("bootstrap")
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := gate.MustBeActive(ctx); err != nil {
				log.Error("schema is not active, run migrate first", zap.Error(err))
				return fmt.Errorf("schema gate: %w", err)
			}
			log.Info("schema gate open")
			return nil
		},
	})
}
