package payment

import (
	"github.com/railzwaylabs/railzway-stripe/internal/config"
	"github.com/railzwaylabs/railzway-stripe/internal/payment/adapters"
	"github.com/railzwaylabs/railzway-stripe/internal/payment/repository"
	paymentservice "github.com/railzwaylabs/railzway-stripe/internal/payment/service"
	"github.com/railzwaylabs/railzway-stripe/internal/payment/slugcache"
	"go.uber.org/fx"
)

var Module = fx.Module("payment.service",
	fx.Provide(
		repository.NewPaymentMethodRepository,
		repository.NewSlugEntryRepository,
		repository.NewPaymentIntentRepository,
		repository.NewPaymentRepository,
		repository.NewOrderRepository,
		repository.NewWalletRepository,
		repository.NewRefundReasonRepository,
	),
	fx.Provide(adapters.NewDefaultRegistry),
	fx.Invoke(checkGatewayDriver),
	fx.Provide(slugcache.Provide),
	fx.Provide(paymentservice.NewMetrics),
	fx.Provide(paymentservice.New),
)

// checkGatewayDriver refuses to start with a driver nobody registered.
func checkGatewayDriver(cfg config.Config, registry *adapters.Registry) error {
	return registry.Require(cfg.Stripe.GatewayDriver)
}
