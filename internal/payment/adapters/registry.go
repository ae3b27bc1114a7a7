package adapters

import (
	"fmt"
	"strings"

	paymentdomain "github.com/railzwaylabs/railzway-stripe/internal/payment/domain"
	"github.com/railzwaylabs/railzway-stripe/internal/payment/adapters/sandbox"
	"github.com/railzwaylabs/railzway-stripe/internal/payment/adapters/stripe"
)

// Registry resolves gateway factories by driver name.
type Registry struct {
	factories map[string]paymentdomain.GatewayFactory
}

func NewRegistry(factories ...paymentdomain.GatewayFactory) *Registry {
	reg := &Registry{factories: make(map[string]paymentdomain.GatewayFactory, len(factories))}
	for _, f := range factories {
		if f == nil {
			continue
		}
		reg.factories[strings.ToLower(f.Driver())] = f
	}
	return reg
}

// NewDefaultRegistry registers every built-in driver.
func NewDefaultRegistry() *Registry {
	return NewRegistry(stripe.NewFactory(), sandbox.NewFactory())
}

func (r *Registry) Exists(driver string) bool {
	_, ok := r.factories[strings.ToLower(strings.TrimSpace(driver))]
	return ok
}

// Require fails when no factory is registered for driver.
func (r *Registry) Require(driver string) error {
	if !r.Exists(driver) {
		return fmt.Errorf("%w: %q", paymentdomain.ErrGatewayNotFound, driver)
	}
	return nil
}

func (r *Registry) NewGateway(driver string, cfg paymentdomain.GatewayConfig) (paymentdomain.Gateway, error) {
	factory, ok := r.factories[strings.ToLower(strings.TrimSpace(driver))]
	if !ok {
		return nil, paymentdomain.ErrGatewayNotFound
	}
	return factory.NewGateway(cfg)
}
