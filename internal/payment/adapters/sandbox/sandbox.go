package sandbox

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/bwmarrin/snowflake"
	paymentdomain "github.com/railzwaylabs/railzway-stripe/internal/payment/domain"
)

const Driver = "sandbox"

const (
	StatusSucceeded = "succeeded"
	// Intents whose id contains this marker are reported as missing.
	missingMarker = "missing"
)

// Factory hands out gateways that share one in-memory ledger, so refunds
// issued through one gateway are visible to later lookups.
type Factory struct {
	state *state
}

func NewFactory() *Factory {
	return &Factory{state: &state{
		intents: make(map[string]*paymentdomain.IntentDetails),
		refunds: make(map[string]int64),
	}}
}

func (f *Factory) Driver() string {
	return Driver
}

func (f *Factory) NewGateway(cfg paymentdomain.GatewayConfig) (paymentdomain.Gateway, error) {
	return &Gateway{paymentMethodID: cfg.PaymentMethodID, state: f.state}, nil
}

// Seed registers an intent so lookups and refunds resolve against it.
func (f *Factory) Seed(intent paymentdomain.IntentDetails) {
	f.state.mu.Lock()
	defer f.state.mu.Unlock()
	cp := intent
	f.state.intents[intent.ID] = &cp
}

type state struct {
	mu      sync.Mutex
	intents map[string]*paymentdomain.IntentDetails
	refunds map[string]int64
	seq     int
}

type Gateway struct {
	paymentMethodID snowflake.ID
	state           *state
}

func (g *Gateway) Driver() string {
	return Driver
}

func (g *Gateway) RetrieveIntent(ctx context.Context, intentID string) (*paymentdomain.IntentDetails, error) {
	if !paymentdomain.IsIntentID(intentID) {
		return nil, paymentdomain.ErrInvalidIntentID
	}

	g.state.mu.Lock()
	defer g.state.mu.Unlock()

	intent, err := g.lookup(intentID)
	if err != nil {
		return nil, err
	}
	cp := *intent
	return &cp, nil
}

func (g *Gateway) Refund(ctx context.Context, req paymentdomain.RefundRequest) (*paymentdomain.RefundResult, error) {
	if !paymentdomain.IsIntentID(req.IntentID) {
		return nil, paymentdomain.ErrInvalidIntentID
	}
	if req.Amount <= 0 {
		return nil, paymentdomain.ErrInvalidAmount
	}

	g.state.mu.Lock()
	defer g.state.mu.Unlock()

	intent, err := g.lookup(req.IntentID)
	if err != nil {
		return nil, err
	}
	if g.state.refunds[intent.ID]+req.Amount > intent.AmountReceived {
		return nil, paymentdomain.ErrInvalidAmount
	}

	g.state.refunds[intent.ID] += req.Amount
	g.state.seq++

	return &paymentdomain.RefundResult{
		ID:       fmt.Sprintf("re_sandbox_%d", g.state.seq),
		Status:   StatusSucceeded,
		Amount:   req.Amount,
		Currency: intent.Currency,
	}, nil
}

// lookup must be called with the state lock held. Unknown intents are
// synthesized as succeeded so the sandbox works without seeding.
func (g *Gateway) lookup(intentID string) (*paymentdomain.IntentDetails, error) {
	if strings.Contains(intentID, missingMarker) {
		return nil, paymentdomain.ErrIntentNotFound
	}
	if intent, ok := g.state.intents[intentID]; ok {
		return intent, nil
	}

	intent := &paymentdomain.IntentDetails{
		ID:             intentID,
		Status:         StatusSucceeded,
		Amount:         10000,
		AmountReceived: 10000,
		Currency:       "usd",
		Metadata:       map[string]string{"payment_method_id": g.paymentMethodID.String()},
	}
	g.state.intents[intentID] = intent
	return intent, nil
}
