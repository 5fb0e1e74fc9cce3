// Package gateway provides payment provider integrations. The simulated
// provider stands in for a real processor: it issues provider intent
// identifiers and client secrets and enforces the provider-side lifecycle
// without leaving the process.
package gateway

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"

	"github.com/drivebay/drivebay/internal/domain"
	"github.com/drivebay/drivebay/internal/infra/observability"
)

type intentState int

const (
	intentOpen intentState = iota
	intentConfirmed
	intentCanceled
)

// SimulatedProvider is an in-process domain.PaymentGateway. Safe for
// concurrent use.
type SimulatedProvider struct {
	mu      sync.Mutex
	intents map[string]intentState
}

// NewSimulatedProvider returns a provider with no open intents.
func NewSimulatedProvider() *SimulatedProvider {
	return &SimulatedProvider{intents: make(map[string]intentState)}
}

// CreateIntent registers a new provider-side intent and returns its
// identifier together with the client secret a buyer would use to
// complete the charge.
func (p *SimulatedProvider) CreateIntent(ctx context.Context, amount domain.Money, currency, description string) (result domain.GatewayCreateResult, err error) {
	defer func() { observability.RecordGatewayCall("create_intent", err) }()
	if err = ctx.Err(); err != nil {
		return domain.GatewayCreateResult{}, err
	}
	if !amount.IsPositive() {
		return domain.GatewayCreateResult{}, fmt.Errorf("%w: amount must be positive", domain.ErrGateway)
	}

	id := "pi_" + randomHex(12)

	p.mu.Lock()
	p.intents[id] = intentOpen
	p.mu.Unlock()

	return domain.GatewayCreateResult{
		ProviderIntentID: id,
		ClientSecret:     id + "_secret",
	}, nil
}

// ConfirmIntent marks a provider intent as charged. Confirming twice is
// a no-op; confirming a canceled or unknown intent fails.
func (p *SimulatedProvider) ConfirmIntent(ctx context.Context, providerIntentID string) (err error) {
	defer func() { observability.RecordGatewayCall("confirm_intent", err) }()
	if err = ctx.Err(); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	state, ok := p.intents[providerIntentID]
	if !ok {
		return fmt.Errorf("%w: unknown intent %q", domain.ErrGateway, providerIntentID)
	}
	if state == intentCanceled {
		return fmt.Errorf("%w: intent %q is canceled", domain.ErrGateway, providerIntentID)
	}
	p.intents[providerIntentID] = intentConfirmed
	return nil
}

// CancelIntent voids a provider intent. Canceling twice is a no-op;
// canceling a confirmed or unknown intent fails.
func (p *SimulatedProvider) CancelIntent(ctx context.Context, providerIntentID string) (err error) {
	defer func() { observability.RecordGatewayCall("cancel_intent", err) }()
	if err = ctx.Err(); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	state, ok := p.intents[providerIntentID]
	if !ok {
		return fmt.Errorf("%w: unknown intent %q", domain.ErrGateway, providerIntentID)
	}
	if state == intentConfirmed {
		return fmt.Errorf("%w: intent %q is already confirmed", domain.ErrGateway, providerIntentID)
	}
	p.intents[providerIntentID] = intentCanceled
	return nil
}

func randomHex(n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}
	return hex.EncodeToString(buf)
}
