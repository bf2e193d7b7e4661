// Package signals gathers the independent provider reads one orchestration
// call depends on. The fan-out is a join, not a race: synthesis only ever
// sees a complete bundle, and the first provider failure fails the whole
// gather with the provider's name attached.
package signals

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	contractx "github.com/advait08/sales-agent-llm/agent/contract"
)

// Provider identifiers, used both for failure attribution and as the
// evidence_tool values cited by why_now signals.
const (
	ProviderAccountIQ            = "get_account_iq"
	ProviderBuyerIntent          = "get_buyer_intent"
	ProviderRelationshipPaths    = "get_relationship_paths"
	ProviderTriggers             = "get_triggers"
	ProviderSmartLinks           = "get_smart_links"
	ProviderCRMContext           = "get_crm_context"
	ProviderPolicyEnvelope       = "get_policy_envelope"
	ProviderCalendarAvailability = "get_calendar_availability"
)

// ProviderError names the provider whose read failed. It unwraps to both
// contract.ErrProviderFailure and the underlying cause.
type ProviderError struct {
	Provider string
	Cause    error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s: provider=%s: %v", contractx.ErrProviderFailure.Error(), e.Provider, e.Cause)
}

func (e *ProviderError) Unwrap() []error {
	return []error{contractx.ErrProviderFailure, e.Cause}
}

// Bundle holds one call's provider results. It lives only for the duration of
// a single synthesis and is never shared across calls.
type Bundle struct {
	AccountIQ contractx.AccountIQ
	Intent    contractx.BuyerIntent
	Paths     []contractx.RelationshipPath
	Triggers  []contractx.TriggerEvent
	Assets    []contractx.ContentAsset
	CRM       contractx.CRMContext
	Envelope  contractx.PolicyEnvelope
	Calendar  contractx.CalendarAvailability
}

// Gather fans out to every provider concurrently and waits for all of them.
// Each call gets its own timeout; exceeding it is a provider failure like any
// other. Cancelling ctx abandons outstanding reads without side effects.
func Gather(
	ctx context.Context,
	src contractx.SignalSource,
	accountID, leadID, seatID, persona string,
	timeout time.Duration,
) (*Bundle, error) {
	b := &Bundle{}
	g, gctx := errgroup.WithContext(ctx)

	// Every goroutine writes a distinct bundle field; the Wait below is the
	// only synchronization needed before the bundle is read.
	call := func(provider string, fn func(ctx context.Context) error) {
		g.Go(func() error {
			callCtx := gctx
			if timeout > 0 {
				var cancel context.CancelFunc
				callCtx, cancel = context.WithTimeout(gctx, timeout)
				defer cancel()
			}
			if err := fn(callCtx); err != nil {
				return &ProviderError{Provider: provider, Cause: err}
			}
			return nil
		})
	}

	call(ProviderAccountIQ, func(ctx context.Context) error {
		var err error
		b.AccountIQ, err = src.AccountIQ(ctx, accountID)
		return err
	})
	call(ProviderBuyerIntent, func(ctx context.Context) error {
		var err error
		b.Intent, err = src.BuyerIntent(ctx, accountID)
		return err
	})
	call(ProviderRelationshipPaths, func(ctx context.Context) error {
		var err error
		b.Paths, err = src.RelationshipPaths(ctx, leadID)
		return err
	})
	call(ProviderTriggers, func(ctx context.Context) error {
		var err error
		b.Triggers, err = src.Triggers(ctx, accountID, leadID)
		return err
	})
	call(ProviderSmartLinks, func(ctx context.Context) error {
		var err error
		b.Assets, err = src.SmartLinks(ctx, accountID, persona)
		return err
	})
	call(ProviderCRMContext, func(ctx context.Context) error {
		var err error
		b.CRM, err = src.CRMContext(ctx, leadID)
		return err
	})
	call(ProviderPolicyEnvelope, func(ctx context.Context) error {
		var err error
		b.Envelope, err = src.PolicyEnvelope(ctx, seatID)
		return err
	})
	call(ProviderCalendarAvailability, func(ctx context.Context) error {
		var err error
		b.Calendar, err = src.CalendarAvailability(ctx, seatID)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return b, nil
}
