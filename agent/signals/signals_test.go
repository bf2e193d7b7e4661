package signals

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	contractx "github.com/advait08/sales-agent-llm/agent/contract"
)

// failingSource wraps MockSource and fails exactly one provider.
type failingSource struct {
	*MockSource
	failProvider string
	err          error
}

func (f *failingSource) BuyerIntent(ctx context.Context, accountID string) (contractx.BuyerIntent, error) {
	if f.failProvider == ProviderBuyerIntent {
		return contractx.BuyerIntent{}, f.err
	}
	return f.MockSource.BuyerIntent(ctx, accountID)
}

func (f *failingSource) PolicyEnvelope(ctx context.Context, seatID string) (contractx.PolicyEnvelope, error) {
	if f.failProvider == ProviderPolicyEnvelope {
		return contractx.PolicyEnvelope{}, f.err
	}
	return f.MockSource.PolicyEnvelope(ctx, seatID)
}

func TestGatherAssemblesFullBundle(t *testing.T) {
	t.Parallel()

	src := NewMockSource()
	b, err := Gather(context.Background(), src, "acme-001", "dana-lee", "seat-7", "VP Engineering", time.Second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if b.AccountIQ.AccountID != "acme-001" {
		t.Fatalf("account iq not gathered: %+v", b.AccountIQ)
	}
	if b.Intent.Level != "High" {
		t.Fatalf("intent not gathered: %+v", b.Intent)
	}
	if len(b.Paths) != 2 {
		t.Fatalf("expected 2 relationship paths, got %d", len(b.Paths))
	}
	if len(b.Triggers) != 2 {
		t.Fatalf("expected 2 triggers, got %d", len(b.Triggers))
	}
	if len(b.Assets) != 2 {
		t.Fatalf("expected 2 assets, got %d", len(b.Assets))
	}
	if b.Envelope.State != contractx.EnvelopeGreen {
		t.Fatalf("envelope not gathered: %+v", b.Envelope)
	}
	if len(b.Calendar.Timeslots) != 3 {
		t.Fatalf("expected 3 timeslots, got %d", len(b.Calendar.Timeslots))
	}
	if b.CRM.Notes == "" {
		t.Fatalf("crm context not gathered")
	}
}

func TestGatherFailsWithProviderName(t *testing.T) {
	t.Parallel()

	src := &failingSource{
		MockSource:   NewMockSource(),
		failProvider: ProviderBuyerIntent,
		err:          errors.New("upstream 503"),
	}

	_, err := Gather(context.Background(), src, "a", "l", "s", "p", time.Second)
	if err == nil {
		t.Fatalf("expected an error")
	}
	if !errors.Is(err, contractx.ErrProviderFailure) {
		t.Fatalf("error must unwrap to ErrProviderFailure, got %v", err)
	}
	var pe *ProviderError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *ProviderError, got %T", err)
	}
	if pe.Provider != ProviderBuyerIntent {
		t.Fatalf("error must name the failing provider, got %s", pe.Provider)
	}
	if !strings.Contains(err.Error(), "upstream 503") {
		t.Fatalf("error must carry the cause, got %q", err.Error())
	}
}

func TestGatherEnvelopeFailureIsAttributed(t *testing.T) {
	t.Parallel()

	src := &failingSource{
		MockSource:   NewMockSource(),
		failProvider: ProviderPolicyEnvelope,
		err:          errors.New("timeout"),
	}

	_, err := Gather(context.Background(), src, "a", "l", "s", "p", time.Second)
	var pe *ProviderError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *ProviderError, got %v", err)
	}
	if pe.Provider != ProviderPolicyEnvelope {
		t.Fatalf("wrong provider attributed: %s", pe.Provider)
	}
}

func TestGatherHonorsCancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// A slow provider observes the cancelled context; the fast mocks may
	// still win, so only failure attribution is asserted when Gather errs.
	src := &slowSource{MockSource: NewMockSource(), delay: 50 * time.Millisecond}
	_, err := Gather(ctx, src, "a", "l", "s", "p", time.Second)
	if err == nil {
		t.Fatalf("expected an error under a cancelled context")
	}
	if !errors.Is(err, contractx.ErrProviderFailure) {
		t.Fatalf("cancellation surfaces as a provider failure, got %v", err)
	}
}

type slowSource struct {
	*MockSource
	delay time.Duration
}

func (s *slowSource) CRMContext(ctx context.Context, leadID string) (contractx.CRMContext, error) {
	select {
	case <-ctx.Done():
		return contractx.CRMContext{}, ctx.Err()
	case <-time.After(s.delay):
		return s.MockSource.CRMContext(ctx, leadID)
	}
}
