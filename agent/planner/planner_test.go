package planner

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	contractx "github.com/advait08/sales-agent-llm/agent/contract"
	signalsx "github.com/advait08/sales-agent-llm/agent/signals"
	synthx "github.com/advait08/sales-agent-llm/agent/synth"
)

type fakeCompleter struct {
	response string
	err      error
	calls    int
	lastMsgs []contractx.Message
}

func (f *fakeCompleter) Complete(ctx context.Context, msgs []contractx.Message) (string, error) {
	f.calls++
	f.lastMsgs = msgs
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func newTestPlanner(t *testing.T, src contractx.SignalSource, model contractx.Completer) *Planner {
	t.Helper()

	p, err := New(src, model, Config{})
	if err != nil {
		t.Fatalf("build planner: %v", err)
	}
	return p
}

func validModelOutput(t *testing.T) string {
	t.Helper()

	plan := synthx.Compose("acme-001", "dana-lee", DefaultPersona, &signalsx.Bundle{
		Intent: contractx.BuyerIntent{Level: "High", Trend: "Up"},
		Triggers: []contractx.TriggerEvent{
			{Type: "job_change", Text: "VP Engineering joined 3 weeks ago"},
		},
		Assets:   []contractx.ContentAsset{{AssetID: "roi-onepager-v3"}},
		Envelope: contractx.PolicyEnvelope{State: contractx.EnvelopeGreen},
	}, "Within daily ceilings and credits.")

	raw, err := json.Marshal(plan)
	if err != nil {
		t.Fatalf("marshal plan: %v", err)
	}
	return string(raw)
}

func TestNewRequiresSignalSource(t *testing.T) {
	t.Parallel()

	if _, err := New(nil, nil, Config{}); err == nil {
		t.Fatalf("expected an error for a nil signal source")
	}
}

func TestProducePlanValidatesRequest(t *testing.T) {
	t.Parallel()

	p := newTestPlanner(t, signalsx.NewMockSource(), nil)

	cases := []Request{
		{AccountID: "", LeadID: "l", SeatID: "s", Mode: ModeDeterministic},
		{AccountID: "a", LeadID: "  ", SeatID: "s", Mode: ModeDeterministic},
		{AccountID: "a", LeadID: "l", SeatID: "", Mode: ModeDeterministic},
	}
	for i, req := range cases {
		if _, err := p.ProducePlan(context.Background(), req); !errors.Is(err, contractx.ErrInvalidInput) {
			t.Fatalf("case %d: expected ErrInvalidInput, got %v", i, err)
		}
	}
}

func TestProducePlanRejectsUnknownMode(t *testing.T) {
	t.Parallel()

	p := newTestPlanner(t, signalsx.NewMockSource(), nil)

	_, err := p.ProducePlan(context.Background(), Request{
		AccountID: "a", LeadID: "l", SeatID: "s", Mode: "hybrid",
	})
	if !errors.Is(err, contractx.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	_, err = p.ProducePlan(context.Background(), Request{AccountID: "a", LeadID: "l", SeatID: "s"})
	if !errors.Is(err, contractx.ErrInvalidInput) {
		t.Fatalf("empty mode must be rejected, got %v", err)
	}
}

func TestProducePlanDeterministicGreen(t *testing.T) {
	t.Parallel()

	p := newTestPlanner(t, signalsx.NewMockSource(), nil)

	out, err := p.ProducePlan(context.Background(), Request{
		AccountID: "acme-001", LeadID: "dana-lee", SeatID: "seat-7", Mode: ModeDeterministic,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	plan, ok := out.(*contractx.PlanCard)
	if !ok {
		t.Fatalf("expected *PlanCard, got %T", out)
	}
	if plan.Risk.EnvelopeState != contractx.EnvelopeGreen {
		t.Fatalf("unexpected risk state: %s", plan.Risk.EnvelopeState)
	}
	if plan.Risk.Explanation != "Within daily ceilings and credits." {
		t.Fatalf("unexpected risk explanation: %q", plan.Risk.Explanation)
	}
	if plan.FollowUp.AutoSendAllowed {
		t.Fatalf("auto_send_allowed must be false")
	}
}

func TestProducePlanDeterministicYellow(t *testing.T) {
	t.Parallel()

	src := signalsx.NewMockSource()
	src.Envelope.State = contractx.EnvelopeYellow
	p := newTestPlanner(t, src, nil)

	out, err := p.ProducePlan(context.Background(), Request{
		AccountID: "a", LeadID: "l", SeatID: "s", Mode: ModeDeterministic,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	plan, ok := out.(*contractx.PlanCard)
	if !ok {
		t.Fatalf("expected *PlanCard, got %T", out)
	}
	if plan.Risk.EnvelopeState != contractx.EnvelopeYellow {
		t.Fatalf("unexpected risk state: %s", plan.Risk.EnvelopeState)
	}
	if plan.Risk.Explanation != "Approaching daily ceilings; proceed with caution." {
		t.Fatalf("unexpected risk explanation: %q", plan.Risk.Explanation)
	}
}

func TestProducePlanDeterministicRed(t *testing.T) {
	t.Parallel()

	src := signalsx.NewMockSource()
	src.Envelope.State = contractx.EnvelopeRed
	p := newTestPlanner(t, src, nil)

	out, err := p.ProducePlan(context.Background(), Request{
		AccountID: "a", LeadID: "l", SeatID: "s", Mode: ModeDeterministic,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	pause, ok := out.(*contractx.RiskPause)
	if !ok {
		t.Fatalf("expected *RiskPause, got %T", out)
	}
	if !strings.Contains(pause.SuggestedRemediation[0], "alex-chen") {
		t.Fatalf("remediation must cite the top warm path, got %q", pause.SuggestedRemediation[0])
	}
}

func TestProducePlanDeterministicProviderFailure(t *testing.T) {
	t.Parallel()

	src := &failingIntentSource{MockSource: signalsx.NewMockSource()}
	p := newTestPlanner(t, src, nil)

	_, err := p.ProducePlan(context.Background(), Request{
		AccountID: "a", LeadID: "l", SeatID: "s", Mode: ModeDeterministic,
	})
	if !errors.Is(err, contractx.ErrProviderFailure) {
		t.Fatalf("expected ErrProviderFailure, got %v", err)
	}
}

type failingIntentSource struct {
	*signalsx.MockSource
}

func (f *failingIntentSource) BuyerIntent(ctx context.Context, accountID string) (contractx.BuyerIntent, error) {
	return contractx.BuyerIntent{}, errors.New("intent service down")
}

func TestProducePlanGenerativeValidOutput(t *testing.T) {
	t.Parallel()

	model := &fakeCompleter{response: validModelOutput(t)}
	p := newTestPlanner(t, signalsx.NewMockSource(), model)

	out, err := p.ProducePlan(context.Background(), Request{
		AccountID: "acme-001", LeadID: "dana-lee", SeatID: "seat-7", Mode: ModeGenerative,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := out.(*contractx.PlanCard); !ok {
		t.Fatalf("expected *PlanCard, got %T", out)
	}
	if model.calls != 1 {
		t.Fatalf("expected 1 model call, got %d", model.calls)
	}

	if len(model.lastMsgs) != 3 {
		t.Fatalf("expected system/developer/user messages, got %d", len(model.lastMsgs))
	}
	if model.lastMsgs[0].Role != contractx.RoleSystem || model.lastMsgs[0].Content == "" {
		t.Fatalf("first message must be the system prompt")
	}
	if model.lastMsgs[1].Role != contractx.RoleDeveloper {
		t.Fatalf("second message must be the developer block, got %s", model.lastMsgs[1].Role)
	}
	if !strings.Contains(model.lastMsgs[2].Content, `"account_id":"acme-001"`) {
		t.Fatalf("user message must carry the account id, got %q", model.lastMsgs[2].Content)
	}
}

func TestProducePlanGenerativeMalformedOutput(t *testing.T) {
	t.Parallel()

	model := &fakeCompleter{response: "I recommend reaching out to Dana because..."}
	p := newTestPlanner(t, signalsx.NewMockSource(), model)

	_, err := p.ProducePlan(context.Background(), Request{
		AccountID: "a", LeadID: "l", SeatID: "s", Mode: ModeGenerative,
	})
	if !errors.Is(err, contractx.ErrSchemaViolation) {
		t.Fatalf("expected ErrSchemaViolation, got %v", err)
	}
}

func TestProducePlanGenerativeModelError(t *testing.T) {
	t.Parallel()

	model := &fakeCompleter{err: errors.New("rate limited")}
	p := newTestPlanner(t, signalsx.NewMockSource(), model)

	_, err := p.ProducePlan(context.Background(), Request{
		AccountID: "a", LeadID: "l", SeatID: "s", Mode: ModeGenerative,
	})
	if err == nil {
		t.Fatalf("expected an error")
	}
	if !strings.Contains(err.Error(), "rate limited") {
		t.Fatalf("error must carry the model cause, got %v", err)
	}
}

func TestProducePlanGenerativeWithoutCompleter(t *testing.T) {
	t.Parallel()

	p := newTestPlanner(t, signalsx.NewMockSource(), nil)

	_, err := p.ProducePlan(context.Background(), Request{
		AccountID: "a", LeadID: "l", SeatID: "s", Mode: ModeGenerative,
	})
	if !errors.Is(err, contractx.ErrModelInvoke) {
		t.Fatalf("expected ErrModelInvoke, got %v", err)
	}
}

func TestBuildMessagesOrder(t *testing.T) {
	t.Parallel()

	p := newTestPlanner(t, signalsx.NewMockSource(), nil)
	msgs, err := buildMessages(Request{AccountID: "a1", LeadID: "l1", SeatID: "s1"}, p.prompts, p.persona)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(msgs) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(msgs))
	}
	roles := []contractx.Role{contractx.RoleSystem, contractx.RoleDeveloper, contractx.RoleUser}
	for i, want := range roles {
		if msgs[i].Role != want {
			t.Fatalf("message %d: expected role %s, got %s", i, want, msgs[i].Role)
		}
	}

	var user map[string]any
	if err := json.Unmarshal([]byte(msgs[2].Content), &user); err != nil {
		t.Fatalf("user message must be JSON: %v", err)
	}
	if user["task"] != "plan_outreach" {
		t.Fatalf("unexpected task: %v", user["task"])
	}
	if user["preferred_persona"] != DefaultPersona {
		t.Fatalf("unexpected persona: %v", user["preferred_persona"])
	}
}
