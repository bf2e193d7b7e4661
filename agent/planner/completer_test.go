package planner

import (
	"context"
	"errors"
	"strings"
	"testing"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	contractx "github.com/advait08/sales-agent-llm/agent/contract"
	signalsx "github.com/advait08/sales-agent-llm/agent/signals"
)

type fakeChatModel struct {
	response *schema.Message
	err      error
	calls    int
	lastIn   []*schema.Message
}

func (f *fakeChatModel) Generate(ctx context.Context, input []*schema.Message, opts ...einomodel.Option) (*schema.Message, error) {
	f.calls++
	f.lastIn = input
	if f.err != nil {
		return nil, f.err
	}
	return f.response, nil
}

func (f *fakeChatModel) Stream(ctx context.Context, input []*schema.Message, opts ...einomodel.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("stream not implemented in fake model")
}

func TestChatModelCompleterComplete(t *testing.T) {
	t.Parallel()

	fake := &fakeChatModel{
		response: &schema.Message{
			Role:    schema.Assistant,
			Content: `{"type":"research_only","reason":"r","suggested_steps":["s"]}`,
		},
	}
	c := NewChatModelCompleter(fake)

	out, err := c.Complete(context.Background(), []contractx.Message{
		{Role: contractx.RoleSystem, Content: "system prompt"},
		{Role: contractx.RoleDeveloper, Content: "developer block"},
		{Role: contractx.RoleUser, Content: "user payload"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, `"type":"research_only"`) {
		t.Fatalf("unexpected output: %q", out)
	}
	if fake.calls != 1 {
		t.Fatalf("expected 1 generate call, got %d", fake.calls)
	}

	if len(fake.lastIn) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(fake.lastIn))
	}
	if fake.lastIn[0].Role != schema.System || fake.lastIn[0].Content != "system prompt" {
		t.Fatalf("unexpected first message: %+v", fake.lastIn[0])
	}
	// eino has no developer role; the developer block rides as system.
	if fake.lastIn[1].Role != schema.System || fake.lastIn[1].Content != "developer block" {
		t.Fatalf("unexpected second message: %+v", fake.lastIn[1])
	}
	if fake.lastIn[2].Role != schema.User || fake.lastIn[2].Content != "user payload" {
		t.Fatalf("unexpected third message: %+v", fake.lastIn[2])
	}
}

func TestChatModelCompleterModelError(t *testing.T) {
	t.Parallel()

	fake := &fakeChatModel{err: errors.New("rate limited")}
	c := NewChatModelCompleter(fake)

	_, err := c.Complete(context.Background(), []contractx.Message{
		{Role: contractx.RoleUser, Content: "u"},
	})
	if !errors.Is(err, contractx.ErrModelInvoke) {
		t.Fatalf("expected ErrModelInvoke, got %v", err)
	}
	if !strings.Contains(err.Error(), "rate limited") {
		t.Fatalf("error must carry the cause, got %v", err)
	}
}

func TestChatModelCompleterEmptyResponse(t *testing.T) {
	t.Parallel()

	fake := &fakeChatModel{response: &schema.Message{Role: schema.Assistant}}
	c := NewChatModelCompleter(fake)

	_, err := c.Complete(context.Background(), []contractx.Message{
		{Role: contractx.RoleUser, Content: "u"},
	})
	if !errors.Is(err, contractx.ErrModelInvoke) {
		t.Fatalf("expected ErrModelInvoke for empty content, got %v", err)
	}
}

func TestChatModelCompleterNilModel(t *testing.T) {
	t.Parallel()

	c := NewChatModelCompleter(nil)
	_, err := c.Complete(context.Background(), []contractx.Message{
		{Role: contractx.RoleUser, Content: "u"},
	})
	if !errors.Is(err, contractx.ErrModelInvoke) {
		t.Fatalf("expected ErrModelInvoke for nil model, got %v", err)
	}
}

func TestChatModelCompleterServesGenerativeMode(t *testing.T) {
	t.Parallel()

	fake := &fakeChatModel{
		response: &schema.Message{Role: schema.Assistant, Content: validModelOutput(t)},
	}
	p := newTestPlanner(t, signalsx.NewMockSource(), NewChatModelCompleter(fake))

	out, err := p.ProducePlan(context.Background(), Request{
		AccountID: "acme-001", LeadID: "dana-lee", SeatID: "seat-7", Mode: ModeGenerative,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := out.(*contractx.PlanCard); !ok {
		t.Fatalf("expected *PlanCard, got %T", out)
	}
	if fake.calls != 1 {
		t.Fatalf("expected 1 generate call, got %d", fake.calls)
	}
}
