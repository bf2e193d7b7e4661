package planner

import (
	"context"
	"fmt"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	contractx "github.com/advait08/sales-agent-llm/agent/contract"
)

// ChatModelCompleter adapts an eino chat model to the Completer contract, so
// any eino-compatible backend can serve the generative path without touching
// validation.
type ChatModelCompleter struct {
	model einomodel.BaseChatModel
}

func NewChatModelCompleter(model einomodel.BaseChatModel) *ChatModelCompleter {
	return &ChatModelCompleter{model: model}
}

var _ contractx.Completer = (*ChatModelCompleter)(nil)

func (c *ChatModelCompleter) Complete(ctx context.Context, msgs []contractx.Message) (string, error) {
	if c == nil || c.model == nil {
		return "", fmt.Errorf("%w: chat model is not configured", contractx.ErrModelInvoke)
	}

	in := make([]*schema.Message, 0, len(msgs))
	for _, m := range msgs {
		switch m.Role {
		case contractx.RoleUser:
			in = append(in, schema.UserMessage(m.Content))
		default:
			// eino has no developer role; developer blocks ride as system.
			in = append(in, schema.SystemMessage(m.Content))
		}
	}

	out, err := c.model.Generate(ctx, in)
	if err != nil {
		return "", fmt.Errorf("%w: %v", contractx.ErrModelInvoke, err)
	}
	if out == nil || out.Content == "" {
		return "", fmt.Errorf("%w: empty model response", contractx.ErrModelInvoke)
	}
	return out.Content, nil
}
