// Package actions models the write-side collaborators an outcome's
// next_actions refer to. The planning core never invokes these; the outer
// caller executes them after a human approves the plan.
package actions

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	contractx "github.com/advait08/sales-agent-llm/agent/contract"
)

type SendReceipt struct {
	Queued  bool   `json:"queued"`
	Channel string `json:"channel"`
	LeadID  string `json:"lead_id"`
	ID      string `json:"id"`
}

type FollowUpReceipt struct {
	Scheduled bool   `json:"scheduled"`
	LeadID    string `json:"lead_id"`
	WaitHours int    `json:"wait_hours"`
	AutoSend  bool   `json:"auto_send"`
}

type CRMReceipt struct {
	Logged bool   `json:"logged"`
	ID     string `json:"id"`
}

type IntroReceipt struct {
	Sent         bool   `json:"sent"`
	ViaContactID string `json:"via_contact_id"`
	LeadID       string `json:"lead_id"`
}

// Result is one executed write action. A refused or unknown tool reports
// through Error rather than failing the executor.
type Result struct {
	Tool   contractx.ActionTool `json:"tool"`
	Result any                  `json:"result,omitempty"`
	Error  string               `json:"error,omitempty"`
}

type Executor func(ctx context.Context, action contractx.NextAction, leadID, accountID string) (Result, error)

// NewMockExecutor returns an executor backed by the mocked write
// collaborators. Receipts carry generated ids the way the real endpoints do.
func NewMockExecutor() Executor {
	return func(ctx context.Context, action contractx.NextAction, leadID, accountID string) (Result, error) {
		switch action.Tool {
		case contractx.ToolProposeSend:
			return Result{
				Tool: action.Tool,
				Result: SendReceipt{
					Queued:  true,
					Channel: stringParam(action.Params, "channel"),
					LeadID:  leadID,
					ID:      "send-" + uuid.NewString(),
				},
			}, nil
		case contractx.ToolScheduleFollowUp:
			return Result{
				Tool: action.Tool,
				Result: FollowUpReceipt{
					Scheduled: true,
					LeadID:    leadID,
					WaitHours: intParam(action.Params, "wait_hours"),
					AutoSend:  false,
				},
			}, nil
		case contractx.ToolLogToCRM:
			return Result{
				Tool: action.Tool,
				Result: CRMReceipt{
					Logged: true,
					ID:     "log-" + uuid.NewString(),
				},
			}, nil
		case contractx.ToolRequestIntro:
			return Result{
				Tool: action.Tool,
				Result: IntroReceipt{
					Sent:         true,
					ViaContactID: stringParam(action.Params, "via_contact_id"),
					LeadID:       leadID,
				},
			}, nil
		default:
			return Result{
				Tool:  action.Tool,
				Error: fmt.Sprintf("tool=%s is not a known write action", action.Tool),
			}, nil
		}
	}
}

func stringParam(params map[string]any, key string) string {
	if params == nil {
		return ""
	}
	s, _ := params[key].(string)
	return s
}

func intParam(params map[string]any, key string) int {
	if params == nil {
		return 0
	}
	switch v := params[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	default:
		return 0
	}
}
