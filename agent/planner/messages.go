package planner

import (
	"encoding/json"
	"fmt"

	contractx "github.com/advait08/sales-agent-llm/agent/contract"
	promptx "github.com/advait08/sales-agent-llm/agent/prompt"
)

// buildMessages assembles the ordered system/developer/user blocks for the
// generative collaborator. The user payload carries the same three
// identifiers the deterministic path receives.
func buildMessages(req Request, prompts promptx.PromptSet, persona string) ([]contractx.Message, error) {
	developer := map[string]any{
		"info": "Your runtime exposes mocked signal tool endpoints; assume you can call them implicitly. " +
			"You MUST include concrete signals and a single draft message 120-180 words with trigger -> value -> CTA.",
	}
	user := map[string]any{
		"task":              "plan_outreach",
		"account_id":        req.AccountID,
		"lead_id":           req.LeadID,
		"seat_id":           req.SeatID,
		"notes":             "Return only a single JSON object of type plan_card | risk_pause | research_only.",
		"preferred_persona": persona,
	}

	developerRaw, err := json.Marshal(developer)
	if err != nil {
		return nil, fmt.Errorf("%w: marshal developer payload: %v", contractx.ErrValidation, err)
	}
	userRaw, err := json.Marshal(user)
	if err != nil {
		return nil, fmt.Errorf("%w: marshal user payload: %v", contractx.ErrValidation, err)
	}

	return []contractx.Message{
		{Role: contractx.RoleSystem, Content: prompts.System},
		{Role: contractx.RoleDeveloper, Content: string(developerRaw)},
		{Role: contractx.RoleUser, Content: string(userRaw)},
	}, nil
}
