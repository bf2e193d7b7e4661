package main

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	actionsx "github.com/advait08/sales-agent-llm/agent/actions"
	contractx "github.com/advait08/sales-agent-llm/agent/contract"
	plannerx "github.com/advait08/sales-agent-llm/agent/planner"
	signalsx "github.com/advait08/sales-agent-llm/agent/signals"
	configx "github.com/advait08/sales-agent-llm/pkg/config"
	_ "github.com/advait08/sales-agent-llm/pkg/logger/autoload"
	openrouterx "github.com/advait08/sales-agent-llm/pkg/openrouter"
)

type AppConfig struct {
	AccountID string `envconfig:"ACCOUNT_ID" default:"acme-001"`
	LeadID    string `envconfig:"LEAD_ID" default:"dana-lee"`
	SeatID    string `envconfig:"SEAT_ID" default:"seat-7"`
	Mode      string `envconfig:"PLAN_MODE" default:"deterministic"`
	// Backend picks the generative completer: "sdk" calls OpenRouter through
	// the OpenAI SDK directly, "eino" routes through the eino chat model.
	Backend string `envconfig:"MODEL_BACKEND" default:"sdk"`
}

func buildCompleter(ctx context.Context, backend string) (contractx.Completer, error) {
	openRouterCfg := configx.MustNew[openrouterx.Config]("OPENROUTER")
	switch backend {
	case "eino":
		chatModel, err := openRouterCfg.New(ctx)
		if err != nil {
			return nil, err
		}
		return plannerx.NewChatModelCompleter(chatModel), nil
	default:
		return openrouterx.NewCompleter(*openRouterCfg)
	}
}

func main() {
	appCfg := configx.MustNew[AppConfig]("")
	mode := plannerx.Mode(strings.TrimSpace(appCfg.Mode))
	ctx := context.Background()

	src := signalsx.NewMockSource()

	// The generative backend is only wired when that mode is requested, so
	// deterministic runs need no API key.
	var completer contractx.Completer
	if mode == plannerx.ModeGenerative {
		c, err := buildCompleter(ctx, strings.TrimSpace(appCfg.Backend))
		if err != nil {
			log.Fatal().Err(err).Str("backend", appCfg.Backend).Msg("build completer")
		}
		completer = c
	}

	p, err := plannerx.New(src, completer, plannerx.Config{})
	if err != nil {
		log.Fatal().Err(err).Msg("build planner")
	}
	outcome, err := p.ProducePlan(ctx, plannerx.Request{
		AccountID: appCfg.AccountID,
		LeadID:    appCfg.LeadID,
		SeatID:    appCfg.SeatID,
		Mode:      mode,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("produce plan")
	}

	log.Info().
		Str("account_id", appCfg.AccountID).
		Str("lead_id", appCfg.LeadID).
		Str("outcome", string(outcome.OutcomeType())).
		Interface("value", outcome).
		Msg("outcome produced")

	// Downstream of the core: the outer caller runs approved write actions.
	if plan, ok := outcome.(*contractx.PlanCard); ok {
		execute := actionsx.NewMockExecutor()
		for _, action := range plan.NextActions {
			res, err := execute(ctx, action, plan.LeadID, plan.AccountID)
			if err != nil {
				log.Error().Err(err).Str("tool", string(action.Tool)).Msg("write action failed")
				continue
			}
			log.Info().
				Str("tool", string(res.Tool)).
				Bool("human_approval_required", action.HumanApprovalRequired).
				Interface("receipt", res.Result).
				Msg("write action executed against mock collaborator")
		}
	}
}
