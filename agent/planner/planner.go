// Package planner is the single entry point of the outreach planning core.
// One call produces exactly one outcome: either deterministically from a
// gathered signal bundle, or by validating a generative model's raw output
// against the same contract.
package planner

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino/compose"
	"github.com/rs/zerolog/log"

	contractx "github.com/advait08/sales-agent-llm/agent/contract"
	promptx "github.com/advait08/sales-agent-llm/agent/prompt"
)

// Mode selects the producing path. It is an explicit call input, never read
// from ambient process state.
type Mode string

const (
	ModeDeterministic Mode = "deterministic"
	ModeGenerative    Mode = "generative"
)

const DefaultPersona = "VP Engineering"

const (
	defaultProviderTimeout = 10 * time.Second
	defaultModelTimeout    = 30 * time.Second
)

type Config struct {
	// Persona targeted by drafts and prompts. Defaults to DefaultPersona.
	Persona string
	// ProviderTimeout bounds each signal provider call independently.
	ProviderTimeout time.Duration
	// ModelTimeout bounds the generative model call.
	ModelTimeout time.Duration
}

type Request struct {
	AccountID string
	LeadID    string
	SeatID    string
	Mode      Mode
}

type Planner struct {
	src     contractx.SignalSource
	model   contractx.Completer
	prompts promptx.PromptSet

	persona         string
	providerTimeout time.Duration
	modelTimeout    time.Duration

	deterministicRunner compose.Runnable[Request, contractx.Outcome]
	generativeRunner    compose.Runnable[Request, contractx.Outcome]
}

// New wires a planner. The completer may be nil when only deterministic mode
// is used; invoking generative mode without one fails with ErrModelInvoke.
func New(src contractx.SignalSource, model contractx.Completer, cfg Config) (*Planner, error) {
	if src == nil {
		return nil, errors.New("signal source is required")
	}

	persona := strings.TrimSpace(cfg.Persona)
	if persona == "" {
		persona = DefaultPersona
	}
	providerTimeout := cfg.ProviderTimeout
	if providerTimeout <= 0 {
		providerTimeout = defaultProviderTimeout
	}
	modelTimeout := cfg.ModelTimeout
	if modelTimeout <= 0 {
		modelTimeout = defaultModelTimeout
	}

	p := &Planner{
		src:             src,
		model:           model,
		prompts:         promptx.LoadPromptSet(),
		persona:         persona,
		providerTimeout: providerTimeout,
		modelTimeout:    modelTimeout,
	}

	deterministicRunner, err := p.compileDeterministicGraph(context.Background())
	if err != nil {
		return nil, err
	}
	p.deterministicRunner = deterministicRunner

	generativeRunner, err := p.compileGenerativeGraph(context.Background())
	if err != nil {
		return nil, err
	}
	p.generativeRunner = generativeRunner

	return p, nil
}

// ProducePlan runs one orchestration call and returns exactly one outcome.
func (p *Planner) ProducePlan(ctx context.Context, req Request) (contractx.Outcome, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	var (
		out contractx.Outcome
		err error
	)
	switch req.Mode {
	case ModeDeterministic:
		out, err = p.deterministicRunner.Invoke(ctx, req)
	case ModeGenerative:
		out, err = p.generativeRunner.Invoke(ctx, req)
	default:
		return nil, fmt.Errorf("%w: unknown mode=%q", contractx.ErrInvalidInput, req.Mode)
	}
	if err != nil {
		return nil, err
	}

	log.Debug().
		Str("account_id", req.AccountID).
		Str("lead_id", req.LeadID).
		Str("mode", string(req.Mode)).
		Str("outcome", string(out.OutcomeType())).
		Msg("plan produced")
	return out, nil
}

func validateRequest(req Request) error {
	if strings.TrimSpace(req.AccountID) == "" {
		return fmt.Errorf("%w: account_id is required", contractx.ErrInvalidInput)
	}
	if strings.TrimSpace(req.LeadID) == "" {
		return fmt.Errorf("%w: lead_id is required", contractx.ErrInvalidInput)
	}
	if strings.TrimSpace(req.SeatID) == "" {
		return fmt.Errorf("%w: seat_id is required", contractx.ErrInvalidInput)
	}
	return nil
}
