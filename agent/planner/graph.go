package planner

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/compose"

	contractx "github.com/advait08/sales-agent-llm/agent/contract"
	gatex "github.com/advait08/sales-agent-llm/agent/gate"
	signalsx "github.com/advait08/sales-agent-llm/agent/signals"
	synthx "github.com/advait08/sales-agent-llm/agent/synth"
	validatex "github.com/advait08/sales-agent-llm/agent/validate"
)

// graphState carries one deterministic call through the pipeline. It is owned
// by a single invocation and never shared.
type graphState struct {
	Req      Request
	Bundle   *signalsx.Bundle
	Decision gatex.Decision
}

func (p *Planner) compileDeterministicGraph(
	ctx context.Context,
) (compose.Runnable[Request, contractx.Outcome], error) {
	graph := compose.NewGraph[Request, contractx.Outcome]()

	if err := graph.AddLambdaNode("gather_signals",
		compose.InvokableLambda(func(ctx context.Context, req Request) (*graphState, error) {
			bundle, err := signalsx.Gather(ctx, p.src,
				req.AccountID, req.LeadID, req.SeatID, p.persona, p.providerTimeout)
			if err != nil {
				return nil, err
			}
			return &graphState{Req: req, Bundle: bundle}, nil
		}),
	); err != nil {
		return nil, fmt.Errorf("add node gather_signals: %w", err)
	}

	if err := graph.AddLambdaNode("risk_gate",
		compose.InvokableLambda(func(ctx context.Context, in *graphState) (*graphState, error) {
			if in == nil || in.Bundle == nil {
				return nil, fmt.Errorf("%w: signal bundle is missing", contractx.ErrValidation)
			}
			in.Decision = gatex.Evaluate(in.Bundle.Envelope, in.Bundle.Paths)
			return in, nil
		}),
	); err != nil {
		return nil, fmt.Errorf("add node risk_gate: %w", err)
	}

	if err := graph.AddLambdaNode("synthesize_plan",
		compose.InvokableLambda(func(ctx context.Context, in *graphState) (contractx.Outcome, error) {
			return synthx.Compose(in.Req.AccountID, in.Req.LeadID, p.persona,
				in.Bundle, in.Decision.Explanation), nil
		}),
	); err != nil {
		return nil, fmt.Errorf("add node synthesize_plan: %w", err)
	}

	if err := graph.AddLambdaNode("emit_risk_pause",
		compose.InvokableLambda(func(ctx context.Context, in *graphState) (contractx.Outcome, error) {
			if in.Decision.Pause == nil {
				return nil, fmt.Errorf("%w: gate halted without a pause outcome", contractx.ErrValidation)
			}
			return in.Decision.Pause, nil
		}),
	); err != nil {
		return nil, fmt.Errorf("add node emit_risk_pause: %w", err)
	}

	branch := compose.NewGraphBranch(
		func(ctx context.Context, in *graphState) (string, error) {
			if in == nil {
				return "", fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
			}
			if in.Decision.Proceed {
				return "synthesize_plan", nil
			}
			return "emit_risk_pause", nil
		},
		map[string]bool{
			"synthesize_plan": true,
			"emit_risk_pause": true,
		},
	)

	if err := graph.AddEdge(compose.START, "gather_signals"); err != nil {
		return nil, fmt.Errorf("add edge start->gather_signals: %w", err)
	}
	if err := graph.AddEdge("gather_signals", "risk_gate"); err != nil {
		return nil, fmt.Errorf("add edge gather_signals->risk_gate: %w", err)
	}
	if err := graph.AddBranch("risk_gate", branch); err != nil {
		return nil, fmt.Errorf("add risk gate branch: %w", err)
	}
	if err := graph.AddEdge("synthesize_plan", compose.END); err != nil {
		return nil, fmt.Errorf("add edge synthesize_plan->end: %w", err)
	}
	if err := graph.AddEdge("emit_risk_pause", compose.END); err != nil {
		return nil, fmt.Errorf("add edge emit_risk_pause->end: %w", err)
	}

	runner, err := graph.Compile(ctx, compose.WithGraphName("planner.deterministic"))
	if err != nil {
		return nil, fmt.Errorf("compile deterministic graph: %w", err)
	}
	return runner, nil
}

func (p *Planner) compileGenerativeGraph(
	ctx context.Context,
) (compose.Runnable[Request, contractx.Outcome], error) {
	graph := compose.NewGraph[Request, contractx.Outcome]()

	if err := graph.AddLambdaNode("build_messages",
		compose.InvokableLambda(func(ctx context.Context, req Request) ([]contractx.Message, error) {
			return buildMessages(req, p.prompts, p.persona)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node build_messages: %w", err)
	}

	if err := graph.AddLambdaNode("invoke_model",
		compose.InvokableLambda(func(ctx context.Context, msgs []contractx.Message) (string, error) {
			if p.model == nil {
				return "", fmt.Errorf("%w: no completer configured", contractx.ErrModelInvoke)
			}
			callCtx, cancel := context.WithTimeout(ctx, p.modelTimeout)
			defer cancel()
			return p.model.Complete(callCtx, msgs)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node invoke_model: %w", err)
	}

	if err := graph.AddLambdaNode("validate_output",
		compose.InvokableLambda(func(ctx context.Context, raw string) (contractx.Outcome, error) {
			return validatex.Outcome([]byte(raw))
		}),
	); err != nil {
		return nil, fmt.Errorf("add node validate_output: %w", err)
	}

	edges := [][2]string{
		{compose.START, "build_messages"},
		{"build_messages", "invoke_model"},
		{"invoke_model", "validate_output"},
		{"validate_output", compose.END},
	}
	for _, edge := range edges {
		if err := graph.AddEdge(edge[0], edge[1]); err != nil {
			return nil, fmt.Errorf("add edge %s->%s: %w", edge[0], edge[1], err)
		}
	}

	runner, err := graph.Compile(ctx, compose.WithGraphName("planner.generative"))
	if err != nil {
		return nil, fmt.Errorf("compile generative graph: %w", err)
	}
	return runner, nil
}
