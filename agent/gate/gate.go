// Package gate decides whether plan synthesis may proceed for a seat's policy
// envelope. It is a pure function: no I/O, no retries, always terminates.
package gate

import (
	"fmt"

	contractx "github.com/advait08/sales-agent-llm/agent/contract"
)

// Decision is the gate's verdict. When Proceed is false, Pause carries the
// terminal risk_pause outcome; when true, Explanation is the risk text a
// synthesized plan must mirror.
type Decision struct {
	Proceed     bool
	Explanation string
	Pause       *contractx.RiskPause
}

// Evaluate applies the envelope rule. Red halts with remediation seeded from
// the top warm path plus the two fixed fallbacks; yellow proceeds with a
// caution explanation; green proceeds normally.
func Evaluate(envelope contractx.PolicyEnvelope, paths []contractx.RelationshipPath) Decision {
	switch envelope.State {
	case contractx.EnvelopeRed:
		via := "mutual"
		if len(paths) > 0 {
			via = paths[0].ViaContactID
		}
		return Decision{
			Pause: &contractx.RiskPause{
				Type:   contractx.OutcomeRiskPause,
				Reason: "Seat at red envelope: daily ceiling near or exceeded.",
				SuggestedRemediation: []string{
					fmt.Sprintf("Queue warm intro via %s", via),
					"Defer 24h to reset envelope",
					"Switch to research-only and monitor intent spike confirmation",
				},
			},
		}
	case contractx.EnvelopeYellow:
		return Decision{
			Proceed:     true,
			Explanation: "Approaching daily ceilings; proceed with caution.",
		}
	default:
		return Decision{
			Proceed:     true,
			Explanation: "Within daily ceilings and credits.",
		}
	}
}
