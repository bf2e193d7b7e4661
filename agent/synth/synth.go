// Package synth deterministically composes a plan_card from a complete signal
// bundle. It runs only after the risk gate has allowed synthesis.
package synth

import (
	"fmt"
	"strings"
	"time"

	contractx "github.com/advait08/sales-agent-llm/agent/contract"
	signalsx "github.com/advait08/sales-agent-llm/agent/signals"
)

const (
	confidenceIntentHigh    = 0.85
	confidenceIntentDefault = 0.65
	confidenceTrigger       = 0.78

	fallbackTriggerSignal = "Recent relevant activity"
	slotLayout            = "2006-01-02T15:04Z07:00"
)

// Compose builds the plan_card outcome. The draft's word count is recomputed
// from the final text, never set independently, and the plan never authorizes
// unattended sending.
func Compose(
	accountID, leadID, persona string,
	b *signalsx.Bundle,
	riskExplanation string,
) *contractx.PlanCard {
	whyNow := []contractx.WhyNowSignal{
		{
			Signal:       fmt.Sprintf("BuyerIntent %s (%s)", b.Intent.Level, b.Intent.Trend),
			EvidenceTool: signalsx.ProviderBuyerIntent,
			Confidence:   intentConfidence(b.Intent.Level),
		},
		{
			Signal:       firstTriggerSignal(b.Triggers),
			EvidenceTool: signalsx.ProviderTriggers,
			Confidence:   confidenceTrigger,
		},
	}

	warmPaths := make([]contractx.WarmPath, 0, len(b.Paths))
	for _, p := range b.Paths {
		warmPaths = append(warmPaths, contractx.WarmPath{
			ViaContactID: p.ViaContactID,
			Relationship: p.Relationship,
			IntroNote:    p.IntroNote,
		})
	}

	link := contractx.SmartLinkInfo{
		Reason:  "Fast proof of value for VP Eng",
		SendNow: true,
	}
	if len(b.Assets) > 0 {
		assetID := b.Assets[0].AssetID
		link.AssetID = &assetID
	}

	text := draftText(b.Intent.Trend, b.Calendar.Timeslots)

	return &contractx.PlanCard{
		Type:               contractx.OutcomePlanCard,
		AccountID:          accountID,
		LeadID:             leadID,
		WhyNow:             whyNow,
		RecommendedChannel: contractx.ChannelInMail,
		WarmPaths:          warmPaths,
		SmartLink:          link,
		DraftMessage: contractx.DraftMessage{
			Persona:     persona,
			LengthWords: len(strings.Fields(text)),
			Text:        text,
			Compliance: contractx.Compliance{
				OptOutHint:      true,
				ForbiddenClaims: false,
			},
		},
		FollowUp: contractx.FollowUpPlan{
			IfOpenNoReplyHours:  48,
			IfClickNoReplyHours: 24,
			IfNoEngagementHours: 96,
			Angles:              []contractx.FollowUpAngle{contractx.AngleInsightDrop, contractx.AngleSocialProof},
			AutoSendAllowed:     false,
		},
		Risk: contractx.RiskInfo{
			EnvelopeState: b.Envelope.State,
			Explanation:   riskExplanation,
		},
		NextActions: []contractx.NextAction{
			{
				Tool:                  contractx.ToolProposeSend,
				Params:                map[string]any{"channel": string(contractx.ChannelInMail)},
				HumanApprovalRequired: true,
			},
		},
	}
}

func intentConfidence(level string) float64 {
	if level == "High" {
		return confidenceIntentHigh
	}
	return confidenceIntentDefault
}

func firstTriggerSignal(triggers []contractx.TriggerEvent) string {
	if len(triggers) == 0 {
		return fallbackTriggerSignal
	}
	return triggers[0].Text
}

func draftText(intentTrend string, timeslots []string) string {
	return fmt.Sprintf(
		"Dana, congrats on the new role. I noticed your team's been leaning into outbound "+
			"efficiency (intent activity is %s this week). Many eng-led orgs use Sales Navigator's "+
			"agent to cut research time and lift qualified meetings without increasing send volume. "+
			"Here's a 1-pager that outlines how teams reduced InMail burn while improving reply rate: "+
			"<SmartLink>. If helpful, could we compare your current prospecting flow with what similar "+
			"teams run in 15 minutes? %s or %s both work, happy to adjust or share notes async. "+
			"If not relevant, reply 'stop' and I won't follow up.",
		strings.ToLower(intentTrend),
		timeAlternative(timeslots, 0, "Tue 11:00-11:30"),
		timeAlternative(timeslots, 1, "Thu 15:00-15:30"),
	)
}

// timeAlternative renders one calendar slot as a half-hour window, falling
// back to a fixed alternative when the provider returned too few slots.
func timeAlternative(timeslots []string, idx int, fallback string) string {
	if idx >= len(timeslots) {
		return fallback
	}
	start, err := time.Parse(slotLayout, timeslots[idx])
	if err != nil {
		return timeslots[idx]
	}
	return fmt.Sprintf("%s-%s", start.Format("Mon 15:04"), start.Add(30*time.Minute).Format("15:04"))
}
