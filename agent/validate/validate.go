// Package validate enforces the output contract on arbitrary structured
// input, typically the raw text of a generative model. It is the single place
// the contract is checked, so the deterministic and generative producers can
// never silently diverge. Validation is strict: no coercion, no partial
// repair; a numeric string is not a number.
package validate

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	contractx "github.com/advait08/sales-agent-llm/agent/contract"
)

// Outcome parses raw as exactly one JSON object and validates it against the
// output contract. It returns the typed outcome or the first violation found,
// checking the discriminant first, then required fields and types, then
// forbidden fields, then ranges and cardinalities. The stages apply per
// object, depth-first: a nested object is fully checked where it appears, so
// a violation inside an early field is reported before any later top-level
// field is looked at.
func Outcome(raw []byte) (contractx.Outcome, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var root any
	if err := dec.Decode(&root); err != nil {
		return nil, violation("", "a single JSON object", "unparseable text")
	}
	if dec.More() {
		return nil, violation("", "a single JSON object", "trailing content after first value")
	}

	obj, ok := root.(map[string]any)
	if !ok {
		return nil, violation("", "a single JSON object", describe(root))
	}

	tag, v := reqString(obj, "", "type")
	if v != nil {
		return nil, v
	}

	switch contractx.OutcomeType(tag) {
	case contractx.OutcomePlanCard:
		return planCard(obj)
	case contractx.OutcomeRiskPause:
		return riskPause(obj)
	case contractx.OutcomeResearchOnly:
		return researchOnly(obj)
	default:
		return nil, violation("type",
			`one of "plan_card", "risk_pause", "research_only"`, strconv.Quote(tag))
	}
}

func planCard(obj map[string]any) (contractx.Outcome, error) {
	out := &contractx.PlanCard{Type: contractx.OutcomePlanCard}

	var v *Violation
	if out.AccountID, v = reqString(obj, "", "account_id"); v != nil {
		return nil, v
	}
	if out.LeadID, v = reqString(obj, "", "lead_id"); v != nil {
		return nil, v
	}

	whyRaw, v := reqArray(obj, "", "why_now")
	if v != nil {
		return nil, v
	}
	if len(whyRaw) == 0 {
		return nil, violation("why_now", "at least one entry", "empty array")
	}
	for i, el := range whyRaw {
		path := fmt.Sprintf("why_now[%d]", i)
		sig, v := asObject(el, path)
		if v != nil {
			return nil, v
		}
		var entry contractx.WhyNowSignal
		if entry.Signal, v = reqString(sig, path, "signal"); v != nil {
			return nil, v
		}
		if entry.EvidenceTool, v = reqString(sig, path, "evidence_tool"); v != nil {
			return nil, v
		}
		if entry.Confidence, v = reqNumber(sig, path, "confidence"); v != nil {
			return nil, v
		}
		if v = checkExtras(sig, path, "signal", "evidence_tool", "confidence"); v != nil {
			return nil, v
		}
		if entry.Confidence < 0 || entry.Confidence > 1 {
			return nil, violation(path+".confidence", "number in [0,1]",
				strconv.FormatFloat(entry.Confidence, 'g', -1, 64))
		}
		out.WhyNow = append(out.WhyNow, entry)
	}

	channel, v := reqString(obj, "", "recommended_channel")
	if v != nil {
		return nil, v
	}
	if v = enumCheck("recommended_channel", channel,
		string(contractx.ChannelInMail), string(contractx.ChannelConnect),
		string(contractx.ChannelWarmIntro), string(contractx.ChannelWait)); v != nil {
		return nil, v
	}
	out.RecommendedChannel = contractx.Channel(channel)

	pathsRaw, v := reqArray(obj, "", "warm_paths")
	if v != nil {
		return nil, v
	}
	out.WarmPaths = make([]contractx.WarmPath, 0, len(pathsRaw))
	for i, el := range pathsRaw {
		path := fmt.Sprintf("warm_paths[%d]", i)
		wp, v := asObject(el, path)
		if v != nil {
			return nil, v
		}
		var entry contractx.WarmPath
		if entry.ViaContactID, v = reqString(wp, path, "via_contact_id"); v != nil {
			return nil, v
		}
		rel, v := reqString(wp, path, "relationship")
		if v != nil {
			return nil, v
		}
		if v = enumCheck(path+".relationship", rel,
			string(contractx.RelationshipAlumni), string(contractx.RelationshipCoworker),
			string(contractx.RelationshipMutualConnection)); v != nil {
			return nil, v
		}
		entry.Relationship = contractx.Relationship(rel)
		if entry.IntroNote, v = reqString(wp, path, "intro_note"); v != nil {
			return nil, v
		}
		if v = checkExtras(wp, path, "via_contact_id", "relationship", "intro_note"); v != nil {
			return nil, v
		}
		out.WarmPaths = append(out.WarmPaths, entry)
	}

	link, v := reqObject(obj, "", "smart_link")
	if v != nil {
		return nil, v
	}
	if out.SmartLink, v = smartLink(link); v != nil {
		return nil, v
	}

	draft, v := reqObject(obj, "", "draft_message")
	if v != nil {
		return nil, v
	}
	if out.DraftMessage, v = draftMessage(draft); v != nil {
		return nil, v
	}

	follow, v := reqObject(obj, "", "follow_up")
	if v != nil {
		return nil, v
	}
	if out.FollowUp, v = followUp(follow); v != nil {
		return nil, v
	}

	risk, v := reqObject(obj, "", "risk")
	if v != nil {
		return nil, v
	}
	state, v := reqString(risk, "risk", "envelope_state")
	if v != nil {
		return nil, v
	}
	if v = enumCheck("risk.envelope_state", state,
		string(contractx.EnvelopeGreen), string(contractx.EnvelopeYellow),
		string(contractx.EnvelopeRed)); v != nil {
		return nil, v
	}
	out.Risk.EnvelopeState = contractx.EnvelopeState(state)
	if out.Risk.Explanation, v = reqString(risk, "risk", "explanation"); v != nil {
		return nil, v
	}
	if v = checkExtras(risk, "risk", "envelope_state", "explanation"); v != nil {
		return nil, v
	}

	actionsRaw, v := reqArray(obj, "", "next_actions")
	if v != nil {
		return nil, v
	}
	if len(actionsRaw) == 0 {
		return nil, violation("next_actions", "at least one entry", "empty array")
	}
	for i, el := range actionsRaw {
		path := fmt.Sprintf("next_actions[%d]", i)
		action, v := asObject(el, path)
		if v != nil {
			return nil, v
		}
		var entry contractx.NextAction
		tool, v := reqString(action, path, "tool")
		if v != nil {
			return nil, v
		}
		if v = enumCheck(path+".tool", tool,
			string(contractx.ToolProposeSend), string(contractx.ToolRequestIntro),
			string(contractx.ToolScheduleFollowUp), string(contractx.ToolLogToCRM)); v != nil {
			return nil, v
		}
		entry.Tool = contractx.ActionTool(tool)
		if entry.Params, v = reqObject(action, path, "params"); v != nil {
			return nil, v
		}
		if entry.HumanApprovalRequired, v = reqBool(action, path, "human_approval_required"); v != nil {
			return nil, v
		}
		if v = checkExtras(action, path, "tool", "params", "human_approval_required"); v != nil {
			return nil, v
		}
		out.NextActions = append(out.NextActions, entry)
	}

	if v = checkExtras(obj, "",
		"type", "account_id", "lead_id", "why_now", "recommended_channel",
		"warm_paths", "smart_link", "draft_message", "follow_up", "risk",
		"next_actions"); v != nil {
		return nil, v
	}

	return out, nil
}

func smartLink(obj map[string]any) (contractx.SmartLinkInfo, *Violation) {
	var out contractx.SmartLinkInfo

	raw, ok := obj["asset_id"]
	if !ok {
		return out, violation("smart_link.asset_id", "string or null", "missing field")
	}
	switch t := raw.(type) {
	case nil:
		out.AssetID = nil
	case string:
		out.AssetID = &t
	default:
		return out, violation("smart_link.asset_id", "string or null", describe(raw))
	}

	var v *Violation
	if out.Reason, v = reqString(obj, "smart_link", "reason"); v != nil {
		return out, v
	}
	if out.SendNow, v = reqBool(obj, "smart_link", "send_now"); v != nil {
		return out, v
	}
	if v = checkExtras(obj, "smart_link", "asset_id", "reason", "send_now"); v != nil {
		return out, v
	}
	return out, nil
}

func draftMessage(obj map[string]any) (contractx.DraftMessage, *Violation) {
	var out contractx.DraftMessage
	var v *Violation

	if out.Persona, v = reqString(obj, "draft_message", "persona"); v != nil {
		return out, v
	}
	if out.LengthWords, v = reqPositiveInt(obj, "draft_message", "length_words"); v != nil {
		return out, v
	}
	if out.Text, v = reqString(obj, "draft_message", "text"); v != nil {
		return out, v
	}

	comp, v := reqObject(obj, "draft_message", "compliance")
	if v != nil {
		return out, v
	}
	if out.Compliance.OptOutHint, v = reqBool(comp, "draft_message.compliance", "opt_out_hint"); v != nil {
		return out, v
	}
	if out.Compliance.ForbiddenClaims, v = reqBool(comp, "draft_message.compliance", "forbidden_claims"); v != nil {
		return out, v
	}
	if v = checkExtras(comp, "draft_message.compliance", "opt_out_hint", "forbidden_claims"); v != nil {
		return out, v
	}
	if v = checkExtras(obj, "draft_message", "persona", "length_words", "text", "compliance"); v != nil {
		return out, v
	}

	// A message carrying forbidden claims is never plan-eligible.
	if out.Compliance.ForbiddenClaims {
		return out, violation("draft_message.compliance.forbidden_claims", "false", "true")
	}
	return out, nil
}

func followUp(obj map[string]any) (contractx.FollowUpPlan, *Violation) {
	var out contractx.FollowUpPlan
	var v *Violation

	if out.IfOpenNoReplyHours, v = reqPositiveInt(obj, "follow_up", "if_open_no_reply_hours"); v != nil {
		return out, v
	}
	if out.IfClickNoReplyHours, v = reqPositiveInt(obj, "follow_up", "if_click_no_reply_hours"); v != nil {
		return out, v
	}
	if out.IfNoEngagementHours, v = reqPositiveInt(obj, "follow_up", "if_no_engagement_hours"); v != nil {
		return out, v
	}

	anglesRaw, v := reqArray(obj, "follow_up", "angles")
	if v != nil {
		return out, v
	}
	if len(anglesRaw) == 0 {
		return out, violation("follow_up.angles", "at least one entry", "empty array")
	}
	for i, el := range anglesRaw {
		path := fmt.Sprintf("follow_up.angles[%d]", i)
		angle, ok := el.(string)
		if !ok {
			return out, violation(path, "string", describe(el))
		}
		if v = enumCheck(path, angle,
			string(contractx.AngleSocialProof), string(contractx.AngleInsightDrop),
			string(contractx.AngleQuestion)); v != nil {
			return out, v
		}
		out.Angles = append(out.Angles, contractx.FollowUpAngle(angle))
	}

	if out.AutoSendAllowed, v = reqBool(obj, "follow_up", "auto_send_allowed"); v != nil {
		return out, v
	}
	if v = checkExtras(obj, "follow_up",
		"if_open_no_reply_hours", "if_click_no_reply_hours",
		"if_no_engagement_hours", "angles", "auto_send_allowed"); v != nil {
		return out, v
	}
	return out, nil
}

func riskPause(obj map[string]any) (contractx.Outcome, error) {
	out := &contractx.RiskPause{Type: contractx.OutcomeRiskPause}

	var v *Violation
	if out.Reason, v = reqString(obj, "", "reason"); v != nil {
		return nil, v
	}
	if out.SuggestedRemediation, v = reqStringList(obj, "", "suggested_remediation"); v != nil {
		return nil, v
	}
	if v = checkExtras(obj, "", "type", "reason", "suggested_remediation"); v != nil {
		return nil, v
	}
	return out, nil
}

func researchOnly(obj map[string]any) (contractx.Outcome, error) {
	out := &contractx.ResearchOnly{Type: contractx.OutcomeResearchOnly}

	var v *Violation
	if out.Reason, v = reqString(obj, "", "reason"); v != nil {
		return nil, v
	}
	if out.SuggestedSteps, v = reqStringList(obj, "", "suggested_steps"); v != nil {
		return nil, v
	}
	if v = checkExtras(obj, "", "type", "reason", "suggested_steps"); v != nil {
		return nil, v
	}
	return out, nil
}

/* ------------------------------ field helpers ----------------------------- */

func joinPath(base, key string) string {
	if base == "" {
		return key
	}
	return base + "." + key
}

func describe(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case string:
		return "string " + strconv.Quote(t)
	case json.Number:
		return "number " + t.String()
	case bool:
		return "bool " + strconv.FormatBool(t)
	case map[string]any:
		return "object"
	case []any:
		return "array"
	default:
		return fmt.Sprintf("%T", v)
	}
}

func reqString(obj map[string]any, base, key string) (string, *Violation) {
	path := joinPath(base, key)
	raw, ok := obj[key]
	if !ok {
		return "", violation(path, "string", "missing field")
	}
	s, ok := raw.(string)
	if !ok {
		return "", violation(path, "string", describe(raw))
	}
	return s, nil
}

func reqBool(obj map[string]any, base, key string) (bool, *Violation) {
	path := joinPath(base, key)
	raw, ok := obj[key]
	if !ok {
		return false, violation(path, "bool", "missing field")
	}
	b, ok := raw.(bool)
	if !ok {
		return false, violation(path, "bool", describe(raw))
	}
	return b, nil
}

func reqNumber(obj map[string]any, base, key string) (float64, *Violation) {
	path := joinPath(base, key)
	raw, ok := obj[key]
	if !ok {
		return 0, violation(path, "number", "missing field")
	}
	n, ok := raw.(json.Number)
	if !ok {
		return 0, violation(path, "number", describe(raw))
	}
	f, err := n.Float64()
	if err != nil {
		return 0, violation(path, "number", "number "+n.String())
	}
	return f, nil
}

func reqPositiveInt(obj map[string]any, base, key string) (int, *Violation) {
	path := joinPath(base, key)
	raw, ok := obj[key]
	if !ok {
		return 0, violation(path, "positive integer", "missing field")
	}
	n, ok := raw.(json.Number)
	if !ok {
		return 0, violation(path, "positive integer", describe(raw))
	}
	i, err := strconv.ParseInt(n.String(), 10, 64)
	if err != nil || i <= 0 {
		return 0, violation(path, "positive integer", "number "+n.String())
	}
	return int(i), nil
}

func reqArray(obj map[string]any, base, key string) ([]any, *Violation) {
	path := joinPath(base, key)
	raw, ok := obj[key]
	if !ok {
		return nil, violation(path, "array", "missing field")
	}
	arr, ok := raw.([]any)
	if !ok {
		return nil, violation(path, "array", describe(raw))
	}
	return arr, nil
}

func reqObject(obj map[string]any, base, key string) (map[string]any, *Violation) {
	path := joinPath(base, key)
	raw, ok := obj[key]
	if !ok {
		return nil, violation(path, "object", "missing field")
	}
	m, ok := raw.(map[string]any)
	if !ok {
		return nil, violation(path, "object", describe(raw))
	}
	return m, nil
}

func asObject(raw any, path string) (map[string]any, *Violation) {
	m, ok := raw.(map[string]any)
	if !ok {
		return nil, violation(path, "object", describe(raw))
	}
	return m, nil
}

// reqStringList reads a non-empty array of strings.
func reqStringList(obj map[string]any, base, key string) ([]string, *Violation) {
	arr, v := reqArray(obj, base, key)
	if v != nil {
		return nil, v
	}
	path := joinPath(base, key)
	if len(arr) == 0 {
		return nil, violation(path, "at least one entry", "empty array")
	}
	out := make([]string, 0, len(arr))
	for i, el := range arr {
		s, ok := el.(string)
		if !ok {
			return nil, violation(fmt.Sprintf("%s[%d]", path, i), "string", describe(el))
		}
		out = append(out, s)
	}
	return out, nil
}

func enumCheck(path, got string, allowed ...string) *Violation {
	for _, a := range allowed {
		if got == a {
			return nil
		}
	}
	quoted := make([]string, len(allowed))
	for i, a := range allowed {
		quoted[i] = strconv.Quote(a)
	}
	expected := "one of " + quoted[0]
	for _, q := range quoted[1:] {
		expected += ", " + q
	}
	return violation(path, expected, strconv.Quote(got))
}

// checkExtras rejects any field not legal for the enclosing object. Keys are
// visited in sorted order so the reported violation is deterministic.
func checkExtras(obj map[string]any, base string, allowed ...string) *Violation {
	allowedSet := make(map[string]struct{}, len(allowed))
	for _, k := range allowed {
		allowedSet[k] = struct{}{}
	}
	var extras []string
	for k := range obj {
		if _, ok := allowedSet[k]; !ok {
			extras = append(extras, k)
		}
	}
	if len(extras) == 0 {
		return nil
	}
	sort.Strings(extras)
	return violation(joinPath(base, extras[0]), "no such field for this outcome type", "present")
}
