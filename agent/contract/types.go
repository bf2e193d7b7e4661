package contract

// EnvelopeState is the compliance/rate-limit state of a sending seat.
// Red is stricter than yellow, yellow stricter than green.
type EnvelopeState string

const (
	EnvelopeGreen  EnvelopeState = "green"
	EnvelopeYellow EnvelopeState = "yellow"
	EnvelopeRed    EnvelopeState = "red"
)

type Channel string

const (
	ChannelInMail    Channel = "inmail"
	ChannelConnect   Channel = "connect"
	ChannelWarmIntro Channel = "warm_intro"
	ChannelWait      Channel = "wait"
)

type Relationship string

const (
	RelationshipAlumni           Relationship = "alumni"
	RelationshipCoworker         Relationship = "coworker"
	RelationshipMutualConnection Relationship = "mutual_connection"
)

type FollowUpAngle string

const (
	AngleSocialProof FollowUpAngle = "social_proof"
	AngleInsightDrop FollowUpAngle = "insight_drop"
	AngleQuestion    FollowUpAngle = "question"
)

// ActionTool names the write-side collaborators an outcome may reference.
// The core never invokes them; it only emits their names in next_actions.
type ActionTool string

const (
	ToolProposeSend      ActionTool = "propose_send"
	ToolRequestIntro     ActionTool = "request_intro"
	ToolScheduleFollowUp ActionTool = "schedule_follow_up"
	ToolLogToCRM         ActionTool = "log_to_crm"
)

type WhyNowSignal struct {
	Signal       string  `json:"signal"`
	EvidenceTool string  `json:"evidence_tool"`
	Confidence   float64 `json:"confidence"`
}

type WarmPath struct {
	ViaContactID string       `json:"via_contact_id"`
	Relationship Relationship `json:"relationship"`
	IntroNote    string       `json:"intro_note"`
}

// SmartLinkInfo carries the selected content asset. AssetID is nil only when
// the smart-link provider returned no assets.
type SmartLinkInfo struct {
	AssetID *string `json:"asset_id"`
	Reason  string  `json:"reason"`
	SendNow bool    `json:"send_now"`
}

type Compliance struct {
	OptOutHint      bool `json:"opt_out_hint"`
	ForbiddenClaims bool `json:"forbidden_claims"`
}

// DraftMessage is the single outreach message of a plan. LengthWords is the
// whitespace word count of Text, recomputed at synthesis.
type DraftMessage struct {
	Persona     string     `json:"persona"`
	LengthWords int        `json:"length_words"`
	Text        string     `json:"text"`
	Compliance  Compliance `json:"compliance"`
}

type FollowUpPlan struct {
	IfOpenNoReplyHours  int             `json:"if_open_no_reply_hours"`
	IfClickNoReplyHours int             `json:"if_click_no_reply_hours"`
	IfNoEngagementHours int             `json:"if_no_engagement_hours"`
	Angles              []FollowUpAngle `json:"angles"`
	AutoSendAllowed     bool            `json:"auto_send_allowed"`
}

type RiskInfo struct {
	EnvelopeState EnvelopeState `json:"envelope_state"`
	Explanation   string        `json:"explanation"`
}

type NextAction struct {
	Tool                  ActionTool     `json:"tool"`
	Params                map[string]any `json:"params"`
	HumanApprovalRequired bool           `json:"human_approval_required"`
}

// OutcomeType discriminates the three legal outcome shapes.
type OutcomeType string

const (
	OutcomePlanCard     OutcomeType = "plan_card"
	OutcomeRiskPause    OutcomeType = "risk_pause"
	OutcomeResearchOnly OutcomeType = "research_only"
)

// Outcome is the closed union of the three shapes one orchestration call may
// produce. The unexported method keeps the union closed to this package.
type Outcome interface {
	OutcomeType() OutcomeType
	outcome()
}

type PlanCard struct {
	Type               OutcomeType    `json:"type"`
	AccountID          string         `json:"account_id"`
	LeadID             string         `json:"lead_id"`
	WhyNow             []WhyNowSignal `json:"why_now"`
	RecommendedChannel Channel        `json:"recommended_channel"`
	WarmPaths          []WarmPath     `json:"warm_paths"`
	SmartLink          SmartLinkInfo  `json:"smart_link"`
	DraftMessage       DraftMessage   `json:"draft_message"`
	FollowUp           FollowUpPlan   `json:"follow_up"`
	Risk               RiskInfo       `json:"risk"`
	NextActions        []NextAction   `json:"next_actions"`
}

type RiskPause struct {
	Type                 OutcomeType `json:"type"`
	Reason               string      `json:"reason"`
	SuggestedRemediation []string    `json:"suggested_remediation"`
}

type ResearchOnly struct {
	Type           OutcomeType `json:"type"`
	Reason         string      `json:"reason"`
	SuggestedSteps []string    `json:"suggested_steps"`
}

func (*PlanCard) OutcomeType() OutcomeType     { return OutcomePlanCard }
func (*RiskPause) OutcomeType() OutcomeType    { return OutcomeRiskPause }
func (*ResearchOnly) OutcomeType() OutcomeType { return OutcomeResearchOnly }

func (*PlanCard) outcome()     {}
func (*RiskPause) outcome()    {}
func (*ResearchOnly) outcome() {}

/* ------------------------- signal provider results ------------------------ */

type AccountIQ struct {
	AccountID string      `json:"account_id"`
	Summary   string      `json:"summary"`
	Hiring    HiringTrend `json:"hiring"`
	News      []NewsItem  `json:"news"`
}

type HiringTrend struct {
	Trend string   `json:"trend"`
	Roles []string `json:"roles"`
}

type NewsItem struct {
	Title string `json:"title"`
	TS    string `json:"ts"`
}

type BuyerIntent struct {
	Level string `json:"level"` // Low | Medium | High
	Trend string `json:"trend"` // Up | Flat | Down
	TS    string `json:"ts"`
}

type RelationshipPath struct {
	ViaContactID string       `json:"via_contact_id"`
	Relationship Relationship `json:"relationship"`
	IntroNote    string       `json:"intro_note"`
}

type TriggerEvent struct {
	Type string `json:"type"`
	Text string `json:"text"`
	TS   string `json:"ts"`
}

type ContentAsset struct {
	AssetID               string `json:"asset_id"`
	Title                 string `json:"title"`
	HistoricalPerformance string `json:"historical_performance"`
}

type CRMContext struct {
	LastTouchTS string `json:"last_touch_ts"`
	OpenOpps    int    `json:"open_opps"`
	Notes       string `json:"notes"`
}

// PolicyEnvelope is the rate/compliance budget for a seat. State alone gates
// synthesis; credits and ceilings feed the explanation text.
type PolicyEnvelope struct {
	State    EnvelopeState  `json:"state"`
	Credits  int            `json:"credits"`
	Ceilings map[string]int `json:"ceilings"`
}

type CalendarAvailability struct {
	Timeslots []string `json:"timeslots"`
}

/* ------------------------------ model messages ---------------------------- */

type Role string

const (
	RoleSystem    Role = "system"
	RoleDeveloper Role = "developer"
	RoleUser      Role = "user"
)

// Message is one role-tagged block sent to the generative collaborator.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}
