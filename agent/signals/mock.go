package signals

import (
	"context"
	"time"

	contractx "github.com/advait08/sales-agent-llm/agent/contract"
)

// MockSource is the example-shaped provider set used by the demo wiring and
// tests. Fields can be overridden per scenario; the zero-value methods never
// fail.
type MockSource struct {
	Envelope contractx.PolicyEnvelope
	Intent   contractx.BuyerIntent
	Paths    []contractx.RelationshipPath
	Events   []contractx.TriggerEvent
	Assets   []contractx.ContentAsset
	Calendar contractx.CalendarAvailability
}

var _ contractx.SignalSource = (*MockSource)(nil)

// NewMockSource seeds a green-envelope, high-intent account.
func NewMockSource() *MockSource {
	return &MockSource{
		Envelope: contractx.PolicyEnvelope{
			State:    contractx.EnvelopeGreen,
			Credits:  12,
			Ceilings: map[string]int{"inmail_daily": 50, "connect_daily": 80},
		},
		Intent: contractx.BuyerIntent{
			Level: "High",
			Trend: "Up",
			TS:    time.Now().UTC().Format(time.RFC3339),
		},
		Paths: []contractx.RelationshipPath{
			{
				ViaContactID: "alex-chen",
				Relationship: contractx.RelationshipAlumni,
				IntroNote:    "Alex, quick intro to Dana at Acme re: SN agent and rep efficiency?",
			},
			{
				ViaContactID: "priya-singh",
				Relationship: contractx.RelationshipCoworker,
				IntroNote:    "Priya, would you vouch for a short intro to Dana? Happy to share context first.",
			},
		},
		Events: []contractx.TriggerEvent{
			{Type: "job_change", Text: "VP Engineering joined 3 weeks ago", TS: "2025-09-10"},
			{Type: "post", Text: "Lead posted about pipeline quality and SDR tools", TS: "2025-09-28"},
		},
		Assets: []contractx.ContentAsset{
			{AssetID: "roi-onepager-v3", Title: "SN Agent ROI 1-pager", HistoricalPerformance: "high_dwell"},
			{AssetID: "playbook-lt", Title: "Low-volume High-relevance Playbook", HistoricalPerformance: "medium_dwell"},
		},
		Calendar: contractx.CalendarAvailability{
			Timeslots: []string{"2025-10-03T10:00Z", "2025-10-03T15:00Z", "2025-10-04T11:30Z"},
		},
	}
}

func (m *MockSource) AccountIQ(ctx context.Context, accountID string) (contractx.AccountIQ, error) {
	return contractx.AccountIQ{
		AccountID: accountID,
		Summary:   "High-growth SaaS firm expanding into EU; engineering headcount +12%.",
		Hiring:    contractx.HiringTrend{Trend: "up", Roles: []string{"Sales", "Platform", "Security"}},
		News:      []contractx.NewsItem{{Title: "Secured Series B funding", TS: "2025-09-05"}},
	}, nil
}

func (m *MockSource) BuyerIntent(ctx context.Context, accountID string) (contractx.BuyerIntent, error) {
	return m.Intent, nil
}

func (m *MockSource) RelationshipPaths(ctx context.Context, leadID string) ([]contractx.RelationshipPath, error) {
	return m.Paths, nil
}

func (m *MockSource) Triggers(ctx context.Context, accountID, leadID string) ([]contractx.TriggerEvent, error) {
	return m.Events, nil
}

func (m *MockSource) SmartLinks(ctx context.Context, accountID, persona string) ([]contractx.ContentAsset, error) {
	return m.Assets, nil
}

func (m *MockSource) CRMContext(ctx context.Context, leadID string) (contractx.CRMContext, error) {
	return contractx.CRMContext{
		LastTouchTS: "2025-09-18",
		OpenOpps:    0,
		Notes:       "No prior contact from this seat.",
	}, nil
}

func (m *MockSource) PolicyEnvelope(ctx context.Context, seatID string) (contractx.PolicyEnvelope, error) {
	return m.Envelope, nil
}

func (m *MockSource) CalendarAvailability(ctx context.Context, seatID string) (contractx.CalendarAvailability, error) {
	return m.Calendar, nil
}
