package contract

import "context"

// SignalSource exposes the independent read providers one orchestration call
// fans out to. Each call is idempotent, side-effect free, and fails on its
// own; a failed provider is never treated as an empty success.
type SignalSource interface {
	AccountIQ(ctx context.Context, accountID string) (AccountIQ, error)
	BuyerIntent(ctx context.Context, accountID string) (BuyerIntent, error)
	RelationshipPaths(ctx context.Context, leadID string) ([]RelationshipPath, error)
	Triggers(ctx context.Context, accountID, leadID string) ([]TriggerEvent, error)
	SmartLinks(ctx context.Context, accountID, persona string) ([]ContentAsset, error)
	CRMContext(ctx context.Context, leadID string) (CRMContext, error)
	PolicyEnvelope(ctx context.Context, seatID string) (PolicyEnvelope, error)
	CalendarAvailability(ctx context.Context, seatID string) (CalendarAvailability, error)
}

// Completer invokes a generative model and returns its raw text. Backends are
// pluggable; the output contract is enforced by the validator regardless of
// which backend produced the text.
type Completer interface {
	Complete(ctx context.Context, msgs []Message) (string, error)
}
