package roster

import (
	"context"
	"time"
)

type TemplateService interface {
	CreateTemplate(ctx context.Context, req CreateTemplateRequest) (ShiftTemplate, error)
	GetTemplate(ctx context.Context, id string) (ShiftTemplate, error)
	ListTemplates(ctx context.Context) ([]ShiftTemplate, error)
	DeactivateTemplate(ctx context.Context, id string) error
}

type RosterService interface {
	CreateRoster(ctx context.Context, req CreateRosterRequest) (Roster, error)
	GetRoster(ctx context.Context, id string) (Roster, error)
	ListRosters(ctx context.Context) ([]Roster, error)
	GenerateShifts(ctx context.Context, templates []ShiftTemplate, start, end time.Time) []Shift
	AutoGenerate(ctx context.Context, req AutoGenerateRequest) (Roster, GenerationStats, error)
	ApproveRoster(ctx context.Context, id string) (Roster, error)
	PublishRoster(ctx context.Context, id string) (Roster, error)
	DetectConflicts(ctx context.Context, rosterID string) (ConflictReport, error)
}

type SwapService interface {
	SubmitSwap(ctx context.Context, req CreateSwapRequest) (SwapRequest, error)
	ApproveSwap(ctx context.Context, id, decidedBy string) (SwapRequest, error)
	RejectSwap(ctx context.Context, id, decidedBy string) (SwapRequest, error)
	ListSwaps(ctx context.Context, rosterID string) ([]SwapRequest, error)
}
