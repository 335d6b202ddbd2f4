package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/staffhub/rostering-backend-go/internal/domain/roster"
	"github.com/staffhub/rostering-backend-go/internal/pkg/clock"
)

type templateRepository struct {
	mu        sync.RWMutex
	templates map[string]roster.ShiftTemplate
	clock     clock.Clock
}

func NewTemplateRepository(clk clock.Clock) roster.ShiftTemplateRepository {
	return &templateRepository{
		templates: make(map[string]roster.ShiftTemplate),
		clock:     clk,
	}
}

func copyTemplate(t roster.ShiftTemplate) roster.ShiftTemplate {
	c := t
	c.RequiredSkills = append([]string(nil), t.RequiredSkills...)
	return c
}

func (r *templateRepository) Create(ctx context.Context, t roster.ShiftTemplate) (roster.ShiftTemplate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	now := r.clock.Now()
	t.CreatedAt = now
	t.UpdatedAt = now
	t.Active = true

	r.templates[t.ID] = copyTemplate(t)
	return copyTemplate(t), nil
}

func (r *templateRepository) GetByID(ctx context.Context, id string) (roster.ShiftTemplate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.templates[id]
	if !ok {
		return roster.ShiftTemplate{}, roster.ErrTemplateNotFound
	}
	return copyTemplate(t), nil
}

// GetByIDs returns templates in the order requested; unknown ids are skipped.
func (r *templateRepository) GetByIDs(ctx context.Context, ids []string) ([]roster.ShiftTemplate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]roster.ShiftTemplate, 0, len(ids))
	for _, id := range ids {
		if t, ok := r.templates[id]; ok {
			result = append(result, copyTemplate(t))
		}
	}
	return result, nil
}

func (r *templateRepository) ListActive(ctx context.Context) ([]roster.ShiftTemplate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []roster.ShiftTemplate
	for _, t := range r.templates {
		if t.Active {
			result = append(result, copyTemplate(t))
		}
	}
	sortByCreatedAt(result, func(t roster.ShiftTemplate) sortKey { return sortKey{t.CreatedAt, t.ID} })
	return result, nil
}

func (r *templateRepository) Update(ctx context.Context, t roster.ShiftTemplate) (roster.ShiftTemplate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.templates[t.ID]
	if !ok {
		return roster.ShiftTemplate{}, roster.ErrTemplateNotFound
	}
	t.CreatedAt = existing.CreatedAt
	t.UpdatedAt = r.clock.Now()
	r.templates[t.ID] = copyTemplate(t)
	return copyTemplate(t), nil
}

func (r *templateRepository) Deactivate(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.templates[id]
	if !ok {
		return roster.ErrTemplateNotFound
	}
	t.Active = false
	t.UpdatedAt = r.clock.Now()
	r.templates[id] = t
	return nil
}
