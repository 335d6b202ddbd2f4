// Package memory provides mutex-guarded in-memory implementations of
// every repository interface. They back the service tests and any
// deployment that does not need durable storage; all methods return
// copies so readers never observe a half-written record.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/staffhub/rostering-backend-go/internal/domain/worker"
	"github.com/staffhub/rostering-backend-go/internal/pkg/clock"
)

type workerRepository struct {
	mu      sync.RWMutex
	workers map[string]worker.Worker
	clock   clock.Clock
}

func NewWorkerRepository(clk clock.Clock) worker.WorkerRepository {
	return &workerRepository{
		workers: make(map[string]worker.Worker),
		clock:   clk,
	}
}

func copyWorker(w worker.Worker) worker.Worker {
	c := w
	c.Skills = append([]string(nil), w.Skills...)
	c.PreferredLocations = append([]string(nil), w.PreferredLocations...)
	c.PreferredShiftTypes = append([]string(nil), w.PreferredShiftTypes...)
	return c
}

func (r *workerRepository) Create(ctx context.Context, w worker.Worker) (worker.Worker, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.workers {
		if existing.Email == w.Email {
			return worker.Worker{}, worker.ErrEmailExists
		}
	}

	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	now := r.clock.Now()
	w.CreatedAt = now
	w.UpdatedAt = now
	if w.Status == "" {
		w.Status = worker.StatusActive
	}

	r.workers[w.ID] = copyWorker(w)
	return copyWorker(w), nil
}

func (r *workerRepository) GetByID(ctx context.Context, id string) (worker.Worker, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	w, ok := r.workers[id]
	if !ok {
		return worker.Worker{}, worker.ErrWorkerNotFound
	}
	return copyWorker(w), nil
}

func (r *workerRepository) GetByIDs(ctx context.Context, ids []string) ([]worker.Worker, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]worker.Worker, 0, len(ids))
	for _, id := range ids {
		if w, ok := r.workers[id]; ok {
			result = append(result, copyWorker(w))
		}
	}
	return result, nil
}

func (r *workerRepository) ListActive(ctx context.Context) ([]worker.Worker, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []worker.Worker
	for _, w := range r.workers {
		if w.Status == worker.StatusActive {
			result = append(result, copyWorker(w))
		}
	}
	sortByCreatedAt(result, func(w worker.Worker) sortKey { return sortKey{w.CreatedAt, w.ID} })
	return result, nil
}

func (r *workerRepository) Update(ctx context.Context, req worker.UpdateWorkerRequest) (worker.Worker, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	w, ok := r.workers[req.ID]
	if !ok {
		return worker.Worker{}, worker.ErrWorkerNotFound
	}

	if req.FullName != nil {
		w.FullName = *req.FullName
	}
	if req.Department != nil {
		w.Department = *req.Department
	}
	if req.Location != nil {
		w.Location = *req.Location
	}
	if req.Skills != nil {
		w.Skills = append([]string(nil), *req.Skills...)
	}
	if req.PreferredLocations != nil {
		w.PreferredLocations = append([]string(nil), *req.PreferredLocations...)
	}
	if req.PreferredShiftTypes != nil {
		w.PreferredShiftTypes = append([]string(nil), *req.PreferredShiftTypes...)
	}
	if req.HourlyRate != nil {
		if rate, err := decimal.NewFromString(*req.HourlyRate); err == nil {
			w.HourlyRate = rate
		}
	}
	w.UpdatedAt = r.clock.Now()

	r.workers[w.ID] = copyWorker(w)
	return copyWorker(w), nil
}

func (r *workerRepository) Deactivate(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	w, ok := r.workers[id]
	if !ok {
		return worker.ErrWorkerNotFound
	}
	w.Status = worker.StatusInactive
	w.UpdatedAt = r.clock.Now()
	r.workers[id] = w
	return nil
}
