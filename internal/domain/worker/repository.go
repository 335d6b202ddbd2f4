package worker

import "context"

// WorkerRepository - interface for worker records
type WorkerRepository interface {
	Create(ctx context.Context, w Worker) (Worker, error)
	GetByID(ctx context.Context, id string) (Worker, error)
	GetByIDs(ctx context.Context, ids []string) ([]Worker, error)
	ListActive(ctx context.Context) ([]Worker, error)
	Update(ctx context.Context, req UpdateWorkerRequest) (Worker, error)
	Deactivate(ctx context.Context, id string) error
}
