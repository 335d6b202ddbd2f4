package worker

import "context"

type WorkerService interface {
	CreateWorker(ctx context.Context, req CreateWorkerRequest) (Worker, error)
	GetWorker(ctx context.Context, id string) (Worker, error)
	ListWorkers(ctx context.Context) ([]Worker, error)
	UpdateWorker(ctx context.Context, req UpdateWorkerRequest) (Worker, error)
	DeactivateWorker(ctx context.Context, id string) error
}
