package timeoff

import "context"

type RequestService interface {
	Submit(ctx context.Context, req SubmitRequest) (Request, error)
	Approve(ctx context.Context, req ApproveRequest) (Request, error)
	Reject(ctx context.Context, req RejectRequest) (Request, error)
	Cancel(ctx context.Context, req CancelRequest) (Request, error)
	GetRequest(ctx context.Context, id string) (Request, error)
	ListWorkerRequests(ctx context.Context, workerID string) ([]Request, error)
}
