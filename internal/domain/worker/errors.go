package worker

import "errors"

var (
	ErrWorkerNotFound = errors.New("worker not found")
	ErrEmailExists    = errors.New("worker with this email already exists")
)
