package worker

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/staffhub/rostering-backend-go/internal/domain/worker"
	"github.com/staffhub/rostering-backend-go/internal/pkg/validator"
)

type WorkerService struct {
	worker.WorkerRepository
}

func NewWorkerService(workerRepo worker.WorkerRepository) *WorkerService {
	return &WorkerService{WorkerRepository: workerRepo}
}

func (s *WorkerService) CreateWorker(ctx context.Context, req worker.CreateWorkerRequest) (worker.Worker, error) {
	var errs validator.ValidationErrors

	if validator.IsEmpty(req.FullName) {
		errs = append(errs, validator.ValidationError{Field: "full_name", Message: "name is required"})
	}
	if validator.IsEmpty(req.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "email is required"})
	}
	if !validator.IsInSlice(req.Role, worker.RoleValues) {
		errs = append(errs, validator.ValidationError{Field: "role", Message: "must be one of staff, manager, scheduler, hr, admin"})
	}

	hourlyRate := decimal.Zero
	if !validator.IsEmpty(req.HourlyRate) {
		parsed, err := decimal.NewFromString(req.HourlyRate)
		if err != nil {
			errs = append(errs, validator.ValidationError{Field: "hourly_rate", Message: "must be a decimal amount"})
		} else {
			hourlyRate = parsed
		}
	}

	if len(errs) > 0 {
		return worker.Worker{}, errs
	}

	w := worker.Worker{
		FullName:            req.FullName,
		Email:               req.Email,
		Role:                worker.Role(req.Role),
		Department:          req.Department,
		Location:            req.Location,
		Skills:              req.Skills,
		PreferredLocations:  req.PreferredLocations,
		PreferredShiftTypes: req.PreferredShiftTypes,
		HourlyRate:          hourlyRate,
		Status:              worker.StatusActive,
	}

	created, err := s.WorkerRepository.Create(ctx, w)
	if err != nil {
		return worker.Worker{}, fmt.Errorf("failed to create worker: %w", err)
	}
	return created, nil
}

func (s *WorkerService) GetWorker(ctx context.Context, id string) (worker.Worker, error) {
	return s.WorkerRepository.GetByID(ctx, id)
}

func (s *WorkerService) ListWorkers(ctx context.Context) ([]worker.Worker, error) {
	return s.WorkerRepository.ListActive(ctx)
}

func (s *WorkerService) UpdateWorker(ctx context.Context, req worker.UpdateWorkerRequest) (worker.Worker, error) {
	if req.HourlyRate != nil {
		if _, err := decimal.NewFromString(*req.HourlyRate); err != nil {
			return worker.Worker{}, validator.ValidationErrors{
				{Field: "hourly_rate", Message: "must be a decimal amount"},
			}
		}
	}
	return s.WorkerRepository.Update(ctx, req)
}

func (s *WorkerService) DeactivateWorker(ctx context.Context, id string) error {
	return s.WorkerRepository.Deactivate(ctx, id)
}
