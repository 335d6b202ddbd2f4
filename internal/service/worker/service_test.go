package worker

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staffhub/rostering-backend-go/internal/domain/worker"
	"github.com/staffhub/rostering-backend-go/internal/pkg/clock"
	"github.com/staffhub/rostering-backend-go/internal/pkg/validator"
	"github.com/staffhub/rostering-backend-go/internal/repository/memory"
)

func newWorkerService() *WorkerService {
	clk := clock.NewFixed(time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC))
	return NewWorkerService(memory.NewWorkerRepository(clk))
}

func validCreateRequest() worker.CreateWorkerRequest {
	return worker.CreateWorkerRequest{
		FullName:            "Dana Reyes",
		Email:               "dana@example.com",
		Role:                "staff",
		Department:          "cafe",
		Location:            "downtown",
		Skills:              []string{"barista"},
		PreferredLocations:  []string{"downtown"},
		PreferredShiftTypes: []string{"morning"},
		HourlyRate:          "18.50",
	}
}

func TestCreateWorker(t *testing.T) {
	svc := newWorkerService()

	created, err := svc.CreateWorker(context.Background(), validCreateRequest())
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, worker.RoleStaff, created.Role)
	assert.Equal(t, worker.StatusActive, created.Status)
	assert.True(t, created.HourlyRate.Equal(decimal.RequireFromString("18.50")))
}

func TestCreateWorkerValidation(t *testing.T) {
	svc := newWorkerService()

	_, err := svc.CreateWorker(context.Background(), worker.CreateWorkerRequest{
		FullName:   "  ",
		Email:      "",
		Role:       "janitor",
		HourlyRate: "lots",
	})
	require.Error(t, err)

	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	details := errs.ToMap()
	assert.Contains(t, details, "full_name")
	assert.Contains(t, details, "email")
	assert.Contains(t, details, "role")
	assert.Contains(t, details, "hourly_rate")
}

func TestCreateWorkerDuplicateEmail(t *testing.T) {
	svc := newWorkerService()

	_, err := svc.CreateWorker(context.Background(), validCreateRequest())
	require.NoError(t, err)

	_, err = svc.CreateWorker(context.Background(), validCreateRequest())
	assert.ErrorIs(t, err, worker.ErrEmailExists)
}

func TestUpdateWorker(t *testing.T) {
	svc := newWorkerService()

	created, err := svc.CreateWorker(context.Background(), validCreateRequest())
	require.NoError(t, err)

	name := "Dana Okafor"
	rate := "21"
	updated, err := svc.UpdateWorker(context.Background(), worker.UpdateWorkerRequest{
		ID:         created.ID,
		FullName:   &name,
		HourlyRate: &rate,
	})
	require.NoError(t, err)
	assert.Equal(t, name, updated.FullName)
	assert.True(t, updated.HourlyRate.Equal(decimal.NewFromInt(21)))
	// Untouched fields survive a partial update.
	assert.Equal(t, created.Email, updated.Email)
	assert.Equal(t, created.Skills, updated.Skills)

	bad := "lots"
	_, err = svc.UpdateWorker(context.Background(), worker.UpdateWorkerRequest{ID: created.ID, HourlyRate: &bad})
	var errs validator.ValidationErrors
	assert.ErrorAs(t, err, &errs)
}

func TestDeactivateWorkerHidesFromListing(t *testing.T) {
	svc := newWorkerService()

	created, err := svc.CreateWorker(context.Background(), validCreateRequest())
	require.NoError(t, err)

	listed, err := svc.ListWorkers(context.Background())
	require.NoError(t, err)
	require.Len(t, listed, 1)

	require.NoError(t, svc.DeactivateWorker(context.Background(), created.ID))

	listed, err = svc.ListWorkers(context.Background())
	require.NoError(t, err)
	assert.Empty(t, listed)

	got, err := svc.GetWorker(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, worker.StatusInactive, got.Status)

	assert.ErrorIs(t, svc.DeactivateWorker(context.Background(), "missing"), worker.ErrWorkerNotFound)
}
