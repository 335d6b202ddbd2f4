package worker

import (
	"time"

	"github.com/shopspring/decimal"
)

type Worker struct {
	ID                  string
	FullName            string
	Email               string
	Role                Role
	Department          string
	Location            string
	Skills              []string
	PreferredLocations  []string
	PreferredShiftTypes []string
	HourlyRate          decimal.Decimal
	Status              Status
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

type Role string

const (
	RoleStaff     Role = "staff"
	RoleManager   Role = "manager"
	RoleScheduler Role = "scheduler"
	RoleHR        Role = "hr"
	RoleAdmin     Role = "admin"
)

var RoleValues = []string{
	string(RoleStaff),
	string(RoleManager),
	string(RoleScheduler),
	string(RoleHR),
	string(RoleAdmin),
}

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// HasSkills reports whether the worker holds every skill in required.
// An empty requirement set is trivially satisfied.
func (w Worker) HasSkills(required []string) bool {
	for _, skill := range required {
		found := false
		for _, held := range w.Skills {
			if held == skill {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
