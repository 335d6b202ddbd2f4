package worker

type CreateWorkerRequest struct {
	FullName            string   `json:"full_name" validate:"required"`
	Email               string   `json:"email" validate:"required,email"`
	Role                string   `json:"role" validate:"required,oneof=staff manager scheduler hr admin"`
	Department          string   `json:"department" validate:"required"`
	Location            string   `json:"location" validate:"required"`
	Skills              []string `json:"skills"`
	PreferredLocations  []string `json:"preferred_locations"`
	PreferredShiftTypes []string `json:"preferred_shift_types"`
	HourlyRate          string   `json:"hourly_rate" validate:"omitempty,numeric"`
}

type UpdateWorkerRequest struct {
	ID                  string    `json:"-"`
	FullName            *string   `json:"full_name"`
	Department          *string   `json:"department"`
	Location            *string   `json:"location"`
	Skills              *[]string `json:"skills"`
	PreferredLocations  *[]string `json:"preferred_locations"`
	PreferredShiftTypes *[]string `json:"preferred_shift_types"`
	HourlyRate          *string   `json:"hourly_rate" validate:"omitempty,numeric"`
}
