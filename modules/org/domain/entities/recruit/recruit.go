package recruit

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
)

var ErrNotFound = errors.New("recruit not found")

type Status string

const (
	StatusProspect     Status = "prospect"
	StatusInterviewing Status = "interviewing"
	StatusOffer        Status = "offer"
	StatusConverted    Status = "converted"
	StatusRejected     Status = "rejected"
)

// Recruit is a recruiting-pipeline record. Visibility is keyed on the
// office the candidate is being recruited into, not on the recruiter.
type Recruit struct {
	ID             uuid.UUID
	DisplayName    string
	RecruiterID    uuid.UUID
	TargetOfficeID *uuid.UUID
	Status         Status
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (Recruit, error)
	ListByTargetOffice(ctx context.Context, officeID uuid.UUID) ([]Recruit, error)
	ListByRecruiter(ctx context.Context, recruiterID uuid.UUID) ([]Recruit, error)
	Create(ctx context.Context, r Recruit) (Recruit, error)
	Update(ctx context.Context, r Recruit) error
}
