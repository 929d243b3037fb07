package team

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
)

var ErrNotFound = errors.New("team not found")

type Team struct {
	ID         uuid.UUID
	Name       string
	OfficeID   uuid.UUID
	TeamLeadID *uuid.UUID
}

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (Team, error)
	ListByOffice(ctx context.Context, officeID uuid.UUID) ([]Team, error)
	ListMemberIDs(ctx context.Context, teamID uuid.UUID) ([]uuid.UUID, error)
	ListTeamIDsForPerson(ctx context.Context, personID uuid.UUID) ([]uuid.UUID, error)
}
