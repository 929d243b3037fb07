package snapshot

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
)

var (
	ErrNotFound = errors.New("snapshot not found")
	// ErrAlreadyExists surfaces the (person, date) unique violation so the
	// caller can re-read the winning row.
	ErrAlreadyExists = errors.New("snapshot already exists for person and date")
)

// Snapshot freezes a person's org position as of one date. Rows are
// immutable once written; commission math reads these, never the live
// person row.
type Snapshot struct {
	ID              uuid.UUID
	PersonID        uuid.UUID
	SnapshotDate    time.Time
	RoleID          uuid.UUID
	RoleName        string
	RoleLevel       int
	OfficeID        *uuid.UUID
	OfficeName      *string
	ReportsToID     *uuid.UUID
	ReportsToName   *string
	RecruitedByID   *uuid.UUID
	RecruitedByName *string
	PayPlanID       *uuid.UUID
	SetterTier      *string
	TeamIDs         []uuid.UUID
	CreatedAt       time.Time
}

// NormalizeDate truncates to a UTC calendar date, the snapshot key.
func NormalizeDate(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (Snapshot, error)
	GetByPersonAndDate(ctx context.Context, personID uuid.UUID, date time.Time) (Snapshot, error)
	// Create returns ErrAlreadyExists when another writer won the
	// (person, date) race.
	Create(ctx context.Context, s Snapshot) (Snapshot, error)
}
