package location

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
)

var ErrNotFound = errors.New("location not found")

// Division -> Region -> Office. Each upward link is optional: an office may
// be detached from any region while it is being stood up.
type Division struct {
	ID   uuid.UUID
	Name string
}

type Region struct {
	ID         uuid.UUID
	Name       string
	DivisionID *uuid.UUID
}

type Office struct {
	ID       uuid.UUID
	Name     string
	RegionID *uuid.UUID
}

// Chain is the fully resolved location lineage of one office.
type Chain struct {
	Office   Office
	Region   *Region
	Division *Division
}

type Repository interface {
	GetOffice(ctx context.Context, id uuid.UUID) (Office, error)
	GetRegion(ctx context.Context, id uuid.UUID) (Region, error)
	GetDivision(ctx context.Context, id uuid.UUID) (Division, error)
	// ResolveChain walks office -> region -> division; absent links come
	// back nil rather than as errors.
	ResolveChain(ctx context.Context, officeID uuid.UUID) (Chain, error)
	ListOfficeIDsByRegion(ctx context.Context, regionID uuid.UUID) ([]uuid.UUID, error)
}
