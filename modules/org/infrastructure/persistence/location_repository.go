package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/voltify-hq/voltify-sdk/modules/org/domain/entities/location"
	"github.com/voltify-hq/voltify-sdk/pkg/composables"
)

type PgLocationRepository struct{}

func NewLocationRepository() location.Repository {
	return &PgLocationRepository{}
}

func (g *PgLocationRepository) GetOffice(ctx context.Context, id uuid.UUID) (location.Office, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return location.Office{}, err
	}

	var (
		office   location.Office
		regionID pgtype.UUID
	)
	err = tx.QueryRow(ctx, `
SELECT id, name, region_id FROM org_offices WHERE id = $1
`, pgUUID(id)).Scan(&office.ID, &office.Name, &regionID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return location.Office{}, location.ErrNotFound
		}
		return location.Office{}, err
	}
	office.RegionID = uuidPtr(regionID)
	return office, nil
}

func (g *PgLocationRepository) GetRegion(ctx context.Context, id uuid.UUID) (location.Region, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return location.Region{}, err
	}

	var (
		region     location.Region
		divisionID pgtype.UUID
	)
	err = tx.QueryRow(ctx, `
SELECT id, name, division_id FROM org_regions WHERE id = $1
`, pgUUID(id)).Scan(&region.ID, &region.Name, &divisionID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return location.Region{}, location.ErrNotFound
		}
		return location.Region{}, err
	}
	region.DivisionID = uuidPtr(divisionID)
	return region, nil
}

func (g *PgLocationRepository) GetDivision(ctx context.Context, id uuid.UUID) (location.Division, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return location.Division{}, err
	}

	var division location.Division
	err = tx.QueryRow(ctx, `
SELECT id, name FROM org_divisions WHERE id = $1
`, pgUUID(id)).Scan(&division.ID, &division.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return location.Division{}, location.ErrNotFound
		}
		return location.Division{}, err
	}
	return division, nil
}

// ResolveChain reads the whole lineage in one round trip. Absent links
// surface as NULLs, not as errors.
func (g *PgLocationRepository) ResolveChain(ctx context.Context, officeID uuid.UUID) (location.Chain, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return location.Chain{}, err
	}

	var (
		chain        location.Chain
		regionID     pgtype.UUID
		regionName   *string
		regionDivID  pgtype.UUID
		divisionID   pgtype.UUID
		divisionName *string
	)
	err = tx.QueryRow(ctx, `
SELECT
	o.id,
	o.name,
	r.id,
	r.name,
	r.division_id,
	d.id,
	d.name
FROM org_offices o
LEFT JOIN org_regions r ON r.id = o.region_id
LEFT JOIN org_divisions d ON d.id = r.division_id
WHERE o.id = $1
`, pgUUID(officeID)).Scan(
		&chain.Office.ID, &chain.Office.Name,
		&regionID, &regionName, &regionDivID,
		&divisionID, &divisionName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return location.Chain{}, location.ErrNotFound
		}
		return location.Chain{}, err
	}

	chain.Office.RegionID = uuidPtr(regionID)
	if regionID.Valid && regionName != nil {
		chain.Region = &location.Region{
			ID:         uuid.UUID(regionID.Bytes),
			Name:       *regionName,
			DivisionID: uuidPtr(regionDivID),
		}
	}
	if divisionID.Valid && divisionName != nil {
		chain.Division = &location.Division{
			ID:   uuid.UUID(divisionID.Bytes),
			Name: *divisionName,
		}
	}
	return chain, nil
}

func (g *PgLocationRepository) ListOfficeIDsByRegion(ctx context.Context, regionID uuid.UUID) ([]uuid.UUID, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, `
SELECT id FROM org_offices WHERE region_id = $1 ORDER BY name ASC
`, pgUUID(regionID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]uuid.UUID, 0, 8)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return out, nil
}
