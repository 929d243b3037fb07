package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/voltify-hq/voltify-sdk/modules/sales/domain/entities/snapshot"
	"github.com/voltify-hq/voltify-sdk/pkg/composables"
)

const selectSnapshotFields = `
	id, person_id, snapshot_date, role_id, role_name, role_level,
	office_id, office_name, reports_to_id, reports_to_name,
	recruited_by_id, recruited_by_name, pay_plan_id, setter_tier,
	COALESCE(team_ids, '{}'), created_at
FROM sales_org_snapshots
`

type PgSnapshotRepository struct{}

func NewSnapshotRepository() snapshot.Repository {
	return &PgSnapshotRepository{}
}

func (g *PgSnapshotRepository) GetByID(ctx context.Context, id uuid.UUID) (snapshot.Snapshot, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return snapshot.Snapshot{}, err
	}
	return scanSnapshotRow(tx.QueryRow(ctx, `SELECT `+selectSnapshotFields+` WHERE id = $1`, pgUUID(id)))
}

func (g *PgSnapshotRepository) GetByPersonAndDate(ctx context.Context, personID uuid.UUID, date time.Time) (snapshot.Snapshot, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return snapshot.Snapshot{}, err
	}
	return scanSnapshotRow(tx.QueryRow(ctx, `SELECT `+selectSnapshotFields+`
WHERE person_id = $1 AND snapshot_date = $2
`, pgUUID(personID), snapshot.NormalizeDate(date)))
}

func (g *PgSnapshotRepository) Create(ctx context.Context, s snapshot.Snapshot) (snapshot.Snapshot, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return snapshot.Snapshot{}, err
	}

	var id uuid.UUID
	err = tx.QueryRow(ctx, `
INSERT INTO sales_org_snapshots (
	person_id, snapshot_date, role_id, role_name, role_level,
	office_id, office_name, reports_to_id, reports_to_name,
	recruited_by_id, recruited_by_name, pay_plan_id, setter_tier, team_ids
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
RETURNING id
`,
		pgUUID(s.PersonID),
		snapshot.NormalizeDate(s.SnapshotDate),
		pgUUID(s.RoleID),
		s.RoleName,
		s.RoleLevel,
		pgUUIDPtr(s.OfficeID),
		s.OfficeName,
		pgUUIDPtr(s.ReportsToID),
		s.ReportsToName,
		pgUUIDPtr(s.RecruitedByID),
		s.RecruitedByName,
		pgUUIDPtr(s.PayPlanID),
		s.SetterTier,
		uuidStrings(s.TeamIDs),
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return snapshot.Snapshot{}, snapshot.ErrAlreadyExists
		}
		return snapshot.Snapshot{}, err
	}
	return g.GetByID(ctx, id)
}

func scanSnapshotRow(row pgx.Row) (snapshot.Snapshot, error) {
	var (
		s             snapshot.Snapshot
		officeID      pgtype.UUID
		reportsToID   pgtype.UUID
		recruitedByID pgtype.UUID
		payPlanID     pgtype.UUID
		teamIDs       []string
	)
	err := row.Scan(
		&s.ID, &s.PersonID, &s.SnapshotDate, &s.RoleID, &s.RoleName, &s.RoleLevel,
		&officeID, &s.OfficeName, &reportsToID, &s.ReportsToName,
		&recruitedByID, &s.RecruitedByName, &payPlanID, &s.SetterTier,
		&teamIDs, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return snapshot.Snapshot{}, snapshot.ErrNotFound
		}
		return snapshot.Snapshot{}, err
	}
	s.OfficeID = uuidPtr(officeID)
	s.ReportsToID = uuidPtr(reportsToID)
	s.RecruitedByID = uuidPtr(recruitedByID)
	s.PayPlanID = uuidPtr(payPlanID)
	s.TeamIDs = parseUUIDs(teamIDs)
	return s, nil
}
