package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/voltify-hq/voltify-sdk/modules/org/domain/aggregates/leadership"
	"github.com/voltify-hq/voltify-sdk/pkg/composables"
)

const selectAssignmentFields = `
	id, role_type, target_kind, target_id, person_id,
	effective_from, effective_to, created_at
FROM org_leadership_assignments
`

type PgLeadershipRepository struct{}

func NewLeadershipRepository() leadership.Repository {
	return &PgLeadershipRepository{}
}

func (g *PgLeadershipRepository) GetByID(ctx context.Context, id uuid.UUID) (leadership.Assignment, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return leadership.Assignment{}, err
	}
	return scanAssignmentRow(tx.QueryRow(ctx, `SELECT `+selectAssignmentFields+` WHERE id = $1`, pgUUID(id)))
}

func (g *PgLeadershipRepository) OpenForTarget(
	ctx context.Context,
	roleType leadership.RoleType,
	targetKind leadership.TargetKind,
	targetID uuid.UUID,
) (leadership.Assignment, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return leadership.Assignment{}, err
	}
	return scanAssignmentRow(tx.QueryRow(ctx, `SELECT `+selectAssignmentFields+`
WHERE role_type = $1 AND target_kind = $2 AND target_id = $3 AND effective_to IS NULL
`, string(roleType), string(targetKind), pgUUID(targetID)))
}

func (g *PgLeadershipRepository) ActiveForTarget(
	ctx context.Context,
	roleType leadership.RoleType,
	targetKind leadership.TargetKind,
	targetID uuid.UUID,
	date time.Time,
) (leadership.Assignment, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return leadership.Assignment{}, err
	}
	// Interval containment, never the open-row shortcut: a missed
	// transition must not surface a stale leader.
	return scanAssignmentRow(tx.QueryRow(ctx, `SELECT `+selectAssignmentFields+`
WHERE role_type = $1
	AND target_kind = $2
	AND target_id = $3
	AND effective_from <= $4
	AND (effective_to IS NULL OR effective_to >= $4)
ORDER BY effective_from DESC
LIMIT 1
`, string(roleType), string(targetKind), pgUUID(targetID), date))
}

func (g *PgLeadershipRepository) ListActive(ctx context.Context, date time.Time) ([]leadership.Assignment, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, `SELECT `+selectAssignmentFields+`
WHERE effective_from <= $1 AND (effective_to IS NULL OR effective_to >= $1)
ORDER BY role_type ASC, effective_from ASC
`, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]leadership.Assignment, 0, 16)
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return out, nil
}

func (g *PgLeadershipRepository) Create(ctx context.Context, a leadership.Assignment) (leadership.Assignment, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return leadership.Assignment{}, err
	}

	var id uuid.UUID
	err = tx.QueryRow(ctx, `
INSERT INTO org_leadership_assignments (role_type, target_kind, target_id, person_id, effective_from, effective_to)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id
`,
		string(a.RoleType()),
		string(a.TargetKind()),
		pgUUID(a.TargetID()),
		pgUUID(a.PersonID()),
		a.EffectiveFrom(),
		a.EffectiveTo(),
	).Scan(&id)
	if err != nil {
		return leadership.Assignment{}, err
	}
	return g.GetByID(ctx, id)
}

func (g *PgLeadershipRepository) Update(ctx context.Context, a leadership.Assignment) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, `
UPDATE org_leadership_assignments
SET person_id = $2, effective_from = $3, effective_to = $4
WHERE id = $1
`, pgUUID(a.ID()), pgUUID(a.PersonID()), a.EffectiveFrom(), a.EffectiveTo())
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return leadership.ErrNotFound
	}
	return nil
}

func scanAssignmentRow(row pgx.Row) (leadership.Assignment, error) {
	a, err := scanAssignment(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leadership.Assignment{}, leadership.ErrNotFound
		}
		return leadership.Assignment{}, err
	}
	return a, nil
}

func scanAssignment(row pgx.Row) (leadership.Assignment, error) {
	var (
		id            uuid.UUID
		roleType      string
		targetKind    string
		targetID      uuid.UUID
		personID      uuid.UUID
		effectiveFrom time.Time
		effectiveTo   *time.Time
		createdAt     time.Time
	)
	err := row.Scan(&id, &roleType, &targetKind, &targetID, &personID, &effectiveFrom, &effectiveTo, &createdAt)
	if err != nil {
		return leadership.Assignment{}, err
	}
	return leadership.Hydrate(
		id,
		leadership.RoleType(roleType),
		leadership.TargetKind(targetKind),
		targetID,
		personID,
		effectiveFrom,
		effectiveTo,
		createdAt,
	), nil
}
