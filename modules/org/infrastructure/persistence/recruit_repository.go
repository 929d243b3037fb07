package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/voltify-hq/voltify-sdk/modules/org/domain/entities/recruit"
	"github.com/voltify-hq/voltify-sdk/pkg/composables"
)

type PgRecruitRepository struct{}

func NewRecruitRepository() recruit.Repository {
	return &PgRecruitRepository{}
}

func (g *PgRecruitRepository) GetByID(ctx context.Context, id uuid.UUID) (recruit.Recruit, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return recruit.Recruit{}, err
	}

	r, err := scanRecruit(tx.QueryRow(ctx, `
SELECT id, display_name, recruiter_id, target_office_id, status, created_at, updated_at
FROM org_recruits
WHERE id = $1
`, pgUUID(id)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return recruit.Recruit{}, recruit.ErrNotFound
		}
		return recruit.Recruit{}, err
	}
	return r, nil
}

func (g *PgRecruitRepository) ListByTargetOffice(ctx context.Context, officeID uuid.UUID) ([]recruit.Recruit, error) {
	return g.list(ctx, `WHERE target_office_id = $1`, pgUUID(officeID))
}

func (g *PgRecruitRepository) ListByRecruiter(ctx context.Context, recruiterID uuid.UUID) ([]recruit.Recruit, error) {
	return g.list(ctx, `WHERE recruiter_id = $1`, pgUUID(recruiterID))
}

func (g *PgRecruitRepository) list(ctx context.Context, clause string, args ...any) ([]recruit.Recruit, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, `
SELECT id, display_name, recruiter_id, target_office_id, status, created_at, updated_at
FROM org_recruits
`+clause+`
ORDER BY created_at DESC
`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]recruit.Recruit, 0, 8)
	for rows.Next() {
		r, err := scanRecruit(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return out, nil
}

func (g *PgRecruitRepository) Create(ctx context.Context, r recruit.Recruit) (recruit.Recruit, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return recruit.Recruit{}, err
	}

	var id uuid.UUID
	err = tx.QueryRow(ctx, `
INSERT INTO org_recruits (display_name, recruiter_id, target_office_id, status)
VALUES ($1, $2, $3, $4)
RETURNING id
`,
		r.DisplayName,
		pgUUID(r.RecruiterID),
		pgUUIDPtr(r.TargetOfficeID),
		string(r.Status),
	).Scan(&id)
	if err != nil {
		return recruit.Recruit{}, err
	}
	return g.GetByID(ctx, id)
}

func (g *PgRecruitRepository) Update(ctx context.Context, r recruit.Recruit) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, `
UPDATE org_recruits
SET display_name = $2,
	recruiter_id = $3,
	target_office_id = $4,
	status = $5,
	updated_at = now()
WHERE id = $1
`,
		pgUUID(r.ID),
		r.DisplayName,
		pgUUID(r.RecruiterID),
		pgUUIDPtr(r.TargetOfficeID),
		string(r.Status),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return recruit.ErrNotFound
	}
	return nil
}

func scanRecruit(row pgx.Row) (recruit.Recruit, error) {
	var (
		r              recruit.Recruit
		targetOfficeID pgtype.UUID
		status         string
		createdAt      time.Time
		updatedAt      time.Time
	)
	err := row.Scan(&r.ID, &r.DisplayName, &r.RecruiterID, &targetOfficeID, &status, &createdAt, &updatedAt)
	if err != nil {
		return recruit.Recruit{}, err
	}
	r.TargetOfficeID = uuidPtr(targetOfficeID)
	r.Status = recruit.Status(status)
	r.CreatedAt = createdAt
	r.UpdatedAt = updatedAt
	return r, nil
}
