package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/voltify-hq/voltify-sdk/modules/org/domain/aggregates/person"
	"github.com/voltify-hq/voltify-sdk/pkg/composables"
)

const selectPersonFields = `
	p.id,
	p.display_name,
	r.id,
	r.name,
	r.level,
	COALESCE((
		SELECT array_agg(rp.permission_id::text)
		FROM org_role_permissions rp
		WHERE rp.role_id = r.id
	), '{}'),
	p.office_id,
	p.reports_to_id,
	p.recruited_by_id,
	p.pay_plan_id,
	p.setter_tier,
	p.status,
	p.created_at,
	p.updated_at
FROM org_persons p
JOIN org_roles r ON r.id = p.role_id
`

type PgPersonRepository struct{}

func NewPersonRepository() person.Repository {
	return &PgPersonRepository{}
}

func (g *PgPersonRepository) GetByID(ctx context.Context, id uuid.UUID) (person.Person, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return person.Person{}, err
	}

	row := tx.QueryRow(ctx, `SELECT `+selectPersonFields+` WHERE p.id = $1`, pgUUID(id))
	p, err := scanPerson(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return person.Person{}, person.ErrNotFound
		}
		return person.Person{}, err
	}
	return p, nil
}

func (g *PgPersonRepository) GetPaginated(ctx context.Context, params *person.FindParams) ([]person.Person, int64, error) {
	if params == nil {
		params = &person.FindParams{}
	}
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, 0, err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := params.Offset
	if offset < 0 {
		offset = 0
	}
	q := "%" + params.Q + "%"
	status := string(params.Status)

	var total int64
	err = tx.QueryRow(ctx, `
SELECT COUNT(*)
FROM org_persons p
WHERE ($1 = '%%' OR p.display_name ILIKE $1)
	AND ($2 = '' OR p.status = $2)
`, q, status).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	rows, err := tx.Query(ctx, `SELECT `+selectPersonFields+`
WHERE ($1 = '%%' OR p.display_name ILIKE $1)
	AND ($2 = '' OR p.status = $2)
ORDER BY p.display_name ASC
OFFSET $3 LIMIT $4
`, q, status, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	people, err := scanPersons(rows)
	if err != nil {
		return nil, 0, err
	}
	return people, total, nil
}

func (g *PgPersonRepository) ListByOffice(ctx context.Context, officeID uuid.UUID) ([]person.Person, error) {
	return g.list(ctx, ` WHERE p.office_id = $1 ORDER BY p.display_name ASC`, pgUUID(officeID))
}

func (g *PgPersonRepository) ListDirectReports(ctx context.Context, managerID uuid.UUID) ([]person.Person, error) {
	return g.list(ctx, ` WHERE p.reports_to_id = $1 ORDER BY p.display_name ASC`, pgUUID(managerID))
}

func (g *PgPersonRepository) list(ctx context.Context, clause string, args ...any) ([]person.Person, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, `SELECT `+selectPersonFields+clause, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanPersons(rows)
}

func (g *PgPersonRepository) Count(ctx context.Context) (int64, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, err
	}

	var count int64
	if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM org_persons`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (g *PgPersonRepository) Create(ctx context.Context, p person.Person) (person.Person, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return person.Person{}, err
	}

	var id uuid.UUID
	err = tx.QueryRow(ctx, `
INSERT INTO org_persons (
	display_name, role_id, office_id, reports_to_id, recruited_by_id,
	pay_plan_id, setter_tier, status
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id
`,
		p.DisplayName(),
		pgUUID(p.Role().ID),
		pgUUIDPtr(p.OfficeID()),
		pgUUIDPtr(p.ReportsToID()),
		pgUUIDPtr(p.RecruitedByID()),
		pgUUIDPtr(p.PayPlanID()),
		tierPtr(p.SetterTier()),
		string(p.Status()),
	).Scan(&id)
	if err != nil {
		return person.Person{}, err
	}

	return g.GetByID(ctx, id)
}

func (g *PgPersonRepository) Update(ctx context.Context, p person.Person) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, `
UPDATE org_persons
SET display_name = $2,
	role_id = $3,
	office_id = $4,
	reports_to_id = $5,
	recruited_by_id = $6,
	pay_plan_id = $7,
	setter_tier = $8,
	status = $9,
	updated_at = now()
WHERE id = $1
`,
		pgUUID(p.ID()),
		p.DisplayName(),
		pgUUID(p.Role().ID),
		pgUUIDPtr(p.OfficeID()),
		pgUUIDPtr(p.ReportsToID()),
		pgUUIDPtr(p.RecruitedByID()),
		pgUUIDPtr(p.PayPlanID()),
		tierPtr(p.SetterTier()),
		string(p.Status()),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return person.ErrNotFound
	}
	return nil
}

func tierPtr(t *person.SetterTier) *string {
	if t == nil {
		return nil
	}
	v := string(*t)
	return &v
}

func scanPerson(row pgx.Row) (person.Person, error) {
	var (
		id            uuid.UUID
		displayName   string
		roleID        uuid.UUID
		roleName      string
		roleLevel     int
		permIDs       []string
		officeID      pgtype.UUID
		reportsToID   pgtype.UUID
		recruitedByID pgtype.UUID
		payPlanID     pgtype.UUID
		setterTier    *string
		status        string
		createdAt     time.Time
		updatedAt     time.Time
	)
	err := row.Scan(
		&id, &displayName, &roleID, &roleName, &roleLevel, &permIDs,
		&officeID, &reportsToID, &recruitedByID, &payPlanID,
		&setterTier, &status, &createdAt, &updatedAt,
	)
	if err != nil {
		return person.Person{}, err
	}

	var tier *person.SetterTier
	if setterTier != nil {
		v := person.SetterTier(*setterTier)
		tier = &v
	}

	return person.Hydrate(
		id,
		displayName,
		toDomainRole(roleID, roleName, roleLevel, permIDs),
		uuidPtr(officeID),
		uuidPtr(reportsToID),
		uuidPtr(recruitedByID),
		uuidPtr(payPlanID),
		tier,
		person.Status(status),
		createdAt,
		updatedAt,
	), nil
}

func scanPersons(rows pgx.Rows) ([]person.Person, error) {
	out := make([]person.Person, 0, 16)
	for rows.Next() {
		p, err := scanPerson(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return out, nil
}
