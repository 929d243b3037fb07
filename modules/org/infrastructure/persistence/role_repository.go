package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/voltify-hq/voltify-sdk/modules/org/domain/entities/role"
	"github.com/voltify-hq/voltify-sdk/pkg/composables"
)

const selectRoleFields = `
	r.id,
	r.name,
	r.level,
	COALESCE((
		SELECT array_agg(rp.permission_id::text)
		FROM org_role_permissions rp
		WHERE rp.role_id = r.id
	), '{}')
FROM org_roles r
`

type PgRoleRepository struct{}

func NewRoleRepository() role.Repository {
	return &PgRoleRepository{}
}

func (g *PgRoleRepository) GetByID(ctx context.Context, id uuid.UUID) (role.Role, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return role.Role{}, err
	}

	r, err := scanRole(tx.QueryRow(ctx, `SELECT `+selectRoleFields+` WHERE r.id = $1`, pgUUID(id)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return role.Role{}, role.ErrNotFound
		}
		return role.Role{}, err
	}
	return r, nil
}

func (g *PgRoleRepository) GetAll(ctx context.Context) ([]role.Role, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, `SELECT `+selectRoleFields+` ORDER BY r.level ASC, r.name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]role.Role, 0, 8)
	for rows.Next() {
		r, err := scanRole(rows)
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

func scanRole(row pgx.Row) (role.Role, error) {
	var (
		id      uuid.UUID
		name    string
		level   int
		permIDs []string
	)
	if err := row.Scan(&id, &name, &level, &permIDs); err != nil {
		return role.Role{}, err
	}
	return toDomainRole(id, name, level, permIDs), nil
}
