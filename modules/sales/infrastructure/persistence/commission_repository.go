package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/voltify-hq/voltify-sdk/modules/sales/domain/aggregates/commission"
	"github.com/voltify-hq/voltify-sdk/pkg/composables"
)

const selectCommissionFields = `
	id, deal_id, person_id, commission_type, amount, status,
	status_reason, calc_details, created_at, updated_at
FROM sales_commissions
`

type PgCommissionRepository struct{}

func NewCommissionRepository() commission.Repository {
	return &PgCommissionRepository{}
}

func (g *PgCommissionRepository) GetByID(ctx context.Context, id uuid.UUID) (commission.Commission, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return commission.Commission{}, err
	}

	c, err := scanCommission(tx.QueryRow(ctx, `SELECT `+selectCommissionFields+` WHERE id = $1`, pgUUID(id)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return commission.Commission{}, commission.ErrNotFound
		}
		return commission.Commission{}, err
	}
	return c, nil
}

func (g *PgCommissionRepository) ListByDeal(ctx context.Context, dealID uuid.UUID) ([]commission.Commission, error) {
	return g.list(ctx, `WHERE deal_id = $1`, pgUUID(dealID))
}

func (g *PgCommissionRepository) ListByPerson(ctx context.Context, personID uuid.UUID) ([]commission.Commission, error) {
	return g.list(ctx, `WHERE person_id = $1`, pgUUID(personID))
}

func (g *PgCommissionRepository) list(ctx context.Context, clause string, args ...any) ([]commission.Commission, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, `SELECT `+selectCommissionFields+clause+` ORDER BY created_at ASC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]commission.Commission, 0, 16)
	for rows.Next() {
		c, err := scanCommission(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return out, nil
}

func (g *PgCommissionRepository) Create(ctx context.Context, c commission.Commission) (commission.Commission, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return commission.Commission{}, err
	}

	details, err := json.Marshal(c.CalcDetails())
	if err != nil {
		return commission.Commission{}, err
	}

	var id uuid.UUID
	err = tx.QueryRow(ctx, `
INSERT INTO sales_commissions (
	deal_id, person_id, commission_type, amount, status, status_reason, calc_details
) VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id
`,
		pgUUID(c.DealID()),
		pgUUID(c.PersonID()),
		string(c.CommissionType()),
		c.Amount(),
		string(c.Status()),
		c.StatusReason(),
		details,
	).Scan(&id)
	if err != nil {
		return commission.Commission{}, err
	}
	return g.GetByID(ctx, id)
}

func (g *PgCommissionRepository) Update(ctx context.Context, c commission.Commission) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}

	details, err := json.Marshal(c.CalcDetails())
	if err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, `
UPDATE sales_commissions
SET amount = $2, status = $3, status_reason = $4, calc_details = $5, updated_at = now()
WHERE id = $1
`, pgUUID(c.ID()), c.Amount(), string(c.Status()), c.StatusReason(), details)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return commission.ErrNotFound
	}
	return nil
}

func scanCommission(row pgx.Row) (commission.Commission, error) {
	var (
		id             uuid.UUID
		dealID         uuid.UUID
		personID       uuid.UUID
		commissionType string
		amount         decimal.Decimal
		status         string
		statusReason   *string
		rawDetails     []byte
		createdAt      time.Time
		updatedAt      time.Time
	)
	err := row.Scan(
		&id, &dealID, &personID, &commissionType, &amount, &status,
		&statusReason, &rawDetails, &createdAt, &updatedAt,
	)
	if err != nil {
		return commission.Commission{}, err
	}

	var details commission.CalcDetails
	if len(rawDetails) > 0 {
		if err := json.Unmarshal(rawDetails, &details); err != nil {
			return commission.Commission{}, err
		}
	}

	return commission.Hydrate(
		id, dealID, personID, commission.Type(commissionType),
		amount, commission.Status(status), statusReason, details,
		createdAt, updatedAt,
	), nil
}
