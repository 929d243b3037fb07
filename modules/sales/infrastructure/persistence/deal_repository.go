package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/voltify-hq/voltify-sdk/modules/sales/domain/aggregates/deal"
	"github.com/voltify-hq/voltify-sdk/pkg/composables"
)

const selectDealFields = `
	id, setter_id, closer_id, deal_type, system_size_kw, price_per_watt,
	deal_value, close_date, office_id, is_self_gen, created_at
FROM sales_deals
`

type PgDealRepository struct{}

func NewDealRepository() deal.Repository {
	return &PgDealRepository{}
}

func (g *PgDealRepository) GetByID(ctx context.Context, id uuid.UUID) (deal.Deal, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return deal.Deal{}, err
	}

	d, err := scanDeal(tx.QueryRow(ctx, `SELECT `+selectDealFields+` WHERE id = $1`, pgUUID(id)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return deal.Deal{}, deal.ErrNotFound
		}
		return deal.Deal{}, err
	}
	return d, nil
}

func (g *PgDealRepository) ListByPerson(ctx context.Context, personID uuid.UUID) ([]deal.Deal, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, `SELECT `+selectDealFields+`
WHERE setter_id = $1 OR closer_id = $1
ORDER BY close_date DESC
`, pgUUID(personID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]deal.Deal, 0, 16)
	for rows.Next() {
		d, err := scanDeal(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return out, nil
}

func (g *PgDealRepository) Create(ctx context.Context, d deal.Deal) (deal.Deal, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return deal.Deal{}, err
	}

	var id uuid.UUID
	err = tx.QueryRow(ctx, `
INSERT INTO sales_deals (
	setter_id, closer_id, deal_type, system_size_kw, price_per_watt,
	deal_value, close_date, office_id, is_self_gen
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING id
`,
		pgUUID(d.SetterID()),
		pgUUID(d.CloserID()),
		string(d.DealType()),
		d.SystemSizeKw(),
		d.PricePerWatt(),
		d.DealValue(),
		d.CloseDate(),
		pgUUIDPtr(d.OfficeID()),
		d.IsSelfGen(),
	).Scan(&id)
	if err != nil {
		return deal.Deal{}, err
	}
	return g.GetByID(ctx, id)
}

func scanDeal(row pgx.Row) (deal.Deal, error) {
	var (
		id           uuid.UUID
		setterID     uuid.UUID
		closerID     uuid.UUID
		dealType     string
		systemSizeKw decimal.Decimal
		pricePerWatt decimal.Decimal
		dealValue    decimal.Decimal
		closeDate    time.Time
		officeID     pgtype.UUID
		isSelfGen    bool
		createdAt    time.Time
	)
	err := row.Scan(
		&id, &setterID, &closerID, &dealType, &systemSizeKw, &pricePerWatt,
		&dealValue, &closeDate, &officeID, &isSelfGen, &createdAt,
	)
	if err != nil {
		return deal.Deal{}, err
	}
	return deal.Hydrate(
		id, setterID, closerID, deal.Type(dealType),
		systemSizeKw, pricePerWatt, dealValue,
		closeDate, uuidPtr(officeID), isSelfGen, createdAt,
	), nil
}
