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
	"github.com/voltify-hq/voltify-sdk/modules/sales/domain/aggregates/payplan"
	"github.com/voltify-hq/voltify-sdk/pkg/composables"
)

type PgPayPlanRepository struct{}

func NewPayPlanRepository() payplan.Repository {
	return &PgPayPlanRepository{}
}

func (g *PgPayPlanRepository) GetByID(ctx context.Context, id uuid.UUID) (payplan.PayPlan, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return payplan.PayPlan{}, err
	}

	var (
		name      string
		isActive  bool
		createdAt time.Time
		updatedAt time.Time
	)
	err = tx.QueryRow(ctx, `
SELECT name, is_active, created_at, updated_at FROM sales_pay_plans WHERE id = $1
`, pgUUID(id)).Scan(&name, &isActive, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payplan.PayPlan{}, payplan.ErrNotFound
		}
		return payplan.PayPlan{}, err
	}

	rules, err := g.loadRules(ctx, id)
	if err != nil {
		return payplan.PayPlan{}, err
	}
	return payplan.Hydrate(id, name, rules, isActive, createdAt, updatedAt), nil
}

func (g *PgPayPlanRepository) GetAll(ctx context.Context) ([]payplan.PayPlan, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, `
SELECT id, name, is_active, created_at, updated_at FROM sales_pay_plans ORDER BY name ASC
`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	type planHead struct {
		id        uuid.UUID
		name      string
		isActive  bool
		createdAt time.Time
		updatedAt time.Time
	}
	heads := make([]planHead, 0, 8)
	for rows.Next() {
		var h planHead
		if err := rows.Scan(&h.id, &h.name, &h.isActive, &h.createdAt, &h.updatedAt); err != nil {
			return nil, err
		}
		heads = append(heads, h)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}

	out := make([]payplan.PayPlan, 0, len(heads))
	for _, h := range heads {
		rules, err := g.loadRules(ctx, h.id)
		if err != nil {
			return nil, err
		}
		out = append(out, payplan.Hydrate(h.id, h.name, rules, h.isActive, h.createdAt, h.updatedAt))
	}
	return out, nil
}

func (g *PgPayPlanRepository) Create(ctx context.Context, p payplan.PayPlan) (payplan.PayPlan, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return payplan.PayPlan{}, err
	}

	var id uuid.UUID
	err = tx.QueryRow(ctx, `
INSERT INTO sales_pay_plans (name, is_active) VALUES ($1, $2) RETURNING id
`, p.Name(), p.IsActive()).Scan(&id)
	if err != nil {
		return payplan.PayPlan{}, err
	}

	if err := g.insertRules(ctx, id, p.Rules()); err != nil {
		return payplan.PayPlan{}, err
	}
	return g.GetByID(ctx, id)
}

// Update rewrites the plan head and replaces its rule set. Callers keep
// rule ids stable across updates; retiring a matched rule means flipping
// is_active, not dropping it from the set.
func (g *PgPayPlanRepository) Update(ctx context.Context, p payplan.PayPlan) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, `
UPDATE sales_pay_plans SET name = $2, is_active = $3, updated_at = now() WHERE id = $1
`, pgUUID(p.ID()), p.Name(), p.IsActive())
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return payplan.ErrNotFound
	}

	if _, err := tx.Exec(ctx, `DELETE FROM sales_pay_plan_rules WHERE pay_plan_id = $1`, pgUUID(p.ID())); err != nil {
		return err
	}
	return g.insertRules(ctx, p.ID(), p.Rules())
}

func (g *PgPayPlanRepository) insertRules(ctx context.Context, planID uuid.UUID, rules []payplan.Rule) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}

	for _, r := range rules {
		conditions, err := r.Conditions.MarshalJSON()
		if err != nil {
			return err
		}

		var dealTypes []string
		for _, dt := range r.DealTypes {
			dealTypes = append(dealTypes, string(dt))
		}
		var source *string
		if r.OverrideSource != nil {
			v := string(*r.OverrideSource)
			source = &v
		}

		ruleID := r.ID
		if ruleID == uuid.Nil {
			ruleID = uuid.New()
		}
		_, err = tx.Exec(ctx, `
INSERT INTO sales_pay_plan_rules (
	id, pay_plan_id, rule_type, calc_method, amount, applies_to_role_id,
	deal_types, override_level, override_source, conditions, sort_order, is_active
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
`,
			pgUUID(ruleID),
			pgUUID(planID),
			string(r.RuleType),
			string(r.CalcMethod),
			r.Amount,
			pgUUIDPtr(r.AppliesToRoleID),
			dealTypes,
			r.OverrideLevel,
			source,
			conditions,
			r.SortOrder,
			r.IsActive,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func (g *PgPayPlanRepository) loadRules(ctx context.Context, planID uuid.UUID) ([]payplan.Rule, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, `
SELECT
	id, rule_type, calc_method, amount, applies_to_role_id,
	COALESCE(deal_types, '{}'), override_level, override_source,
	conditions, sort_order, is_active
FROM sales_pay_plan_rules
WHERE pay_plan_id = $1
ORDER BY sort_order ASC
`, pgUUID(planID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]payplan.Rule, 0, 8)
	for rows.Next() {
		var (
			r             payplan.Rule
			ruleType      string
			calcMethod    string
			amount        decimal.Decimal
			appliesToRole pgtype.UUID
			dealTypes     []string
			overrideLevel *int
			source        *string
			conditions    []byte
		)
		err := rows.Scan(
			&r.ID, &ruleType, &calcMethod, &amount, &appliesToRole,
			&dealTypes, &overrideLevel, &source, &conditions,
			&r.SortOrder, &r.IsActive,
		)
		if err != nil {
			return nil, err
		}

		r.RuleType = payplan.RuleType(ruleType)
		r.CalcMethod = payplan.CalcMethod(calcMethod)
		r.Amount = amount
		r.AppliesToRoleID = uuidPtr(appliesToRole)
		for _, dt := range dealTypes {
			r.DealTypes = append(r.DealTypes, deal.Type(dt))
		}
		r.OverrideLevel = overrideLevel
		if source != nil {
			v := payplan.OverrideSource(*source)
			r.OverrideSource = &v
		}
		r.Conditions, err = payplan.ParseConditions(conditions)
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
