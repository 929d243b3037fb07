package services

import "github.com/voltify-hq/voltify-sdk/pkg/serrors"

var (
	// ErrRecalcSettled rejects recomputation once any line item on the deal
	// has been approved or paid. Settled money never silently changes.
	ErrRecalcSettled = serrors.NewError(
		"SALES_RECALC_SETTLED",
		"deal has approved or paid commissions, recalculation is not allowed",
		"Sales.RecalcSettled",
	)
)
