package services

import (
	"context"
	"errors"

	"github.com/voltify-hq/voltify-sdk/pkg/authz"
	"github.com/voltify-hq/voltify-sdk/pkg/composables"
)

const DealsAuthzObject = "sales.deals"
const PayPlansAuthzObject = "sales.payplans"
const CommissionsAuthzObject = "sales.commissions"

var authorizeSalesFn = defaultAuthorizeSales

func authorizeSales(ctx context.Context, object, action string) error {
	return authorizeSalesFn(ctx, object, action)
}

func defaultAuthorizeSales(ctx context.Context, object, action string) error {
	actorID, err := composables.UseActorID(ctx)
	if err != nil {
		if errors.Is(err, composables.ErrNoActor) {
			// Resolver runs from deal-close hooks without an actor.
			return nil
		}
		return err
	}

	req := authz.NewRequest(
		authz.SubjectForPerson(actorID),
		object,
		authz.NormalizeAction(action),
	)
	return authz.Use().Authorize(ctx, req)
}
