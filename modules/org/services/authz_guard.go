package services

import (
	"context"
	"errors"

	"github.com/voltify-hq/voltify-sdk/pkg/authz"
	"github.com/voltify-hq/voltify-sdk/pkg/composables"
)

// PersonsAuthzObject represents the org persons capability object.
const PersonsAuthzObject = "org.persons"
const LeadershipAuthzObject = "org.leadership"
const RecruitsAuthzObject = "org.recruits"
const DocumentsAuthzObject = "org.documents"

var authorizeOrgFn = defaultAuthorizeOrg

func authorizeOrg(ctx context.Context, object, action string) error {
	return authorizeOrgFn(ctx, object, action)
}

func defaultAuthorizeOrg(ctx context.Context, object, action string) error {
	actorID, err := composables.UseActorID(ctx)
	if err != nil {
		if errors.Is(err, composables.ErrNoActor) {
			// Background jobs run without an actor.
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
