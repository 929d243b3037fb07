package services

import "github.com/voltify-hq/voltify-sdk/pkg/serrors"

var (
	// ErrCycleDetected means a reports-to or recruited-by walk exceeded the
	// depth bound. That is corrupted data, not a long chain; it is escalated
	// to the caller, never truncated silently.
	ErrCycleDetected = serrors.NewError(
		"ORG_CYCLE_DETECTED",
		"hierarchy chain exceeded depth bound, data is corrupted",
		"Org.CycleDetected",
	)

	// ErrLeadershipTransitionRetry is returned when a transition left the
	// target without an open assignment. The caller should retry.
	ErrLeadershipTransitionRetry = serrors.NewError(
		"ORG_LEADERSHIP_TRANSITION_RETRY",
		"leadership transition failed midway, retry required",
		"Org.LeadershipTransitionRetry",
	)

	// ErrLeaderLevelTooLow rejects assigning a leadership role to a person
	// whose role level is below the policy minimum.
	ErrLeaderLevelTooLow = serrors.NewError(
		"ORG_LEADER_LEVEL_TOO_LOW",
		"person's role level is below the minimum for this leadership role",
		"Org.LeaderLevelTooLow",
	)
)
