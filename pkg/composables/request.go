package composables

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/voltify-hq/voltify-sdk/pkg/constants"
)

var (
	ErrNoLogger = errors.New("logger not found")
	ErrNoActor  = errors.New("no actor found in context")
)

// WithLogger returns a new context carrying the request-scoped log entry.
func WithLogger(ctx context.Context, logger *logrus.Entry) context.Context {
	return context.WithValue(ctx, constants.LoggerKey, logger)
}

// UseLogger returns the logger from the context, falling back to the
// standard logger so call sites never need a nil check.
func UseLogger(ctx context.Context) *logrus.Entry {
	logger := ctx.Value(constants.LoggerKey)
	if logger == nil {
		return logrus.NewEntry(logrus.StandardLogger())
	}
	return logger.(*logrus.Entry)
}

// WithActorID stores the authenticated person driving this request.
func WithActorID(ctx context.Context, actorID uuid.UUID) context.Context {
	return context.WithValue(ctx, constants.ActorKey, actorID)
}

func UseActorID(ctx context.Context) (uuid.UUID, error) {
	actor := ctx.Value(constants.ActorKey)
	if actor == nil {
		return uuid.Nil, ErrNoActor
	}
	return actor.(uuid.UUID), nil
}
