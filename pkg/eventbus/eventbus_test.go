package eventbus_test

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/voltify-hq/voltify-sdk/pkg/eventbus"
)

type dealClosed struct {
	DealID string
}

func TestPublishDispatchesToMatchingHandler(t *testing.T) {
	bus := eventbus.NewEventPublisher(logrus.New())

	var got []string
	bus.Subscribe(func(ev dealClosed) {
		got = append(got, ev.DealID)
	})

	bus.Publish(dealClosed{DealID: "d-1"})
	bus.Publish(dealClosed{DealID: "d-2"})

	require.Equal(t, []string{"d-1", "d-2"}, got)
}

func TestPublishSkipsMismatchedHandler(t *testing.T) {
	bus := eventbus.NewEventPublisher(logrus.New())

	called := false
	bus.Subscribe(func(n int) { called = true })

	bus.Publish(dealClosed{DealID: "d-1"})

	require.False(t, called)
}

func TestPublishRecoversFromPanickingHandler(t *testing.T) {
	bus := eventbus.NewEventPublisher(logrus.New())

	var after bool
	bus.Subscribe(func(ev dealClosed) { panic("boom") })
	bus.Subscribe(func(ev dealClosed) { after = true })

	require.NotPanics(t, func() {
		bus.Publish(dealClosed{DealID: "d-1"})
	})
	require.True(t, after)
}
