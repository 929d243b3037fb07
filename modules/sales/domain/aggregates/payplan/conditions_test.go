package payplan

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestParseConditions_Empty(t *testing.T) {
	c, err := ParseConditions(nil)
	require.NoError(t, err)
	require.True(t, c.IsEmpty())

	c, err = ParseConditions([]byte(`{}`))
	require.NoError(t, err)
	require.True(t, c.IsEmpty())
}

func TestParseConditions_SingleTierString(t *testing.T) {
	c, err := ParseConditions([]byte(`{"setter_tier": "Veteran"}`))
	require.NoError(t, err)
	require.Equal(t, []string{"Veteran"}, c.SetterTiers)
}

func TestParseConditions_TierSet(t *testing.T) {
	c, err := ParseConditions([]byte(`{"setter_tier": ["Veteran", "TeamLead"]}`))
	require.NoError(t, err)
	require.Equal(t, []string{"Veteran", "TeamLead"}, c.SetterTiers)
}

func TestParseConditions_NumericBounds(t *testing.T) {
	c, err := ParseConditions([]byte(`{"min_kw": 8.5, "ppw_floor": 3.2}`))
	require.NoError(t, err)
	require.True(t, c.MinKw.Equal(decimal.RequireFromString("8.5")))
	require.True(t, c.PpwFloor.Equal(decimal.RequireFromString("3.2")))
}

func TestParseConditions_UnknownKeysIgnored(t *testing.T) {
	// An unrecognized key must not widen or narrow matching.
	c, err := ParseConditions([]byte(`{"min_kw": 5, "max_moon_phase": "full"}`))
	require.NoError(t, err)
	require.True(t, c.MinKw.Equal(decimal.RequireFromString("5")))
	require.Empty(t, c.SetterTiers)
	require.Nil(t, c.PpwFloor)
}

func TestParseConditions_MalformedPayload(t *testing.T) {
	_, err := ParseConditions([]byte(`[1, 2]`))
	require.Error(t, err)

	_, err = ParseConditions([]byte(`{"setter_tier": 42}`))
	require.Error(t, err)

	_, err = ParseConditions([]byte(`{"min_kw": "lots"}`))
	require.Error(t, err)
}
