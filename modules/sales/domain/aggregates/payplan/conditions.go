package payplan

import (
	"encoding/json"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// Conditions narrow when a rule fires. Every field is optional; an empty
// Conditions matches everything.
type Conditions struct {
	// SetterTiers matches when the snapshot tier is one of the listed
	// values. The wire form accepts a single string or an array.
	SetterTiers []string
	MinKw       *decimal.Decimal
	PpwFloor    *decimal.Decimal
}

func (c Conditions) IsEmpty() bool {
	return len(c.SetterTiers) == 0 && c.MinKw == nil && c.PpwFloor == nil
}

// ParseConditions reads the stored JSON condition blob. Unknown keys are
// ignored rather than rejected: plans are edited by operations staff and an
// extra key must never make existing rules stop matching, or worse, match
// everything.
func ParseConditions(raw []byte) (Conditions, error) {
	var c Conditions
	if len(raw) == 0 {
		return c, nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return Conditions{}, errors.Wrap(err, "invalid conditions payload")
	}

	if tier, ok := fields["setter_tier"]; ok {
		tiers, err := parseStringOrSet(tier)
		if err != nil {
			return Conditions{}, errors.Wrap(err, "invalid setter_tier condition")
		}
		c.SetterTiers = tiers
	}

	if raw, ok := fields["min_kw"]; ok {
		v, err := parseDecimal(raw)
		if err != nil {
			return Conditions{}, errors.Wrap(err, "invalid min_kw condition")
		}
		c.MinKw = &v
	}

	if raw, ok := fields["ppw_floor"]; ok {
		v, err := parseDecimal(raw)
		if err != nil {
			return Conditions{}, errors.Wrap(err, "invalid ppw_floor condition")
		}
		c.PpwFloor = &v
	}

	return c, nil
}

// MarshalJSON writes the canonical wire form, always emitting the tier set
// as an array.
func (c Conditions) MarshalJSON() ([]byte, error) {
	out := map[string]any{}
	if len(c.SetterTiers) > 0 {
		out["setter_tier"] = c.SetterTiers
	}
	if c.MinKw != nil {
		out["min_kw"] = c.MinKw
	}
	if c.PpwFloor != nil {
		out["ppw_floor"] = c.PpwFloor
	}
	return json.Marshal(out)
}

func parseStringOrSet(raw json.RawMessage) ([]string, error) {
	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		return []string{single}, nil
	}
	var set []string
	if err := json.Unmarshal(raw, &set); err != nil {
		return nil, err
	}
	return set, nil
}

func parseDecimal(raw json.RawMessage) (decimal.Decimal, error) {
	var v decimal.Decimal
	if err := json.Unmarshal(raw, &v); err != nil {
		return decimal.Decimal{}, err
	}
	return v, nil
}
