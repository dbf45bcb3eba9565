package fundingvalue

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/SkillsFundingAgency/CalculateFunding-Common-sub002/internal/template/model"
)

// AssignCalculationValues sets Value on every occurrence of each template calculation id
// found in values. Calculations without an entry are reset to null. Returns the ids in
// values that did not match any calculation, in ascending order.
func AssignCalculationValues(lines []*model.FundingLine, values map[uint32]decimal.Decimal) []uint32 {
	used := make(map[uint32]bool, len(values))
	model.Walk(lines, func(_ *model.FundingLine, c *model.Calculation) {
		if c == nil {
			return
		}
		v, ok := values[c.TemplateCalculationID]
		if !ok {
			c.Value = decimal.NullDecimal{}
			return
		}
		c.Value = decimal.NewNullDecimal(v)
		used[c.TemplateCalculationID] = true
	})

	var unknown []uint32
	for id := range values {
		if !used[id] {
			unknown = append(unknown, id)
		}
	}
	slices.Sort(unknown)
	return unknown
}

// ParseCalculationValues converts string keyed values, as they arrive in JSON bodies,
// into template calculation ids.
func ParseCalculationValues(in map[string]decimal.Decimal) (map[uint32]decimal.Decimal, error) {
	const op = "fundingvalue.ParseCalculationValues"

	out := make(map[uint32]decimal.Decimal, len(in))
	for k, v := range in {
		id, err := strconv.ParseUint(k, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("%s: template calculation id %q: %w", op, k, err)
		}
		out[uint32(id)] = v
	}
	return out, nil
}
