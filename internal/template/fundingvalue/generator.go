// Package fundingvalue rolls calculation values up into funding line totals.
package fundingvalue

import (
	"github.com/shopspring/decimal"

	"github.com/SkillsFundingAgency/CalculateFunding-Common-sub002/internal/template/model"
)

const DefaultDecimalPlaces = 2

type Generator struct {
	decimalPlaces int32
}

type Option func(*Generator)

func WithDecimalPlaces(places uint8) Option {
	return func(g *Generator) { g.decimalPlaces = int32(places) }
}

func NewGenerator(opts ...Option) *Generator {
	g := &Generator{decimalPlaces: DefaultDecimalPlaces}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate computes every funding line value and the grand total. The input tree is
// left untouched: values are set on a deep copy that is returned in the result.
//
// Payment lines add their own value to the total. Information lines add nothing
// themselves but are searched, at any depth, for Payment lines beneath them.
func (g *Generator) Generate(lines []*model.FundingLine) model.FundingValue {
	out := model.Clone(lines)

	for _, fl := range out {
		g.fundingLineValue(fl)
	}

	var total decimal.NullDecimal
	for _, fl := range out {
		total = Add(total, paymentTotal(fl))
	}

	return model.FundingValue{TotalValue: total, FundingLines: out}
}

// fundingLineValue sets fl.Value bottom-up and returns it.
func (g *Generator) fundingLineValue(fl *model.FundingLine) decimal.NullDecimal {
	if fl == nil {
		return decimal.NullDecimal{}
	}

	var cash decimal.NullDecimal
	for _, c := range fl.Calculations {
		if c != nil && c.Type == model.CalculationTypeCash {
			cash = Add(cash, CalculationTotal(c))
		}
	}

	var children decimal.NullDecimal
	for _, child := range fl.FundingLines {
		children = Add(children, g.fundingLineValue(child))
	}

	fl.Value = Round(Add(cash, children), g.decimalPlaces)
	return fl.Value
}

func paymentTotal(fl *model.FundingLine) decimal.NullDecimal {
	if fl == nil {
		return decimal.NullDecimal{}
	}
	if fl.Type == model.FundingLineTypePayment {
		return fl.Value
	}
	var total decimal.NullDecimal
	for _, child := range fl.FundingLines {
		total = Add(total, paymentTotal(child))
	}
	return total
}

// CalculationTotal is a Cash calculation's own value. Any other calculation contributes
// its own value plus the Cash calculations nested beneath it; non-Cash children are only
// looked through.
func CalculationTotal(c *model.Calculation) decimal.NullDecimal {
	if c == nil {
		return decimal.NullDecimal{}
	}
	if c.Type == model.CalculationTypeCash {
		return c.Value
	}
	return Add(c.Value, nestedCash(c.Calculations))
}

func nestedCash(calcs []*model.Calculation) decimal.NullDecimal {
	var total decimal.NullDecimal
	for _, c := range calcs {
		if c == nil {
			continue
		}
		if c.Type == model.CalculationTypeCash {
			total = Add(total, c.Value)
			continue
		}
		total = Add(total, nestedCash(c.Calculations))
	}
	return total
}

// Add treats null as absent: null + null is null, null + x is x.
func Add(a, b decimal.NullDecimal) decimal.NullDecimal {
	switch {
	case !a.Valid:
		return b
	case !b.Valid:
		return a
	default:
		return decimal.NewNullDecimal(a.Decimal.Add(b.Decimal))
	}
}

// Sum folds Add over values.
func Sum(values ...decimal.NullDecimal) decimal.NullDecimal {
	var total decimal.NullDecimal
	for _, v := range values {
		total = Add(total, v)
	}
	return total
}

// Round rounds half away from zero; null stays null.
func Round(v decimal.NullDecimal, places int32) decimal.NullDecimal {
	if !v.Valid {
		return v
	}
	return decimal.NewNullDecimal(v.Decimal.Round(places))
}
