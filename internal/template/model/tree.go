package model

import "slices"

// Clone returns a deep copy of the funding line tree.
func Clone(lines []*FundingLine) []*FundingLine {
	if lines == nil {
		return nil
	}
	out := make([]*FundingLine, len(lines))
	for i, fl := range lines {
		out[i] = fl.Clone()
	}
	return out
}

func (fl *FundingLine) Clone() *FundingLine {
	if fl == nil {
		return nil
	}
	c := *fl
	c.Calculations = cloneCalculations(fl.Calculations)
	c.FundingLines = Clone(fl.FundingLines)
	if fl.DistributionPeriods != nil {
		c.DistributionPeriods = make([]*DistributionPeriod, len(fl.DistributionPeriods))
		for i, dp := range fl.DistributionPeriods {
			if dp == nil {
				continue
			}
			d := *dp
			if dp.ProfilePeriods != nil {
				d.ProfilePeriods = make([]*ProfilePeriod, len(dp.ProfilePeriods))
				for j, pp := range dp.ProfilePeriods {
					if pp != nil {
						p := *pp
						d.ProfilePeriods[j] = &p
					}
				}
			}
			c.DistributionPeriods[i] = &d
		}
	}
	return &c
}

func (c *Calculation) Clone() *Calculation {
	if c == nil {
		return nil
	}
	out := *c
	out.AllowedEnumTypeValues = slices.Clone(c.AllowedEnumTypeValues)
	if c.GroupRate != nil {
		gr := *c.GroupRate
		out.GroupRate = &gr
	}
	if c.PercentageChangeBetweenAandB != nil {
		pc := *c.PercentageChangeBetweenAandB
		out.PercentageChangeBetweenAandB = &pc
	}
	out.Calculations = cloneCalculations(c.Calculations)
	if c.ReferenceData != nil {
		out.ReferenceData = make([]*ReferenceData, len(c.ReferenceData))
		for i, rd := range c.ReferenceData {
			if rd != nil {
				r := *rd
				out.ReferenceData[i] = &r
			}
		}
	}
	return &out
}

func cloneCalculations(calcs []*Calculation) []*Calculation {
	if calcs == nil {
		return nil
	}
	out := make([]*Calculation, len(calcs))
	for i, c := range calcs {
		out[i] = c.Clone()
	}
	return out
}

// Visitor receives every node of a pre-order walk. Either argument is nil depending on
// the node kind.
type Visitor func(fl *FundingLine, calc *Calculation)

// Walk visits funding lines and calculations depth first, parents before children,
// in document order.
func Walk(lines []*FundingLine, visit Visitor) {
	for _, fl := range lines {
		if fl == nil {
			continue
		}
		visit(fl, nil)
		walkCalculations(fl.Calculations, visit)
		Walk(fl.FundingLines, visit)
	}
}

func walkCalculations(calcs []*Calculation, visit Visitor) {
	for _, c := range calcs {
		if c == nil {
			continue
		}
		visit(nil, c)
		walkCalculations(c.Calculations, visit)
	}
}

// CalculationIDs returns the ids of the direct child calculations, sorted and de-duplicated.
func CalculationIDs(calcs []*Calculation) []uint32 {
	ids := make([]uint32, 0, len(calcs))
	for _, c := range calcs {
		if c != nil {
			ids = append(ids, c.TemplateCalculationID)
		}
	}
	slices.Sort(ids)
	return slices.Compact(ids)
}

// FundingLineIDs returns the ids of the direct child funding lines, sorted and de-duplicated.
func FundingLineIDs(lines []*FundingLine) []uint32 {
	ids := make([]uint32, 0, len(lines))
	for _, fl := range lines {
		if fl != nil {
			ids = append(ids, fl.TemplateLineID)
		}
	}
	slices.Sort(ids)
	return slices.Compact(ids)
}
