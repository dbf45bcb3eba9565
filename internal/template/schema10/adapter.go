// Package schema10 reads v1.0 funding templates.
package schema10

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SkillsFundingAgency/CalculateFunding-Common-sub002/internal/constants"
	"github.com/SkillsFundingAgency/CalculateFunding-Common-sub002/internal/template/model"
	"github.com/SkillsFundingAgency/CalculateFunding-Common-sub002/internal/template/schema"
)

var (
	calculationTypes = schema.NewTable("calculation type", map[string]model.CalculationType{
		"Cash":               model.CalculationTypeCash,
		"Rate":               model.CalculationTypeRate,
		"PupilNumber":        model.CalculationTypePupilNumber,
		"Weighting":          model.CalculationTypeWeighting,
		"Scope":              model.CalculationTypeScope,
		"Information":        model.CalculationTypeInformation,
		"Drilldown":          model.CalculationTypeDrilldown,
		"PerPupilFunding":    model.CalculationTypePerPupilFunding,
		"LumpSum":            model.CalculationTypeLumpSum,
		"ProviderLedFunding": model.CalculationTypeProviderLedFunding,
		"Number":             model.CalculationTypeNumber,
	})

	valueFormats = schema.NewTable("value format", map[string]model.ValueFormat{
		"Number":     model.ValueFormatNumber,
		"Percentage": model.ValueFormatPercentage,
		"Currency":   model.ValueFormatCurrency,
	})

	aggregationTypes = schema.NewTable("aggregation type", map[string]model.AggregationType{
		"None":    model.AggregationTypeNone,
		"Average": model.AggregationTypeAverage,
		"Sum":     model.AggregationTypeSum,
	})

	fundingLineTypes = schema.NewTable("funding line type", map[string]model.FundingLineType{
		"Payment":     model.FundingLineTypePayment,
		"Information": model.FundingLineTypeInformation,
	})
)

type Adapter struct {
	log *slog.Logger
}

func New(log *slog.Logger) *Adapter {
	return &Adapter{log: log}
}

func (a *Adapter) SchemaVersion() string { return constants.SchemaVersion10 }

func (a *Adapter) Parse(raw string) (*model.Contents, error) {
	const op = "schema10.Adapter.Parse"

	var doc schemaJSON
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, a.fail(op, err)
	}
	if doc.Schema == nil {
		return nil, a.fail(op, errors.New("required property '$schema' not found"))
	}
	if doc.FundingTemplate == nil {
		return nil, a.fail(op, errors.New("required property 'fundingTemplate' not found"))
	}

	lines, err := toFundingLines(doc.FundingTemplate.FundingLines)
	if err != nil {
		return nil, a.fail(op, err)
	}

	contents := &model.Contents{
		SchemaVersion:    a.SchemaVersion(),
		TemplateVersion:  doc.FundingTemplate.TemplateVersion,
		RootFundingLines: lines,
	}
	if fs := doc.FundingTemplate.FundingStream; fs != nil {
		contents.FundingStreamID = fs.Code
	}
	if fp := doc.FundingTemplate.FundingPeriod; fp != nil {
		contents.FundingPeriodID = fp.ID
	}
	return contents, nil
}

func (a *Adapter) fail(op string, err error) error {
	a.log.Error("failed to parse template", slog.String("op", op), slog.String("error", err.Error()))
	return &schema.ParseError{SchemaVersion: a.SchemaVersion(), Err: err}
}

func toFundingLines(in []*fundingLine) ([]*model.FundingLine, error) {
	out := make([]*model.FundingLine, 0, len(in))
	for _, fl := range in {
		if fl == nil {
			continue
		}
		typ, err := fundingLineTypes.Map(fl.Type)
		if err != nil {
			return nil, fmt.Errorf("funding line %q (%d): %w", fl.Name, fl.TemplateLineID, err)
		}
		calcs, err := toCalculations(fl.Calculations)
		if err != nil {
			return nil, err
		}
		children, err := toFundingLines(fl.FundingLines)
		if err != nil {
			return nil, err
		}
		line := &model.FundingLine{
			Name:                fl.Name,
			TemplateLineID:      fl.TemplateLineID,
			Type:                typ,
			Calculations:        calcs,
			FundingLines:        children,
			DistributionPeriods: toDistributionPeriods(fl.DistributionPeriods),
		}
		if fl.FundingLineCode != nil {
			line.FundingLineCode = *fl.FundingLineCode
		}
		out = append(out, line)
	}
	return out, nil
}

func toCalculations(in []*calculation) ([]*model.Calculation, error) {
	out := make([]*model.Calculation, 0, len(in))
	for _, c := range in {
		if c == nil {
			continue
		}
		calc, err := toCalculation(c)
		if err != nil {
			return nil, fmt.Errorf("calculation %q (%d): %w", c.Name, c.TemplateCalculationID, err)
		}
		out = append(out, calc)
	}
	return out, nil
}

func toCalculation(c *calculation) (*model.Calculation, error) {
	typ, err := calculationTypes.Map(c.Type)
	if err != nil {
		return nil, err
	}
	format, err := valueFormats.Map(c.ValueFormat)
	if err != nil {
		return nil, err
	}
	agg, err := aggregationTypes.MapOr(c.AggregationType, model.AggregationTypeSum)
	if err != nil {
		return nil, err
	}
	children, err := toCalculations(c.Calculations)
	if err != nil {
		return nil, err
	}
	refs, err := toReferenceData(c.ReferenceData)
	if err != nil {
		return nil, err
	}

	calc := model.NewCalculation()
	calc.Name = c.Name
	calc.TemplateCalculationID = c.TemplateCalculationID
	calc.Type = typ
	calc.ValueFormat = format
	calc.AggregationType = agg
	calc.FormulaText = c.FormulaText
	calc.Calculations = children
	calc.ReferenceData = refs
	return calc, nil
}

func toReferenceData(in []*referenceData) ([]*model.ReferenceData, error) {
	if len(in) == 0 {
		return nil, nil
	}
	out := make([]*model.ReferenceData, 0, len(in))
	for _, r := range in {
		if r == nil {
			continue
		}
		format, err := valueFormats.Map(r.Format)
		if err != nil {
			return nil, fmt.Errorf("reference data %q (%d): %w", r.Name, r.TemplateReferenceID, err)
		}
		agg, err := aggregationTypes.MapOr(r.AggregationType, model.AggregationTypeSum)
		if err != nil {
			return nil, fmt.Errorf("reference data %q (%d): %w", r.Name, r.TemplateReferenceID, err)
		}
		out = append(out, &model.ReferenceData{
			TemplateReferenceID: r.TemplateReferenceID,
			Name:                r.Name,
			Format:              format,
			AggregationType:     agg,
		})
	}
	return out, nil
}

func toDistributionPeriods(in []*distributionPeriod) []*model.DistributionPeriod {
	if len(in) == 0 {
		return nil
	}
	out := make([]*model.DistributionPeriod, 0, len(in))
	for _, dp := range in {
		// a null element still counts as a distribution period on the input
		if dp == nil {
			out = append(out, &model.DistributionPeriod{})
			continue
		}
		period := &model.DistributionPeriod{DistributionPeriodID: dp.DistributionPeriodID, Value: dp.Value}
		for _, pp := range dp.ProfilePeriods {
			if pp == nil {
				continue
			}
			period.ProfilePeriods = append(period.ProfilePeriods, &model.ProfilePeriod{
				Type:          pp.Type,
				TypeValue:     pp.TypeValue,
				Year:          pp.Year,
				Occurrence:    pp.Occurrence,
				ProfiledValue: pp.ProfiledValue,
			})
		}
		out = append(out, period)
	}
	return out
}
