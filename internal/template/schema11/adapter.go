// Package schema11 reads v1.1 funding templates. Compared to v1.0 the body moved under
// fundingStreamTemplate, reference data was dropped and Boolean/Enum calculations appeared.
package schema11

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
		"Boolean":            model.CalculationTypeBoolean,
		"Enum":               model.CalculationTypeEnum,
	})

	valueFormats = schema.NewTable("value format", map[string]model.ValueFormat{
		"Number":     model.ValueFormatNumber,
		"Percentage": model.ValueFormatPercentage,
		"Currency":   model.ValueFormatCurrency,
		"Boolean":    model.ValueFormatBoolean,
		"String":     model.ValueFormatString,
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

func (a *Adapter) SchemaVersion() string { return constants.SchemaVersion11 }

func (a *Adapter) Parse(raw string) (*model.Contents, error) {
	const op = "schema11.Adapter.Parse"

	var doc schemaJSON
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, a.fail(op, err)
	}
	if doc.Schema == nil {
		return nil, a.fail(op, errors.New("required property '$schema' not found"))
	}
	tmpl := doc.FundingStreamTemplate
	if tmpl == nil {
		return nil, a.fail(op, errors.New("required property 'fundingStreamTemplate' not found"))
	}

	lines, err := toFundingLines(tmpl.FundingLines)
	if err != nil {
		return nil, a.fail(op, err)
	}

	contents := &model.Contents{
		SchemaVersion:    a.SchemaVersion(),
		TemplateVersion:  tmpl.FundingTemplateVersion,
		RootFundingLines: lines,
	}
	if tmpl.FundingStream != nil {
		contents.FundingStreamID = tmpl.FundingStream.Code
	}
	if tmpl.FundingPeriod != nil {
		contents.FundingPeriodID = tmpl.FundingPeriod.ID
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
		out = append(out, &model.FundingLine{
			Name:                fl.Name,
			TemplateLineID:      fl.TemplateLineID,
			FundingLineCode:     fl.FundingLineCode,
			Type:                typ,
			Calculations:        calcs,
			FundingLines:        children,
			DistributionPeriods: toDistributionPeriods(fl.DistributionPeriods),
		})
	}
	return out, nil
}

func toCalculations(in []*calculation) ([]*model.Calculation, error) {
	out := make([]*model.Calculation, 0, len(in))
	for _, c := range in {
		if c == nil {
			continue
		}
		typ, err := calculationTypes.Map(c.Type)
		if err != nil {
			return nil, fmt.Errorf("calculation %q (%d): %w", c.Name, c.TemplateCalculationID, err)
		}
		format, err := valueFormats.Map(c.ValueFormat)
		if err != nil {
			return nil, fmt.Errorf("calculation %q (%d): %w", c.Name, c.TemplateCalculationID, err)
		}
		agg, err := aggregationTypes.MapOr(c.AggregationType, model.AggregationTypeSum)
		if err != nil {
			return nil, fmt.Errorf("calculation %q (%d): %w", c.Name, c.TemplateCalculationID, err)
		}
		children, err := toCalculations(c.Calculations)
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
		out = append(out, calc)
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
