// Package model holds the version-agnostic funding template tree that every schema
// adapter maps into.
package model

import "github.com/shopspring/decimal"

type CalculationType string

const (
	CalculationTypeCash               CalculationType = "Cash"
	CalculationTypeRate               CalculationType = "Rate"
	CalculationTypePupilNumber        CalculationType = "PupilNumber"
	CalculationTypeWeighting          CalculationType = "Weighting"
	CalculationTypeScope              CalculationType = "Scope"
	CalculationTypeInformation        CalculationType = "Information"
	CalculationTypeDrilldown          CalculationType = "Drilldown"
	CalculationTypePerPupilFunding    CalculationType = "PerPupilFunding"
	CalculationTypeLumpSum            CalculationType = "LumpSum"
	CalculationTypeProviderLedFunding CalculationType = "ProviderLedFunding"
	CalculationTypeNumber             CalculationType = "Number"
	CalculationTypeBoolean            CalculationType = "Boolean"
	CalculationTypeEnum               CalculationType = "Enum"
	CalculationTypeAdjustment         CalculationType = "Adjustment"
)

type ValueFormat string

const (
	ValueFormatNumber     ValueFormat = "Number"
	ValueFormatPercentage ValueFormat = "Percentage"
	ValueFormatCurrency   ValueFormat = "Currency"
	ValueFormatBoolean    ValueFormat = "Boolean"
	ValueFormatString     ValueFormat = "String"
)

type AggregationType string

const (
	AggregationTypeNone                         AggregationType = "None"
	AggregationTypeAverage                      AggregationType = "Average"
	AggregationTypeSum                          AggregationType = "Sum"
	AggregationTypeGroupRate                    AggregationType = "GroupRate"
	AggregationTypePercentageChangeBetweenAandB AggregationType = "PercentageChangeBetweenAandB"
)

type FundingLineType string

const (
	FundingLineTypePayment     FundingLineType = "Payment"
	FundingLineTypeInformation FundingLineType = "Information"
)

// Calculation is a leaf or intermediate computation. The same TemplateCalculationID may
// appear at several positions of a tree; all occurrences describe one logical calculation.
type Calculation struct {
	Name                         string                        `json:"name"`
	TemplateCalculationID        uint32                        `json:"templateCalculationId"`
	Type                         CalculationType               `json:"type"`
	ValueFormat                  ValueFormat                   `json:"valueFormat"`
	AggregationType              AggregationType               `json:"aggregationType"`
	FormulaText                  string                        `json:"formulaText,omitempty"`
	Value                        decimal.NullDecimal           `json:"value"`
	AllowedEnumTypeValues        []string                      `json:"allowedEnumTypeValues,omitempty"`
	GroupRate                    *GroupRate                    `json:"groupRate,omitempty"`
	PercentageChangeBetweenAandB *PercentageChangeBetweenAandB `json:"percentageChangeBetweenAandB,omitempty"`
	Calculations                 []*Calculation                `json:"calculations,omitempty"`
	ReferenceData                []*ReferenceData              `json:"referenceData,omitempty"`
}

// NewCalculation returns a calculation with the default Sum aggregation.
func NewCalculation() *Calculation {
	return &Calculation{AggregationType: AggregationTypeSum}
}

type FundingLine struct {
	Name                string                `json:"name"`
	TemplateLineID      uint32                `json:"templateLineId"`
	FundingLineCode     string                `json:"fundingLineCode,omitempty"`
	Type                FundingLineType       `json:"type"`
	Value               decimal.NullDecimal   `json:"value"`
	Calculations        []*Calculation        `json:"calculations,omitempty"`
	FundingLines        []*FundingLine        `json:"fundingLines,omitempty"`
	DistributionPeriods []*DistributionPeriod `json:"distributionPeriods,omitempty"`
}

// ReferenceData only exists in v1.0 templates.
type ReferenceData struct {
	TemplateReferenceID uint32              `json:"templateReferenceId"`
	Name                string              `json:"name"`
	Format              ValueFormat         `json:"format"`
	AggregationType     AggregationType     `json:"aggregationType"`
	Value               decimal.NullDecimal `json:"value"`
}

// GroupRate operands are template calculation ids.
type GroupRate struct {
	Numerator   uint32 `json:"numerator"`
	Denominator uint32 `json:"denominator"`
}

type PercentageChangeBetweenAandB struct {
	CalculationA               uint32          `json:"calculationA"`
	CalculationB               uint32          `json:"calculationB"`
	CalculationAggregationType AggregationType `json:"calculationAggregationType"`
}

// DistributionPeriod is produced by profiling and never authored in a template.
type DistributionPeriod struct {
	DistributionPeriodID string              `json:"distributionPeriodId"`
	Value                decimal.NullDecimal `json:"value"`
	ProfilePeriods       []*ProfilePeriod    `json:"profilePeriods,omitempty"`
}

type ProfilePeriod struct {
	Type          string              `json:"type"`
	TypeValue     string              `json:"typeValue"`
	Year          int                 `json:"year"`
	Occurrence    int                 `json:"occurrence"`
	ProfiledValue decimal.NullDecimal `json:"profiledValue"`
}

// Contents is the result of parsing a template document.
type Contents struct {
	SchemaVersion    string         `json:"schemaVersion"`
	FundingStreamID  string         `json:"fundingStreamId,omitempty"`
	FundingPeriodID  string         `json:"fundingPeriodId,omitempty"`
	TemplateVersion  string         `json:"templateVersion,omitempty"`
	RootFundingLines []*FundingLine `json:"rootFundingLines"`
}

// FundingValue is the result of aggregating a tree whose calculations carry values.
type FundingValue struct {
	TotalValue   decimal.NullDecimal `json:"totalValue"`
	FundingLines []*FundingLine      `json:"fundingLines"`
}
