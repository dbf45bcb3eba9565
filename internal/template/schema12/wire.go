package schema12

import "github.com/shopspring/decimal"

type schemaJSON struct {
	Schema          *string          `json:"$schema"`
	SchemaVersion   string           `json:"schemaVersion"`
	FundingTemplate *fundingTemplate `json:"fundingTemplate"`
}

type fundingTemplate struct {
	FundingStream   *fundingStream `json:"fundingStream"`
	FundingPeriod   *fundingPeriod `json:"fundingPeriod"`
	FundingVersion  string         `json:"fundingVersion"`
	TemplateVersion string         `json:"templateVersion"`
	FundingLines    []*fundingLine `json:"fundingLines"`
}

type fundingStream struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type fundingPeriod struct {
	ID        string `json:"id"`
	Period    string `json:"period"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

type fundingLine struct {
	Name                string                `json:"name"`
	TemplateLineID      uint32                `json:"templateLineId"`
	FundingLineCode     *string               `json:"fundingLineCode"`
	Type                string                `json:"type"`
	Calculations        []*calculation        `json:"calculations"`
	FundingLines        []*fundingLine        `json:"fundingLines"`
	DistributionPeriods []*distributionPeriod `json:"distributionPeriods"`
}

type calculation struct {
	Name                         string                        `json:"name"`
	TemplateCalculationID        uint32                        `json:"templateCalculationId"`
	Type                         string                        `json:"type"`
	ValueFormat                  string                        `json:"valueFormat"`
	AggregationType              string                        `json:"aggregationType"`
	FormulaText                  string                        `json:"formulaText"`
	AllowedEnumTypeValues        []string                      `json:"allowedEnumTypeValues"`
	GroupRate                    *groupRate                    `json:"groupRate"`
	PercentageChangeBetweenAandB *percentageChangeBetweenAandB `json:"percentageChangeBetweenAandB"`
	Calculations                 []*calculation                `json:"calculations"`
}

type groupRate struct {
	Numerator   uint32 `json:"numerator"`
	Denominator uint32 `json:"denominator"`
}

type percentageChangeBetweenAandB struct {
	CalculationA               uint32 `json:"calculationA"`
	CalculationB               uint32 `json:"calculationB"`
	CalculationAggregationType string `json:"calculationAggregationType"`
}

type distributionPeriod struct {
	DistributionPeriodID string              `json:"distributionPeriodId"`
	Value                decimal.NullDecimal `json:"value"`
	ProfilePeriods       []*profilePeriod    `json:"profilePeriods"`
}

type profilePeriod struct {
	Type          string              `json:"type"`
	TypeValue     string              `json:"typeValue"`
	Year          int                 `json:"year"`
	Occurrence    int                 `json:"occurrence"`
	ProfiledValue decimal.NullDecimal `json:"profiledValue"`
}
