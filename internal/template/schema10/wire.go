package schema10

import "github.com/shopspring/decimal"

// Wire shapes of a v1.0 template document.

type schemaJSON struct {
	Schema          *string          `json:"$schema"`
	SchemaVersion   string           `json:"schemaVersion"`
	FundingTemplate *fundingTemplate `json:"fundingTemplate"`
}

type fundingTemplate struct {
	FundingStream   *fundingStream `json:"fundingStream"`
	FundingPeriod   *fundingPeriod `json:"fundingPeriod"`
	TemplateVersion string         `json:"templateVersion"`
	FundingLines    []*fundingLine `json:"fundingLines"`
}

type fundingStream struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type fundingPeriod struct {
	ID     string `json:"id"`
	Period string `json:"period"`
	Name   string `json:"name"`
	Type   string `json:"type"`
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
	Name                  string           `json:"name"`
	TemplateCalculationID uint32           `json:"templateCalculationId"`
	Type                  string           `json:"type"`
	ValueFormat           string           `json:"valueFormat"`
	AggregationType       string           `json:"aggregationType"`
	FormulaText           string           `json:"formulaText"`
	Calculations          []*calculation   `json:"calculations"`
	ReferenceData         []*referenceData `json:"referenceData"`
}

type referenceData struct {
	TemplateReferenceID uint32 `json:"templateReferenceId"`
	Name                string `json:"name"`
	Format              string `json:"format"`
	AggregationType     string `json:"aggregationType"`
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
