// Package validation checks that every occurrence of a template calculation or funding
// line id describes the same logical entity, and that templates carry no output-only data.
package validation

import (
	"fmt"
	"slices"
	"strings"

	"github.com/SkillsFundingAgency/CalculateFunding-Common-sub002/internal/constants"
	"github.com/SkillsFundingAgency/CalculateFunding-Common-sub002/internal/template/model"
)

type Failure struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Failures is an error wrapping one or more validation failures.
type Failures []Failure

func (f Failures) Error() string {
	switch len(f) {
	case 0:
		return "no validation failures"
	case 1:
		return fmt.Sprintf("%s: %s", f[0].Field, f[0].Message)
	default:
		return fmt.Sprintf("%s: %s (and %d more)", f[0].Field, f[0].Message, len(f)-1)
	}
}

type Result struct {
	Failures Failures `json:"failures"`
}

func (r Result) IsValid() bool { return len(r.Failures) == 0 }

// Err returns nil for a valid result and the failures otherwise.
func (r Result) Err() error {
	if r.IsValid() {
		return nil
	}
	return r.Failures
}

type Option func(*validator)

// RequireEnumValues makes Enum calculations without allowed values a failure.
func RequireEnumValues() Option {
	return func(v *validator) { v.requireEnumValues = true }
}

// Validate walks the tree once and reports every problem found. It keeps no state
// between calls.
func Validate(lines []*model.FundingLine, opts ...Option) Result {
	if lines == nil {
		return Result{Failures: Failures{{Field: "template", Message: "template has no funding lines to validate"}}}
	}

	v := &validator{
		calculationsByID:     make(map[uint32]*model.Calculation),
		fundingLinesByID:     make(map[uint32]*model.FundingLine),
		calculationIDsByName: make(map[string]uint32),
		fundingLineIDsByName: make(map[string]uint32),
	}
	for _, opt := range opts {
		opt(v)
	}

	for _, fl := range lines {
		v.fundingLine(fl)
	}
	v.operandReferences()

	return Result{Failures: v.failures}
}

// ValidateContents validates a parsed template, applying the rules its schema version supports.
func ValidateContents(contents *model.Contents) Result {
	if contents == nil {
		return Result{Failures: Failures{{Field: "template", Message: "template contents are missing"}}}
	}
	var opts []Option
	if constants.EnumValuesRequired[contents.SchemaVersion] {
		opts = append(opts, RequireEnumValues())
	}
	return Validate(contents.RootFundingLines, opts...)
}

type operandRef struct {
	owner *model.Calculation
	field string
	id    uint32
}

type validator struct {
	requireEnumValues bool

	calculationsByID     map[uint32]*model.Calculation
	fundingLinesByID     map[uint32]*model.FundingLine
	calculationIDsByName map[string]uint32
	fundingLineIDsByName map[string]uint32

	operands []operandRef
	failures Failures
}

func (v *validator) fail(field, format string, args ...any) {
	v.failures = append(v.failures, Failure{Field: field, Message: fmt.Sprintf(format, args...)})
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func (v *validator) fundingLine(fl *model.FundingLine) {
	if fl == nil {
		return
	}

	first, seen := v.fundingLinesByID[fl.TemplateLineID]
	if !seen {
		v.fundingLinesByID[fl.TemplateLineID] = fl
		v.fundingLineName(fl)
	} else {
		v.compareFundingLines(first, fl)
	}

	if len(fl.DistributionPeriods) > 0 {
		v.fail("DistributionPeriods",
			"funding line '%s' (id %d) has distribution periods; they are produced by profiling and must not be present in a template",
			fl.Name, fl.TemplateLineID)
	}

	for _, c := range fl.Calculations {
		v.calculation(c)
	}
	for _, child := range fl.FundingLines {
		v.fundingLine(child)
	}
}

func (v *validator) fundingLineName(fl *model.FundingLine) {
	name := normalizeName(fl.Name)
	id, ok := v.fundingLineIDsByName[name]
	if !ok {
		v.fundingLineIDsByName[name] = fl.TemplateLineID
		return
	}
	if id != fl.TemplateLineID {
		v.fail("Name", "funding line name '%s' is used by template line ids %d and %d",
			fl.Name, id, fl.TemplateLineID)
	}
}

func (v *validator) compareFundingLines(first, fl *model.FundingLine) {
	id := fl.TemplateLineID
	if normalizeName(first.Name) != normalizeName(fl.Name) {
		v.fail("Name", "funding line id %d has Name '%s' but another occurrence has Name '%s'", id, fl.Name, first.Name)
	}
	if first.Type != fl.Type {
		v.fail("Type", "funding line id %d has Type '%s' but another occurrence has Type '%s'", id, fl.Type, first.Type)
	}
	if first.FundingLineCode != fl.FundingLineCode {
		v.fail("FundingLineCode", "funding line id %d has FundingLineCode '%s' but another occurrence has FundingLineCode '%s'",
			id, fl.FundingLineCode, first.FundingLineCode)
	}

	if want, got := model.FundingLineIDs(first.FundingLines), model.FundingLineIDs(fl.FundingLines); !slices.Equal(want, got) {
		v.fail("FundingLines", "funding line id %d has child funding lines %v but another occurrence has %v", id, got, want)
	}
	if want, got := model.CalculationIDs(first.Calculations), model.CalculationIDs(fl.Calculations); !slices.Equal(want, got) {
		v.fail("Calculations", "funding line id %d has child calculations %v but another occurrence has %v", id, got, want)
	}
}

func (v *validator) calculation(c *model.Calculation) {
	if c == nil {
		return
	}

	first, seen := v.calculationsByID[c.TemplateCalculationID]
	if !seen {
		v.calculationsByID[c.TemplateCalculationID] = c
		v.calculationName(c)
		v.calculationRules(c)
	} else {
		v.compareCalculations(first, c)
	}

	for _, child := range c.Calculations {
		v.calculation(child)
	}
}

func (v *validator) calculationName(c *model.Calculation) {
	name := normalizeName(c.Name)
	id, ok := v.calculationIDsByName[name]
	if !ok {
		v.calculationIDsByName[name] = c.TemplateCalculationID
		return
	}
	if id != c.TemplateCalculationID {
		v.fail("Name", "calculation name '%s' is used by template calculation ids %d and %d",
			c.Name, id, c.TemplateCalculationID)
	}
}

func (v *validator) compareCalculations(first, c *model.Calculation) {
	id := c.TemplateCalculationID
	if normalizeName(first.Name) != normalizeName(c.Name) {
		v.fail("Name", "calculation id %d has Name '%s' but another occurrence has Name '%s'", id, c.Name, first.Name)
	}
	if first.Type != c.Type {
		v.fail("Type", "calculation id %d has Type '%s' but another occurrence has Type '%s'", id, c.Type, first.Type)
	}
	if first.AggregationType != c.AggregationType {
		v.fail("AggregationType", "calculation id %d has AggregationType '%s' but another occurrence has AggregationType '%s'",
			id, c.AggregationType, first.AggregationType)
	}
	if first.ValueFormat != c.ValueFormat {
		v.fail("ValueFormat", "calculation id %d has ValueFormat '%s' but another occurrence has ValueFormat '%s'",
			id, c.ValueFormat, first.ValueFormat)
	}
	if first.FormulaText != c.FormulaText {
		v.fail("FormulaText", "calculation id %d has FormulaText '%s' but another occurrence has FormulaText '%s'",
			id, c.FormulaText, first.FormulaText)
	}

	if want, got := model.CalculationIDs(first.Calculations), model.CalculationIDs(c.Calculations); !slices.Equal(want, got) {
		v.fail("Calculations", "calculation id %d has child calculations %v but another occurrence has %v", id, got, want)
	}
}

// calculationRules checks per-calculation constraints that only need the first occurrence.
func (v *validator) calculationRules(c *model.Calculation) {
	id := c.TemplateCalculationID

	if v.requireEnumValues && c.Type == model.CalculationTypeEnum && len(c.AllowedEnumTypeValues) == 0 {
		v.fail("AllowedEnumTypeValues", "calculation id %d is of type Enum but declares no allowed enum values", id)
	}

	switch c.AggregationType {
	case model.AggregationTypeGroupRate:
		if c.GroupRate == nil {
			v.fail("GroupRate", "calculation id %d aggregates by GroupRate but has no group rate operands", id)
			break
		}
		v.operands = append(v.operands,
			operandRef{owner: c, field: "GroupRate", id: c.GroupRate.Numerator},
			operandRef{owner: c, field: "GroupRate", id: c.GroupRate.Denominator})
	case model.AggregationTypePercentageChangeBetweenAandB:
		if c.PercentageChangeBetweenAandB == nil {
			v.fail("PercentageChangeBetweenAandB",
				"calculation id %d aggregates by PercentageChangeBetweenAandB but has no operands", id)
			break
		}
		v.operands = append(v.operands,
			operandRef{owner: c, field: "PercentageChangeBetweenAandB", id: c.PercentageChangeBetweenAandB.CalculationA},
			operandRef{owner: c, field: "PercentageChangeBetweenAandB", id: c.PercentageChangeBetweenAandB.CalculationB})
	}
}

// operandReferences runs after the walk, once every calculation id is known.
func (v *validator) operandReferences() {
	for _, ref := range v.operands {
		if _, ok := v.calculationsByID[ref.id]; !ok {
			v.fail(ref.field, "calculation id %d references calculation id %d which is not in the template",
				ref.owner.TemplateCalculationID, ref.id)
		}
	}
}
