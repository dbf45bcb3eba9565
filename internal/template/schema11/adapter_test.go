package schema11

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SkillsFundingAgency/CalculateFunding-Common-sub002/internal/template/model"
	"github.com/SkillsFundingAgency/CalculateFunding-Common-sub002/internal/template/schema"
	"github.com/SkillsFundingAgency/CalculateFunding-Common-sub002/internal/template/validation"
)

func newTestAdapter() *Adapter {
	return New(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestParse_Template(t *testing.T) {
	raw, err := os.ReadFile("testdata/template.json")
	require.NoError(t, err)

	contents, err := newTestAdapter().Parse(string(raw))
	require.NoError(t, err)

	assert.Equal(t, "1.1", contents.SchemaVersion)
	assert.Equal(t, "DSG", contents.FundingStreamID)
	assert.Equal(t, "FY-2021", contents.FundingPeriodID)
	assert.Equal(t, "1.1", contents.TemplateVersion)

	require.Len(t, contents.RootFundingLines, 1)
	line := contents.RootFundingLines[0]
	assert.Equal(t, "DSG-001", line.FundingLineCode)
	require.Len(t, line.Calculations, 1)

	children := line.Calculations[0].Calculations
	require.Len(t, children, 2)
	assert.Equal(t, model.CalculationTypeBoolean, children[0].Type)
	assert.Equal(t, model.ValueFormatBoolean, children[0].ValueFormat)
	assert.Equal(t, model.AggregationTypeNone, children[0].AggregationType)
	assert.Equal(t, model.CalculationTypeEnum, children[1].Type)
	assert.Equal(t, model.ValueFormatString, children[1].ValueFormat)
	assert.Nil(t, children[1].AllowedEnumTypeValues)

	assert.True(t, validation.ValidateContents(contents).IsValid())
}

func TestParse_V10RootIsRejected(t *testing.T) {
	raw := `{"$schema": "x", "schemaVersion": "1.1", "fundingTemplate": {"fundingLines": []}}`

	_, err := newTestAdapter().Parse(raw)

	var parseErr *schema.ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Contains(t, err.Error(), "'fundingStreamTemplate'")
}

func TestParse_GroupRateNotKnownInV11(t *testing.T) {
	raw := `{"$schema": "x", "fundingStreamTemplate": {"fundingLines": [{"name": "A", "templateLineId": 1, "type": "payment",
		"calculations": [{"name": "B", "templateCalculationId": 2, "type": "Rate", "valueFormat": "Number", "aggregationType": "GroupRate"}]}]}}`

	_, err := newTestAdapter().Parse(raw)

	var mappingErr *schema.MappingError
	require.True(t, errors.As(err, &mappingErr))
	assert.Equal(t, "aggregation type", mappingErr.Field)
	assert.Equal(t, "GroupRate", mappingErr.Value)
}
