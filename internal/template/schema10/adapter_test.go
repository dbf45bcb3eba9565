package schema10

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
)

func newTestAdapter() *Adapter {
	return New(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func readTemplate(t *testing.T) string {
	t.Helper()
	b, err := os.ReadFile("testdata/template.json")
	require.NoError(t, err)
	return string(b)
}

func TestParse_Template(t *testing.T) {
	contents, err := newTestAdapter().Parse(readTemplate(t))
	require.NoError(t, err)

	assert.Equal(t, "1.0", contents.SchemaVersion)
	assert.Equal(t, "PSG", contents.FundingStreamID)
	assert.Equal(t, "AY-1920", contents.FundingPeriodID)
	assert.Equal(t, "1.0", contents.TemplateVersion)
	require.Len(t, contents.RootFundingLines, 1)

	root := contents.RootFundingLines[0]
	assert.Equal(t, "TotalAllocation", root.FundingLineCode)
	assert.Equal(t, model.FundingLineTypePayment, root.Type)
	require.Len(t, root.FundingLines, 1)
	assert.Equal(t, "", root.FundingLines[0].FundingLineCode)
	assert.Equal(t, model.FundingLineTypeInformation, root.FundingLines[0].Type)

	require.Len(t, root.Calculations, 1)
	total := root.Calculations[0]
	assert.Equal(t, model.CalculationTypeCash, total.Type)
	assert.Equal(t, model.ValueFormatCurrency, total.ValueFormat)
	assert.Equal(t, "Lump Sum + Per Pupil", total.FormulaText)
	assert.False(t, total.Value.Valid, "template values must not be carried into the tree")

	require.Len(t, total.Calculations, 2)
	pupils := total.Calculations[0]
	require.Len(t, pupils.ReferenceData, 1)
	assert.Equal(t, uint32(1), pupils.ReferenceData[0].TemplateReferenceID)
	assert.Equal(t, model.ValueFormatNumber, pupils.ReferenceData[0].Format)

	rate := total.Calculations[1]
	assert.Equal(t, model.CalculationTypeRate, rate.Type)
	assert.Equal(t, model.ValueFormatCurrency, rate.ValueFormat)
	assert.Equal(t, model.AggregationTypeSum, rate.AggregationType)
}

func TestParse_Failures(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantMsg string
		mapping bool
	}{
		{
			name:    "malformed json",
			raw:     `{"$schema": `,
			wantMsg: "unexpected end of JSON input",
		},
		{
			name:    "missing schema",
			raw:     `{"schemaVersion": "1.0", "fundingTemplate": {"fundingLines": []}}`,
			wantMsg: "'$schema'",
		},
		{
			name:    "missing root",
			raw:     `{"$schema": "x", "schemaVersion": "1.0"}`,
			wantMsg: "'fundingTemplate'",
		},
		{
			name: "calculation type from a later schema",
			raw: `{"$schema": "x", "fundingTemplate": {"fundingLines": [{"name": "A", "templateLineId": 1, "type": "Payment",
				"calculations": [{"name": "B", "templateCalculationId": 2, "type": "Boolean", "valueFormat": "Boolean"}]}]}}`,
			wantMsg: `calculation type value "Boolean"`,
			mapping: true,
		},
		{
			name:    "unknown funding line type",
			raw:     `{"$schema": "x", "fundingTemplate": {"fundingLines": [{"name": "A", "templateLineId": 1, "type": "Profiled"}]}}`,
			wantMsg: `funding line type value "Profiled"`,
			mapping: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			contents, err := newTestAdapter().Parse(tt.raw)

			assert.Nil(t, contents)
			var parseErr *schema.ParseError
			require.True(t, errors.As(err, &parseErr))
			assert.Equal(t, "1.0", parseErr.SchemaVersion)
			assert.Contains(t, err.Error(), tt.wantMsg)

			var mappingErr *schema.MappingError
			assert.Equal(t, tt.mapping, errors.As(err, &mappingErr))
		})
	}
}
