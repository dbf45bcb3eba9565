package schema_test

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SkillsFundingAgency/CalculateFunding-Common-sub002/internal/template/model"
	"github.com/SkillsFundingAgency/CalculateFunding-Common-sub002/internal/template/schema"
	"github.com/SkillsFundingAgency/CalculateFunding-Common-sub002/internal/template/schema10"
	"github.com/SkillsFundingAgency/CalculateFunding-Common-sub002/internal/template/schema11"
	"github.com/SkillsFundingAgency/CalculateFunding-Common-sub002/internal/template/schema12"
)

func newResolver() *schema.Resolver {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return schema.NewResolver(log, schema10.New(log), schema11.New(log), schema12.New(log))
}

func TestResolver_Versions(t *testing.T) {
	assert.Equal(t, []string{"1.0", "1.1", "1.2"}, newResolver().Versions())
}

func TestResolver_RoutesBySchemaVersion(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "v1.0",
			raw:  `{"$schema": "x", "schemaVersion": "1.0", "fundingTemplate": {"fundingLines": []}}`,
			want: "1.0",
		},
		{
			name: "v1.1",
			raw:  `{"$schema": "x", "schemaVersion": "1.1", "fundingStreamTemplate": {"fundingLines": []}}`,
			want: "1.1",
		},
		{
			name: "v1.2 with padding",
			raw:  `{"$schema": "x", "schemaVersion": " 1.2 ", "fundingTemplate": {"fundingLines": []}}`,
			want: "1.2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			contents, err := newResolver().Parse(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, contents.SchemaVersion)
			assert.Empty(t, contents.RootFundingLines)
		})
	}
}

func TestResolver_Failures(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantMsg string
	}{
		{name: "not json", raw: `not json`, wantMsg: "invalid character"},
		{name: "no version", raw: `{"$schema": "x"}`, wantMsg: "'schemaVersion'"},
		{name: "unknown version", raw: `{"schemaVersion": "2.0"}`, wantMsg: `"2.0"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newResolver().Parse(tt.raw)

			var parseErr *schema.ParseError
			require.True(t, errors.As(err, &parseErr))
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}

	_, err := newResolver().Parse(`{"schemaVersion": "2.0"}`)
	assert.ErrorIs(t, err, schema.ErrUnknownSchemaVersion)
}

func TestTable_CaseInsensitive(t *testing.T) {
	table := schema.NewTable("funding line type", map[string]model.FundingLineType{
		"Payment": model.FundingLineTypePayment,
	})

	got, err := table.Map(" PAYMENT ")
	require.NoError(t, err)
	assert.Equal(t, model.FundingLineTypePayment, got)

	got, err = table.MapOr("", model.FundingLineTypeInformation)
	require.NoError(t, err)
	assert.Equal(t, model.FundingLineTypeInformation, got)

	_, err = table.Map("Payments")
	var mappingErr *schema.MappingError
	require.True(t, errors.As(err, &mappingErr))
	assert.Equal(t, "Payments", mappingErr.Value)
}

func TestEnumValues(t *testing.T) {
	assert.Nil(t, schema.EnumValues(nil))
	assert.Nil(t, schema.EnumValues([]string{}))
	assert.Equal(t, []string{"A"}, schema.EnumValues([]string{"A"}))
}
