package generate

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/SkillsFundingAgency/CalculateFunding-Common-sub002/internal/template/model"
)

type MockFundingValueGenerator struct {
	mock.Mock
}

func (m *MockFundingValueGenerator) FundingValues(raw string, values map[uint32]decimal.Decimal, decimalPlaces *uint8) (*model.FundingValue, error) {
	args := m.Called(raw, values, decimalPlaces)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.FundingValue), args.Error(1)
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDecodeRequest(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		wantTemplate string
	}{
		{
			name:         "embedded document",
			body:         `{"template": {"schemaVersion": "1.2"}, "calculationValues": {"1": 10.5}}`,
			wantTemplate: `{"schemaVersion": "1.2"}`,
		},
		{
			name:         "string document",
			body:         `{"template": "{\"schemaVersion\": \"1.2\"}", "calculationValues": {"1": "10.5"}}`,
			wantTemplate: `{"schemaVersion": "1.2"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/funding-values", strings.NewReader(tt.body))

			in, err := DecodeRequest(httptest.NewRecorder(), req)

			require.NoError(t, err)
			assert.Equal(t, tt.wantTemplate, in.Template)
			require.Contains(t, in.Values, uint32(1))
			assert.True(t, decimal.RequireFromString("10.5").Equal(in.Values[1]))
			assert.Nil(t, in.DecimalPlaces)
		})
	}
}

func TestDecodeRequest_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "not json", body: `template`},
		{name: "no template", body: `{"calculationValues": {}}`},
		{name: "null template", body: `{"template": null}`},
		{name: "bad id", body: `{"template": {}, "calculationValues": {"abc": 1}}`},
		{name: "negative places", body: `{"template": {}, "decimalPlaces": -1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/funding-values", strings.NewReader(tt.body))

			_, err := DecodeRequest(httptest.NewRecorder(), req)

			assert.Error(t, err)
		})
	}
}

func TestGenerateFundingValues_Success(t *testing.T) {
	mockGenerator := new(MockFundingValueGenerator)
	places := uint8(0)
	mockGenerator.On("FundingValues", `{"schemaVersion": "1.2"}`, mock.MatchedBy(func(v map[uint32]decimal.Decimal) bool {
		return len(v) == 1 && v[7].Equal(decimal.NewFromInt(100))
	}), &places).
		Return(&model.FundingValue{
			TotalValue: decimal.NewNullDecimal(decimal.NewFromInt(100)),
			FundingLines: []*model.FundingLine{
				{Name: "Total", TemplateLineID: 1, Type: model.FundingLineTypePayment, Value: decimal.NewNullDecimal(decimal.NewFromInt(100))},
			},
		}, nil)

	body := `{"template": {"schemaVersion": "1.2"}, "calculationValues": {"7": 100}, "decimalPlaces": 0}`
	req := httptest.NewRequest(http.MethodPost, "/api/funding-values", strings.NewReader(body))
	rr := httptest.NewRecorder()

	GenerateFundingValues(discard(), mockGenerator).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"totalValue": "100", "fundingLines": [
		{"name": "Total", "templateLineId": 1, "type": "Payment", "value": "100"}
	]}`, rr.Body.String())
	mockGenerator.AssertExpectations(t)
}

func TestGenerateFundingValues_GeneratorError(t *testing.T) {
	mockGenerator := new(MockFundingValueGenerator)
	mockGenerator.On("FundingValues", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("unable to parse template"))

	req := httptest.NewRequest(http.MethodPost, "/api/funding-values", strings.NewReader(`{"template": {}}`))
	rr := httptest.NewRecorder()

	GenerateFundingValues(discard(), mockGenerator).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "unable to parse template")
}
