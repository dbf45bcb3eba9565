package metadata

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/SkillsFundingAgency/CalculateFunding-Common-sub002/internal/template/model"
	"github.com/SkillsFundingAgency/CalculateFunding-Common-sub002/internal/template/schema"
)

type MockMetadataProvider struct {
	mock.Mock
}

func (m *MockMetadataProvider) Metadata(raw string) (*model.Contents, error) {
	args := m.Called(raw)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Contents), args.Error(1)
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestGetMetadata_Success(t *testing.T) {
	mockProvider := new(MockMetadataProvider)
	contents := &model.Contents{
		SchemaVersion:   "1.1",
		FundingStreamID: "DSG",
		FundingPeriodID: "FY-2122",
		TemplateVersion: "2.0",
		RootFundingLines: []*model.FundingLine{
			{Name: "Total", TemplateLineID: 1, Type: model.FundingLineTypePayment},
		},
	}
	mockProvider.On("Metadata", "raw").Return(contents, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/templates/metadata", strings.NewReader("raw"))
	rr := httptest.NewRecorder()

	GetMetadata(discard(), mockProvider).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp model.Contents
	require.NoError(t, render.DecodeJSON(strings.NewReader(rr.Body.String()), &resp))
	assert.Equal(t, "DSG", resp.FundingStreamID)
	require.Len(t, resp.RootFundingLines, 1)
	assert.Equal(t, "Total", resp.RootFundingLines[0].Name)
}

func TestGetMetadata_ParseError(t *testing.T) {
	mockProvider := new(MockMetadataProvider)
	mockProvider.On("Metadata", "raw").Return(nil, &schema.ParseError{SchemaVersion: "1.2", Err: io.ErrUnexpectedEOF})

	req := httptest.NewRequest(http.MethodPost, "/api/templates/metadata", strings.NewReader("raw"))
	rr := httptest.NewRecorder()

	GetMetadata(discard(), mockProvider).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "unexpected EOF")
}
