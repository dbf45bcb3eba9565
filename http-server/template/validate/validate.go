package validate

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/SkillsFundingAgency/CalculateFunding-Common-sub002/http-server/request"
	"github.com/SkillsFundingAgency/CalculateFunding-Common-sub002/internal/template/model"
	"github.com/SkillsFundingAgency/CalculateFunding-Common-sub002/internal/template/validation"
)

type TemplateValidator interface {
	Validate(raw string) (*model.Contents, validation.Result)
}

type Response struct {
	Valid           bool                `json:"valid"`
	SchemaVersion   string              `json:"schemaVersion,omitempty"`
	FundingStreamID string              `json:"fundingStreamId,omitempty"`
	FundingPeriodID string              `json:"fundingPeriodId,omitempty"`
	Failures        validation.Failures `json:"failures"`
}

// NewResponse never returns nil failures so clients always receive a list.
func NewResponse(contents *model.Contents, res validation.Result) Response {
	resp := Response{Valid: res.IsValid(), Failures: res.Failures}
	if resp.Failures == nil {
		resp.Failures = validation.Failures{}
	}
	if contents != nil {
		resp.SchemaVersion = contents.SchemaVersion
		resp.FundingStreamID = contents.FundingStreamID
		resp.FundingPeriodID = contents.FundingPeriodID
	}
	return resp
}

// ValidateTemplate answers 200 for every readable body; an invalid template is reported
// through the failures list, not the status code.
func ValidateTemplate(log *slog.Logger, validator TemplateValidator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.template.ValidateTemplate"

		raw, err := request.ReadBody(w, r)
		if err != nil {
			log.With(slog.String("op", op), slog.String("error", err.Error())).Warn("Cannot read template")
			http.Error(w, "Template body is required", http.StatusBadRequest)
			return
		}

		contents, res := validator.Validate(raw)
		if !res.IsValid() {
			log.With(
				slog.String("op", op),
				slog.Int("failures", len(res.Failures)),
			).Info("Template failed validation")
		}

		render.JSON(w, r, NewResponse(contents, res))
	}
}
