package get

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/SkillsFundingAgency/CalculateFunding-Common-sub002/internal/service/templates"
	"github.com/SkillsFundingAgency/CalculateFunding-Common-sub002/internal/storage"
	"github.com/SkillsFundingAgency/CalculateFunding-Common-sub002/internal/template/model"
)

type StoredTemplateProvider interface {
	GetTemplateMetadata(ctx context.Context, key storage.TemplateKey) (*model.Contents, error)
	ValidateStored(ctx context.Context, fundingStreamID, fundingPeriodID string) ([]templates.StoredValidation, error)
}

func GetTemplateMetadata(log *slog.Logger, provider StoredTemplateProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.template.GetTemplateMetadata"

		key := storage.TemplateKey{
			FundingStreamID: chi.URLParam(r, "fundingStreamId"),
			FundingPeriodID: chi.URLParam(r, "fundingPeriodId"),
			TemplateVersion: chi.URLParam(r, "templateVersion"),
		}
		if key.FundingStreamID == "" || key.FundingPeriodID == "" || key.TemplateVersion == "" {
			log.With(slog.String("op", op)).Error("Missing template key in path")
			http.Error(w, "Funding stream, funding period and template version are required", http.StatusBadRequest)
			return
		}

		log := log.With(
			slog.String("op", op),
			slog.String("funding_stream", key.FundingStreamID),
			slog.String("funding_period", key.FundingPeriodID),
			slog.String("template_version", key.TemplateVersion),
		)

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		contents, err := provider.GetTemplateMetadata(ctx, key)
		if err != nil {
			if errors.Is(err, storage.ErrTemplateNotFound) {
				log.Warn("Template not found")
				http.Error(w, "Template not found", http.StatusNotFound)
				return
			}

			log.With(slog.String("error", err.Error())).Error("Failed to fetch template")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, contents)
	}
}

type ResponseValidateStored struct {
	FundingStreamID string                       `json:"fundingStreamId"`
	FundingPeriodID string                       `json:"fundingPeriodId"`
	Templates       []templates.StoredValidation `json:"templates"`
}

// ValidateStoredTemplates re-validates every stored template version of a funding
// stream and period.
func ValidateStoredTemplates(log *slog.Logger, provider StoredTemplateProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.template.ValidateStoredTemplates"

		streamID := chi.URLParam(r, "fundingStreamId")
		periodID := chi.URLParam(r, "fundingPeriodId")
		if streamID == "" || periodID == "" {
			log.With(slog.String("op", op)).Error("Missing funding stream or period in path")
			http.Error(w, "Funding stream and funding period are required", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
		defer cancel()

		results, err := provider.ValidateStored(ctx, streamID, periodID)
		if err != nil {
			log.With(slog.String("op", op), slog.String("error", err.Error())).Error("Failed to validate stored templates")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
		if results == nil {
			results = []templates.StoredValidation{}
		}

		render.JSON(w, r, ResponseValidateStored{
			FundingStreamID: streamID,
			FundingPeriodID: periodID,
			Templates:       results,
		})
	}
}
