package save

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"github.com/SkillsFundingAgency/CalculateFunding-Common-sub002/http-server/request"
	"github.com/SkillsFundingAgency/CalculateFunding-Common-sub002/internal/service/templates"
	"github.com/SkillsFundingAgency/CalculateFunding-Common-sub002/internal/storage"
	"github.com/SkillsFundingAgency/CalculateFunding-Common-sub002/internal/template/validation"
)

type TemplateSaver interface {
	SaveTemplate(ctx context.Context, raw string) (*storage.Template, validation.Result, error)
}

type Response struct {
	Status   string              `json:"status"`
	Template *storage.Template   `json:"template,omitempty"`
	Failures validation.Failures `json:"failures,omitempty"`
}

// SaveTemplateAdmin validates the posted template and stores it. Invalid templates are
// answered with 400 and their failures.
func SaveTemplateAdmin(log *slog.Logger, saver TemplateSaver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.template.SaveTemplateAdmin"

		raw, err := request.ReadBody(w, r)
		if err != nil {
			log.With(slog.String("op", op), slog.String("error", err.Error())).Warn("Cannot read template")
			http.Error(w, "Template body is required", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		saved, res, err := saver.SaveTemplate(ctx, raw)
		switch {
		case errors.Is(err, templates.ErrInvalidTemplate):
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, Response{Status: "invalid", Failures: res.Failures})
			return
		case errors.Is(err, storage.ErrTemplateExists):
			log.With(slog.String("op", op)).Warn("Template version already stored")
			http.Error(w, "Template version already exists", http.StatusConflict)
			return
		case err != nil:
			log.With(slog.String("op", op), slog.String("error", err.Error())).Error("Failed to save template")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		saved.Content = ""
		render.Status(r, http.StatusCreated)
		render.JSON(w, r, Response{Status: "created", Template: saved})
	}
}
