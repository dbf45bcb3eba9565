package metadata

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/SkillsFundingAgency/CalculateFunding-Common-sub002/http-server/request"
	"github.com/SkillsFundingAgency/CalculateFunding-Common-sub002/internal/template/model"
)

type MetadataProvider interface {
	Metadata(raw string) (*model.Contents, error)
}

// GetMetadata parses the posted template into its canonical contents.
func GetMetadata(log *slog.Logger, provider MetadataProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.template.GetMetadata"

		raw, err := request.ReadBody(w, r)
		if err != nil {
			log.With(slog.String("op", op), slog.String("error", err.Error())).Warn("Cannot read template")
			http.Error(w, "Template body is required", http.StatusBadRequest)
			return
		}

		contents, err := provider.Metadata(raw)
		if err != nil {
			log.With(slog.String("op", op), slog.String("error", err.Error())).Warn("Cannot parse template")
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		render.JSON(w, r, contents)
	}
}
