package main

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"github.com/SkillsFundingAgency/CalculateFunding-Common-sub002/http-server/funding-values/generate"
	excelreport "github.com/SkillsFundingAgency/CalculateFunding-Common-sub002/http-server/generate-report/generate-excel"
	gettemplate "github.com/SkillsFundingAgency/CalculateFunding-Common-sub002/http-server/template/get"
	"github.com/SkillsFundingAgency/CalculateFunding-Common-sub002/http-server/template/metadata"
	savetemplate "github.com/SkillsFundingAgency/CalculateFunding-Common-sub002/http-server/template/save"
	"github.com/SkillsFundingAgency/CalculateFunding-Common-sub002/http-server/template/validate"
	"github.com/SkillsFundingAgency/CalculateFunding-Common-sub002/internal/config"
	"github.com/SkillsFundingAgency/CalculateFunding-Common-sub002/internal/middleware/auth"
	generate_excel "github.com/SkillsFundingAgency/CalculateFunding-Common-sub002/internal/service/generate-excel"
	"github.com/SkillsFundingAgency/CalculateFunding-Common-sub002/internal/service/templates"
)

func routes(cfg config.Config, log *slog.Logger, service *templates.Service, genService *generate_excel.GenerateExcelService) *chi.Mux {
	router := chi.NewRouter()

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	router.Use(corsHandler.Handler)
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Heartbeat("/ping"))

	router.Route("/api/templates", func(r chi.Router) {
		r.Post("/validate", validate.ValidateTemplate(log, service))
		r.Post("/metadata", metadata.GetMetadata(log, service))
		r.Get("/{fundingStreamId}/{fundingPeriodId}/validate", gettemplate.ValidateStoredTemplates(log, service))
		r.Get("/{fundingStreamId}/{fundingPeriodId}/{templateVersion}", gettemplate.GetTemplateMetadata(log, service))
	})

	router.Post("/api/funding-values", generate.GenerateFundingValues(log, service))
	router.Post("/api/report/excel", excelreport.GenerateReportExcel(log, genService))

	adminRouter := chi.NewRouter()
	adminRouter.Use(auth.BasicAuth(cfg.AdminLogin, cfg.AdminPass))
	adminRouter.Post("/templates", savetemplate.SaveTemplateAdmin(log, service))

	router.Mount("/api/admin", adminRouter)

	return router
}
