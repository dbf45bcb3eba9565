package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SkillsFundingAgency/CalculateFunding-Common-sub002/internal/config"
	generate_excel "github.com/SkillsFundingAgency/CalculateFunding-Common-sub002/internal/service/generate-excel"
	"github.com/SkillsFundingAgency/CalculateFunding-Common-sub002/internal/service/templates"
	"github.com/SkillsFundingAgency/CalculateFunding-Common-sub002/internal/storage/mysql"
	"github.com/SkillsFundingAgency/CalculateFunding-Common-sub002/internal/template/schema"
	"github.com/SkillsFundingAgency/CalculateFunding-Common-sub002/internal/template/schema10"
	"github.com/SkillsFundingAgency/CalculateFunding-Common-sub002/internal/template/schema11"
	"github.com/SkillsFundingAgency/CalculateFunding-Common-sub002/internal/template/schema12"
)

func main() {
	cfg := config.MustConfig()

	log := setupLogger(cfg.Env)

	storage, err := mysql.New(*cfg)
	if err != nil {
		log.Error("failed to open db", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer storage.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := storage.Migrate(ctx); err != nil {
		log.Error("failed to migrate db", slog.String("error", err.Error()))
		os.Exit(1)
	}

	resolver := newResolver(log)
	templateService := templates.NewService(log, storage, resolver,
		templates.WithValidationWorkers(cfg.Funding.ValidationWorkers),
		templates.WithDecimalPlaces(cfg.Funding.DecimalPlaces),
	)
	excelService := generate_excel.NewGenerateService(log, templateService)

	srv := &http.Server{
		Addr:         cfg.Address,
		Handler:      routes(*cfg, log, templateService, excelService),
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	go func() {
		log.Info("server started",
			slog.String("address", cfg.Address),
			slog.Any("schema_versions", resolver.Versions()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("failed start server", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("failed to stop server", slog.String("error", err.Error()))
	}

	log.Info("server stopped")
}

func newResolver(log *slog.Logger) *schema.Resolver {
	return schema.NewResolver(log,
		schema10.New(log),
		schema11.New(log),
		schema12.New(log),
	)
}
