package templates

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/SkillsFundingAgency/CalculateFunding-Common-sub002/internal/storage"
	"github.com/SkillsFundingAgency/CalculateFunding-Common-sub002/internal/template/fundingvalue"
	"github.com/SkillsFundingAgency/CalculateFunding-Common-sub002/internal/template/model"
	"github.com/SkillsFundingAgency/CalculateFunding-Common-sub002/internal/template/validation"
)

var ErrInvalidTemplate = errors.New("template failed validation")

type TemplateStorage interface {
	SaveTemplate(ctx context.Context, tmpl storage.Template) (int64, error)
	GetTemplate(ctx context.Context, key storage.TemplateKey) (*storage.Template, error)
	GetTemplates(ctx context.Context, fundingStreamID, fundingPeriodID string) ([]*storage.Template, error)
}

// Parser turns a raw template of any supported schema version into the canonical tree.
type Parser interface {
	Parse(raw string) (*model.Contents, error)
}

type Service struct {
	log           *slog.Logger
	storage       TemplateStorage
	parser        Parser
	workers       int
	decimalPlaces uint8
}

type Option func(*Service)

func WithValidationWorkers(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.workers = n
		}
	}
}

func WithDecimalPlaces(places uint8) Option {
	return func(s *Service) { s.decimalPlaces = places }
}

func NewService(log *slog.Logger, storage TemplateStorage, parser Parser, opts ...Option) *Service {
	s := &Service{
		log:           log,
		storage:       storage,
		parser:        parser,
		workers:       4,
		decimalPlaces: fundingvalue.DefaultDecimalPlaces,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Metadata parses raw into its canonical contents.
func (s *Service) Metadata(raw string) (*model.Contents, error) {
	return s.parser.Parse(raw)
}

// Validate parses and structurally validates raw. A document that cannot be parsed
// is reported as a single failure on the "template" field.
func (s *Service) Validate(raw string) (*model.Contents, validation.Result) {
	contents, err := s.parser.Parse(raw)
	if err != nil {
		return nil, validation.Result{Failures: validation.Failures{{Field: "template", Message: err.Error()}}}
	}
	return contents, validation.ValidateContents(contents)
}

// SaveTemplate validates raw and stores it under the funding stream, period and
// template version it declares.
func (s *Service) SaveTemplate(ctx context.Context, raw string) (*storage.Template, validation.Result, error) {
	const op = "service.templates.SaveTemplate"

	contents, res := s.Validate(raw)
	if contents != nil {
		res.Failures = append(res.Failures, keyFailures(contents)...)
	}
	if !res.IsValid() {
		return nil, res, fmt.Errorf("%s: %w", op, ErrInvalidTemplate)
	}

	tmpl := storage.Template{
		TemplateKey: storage.TemplateKey{
			FundingStreamID: contents.FundingStreamID,
			FundingPeriodID: contents.FundingPeriodID,
			TemplateVersion: contents.TemplateVersion,
		},
		SchemaVersion: contents.SchemaVersion,
		Content:       raw,
	}

	id, err := s.storage.SaveTemplate(ctx, tmpl)
	if err != nil {
		return nil, res, fmt.Errorf("%s: %w", op, err)
	}
	tmpl.ID = id

	s.log.Info("template saved",
		slog.String("op", op),
		slog.String("funding_stream", tmpl.FundingStreamID),
		slog.String("funding_period", tmpl.FundingPeriodID),
		slog.String("template_version", tmpl.TemplateVersion),
	)

	return &tmpl, res, nil
}

func keyFailures(contents *model.Contents) validation.Failures {
	var out validation.Failures
	if contents.FundingStreamID == "" {
		out = append(out, validation.Failure{Field: "fundingStream", Message: "template does not declare a funding stream code"})
	}
	if contents.FundingPeriodID == "" {
		out = append(out, validation.Failure{Field: "fundingPeriod", Message: "template does not declare a funding period id"})
	}
	if contents.TemplateVersion == "" {
		out = append(out, validation.Failure{Field: "templateVersion", Message: "template does not declare a template version"})
	}
	return out
}

// GetTemplateMetadata loads a stored template and parses it.
func (s *Service) GetTemplateMetadata(ctx context.Context, key storage.TemplateKey) (*model.Contents, error) {
	const op = "service.templates.GetTemplateMetadata"

	tmpl, err := s.storage.GetTemplate(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	contents, err := s.parser.Parse(tmpl.Content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return contents, nil
}

type StoredValidation struct {
	storage.TemplateKey
	SchemaVersion string              `json:"schemaVersion"`
	Valid         bool                `json:"valid"`
	Failures      validation.Failures `json:"failures"`
}

// ValidateStored re-validates every stored version of a funding stream's template for a
// period. Each document is parsed into its own tree, so validations run in parallel.
func (s *Service) ValidateStored(ctx context.Context, fundingStreamID, fundingPeriodID string) ([]StoredValidation, error) {
	const op = "service.templates.ValidateStored"

	stored, err := s.storage.GetTemplates(ctx, fundingStreamID, fundingPeriodID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	results := make([]StoredValidation, len(stored))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, tmpl := range stored {
		i, tmpl := i, tmpl
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			_, res := s.Validate(tmpl.Content)
			results[i] = StoredValidation{
				TemplateKey:   tmpl.TemplateKey,
				SchemaVersion: tmpl.SchemaVersion,
				Valid:         res.IsValid(),
				Failures:      res.Failures,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return results, nil
}

// FundingValues parses raw, assigns calculation values by template calculation id and
// rolls them up. decimalPlaces overrides the configured precision when non-nil.
func (s *Service) FundingValues(raw string, values map[uint32]decimal.Decimal, decimalPlaces *uint8) (*model.FundingValue, error) {
	const op = "service.templates.FundingValues"

	contents, err := s.parser.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if unknown := fundingvalue.AssignCalculationValues(contents.RootFundingLines, values); len(unknown) > 0 {
		s.log.Warn("values supplied for calculations not in template",
			slog.String("op", op),
			slog.Any("template_calculation_ids", unknown),
		)
	}

	places := s.decimalPlaces
	if decimalPlaces != nil {
		places = *decimalPlaces
	}

	res := fundingvalue.NewGenerator(fundingvalue.WithDecimalPlaces(places)).Generate(contents.RootFundingLines)
	return &res, nil
}
