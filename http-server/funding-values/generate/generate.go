package generate

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
	"github.com/shopspring/decimal"

	"github.com/SkillsFundingAgency/CalculateFunding-Common-sub002/http-server/request"
	"github.com/SkillsFundingAgency/CalculateFunding-Common-sub002/internal/template/fundingvalue"
	"github.com/SkillsFundingAgency/CalculateFunding-Common-sub002/internal/template/model"
)

type FundingValueGenerator interface {
	FundingValues(raw string, values map[uint32]decimal.Decimal, decimalPlaces *uint8) (*model.FundingValue, error)
}

// Request carries the template either as a JSON string or as an embedded document.
// Calculation values are keyed by template calculation id.
type Request struct {
	Template          json.RawMessage            `json:"template"`
	CalculationValues map[string]decimal.Decimal `json:"calculationValues"`
	DecimalPlaces     *uint8                     `json:"decimalPlaces,omitempty"`
}

type Input struct {
	Template      string
	Values        map[uint32]decimal.Decimal
	DecimalPlaces *uint8
}

var ErrMissingTemplate = errors.New("template is required")

// DecodeRequest reads and checks a funding values request body.
func DecodeRequest(w http.ResponseWriter, r *http.Request) (*Input, error) {
	const op = "handlers.funding_values.DecodeRequest"

	body, err := request.ReadBody(w, r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var req Request
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	raw := bytes.TrimSpace(req.Template)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, fmt.Errorf("%s: %w", op, ErrMissingTemplate)
	}

	tmpl := string(raw)
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &tmpl); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	values, err := fundingvalue.ParseCalculationValues(req.CalculationValues)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Input{Template: tmpl, Values: values, DecimalPlaces: req.DecimalPlaces}, nil
}

// GenerateFundingValues rolls the supplied calculation values up through the template's
// funding lines and returns the populated tree with its total.
func GenerateFundingValues(log *slog.Logger, generator FundingValueGenerator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.funding_values.GenerateFundingValues"

		in, err := DecodeRequest(w, r)
		if err != nil {
			log.With(slog.String("op", op), slog.String("error", err.Error())).Warn("Invalid funding values request")
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		fv, err := generator.FundingValues(in.Template, in.Values, in.DecimalPlaces)
		if err != nil {
			log.With(slog.String("op", op), slog.String("error", err.Error())).Warn("Cannot generate funding values")
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		render.JSON(w, r, fv)
	}
}
