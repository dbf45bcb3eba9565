package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/SkillsFundingAgency/CalculateFunding-Common-sub002/internal/service/templates"
	"github.com/SkillsFundingAgency/CalculateFunding-Common-sub002/internal/template/fundingvalue"
	"github.com/SkillsFundingAgency/CalculateFunding-Common-sub002/internal/template/schema"
	"github.com/SkillsFundingAgency/CalculateFunding-Common-sub002/internal/template/schema10"
	"github.com/SkillsFundingAgency/CalculateFunding-Common-sub002/internal/template/schema11"
	"github.com/SkillsFundingAgency/CalculateFunding-Common-sub002/internal/template/schema12"
	"github.com/SkillsFundingAgency/CalculateFunding-Common-sub002/internal/template/validation"
)

var errInvalidTemplate = errors.New("template failed validation")

func newRootCmd(log *slog.Logger) *cobra.Command {
	resolver := schema.NewResolver(log, schema10.New(log), schema11.New(log), schema12.New(log))
	service := templates.NewService(log, nil, resolver)

	root := &cobra.Command{
		Use:           "templatectl",
		Short:         "Work with funding templates",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newValidateCmd(service),
		newMetadataCmd(service),
		newValuesCmd(log, service),
		newVersionsCmd(resolver),
	)
	return root
}

func newValidateCmd(service *templates.Service) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Validate a funding template",
		Long:  `Parses the template with the adapter for its schemaVersion and checks that every repeated calculation and funding line id describes the same entity.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readFile(args[0])
			if err != nil {
				return err
			}

			contents, res := service.Validate(raw)
			out := cmd.OutOrStdout()
			if res.IsValid() {
				fmt.Fprintf(out, "OK: %s (schema %s, %s %s)\n", args[0], contents.SchemaVersion, contents.FundingStreamID, contents.FundingPeriodID)
				return nil
			}

			printFailures(out, res.Failures)
			return errInvalidTemplate
		},
	}
}

func printFailures(w io.Writer, failures validation.Failures) {
	fmt.Fprintf(w, "%d validation failure(s):\n", len(failures))
	for _, f := range failures {
		fmt.Fprintf(w, "  %s: %s\n", f.Field, f.Message)
	}
}

func newMetadataCmd(service *templates.Service) *cobra.Command {
	return &cobra.Command{
		Use:   "metadata <file>",
		Short: "Print the canonical funding lines of a template as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readFile(args[0])
			if err != nil {
				return err
			}

			contents, err := service.Metadata(raw)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), contents)
		},
	}
}

func newValuesCmd(log *slog.Logger, service *templates.Service) *cobra.Command {
	var (
		valuesPath    string
		decimalPlaces uint8
	)

	cmd := &cobra.Command{
		Use:   "values <file>",
		Short: "Roll calculation values up into funding line totals",
		Long: `Reads calculation values keyed by template calculation id from a JSON object,
assigns them to the template and prints every funding line value and the total.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readFile(args[0])
			if err != nil {
				return err
			}

			values := map[uint32]decimal.Decimal{}
			if valuesPath != "" {
				values, err = readValues(valuesPath)
				if err != nil {
					return err
				}
			}

			var places *uint8
			if cmd.Flags().Changed("decimal-places") {
				places = &decimalPlaces
			}

			fv, err := service.FundingValues(raw, values, places)
			if err != nil {
				return err
			}

			log.Debug("funding values generated", slog.String("template", args[0]), slog.Int("values", len(values)))
			return printJSON(cmd.OutOrStdout(), fv)
		},
	}

	cmd.Flags().StringVar(&valuesPath, "values", "", "JSON file of calculation values keyed by template calculation id")
	cmd.Flags().Uint8Var(&decimalPlaces, "decimal-places", fundingvalue.DefaultDecimalPlaces, "decimal places funding line values are rounded to")
	return cmd
}

func newVersionsCmd(resolver *schema.Resolver) *cobra.Command {
	return &cobra.Command{
		Use:   "versions",
		Short: "List the supported template schema versions",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			for _, v := range resolver.Versions() {
				fmt.Fprintln(cmd.OutOrStdout(), v)
			}
		},
	}
}

func readFile(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read template: %w", err)
	}
	return string(b), nil
}

func readValues(path string) (map[uint32]decimal.Decimal, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read values: %w", err)
	}

	var in map[string]decimal.Decimal
	if err := json.Unmarshal(b, &in); err != nil {
		return nil, fmt.Errorf("decode values: %w", err)
	}
	return fundingvalue.ParseCalculationValues(in)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
