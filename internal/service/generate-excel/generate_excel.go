package generate_excel

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/SkillsFundingAgency/CalculateFunding-Common-sub002/internal/template/model"
)

const SheetName = "Funding values"

var headers = []string{"Name", "Template id", "Kind", "Funding line code", "Type", "Value"}

type FundingValueGenerator interface {
	FundingValues(raw string, values map[uint32]decimal.Decimal, decimalPlaces *uint8) (*model.FundingValue, error)
}

type GenerateExcelService struct {
	log       *slog.Logger
	generator FundingValueGenerator
}

func NewGenerateService(log *slog.Logger, generator FundingValueGenerator) *GenerateExcelService {
	return &GenerateExcelService{log: log, generator: generator}
}

// GenerateExcel rolls the supplied calculation values up through the template and
// renders the result as an xlsx workbook.
func (g *GenerateExcelService) GenerateExcel(ctx context.Context, raw string, values map[uint32]decimal.Decimal, decimalPlaces *uint8) ([]byte, error) {
	const op = "service.generate_excel.GenerateExcel"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	fv, err := g.generator.FundingValues(raw, values, decimalPlaces)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	b, err := Render(fv)
	if err != nil {
		g.log.Error("failed to render workbook", slog.String("op", op), slog.String("error", err.Error()))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return b, nil
}

type sheetWriter struct {
	f       *excelize.File
	row     int
	indents map[int]int
}

// Render writes fv as a single sheet: one row per funding line and calculation, in
// tree order, names indented by depth, followed by the grand total.
func Render(fv *model.FundingValue) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"E0E0E0"}, Pattern: 1},
		Border: []excelize.Border{{Type: "bottom", Color: "000000", Style: 2}},
	})
	if err != nil {
		return nil, err
	}

	for i, name := range headers {
		if err := f.SetCellValue(SheetName, cellName(i+1, 1), name); err != nil {
			return nil, err
		}
	}
	if err := f.SetCellStyle(SheetName, "A1", cellName(len(headers), 1), headerStyle); err != nil {
		return nil, err
	}

	w := &sheetWriter{f: f, row: 2, indents: make(map[int]int)}
	if fv != nil {
		for _, fl := range fv.FundingLines {
			if err := w.fundingLine(fl, 0); err != nil {
				return nil, err
			}
		}
	}

	if err := w.totalRow(fv); err != nil {
		return nil, err
	}

	if err := f.SetPanes(SheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(SheetName, "A", "A", 40); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(SheetName, "B", "F", 16); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (w *sheetWriter) fundingLine(fl *model.FundingLine, depth int) error {
	if fl == nil {
		return nil
	}
	if err := w.writeRow(depth, fl.Name, fl.TemplateLineID, "Funding line", fl.FundingLineCode, string(fl.Type), fl.Value); err != nil {
		return err
	}
	for _, c := range fl.Calculations {
		if err := w.calculation(c, depth+1); err != nil {
			return err
		}
	}
	for _, child := range fl.FundingLines {
		if err := w.fundingLine(child, depth+1); err != nil {
			return err
		}
	}
	return nil
}

func (w *sheetWriter) calculation(c *model.Calculation, depth int) error {
	if c == nil {
		return nil
	}
	if err := w.writeRow(depth, c.Name, c.TemplateCalculationID, "Calculation", "", string(c.Type), c.Value); err != nil {
		return err
	}
	for _, child := range c.Calculations {
		if err := w.calculation(child, depth+1); err != nil {
			return err
		}
	}
	return nil
}

func (w *sheetWriter) writeRow(depth int, name string, id uint32, kind, code, typ string, value decimal.NullDecimal) error {
	row := w.row
	w.row++

	cells := []any{name, id, kind, code, typ}
	for i, v := range cells {
		if err := w.f.SetCellValue(SheetName, cellName(i+1, row), v); err != nil {
			return err
		}
	}
	if err := w.setValue(cellName(6, row), value); err != nil {
		return err
	}

	if depth == 0 {
		return nil
	}
	style, err := w.indentStyle(depth)
	if err != nil {
		return err
	}
	return w.f.SetCellStyle(SheetName, cellName(1, row), cellName(1, row), style)
}

func (w *sheetWriter) totalRow(fv *model.FundingValue) error {
	row := w.row + 1

	style, err := w.f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	if err := w.f.SetCellValue(SheetName, cellName(1, row), "Total"); err != nil {
		return err
	}
	var total decimal.NullDecimal
	if fv != nil {
		total = fv.TotalValue
	}
	if err := w.setValue(cellName(6, row), total); err != nil {
		return err
	}
	return w.f.SetCellStyle(SheetName, cellName(1, row), cellName(len(headers), row), style)
}

// setValue leaves null values blank.
func (w *sheetWriter) setValue(cell string, v decimal.NullDecimal) error {
	if !v.Valid {
		return nil
	}
	return w.f.SetCellFloat(SheetName, cell, v.Decimal.InexactFloat64(), -1, 64)
}

func (w *sheetWriter) indentStyle(depth int) (int, error) {
	if id, ok := w.indents[depth]; ok {
		return id, nil
	}
	id, err := w.f.NewStyle(&excelize.Style{Alignment: &excelize.Alignment{Indent: depth}})
	if err != nil {
		return 0, err
	}
	w.indents[depth] = id
	return id, nil
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
