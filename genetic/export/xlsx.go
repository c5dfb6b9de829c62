package export

import (
	"io"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

// Workbook sheet names
const (
	SheetSummary    = "summary"
	SheetPopulation = "population"
	SheetTrace      = "trace"
)

// WriteXLSX writes the report as a workbook with summary, population and trace sheets
// The trace sheet is omitted when the report has no trace.
func WriteXLSX(w io.Writer, dto ReportDTO) error {
	f := excelize.NewFile()
	defer f.Close()

	// New files start with one default sheet
	if err := f.SetSheetName(f.GetSheetName(0), SheetSummary); err != nil {
		return errors.Wrap(err, "export: rename sheet")
	}

	c, s := dto.Config, dto.Summary
	summary := [][]any{
		{"field", "value"},
		{"run_id", dto.RunID},
		{"population_count", c.PopulationCount},
		{"step_count", c.StepCount},
		{"seed", uint64(c.Seed)},
		{"min_x", c.MinX},
		{"max_x", c.MaxX},
		{"min_mutation", c.MinMutation},
		{"max_mutation", c.MaxMutation},
		{"mutate_best", c.MutateBest},
		{"min", s.Min},
		{"max", s.Max},
		{"avg", s.Mean},
		{"median", s.Median},
		{"stddev", s.StdDev},
		{"best_id", s.BestID},
		{"best_x", s.BestX},
		{"best_score", s.BestScore},
	}
	if err := writeRows(f, SheetSummary, summary); err != nil {
		return err
	}

	population := [][]any{{"id", "x", "score"}}
	for _, ind := range dto.Population {
		population = append(population, []any{ind.ID, ind.X, ind.Score})
	}
	if err := addSheet(f, SheetPopulation, population); err != nil {
		return err
	}

	if len(dto.Trace) > 0 {
		trace := [][]any{{"step", "min", "max", "avg", "diversity", "best_id", "best_x"}}
		for _, p := range dto.Trace {
			trace = append(trace, []any{p.Step, p.Min, p.Max, p.Mean, p.Diversity, p.BestID, p.BestX})
		}
		if err := addSheet(f, SheetTrace, trace); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return errors.Wrap(err, "export: write workbook")
	}
	return nil
}

func addSheet(f *excelize.File, sheet string, rows [][]any) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return errors.Wrapf(err, "export: create sheet %s", sheet)
	}
	return writeRows(f, sheet, rows)
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for r, row := range rows {
		for c, v := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return errors.Wrap(err, "export: cell name")
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return errors.Wrapf(err, "export: set %s!%s", sheet, cell)
			}
		}
	}
	return nil
}
