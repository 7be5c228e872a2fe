// Package export writes monthly schedules to xlsx workbooks and reads problem
// lists back from them.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/er-knight/leetcodedaily/entities"
	"github.com/er-knight/leetcodedaily/pkg/schedule/types"
)

const SummarySheet = "Summary"

var scheduleHeader = []interface{}{"Date", "ID", "Title", "Difficulty", "Acceptance", "URL"}

// WriteMonth writes one sheet named after month (YYYY-MM) listing entries in
// order, plus a per-difficulty summary sheet.
func WriteMonth(w io.Writer, month types.Month, entries []types.Entry) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := month.String()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	if err := f.SetSheetRow(sheet, "A1", &scheduleHeader); err != nil {
		return err
	}
	counts := make(map[entities.Difficulty]int, len(entities.Difficulties))
	for i, e := range entries {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []interface{}{
			e.IncludedAt.UTC().Format("2006-01-02"),
			e.ProblemID,
			e.Title,
			string(e.Difficulty),
			e.AcceptanceRate,
			e.URL,
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
		counts[e.Difficulty]++
	}
	if err := f.SetCellStyle(sheet, "A1", "F1", bold); err != nil {
		return err
	}
	for col, width := range map[string]float64{"A": 12, "B": 8, "C": 48, "D": 12, "E": 12, "F": 64} {
		if err := f.SetColWidth(sheet, col, col, width); err != nil {
			return err
		}
	}
	if err := f.SetPanes(sheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
		return err
	}

	if _, err := f.NewSheet(SummarySheet); err != nil {
		return err
	}
	if err := f.SetSheetRow(SummarySheet, "A1", &[]interface{}{"Difficulty", "Problems"}); err != nil {
		return err
	}
	for i, d := range entities.Difficulties {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(SummarySheet, cell, &[]interface{}{string(d), counts[d]}); err != nil {
			return err
		}
	}
	totalCell, _ := excelize.CoordinatesToCellName(1, len(entities.Difficulties)+2)
	if err := f.SetSheetRow(SummarySheet, totalCell, &[]interface{}{"Total", len(entries)}); err != nil {
		return err
	}
	if err := f.SetCellStyle(SummarySheet, "A1", "B1", bold); err != nil {
		return err
	}

	f.SetActiveSheet(0)
	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
