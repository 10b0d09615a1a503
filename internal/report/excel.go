package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"gopower/internal/errors"
)

const (
	sheetCalculation = "Calculation"
	sheetCurve       = "Power Curve"
)

// WriteExcel writes the report as an .xlsx workbook at path.
func (r *Report) WriteExcel(path string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetCalculation); err != nil {
		return errors.ReportError("failed to prepare workbook", err)
	}

	rows := [][]interface{}{
		{"Report ID", r.ID},
		{"Generated", r.GeneratedAt.Format("2006-01-02 15:04:05 UTC")},
		{},
		{"Test", r.Params.TestType},
		{fmt.Sprintf("Effect size (%s)", r.Result.Family.EffectUnit()), r.Params.EffectSize},
		{"Power", r.Params.Power},
		{"Alpha", r.Params.Alpha},
		{"Groups", r.Params.GroupCount()},
		{},
		{"Formula", r.Result.Formula},
		{"Per-group sample size", sizeCell(r.Result.SampleSize)},
		{"Total sample size", sizeCell(r.Result.TotalSampleSize)},
		{"Adjusted for 20% dropout", sizeCell(r.Result.AdjustedSampleSize)},
	}
	if r.Result.FCritical != 0 {
		rows = append(rows, []interface{}{"F-critical (diagnostic)", r.Result.FCritical})
	}
	rows = append(rows, []interface{}{}, []interface{}{"Assumptions"})
	for _, assumption := range r.Result.Assumptions {
		rows = append(rows, []interface{}{"", assumption})
	}

	for i, row := range rows {
		for j, value := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				return errors.ReportError("failed to address cell", err)
			}
			if err := f.SetCellValue(sheetCalculation, cell, value); err != nil {
				return errors.ReportError("failed to write cell", err)
			}
		}
	}

	if len(r.Curve) > 0 {
		if err := r.writeCurveSheet(f); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return errors.ReportError(fmt.Sprintf("failed to save workbook to %s", path), err)
	}
	return nil
}

func (r *Report) writeCurveSheet(f *excelize.File) error {
	if _, err := f.NewSheet(sheetCurve); err != nil {
		return errors.ReportError("failed to create curve sheet", err)
	}

	header := []interface{}{"Effect size", "Per group", "Total", "Adjusted", "Achieved power"}
	for j, value := range header {
		cell, _ := excelize.CoordinatesToCellName(j+1, 1)
		if err := f.SetCellValue(sheetCurve, cell, value); err != nil {
			return errors.ReportError("failed to write curve header", err)
		}
	}

	for i, pt := range r.Curve {
		row := []interface{}{pt.EffectSize, sizeCell(pt.SampleSize), sizeCell(pt.TotalSampleSize), sizeCell(pt.AdjustedSampleSize), pt.AchievedPower}
		for j, value := range row {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			if err := f.SetCellValue(sheetCurve, cell, value); err != nil {
				return errors.ReportError("failed to write curve row", err)
			}
		}
	}
	return nil
}

// sizeCell keeps non-finite sizes representable in a spreadsheet cell.
func sizeCell(v float64) interface{} {
	s := formatSize(v)
	if s == "undefined" || s == "unbounded" {
		return s
	}
	return v
}
