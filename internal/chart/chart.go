// Package chart renders price tables as spreadsheet line charts.
package chart

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"InstrumentData/internal/frame"
)

const (
	dataSheet  = "Data"
	chartSheet = "Chart"
)

// ErrNoData is returned when there is nothing to draw.
var ErrNoData = errors.New("chart: no data to plot")

// WriteLineChart writes an xlsx workbook holding the table on a "Data" sheet
// and one line per column on a "Chart" sheet.
func WriteLineChart(w io.Writer, title string, t frame.Table) error {
	if t.Empty() {
		return ErrNoData
	}
	dates, err := t.Dates()
	if err != nil {
		return fmt.Errorf("chart dates: %w", err)
	}
	cols := plotColumns(t)

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", dataSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if err := writeData(f, dates, cols, t); err != nil {
		return err
	}
	if _, err := f.NewSheet(chartSheet); err != nil {
		return fmt.Errorf("create chart sheet: %w", err)
	}

	lastRow := len(dates) + 1
	series := make([]excelize.ChartSeries, 0, len(cols))
	for i := range cols {
		colName, err := excelize.ColumnNumberToName(i + 2)
		if err != nil {
			return err
		}
		series = append(series, excelize.ChartSeries{
			Name:       fmt.Sprintf("%s!$%s$1", dataSheet, colName),
			Categories: fmt.Sprintf("%s!$A$2:$A$%d", dataSheet, lastRow),
			Values:     fmt.Sprintf("%s!$%s$2:$%s$%d", dataSheet, colName, colName, lastRow),
		})
	}

	if err := f.AddChart(chartSheet, "A1", &excelize.Chart{
		Type:         excelize.Line,
		Series:       series,
		Title:        []excelize.RichTextRun{{Text: title}},
		Dimension:    excelize.ChartDimension{Width: 1000, Height: 600},
		Legend:       excelize.ChartLegend{Position: "bottom"},
		ShowBlanksAs: "gap",
		XAxis: excelize.ChartAxis{
			MajorGridLines: true,
			Title:          []excelize.RichTextRun{{Text: "Date"}},
		},
		YAxis: excelize.ChartAxis{
			MajorGridLines: true,
			Title:          []excelize.RichTextRun{{Text: "Price $"}},
		},
	}); err != nil {
		return fmt.Errorf("add chart: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeData(f *excelize.File, dates []time.Time, cols []string, t frame.Table) error {
	header := make([]interface{}, 0, len(cols)+1)
	header = append(header, "Date")
	for _, c := range cols {
		header = append(header, c)
	}
	if err := f.SetSheetRow(dataSheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	values := make([][]float64, len(cols))
	for i, c := range cols {
		v, err := t.Float(c)
		if err != nil {
			return err
		}
		values[i] = v
	}

	for r, d := range dates {
		row := make([]interface{}, 0, len(cols)+1)
		row = append(row, d.Format(frame.DateLayout))
		for i := range cols {
			if frame.IsMissing(values[i][r]) {
				row = append(row, nil)
				continue
			}
			row = append(row, values[i][r])
		}
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(dataSheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", r, err)
		}
	}
	return nil
}

// plotColumns skips a date column left in an unindexed table.
func plotColumns(t frame.Table) []string {
	var cols []string
	for _, c := range t.Columns() {
		if t.Index == nil && strings.ToLower(c) == "date" {
			continue
		}
		cols = append(cols, c)
	}
	return cols
}
