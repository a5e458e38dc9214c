package utils

import (
	"fmt"
	"io"

	"github.com/SscSPs/docflow_app/internal/core/domain"
	"github.com/xuri/excelize/v2"
)

// ReportSheetName is the sheet the document report is written to.
const ReportSheetName = "Documents"

var reportColumns = []string{
	"ID", "Title", "Description", "Classification", "Document type",
	"State", "Department", "Assignee", "Reference date",
}

var reportColumnWidths = []float64{8, 40, 50, 24, 24, 14, 24, 30, 20}

// WriteDocumentsWorkbook renders docs as an xlsx workbook into w.
func WriteDocumentsWorkbook(w io.Writer, docs []domain.DocumentView) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ReportSheetName); err != nil {
		return fmt.Errorf("failed to name report sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	dateStyle, err := f.NewStyle(&excelize.Style{NumFmt: 22}) // m/d/yy h:mm
	if err != nil {
		return fmt.Errorf("failed to create date style: %w", err)
	}

	header := make([]any, len(reportColumns))
	for i, c := range reportColumns {
		header[i] = c
	}
	if err := f.SetSheetRow(ReportSheetName, "A1", &header); err != nil {
		return fmt.Errorf("failed to write report header: %w", err)
	}
	lastCol, _ := excelize.ColumnNumberToName(len(reportColumns))
	if err := f.SetCellStyle(ReportSheetName, "A1", lastCol+"1", headerStyle); err != nil {
		return fmt.Errorf("failed to style report header: %w", err)
	}

	for i, d := range docs {
		row := []any{
			d.DocumentID,
			d.Title,
			derefOrEmpty(d.Description),
			d.ClassificationName,
			d.DocumentTypeName,
			d.StateName,
			d.DepartmentName,
			d.AssigneeName,
			"",
		}
		if !d.ReferenceAt.IsZero() {
			row[len(row)-1] = d.ReferenceAt
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(ReportSheetName, cell, &row); err != nil {
			return fmt.Errorf("failed to write report row %d: %w", i+1, err)
		}
	}
	if len(docs) > 0 {
		dateCol, _ := excelize.ColumnNumberToName(len(reportColumns))
		if err := f.SetCellStyle(ReportSheetName, dateCol+"2", fmt.Sprintf("%s%d", dateCol, len(docs)+1), dateStyle); err != nil {
			return fmt.Errorf("failed to style report dates: %w", err)
		}
	}

	for i, width := range reportColumnWidths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		_ = f.SetColWidth(ReportSheetName, col, col, width)
	}
	_ = f.SetPanes(ReportSheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
	if err := f.AutoFilter(ReportSheetName, "A1:"+lastCol+"1", nil); err != nil {
		return fmt.Errorf("failed to add report filter: %w", err)
	}

	return f.Write(w)
}

func derefOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
