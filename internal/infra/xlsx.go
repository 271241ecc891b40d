package infra

import (
	"fmt"
	"time"

	"sorty/internal/model"

	"github.com/xuri/excelize/v2"
)

var assetSheetHeaders = []string{
	"Código", "Nombre", "Categoría", "Estado", "Responsable", "Edificio", "Oficina",
	"Laboratorio", "Marca", "Modelo", "N° de serie", "Fecha de adquisición",
	"Costo de adquisición", "Valor en libros", "Proveedor", "N° de factura",
}

// RenderAssetWorkbook writes the asset inventory into a single-sheet XLSX
// workbook. Category and AssignedTo are printed when preloaded.
func RenderAssetWorkbook(assets []model.Asset, at time.Time) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Inventario"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "#000000", Style: 1},
		},
	})
	moneyStyle, _ := f.NewStyle(&excelize.Style{NumFmt: 4}) // #,##0.00

	for i, h := range assetSheetHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
	}

	for i, a := range assets {
		row := i + 2
		category, holder, acquired := "", "", ""
		if a.Category != nil {
			category = a.Category.Name
		}
		if a.AssignedTo != nil {
			holder = a.AssignedTo.Name
		}
		if a.AcquisitionDate != nil {
			acquired = a.AcquisitionDate.Format("2006-01-02")
		}
		cost, _ := a.AcquisitionCost.Float64()
		book, _ := a.BookValue(at).Float64()

		values := []interface{}{
			a.Code, a.Name, category, string(a.Status), holder, str(a.Building), str(a.Office),
			str(a.Laboratory), str(a.Brand), str(a.Model), str(a.SerialNumber), acquired,
			cost, book, str(a.Supplier), str(a.InvoiceNumber),
		}
		first, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetSheetRow(sheet, first, &values); err != nil {
			return nil, fmt.Errorf("xlsx: row %d: %w", row, err)
		}
	}

	if n := len(assets); n > 0 {
		f.SetCellStyle(sheet, "M2", fmt.Sprintf("N%d", n+1), moneyStyle)
	}
	for i, w := range []float64{14, 32, 20, 16, 24, 16, 16, 16, 14, 14, 18, 14, 16, 16, 20, 14} {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheet, col, col, w)
	}
	f.SetPanes(sheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: write: %w", err)
	}
	return buf.Bytes(), nil
}

func str(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
