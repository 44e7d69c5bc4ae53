package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// WriteExcel: dönem raporunu tek sayfalık xlsx dosyasına döker.
func WriteExcel(report *PeriodReport) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := "Rapor"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	f.SetCellValue(sheet, "A1", "Dönem")
	f.SetCellValue(sheet, "B1", fmt.Sprintf("%s - %s", report.Start, report.End))

	f.SetCellValue(sheet, "A3", "Toplam Fiş")
	f.SetCellValue(sheet, "B3", report.Totals.ReceiptCount)
	f.SetCellValue(sheet, "A4", "Toplam Kalem")
	f.SetCellValue(sheet, "B4", report.Totals.LineCount)
	f.SetCellValue(sheet, "A5", "Toplam Adet")
	f.SetCellValue(sheet, "B5", report.Totals.UnitTotal)
	f.SetCellValue(sheet, "A6", "Toplam Desi")
	f.SetCellValue(sheet, "B6", report.Totals.DesiTotal.String())

	row := 8
	f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Kargo Firması")
	f.SetCellValue(sheet, fmt.Sprintf("B%d", row), "Fiş")
	f.SetCellValue(sheet, fmt.Sprintf("C%d", row), "Kalem")
	f.SetCellValue(sheet, fmt.Sprintf("D%d", row), "Adet")
	f.SetCellValue(sheet, fmt.Sprintf("E%d", row), "Desi")
	for _, c := range report.Carriers {
		row++
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), c.CarrierName)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), c.ReceiptCount)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), c.LineCount)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), c.UnitTotal)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), c.DesiTotal.String())
	}

	row += 2
	f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Platform")
	f.SetCellValue(sheet, fmt.Sprintf("B%d", row), "Fiş")
	f.SetCellValue(sheet, fmt.Sprintf("C%d", row), "Adet")
	for _, p := range report.Platforms {
		row++
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), p.PlatformName)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), p.ReceiptCount)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), p.UnitTotal)
	}

	return f, nil
}
