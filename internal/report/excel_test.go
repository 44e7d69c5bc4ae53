package report_test

import (
	"testing"

	"bikestock-backend/internal/report"

	"github.com/shopspring/decimal"
)

func TestWriteExcelLayout(t *testing.T) {
	periodReport := &report.PeriodReport{
		Start: "2026-08-01",
		End:   "2026-08-29",
		Totals: report.PeriodTotals{
			ReceiptCount: 12,
			LineCount:    30,
			UnitTotal:    75,
			DesiTotal:    decimal.NewFromFloat(812.5),
		},
		Carriers: []report.CarrierSummaryRow{
			{CarrierID: 1, CarrierName: "Aras Kargo", ReceiptCount: 7, LineCount: 18, UnitTotal: 45, DesiTotal: decimal.NewFromFloat(500)},
			{CarrierID: 2, CarrierName: "MNG Kargo", ReceiptCount: 5, LineCount: 12, UnitTotal: 30, DesiTotal: decimal.NewFromFloat(312.5)},
		},
		Platforms: []report.PlatformSummaryRow{
			{PlatformID: 1, PlatformName: "Pazaryeri", ReceiptCount: 9, UnitTotal: 60},
		},
	}

	f, err := report.WriteExcel(periodReport)
	if err != nil {
		t.Fatalf("WriteExcel başarısız: %v", err)
	}
	defer f.Close()

	cell := func(ref string) string {
		t.Helper()
		v, err := f.GetCellValue("Rapor", ref)
		if err != nil {
			t.Fatalf("hücre okunamadı %s: %v", ref, err)
		}
		return v
	}

	if got := cell("B1"); got != "2026-08-01 - 2026-08-29" {
		t.Errorf("dönem hücresi = %q", got)
	}
	if got := cell("B3"); got != "12" {
		t.Errorf("toplam fiş = %q, beklenen 12", got)
	}
	if got := cell("B6"); got != "812.5" {
		t.Errorf("toplam desi = %q, beklenen 812.5", got)
	}
	if got := cell("A9"); got != "Aras Kargo" {
		t.Errorf("ilk kargo satırı = %q", got)
	}
	if got := cell("A10"); got != "MNG Kargo" {
		t.Errorf("ikinci kargo satırı = %q", got)
	}
	// Kargo tablosundan iki satır boşluk sonra platform tablosu başlar
	if got := cell("A12"); got != "Platform" {
		t.Errorf("platform başlığı hücresi = %q", got)
	}
	if got := cell("A13"); got != "Pazaryeri" {
		t.Errorf("platform satırı = %q", got)
	}
}
