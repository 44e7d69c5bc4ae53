package report

import (
	"context"
	"fmt"
	"time"

	"bikestock-backend/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Service: salt okunur rapor sorguları. Tüm sayılar işlem geçmişi ve fiş
// kalemlerinden türetilir, stok tablosuna dokunulmaz.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

type DailyReport struct {
	Date      string               `json:"date"`
	Entries   []models.LedgerEvent `json:"entries"`
	Exits     []models.LedgerEvent `json:"exits"`
	Transfers []models.LedgerEvent `json:"transfers"`
	Counts    map[string]int64     `json:"counts"`
}

// Daily: bir günün stok hareketleri. Gün [00:00, ertesi gün 00:00) aralığıdır.
func (s *Service) Daily(ctx context.Context, day time.Time) (*DailyReport, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 0, 1)

	report := &DailyReport{
		Date:   start.Format("2006-01-02"),
		Counts: make(map[string]int64),
	}

	kinds := map[models.EventKind]*[]models.LedgerEvent{
		models.EventStockEntry: &report.Entries,
		models.EventStockExit:  &report.Exits,
		models.EventTransfer:   &report.Transfers,
	}
	for kind, dst := range kinds {
		if err := s.db.WithContext(ctx).
			Where("kind = ? AND created_at >= ? AND created_at < ?", kind, start, end).
			Order("created_at DESC").
			Find(dst).Error; err != nil {
			return nil, fmt.Errorf("günlük rapor sorgusu başarısız: %w", err)
		}
		report.Counts[string(kind)] = int64(len(*dst))
	}

	return report, nil
}

type CarrierSummaryRow struct {
	CarrierID    uint            `json:"carrier_id"`
	CarrierName  string          `json:"carrier_name"`
	ReceiptCount int64           `json:"receipt_count"`
	LineCount    int64           `json:"line_count"`
	UnitTotal    int64           `json:"unit_total"`
	DesiTotal    decimal.Decimal `json:"desi_total"`
}

// CarrierSummary: dönem içindeki fiş kalemlerinin kargo firması kırılımı.
func (s *Service) CarrierSummary(ctx context.Context, start, end time.Time) ([]CarrierSummaryRow, error) {
	var rows []CarrierSummaryRow
	err := s.db.WithContext(ctx).Raw(`
		SELECT c.id AS carrier_id,
		       c.name AS carrier_name,
		       COUNT(DISTINCT r.id) AS receipt_count,
		       COUNT(rl.id) AS line_count,
		       COALESCE(SUM(rl.quantity), 0) AS unit_total,
		       COALESCE(SUM(rl.total_desi), 0) AS desi_total
		FROM receipt_lines rl
		JOIN receipts r ON r.id = rl.receipt_id
		JOIN carriers c ON c.id = rl.carrier_id
		WHERE r.created_at >= ? AND r.created_at < ?
		GROUP BY c.id, c.name
		ORDER BY unit_total DESC
	`, start, end).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("kargo raporu sorgusu başarısız: %w", err)
	}
	return rows, nil
}

type PlatformSummaryRow struct {
	PlatformID   uint  `json:"platform_id"`
	PlatformName string `json:"platform_name"`
	ReceiptCount int64 `json:"receipt_count"`
	UnitTotal    int64 `json:"unit_total"`
}

// PlatformSummary: dönem fişlerinin satış kanalı kırılımı.
func (s *Service) PlatformSummary(ctx context.Context, start, end time.Time) ([]PlatformSummaryRow, error) {
	var rows []PlatformSummaryRow
	err := s.db.WithContext(ctx).Raw(`
		SELECT p.id AS platform_id,
		       p.name AS platform_name,
		       COUNT(r.id) AS receipt_count,
		       COALESCE(SUM(r.unit_count), 0) AS unit_total
		FROM receipts r
		JOIN platforms p ON p.id = r.platform_id
		WHERE r.created_at >= ? AND r.created_at < ?
		GROUP BY p.id, p.name
		ORDER BY unit_total DESC
	`, start, end).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("platform raporu sorgusu başarısız: %w", err)
	}
	return rows, nil
}

type PeriodTotals struct {
	ReceiptCount int64           `json:"receipt_count"`
	LineCount    int64           `json:"line_count"`
	UnitTotal    int64           `json:"unit_total"`
	DesiTotal    decimal.Decimal `json:"desi_total"`
}

type PeriodReport struct {
	Start     string               `json:"start"`
	End       string               `json:"end"`
	Totals    PeriodTotals         `json:"totals"`
	Carriers  []CarrierSummaryRow  `json:"carriers"`
	Platforms []PlatformSummaryRow `json:"platforms"`
}

// Period: [start, end] aralığının fiş özeti. Bitiş günü dahildir.
func (s *Service) Period(ctx context.Context, start, end time.Time) (*PeriodReport, error) {
	from := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	to := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, end.Location()).AddDate(0, 0, 1)

	report := &PeriodReport{
		Start: from.Format("2006-01-02"),
		End:   end.Format("2006-01-02"),
	}

	err := s.db.WithContext(ctx).Raw(`
		SELECT COUNT(DISTINCT r.id) AS receipt_count,
		       COUNT(rl.id) AS line_count,
		       COALESCE(SUM(rl.quantity), 0) AS unit_total,
		       COALESCE(SUM(rl.total_desi), 0) AS desi_total
		FROM receipts r
		LEFT JOIN receipt_lines rl ON rl.receipt_id = r.id
		WHERE r.created_at >= ? AND r.created_at < ?
	`, from, to).Scan(&report.Totals).Error
	if err != nil {
		return nil, fmt.Errorf("dönem raporu sorgusu başarısız: %w", err)
	}

	if report.Carriers, err = s.CarrierSummary(ctx, from, to); err != nil {
		return nil, err
	}
	if report.Platforms, err = s.PlatformSummary(ctx, from, to); err != nil {
		return nil, err
	}

	return report, nil
}
