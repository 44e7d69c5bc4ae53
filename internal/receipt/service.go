package receipt

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"bikestock-backend/internal/ledger"
	"bikestock-backend/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Service birden çok çıkış kalemini tek numaralı fiş altında toplar.
// Batch'in tamamı (N stok kontrolü, N düşüm, N geçmiş kaydı, 1 fiş) tek
// transaction'dır; herhangi bir kalem başarısız olursa hiçbir etki kalmaz.
type Service struct {
	db     *gorm.DB
	ledger *ledger.Service
}

func NewService(db *gorm.DB, ledgerSvc *ledger.Service) *Service {
	return &Service{db: db, ledger: ledgerSvc}
}

type BatchLine struct {
	ProductID uint
	Quantity  int
	CarrierID *uint
}

type BatchInput struct {
	WarehouseID uint
	Note        string
	PlatformID  *uint
	CustomerID  *uint
	Lines       []BatchLine
}

// CreateBatch fiş batch'ini işler ve oluşan fişi kalemleriyle döner.
// Önce kümülatif ön doğrulama yapılır: aynı ürünün birden çok kalemi
// toplanıp mevcut stokla karşılaştırılır, herhangi biri yetersizse batch
// hiçbir etki bırakmadan reddedilir. Kalemler yine de kilitli satır
// üzerinden tek tek düşülür; miktar hiçbir adımda eksiye inemez.
func (s *Service) CreateBatch(ctx context.Context, actor ledger.Actor, in BatchInput) (*models.Receipt, error) {
	if len(in.Lines) == 0 {
		return nil, &ledger.ValidationError{Message: "Fiş için en az bir ürün gerekli"}
	}
	for _, line := range in.Lines {
		if line.ProductID == 0 || line.Quantity <= 0 {
			return nil, &ledger.ValidationError{Message: "Tüm kalemler için ürün ve 0'dan büyük miktar zorunlu"}
		}
	}

	var receipt models.Receipt
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var warehouse models.Warehouse
		if err := tx.First(&warehouse, "id = ?", in.WarehouseID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &ledger.NotFoundError{Entity: "Depo", ID: in.WarehouseID}
			}
			return fmt.Errorf("depo okunamadı: %w", err)
		}

		if err := s.validateCumulative(tx, in); err != nil {
			return err
		}

		now := time.Now()
		receipt = models.Receipt{
			Number:      Number(now, actor.UserID),
			WarehouseID: in.WarehouseID,
			Note:        in.Note,
			Status:      models.ReceiptStatusCompleted,
			ActorID:     actor.UserID,
			ActorName:   actor.UserName,
			PlatformID:  in.PlatformID,
			TotalDesi:   decimal.Zero,
		}
		if err := tx.Create(&receipt).Error; err != nil {
			return fmt.Errorf("fiş oluşturulamadı: %w", err)
		}

		unitCount := 0
		totalDesi := decimal.Zero
		for _, line := range in.Lines {
			if _, err := s.ledger.ExitTx(tx, actor, ledger.ExitInput{
				ProductID:   line.ProductID,
				WarehouseID: in.WarehouseID,
				Quantity:    line.Quantity,
				Note:        in.Note,
				CarrierID:   line.CarrierID,
				PlatformID:  in.PlatformID,
				CustomerID:  in.CustomerID,
			}); err != nil {
				return err
			}

			var product models.Product
			if err := tx.First(&product, "id = ?", line.ProductID).Error; err != nil {
				return fmt.Errorf("ürün okunamadı: %w", err)
			}

			lineDesi := product.Desi.Mul(decimal.NewFromInt(int64(line.Quantity)))
			receiptLine := models.ReceiptLine{
				ReceiptID:   receipt.ID,
				ProductID:   product.ID,
				ProductName: product.Name, // fiş anındaki ad, sonradan değişse de sabit
				Quantity:    line.Quantity,
				UnitDesi:    product.Desi,
				TotalDesi:   lineDesi,
				CarrierID:   line.CarrierID,
			}
			if err := tx.Create(&receiptLine).Error; err != nil {
				return fmt.Errorf("fiş kalemi kaydedilemedi: %w", err)
			}

			unitCount += line.Quantity
			totalDesi = totalDesi.Add(lineDesi)
			receipt.Lines = append(receipt.Lines, receiptLine)
		}

		receipt.LineCount = len(in.Lines)
		receipt.UnitCount = unitCount
		receipt.TotalDesi = totalDesi
		if err := tx.Model(&models.Receipt{}).Where("id = ?", receipt.ID).Updates(map[string]interface{}{
			"line_count": receipt.LineCount,
			"unit_count": receipt.UnitCount,
			"total_desi": receipt.TotalDesi,
		}).Error; err != nil {
			return fmt.Errorf("fiş toplamları güncellenemedi: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}
	return &receipt, nil
}

// validateCumulative ürün başına toplam talebi kilitli stok satırıyla
// karşılaştırır. Kilit burada alındığı için batch'in geri kalanı boyunca
// başka bir yazar aynı satırı değiştiremez.
func (s *Service) validateCumulative(tx *gorm.DB, in BatchInput) error {
	demand := make(map[uint]int)
	for _, line := range in.Lines {
		demand[line.ProductID] += line.Quantity
	}

	// Kilitlenme sırası deterministik olsun diye ürünler id sırasıyla gezilir.
	productIDs := make([]uint, 0, len(demand))
	for id := range demand {
		productIDs = append(productIDs, id)
	}
	sort.Slice(productIDs, func(i, j int) bool { return productIDs[i] < productIDs[j] })

	for _, productID := range productIDs {
		product, level, err := s.ledger.LockLevel(tx, productID, in.WarehouseID)
		if err != nil {
			return err
		}
		if level.Quantity < demand[productID] {
			return &ledger.InsufficientStockError{
				ProductName: product.Name,
				Requested:   demand[productID],
				Available:   level.Quantity,
			}
		}
	}
	return nil
}

// List fişleri en yeniden eskiye listeler.
func (s *Service) List(ctx context.Context, limit int) ([]models.Receipt, error) {
	if limit <= 0 {
		limit = 100
	}
	var receipts []models.Receipt
	if err := s.db.WithContext(ctx).
		Preload("Lines").
		Order("created_at DESC").
		Limit(limit).
		Find(&receipts).Error; err != nil {
		return nil, fmt.Errorf("fişler listelenemedi: %w", err)
	}
	return receipts, nil
}

// Get bir fişi kalemleriyle döner.
func (s *Service) Get(ctx context.Context, id uint) (*models.Receipt, error) {
	var receipt models.Receipt
	err := s.db.WithContext(ctx).
		Preload("Lines").
		First(&receipt, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &ledger.NotFoundError{Entity: "Fiş", ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("fiş okunamadı: %w", err)
	}
	return &receipt, nil
}

// Number fiş numarasını üretir: C + zaman damgası + kullanıcı id.
// Aynı kullanıcı saniyede en fazla bir fiş kestiği sürece benzersizdir;
// çakışma olursa fiş numarasındaki unique index insert'i reddeder ve
// batch geri alınır.
func Number(t time.Time, actorID uint) string {
	return fmt.Sprintf("C%s%d", t.Format("20060102150405"), actorID)
}
