package ledger

import (
	"context"
	"errors"
	"fmt"

	"bikestock-backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Service stok miktarlarını değiştiren tek yetkilidir. Her mutasyon tek
// veritabanı transaction'ı içinde çalışır: stok kontrolü, miktar
// güncellemesi ve işlem geçmişi kaydı birlikte commit olur ya da hiçbiri
// olmaz. Aynı (ürün, depo) satırına eşzamanlı iki çıkış isteğinin ikisinin
// de yeterlilik kontrolünü geçip stoku eksiye düşürmemesi için satır
// SELECT ... FOR UPDATE ile kilitlenir.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// ExitInput: stok çıkışı parametreleri. Kargo/platform/müşteri bağlantıları
// opsiyonel genişletme alanlarıdır, çekirdek kurallara dahil değildir.
type ExitInput struct {
	ProductID   uint
	WarehouseID uint
	Quantity    int
	Note        string
	CarrierID   *uint
	PlatformID  *uint
	CustomerID  *uint
}

// Entry stok girişi yapar ve yeni miktarı döner. Satır yoksa 0'dan başlar;
// giriş negatiflik kuralını ihlal edemeyeceği için tek hata yolu girdi
// doğrulamasıdır.
func (s *Service) Entry(ctx context.Context, actor Actor, productID, warehouseID uint, quantity int, note string) (int, error) {
	if quantity <= 0 {
		return 0, &ValidationError{Message: "Miktar 0'dan büyük olmalı"}
	}

	var newQty int
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		product, err := findProduct(tx, productID)
		if err != nil {
			return err
		}
		if _, err := findWarehouse(tx, warehouseID); err != nil {
			return err
		}

		level, err := lockStockLevel(tx, productID, warehouseID)
		if err != nil {
			return err
		}

		before := level.Quantity
		newQty = before + quantity
		if err := updateQuantity(tx, level.ID, newQty); err != nil {
			return err
		}

		return appendEvent(tx, &models.LedgerEvent{
			Kind:           models.EventStockEntry,
			ProductID:      &product.ID,
			WarehouseID:    &warehouseID,
			QuantityBefore: &before,
			QuantityAfter:  &newQty,
			Description:    eventDescription(product.Name, note),
			ActorID:        actor.UserID,
			ActorName:      actor.UserName,
		})
	})
	if err != nil {
		return 0, err
	}
	return newQty, nil
}

// Exit stok çıkışı yapar ve yeni miktarı döner. Mevcut miktar istenenden
// azsa InsufficientStockError ile işlemin tamamı geri alınır.
func (s *Service) Exit(ctx context.Context, actor Actor, in ExitInput) (int, error) {
	if in.Quantity <= 0 {
		return 0, &ValidationError{Message: "Miktar 0'dan büyük olmalı"}
	}

	var newQty int
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		newQty, err = s.ExitTx(tx, actor, in)
		return err
	})
	if err != nil {
		return 0, err
	}
	return newQty, nil
}

// ExitTx, Exit'in transaction kapsamındaki gövdesidir. Fiş aggregator'ı
// batch'in tamamını tek transaction'da tutmak için doğrudan bunu çağırır;
// kilitli satır her çağrıda yeniden okunduğundan aynı ürünün ikinci kalemi
// ilk kalemin düşümünü görür.
func (s *Service) ExitTx(tx *gorm.DB, actor Actor, in ExitInput) (int, error) {
	if in.Quantity <= 0 {
		return 0, &ValidationError{Message: "Miktar 0'dan büyük olmalı"}
	}

	product, err := findProduct(tx, in.ProductID)
	if err != nil {
		return 0, err
	}
	if _, err := findWarehouse(tx, in.WarehouseID); err != nil {
		return 0, err
	}

	level, err := lockStockLevel(tx, in.ProductID, in.WarehouseID)
	if err != nil {
		return 0, err
	}

	before := level.Quantity
	if before < in.Quantity {
		return 0, &InsufficientStockError{
			ProductName: product.Name,
			Requested:   in.Quantity,
			Available:   before,
		}
	}

	newQty := before - in.Quantity
	if err := updateQuantity(tx, level.ID, newQty); err != nil {
		return 0, err
	}

	if err := appendEvent(tx, &models.LedgerEvent{
		Kind:           models.EventStockExit,
		ProductID:      &product.ID,
		WarehouseID:    &in.WarehouseID,
		QuantityBefore: &before,
		QuantityAfter:  &newQty,
		Description:    eventDescription(product.Name, in.Note),
		ActorID:        actor.UserID,
		ActorName:      actor.UserName,
		PlatformID:     in.PlatformID,
		CarrierID:      in.CarrierID,
		CustomerID:     in.CustomerID,
	}); err != nil {
		return 0, err
	}

	return newQty, nil
}

// Transfer bir ürünü kaynak depodan hedef depoya taşır. İki taraf birlikte
// commit olur; kısmi transfer (kaynaktan düşmüş, hedefe yazılmamış) mümkün
// değildir.
func (s *Service) Transfer(ctx context.Context, actor Actor, productID, sourceID, targetID uint, quantity int, note string) error {
	if quantity <= 0 {
		return &ValidationError{Message: "Miktar 0'dan büyük olmalı"}
	}
	if sourceID == targetID {
		return &ValidationError{Message: "Kaynak ve hedef depo aynı olamaz"}
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		product, err := findProduct(tx, productID)
		if err != nil {
			return err
		}
		if _, err := findWarehouse(tx, sourceID); err != nil {
			return err
		}
		if _, err := findWarehouse(tx, targetID); err != nil {
			return err
		}

		// Satırlar deadlock'a girmemek için her zaman artan depo id
		// sırasıyla kilitlenir.
		lockOrder := []uint{sourceID, targetID}
		if lockOrder[1] < lockOrder[0] {
			lockOrder[0], lockOrder[1] = lockOrder[1], lockOrder[0]
		}
		levels := make(map[uint]*models.StockLevel, 2)
		for _, warehouseID := range lockOrder {
			level, err := lockStockLevel(tx, productID, warehouseID)
			if err != nil {
				return err
			}
			levels[warehouseID] = level
		}

		source := levels[sourceID]
		target := levels[targetID]

		if source.Quantity < quantity {
			return &InsufficientStockError{
				ProductName: product.Name,
				Requested:   quantity,
				Available:   source.Quantity,
			}
		}

		sourceBefore := source.Quantity
		sourceAfter := sourceBefore - quantity
		targetBefore := target.Quantity
		targetAfter := targetBefore + quantity

		if err := updateQuantity(tx, source.ID, sourceAfter); err != nil {
			return err
		}
		if err := updateQuantity(tx, target.ID, targetAfter); err != nil {
			return err
		}

		description := eventDescription(product.Name, note)
		description = fmt.Sprintf("%s (hedef depo: %d → %d)", description, targetBefore, targetAfter)

		return appendEvent(tx, &models.LedgerEvent{
			Kind:              models.EventTransfer,
			ProductID:         &product.ID,
			WarehouseID:       &sourceID,
			TargetWarehouseID: &targetID,
			QuantityBefore:    &sourceBefore,
			QuantityAfter:     &sourceAfter,
			Description:       description,
			ActorID:           actor.UserID,
			ActorName:         actor.UserName,
		})
	})
}

// Quantity güncel stok miktarını okur; satır yoksa 0 döner.
func (s *Service) Quantity(ctx context.Context, productID, warehouseID uint) (int, error) {
	var level models.StockLevel
	err := s.db.WithContext(ctx).
		Where("product_id = ? AND warehouse_id = ?", productID, warehouseID).
		First(&level).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("stok kaydı okunamadı: %w", err)
	}
	return level.Quantity, nil
}

// LogEvent stok dışı bir denetim olayı (ürün/şifre/ayar değişikliği) yazar.
func (s *Service) LogEvent(ctx context.Context, event *models.LedgerEvent) error {
	return appendEvent(s.db.WithContext(ctx), event)
}

// AppendEventTx, çağıranın transaction'ı içinde denetim olayı yazar; olay
// kaydı başarısız olursa transaction'ın tamamı geri alınır.
func (s *Service) AppendEventTx(tx *gorm.DB, event *models.LedgerEvent) error {
	return appendEvent(tx, event)
}

// LockLevel ürünü doğrular ve (ürün, depo) stok satırını FOR UPDATE ile
// kilitleyip döner. Fiş aggregator'ının kümülatif ön doğrulaması kullanır.
func (s *Service) LockLevel(tx *gorm.DB, productID, warehouseID uint) (*models.Product, *models.StockLevel, error) {
	product, err := findProduct(tx, productID)
	if err != nil {
		return nil, nil, err
	}
	level, err := lockStockLevel(tx, productID, warehouseID)
	if err != nil {
		return nil, nil, err
	}
	return product, level, nil
}

func findProduct(tx *gorm.DB, id uint) (*models.Product, error) {
	var product models.Product
	if err := tx.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "Ürün", ID: id}
		}
		return nil, fmt.Errorf("ürün okunamadı: %w", err)
	}
	return &product, nil
}

func findWarehouse(tx *gorm.DB, id uint) (*models.Warehouse, error) {
	var warehouse models.Warehouse
	if err := tx.First(&warehouse, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "Depo", ID: id}
		}
		return nil, fmt.Errorf("depo okunamadı: %w", err)
	}
	return &warehouse, nil
}

// lockStockLevel (ürün, depo) satırını FOR UPDATE ile kilitler; satır yoksa
// miktar 0 ile oluşturur. Oluşan satır, transaction geri alınırsa kalıcı
// olmaz.
func lockStockLevel(tx *gorm.DB, productID, warehouseID uint) (*models.StockLevel, error) {
	level := models.StockLevel{ProductID: productID, WarehouseID: warehouseID}
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("product_id = ? AND warehouse_id = ?", productID, warehouseID).
		FirstOrCreate(&level).Error; err != nil {
		return nil, fmt.Errorf("stok kaydı kilitlenemedi: %w", err)
	}
	return &level, nil
}

func updateQuantity(tx *gorm.DB, levelID uint, quantity int) error {
	if err := tx.Model(&models.StockLevel{}).
		Where("id = ?", levelID).
		Update("quantity", quantity).Error; err != nil {
		return fmt.Errorf("stok miktarı güncellenemedi: %w", err)
	}
	return nil
}

func appendEvent(tx *gorm.DB, event *models.LedgerEvent) error {
	if err := tx.Create(event).Error; err != nil {
		return fmt.Errorf("işlem geçmişi kaydedilemedi: %w", err)
	}
	return nil
}

func eventDescription(productName, note string) string {
	if note == "" {
		return productName
	}
	return fmt.Sprintf("%s - %s", productName, note)
}
