package ledger_test

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"

	"bikestock-backend/internal/ledger"
	"bikestock-backend/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB gerçek bir Postgres ister; TEST_DATABASE_DSN tanımlı değilse
// test atlanır. Her kurulum ilgili tabloları sıfırdan oluşturur.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("TEST_DATABASE_DSN tanımlı değil, entegrasyon testi atlanıyor")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("test veritabanına bağlanılamadı: %v", err)
	}

	err = db.Migrator().DropTable(
		&models.LedgerEvent{},
		&models.ReceiptLine{},
		&models.Receipt{},
		&models.StockLevel{},
		&models.Product{},
		&models.Warehouse{},
	)
	if err != nil {
		t.Fatalf("tablolar temizlenemedi: %v", err)
	}
	err = db.AutoMigrate(
		&models.Warehouse{},
		&models.Product{},
		&models.StockLevel{},
		&models.LedgerEvent{},
		&models.Receipt{},
		&models.ReceiptLine{},
	)
	if err != nil {
		t.Fatalf("tablolar oluşturulamadı: %v", err)
	}

	return db
}

func seedProductAndWarehouses(t *testing.T, db *gorm.DB) (models.Product, models.Warehouse, models.Warehouse) {
	t.Helper()

	product := models.Product{
		Name:    "Dağ Bisikleti",
		RimSize: "26",
		Barcode: models.BarcodeNone,
		Desi:    decimal.NewFromFloat(12.5),
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("ürün oluşturulamadı: %v", err)
	}

	main := models.Warehouse{Name: "Ana Depo", Active: true}
	store := models.Warehouse{Name: "Satış Mağazası", Active: true}
	if err := db.Create(&main).Error; err != nil {
		t.Fatalf("depo oluşturulamadı: %v", err)
	}
	if err := db.Create(&store).Error; err != nil {
		t.Fatalf("depo oluşturulamadı: %v", err)
	}

	return product, main, store
}

var testActor = ledger.Actor{UserID: 1, UserName: "testuser"}

func TestEntryStartsFromZero(t *testing.T) {
	db := setupTestDB(t)
	product, main, _ := seedProductAndWarehouses(t, db)
	svc := ledger.NewService(db)
	ctx := context.Background()

	newQty, err := svc.Entry(ctx, testActor, product.ID, main.ID, 10, "ilk parti")
	if err != nil {
		t.Fatalf("Entry başarısız: %v", err)
	}
	if newQty != 10 {
		t.Errorf("yeni miktar = %d, beklenen 10", newQty)
	}

	qty, err := svc.Quantity(ctx, product.ID, main.ID)
	if err != nil {
		t.Fatalf("Quantity başarısız: %v", err)
	}
	if qty != 10 {
		t.Errorf("okunan miktar = %d, beklenen 10", qty)
	}

	var event models.LedgerEvent
	if err := db.Where("kind = ?", models.EventStockEntry).First(&event).Error; err != nil {
		t.Fatalf("giriş olayı bulunamadı: %v", err)
	}
	if event.QuantityBefore == nil || *event.QuantityBefore != 0 {
		t.Errorf("olay önceki miktarı 0 olmalı, %v bulundu", event.QuantityBefore)
	}
	if event.QuantityAfter == nil || *event.QuantityAfter != 10 {
		t.Errorf("olay sonraki miktarı 10 olmalı, %v bulundu", event.QuantityAfter)
	}
}

func TestExitInsufficientStockRollsBack(t *testing.T) {
	db := setupTestDB(t)
	product, main, _ := seedProductAndWarehouses(t, db)
	svc := ledger.NewService(db)
	ctx := context.Background()

	if _, err := svc.Entry(ctx, testActor, product.ID, main.ID, 3, ""); err != nil {
		t.Fatalf("Entry başarısız: %v", err)
	}

	_, err := svc.Exit(ctx, testActor, ledger.ExitInput{
		ProductID:   product.ID,
		WarehouseID: main.ID,
		Quantity:    5,
	})
	var insufficient *ledger.InsufficientStockError
	if !errors.As(err, &insufficient) {
		t.Fatalf("InsufficientStockError bekleniyordu, %v alındı", err)
	}
	if insufficient.Available != 3 || insufficient.Requested != 5 {
		t.Errorf("hata alanları = mevcut %d / istenen %d, beklenen 3 / 5",
			insufficient.Available, insufficient.Requested)
	}

	// Başarısız çıkış hiçbir iz bırakmamalı
	qty, _ := svc.Quantity(ctx, product.ID, main.ID)
	if qty != 3 {
		t.Errorf("miktar = %d, başarısız çıkış sonrası 3 kalmalıydı", qty)
	}
	var exitCount int64
	db.Model(&models.LedgerEvent{}).Where("kind = ?", models.EventStockExit).Count(&exitCount)
	if exitCount != 0 {
		t.Errorf("başarısız çıkış %d olay kaydı bıraktı, 0 olmalı", exitCount)
	}
}

func TestExitExactQuantityReachesZero(t *testing.T) {
	db := setupTestDB(t)
	product, main, _ := seedProductAndWarehouses(t, db)
	svc := ledger.NewService(db)
	ctx := context.Background()

	if _, err := svc.Entry(ctx, testActor, product.ID, main.ID, 7, ""); err != nil {
		t.Fatalf("Entry başarısız: %v", err)
	}

	newQty, err := svc.Exit(ctx, testActor, ledger.ExitInput{
		ProductID:   product.ID,
		WarehouseID: main.ID,
		Quantity:    7,
	})
	if err != nil {
		t.Fatalf("tam miktar çıkışı reddedildi: %v", err)
	}
	if newQty != 0 {
		t.Errorf("yeni miktar = %d, beklenen 0", newQty)
	}
}

func TestTransferConservesTotal(t *testing.T) {
	db := setupTestDB(t)
	product, main, store := seedProductAndWarehouses(t, db)
	svc := ledger.NewService(db)
	ctx := context.Background()

	if _, err := svc.Entry(ctx, testActor, product.ID, main.ID, 10, ""); err != nil {
		t.Fatalf("Entry başarısız: %v", err)
	}

	if err := svc.Transfer(ctx, testActor, product.ID, main.ID, store.ID, 4, "mağazaya sevk"); err != nil {
		t.Fatalf("Transfer başarısız: %v", err)
	}

	mainQty, _ := svc.Quantity(ctx, product.ID, main.ID)
	storeQty, _ := svc.Quantity(ctx, product.ID, store.ID)
	if mainQty != 6 || storeQty != 4 {
		t.Errorf("miktarlar = kaynak %d / hedef %d, beklenen 6 / 4", mainQty, storeQty)
	}
	if mainQty+storeQty != 10 {
		t.Errorf("toplam %d, transfer toplamı korumalıydı (10)", mainQty+storeQty)
	}

	// Transfer tek olay olarak kaydedilir
	var events []models.LedgerEvent
	db.Where("kind = ?", models.EventTransfer).Find(&events)
	if len(events) != 1 {
		t.Fatalf("%d transfer olayı bulundu, 1 olmalı", len(events))
	}
	ev := events[0]
	if ev.TargetWarehouseID == nil || *ev.TargetWarehouseID != store.ID {
		t.Errorf("hedef depo id yanlış: %v", ev.TargetWarehouseID)
	}
}

func TestTransferInsufficientLeavesBothSidesUntouched(t *testing.T) {
	db := setupTestDB(t)
	product, main, store := seedProductAndWarehouses(t, db)
	svc := ledger.NewService(db)
	ctx := context.Background()

	if _, err := svc.Entry(ctx, testActor, product.ID, main.ID, 2, ""); err != nil {
		t.Fatalf("Entry başarısız: %v", err)
	}

	err := svc.Transfer(ctx, testActor, product.ID, main.ID, store.ID, 5, "")
	var insufficient *ledger.InsufficientStockError
	if !errors.As(err, &insufficient) {
		t.Fatalf("InsufficientStockError bekleniyordu, %v alındı", err)
	}

	mainQty, _ := svc.Quantity(ctx, product.ID, main.ID)
	storeQty, _ := svc.Quantity(ctx, product.ID, store.ID)
	if mainQty != 2 || storeQty != 0 {
		t.Errorf("miktarlar = kaynak %d / hedef %d, beklenen 2 / 0", mainQty, storeQty)
	}
}

// Aynı stoka eşzamanlı çıkışlar: kilitleme sayesinde toplam düşüm hiçbir
// zaman mevcut stoku aşamaz, miktar eksiye inemez.
func TestConcurrentExitsNeverGoNegative(t *testing.T) {
	db := setupTestDB(t)
	product, main, _ := seedProductAndWarehouses(t, db)
	svc := ledger.NewService(db)
	ctx := context.Background()

	const initial = 10
	if _, err := svc.Entry(ctx, testActor, product.ID, main.ID, initial, ""); err != nil {
		t.Fatalf("Entry başarısız: %v", err)
	}

	const workers = 8
	const perExit = 3

	var wg sync.WaitGroup
	successes := make(chan int, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Exit(ctx, testActor, ledger.ExitInput{
				ProductID:   product.ID,
				WarehouseID: main.ID,
				Quantity:    perExit,
			})
			if err == nil {
				successes <- perExit
			}
		}()
	}
	wg.Wait()
	close(successes)

	removed := 0
	for q := range successes {
		removed += q
	}

	qty, err := svc.Quantity(ctx, product.ID, main.ID)
	if err != nil {
		t.Fatalf("Quantity başarısız: %v", err)
	}
	if qty < 0 {
		t.Fatalf("miktar eksiye düştü: %d", qty)
	}
	if qty != initial-removed {
		t.Errorf("miktar = %d, beklenen %d (başarılı düşüm %d)", qty, initial-removed, removed)
	}
	if removed > initial {
		t.Errorf("toplam düşüm %d başlangıç stokunu (%d) aştı", removed, initial)
	}
}

func TestQuantityMissingRowIsZero(t *testing.T) {
	db := setupTestDB(t)
	product, main, _ := seedProductAndWarehouses(t, db)
	svc := ledger.NewService(db)

	qty, err := svc.Quantity(context.Background(), product.ID, main.ID)
	if err != nil {
		t.Fatalf("Quantity başarısız: %v", err)
	}
	if qty != 0 {
		t.Errorf("satırsız stok = %d, beklenen 0", qty)
	}
}

func TestExitUnknownProductNotFound(t *testing.T) {
	db := setupTestDB(t)
	_, main, _ := seedProductAndWarehouses(t, db)
	svc := ledger.NewService(db)

	_, err := svc.Exit(context.Background(), testActor, ledger.ExitInput{
		ProductID:   9999,
		WarehouseID: main.ID,
		Quantity:    1,
	})
	var notFound *ledger.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("NotFoundError bekleniyordu, %v alındı", err)
	}
}
