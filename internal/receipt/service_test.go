package receipt_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"bikestock-backend/internal/ledger"
	"bikestock-backend/internal/models"
	"bikestock-backend/internal/receipt"

	"github.com/shopspring/decimal"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestNumberFormat(t *testing.T) {
	at := time.Date(2026, 8, 29, 14, 30, 5, 0, time.Local)
	got := receipt.Number(at, 7)
	want := "C202608291430057"
	if got != want {
		t.Errorf("fiş numarası = %q, beklenen %q", got, want)
	}
}

func TestCreateBatchRejectsInvalidLinesBeforeStorage(t *testing.T) {
	// nil db: doğrulama depoya hiç inmeden reddetmeli
	svc := receipt.NewService(nil, ledger.NewService(nil))
	actor := ledger.Actor{UserID: 1, UserName: "test"}
	ctx := context.Background()

	var validation *ledger.ValidationError

	_, err := svc.CreateBatch(ctx, actor, receipt.BatchInput{WarehouseID: 1})
	if !errors.As(err, &validation) {
		t.Errorf("boş batch = %v, ValidationError bekleniyordu", err)
	}

	_, err = svc.CreateBatch(ctx, actor, receipt.BatchInput{
		WarehouseID: 1,
		Lines:       []receipt.BatchLine{{ProductID: 1, Quantity: 0}},
	})
	if !errors.As(err, &validation) {
		t.Errorf("sıfır miktarlı kalem = %v, ValidationError bekleniyordu", err)
	}
}

func setupReceiptTestDB(t *testing.T) (*gorm.DB, *ledger.Service, *receipt.Service) {
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

	ledgerSvc := ledger.NewService(db)
	return db, ledgerSvc, receipt.NewService(db, ledgerSvc)
}

func seedBatchData(t *testing.T, db *gorm.DB, ledgerSvc *ledger.Service) (models.Product, models.Product, models.Warehouse) {
	t.Helper()

	bike := models.Product{Name: "Şehir Bisikleti", RimSize: "28", Barcode: models.BarcodeNone, Desi: decimal.NewFromFloat(10.0)}
	kids := models.Product{Name: "Çocuk Bisikleti", RimSize: "20", Barcode: models.BarcodeNone, Desi: decimal.NewFromFloat(6.5)}
	warehouse := models.Warehouse{Name: "Online Satış", Active: true}

	for _, rec := range []interface{}{&bike, &kids, &warehouse} {
		if err := db.Create(rec).Error; err != nil {
			t.Fatalf("seed başarısız: %v", err)
		}
	}

	actor := ledger.Actor{UserID: 1, UserName: "testuser"}
	ctx := context.Background()
	if _, err := ledgerSvc.Entry(ctx, actor, bike.ID, warehouse.ID, 10, ""); err != nil {
		t.Fatalf("giriş başarısız: %v", err)
	}
	if _, err := ledgerSvc.Entry(ctx, actor, kids.ID, warehouse.ID, 5, ""); err != nil {
		t.Fatalf("giriş başarısız: %v", err)
	}

	return bike, kids, warehouse
}

func TestCreateBatchHappyPath(t *testing.T) {
	db, ledgerSvc, svc := setupReceiptTestDB(t)
	bike, kids, warehouse := seedBatchData(t, db, ledgerSvc)
	actor := ledger.Actor{UserID: 1, UserName: "testuser"}
	ctx := context.Background()

	rec, err := svc.CreateBatch(ctx, actor, receipt.BatchInput{
		WarehouseID: warehouse.ID,
		Note:        "günlük sevkiyat",
		Lines: []receipt.BatchLine{
			{ProductID: bike.ID, Quantity: 3},
			{ProductID: kids.ID, Quantity: 2},
		},
	})
	if err != nil {
		t.Fatalf("CreateBatch başarısız: %v", err)
	}

	if rec.LineCount != 2 {
		t.Errorf("kalem sayısı = %d, beklenen 2", rec.LineCount)
	}
	if rec.UnitCount != 5 {
		t.Errorf("adet toplamı = %d, beklenen 5", rec.UnitCount)
	}
	// 3 * 10.0 + 2 * 6.5 = 43.0
	if !rec.TotalDesi.Equal(decimal.NewFromFloat(43.0)) {
		t.Errorf("toplam desi = %s, beklenen 43", rec.TotalDesi)
	}
	if rec.Status != models.ReceiptStatusCompleted {
		t.Errorf("fiş durumu = %q, beklenen %q", rec.Status, models.ReceiptStatusCompleted)
	}
	if rec.Number == "" || rec.Number[0] != 'C' {
		t.Errorf("fiş numarası formatı bozuk: %q", rec.Number)
	}

	// Stoklar düşmüş olmalı
	bikeQty, _ := ledgerSvc.Quantity(ctx, bike.ID, warehouse.ID)
	kidsQty, _ := ledgerSvc.Quantity(ctx, kids.ID, warehouse.ID)
	if bikeQty != 7 || kidsQty != 3 {
		t.Errorf("miktarlar = %d / %d, beklenen 7 / 3", bikeQty, kidsQty)
	}

	// Her kalem için bir çıkış olayı yazılır
	var exitCount int64
	db.Model(&models.LedgerEvent{}).Where("kind = ?", models.EventStockExit).Count(&exitCount)
	if exitCount != 2 {
		t.Errorf("çıkış olayı sayısı = %d, beklenen 2", exitCount)
	}
}

// Aynı ürünün iki kalemi ayrı ayrı yeterli ama toplamda yetersizse batch'in
// tamamı reddedilir ve hiçbir iz kalmaz.
func TestCreateBatchCumulativeDemandAllOrNothing(t *testing.T) {
	db, ledgerSvc, svc := setupReceiptTestDB(t)
	bike, _, warehouse := seedBatchData(t, db, ledgerSvc)
	actor := ledger.Actor{UserID: 1, UserName: "testuser"}
	ctx := context.Background()

	// Stok 10: 6 + 6 kalemlerinin her biri tek başına karşılanabilir
	_, err := svc.CreateBatch(ctx, actor, receipt.BatchInput{
		WarehouseID: warehouse.ID,
		Lines: []receipt.BatchLine{
			{ProductID: bike.ID, Quantity: 6},
			{ProductID: bike.ID, Quantity: 6},
		},
	})
	var insufficient *ledger.InsufficientStockError
	if !errors.As(err, &insufficient) {
		t.Fatalf("InsufficientStockError bekleniyordu, %v alındı", err)
	}
	if insufficient.Requested != 12 || insufficient.Available != 10 {
		t.Errorf("hata alanları = istenen %d / mevcut %d, beklenen 12 / 10",
			insufficient.Requested, insufficient.Available)
	}

	// Hiçbir etki kalmamalı: stok aynı, fiş yok, olay yok
	qty, _ := ledgerSvc.Quantity(ctx, bike.ID, warehouse.ID)
	if qty != 10 {
		t.Errorf("miktar = %d, beklenen 10", qty)
	}
	var receiptCount, eventCount int64
	db.Model(&models.Receipt{}).Count(&receiptCount)
	db.Model(&models.LedgerEvent{}).Where("kind = ?", models.EventStockExit).Count(&eventCount)
	if receiptCount != 0 {
		t.Errorf("başarısız batch %d fiş bıraktı", receiptCount)
	}
	if eventCount != 0 {
		t.Errorf("başarısız batch %d çıkış olayı bıraktı", eventCount)
	}
}

// Fiş kalemi ürün adını ve desisini fiş anında kopyalar; ürün sonradan
// değişse de fiş sabit kalır.
func TestReceiptLineSnapshotSurvivesProductUpdate(t *testing.T) {
	db, ledgerSvc, svc := setupReceiptTestDB(t)
	bike, _, warehouse := seedBatchData(t, db, ledgerSvc)
	actor := ledger.Actor{UserID: 1, UserName: "testuser"}
	ctx := context.Background()

	rec, err := svc.CreateBatch(ctx, actor, receipt.BatchInput{
		WarehouseID: warehouse.ID,
		Lines:       []receipt.BatchLine{{ProductID: bike.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("CreateBatch başarısız: %v", err)
	}

	if err := db.Model(&models.Product{}).Where("id = ?", bike.ID).
		Updates(map[string]interface{}{"name": "Yeni Ad", "desi": decimal.NewFromInt(99)}).Error; err != nil {
		t.Fatalf("ürün güncellenemedi: %v", err)
	}

	fetched, err := svc.Get(ctx, rec.ID)
	if err != nil {
		t.Fatalf("Get başarısız: %v", err)
	}
	if len(fetched.Lines) != 1 {
		t.Fatalf("kalem sayısı = %d, beklenen 1", len(fetched.Lines))
	}
	line := fetched.Lines[0]
	if line.ProductName != "Şehir Bisikleti" {
		t.Errorf("kalem ürün adı = %q, fiş anındaki ad korunmalıydı", line.ProductName)
	}
	if !line.UnitDesi.Equal(decimal.NewFromFloat(10.0)) {
		t.Errorf("kalem desi = %s, fiş anındaki değer korunmalıydı", line.UnitDesi)
	}
}
