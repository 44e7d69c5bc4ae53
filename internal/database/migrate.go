package database

import (
	"fmt"

	"bikestock-backend/internal/models"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Migrate şemayı idempotent şekilde günceller: eksik tablo/kolon ekler,
// var olan veriye asla dokunmaz. Her process açılışında çalıştırılabilir.
func Migrate(db *gorm.DB) error {
	// Eski kurulumlarda urun_stok karşılığı tabloda miktar kolonu farklı
	// adla (stok_adedi) bulunuyordu; AutoMigrate'ten önce taşı ki dolu
	// veritabanında iki ayrı kolon oluşmasın.
	if db.Migrator().HasTable(&models.StockLevel{}) {
		if db.Migrator().HasColumn(&models.StockLevel{}, "stok_adedi") &&
			!db.Migrator().HasColumn(&models.StockLevel{}, "quantity") {
			log.Info("stock_levels.stok_adedi kolonu quantity olarak yeniden adlandırılıyor...")
			if err := db.Exec("ALTER TABLE stock_levels RENAME COLUMN stok_adedi TO quantity").Error; err != nil {
				return fmt.Errorf("stok kolonu yeniden adlandırılamadı: %w", err)
			}
		}
	}

	if err := db.AutoMigrate(
		&models.Warehouse{},
		&models.User{},
		&models.Product{},
		&models.StockLevel{},
		&models.LedgerEvent{},
		&models.Receipt{},
		&models.ReceiptLine{},
		&models.Carrier{},
		&models.Platform{},
		&models.Customer{},
		&models.Setting{},
	); err != nil {
		return fmt.Errorf("AutoMigrate hatası: %w", err)
	}

	if err := seedDefaults(db); err != nil {
		return err
	}

	return nil
}

// seedDefaults referans verilerini yalnızca tablo tamamen boşken ekler.
func seedDefaults(db *gorm.DB) error {
	var warehouseCount int64
	if err := db.Model(&models.Warehouse{}).Count(&warehouseCount).Error; err != nil {
		return fmt.Errorf("depo sayısı okunamadı: %w", err)
	}
	if warehouseCount == 0 {
		log.Info("Varsayılan depolar ekleniyor...")
		warehouses := []models.Warehouse{
			{Name: "Ana Depo", Address: "Merkez Lokasyon", Active: true},
			{Name: "Satış Mağazası", Address: "Şehir Merkezi", Active: true},
			{Name: "Online Satış", Address: "E-ticaret", Active: true},
		}
		if err := db.Create(&warehouses).Error; err != nil {
			return fmt.Errorf("varsayılan depolar eklenemedi: %w", err)
		}
	}

	var carrierCount int64
	if err := db.Model(&models.Carrier{}).Count(&carrierCount).Error; err != nil {
		return fmt.Errorf("kargo firması sayısı okunamadı: %w", err)
	}
	if carrierCount == 0 {
		log.Info("Varsayılan kargo firmaları ekleniyor...")
		names := []string{
			"Aras Kargo", "MNG Kargo", "Yurtiçi Kargo", "PTT Kargo",
			"UPS Kargo", "DHL Kargo", "Sürat Kargo", "Horoz Lojistik",
		}
		carriers := make([]models.Carrier, 0, len(names))
		for _, name := range names {
			carriers = append(carriers, models.Carrier{
				Name:      name,
				ShortName: firstWord(name),
				Active:    true,
			})
		}
		if err := db.Create(&carriers).Error; err != nil {
			return fmt.Errorf("varsayılan kargo firmaları eklenemedi: %w", err)
		}
	}

	var platformCount int64
	if err := db.Model(&models.Platform{}).Count(&platformCount).Error; err != nil {
		return fmt.Errorf("platform sayısı okunamadı: %w", err)
	}
	if platformCount == 0 {
		log.Info("Varsayılan platformlar ekleniyor...")
		platforms := []models.Platform{
			{Name: "Mağaza", Type: "fiziksel", Active: true},
			{Name: "Web Sitesi", Type: "online", Active: true},
			{Name: "Pazaryeri", Type: "online", Active: true},
		}
		if err := db.Create(&platforms).Error; err != nil {
			return fmt.Errorf("varsayılan platformlar eklenemedi: %w", err)
		}
	}

	return nil
}

func firstWord(s string) string {
	for i, r := range s {
		if r == ' ' {
			return s[:i]
		}
	}
	return s
}
