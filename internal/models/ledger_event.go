package models

import "time"

type EventKind string

const (
	EventStockEntry     EventKind = "STOK_GIRIS"
	EventStockExit      EventKind = "STOK_CIKIS"
	EventTransfer       EventKind = "DEPO_TRANSFER"
	EventProductCreate  EventKind = "URUN_EKLEME"
	EventProductUpdate  EventKind = "URUN_GUNCELLEME"
	EventProductDelete  EventKind = "URUN_SILME"
	EventPasswordChange EventKind = "SIFRE_DEGISTIRME"
	EventPasswordReset  EventKind = "SIFRE_SIFIRLAMA"
	EventSettingUpdate  EventKind = "AYAR_GUNCELLEME"
)

// LedgerEvent: işlem geçmişi satırı. Yazıldıktan sonra asla güncellenmez
// veya silinmez; raporlar ve geçmiş ekranı yalnızca buradan okur.
type LedgerEvent struct {
	ID   uint      `gorm:"primaryKey" json:"id"`
	Kind EventKind `gorm:"size:50;not null;index" json:"kind"`

	// Ürün/depo referansları (stok dışı olaylarda boş kalabilir)
	ProductID         *uint `gorm:"index" json:"product_id"`
	WarehouseID       *uint `gorm:"index" json:"warehouse_id"`
	TargetWarehouseID *uint `json:"target_warehouse_id"` // sadece transferde dolu

	// Miktarlar sayısal tutulur, gösterim formatı sunum katmanının işi
	QuantityBefore *int `json:"quantity_before"`
	QuantityAfter  *int `json:"quantity_after"`

	Description string `gorm:"size:500;not null" json:"description"`

	// İşlemi yapan kullanıcı (ad denormalize; kullanıcı silinse de geçmiş kalır)
	ActorID   uint   `gorm:"not null" json:"actor_id"`
	ActorName string `gorm:"size:100;not null" json:"actor_name"`

	// Opsiyonel satış kanalı / kargo bağlantıları (çıkış işlemleri için)
	PlatformID *uint `json:"platform_id"`
	CarrierID  *uint `json:"carrier_id"`
	CustomerID *uint `json:"customer_id"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
}
