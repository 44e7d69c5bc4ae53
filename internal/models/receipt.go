package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReceiptStatusCompleted: fişlerin tek durumu. Kısmi/iptal fiş yok;
// başarısız batch hiç fiş üretmez.
const ReceiptStatusCompleted = "TAMAMLANDI"

// Receipt: tek kullanıcı aksiyonunda çıkışı yapılan ürünleri gruplayan
// numaralı stok çıkış fişi.
type Receipt struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Number      string          `gorm:"size:50;not null;uniqueIndex" json:"number"` // fiş no
	WarehouseID uint            `gorm:"not null;index" json:"warehouse_id"`
	Warehouse   Warehouse       `json:"-"`
	Note        string          `gorm:"size:500" json:"note"`
	LineCount   int             `gorm:"not null" json:"line_count"` // toplam ürün çeşidi
	UnitCount   int             `gorm:"not null" json:"unit_count"` // toplam adet
	TotalDesi   decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"total_desi"`
	Status      string          `gorm:"size:20;not null;default:TAMAMLANDI" json:"status"`
	ActorID     uint            `gorm:"not null" json:"actor_id"`
	ActorName   string          `gorm:"size:100;not null" json:"actor_name"`
	PlatformID  *uint           `json:"platform_id"`
	CreatedAt   time.Time       `gorm:"index" json:"created_at"`

	Lines []ReceiptLine `json:"lines"`
}

// ReceiptLine: fişin bir kalemi. Ürün adı ve birim desi fiş anında
// kopyalanır; ürün sonradan değişse de fiş geçmişi sabit kalır.
type ReceiptLine struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	ReceiptID   uint            `gorm:"not null;index" json:"receipt_id"`
	ProductID   uint            `gorm:"not null;index" json:"product_id"`
	ProductName string          `gorm:"size:200;not null" json:"product_name"`
	Quantity    int             `gorm:"not null" json:"quantity"`
	UnitDesi    decimal.Decimal `gorm:"type:decimal(10,2);default:0" json:"unit_desi"`
	TotalDesi   decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"total_desi"`
	CarrierID   *uint           `json:"carrier_id"`
	CreatedAt   time.Time       `json:"created_at"`
}
