package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BarcodeNone: barkodu olmayan ürünler için sentinel değer.
// Benzersizlik kontrolü bu değeri atlar.
const BarcodeNone = "00"

type Product struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	Name      string          `gorm:"size:200;not null;index" json:"name"`
	RimSize   string          `gorm:"size:20" json:"rim_size"` // jant ebatı (26", 28" vs.)
	Barcode   string          `gorm:"size:100;index" json:"barcode"`
	Desi      decimal.Decimal `gorm:"type:decimal(10,2);default:0" json:"desi"` // birim desi (kargo ağırlık/hacim)
	Note      string          `gorm:"size:500" json:"note"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func (p *Product) HasBarcode() bool {
	return p.Barcode != "" && p.Barcode != BarcodeNone
}
