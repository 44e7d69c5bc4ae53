package models

import "time"

// StockLevel: bir ürünün bir depodaki güncel miktarı.
// (product_id, warehouse_id) çifti benzersizdir; satır ilk giriş/transfer-in
// ile oluşur, satır yokken miktar 0 kabul edilir.
// Değişmez kural: Quantity hiçbir zaman negatif olamaz.
type StockLevel struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ProductID   uint      `gorm:"not null;uniqueIndex:idx_stock_product_warehouse" json:"product_id"`
	Product     Product   `json:"-"`
	WarehouseID uint      `gorm:"not null;uniqueIndex:idx_stock_product_warehouse" json:"warehouse_id"`
	Warehouse   Warehouse `json:"-"`
	Quantity    int       `gorm:"not null;default:0" json:"quantity"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
