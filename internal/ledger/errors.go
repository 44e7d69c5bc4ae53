package ledger

import "fmt"

// ValidationError: hiçbir depolama erişimi yapılmadan reddedilen girdi hatası.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// InsufficientStockError: istenen miktar mevcut stoktan büyük. İşlemin
// tamamı (tek çıkış/transfer ya da bütün fiş batch'i) geri alınır.
type InsufficientStockError struct {
	ProductName string
	Requested   int
	Available   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("%s için yeterli stok yok! (Mevcut: %d, İstenen: %d)",
		e.ProductName, e.Available, e.Requested)
}

// NotFoundError: referans verilen ürün/depo/fiş bulunamadı.
type NotFoundError struct {
	Entity string
	ID     uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s bulunamadı (ID: %d)", e.Entity, e.ID)
}

// ConflictError: mevcut bir benzersiz değerle çakışma ya da stoklu ürünü
// silme gibi durum çatışmaları.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }
