package ledger_test

import (
	"context"
	"errors"
	"testing"

	"bikestock-backend/internal/ledger"
)

func TestInsufficientStockErrorMessage(t *testing.T) {
	err := &ledger.InsufficientStockError{
		ProductName: "Dağ Bisikleti 26",
		Requested:   5,
		Available:   3,
	}
	want := "Dağ Bisikleti 26 için yeterli stok yok! (Mevcut: 3, İstenen: 5)"
	if err.Error() != want {
		t.Errorf("hata mesajı = %q, beklenen %q", err.Error(), want)
	}
}

func TestErrorTypesMatchWithAs(t *testing.T) {
	var insufficient *ledger.InsufficientStockError
	var wrapped error = &ledger.InsufficientStockError{ProductName: "x", Requested: 1, Available: 0}
	if !errors.As(wrapped, &insufficient) {
		t.Error("InsufficientStockError errors.As ile yakalanamadı")
	}

	var notFound *ledger.NotFoundError
	wrapped = &ledger.NotFoundError{Entity: "Ürün", ID: 42}
	if !errors.As(wrapped, &notFound) {
		t.Error("NotFoundError errors.As ile yakalanamadı")
	}
	if notFound.ID != 42 {
		t.Errorf("NotFoundError.ID = %d, beklenen 42", notFound.ID)
	}
}

// Geçersiz miktarlar veritabanına hiç dokunmadan reddedilmeli; servis bilerek
// nil db ile kuruluyor, sorgu atılırsa test panikler.
func TestValidationRejectsBeforeStorage(t *testing.T) {
	svc := ledger.NewService(nil)
	actor := ledger.Actor{UserID: 1, UserName: "test"}
	ctx := context.Background()

	var validation *ledger.ValidationError

	if _, err := svc.Entry(ctx, actor, 1, 1, 0, ""); !errors.As(err, &validation) {
		t.Errorf("Entry(miktar=0) = %v, ValidationError bekleniyordu", err)
	}
	if _, err := svc.Entry(ctx, actor, 1, 1, -5, ""); !errors.As(err, &validation) {
		t.Errorf("Entry(miktar=-5) = %v, ValidationError bekleniyordu", err)
	}
	if _, err := svc.Exit(ctx, actor, ledger.ExitInput{ProductID: 1, WarehouseID: 1, Quantity: 0}); !errors.As(err, &validation) {
		t.Errorf("Exit(miktar=0) = %v, ValidationError bekleniyordu", err)
	}
	if err := svc.Transfer(ctx, actor, 1, 2, 2, 5, ""); !errors.As(err, &validation) {
		t.Errorf("Transfer(kaynak=hedef) = %v, ValidationError bekleniyordu", err)
	}
	if err := svc.Transfer(ctx, actor, 1, 1, 2, -1, ""); !errors.As(err, &validation) {
		t.Errorf("Transfer(miktar=-1) = %v, ValidationError bekleniyordu", err)
	}
}
