package apierror_test

import (
	"errors"
	"fmt"
	"testing"

	"bikestock-backend/internal/apierror"
	"bikestock-backend/internal/ledger"

	"github.com/gofiber/fiber/v2"
)

func statusOf(t *testing.T, err error) int {
	t.Helper()
	var fe *fiber.Error
	if !errors.As(err, &fe) {
		t.Fatalf("fiber.Error bekleniyordu, %T alındı", err)
	}
	return fe.Code
}

func TestToFiberStatusMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"validation", &ledger.ValidationError{Message: "Miktar 0'dan büyük olmalı"}, fiber.StatusBadRequest},
		{"insufficient", &ledger.InsufficientStockError{ProductName: "x", Requested: 2, Available: 1}, fiber.StatusConflict},
		{"not found", &ledger.NotFoundError{Entity: "Ürün", ID: 1}, fiber.StatusNotFound},
		{"conflict", &ledger.ConflictError{Message: "çakışma"}, fiber.StatusConflict},
		{"unknown", errors.New("bağlantı koptu"), fiber.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := statusOf(t, apierror.ToFiber(tc.err)); got != tc.want {
				t.Errorf("durum kodu = %d, beklenen %d", got, tc.want)
			}
		})
	}
}

// Sarılmış hatalar da doğru eşlenmeli
func TestToFiberUnwrapsWrappedErrors(t *testing.T) {
	wrapped := fmt.Errorf("batch işlenemedi: %w", &ledger.InsufficientStockError{
		ProductName: "Dağ Bisikleti", Requested: 5, Available: 3,
	})
	if got := statusOf(t, apierror.ToFiber(wrapped)); got != fiber.StatusConflict {
		t.Errorf("durum kodu = %d, beklenen %d", got, fiber.StatusConflict)
	}
}

// İç hata detayı istemciye sızmamalı
func TestToFiberHidesInternalDetails(t *testing.T) {
	err := apierror.ToFiber(errors.New("pq: duplicate key value violates unique constraint"))
	var fe *fiber.Error
	if !errors.As(err, &fe) {
		t.Fatalf("fiber.Error bekleniyordu, %T alındı", err)
	}
	if fe.Message != "İşlem gerçekleştirilemedi" {
		t.Errorf("mesaj = %q, iç detay sızdırılmamalıydı", fe.Message)
	}
}
