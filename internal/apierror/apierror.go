// Package apierror çekirdek servislerin tipli hatalarını HTTP durum
// kodlarına çevirir. İç detaylar (SQL hataları vs.) istemciye sızmaz;
// kullanıcıya yapısal tür + okunur mesaj döner.
package apierror

import (
	"errors"

	"bikestock-backend/internal/ledger"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

// ToFiber bir servis hatasını uygun fiber hatasına çevirir.
func ToFiber(err error) error {
	var validationErr *ledger.ValidationError
	if errors.As(err, &validationErr) {
		return fiber.NewError(fiber.StatusBadRequest, validationErr.Message)
	}

	var stockErr *ledger.InsufficientStockError
	if errors.As(err, &stockErr) {
		return fiber.NewError(fiber.StatusConflict, stockErr.Error())
	}

	var notFoundErr *ledger.NotFoundError
	if errors.As(err, &notFoundErr) {
		return fiber.NewError(fiber.StatusNotFound, notFoundErr.Error())
	}

	var conflictErr *ledger.ConflictError
	if errors.As(err, &conflictErr) {
		return fiber.NewError(fiber.StatusConflict, conflictErr.Message)
	}

	log.WithError(err).Error("Beklenmeyen depolama hatası")
	return fiber.NewError(fiber.StatusInternalServerError, "İşlem gerçekleştirilemedi")
}
