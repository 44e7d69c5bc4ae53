package admin

import (
	"fmt"

	"bikestock-backend/internal/auth"
	"bikestock-backend/internal/database"
	"bikestock-backend/internal/ledger"
	"bikestock-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type SettingRequest struct {
	Value       string `json:"value"`
	Description string `json:"description"`
}

// GET /api/settings
func ListSettingsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var settings []models.Setting
		if err := database.DB.Order("key").Find(&settings).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ayarlar listelenemedi")
		}
		return c.JSON(settings)
	}
}

// GET /api/settings/:key
func GetSettingHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := c.Params("key")

		var setting models.Setting
		if err := database.DB.Where("key = ?", key).First(&setting).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Ayar bulunamadı")
		}
		return c.JSON(setting)
	}
}

// PUT /api/settings/:key (sadece admin)
// Ayar yoksa oluşturulur; her değişiklik işlem geçmişine yazılır.
func UpsertSettingHandler(ledgerSvc *ledger.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := c.Params("key")
		if key == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Ayar anahtarı zorunlu")
		}

		var body SettingRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		actor, err := auth.CurrentActor(c)
		if err != nil {
			return err
		}

		var setting models.Setting
		oldValue := ""
		if err := database.DB.Where("key = ?", key).First(&setting).Error; err == nil {
			oldValue = setting.Value
		} else {
			setting = models.Setting{Key: key}
		}
		setting.Value = body.Value
		if body.Description != "" {
			setting.Description = body.Description
		}

		err = database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Save(&setting).Error; err != nil {
				return err
			}
			return ledgerSvc.AppendEventTx(tx, &models.LedgerEvent{
				Kind:        models.EventSettingUpdate,
				Description: fmt.Sprintf("Ayar güncellendi: %s | Eski: %q | Yeni: %q", key, oldValue, body.Value),
				ActorID:     actor.UserID,
				ActorName:   actor.UserName,
			})
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ayar kaydedilemedi")
		}

		return c.JSON(setting)
	}
}
