package admin

import (
	"bikestock-backend/internal/database"
	"bikestock-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type PlatformRequest struct {
	Name           string          `json:"name"`
	Type           string          `json:"type"`
	CommissionRate decimal.Decimal `json:"commission_rate"`
	Active         *bool           `json:"active"`
}

// GET /api/platforms
func ListPlatformsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		query := database.DB.Order("name")
		if c.Query("hepsi") != "true" {
			query = query.Where("active = true")
		}

		var platforms []models.Platform
		if err := query.Find(&platforms).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Platformlar listelenemedi")
		}
		return c.JSON(platforms)
	}
}

// POST /api/platforms (sadece admin)
func CreatePlatformHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body PlatformRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Platform adı zorunlu")
		}

		var existing models.Platform
		if err := database.DB.Where("name = ?", body.Name).First(&existing).Error; err == nil {
			return fiber.NewError(fiber.StatusConflict, "Bu isimde bir platform zaten var")
		}

		platform := models.Platform{
			Name:           body.Name,
			Type:           body.Type,
			CommissionRate: body.CommissionRate,
			Active:         true,
		}
		if err := database.DB.Create(&platform).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Platform oluşturulamadı")
		}
		return c.Status(fiber.StatusCreated).JSON(platform)
	}
}

// PUT /api/platforms/:id (sadece admin)
func UpdatePlatformHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz platform id")
		}

		var body PlatformRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		var platform models.Platform
		if err := database.DB.First(&platform, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Platform bulunamadı")
		}

		if body.Name != "" {
			platform.Name = body.Name
		}
		platform.Type = body.Type
		platform.CommissionRate = body.CommissionRate
		if body.Active != nil {
			platform.Active = *body.Active
		}

		if err := database.DB.Save(&platform).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Platform güncellenemedi")
		}
		return c.JSON(platform)
	}
}
