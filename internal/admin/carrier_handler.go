package admin

import (
	"bikestock-backend/internal/database"
	"bikestock-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CarrierRequest struct {
	Name      string `json:"name"`
	ShortName string `json:"short_name"`
	Phone     string `json:"phone"`
	Website   string `json:"website"`
	Active    *bool  `json:"active"`
}

// GET /api/carriers
func ListCarriersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		query := database.DB.Order("name")
		if c.Query("hepsi") != "true" {
			query = query.Where("active = true")
		}

		var carriers []models.Carrier
		if err := query.Find(&carriers).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kargo firmaları listelenemedi")
		}
		return c.JSON(carriers)
	}
}

// POST /api/carriers (sadece admin)
func CreateCarrierHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CarrierRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Kargo firması adı zorunlu")
		}

		carrier := models.Carrier{
			Name:      body.Name,
			ShortName: body.ShortName,
			Phone:     body.Phone,
			Website:   body.Website,
			Active:    true,
		}
		if err := database.DB.Create(&carrier).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kargo firması oluşturulamadı")
		}
		return c.Status(fiber.StatusCreated).JSON(carrier)
	}
}

// PUT /api/carriers/:id (sadece admin)
func UpdateCarrierHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz kargo firması id")
		}

		var body CarrierRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		var carrier models.Carrier
		if err := database.DB.First(&carrier, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Kargo firması bulunamadı")
		}

		if body.Name != "" {
			carrier.Name = body.Name
		}
		carrier.ShortName = body.ShortName
		carrier.Phone = body.Phone
		carrier.Website = body.Website
		if body.Active != nil {
			carrier.Active = *body.Active
		}

		if err := database.DB.Save(&carrier).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kargo firması güncellenemedi")
		}
		return c.JSON(carrier)
	}
}
