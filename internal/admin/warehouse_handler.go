package admin

import (
	"bikestock-backend/internal/database"
	"bikestock-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type WarehouseRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Active  *bool  `json:"active"`
}

// GET /api/warehouses?hepsi=true
// Varsayılan olarak sadece aktif depolar döner.
func ListWarehousesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		query := database.DB.Order("id")
		if c.Query("hepsi") != "true" {
			query = query.Where("active = true")
		}

		var warehouses []models.Warehouse
		if err := query.Find(&warehouses).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Depolar listelenemedi")
		}
		return c.JSON(warehouses)
	}
}

// POST /api/warehouses (sadece admin)
func CreateWarehouseHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body WarehouseRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Depo adı zorunlu")
		}

		var existing models.Warehouse
		if err := database.DB.Where("name = ?", body.Name).First(&existing).Error; err == nil {
			return fiber.NewError(fiber.StatusConflict, "Bu isimde bir depo zaten var")
		}

		warehouse := models.Warehouse{
			Name:    body.Name,
			Address: body.Address,
			Phone:   body.Phone,
			Email:   body.Email,
			Active:  true,
		}
		if err := database.DB.Create(&warehouse).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Depo oluşturulamadı")
		}

		return c.Status(fiber.StatusCreated).JSON(warehouse)
	}
}

// PUT /api/warehouses/:id (sadece admin)
// Depolar silinmez, pasife çekilir; geçmiş hareketler depoya referans verir.
func UpdateWarehouseHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz depo id")
		}

		var body WarehouseRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		var warehouse models.Warehouse
		if err := database.DB.First(&warehouse, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Depo bulunamadı")
		}

		if body.Name != "" && body.Name != warehouse.Name {
			var existing models.Warehouse
			if err := database.DB.Where("name = ? AND id != ?", body.Name, id).First(&existing).Error; err == nil {
				return fiber.NewError(fiber.StatusConflict, "Bu isimde bir depo zaten var")
			}
			warehouse.Name = body.Name
		}
		warehouse.Address = body.Address
		warehouse.Phone = body.Phone
		warehouse.Email = body.Email
		if body.Active != nil {
			warehouse.Active = *body.Active
		}

		if err := database.DB.Save(&warehouse).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Depo güncellenemedi")
		}

		return c.JSON(warehouse)
	}
}
