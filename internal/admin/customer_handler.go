package admin

import (
	"bikestock-backend/internal/database"
	"bikestock-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CustomerRequest struct {
	Name   string `json:"name"`
	Type   string `json:"type"`
	Phone  string `json:"phone"`
	Email  string `json:"email"`
	Active *bool  `json:"active"`
}

// GET /api/customers?arama=ahmet
func ListCustomersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		query := database.DB.Order("name")
		if search := c.Query("arama"); search != "" {
			pattern := "%" + search + "%"
			query = query.Where("name ILIKE ? OR phone ILIKE ?", pattern, pattern)
		}

		var customers []models.Customer
		if err := query.Find(&customers).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Müşteriler listelenemedi")
		}
		return c.JSON(customers)
	}
}

// POST /api/customers
func CreateCustomerHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CustomerRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Müşteri adı zorunlu")
		}

		customer := models.Customer{
			Name:   body.Name,
			Type:   body.Type,
			Phone:  body.Phone,
			Email:  body.Email,
			Active: true,
		}
		if err := database.DB.Create(&customer).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Müşteri oluşturulamadı")
		}
		return c.Status(fiber.StatusCreated).JSON(customer)
	}
}

// PUT /api/customers/:id
func UpdateCustomerHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz müşteri id")
		}

		var body CustomerRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		var customer models.Customer
		if err := database.DB.First(&customer, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Müşteri bulunamadı")
		}

		if body.Name != "" {
			customer.Name = body.Name
		}
		customer.Type = body.Type
		customer.Phone = body.Phone
		customer.Email = body.Email
		if body.Active != nil {
			customer.Active = *body.Active
		}

		if err := database.DB.Save(&customer).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Müşteri güncellenemedi")
		}
		return c.JSON(customer)
	}
}
