package audit

import (
	"time"

	"bikestock-backend/internal/database"
	"bikestock-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GET /api/ledger-events?kind=STOK_CIKIS&baslangic=2026-01-01&bitis=2026-01-31&limit=100
// İşlem geçmişi en yeniden eskiye listelenir. Kayıtlar hiçbir koşulda
// güncellenmez veya silinmez, bu uç sadece okur.
func ListEventsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		query := database.DB.Model(&models.LedgerEvent{})

		if kind := c.Query("kind"); kind != "" {
			query = query.Where("kind = ?", kind)
		}
		if productID := c.QueryInt("product_id"); productID > 0 {
			query = query.Where("product_id = ?", productID)
		}
		if warehouseID := c.QueryInt("warehouse_id"); warehouseID > 0 {
			query = query.Where("warehouse_id = ?", warehouseID)
		}

		if start := c.Query("baslangic"); start != "" {
			day, err := time.ParseInLocation("2006-01-02", start, time.Local)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "baslangic tarihi YYYY-AA-GG formatında olmalı")
			}
			query = query.Where("created_at >= ?", day)
		}
		if end := c.Query("bitis"); end != "" {
			day, err := time.ParseInLocation("2006-01-02", end, time.Local)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "bitis tarihi YYYY-AA-GG formatında olmalı")
			}
			query = query.Where("created_at < ?", day.AddDate(0, 0, 1))
		}

		limit := c.QueryInt("limit", 100)
		if limit <= 0 || limit > 500 {
			limit = 100
		}

		var events []models.LedgerEvent
		if err := query.Order("created_at DESC, id DESC").Limit(limit).Find(&events).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "İşlem geçmişi okunamadı")
		}

		return c.JSON(events)
	}
}
