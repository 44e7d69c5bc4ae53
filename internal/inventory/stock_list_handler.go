package inventory

import (
	"strconv"

	"bikestock-backend/internal/database"
	"bikestock-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type StockRow struct {
	ProductID   uint            `json:"product_id"`
	ProductName string          `json:"product_name"`
	RimSize     string          `json:"rim_size"`
	Barcode     string          `json:"barcode"`
	Desi        decimal.Decimal `json:"desi"`
	Quantity    int             `json:"quantity"`
	LastUpdate  string          `json:"last_update"`
}

// GET /api/stock?warehouse_id=1
// Seçili depodaki stok durumu; stok satırı olmayan ürünler 0 ile listelenir.
func ListStockHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		warehouseID, err := strconv.ParseUint(c.Query("warehouse_id", "1"), 10, 32)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "warehouse_id sayısal olmalı")
		}

		var warehouse models.Warehouse
		if err := database.DB.First(&warehouse, "id = ?", warehouseID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Depo bulunamadı")
		}

		var products []models.Product
		if err := database.DB.Order("name").Find(&products).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ürünler listelenemedi")
		}

		var levels []models.StockLevel
		if err := database.DB.Where("warehouse_id = ?", warehouseID).Find(&levels).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Stoklar listelenemedi")
		}
		levelByProduct := make(map[uint]models.StockLevel, len(levels))
		for _, lvl := range levels {
			levelByProduct[lvl.ProductID] = lvl
		}

		rows := make([]StockRow, 0, len(products))
		inStock := 0
		totalUnits := 0
		for _, p := range products {
			row := StockRow{
				ProductID:   p.ID,
				ProductName: p.Name,
				RimSize:     p.RimSize,
				Barcode:     p.Barcode,
				Desi:        p.Desi,
			}
			if lvl, ok := levelByProduct[p.ID]; ok {
				row.Quantity = lvl.Quantity
				row.LastUpdate = lvl.UpdatedAt.Format("2006-01-02 15:04:05")
			}
			if row.Quantity > 0 {
				inStock++
			}
			totalUnits += row.Quantity
			rows = append(rows, row)
		}

		return c.JSON(fiber.Map{
			"warehouse": warehouse,
			"stocks":    rows,
			"summary": fiber.Map{
				"total_products": len(products),
				"in_stock":       inStock,
				"out_of_stock":   len(products) - inStock,
				"total_units":    totalUnits,
			},
		})
	}
}

type ProductTotalRow struct {
	ProductID   uint   `json:"product_id"`
	ProductName string `json:"product_name"`
	Total       int    `json:"total"`
	Warehouses  int    `json:"warehouses"`
}

// GET /api/stock/totals
// Ürün başına tüm depoların toplamı.
func StockTotalsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var rows []ProductTotalRow
		err := database.DB.Raw(`
			SELECT p.id AS product_id,
			       p.name AS product_name,
			       COALESCE(SUM(sl.quantity), 0) AS total,
			       COUNT(sl.warehouse_id) AS warehouses
			FROM products p
			LEFT JOIN stock_levels sl ON sl.product_id = p.id
			GROUP BY p.id, p.name
			ORDER BY p.name
		`).Scan(&rows).Error
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Stok toplamları hesaplanamadı")
		}
		return c.JSON(rows)
	}
}

type WarehouseStockRow struct {
	WarehouseID   uint   `json:"warehouse_id"`
	WarehouseName string `json:"warehouse_name"`
	Quantity      int    `json:"quantity"`
}

// GET /api/products/:id/stock
// Bir ürünün aktif depolara dağılımı; satırı olmayan depo 0 gösterilir.
func ProductStockHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		productID, err := c.ParamsInt("id")
		if err != nil || productID <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz ürün id")
		}

		var product models.Product
		if err := database.DB.First(&product, "id = ?", productID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Ürün bulunamadı")
		}

		var rows []WarehouseStockRow
		err = database.DB.Raw(`
			SELECT w.id AS warehouse_id,
			       w.name AS warehouse_name,
			       COALESCE(sl.quantity, 0) AS quantity
			FROM warehouses w
			LEFT JOIN stock_levels sl ON sl.warehouse_id = w.id AND sl.product_id = ?
			WHERE w.active = true
			ORDER BY w.name
		`, productID).Scan(&rows).Error
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Stok durumu okunamadı")
		}

		return c.JSON(fiber.Map{
			"product": product,
			"stocks":  rows,
		})
	}
}
