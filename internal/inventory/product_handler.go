package inventory

import (
	"fmt"

	"bikestock-backend/internal/apierror"
	"bikestock-backend/internal/auth"
	"bikestock-backend/internal/database"
	"bikestock-backend/internal/ledger"
	"bikestock-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ProductRequest struct {
	Name    string          `json:"name"`
	RimSize string          `json:"rim_size"`
	Barcode string          `json:"barcode"`
	Desi    decimal.Decimal `json:"desi"`
	Note    string          `json:"note"`
}

// POST /api/products
func CreateProductHandler(ledgerSvc *ledger.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body ProductRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if body.Name == "" || body.RimSize == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Ürün adı ve jant ebatı zorunludur")
		}
		if body.Barcode == "" {
			body.Barcode = models.BarcodeNone
		}

		actor, err := auth.CurrentActor(c)
		if err != nil {
			return err
		}

		// Aynı ad + jant ebatı zaten varsa yenisini açma
		var existing models.Product
		if err := database.DB.Where("name = ? AND rim_size = ?", body.Name, body.RimSize).
			First(&existing).Error; err == nil {
			return fiber.NewError(fiber.StatusConflict,
				fmt.Sprintf("\"%s\" (%s\") zaten mevcut! Stok işlemleri için mevcut ürünü kullanın.", body.Name, body.RimSize))
		}

		if body.Barcode != models.BarcodeNone {
			var barcodeOwner models.Product
			if err := database.DB.Where("barcode = ?", body.Barcode).First(&barcodeOwner).Error; err == nil {
				return fiber.NewError(fiber.StatusConflict, "Bu barkod zaten kullanılıyor")
			}
		}

		product := models.Product{
			Name:    body.Name,
			RimSize: body.RimSize,
			Barcode: body.Barcode,
			Desi:    body.Desi,
			Note:    body.Note,
		}

		err = database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&product).Error; err != nil {
				return err
			}
			return ledgerSvc.AppendEventTx(tx, &models.LedgerEvent{
				Kind:      models.EventProductCreate,
				ProductID: &product.ID,
				Description: fmt.Sprintf("Yeni ürün: %s (Jant: %s, Desi: %s, Barkod: %s)",
					product.Name, product.RimSize, product.Desi.String(), product.Barcode),
				ActorID:   actor.UserID,
				ActorName: actor.UserName,
			})
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ürün oluşturulamadı")
		}

		return c.Status(fiber.StatusCreated).JSON(product)
	}
}

// GET /api/products?arama=dağ
func ListProductsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		search := c.Query("arama")

		query := database.DB.Order("name")
		if search != "" {
			pattern := "%" + search + "%"
			query = query.Where("name ILIKE ? OR barcode ILIKE ? OR rim_size ILIKE ?", pattern, pattern, pattern)
		}

		var products []models.Product
		if err := query.Find(&products).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ürünler listelenemedi")
		}

		return c.JSON(products)
	}
}

// GET /api/products/search?q=da&warehouse_id=1
// Öneri listesi: ada/barkoda göre ilk 10 sonuç, istenirse depo stokuyla.
func SearchProductsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		term := c.Query("q")
		if len(term) < 2 {
			return c.JSON([]fiber.Map{})
		}

		pattern := "%" + term + "%"
		var products []models.Product
		if err := database.DB.
			Where("name ILIKE ? OR barcode ILIKE ?", pattern, pattern).
			Order("name").
			Limit(10).
			Find(&products).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ürün araması başarısız")
		}

		warehouseID := c.QueryInt("warehouse_id")
		quantities := make(map[uint]int)
		if warehouseID > 0 {
			ids := make([]uint, 0, len(products))
			for _, p := range products {
				ids = append(ids, p.ID)
			}
			var levels []models.StockLevel
			if err := database.DB.
				Where("warehouse_id = ? AND product_id IN ?", warehouseID, ids).
				Find(&levels).Error; err == nil {
				for _, lvl := range levels {
					quantities[lvl.ProductID] = lvl.Quantity
				}
			}
		}

		resp := make([]fiber.Map, 0, len(products))
		for _, p := range products {
			resp = append(resp, fiber.Map{
				"id":       p.ID,
				"name":     p.Name,
				"rim_size": p.RimSize,
				"barcode":  p.Barcode,
				"desi":     p.Desi,
				"quantity": quantities[p.ID],
			})
		}
		return c.JSON(resp)
	}
}

// PUT /api/products/:id
func UpdateProductHandler(ledgerSvc *ledger.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz ürün id")
		}

		var body ProductRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if body.Name == "" || body.RimSize == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Ürün adı ve jant ebatı zorunludur")
		}
		if body.Barcode == "" {
			body.Barcode = models.BarcodeNone
		}

		actor, err := auth.CurrentActor(c)
		if err != nil {
			return err
		}

		var product models.Product
		if err := database.DB.First(&product, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Ürün bulunamadı")
		}

		if body.Barcode != models.BarcodeNone {
			var barcodeOwner models.Product
			if err := database.DB.Where("barcode = ? AND id != ?", body.Barcode, id).
				First(&barcodeOwner).Error; err == nil {
				return fiber.NewError(fiber.StatusConflict, "Bu barkod başka bir ürün tarafından kullanılıyor")
			}
		}

		oldValues := fmt.Sprintf("Ad: %s, Jant: %s, Desi: %s, Barkod: %s",
			product.Name, product.RimSize, product.Desi.String(), product.Barcode)
		newValues := fmt.Sprintf("Ad: %s, Jant: %s, Desi: %s, Barkod: %s",
			body.Name, body.RimSize, body.Desi.String(), body.Barcode)

		err = database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&product).Updates(map[string]interface{}{
				"name":     body.Name,
				"rim_size": body.RimSize,
				"barcode":  body.Barcode,
				"desi":     body.Desi,
				"note":     body.Note,
			}).Error; err != nil {
				return err
			}
			return ledgerSvc.AppendEventTx(tx, &models.LedgerEvent{
				Kind:        models.EventProductUpdate,
				ProductID:   &product.ID,
				Description: fmt.Sprintf("Ürün güncellendi: %s | Eski: %s | Yeni: %s", body.Name, oldValues, newValues),
				ActorID:     actor.UserID,
				ActorName:   actor.UserName,
			})
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ürün güncellenemedi")
		}

		return c.JSON(product)
	}
}

// DELETE /api/products/:id (sadece admin)
// Herhangi bir depoda stok varken silme reddedilir; silme stok satırlarını
// da kaldırır, işlem geçmişi kalıcıdır.
func DeleteProductHandler(ledgerSvc *ledger.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz ürün id")
		}

		actor, err := auth.CurrentActor(c)
		if err != nil {
			return err
		}

		var product models.Product
		if err := database.DB.First(&product, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Ürün bulunamadı")
		}

		var stocked int64
		database.DB.Model(&models.StockLevel{}).
			Where("product_id = ? AND quantity > 0", id).
			Count(&stocked)
		if stocked > 0 {
			return apierror.ToFiber(&ledger.ConflictError{
				Message: "Bu ürünün stokta kaydı bulunuyor! Önce stokları sıfırlamanız gerekir.",
			})
		}

		err = database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("product_id = ?", id).Delete(&models.StockLevel{}).Error; err != nil {
				return err
			}
			if err := tx.Delete(&product).Error; err != nil {
				return err
			}
			return ledgerSvc.AppendEventTx(tx, &models.LedgerEvent{
				Kind: models.EventProductDelete,
				Description: fmt.Sprintf("Silinen ürün: %s (ID: %d, Barkod: %s)",
					product.Name, product.ID, product.Barcode),
				ActorID:   actor.UserID,
				ActorName: actor.UserName,
			})
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ürün silinemedi")
		}

		return c.JSON(fiber.Map{"message": fmt.Sprintf("Ürün \"%s\" başarıyla silindi", product.Name)})
	}
}
