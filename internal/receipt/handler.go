package receipt

import (
	"bikestock-backend/internal/apierror"
	"bikestock-backend/internal/auth"

	"github.com/gofiber/fiber/v2"
)

type BatchLineRequest struct {
	ProductID uint  `json:"product_id"`
	Quantity  int   `json:"quantity"`
	CarrierID *uint `json:"carrier_id"`
}

type CreateBatchRequest struct {
	WarehouseID uint               `json:"warehouse_id"`
	Note        string             `json:"note"`
	PlatformID  *uint              `json:"platform_id"`
	CustomerID  *uint              `json:"customer_id"`
	Lines       []BatchLineRequest `json:"lines"`
}

// POST /api/receipts
// Çok kalemli stok çıkışı: ya tüm kalemler işlenir ya hiçbiri.
func CreateBatchHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateBatchRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if body.WarehouseID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "warehouse_id zorunlu")
		}

		actor, err := auth.CurrentActor(c)
		if err != nil {
			return err
		}

		lines := make([]BatchLine, 0, len(body.Lines))
		for _, l := range body.Lines {
			lines = append(lines, BatchLine{
				ProductID: l.ProductID,
				Quantity:  l.Quantity,
				CarrierID: l.CarrierID,
			})
		}

		created, err := svc.CreateBatch(c.UserContext(), actor, BatchInput{
			WarehouseID: body.WarehouseID,
			Note:        body.Note,
			PlatformID:  body.PlatformID,
			CustomerID:  body.CustomerID,
			Lines:       lines,
		})
		if err != nil {
			return apierror.ToFiber(err)
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message": "Stok çıkışı başarıyla tamamlandı",
			"receipt": created,
		})
	}
}

// GET /api/receipts
func ListReceiptsHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		receipts, err := svc.List(c.UserContext(), c.QueryInt("limit", 100))
		if err != nil {
			return apierror.ToFiber(err)
		}
		return c.JSON(receipts)
	}
}

// GET /api/receipts/:id
func GetReceiptHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz fiş id")
		}

		rec, err := svc.Get(c.UserContext(), uint(id))
		if err != nil {
			return apierror.ToFiber(err)
		}
		return c.JSON(rec)
	}
}
