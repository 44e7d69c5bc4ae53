package inventory

import (
	"bikestock-backend/internal/apierror"
	"bikestock-backend/internal/auth"
	"bikestock-backend/internal/ledger"

	"github.com/gofiber/fiber/v2"
)

type StockEntryRequest struct {
	ProductID   uint   `json:"product_id"`
	WarehouseID uint   `json:"warehouse_id"`
	Quantity    int    `json:"quantity"`
	Note        string `json:"note"`
}

type StockExitRequest struct {
	ProductID   uint   `json:"product_id"`
	WarehouseID uint   `json:"warehouse_id"`
	Quantity    int    `json:"quantity"`
	Note        string `json:"note"`
	CarrierID   *uint  `json:"carrier_id"`
	PlatformID  *uint  `json:"platform_id"`
	CustomerID  *uint  `json:"customer_id"`
}

type StockTransferRequest struct {
	ProductID         uint   `json:"product_id"`
	SourceWarehouseID uint   `json:"source_warehouse_id"`
	TargetWarehouseID uint   `json:"target_warehouse_id"`
	Quantity          int    `json:"quantity"`
	Note              string `json:"note"`
}

// POST /api/stock/entry
func StockEntryHandler(svc *ledger.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body StockEntryRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if body.ProductID == 0 || body.WarehouseID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "product_id ve warehouse_id zorunlu")
		}

		actor, err := auth.CurrentActor(c)
		if err != nil {
			return err
		}

		newQty, err := svc.Entry(c.UserContext(), actor, body.ProductID, body.WarehouseID, body.Quantity, body.Note)
		if err != nil {
			return apierror.ToFiber(err)
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message":      "Stok girişi başarıyla tamamlandı",
			"new_quantity": newQty,
		})
	}
}

// POST /api/stock/exit
func StockExitHandler(svc *ledger.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body StockExitRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if body.ProductID == 0 || body.WarehouseID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "product_id ve warehouse_id zorunlu")
		}

		actor, err := auth.CurrentActor(c)
		if err != nil {
			return err
		}

		newQty, err := svc.Exit(c.UserContext(), actor, ledger.ExitInput{
			ProductID:   body.ProductID,
			WarehouseID: body.WarehouseID,
			Quantity:    body.Quantity,
			Note:        body.Note,
			CarrierID:   body.CarrierID,
			PlatformID:  body.PlatformID,
			CustomerID:  body.CustomerID,
		})
		if err != nil {
			return apierror.ToFiber(err)
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message":      "Stok çıkışı başarıyla tamamlandı",
			"new_quantity": newQty,
		})
	}
}

// POST /api/stock/transfer
func StockTransferHandler(svc *ledger.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body StockTransferRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if body.ProductID == 0 || body.SourceWarehouseID == 0 || body.TargetWarehouseID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "product_id, source_warehouse_id ve target_warehouse_id zorunlu")
		}

		actor, err := auth.CurrentActor(c)
		if err != nil {
			return err
		}

		if err := svc.Transfer(c.UserContext(), actor, body.ProductID,
			body.SourceWarehouseID, body.TargetWarehouseID, body.Quantity, body.Note); err != nil {
			return apierror.ToFiber(err)
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message": "Depo transferi başarıyla tamamlandı",
		})
	}
}
