package controllers

import (
	"time"

	"github.com/nguyentoan1998/stockflowapp-sub002/database"
	"github.com/nguyentoan1998/stockflowapp-sub002/document"
	"github.com/nguyentoan1998/stockflowapp-sub002/middlewares"
	"github.com/nguyentoan1998/stockflowapp-sub002/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type purchaseReceiveItemInput struct {
	PurchaseOrderItemId uint   `json:"purchase_order_item_id" validate:"required"`
	Quantity            string `json:"quantity"`
}

type purchaseReceiveInput struct {
	PurchaseOrderId uint                       `json:"purchase_order_id" validate:"required"`
	WarehouseId     uint                       `json:"warehouse_id"`
	ReceiveDate     *time.Time                 `json:"receive_date"`
	Note            string                     `json:"note"`
	Items           []purchaseReceiveItemInput `json:"items"`
}

// CreatePurchaseReceive records goods arriving against a confirmed order.
// Each received quantity is capped by the order line's outstanding balance.
func CreatePurchaseReceive(c *fiber.Ctx) error {
	var input purchaseReceiveInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}

	var order models.PurchaseOrder
	if err := database.DB.Preload("Items").First(&order, "id = ?", input.PurchaseOrderId).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "purchase order not found")
	}
	// Receiving is only legal while the order can still move toward
	// (partially) received.
	if err := document.CheckTransition(document.TypePurchaseOrder, order.Status, document.StatusPartiallyReceived); err != nil {
		return err
	}

	orderItems := make(map[uint]models.PurchaseOrderItem, len(order.Items))
	for _, it := range order.Items {
		orderItems[it.Id] = it
	}

	items := make([]models.PurchaseReceiveItem, 0, len(input.Items))
	lines := make([]document.Line, 0, len(input.Items))
	for _, in := range input.Items {
		orderItem, ok := orderItems[in.PurchaseOrderItemId]
		if !ok {
			return &document.ValidationError{Err: document.ErrUnknownOrderItem, Field: "purchase_order_item_id"}
		}
		qty := document.ParseAmount(in.Quantity)
		if qty > orderItem.Quantity-orderItem.ReceivedQuantity {
			return &document.ValidationError{Err: document.ErrExceedsOutstanding, Field: "quantity"}
		}
		item := models.PurchaseReceiveItem{
			PurchaseOrderItemId: orderItem.Id,
			ProductId:           orderItem.ProductId,
			SpecificationId:     orderItem.SpecificationId,
			Quantity:            qty,
			Cost:                orderItem.Cost,
		}
		items = append(items, item)
		lines = append(lines, item)
	}
	if err := document.ValidateLines(lines); err != nil {
		return err
	}

	warehouseId := input.WarehouseId
	if warehouseId == 0 {
		warehouseId = order.WarehouseId
	}
	receiveDate := time.Now()
	if input.ReceiveDate != nil {
		receiveDate = *input.ReceiveDate
	}

	receive := models.PurchaseReceive{
		Code:            nextDocumentCode(database.DB, &models.PurchaseReceive{}, "PR"),
		PurchaseOrderId: order.Id,
		WarehouseId:     warehouseId,
		Status:          document.StatusDraft,
		ReceiveDate:     receiveDate,
		Note:            input.Note,
		Items:           items,
	}

	tx := database.DB.Begin()
	if err := tx.Create(&receive).Error; err != nil {
		tx.Rollback()
		return c.Status(500).JSON(fiber.Map{"message": "Could not create purchase receive", "error": err.Error()})
	}
	tx.Commit()

	return c.Status(201).JSON(receive)
}

func GetPurchaseReceives(c *fiber.Ctx) error {
	var receives []models.PurchaseReceive
	q := database.DB.Preload("Items").Order("id DESC")
	if id := c.Query("purchase_order_id"); id != "" {
		q = q.Where("purchase_order_id = ?", id)
	}
	if err := q.Find(&receives).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Could not list purchase receives", "error": err.Error()})
	}
	return c.JSON(fiber.Map{"purchase_receives": receives, "message": "success"})
}

// CompletePurchaseReceive applies the receive to warehouse stock, advances the
// order's fulfillment counters, and moves the order to (partially) received.
func CompletePurchaseReceive(c *fiber.Ctx) error {
	var receive models.PurchaseReceive
	if err := database.DB.Preload("Items").First(&receive, "id = ?", c.Params("id")).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "purchase receive not found")
	}
	if err := document.CheckTransition(document.TypePurchaseReceive, receive.Status, document.StatusCompleted); err != nil {
		return err
	}

	var order models.PurchaseOrder
	if err := database.DB.Preload("Items").First(&order, "id = ?", receive.PurchaseOrderId).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "purchase order not found")
	}

	from := receive.Status
	tx := database.DB.Begin()

	if err := tx.Model(&receive).Updates(map[string]any{
		"status":       document.StatusCompleted,
		"is_inventory": true,
	}).Error; err != nil {
		tx.Rollback()
		return c.Status(500).JSON(fiber.Map{"message": "Could not complete purchase receive", "error": err.Error()})
	}

	for _, item := range receive.Items {
		if err := adjustStock(tx, receive.WarehouseId, item.ProductId, item.SpecificationId, item.Quantity); err != nil {
			tx.Rollback()
			return c.Status(500).JSON(fiber.Map{"message": "Could not apply stock", "error": err.Error()})
		}
		if err := tx.Model(&models.PurchaseOrderItem{}).
			Where("id = ?", item.PurchaseOrderItemId).
			Update("received_quantity", gorm.Expr("received_quantity + ?", item.Quantity)).Error; err != nil {
			tx.Rollback()
			return c.Status(500).JSON(fiber.Map{"message": "Could not update fulfillment", "error": err.Error()})
		}
	}

	// Advance the order based on remaining outstanding quantity.
	var outstanding int64
	if err := tx.Model(&models.PurchaseOrderItem{}).
		Where("purchase_order_id = ? AND received_quantity < quantity", order.Id).
		Count(&outstanding).Error; err != nil {
		tx.Rollback()
		return c.Status(500).JSON(fiber.Map{"message": "Could not update order status", "error": err.Error()})
	}
	orderStatus := document.StatusReceived
	if outstanding > 0 {
		orderStatus = document.StatusPartiallyReceived
	}
	orderFrom := order.Status
	if document.CanTransition(document.TypePurchaseOrder, order.Status, orderStatus) {
		if err := tx.Model(&order).Update("status", orderStatus).Error; err != nil {
			tx.Rollback()
			return c.Status(500).JSON(fiber.Map{"message": "Could not update order status", "error": err.Error()})
		}
		order.Status = orderStatus
	}

	tx.Commit()

	receive.Status = document.StatusCompleted
	receive.IsInventory = true
	recordStatusEvent(database.DB, document.TypePurchaseReceive, receive.Id, from, document.StatusCompleted, userID(c), receive)
	if orderFrom != order.Status {
		recordStatusEvent(database.DB, document.TypePurchaseOrder, order.Id, orderFrom, order.Status, userID(c), order)
	}

	return c.JSON(receive)
}

func CancelPurchaseReceive(c *fiber.Ctx) error {
	var receive models.PurchaseReceive
	if err := database.DB.First(&receive, "id = ?", c.Params("id")).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "purchase receive not found")
	}
	if err := document.CheckTransition(document.TypePurchaseReceive, receive.Status, document.StatusCancelled); err != nil {
		return err
	}

	from := receive.Status
	if err := database.DB.Model(&receive).Update("status", document.StatusCancelled).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Could not cancel purchase receive", "error": err.Error()})
	}
	receive.Status = document.StatusCancelled
	recordStatusEvent(database.DB, document.TypePurchaseReceive, receive.Id, from, document.StatusCancelled, userID(c), receive)

	return c.JSON(receive)
}

// DeletePurchaseReceive is a hard delete; completed receives are blocked
// before any database work.
func DeletePurchaseReceive(c *fiber.Ctx) error {
	var receive models.PurchaseReceive
	if err := database.DB.First(&receive, "id = ?", c.Params("id")).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "purchase receive not found")
	}
	if err := document.CheckDelete(document.TypePurchaseReceive, receive.Status); err != nil {
		return err
	}

	if err := database.DB.Delete(&receive).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Could not delete purchase receive", "error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "success"})
}
