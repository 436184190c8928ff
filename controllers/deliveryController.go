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

type deliveryItemInput struct {
	SalesOrderItemId uint   `json:"sales_order_item_id" validate:"required"`
	Quantity         string `json:"quantity"`
}

type deliveryInput struct {
	SalesOrderId uint                `json:"sales_order_id" validate:"required"`
	WarehouseId  uint                `json:"warehouse_id"`
	DeliveryDate *time.Time          `json:"delivery_date"`
	Note         string              `json:"note"`
	Items        []deliveryItemInput `json:"items"`
}

func CreateDelivery(c *fiber.Ctx) error {
	var input deliveryInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}

	var order models.SalesOrder
	if err := database.DB.Preload("Items").First(&order, "id = ?", input.SalesOrderId).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "sales order not found")
	}
	if err := document.CheckTransition(document.TypeSalesOrder, order.Status, document.StatusPartiallyDelivered); err != nil {
		return err
	}

	orderItems := make(map[uint]models.SalesOrderItem, len(order.Items))
	for _, it := range order.Items {
		orderItems[it.Id] = it
	}

	items := make([]models.DeliveryItem, 0, len(input.Items))
	lines := make([]document.Line, 0, len(input.Items))
	for _, in := range input.Items {
		orderItem, ok := orderItems[in.SalesOrderItemId]
		if !ok {
			return &document.ValidationError{Err: document.ErrUnknownOrderItem, Field: "sales_order_item_id"}
		}
		qty := document.ParseAmount(in.Quantity)
		if qty > orderItem.Quantity-orderItem.DeliveredQuantity {
			return &document.ValidationError{Err: document.ErrExceedsOutstanding, Field: "quantity"}
		}
		item := models.DeliveryItem{
			SalesOrderItemId: orderItem.Id,
			ProductId:        orderItem.ProductId,
			SpecificationId:  orderItem.SpecificationId,
			Quantity:         qty,
			UnitPrice:        orderItem.UnitPrice,
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
	deliveryDate := time.Now()
	if input.DeliveryDate != nil {
		deliveryDate = *input.DeliveryDate
	}

	delivery := models.Delivery{
		Code:         nextDocumentCode(database.DB, &models.Delivery{}, "DO"),
		SalesOrderId: order.Id,
		WarehouseId:  warehouseId,
		Status:       document.StatusDraft,
		DeliveryDate: deliveryDate,
		Note:         input.Note,
		Items:        items,
	}

	tx := database.DB.Begin()
	if err := tx.Create(&delivery).Error; err != nil {
		tx.Rollback()
		return c.Status(500).JSON(fiber.Map{"message": "Could not create delivery", "error": err.Error()})
	}
	tx.Commit()

	return c.Status(201).JSON(delivery)
}

func GetDeliveries(c *fiber.Ctx) error {
	var deliveries []models.Delivery
	q := database.DB.Preload("Items").Order("id DESC")
	if id := c.Query("sales_order_id"); id != "" {
		q = q.Where("sales_order_id = ?", id)
	}
	if err := q.Find(&deliveries).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Could not list deliveries", "error": err.Error()})
	}
	return c.JSON(fiber.Map{"deliveries": deliveries, "message": "success"})
}

func ConfirmDelivery(c *fiber.Ctx) error {
	var delivery models.Delivery
	if err := database.DB.Preload("Items").First(&delivery, "id = ?", c.Params("id")).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "delivery not found")
	}
	if err := document.CheckTransition(document.TypeDelivery, delivery.Status, document.StatusConfirmed); err != nil {
		return err
	}

	from := delivery.Status
	if err := database.DB.Model(&delivery).Update("status", document.StatusConfirmed).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Could not confirm delivery", "error": err.Error()})
	}
	delivery.Status = document.StatusConfirmed
	recordStatusEvent(database.DB, document.TypeDelivery, delivery.Id, from, document.StatusConfirmed, userID(c), delivery)
	notifyConfirmation(document.TypeDelivery, delivery.Id, delivery.Code)

	return c.JSON(delivery)
}

// CompleteDelivery ships the goods: stock leaves the warehouse, the order's
// delivered counters advance, and the order moves to (partially) delivered.
func CompleteDelivery(c *fiber.Ctx) error {
	var delivery models.Delivery
	if err := database.DB.Preload("Items").First(&delivery, "id = ?", c.Params("id")).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "delivery not found")
	}
	if err := document.CheckTransition(document.TypeDelivery, delivery.Status, document.StatusCompleted); err != nil {
		return err
	}

	var order models.SalesOrder
	if err := database.DB.Preload("Items").First(&order, "id = ?", delivery.SalesOrderId).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "sales order not found")
	}

	from := delivery.Status
	tx := database.DB.Begin()

	if err := tx.Model(&delivery).Updates(map[string]any{
		"status":       document.StatusCompleted,
		"is_inventory": true,
	}).Error; err != nil {
		tx.Rollback()
		return c.Status(500).JSON(fiber.Map{"message": "Could not complete delivery", "error": err.Error()})
	}

	for _, item := range delivery.Items {
		if err := adjustStock(tx, delivery.WarehouseId, item.ProductId, item.SpecificationId, -item.Quantity); err != nil {
			tx.Rollback()
			return c.Status(500).JSON(fiber.Map{"message": "Could not apply stock", "error": err.Error()})
		}
		if err := tx.Model(&models.SalesOrderItem{}).
			Where("id = ?", item.SalesOrderItemId).
			Update("delivered_quantity", gorm.Expr("delivered_quantity + ?", item.Quantity)).Error; err != nil {
			tx.Rollback()
			return c.Status(500).JSON(fiber.Map{"message": "Could not update fulfillment", "error": err.Error()})
		}
	}

	var outstanding int64
	if err := tx.Model(&models.SalesOrderItem{}).
		Where("sales_order_id = ? AND delivered_quantity < quantity", order.Id).
		Count(&outstanding).Error; err != nil {
		tx.Rollback()
		return c.Status(500).JSON(fiber.Map{"message": "Could not update order status", "error": err.Error()})
	}
	orderStatus := document.StatusDelivered
	if outstanding > 0 {
		orderStatus = document.StatusPartiallyDelivered
	}
	orderFrom := order.Status
	if document.CanTransition(document.TypeSalesOrder, order.Status, orderStatus) {
		if err := tx.Model(&order).Update("status", orderStatus).Error; err != nil {
			tx.Rollback()
			return c.Status(500).JSON(fiber.Map{"message": "Could not update order status", "error": err.Error()})
		}
		order.Status = orderStatus
	}

	tx.Commit()

	delivery.Status = document.StatusCompleted
	delivery.IsInventory = true
	recordStatusEvent(database.DB, document.TypeDelivery, delivery.Id, from, document.StatusCompleted, userID(c), delivery)
	if orderFrom != order.Status {
		recordStatusEvent(database.DB, document.TypeSalesOrder, order.Id, orderFrom, order.Status, userID(c), order)
	}

	return c.JSON(delivery)
}

func CancelDelivery(c *fiber.Ctx) error {
	var delivery models.Delivery
	if err := database.DB.First(&delivery, "id = ?", c.Params("id")).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "delivery not found")
	}
	if err := document.CheckTransition(document.TypeDelivery, delivery.Status, document.StatusCancelled); err != nil {
		return err
	}

	from := delivery.Status
	if err := database.DB.Model(&delivery).Update("status", document.StatusCancelled).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Could not cancel delivery", "error": err.Error()})
	}
	delivery.Status = document.StatusCancelled
	recordStatusEvent(database.DB, document.TypeDelivery, delivery.Id, from, document.StatusCancelled, userID(c), delivery)

	return c.JSON(delivery)
}

func DeleteDelivery(c *fiber.Ctx) error {
	var delivery models.Delivery
	if err := database.DB.First(&delivery, "id = ?", c.Params("id")).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "delivery not found")
	}
	if err := document.CheckDelete(document.TypeDelivery, delivery.Status); err != nil {
		return err
	}

	if err := database.DB.Delete(&delivery).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Could not delete delivery", "error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "success"})
}
