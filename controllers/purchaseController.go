package controllers

import (
	"time"

	"github.com/nguyentoan1998/stockflowapp-sub002/database"
	"github.com/nguyentoan1998/stockflowapp-sub002/document"
	"github.com/nguyentoan1998/stockflowapp-sub002/middlewares"
	"github.com/nguyentoan1998/stockflowapp-sub002/models"
	"github.com/nguyentoan1998/stockflowapp-sub002/utils"

	"github.com/gofiber/fiber/v2"
)

type purchaseOrderItemInput struct {
	ProductId       string `json:"product_id" validate:"required"`
	SpecificationId *uint  `json:"specification_id"`
	UnitId          uint   `json:"unit_id"`
	// Quantity and cost arrive as free-form strings from the form layer;
	// blanks and garbage coerce to 0 and are caught by the line validator.
	Quantity string `json:"quantity"`
	Cost     string `json:"cost"`
}

type purchaseOrderInput struct {
	SupplierId     uint                     `json:"supplier_id" validate:"required"`
	WarehouseId    uint                     `json:"warehouse_id" validate:"required"`
	OrderDate      *time.Time               `json:"order_date"`
	Note           string                   `json:"note"`
	DiscountAmount string                   `json:"discount_amount"`
	TaxAmount      string                   `json:"tax_amount"`
	Items          []purchaseOrderItemInput `json:"items"` // nested create
}

func buildPurchaseOrderItems(inputs []purchaseOrderItemInput) ([]models.PurchaseOrderItem, []document.Line) {
	items := make([]models.PurchaseOrderItem, 0, len(inputs))
	lines := make([]document.Line, 0, len(inputs))
	for _, in := range inputs {
		item := models.PurchaseOrderItem{
			ProductId:       in.ProductId,
			SpecificationId: in.SpecificationId,
			UnitId:          in.UnitId,
			Quantity:        document.ParseAmount(in.Quantity),
			Cost:            document.ParseAmount(in.Cost),
		}
		item.TotalAmount = utils.Round2(document.LineTotal(item))
		items = append(items, item)
		lines = append(lines, item)
	}
	return items, lines
}

func CreatePurchaseOrder(c *fiber.Ctx) error {
	var input purchaseOrderInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}

	items, lines := buildPurchaseOrderItems(input.Items)
	if err := document.ValidateLines(lines); err != nil {
		return err
	}

	discount := document.ParseAmount(input.DiscountAmount)
	tax := document.ParseAmount(input.TaxAmount)
	subtotal := utils.Round2(document.Subtotal(lines))

	orderDate := time.Now()
	if input.OrderDate != nil {
		orderDate = *input.OrderDate
	}

	order := models.PurchaseOrder{
		Code:           nextDocumentCode(database.DB, &models.PurchaseOrder{}, "PO"),
		SupplierId:     input.SupplierId,
		WarehouseId:    input.WarehouseId,
		Status:         document.StatusDraft,
		OrderDate:      orderDate,
		Note:           input.Note,
		Subtotal:       subtotal,
		DiscountAmount: discount,
		TaxAmount:      tax,
		TotalAmount:    utils.Round2(document.GrandTotal(subtotal, discount, tax)),
		Items:          items,
	}

	tx := database.DB.Begin()
	if err := tx.Create(&order).Error; err != nil {
		tx.Rollback()
		return c.Status(500).JSON(fiber.Map{"message": "Could not create purchase order", "error": err.Error()})
	}
	tx.Commit()

	return c.Status(201).JSON(order)
}

func GetPurchaseOrders(c *fiber.Ctx) error {
	limit := utils.ParseIntDefault(c.Query("limit"), 50)
	offset := utils.ParseIntDefault(c.Query("offset"), 0)

	var orders []models.PurchaseOrder
	q := database.DB.Preload("Items").Preload("Supplier").
		Order("id DESC").Limit(limit).Offset(offset)
	if s := c.Query("status"); s != "" {
		q = q.Where("status = ?", s)
	}
	if err := q.Find(&orders).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Could not list purchase orders", "error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"purchase_orders": orders,
		"message":         "success",
	})
}

func GetPurchaseOrder(c *fiber.Ctx) error {
	var order models.PurchaseOrder
	if err := database.DB.Preload("Items").Preload("Supplier").First(&order, "id = ?", c.Params("id")).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "purchase order not found")
	}

	return c.JSON(fiber.Map{
		"purchase_order": order,
		"can_edit":       document.CanEdit(order.Status),
		"can_delete":     document.CanDelete(document.TypePurchaseOrder, order.Status),
		"next_statuses":  document.NextStatuses(document.TypePurchaseOrder, order.Status),
	})
}

// UpdatePurchaseOrder replaces the draft's content and line items and
// recomputes the totals. Non-drafts are refused before any database write.
func UpdatePurchaseOrder(c *fiber.Ctx) error {
	var order models.PurchaseOrder
	if err := database.DB.First(&order, "id = ?", c.Params("id")).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "purchase order not found")
	}
	if err := document.CheckEdit(document.TypePurchaseOrder, order.Status); err != nil {
		return err
	}

	var input purchaseOrderInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}

	items, lines := buildPurchaseOrderItems(input.Items)
	if err := document.ValidateLines(lines); err != nil {
		return err
	}

	discount := document.ParseAmount(input.DiscountAmount)
	tax := document.ParseAmount(input.TaxAmount)
	subtotal := utils.Round2(document.Subtotal(lines))

	order.SupplierId = input.SupplierId
	order.WarehouseId = input.WarehouseId
	order.Note = input.Note
	order.Subtotal = subtotal
	order.DiscountAmount = discount
	order.TaxAmount = tax
	order.TotalAmount = utils.Round2(document.GrandTotal(subtotal, discount, tax))
	if input.OrderDate != nil {
		order.OrderDate = *input.OrderDate
	}

	tx := database.DB.Begin()
	if err := tx.Where("purchase_order_id = ?", order.Id).Delete(&models.PurchaseOrderItem{}).Error; err != nil {
		tx.Rollback()
		return c.Status(500).JSON(fiber.Map{"message": "Could not update purchase order", "error": err.Error()})
	}
	order.Items = items
	if err := tx.Save(&order).Error; err != nil {
		tx.Rollback()
		return c.Status(500).JSON(fiber.Map{"message": "Could not update purchase order", "error": err.Error()})
	}
	tx.Commit()

	return c.JSON(order)
}

// DeletePurchaseOrder is a hard delete. The status guard short-circuits before
// any database work when the order has been (partially) received.
func DeletePurchaseOrder(c *fiber.Ctx) error {
	var order models.PurchaseOrder
	if err := database.DB.First(&order, "id = ?", c.Params("id")).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "purchase order not found")
	}
	if err := document.CheckDelete(document.TypePurchaseOrder, order.Status); err != nil {
		return err
	}

	if err := database.DB.Delete(&order).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Could not delete purchase order", "error": err.Error()})
	}

	return c.JSON(fiber.Map{"message": "success"})
}

func transitionPurchaseOrder(c *fiber.Ctx, to document.Status) error {
	var order models.PurchaseOrder
	if err := database.DB.Preload("Items").First(&order, "id = ?", c.Params("id")).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "purchase order not found")
	}
	if err := document.CheckTransition(document.TypePurchaseOrder, order.Status, to); err != nil {
		return err
	}

	from := order.Status
	if err := database.DB.Model(&order).Update("status", to).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Could not update status", "error": err.Error()})
	}
	order.Status = to

	recordStatusEvent(database.DB, document.TypePurchaseOrder, order.Id, from, to, userID(c), order)
	if to == document.StatusConfirmed {
		// Best-effort downstream automation; never blocks the transition.
		notifyConfirmation(document.TypePurchaseOrder, order.Id, order.Code)
	}

	return c.JSON(order)
}

func ConfirmPurchaseOrder(c *fiber.Ctx) error { return transitionPurchaseOrder(c, document.StatusConfirmed) }

// RejectPurchaseOrder sends a confirmed order back to draft for rework.
func RejectPurchaseOrder(c *fiber.Ctx) error { return transitionPurchaseOrder(c, document.StatusDraft) }

func CancelPurchaseOrder(c *fiber.Ctx) error { return transitionPurchaseOrder(c, document.StatusCancelled) }
