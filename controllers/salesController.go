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

type salesOrderItemInput struct {
	ProductId          string `json:"product_id" validate:"required"`
	SpecificationId    *uint  `json:"specification_id"`
	UnitId             uint   `json:"unit_id"`
	Quantity           string `json:"quantity"`
	UnitPrice          string `json:"unit_price"`
	DiscountPercentage string `json:"discount_percentage"`
	TaxPercentage      string `json:"tax_percentage"`
}

type salesOrderInput struct {
	CustomerId     uint                  `json:"customer_id" validate:"required"`
	WarehouseId    uint                  `json:"warehouse_id" validate:"required"`
	OrderDate      *time.Time            `json:"order_date"`
	Note           string                `json:"note"`
	DiscountAmount string                `json:"discount_amount"`
	TaxAmount      string                `json:"tax_amount"`
	Items          []salesOrderItemInput `json:"items"` // nested create
}

func buildSalesOrderItems(inputs []salesOrderItemInput) ([]models.SalesOrderItem, []document.Line) {
	items := make([]models.SalesOrderItem, 0, len(inputs))
	lines := make([]document.Line, 0, len(inputs))
	for _, in := range inputs {
		item := models.SalesOrderItem{
			ProductId:          in.ProductId,
			SpecificationId:    in.SpecificationId,
			UnitId:             in.UnitId,
			Quantity:           document.ParseAmount(in.Quantity),
			UnitPrice:          document.ParseAmount(in.UnitPrice),
			DiscountPercentage: document.ParseAmount(in.DiscountPercentage),
			TaxPercentage:      document.ParseAmount(in.TaxPercentage),
		}
		item.TotalAmount = utils.Round2(document.LineTotal(item))
		items = append(items, item)
		lines = append(lines, item)
	}
	return items, lines
}

func CreateSalesOrder(c *fiber.Ctx) error {
	var input salesOrderInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}

	items, lines := buildSalesOrderItems(input.Items)
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

	order := models.SalesOrder{
		Code:           nextDocumentCode(database.DB, &models.SalesOrder{}, "SO"),
		CustomerId:     input.CustomerId,
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
		return c.Status(500).JSON(fiber.Map{"message": "Could not create sales order", "error": err.Error()})
	}
	tx.Commit()

	return c.Status(201).JSON(order)
}

func GetSalesOrders(c *fiber.Ctx) error {
	limit := utils.ParseIntDefault(c.Query("limit"), 50)
	offset := utils.ParseIntDefault(c.Query("offset"), 0)

	var orders []models.SalesOrder
	q := database.DB.Preload("Items").Preload("Customer").
		Order("id DESC").Limit(limit).Offset(offset)
	if s := c.Query("status"); s != "" {
		q = q.Where("status = ?", s)
	}
	if err := q.Find(&orders).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Could not list sales orders", "error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"sales_orders": orders,
		"message":      "success",
	})
}

func GetSalesOrder(c *fiber.Ctx) error {
	var order models.SalesOrder
	if err := database.DB.Preload("Items").Preload("Customer").First(&order, "id = ?", c.Params("id")).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "sales order not found")
	}

	return c.JSON(fiber.Map{
		"sales_order":   order,
		"can_edit":      document.CanEdit(order.Status),
		"can_delete":    document.CanDelete(document.TypeSalesOrder, order.Status),
		"next_statuses": document.NextStatuses(document.TypeSalesOrder, order.Status),
	})
}

func UpdateSalesOrder(c *fiber.Ctx) error {
	var order models.SalesOrder
	if err := database.DB.First(&order, "id = ?", c.Params("id")).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "sales order not found")
	}
	if err := document.CheckEdit(document.TypeSalesOrder, order.Status); err != nil {
		return err
	}

	var input salesOrderInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}

	items, lines := buildSalesOrderItems(input.Items)
	if err := document.ValidateLines(lines); err != nil {
		return err
	}

	discount := document.ParseAmount(input.DiscountAmount)
	tax := document.ParseAmount(input.TaxAmount)
	subtotal := utils.Round2(document.Subtotal(lines))

	order.CustomerId = input.CustomerId
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
	if err := tx.Where("sales_order_id = ?", order.Id).Delete(&models.SalesOrderItem{}).Error; err != nil {
		tx.Rollback()
		return c.Status(500).JSON(fiber.Map{"message": "Could not update sales order", "error": err.Error()})
	}
	order.Items = items
	if err := tx.Save(&order).Error; err != nil {
		tx.Rollback()
		return c.Status(500).JSON(fiber.Map{"message": "Could not update sales order", "error": err.Error()})
	}
	tx.Commit()

	return c.JSON(order)
}

func DeleteSalesOrder(c *fiber.Ctx) error {
	var order models.SalesOrder
	if err := database.DB.First(&order, "id = ?", c.Params("id")).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "sales order not found")
	}
	if err := document.CheckDelete(document.TypeSalesOrder, order.Status); err != nil {
		return err
	}

	if err := database.DB.Delete(&order).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Could not delete sales order", "error": err.Error()})
	}

	return c.JSON(fiber.Map{"message": "success"})
}

func transitionSalesOrder(c *fiber.Ctx, to document.Status) error {
	var order models.SalesOrder
	if err := database.DB.Preload("Items").First(&order, "id = ?", c.Params("id")).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "sales order not found")
	}
	if err := document.CheckTransition(document.TypeSalesOrder, order.Status, to); err != nil {
		return err
	}

	from := order.Status
	if err := database.DB.Model(&order).Update("status", to).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Could not update status", "error": err.Error()})
	}
	order.Status = to

	recordStatusEvent(database.DB, document.TypeSalesOrder, order.Id, from, to, userID(c), order)
	if to == document.StatusConfirmed {
		notifyConfirmation(document.TypeSalesOrder, order.Id, order.Code)
	}

	return c.JSON(order)
}

func ConfirmSalesOrder(c *fiber.Ctx) error { return transitionSalesOrder(c, document.StatusConfirmed) }

func RejectSalesOrder(c *fiber.Ctx) error { return transitionSalesOrder(c, document.StatusDraft) }

func CancelSalesOrder(c *fiber.Ctx) error { return transitionSalesOrder(c, document.StatusCancelled) }
