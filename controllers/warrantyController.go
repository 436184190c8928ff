package controllers

import (
	"time"

	"github.com/nguyentoan1998/stockflowapp-sub002/database"
	"github.com/nguyentoan1998/stockflowapp-sub002/document"
	"github.com/nguyentoan1998/stockflowapp-sub002/middlewares"
	"github.com/nguyentoan1998/stockflowapp-sub002/models"

	"github.com/gofiber/fiber/v2"
)

type warrantyItemInput struct {
	ProductId       string `json:"product_id" validate:"required"`
	SpecificationId *uint  `json:"specification_id"`
	Quantity        string `json:"quantity"`
	UnitPrice       string `json:"unit_price"`
	Reason          string `json:"reason"`
}

type warrantyInput struct {
	CustomerId uint                `json:"customer_id" validate:"required"`
	ClaimDate  *time.Time          `json:"claim_date"`
	Note       string              `json:"note"`
	Items      []warrantyItemInput `json:"items"`
}

func CreateWarranty(c *fiber.Ctx) error {
	var input warrantyInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}

	items := make([]models.WarrantyItem, 0, len(input.Items))
	lines := make([]document.Line, 0, len(input.Items))
	for _, in := range input.Items {
		item := models.WarrantyItem{
			ProductId:       in.ProductId,
			SpecificationId: in.SpecificationId,
			Quantity:        document.ParseAmount(in.Quantity),
			UnitPrice:       document.ParseAmount(in.UnitPrice),
			Reason:          in.Reason,
		}
		items = append(items, item)
		lines = append(lines, item)
	}
	if err := document.ValidateLines(lines); err != nil {
		return err
	}

	claimDate := time.Now()
	if input.ClaimDate != nil {
		claimDate = *input.ClaimDate
	}

	warranty := models.Warranty{
		Code:       nextDocumentCode(database.DB, &models.Warranty{}, "WR"),
		CustomerId: input.CustomerId,
		Status:     document.StatusDraft,
		ClaimDate:  claimDate,
		Note:       input.Note,
		Items:      items,
	}

	tx := database.DB.Begin()
	if err := tx.Create(&warranty).Error; err != nil {
		tx.Rollback()
		return c.Status(500).JSON(fiber.Map{"message": "Could not create warranty", "error": err.Error()})
	}
	tx.Commit()

	return c.Status(201).JSON(warranty)
}

func GetWarranties(c *fiber.Ctx) error {
	var warranties []models.Warranty
	if err := database.DB.Preload("Items").Preload("Customer").Order("id DESC").Find(&warranties).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Could not list warranties", "error": err.Error()})
	}
	return c.JSON(fiber.Map{"warranties": warranties, "message": "success"})
}

func GetWarranty(c *fiber.Ctx) error {
	var warranty models.Warranty
	if err := database.DB.Preload("Items").Preload("Customer").First(&warranty, "id = ?", c.Params("id")).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "warranty not found")
	}
	return c.JSON(fiber.Map{
		"warranty":      warranty,
		"can_edit":      document.CanEdit(warranty.Status),
		"can_delete":    document.CanDelete(document.TypeWarranty, warranty.Status),
		"next_statuses": document.NextStatuses(document.TypeWarranty, warranty.Status),
	})
}

// UpdateWarranty replaces a draft claim's content and line items. Non-drafts
// are refused before any database write.
func UpdateWarranty(c *fiber.Ctx) error {
	var warranty models.Warranty
	if err := database.DB.First(&warranty, "id = ?", c.Params("id")).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "warranty not found")
	}
	if err := document.CheckEdit(document.TypeWarranty, warranty.Status); err != nil {
		return err
	}

	var input warrantyInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}

	items := make([]models.WarrantyItem, 0, len(input.Items))
	lines := make([]document.Line, 0, len(input.Items))
	for _, in := range input.Items {
		item := models.WarrantyItem{
			ProductId:       in.ProductId,
			SpecificationId: in.SpecificationId,
			Quantity:        document.ParseAmount(in.Quantity),
			UnitPrice:       document.ParseAmount(in.UnitPrice),
			Reason:          in.Reason,
		}
		items = append(items, item)
		lines = append(lines, item)
	}
	if err := document.ValidateLines(lines); err != nil {
		return err
	}

	warranty.CustomerId = input.CustomerId
	warranty.Note = input.Note
	if input.ClaimDate != nil {
		warranty.ClaimDate = *input.ClaimDate
	}

	tx := database.DB.Begin()
	if err := tx.Where("warranty_id = ?", warranty.Id).Delete(&models.WarrantyItem{}).Error; err != nil {
		tx.Rollback()
		return c.Status(500).JSON(fiber.Map{"message": "Could not update warranty", "error": err.Error()})
	}
	warranty.Items = items
	if err := tx.Save(&warranty).Error; err != nil {
		tx.Rollback()
		return c.Status(500).JSON(fiber.Map{"message": "Could not update warranty", "error": err.Error()})
	}
	tx.Commit()

	return c.JSON(warranty)
}

func transitionWarranty(c *fiber.Ctx, to document.Status) error {
	var warranty models.Warranty
	if err := database.DB.Preload("Items").First(&warranty, "id = ?", c.Params("id")).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "warranty not found")
	}
	if err := document.CheckTransition(document.TypeWarranty, warranty.Status, to); err != nil {
		return err
	}

	from := warranty.Status
	if err := database.DB.Model(&warranty).Update("status", to).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Could not update status", "error": err.Error()})
	}
	warranty.Status = to

	recordStatusEvent(database.DB, document.TypeWarranty, warranty.Id, from, to, userID(c), warranty)
	if to == document.StatusConfirmed {
		notifyConfirmation(document.TypeWarranty, warranty.Id, warranty.Code)
	}

	return c.JSON(warranty)
}

func ConfirmWarranty(c *fiber.Ctx) error { return transitionWarranty(c, document.StatusConfirmed) }

func CompleteWarranty(c *fiber.Ctx) error { return transitionWarranty(c, document.StatusCompleted) }

func RejectWarranty(c *fiber.Ctx) error { return transitionWarranty(c, document.StatusRejected) }

func CancelWarranty(c *fiber.Ctx) error { return transitionWarranty(c, document.StatusCancelled) }

func DeleteWarranty(c *fiber.Ctx) error {
	var warranty models.Warranty
	if err := database.DB.First(&warranty, "id = ?", c.Params("id")).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "warranty not found")
	}
	if err := document.CheckDelete(document.TypeWarranty, warranty.Status); err != nil {
		return err
	}
	if err := database.DB.Delete(&warranty).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Could not delete warranty", "error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "success"})
}

type returnItemInput struct {
	ProductId       string `json:"product_id" validate:"required"`
	SpecificationId *uint  `json:"specification_id"`
	Quantity        string `json:"quantity"`
	UnitPrice       string `json:"unit_price"`
}

type returnOrderInput struct {
	SalesOrderId uint              `json:"sales_order_id" validate:"required"`
	WarehouseId  uint              `json:"warehouse_id"`
	ReturnDate   *time.Time        `json:"return_date"`
	Note         string            `json:"note"`
	Items        []returnItemInput `json:"items"`
}

func CreateReturnOrder(c *fiber.Ctx) error {
	var input returnOrderInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}

	var order models.SalesOrder
	if err := database.DB.First(&order, "id = ?", input.SalesOrderId).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "sales order not found")
	}

	items := make([]models.ReturnOrderItem, 0, len(input.Items))
	lines := make([]document.Line, 0, len(input.Items))
	for _, in := range input.Items {
		item := models.ReturnOrderItem{
			ProductId:       in.ProductId,
			SpecificationId: in.SpecificationId,
			Quantity:        document.ParseAmount(in.Quantity),
			UnitPrice:       document.ParseAmount(in.UnitPrice),
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
	returnDate := time.Now()
	if input.ReturnDate != nil {
		returnDate = *input.ReturnDate
	}

	ret := models.ReturnOrder{
		Code:         nextDocumentCode(database.DB, &models.ReturnOrder{}, "RT"),
		SalesOrderId: order.Id,
		WarehouseId:  warehouseId,
		Status:       document.StatusDraft,
		ReturnDate:   returnDate,
		Note:         input.Note,
		Items:        items,
	}

	tx := database.DB.Begin()
	if err := tx.Create(&ret).Error; err != nil {
		tx.Rollback()
		return c.Status(500).JSON(fiber.Map{"message": "Could not create return order", "error": err.Error()})
	}
	tx.Commit()

	return c.Status(201).JSON(ret)
}

func GetReturnOrders(c *fiber.Ctx) error {
	var returns []models.ReturnOrder
	q := database.DB.Preload("Items").Order("id DESC")
	if id := c.Query("sales_order_id"); id != "" {
		q = q.Where("sales_order_id = ?", id)
	}
	if err := q.Find(&returns).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Could not list return orders", "error": err.Error()})
	}
	return c.JSON(fiber.Map{"return_orders": returns, "message": "success"})
}

func ConfirmReturnOrder(c *fiber.Ctx) error { return transitionReturnOrder(c, document.StatusConfirmed) }

func RejectReturnOrder(c *fiber.Ctx) error { return transitionReturnOrder(c, document.StatusDraft) }

func CancelReturnOrder(c *fiber.Ctx) error { return transitionReturnOrder(c, document.StatusCancelled) }

func transitionReturnOrder(c *fiber.Ctx, to document.Status) error {
	var ret models.ReturnOrder
	if err := database.DB.Preload("Items").First(&ret, "id = ?", c.Params("id")).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "return order not found")
	}
	if err := document.CheckTransition(document.TypeReturn, ret.Status, to); err != nil {
		return err
	}

	from := ret.Status
	if err := database.DB.Model(&ret).Update("status", to).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Could not update status", "error": err.Error()})
	}
	ret.Status = to

	recordStatusEvent(database.DB, document.TypeReturn, ret.Id, from, to, userID(c), ret)
	if to == document.StatusConfirmed {
		notifyConfirmation(document.TypeReturn, ret.Id, ret.Code)
	}

	return c.JSON(ret)
}

// CompleteReturnOrder brings the returned goods back into stock.
func CompleteReturnOrder(c *fiber.Ctx) error {
	var ret models.ReturnOrder
	if err := database.DB.Preload("Items").First(&ret, "id = ?", c.Params("id")).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "return order not found")
	}
	if err := document.CheckTransition(document.TypeReturn, ret.Status, document.StatusCompleted); err != nil {
		return err
	}

	from := ret.Status
	tx := database.DB.Begin()

	if err := tx.Model(&ret).Updates(map[string]any{
		"status":       document.StatusCompleted,
		"is_inventory": true,
	}).Error; err != nil {
		tx.Rollback()
		return c.Status(500).JSON(fiber.Map{"message": "Could not complete return order", "error": err.Error()})
	}

	for _, item := range ret.Items {
		if err := adjustStock(tx, ret.WarehouseId, item.ProductId, item.SpecificationId, item.Quantity); err != nil {
			tx.Rollback()
			return c.Status(500).JSON(fiber.Map{"message": "Could not apply stock", "error": err.Error()})
		}
	}

	tx.Commit()

	ret.Status = document.StatusCompleted
	ret.IsInventory = true
	recordStatusEvent(database.DB, document.TypeReturn, ret.Id, from, document.StatusCompleted, userID(c), ret)

	return c.JSON(ret)
}

func DeleteReturnOrder(c *fiber.Ctx) error {
	var ret models.ReturnOrder
	if err := database.DB.First(&ret, "id = ?", c.Params("id")).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "return order not found")
	}
	if err := document.CheckDelete(document.TypeReturn, ret.Status); err != nil {
		return err
	}
	if err := database.DB.Delete(&ret).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Could not delete return order", "error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "success"})
}
