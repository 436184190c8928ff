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

type inventoryLogInput struct {
	ProductId       string `json:"product_id" validate:"required"`
	SpecificationId *uint  `json:"specification_id"`
	UnitId          uint   `json:"unit_id"`
	Quantity        string `json:"quantity"`
	Cost            string `json:"cost"`
}

type inventoryTransactionInput struct {
	SourceWarehouseId      uint                `json:"source_warehouse_id" validate:"required"`
	DestinationWarehouseId uint                `json:"destination_warehouse_id" validate:"required"`
	TransactionDate        *time.Time          `json:"transaction_date"`
	Note                   string              `json:"note"`
	Logs                   []inventoryLogInput `json:"logs"`
}

func buildInventoryLogs(inputs []inventoryLogInput) ([]models.InventoryTransactionLog, []document.Line) {
	logs := make([]models.InventoryTransactionLog, 0, len(inputs))
	lines := make([]document.Line, 0, len(inputs))
	for _, in := range inputs {
		l := models.InventoryTransactionLog{
			ProductId:       in.ProductId,
			SpecificationId: in.SpecificationId,
			UnitId:          in.UnitId,
			Quantity:        document.ParseAmount(in.Quantity),
			Cost:            document.ParseAmount(in.Cost),
		}
		l.TotalAmount = utils.Round2(document.LineTotal(l))
		logs = append(logs, l)
		lines = append(lines, l)
	}
	return logs, lines
}

func CreateInventoryTransaction(c *fiber.Ctx) error {
	var input inventoryTransactionInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}
	if input.SourceWarehouseId == input.DestinationWarehouseId {
		return &document.ValidationError{Err: document.ErrSameWarehouse, Field: "destination_warehouse_id"}
	}

	logs, lines := buildInventoryLogs(input.Logs)
	if err := document.ValidateLines(lines); err != nil {
		return err
	}

	txDate := time.Now()
	if input.TransactionDate != nil {
		txDate = *input.TransactionDate
	}

	trans := models.InventoryTransaction{
		Code:                   nextDocumentCode(database.DB, &models.InventoryTransaction{}, "TR"),
		SourceWarehouseId:      input.SourceWarehouseId,
		DestinationWarehouseId: input.DestinationWarehouseId,
		Status:                 document.StatusDraft,
		TransactionDate:        txDate,
		Note:                   input.Note,
		Logs:                   logs,
	}

	tx := database.DB.Begin()
	if err := tx.Create(&trans).Error; err != nil {
		tx.Rollback()
		return c.Status(500).JSON(fiber.Map{"message": "Could not create inventory transaction", "error": err.Error()})
	}
	tx.Commit()

	return c.Status(201).JSON(trans)
}

func GetInventoryTransactions(c *fiber.Ctx) error {
	limit := utils.ParseIntDefault(c.Query("limit"), 50)
	offset := utils.ParseIntDefault(c.Query("offset"), 0)

	var transactions []models.InventoryTransaction
	q := database.DB.Preload("Logs").Order("id DESC").Limit(limit).Offset(offset)
	if s := c.Query("status"); s != "" {
		q = q.Where("status = ?", s)
	}
	if err := q.Find(&transactions).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Could not list inventory transactions", "error": err.Error()})
	}
	return c.JSON(fiber.Map{"inventory_transactions": transactions, "message": "success"})
}

func GetInventoryTransaction(c *fiber.Ctx) error {
	var trans models.InventoryTransaction
	if err := database.DB.Preload("Logs").First(&trans, "id = ?", c.Params("id")).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "inventory transaction not found")
	}
	return c.JSON(fiber.Map{
		"inventory_transaction": trans,
		"can_edit":              document.CanEdit(trans.Status),
		"can_delete":            document.CanDelete(document.TypeInventoryTransaction, trans.Status),
		"next_statuses":         document.NextStatuses(document.TypeInventoryTransaction, trans.Status),
	})
}

// UpdateInventoryTransaction rewrites a draft transfer. The save flow is three
// sequential statements (update header, delete old logs, insert new logs)
// with no surrounding transaction. A failure partway leaves the rows
// inconsistent and the caller retries; this step ordering is long-standing
// behavior that integrations depend on.
func UpdateInventoryTransaction(c *fiber.Ctx) error {
	var trans models.InventoryTransaction
	if err := database.DB.First(&trans, "id = ?", c.Params("id")).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "inventory transaction not found")
	}
	if err := document.CheckEdit(document.TypeInventoryTransaction, trans.Status); err != nil {
		return err
	}

	var input inventoryTransactionInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}
	if input.SourceWarehouseId == input.DestinationWarehouseId {
		return &document.ValidationError{Err: document.ErrSameWarehouse, Field: "destination_warehouse_id"}
	}

	logs, lines := buildInventoryLogs(input.Logs)
	if err := document.ValidateLines(lines); err != nil {
		return err
	}

	// Step 1: header.
	updates := map[string]any{
		"source_warehouse_id":      input.SourceWarehouseId,
		"destination_warehouse_id": input.DestinationWarehouseId,
		"note":                     input.Note,
	}
	if input.TransactionDate != nil {
		updates["transaction_date"] = *input.TransactionDate
	}
	if err := database.DB.Model(&trans).Updates(updates).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Could not update inventory transaction", "error": err.Error()})
	}

	// Step 2: delete old logs.
	if err := database.DB.Where("transaction_id = ?", trans.Id).Delete(&models.InventoryTransactionLog{}).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Could not replace transaction logs", "error": err.Error()})
	}

	// Step 3: insert new logs.
	for i := range logs {
		logs[i].TransactionId = trans.Id
	}
	if err := database.DB.Create(&logs).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Could not replace transaction logs", "error": err.Error()})
	}

	trans.Logs = logs
	return c.JSON(trans)
}

func transitionInventoryTransaction(c *fiber.Ctx, to document.Status) error {
	var trans models.InventoryTransaction
	if err := database.DB.Preload("Logs").First(&trans, "id = ?", c.Params("id")).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "inventory transaction not found")
	}
	if err := document.CheckTransition(document.TypeInventoryTransaction, trans.Status, to); err != nil {
		return err
	}

	from := trans.Status
	if err := database.DB.Model(&trans).Update("status", to).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Could not update status", "error": err.Error()})
	}
	trans.Status = to

	recordStatusEvent(database.DB, document.TypeInventoryTransaction, trans.Id, from, to, userID(c), trans)
	if to == document.StatusApproved {
		notifyConfirmation(document.TypeInventoryTransaction, trans.Id, trans.Code)
	}

	return c.JSON(trans)
}

func SubmitInventoryTransaction(c *fiber.Ctx) error {
	return transitionInventoryTransaction(c, document.StatusPending)
}

func ApproveInventoryTransaction(c *fiber.Ctx) error {
	return transitionInventoryTransaction(c, document.StatusApproved)
}

// RejectInventoryTransaction sends a pending transfer back to draft.
func RejectInventoryTransaction(c *fiber.Ctx) error {
	return transitionInventoryTransaction(c, document.StatusDraft)
}

func CancelInventoryTransaction(c *fiber.Ctx) error {
	return transitionInventoryTransaction(c, document.StatusCancelled)
}

// CompleteInventoryTransaction moves the stock: out of the source warehouse,
// into the destination.
func CompleteInventoryTransaction(c *fiber.Ctx) error {
	var trans models.InventoryTransaction
	if err := database.DB.Preload("Logs").First(&trans, "id = ?", c.Params("id")).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "inventory transaction not found")
	}
	if err := document.CheckTransition(document.TypeInventoryTransaction, trans.Status, document.StatusCompleted); err != nil {
		return err
	}

	from := trans.Status
	tx := database.DB.Begin()

	if err := tx.Model(&trans).Updates(map[string]any{
		"status":       document.StatusCompleted,
		"is_inventory": true,
	}).Error; err != nil {
		tx.Rollback()
		return c.Status(500).JSON(fiber.Map{"message": "Could not complete inventory transaction", "error": err.Error()})
	}

	for _, l := range trans.Logs {
		if err := adjustStock(tx, trans.SourceWarehouseId, l.ProductId, l.SpecificationId, -l.Quantity); err != nil {
			tx.Rollback()
			return c.Status(500).JSON(fiber.Map{"message": "Could not apply stock", "error": err.Error()})
		}
		if err := adjustStock(tx, trans.DestinationWarehouseId, l.ProductId, l.SpecificationId, l.Quantity); err != nil {
			tx.Rollback()
			return c.Status(500).JSON(fiber.Map{"message": "Could not apply stock", "error": err.Error()})
		}
	}

	tx.Commit()

	trans.Status = document.StatusCompleted
	trans.IsInventory = true
	recordStatusEvent(database.DB, document.TypeInventoryTransaction, trans.Id, from, document.StatusCompleted, userID(c), trans)

	return c.JSON(trans)
}

func DeleteInventoryTransaction(c *fiber.Ctx) error {
	var trans models.InventoryTransaction
	if err := database.DB.First(&trans, "id = ?", c.Params("id")).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "inventory transaction not found")
	}
	if err := document.CheckDelete(document.TypeInventoryTransaction, trans.Status); err != nil {
		return err
	}

	if err := database.DB.Delete(&trans).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Could not delete inventory transaction", "error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "success"})
}
