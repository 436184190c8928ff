package controllers

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/nguyentoan1998/stockflowapp-sub002/document"
	"github.com/nguyentoan1998/stockflowapp-sub002/logger"
	"github.com/nguyentoan1998/stockflowapp-sub002/models"
)

var auditLog = logger.WithComponent("audit")

func userID(c *fiber.Ctx) string {
	id, _ := c.Locals("userID").(string)
	return id
}

// recordStatusEvent appends a transition to the audit trail with a snapshot of
// the document body. Best-effort: a failed audit write is logged, never
// surfaced, and never rolls back the transition itself.
func recordStatusEvent(db *gorm.DB, docType document.Type, docID uint, from, to document.Status, user string, doc any) {
	snapshot, err := json.Marshal(doc)
	if err != nil {
		auditLog.Error().Err(err).Str("document_type", string(docType)).Uint("document_id", docID).Msg("snapshot marshal failed")
		snapshot = nil
	}
	event := models.StatusEvent{
		DocumentType: docType,
		DocumentId:   docID,
		FromStatus:   from,
		ToStatus:     to,
		UserId:       user,
		Snapshot:     snapshot,
	}
	if err := db.Create(&event).Error; err != nil {
		auditLog.Error().Err(err).Str("document_type", string(docType)).Uint("document_id", docID).Msg("status event write failed")
	}
}

// adjustStock applies a signed quantity delta to the on-hand row for one
// product (variant) in one warehouse, creating the row on first receipt.
// The non-negative CHECK on warehouse_stocks rejects overdraws.
func adjustStock(tx *gorm.DB, warehouseId uint, productId string, specId *uint, delta float64) error {
	q := tx.Where("warehouse_id = ? AND product_id = ?", warehouseId, productId)
	if specId != nil {
		q = q.Where("specification_id = ?", *specId)
	} else {
		q = q.Where("specification_id IS NULL")
	}

	var stock models.WarehouseStock
	if err := q.First(&stock).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			return err
		}
		stock = models.WarehouseStock{
			WarehouseId:     warehouseId,
			ProductId:       productId,
			SpecificationId: specId,
			Quantity:        delta,
		}
		return tx.Create(&stock).Error
	}
	return tx.Model(&stock).Update("quantity", gorm.Expr("quantity + ?", delta)).Error
}
