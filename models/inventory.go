package models

import (
	"time"

	"github.com/nguyentoan1998/stockflowapp-sub002/document"
)

// InventoryTransaction moves stock between two warehouses through a
// draft → pending → approved → completed approval flow.
type InventoryTransaction struct {
	Id                     uint            `json:"id" gorm:"primaryKey"`
	Code                   string          `json:"code" gorm:"uniqueIndex;not null"`
	SourceWarehouseId      uint            `json:"source_warehouse_id" gorm:"not null"`
	DestinationWarehouseId uint            `json:"destination_warehouse_id" gorm:"not null"`
	Status                 document.Status `json:"status" gorm:"size:32;not null;default:draft"`
	TransactionDate        time.Time       `json:"transaction_date"`
	Note                   string          `json:"note"`

	IsInventory bool `json:"isinventory" gorm:"default:false"`

	Logs []InventoryTransactionLog `json:"logs" gorm:"foreignKey:TransactionId;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// InventoryTransactionLog is one product row of a transfer. Edit mode deletes
// the old logs and inserts the new set as separate sequential statements, the
// same step ordering the save flow has always had.
type InventoryTransactionLog struct {
	Id              uint    `json:"id" gorm:"primaryKey"`
	TransactionId   uint    `json:"-" gorm:"index"`
	ProductId       string  `json:"product_id" gorm:"not null;index"`
	SpecificationId *uint   `json:"specification_id"`
	UnitId          uint    `json:"unit_id"`
	Quantity        float64 `json:"quantity" gorm:"type:numeric(12,2)"`
	Cost            float64 `json:"cost" gorm:"type:numeric(12,2)"`
	TotalAmount     float64 `json:"total_amount" gorm:"type:numeric(12,2)"`
}

func (l InventoryTransactionLog) LineQuantity() float64  { return l.Quantity }
func (l InventoryTransactionLog) LineUnitPrice() float64 { return l.Cost }
