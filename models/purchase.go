package models

import (
	"time"

	"github.com/nguyentoan1998/stockflowapp-sub002/document"
)

// PurchaseOrder is the live state of an order placed with a supplier.
// Monetary totals are derived: recomputed from items on every save, never
// mutated independently.
type PurchaseOrder struct {
	Id          uint            `json:"id" gorm:"primaryKey"`
	Code        string          `json:"code" gorm:"uniqueIndex;not null"`
	SupplierId  uint            `json:"-"`
	Supplier    Supplier        `json:"supplier" gorm:"foreignKey:SupplierId;references:Id"`
	WarehouseId uint            `json:"warehouse_id" gorm:"not null"`
	Status      document.Status `json:"status" gorm:"size:32;not null;default:draft"`
	OrderDate   time.Time       `json:"order_date"`
	Note        string          `json:"note"`

	Subtotal       float64 `json:"subtotal" gorm:"type:numeric(12,2)"`
	DiscountAmount float64 `json:"discount_amount" gorm:"type:numeric(12,2)"`
	TaxAmount      float64 `json:"tax_amount" gorm:"type:numeric(12,2)"`
	TotalAmount    float64 `json:"total_amount" gorm:"type:numeric(12,2)"`

	Items []PurchaseOrderItem `json:"items" gorm:"foreignKey:PurchaseOrderId;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type PurchaseOrderItem struct {
	Id              uint    `json:"id" gorm:"primaryKey"`
	PurchaseOrderId uint    `json:"-" gorm:"index"`
	ProductId       string  `json:"product_id" gorm:"not null;index"`
	SpecificationId *uint   `json:"specification_id"`
	UnitId          uint    `json:"unit_id"`
	Quantity        float64 `json:"quantity" gorm:"type:numeric(12,2)"`
	Cost            float64 `json:"cost" gorm:"type:numeric(12,2)"`
	TotalAmount     float64 `json:"total_amount" gorm:"type:numeric(12,2)"`

	// Fulfillment counter, maintained by receive completions only.
	ReceivedQuantity float64 `json:"received_quantity" gorm:"type:numeric(12,2);default:0"`
}

func (i PurchaseOrderItem) LineQuantity() float64  { return i.Quantity }
func (i PurchaseOrderItem) LineUnitPrice() float64 { return i.Cost }

// PurchaseReceive records goods arriving against a purchase order. Completing
// it mutates warehouse stock and the order's fulfillment counters.
type PurchaseReceive struct {
	Id              uint            `json:"id" gorm:"primaryKey"`
	Code            string          `json:"code" gorm:"uniqueIndex;not null"`
	PurchaseOrderId uint            `json:"purchase_order_id" gorm:"index;not null"`
	WarehouseId     uint            `json:"warehouse_id" gorm:"not null"`
	Status          document.Status `json:"status" gorm:"size:32;not null;default:draft"`
	ReceiveDate     time.Time       `json:"receive_date"`
	Note            string          `json:"note"`

	// Set once stock has been applied; the client only reflects this flag.
	IsInventory bool `json:"isinventory" gorm:"default:false"`

	Items []PurchaseReceiveItem `json:"items" gorm:"foreignKey:PurchaseReceiveId;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type PurchaseReceiveItem struct {
	Id                  uint    `json:"id" gorm:"primaryKey"`
	PurchaseReceiveId   uint    `json:"-" gorm:"index"`
	PurchaseOrderItemId uint    `json:"purchase_order_item_id" gorm:"index;not null"`
	ProductId           string  `json:"product_id" gorm:"not null"`
	SpecificationId     *uint   `json:"specification_id"`
	Quantity            float64 `json:"quantity" gorm:"type:numeric(12,2)"`
	Cost                float64 `json:"cost" gorm:"type:numeric(12,2)"`
}

func (i PurchaseReceiveItem) LineQuantity() float64  { return i.Quantity }
func (i PurchaseReceiveItem) LineUnitPrice() float64 { return i.Cost }
