package models

import (
	"time"

	"github.com/nguyentoan1998/stockflowapp-sub002/document"
)

type SalesOrder struct {
	Id          uint            `json:"id" gorm:"primaryKey"`
	Code        string          `json:"code" gorm:"uniqueIndex;not null"`
	CustomerId  uint            `json:"-"`
	Customer    Customer        `json:"customer" gorm:"foreignKey:CustomerId;references:Id"`
	WarehouseId uint            `json:"warehouse_id" gorm:"not null"`
	Status      document.Status `json:"status" gorm:"size:32;not null;default:draft"`
	OrderDate   time.Time       `json:"order_date"`
	Note        string          `json:"note"`

	Subtotal       float64 `json:"subtotal" gorm:"type:numeric(12,2)"`
	DiscountAmount float64 `json:"discount_amount" gorm:"type:numeric(12,2)"`
	TaxAmount      float64 `json:"tax_amount" gorm:"type:numeric(12,2)"`
	TotalAmount    float64 `json:"total_amount" gorm:"type:numeric(12,2)"`

	Items []SalesOrderItem `json:"items" gorm:"foreignKey:SalesOrderId;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type SalesOrderItem struct {
	Id                 uint    `json:"id" gorm:"primaryKey"`
	SalesOrderId       uint    `json:"-" gorm:"index"`
	ProductId          string  `json:"product_id" gorm:"not null;index"`
	SpecificationId    *uint   `json:"specification_id"`
	UnitId             uint    `json:"unit_id"`
	Quantity           float64 `json:"quantity" gorm:"type:numeric(12,2)"`
	UnitPrice          float64 `json:"unit_price" gorm:"type:numeric(12,2)"`
	DiscountPercentage float64 `json:"discount_percentage" gorm:"default:0"`
	TaxPercentage      float64 `json:"tax_percentage" gorm:"default:0"`
	TotalAmount        float64 `json:"total_amount" gorm:"type:numeric(12,2)"`

	// Fulfillment counter, maintained by delivery completions only.
	DeliveredQuantity float64 `json:"delivered_quantity" gorm:"type:numeric(12,2);default:0"`
}

func (i SalesOrderItem) LineQuantity() float64  { return i.Quantity }
func (i SalesOrderItem) LineUnitPrice() float64 { return i.UnitPrice }

// Delivery ships goods against a sales order. Completing it decrements stock
// and advances the order's delivered counters.
type Delivery struct {
	Id           uint            `json:"id" gorm:"primaryKey"`
	Code         string          `json:"code" gorm:"uniqueIndex;not null"`
	SalesOrderId uint            `json:"sales_order_id" gorm:"index;not null"`
	WarehouseId  uint            `json:"warehouse_id" gorm:"not null"`
	Status       document.Status `json:"status" gorm:"size:32;not null;default:draft"`
	DeliveryDate time.Time       `json:"delivery_date"`
	Note         string          `json:"note"`

	IsInventory bool `json:"isinventory" gorm:"default:false"`

	Items []DeliveryItem `json:"items" gorm:"foreignKey:DeliveryId;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type DeliveryItem struct {
	Id               uint    `json:"id" gorm:"primaryKey"`
	DeliveryId       uint    `json:"-" gorm:"index"`
	SalesOrderItemId uint    `json:"sales_order_item_id" gorm:"index;not null"`
	ProductId        string  `json:"product_id" gorm:"not null"`
	SpecificationId  *uint   `json:"specification_id"`
	Quantity         float64 `json:"quantity" gorm:"type:numeric(12,2)"`
	UnitPrice        float64 `json:"unit_price" gorm:"type:numeric(12,2)"`
}

func (i DeliveryItem) LineQuantity() float64  { return i.Quantity }
func (i DeliveryItem) LineUnitPrice() float64 { return i.UnitPrice }
