package models

import (
	"time"

	"github.com/nguyentoan1998/stockflowapp-sub002/document"
)

// Warranty tracks a claim raised by a customer against delivered goods.
type Warranty struct {
	Id         uint            `json:"id" gorm:"primaryKey"`
	Code       string          `json:"code" gorm:"uniqueIndex;not null"`
	CustomerId uint            `json:"-"`
	Customer   Customer        `json:"customer" gorm:"foreignKey:CustomerId;references:Id"`
	Status     document.Status `json:"status" gorm:"size:32;not null;default:draft"`
	ClaimDate  time.Time       `json:"claim_date"`
	Note       string          `json:"note"`

	Items []WarrantyItem `json:"items" gorm:"foreignKey:WarrantyId;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type WarrantyItem struct {
	Id              uint    `json:"id" gorm:"primaryKey"`
	WarrantyId      uint    `json:"-" gorm:"index"`
	ProductId       string  `json:"product_id" gorm:"not null"`
	SpecificationId *uint   `json:"specification_id"`
	Quantity        float64 `json:"quantity" gorm:"type:numeric(12,2)"`
	UnitPrice       float64 `json:"unit_price" gorm:"type:numeric(12,2)"`
	Reason          string  `json:"reason"`
}

func (i WarrantyItem) LineQuantity() float64  { return i.Quantity }
func (i WarrantyItem) LineUnitPrice() float64 { return i.UnitPrice }

// ReturnOrder brings sold goods back into stock when completed.
type ReturnOrder struct {
	Id           uint            `json:"id" gorm:"primaryKey"`
	Code         string          `json:"code" gorm:"uniqueIndex;not null"`
	SalesOrderId uint            `json:"sales_order_id" gorm:"index;not null"`
	WarehouseId  uint            `json:"warehouse_id" gorm:"not null"`
	Status       document.Status `json:"status" gorm:"size:32;not null;default:draft"`
	ReturnDate   time.Time       `json:"return_date"`
	Note         string          `json:"note"`

	IsInventory bool `json:"isinventory" gorm:"default:false"`

	Items []ReturnOrderItem `json:"items" gorm:"foreignKey:ReturnOrderId;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ReturnOrderItem struct {
	Id              uint    `json:"id" gorm:"primaryKey"`
	ReturnOrderId   uint    `json:"-" gorm:"index"`
	ProductId       string  `json:"product_id" gorm:"not null"`
	SpecificationId *uint   `json:"specification_id"`
	Quantity        float64 `json:"quantity" gorm:"type:numeric(12,2)"`
	UnitPrice       float64 `json:"unit_price" gorm:"type:numeric(12,2)"`
}

func (i ReturnOrderItem) LineQuantity() float64  { return i.Quantity }
func (i ReturnOrderItem) LineUnitPrice() float64 { return i.UnitPrice }
