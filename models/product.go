package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Product struct {
	Id          string  `json:"id" gorm:"primaryKey"`
	Sku         string  `json:"sku" gorm:"uniqueIndex;not null"`
	Name        string  `json:"name" gorm:"not null"`
	Description string  `json:"description"`
	UnitId      uint    `json:"-"`
	Unit        Unit    `json:"unit" gorm:"foreignKey:UnitId;references:Id"`
	Cost        float64 `json:"cost" gorm:"type:numeric(12,2)"`
	Price       float64 `json:"price" gorm:"type:numeric(12,2)"`
	Active      bool    `json:"-"`

	Specifications []ProductSpecification `json:"specifications" gorm:"foreignKey:ProductId;constraint:OnDelete:CASCADE"`
}

func (product *Product) BeforeCreate(tx *gorm.DB) (err error) {
	// UUID version 4
	product.Id = uuid.NewString()
	return
}

// ProductSpecification is a sellable variant (size, color, grade) of a product.
type ProductSpecification struct {
	Id        uint    `json:"id" gorm:"primaryKey"`
	ProductId string  `json:"product_id" gorm:"index;not null"`
	Name      string  `json:"name" gorm:"not null"`
	Cost      float64 `json:"cost" gorm:"type:numeric(12,2)"`
	Price     float64 `json:"price" gorm:"type:numeric(12,2)"`
}

type Unit struct {
	Id   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"unique;not null"`
	Code string `json:"code" gorm:"unique;not null"`
}
