package models

type Warehouse struct {
	Id      uint   `json:"id" gorm:"primaryKey"`
	Name    string `json:"name" gorm:"unique;not null"`
	Address string `json:"address"`
	City    string `json:"city"`
	Phone   string `json:"phone"`
	Active  bool   `json:"-"`
}

// WarehouseStock is the on-hand quantity of one product (variant) in one
// warehouse. Mutated only by fulfillment completions; documents themselves
// never write stock directly.
type WarehouseStock struct {
	Id              uint    `json:"id" gorm:"primaryKey"`
	WarehouseId     uint    `json:"warehouse_id" gorm:"index:idx_stock_wh_product,unique,priority:1;not null"`
	ProductId       string  `json:"product_id" gorm:"index:idx_stock_wh_product,unique,priority:2;not null"`
	SpecificationId *uint   `json:"specification_id" gorm:"index:idx_stock_wh_product,unique,priority:3"`
	Quantity        float64 `json:"quantity" gorm:"type:numeric(12,2);not null;default:0"`
}
