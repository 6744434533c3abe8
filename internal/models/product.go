package models

import "time"

// Product is a stock-keeping unit identified by its business code.
// Price is stored in integer currency units.
type Product struct {
	Code        string    `json:"code" gorm:"type:varchar(20);primaryKey"`
	Name        string    `json:"name" gorm:"type:varchar(200);not null"`
	Description string    `json:"description" gorm:"type:text"`
	Price       int64     `json:"price" gorm:"not null"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	Slots []Slot `json:"slots,omitempty" gorm:"foreignKey:ProductCode;references:Code"`
}

// TotalStock sums stock across the product's slots. Requires Slots loaded.
func (p *Product) TotalStock() int {
	total := 0
	for _, s := range p.Slots {
		total += s.Stock
	}
	return total
}
