package product

import "github.com/shopspring/decimal"

// Product is the live catalog row. Its price is only authoritative until an
// order snapshots it; order lines keep their own captured price.
type Product struct {
	ID          uint            `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	CategoryID  uint            `json:"category_id"`
}
