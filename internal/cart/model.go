package cart

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item is one cart line with the product identity and price resolved from
// the live catalog row at read time.
type Item struct {
	ProductID   uint            `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	AddedAt     time.Time       `json:"added_at"`
}

// Cart is the single active cart of a customer.
type Cart struct {
	CustomerID uint   `json:"customer_id"`
	Items      []Item `json:"items"`
}

type UpsertItemParams struct {
	CustomerID uint
	ProductID  uint
	Quantity   int
}
