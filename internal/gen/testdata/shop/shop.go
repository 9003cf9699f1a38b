package shop

import "time"

// Status of an order.
type Status string

const (
	StatusOpen Status = "open"
	StatusPaid Status = "paid"
)

// Order is a purchase.
type Order struct {
	ID      int64     `json:"id" binding:"required"`
	Status  Status    `json:"status"`
	Lines   []Line    `json:"lines"`
	Created time.Time `json:"created"`
	Amount  Money     `json:"amount"`
}

// Line is one article of an order.
type Line struct {
	SKU      string  `json:"sku" validate:"min=3"`
	Quantity int     `json:"quantity" minimum:"1"`
	Price    float64 `json:"price" maximum:"+Inf"`
}

// Money is replaced by a decimal string.
type Money struct {
	Cents int64
}
