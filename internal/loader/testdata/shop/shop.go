package shop

import (
	"time"

	"github.com/griffnb/core-schema/internal/loader/testdata/shop/extra"
)

// Order is a purchase.
type Order struct {
	ID      int64      `json:"id"`
	Created time.Time  `json:"created"`
	Note    extra.Note `json:"note"`
}
