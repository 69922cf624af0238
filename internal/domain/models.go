package domain

import "github.com/shopspring/decimal"

// Product is keyed by SKU; it is created once and never updated.
type Product struct {
	ID          int64  `db:"id"`
	SKU         string `db:"sku"`
	Name        string `db:"name"`
	URL         string `db:"url"`
	Description string `db:"description"`
	Brand       string `db:"brand"`
	CreatedAt   string `db:"created_at"`
}

type Offer struct {
	ID           int64           `db:"id"`
	ProductID    int64           `db:"product_id"`
	Price        decimal.Decimal `db:"price"`
	Availability string          `db:"availability"`
	CreatedAt    string          `db:"created_at"`
}

// TrackedProduct is a URL a user asked us to watch. Nothing consumes it yet.
type TrackedProduct struct {
	ID        int64  `db:"id"`
	URL       string `db:"url"`
	CreatedAt string `db:"created_at"`
}
