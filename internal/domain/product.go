package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog item. Products are read-only through the API.
type Product struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Price       Price     `json:"price"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Price is a fixed-point amount stored as NUMERIC(10,2). It serializes as a
// JSON string with exactly two fractional digits.
type Price struct {
	decimal.Decimal
}

// NewPrice parses a decimal string such as "12.5".
func NewPrice(s string) (Price, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Price{}, err
	}
	return Price{Decimal: d}, nil
}

// PriceFromCents builds a price from an integer number of cents.
func PriceFromCents(cents int64) Price {
	return Price{Decimal: decimal.New(cents, -2)}
}

// MustPrice is NewPrice for constants; it panics on malformed input.
func MustPrice(s string) Price {
	p, err := NewPrice(s)
	if err != nil {
		panic(err)
	}
	return p
}

// String returns the price with two fractional digits.
func (p Price) String() string {
	return p.StringFixed(2)
}

// MarshalJSON implements json.Marshaler.
func (p Price) MarshalJSON() ([]byte, error) {
	return []byte(`"` + p.StringFixed(2) + `"`), nil
}
