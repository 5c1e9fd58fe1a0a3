package main

import (
	"fmt"
	"math/rand/v2"

	"github.com/utafrali/wishlist/internal/domain"
)

var productNames = []string{
	"Wireless Bluetooth Headphones",
	"USB-C Hub Adapter",
	"Mechanical Keyboard",
	"4K Webcam",
	"Portable SSD 1TB",
	"Classic Cotton T-Shirt",
	"Running Shoes",
	"Rain Jacket",
	"Stainless Steel Cookware Set",
	"Coffee Maker",
	"Knife Set",
	"Ceramic Plate Set",
	"Yoga Mat",
	"Camping Tent",
	"Water Bottle",
	"Desk Lamp",
}

const (
	minPriceCents = 100
	maxPriceCents = 100000
)

// demoProducts returns n products named from productNames, cycling with a
// numeric suffix once the list is exhausted. Prices fall in 1.00..1000.00.
func demoProducts(n int, rng *rand.Rand) []domain.Product {
	products := make([]domain.Product, 0, n)
	for i := range n {
		name := productNames[i%len(productNames)]
		if round := i / len(productNames); round > 0 {
			name = fmt.Sprintf("%s #%d", name, round+1)
		}
		cents := minPriceCents + rng.Int64N(maxPriceCents-minPriceCents+1)
		products = append(products, domain.Product{
			Name:        name,
			Price:       domain.PriceFromCents(cents),
			Description: fmt.Sprintf("Demo listing for %s.", name),
		})
	}
	return products
}
