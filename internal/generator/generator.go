// Package generator produces synthetic order datasets for loading into
// the store. Output is deterministic for a given seed.
package generator

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"ecommerce-analytics/internal/domain"
)

// Product is one catalog entry: a name, its category and a base price
// that generated unit prices vary around.
type Product struct {
	Name      string
	Category  string
	BasePrice float64
}

// Catalog is the fixed product set orders are drawn from.
var Catalog = []Product{
	{"iPhone 14", "Electronics", 999.99},
	{"MacBook Pro", "Electronics", 1299.99},
	{"AirPods", "Electronics", 179.99},
	{"T-Shirt", "Clothing", 24.99},
	{"Jeans", "Clothing", 59.99},
	{"Blender", "Home & Kitchen", 49.99},
	{"Coffee Maker", "Home & Kitchen", 89.99},
	{"Python Programming Book", "Books", 39.99},
	{"Yoga Mat", "Sports", 29.99},
	{"Face Cream", "Beauty", 19.99},
}

// Config controls dataset shape.
type Config struct {
	NumOrders    int
	NumCustomers int       // customer IDs CUST_001 .. CUST_<n>
	Seed         int64     // rng seed; same seed, same dataset
	StartDate    time.Time // first possible order date (midnight UTC)
	Days         int       // dates drawn uniformly from [StartDate, StartDate+Days)
}

// DefaultConfig matches the standard demo dataset: 2000 orders across
// 100 customers over calendar year 2023.
func DefaultConfig() Config {
	return Config{
		NumOrders:    2000,
		NumCustomers: 100,
		Seed:         42,
		StartDate:    time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		Days:         365,
	}
}

// Generator produces order datasets. Not safe for concurrent use; each
// run owns its rng.
type Generator struct {
	cfg   Config
	rng   *rand.Rand
	runID string
}

// New creates a Generator and assigns it a fresh run ID.
func New(cfg Config) *Generator {
	return &Generator{
		cfg:   cfg,
		rng:   rand.New(rand.NewSource(cfg.Seed)),
		runID: uuid.NewString(),
	}
}

// RunID identifies this generation run.
func (g *Generator) RunID() string {
	return g.runID
}

// Generate produces cfg.NumOrders orders with sequential IDs starting
// at 1. Unit price is the catalog base price ±20%, quantity is 1..3,
// total is round(price*quantity, 2).
func (g *Generator) Generate() []*domain.Order {
	orders := make([]*domain.Order, 0, g.cfg.NumOrders)
	for i := 1; i <= g.cfg.NumOrders; i++ {
		orders = append(orders, g.next(int64(i)))
	}
	return orders
}

func (g *Generator) next(orderID int64) *domain.Order {
	p := Catalog[g.rng.Intn(len(Catalog))]
	quantity := g.rng.Intn(3) + 1
	price := decimal.NewFromFloat(p.BasePrice * (0.8 + 0.4*g.rng.Float64())).Round(2)

	return &domain.Order{
		OrderID:     orderID,
		CustomerID:  fmt.Sprintf("CUST_%03d", g.rng.Intn(g.cfg.NumCustomers)+1),
		ProductName: p.Name,
		Category:    p.Category,
		OrderDate:   g.cfg.StartDate.AddDate(0, 0, g.rng.Intn(g.cfg.Days)),
		UnitPrice:   price,
		Quantity:    quantity,
		TotalAmount: price.Mul(decimal.NewFromInt(int64(quantity))).Round(2),
	}
}
