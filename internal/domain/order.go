package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order represents a single purchase record.
// Corresponds to the orders table in PostgreSQL.
// Orders are immutable once created; analytics only derives from them.
type Order struct {
	OrderID     int64           // positive unique identifier
	CustomerID  string          // e.g. "CUST_042", many orders per customer
	ProductName string          // product implies a category (many-to-one)
	Category    string          //
	OrderDate   time.Time       // calendar date, midnight UTC, no time component
	UnitPrice   decimal.Decimal // positive
	Quantity    int             // positive
	TotalAmount decimal.Decimal // invariant: TotalAmount == round(UnitPrice*Quantity, 2)
	CreatedAt   time.Time       // record creation timestamp
}

// ExpectedTotal returns round(UnitPrice * Quantity, 2), the only valid
// TotalAmount for this order.
func (o *Order) ExpectedTotal() decimal.Decimal {
	return o.UnitPrice.Mul(decimal.NewFromInt(int64(o.Quantity))).Round(2)
}
