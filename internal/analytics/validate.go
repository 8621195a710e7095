package analytics

import (
	"fmt"

	"ecommerce-analytics/internal/domain"
)

// RecordError describes one rejected input record.
type RecordError struct {
	OrderID int64
	Field   string
	Reason  string
}

func (e RecordError) String() string {
	return fmt.Sprintf("order %d: %s %s", e.OrderID, e.Field, e.Reason)
}

// Diagnostics reports what validation did to the input. The policy is
// skip-and-report: malformed records are dropped from the computation and
// counted here, they never abort the run.
type Diagnostics struct {
	TotalRecords   int
	SkippedRecords int
	RecordErrors   []RecordError

	// ReferenceDateWarnings lists customers whose latest order postdates
	// the configured reference date. Their recency is clamped to zero.
	ReferenceDateWarnings []string
}

// ValidateOrders splits the input into well-formed records and
// per-record diagnostics. A record with multiple bad fields is reported
// once, on the first violation found. The input slice is not mutated.
func ValidateOrders(orders []*domain.Order) ([]*domain.Order, *Diagnostics) {
	diags := &Diagnostics{TotalRecords: len(orders)}

	valid := make([]*domain.Order, 0, len(orders))
	for _, o := range orders {
		if err, ok := checkOrder(o); !ok {
			diags.SkippedRecords++
			diags.RecordErrors = append(diags.RecordErrors, err)
			continue
		}
		valid = append(valid, o)
	}
	return valid, diags
}

func checkOrder(o *domain.Order) (RecordError, bool) {
	if o == nil {
		return RecordError{Field: "record", Reason: "is nil"}, false
	}
	if o.OrderID <= 0 {
		return RecordError{OrderID: o.OrderID, Field: "order_id", Reason: "must be positive"}, false
	}
	if o.CustomerID == "" {
		return RecordError{OrderID: o.OrderID, Field: "customer_id", Reason: "is empty"}, false
	}
	if o.ProductName == "" {
		return RecordError{OrderID: o.OrderID, Field: "product_name", Reason: "is empty"}, false
	}
	if o.Category == "" {
		return RecordError{OrderID: o.OrderID, Field: "category", Reason: "is empty"}, false
	}
	if o.OrderDate.IsZero() {
		return RecordError{OrderID: o.OrderID, Field: "order_date", Reason: "is unset"}, false
	}
	if !o.UnitPrice.IsPositive() {
		return RecordError{OrderID: o.OrderID, Field: "unit_price", Reason: "must be positive"}, false
	}
	if o.Quantity <= 0 {
		return RecordError{OrderID: o.OrderID, Field: "quantity", Reason: "must be positive"}, false
	}
	if !o.TotalAmount.IsPositive() {
		return RecordError{OrderID: o.OrderID, Field: "total_amount", Reason: "must be positive"}, false
	}
	if !o.TotalAmount.Equal(o.ExpectedTotal()) {
		return RecordError{OrderID: o.OrderID, Field: "total_amount",
			Reason: fmt.Sprintf("is %s, want %s", o.TotalAmount, o.ExpectedTotal())}, false
	}
	return RecordError{}, true
}
