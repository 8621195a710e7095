package analytics

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"ecommerce-analytics/internal/domain"
)

func TestValidateOrders_AllValid(t *testing.T) {
	orders := []*domain.Order{
		makeOrder("CUST_001", "A", "Cat", day(2023, 1, 1), "10.00", 1),
		makeOrder("CUST_002", "B", "Cat", day(2023, 1, 2), "20.00", 2),
	}

	valid, diags := ValidateOrders(orders)

	if len(valid) != 2 {
		t.Errorf("len(valid) = %d, want 2", len(valid))
	}
	if diags.TotalRecords != 2 || diags.SkippedRecords != 0 {
		t.Errorf("diags = %d total, %d skipped, want 2/0", diags.TotalRecords, diags.SkippedRecords)
	}
}

func TestValidateOrders_SkipsAndReports(t *testing.T) {
	good := makeOrder("CUST_001", "A", "Cat", day(2023, 1, 1), "10.00", 1)

	missingCustomer := makeOrder("", "A", "Cat", day(2023, 1, 2), "10.00", 1)
	badQuantity := makeOrder("CUST_002", "A", "Cat", day(2023, 1, 3), "10.00", 1)
	badQuantity.Quantity = 0
	wrongTotal := makeOrder("CUST_003", "A", "Cat", day(2023, 1, 4), "10.00", 2)
	wrongTotal.TotalAmount = decimal.RequireFromString("19.99")

	valid, diags := ValidateOrders([]*domain.Order{good, missingCustomer, badQuantity, wrongTotal, nil})

	if len(valid) != 1 || valid[0] != good {
		t.Fatalf("len(valid) = %d, want only the good order", len(valid))
	}
	if diags.TotalRecords != 5 {
		t.Errorf("TotalRecords = %d, want 5", diags.TotalRecords)
	}
	if diags.SkippedRecords != 4 {
		t.Errorf("SkippedRecords = %d, want 4", diags.SkippedRecords)
	}
	if len(diags.RecordErrors) != 4 {
		t.Fatalf("len(RecordErrors) = %d, want 4", len(diags.RecordErrors))
	}

	wantFields := []string{"customer_id", "quantity", "total_amount", "record"}
	for i, field := range wantFields {
		if diags.RecordErrors[i].Field != field {
			t.Errorf("RecordErrors[%d].Field = %s, want %s", i, diags.RecordErrors[i].Field, field)
		}
	}
}

func TestValidateOrders_FirstViolationWins(t *testing.T) {
	o := makeOrder("", "", "Cat", day(2023, 1, 1), "10.00", 1)

	_, diags := ValidateOrders([]*domain.Order{o})

	if len(diags.RecordErrors) != 1 {
		t.Fatalf("len(RecordErrors) = %d, want 1", len(diags.RecordErrors))
	}
	if diags.RecordErrors[0].Field != "customer_id" {
		t.Errorf("Field = %s, want customer_id reported first", diags.RecordErrors[0].Field)
	}
}

func TestValidateOrders_ZeroDate(t *testing.T) {
	o := makeOrder("CUST_001", "A", "Cat", day(2023, 1, 1), "10.00", 1)
	o.OrderDate = time.Time{}

	valid, diags := ValidateOrders([]*domain.Order{o})

	if len(valid) != 0 {
		t.Fatalf("len(valid) = %d, want 0", len(valid))
	}
	if diags.RecordErrors[0].Field != "order_date" {
		t.Errorf("Field = %s, want order_date", diags.RecordErrors[0].Field)
	}
}

func TestRecordErrorString(t *testing.T) {
	e := RecordError{OrderID: 7, Field: "unit_price", Reason: "must be positive"}
	want := "order 7: unit_price must be positive"
	if got := e.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
