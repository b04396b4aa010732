package renderer

import (
	"testing"

	"github.com/billshare/bill-engine/pkg/billformat"
)

func summaryWith(items int, charges int) *billformat.BillSummary {
	s := &billformat.BillSummary{
		BillNumber:   "GZ000001",
		CustomerName: "Asha",
		BusinessName: "Sparkle Laundry",
		Subtotal:     100,
		GrandTotal:   100,
	}

	for i := 0; i < items; i++ {
		s.Items = append(s.Items, billformat.LineItem{
			Name: "Wash", Quantity: 1, Rate: 50, Amount: 50,
		})
	}

	charge := 10.0
	if charges > 0 {
		s.Discount = &charge
	}
	if charges > 1 {
		s.DeliveryCharge = &charge
	}
	if charges > 2 {
		s.PreviousBalance = &charge
	}

	return s
}

func TestLayoutHeight(t *testing.T) {
	var layout Layout

	tests := []struct {
		items   int
		charges int
	}{
		{0, 0},
		{1, 0},
		{5, 0},
		{0, 1},
		{3, 2},
		{12, 3},
	}

	for _, tt := range tests {
		got := layout.Height(summaryWith(tt.items, tt.charges))
		want := BaseHeight + ItemRowHeight*tt.items + ChargeRowHeight*tt.charges + QRBlockHeight
		if got != want {
			t.Errorf("Height(%d items, %d charges) = %d, want %d", tt.items, tt.charges, got, want)
		}
	}
}

func TestLayoutHeight_ZeroChargeNotCounted(t *testing.T) {
	var layout Layout

	s := summaryWith(2, 0)
	zero := 0.0
	s.Discount = &zero

	// Supplied-but-zero must not add a row
	want := BaseHeight + 2*ItemRowHeight + QRBlockHeight
	if got := layout.Height(s); got != want {
		t.Errorf("Height with zero discount = %d, want %d", got, want)
	}
}

func TestLayoutSize(t *testing.T) {
	var layout Layout

	w, h := layout.Size(summaryWith(1, 1))
	if w != ReceiptWidth {
		t.Errorf("Expected width %d, got %d", ReceiptWidth, w)
	}
	if h != layout.Height(summaryWith(1, 1)) {
		t.Errorf("Size height disagrees with Height")
	}
}
