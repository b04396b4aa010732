package billtext

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/billshare/bill-engine/internal/clock"
	"github.com/billshare/bill-engine/pkg/billformat"
)

var testClock = clock.FixedClock{T: time.Date(2024, 5, 1, 14, 30, 0, 0, time.UTC)}

func washSummary() *billformat.BillSummary {
	return &billformat.BillSummary{
		BillNumber:   "GZ000001",
		CustomerName: "Asha",
		BusinessName: "Sparkle Laundry",
		Items: []billformat.LineItem{
			{Name: "Wash", Quantity: 2, Rate: 50, Amount: 100},
		},
		Subtotal:   100,
		GrandTotal: 100,
	}
}

func TestText_NoOptionalCharges(t *testing.T) {
	text := New(testClock).Text(washSummary())

	assert.NotContains(t, text, "Discount:")
	assert.NotContains(t, text, "Delivery:")
	assert.NotContains(t, text, "Previous Balance:")
	assert.True(t, strings.HasSuffix(text, ThankYouLine), "text must end with the thank-you line")
}

func TestText_Content(t *testing.T) {
	text := New(testClock).Text(washSummary())

	assert.Contains(t, text, "*SPARKLE LAUNDRY*")
	assert.Contains(t, text, "Bill No: GZ000001")
	assert.Contains(t, text, "Customer: Asha")
	assert.Contains(t, text, "Date: 01/05/2024, 2:30 PM")
	assert.Contains(t, text, "1. Wash")
	assert.Contains(t, text, "2 × ₹50.00 = ₹100.00")
	assert.Contains(t, text, "Subtotal: ₹100.00")
	assert.Contains(t, text, "*Grand Total: ₹100.00*")
}

func TestText_OptionalCharges(t *testing.T) {
	s := washSummary()
	discount, delivery, balance := 10.0, 30.0, 200.0
	s.Discount = &discount
	s.DeliveryCharge = &delivery
	s.PreviousBalance = &balance
	s.GrandTotal = 320

	text := New(testClock).Text(s)

	assert.Contains(t, text, "Discount: -₹10.00")
	assert.Contains(t, text, "Delivery: +₹30.00")
	assert.Contains(t, text, "Previous Balance: +₹200.00")
}

func TestText_ZeroChargeSuppressed(t *testing.T) {
	s := washSummary()
	zero := 0.0
	s.Discount = &zero

	text := New(testClock).Text(s)
	assert.NotContains(t, text, "Discount:")
}

func TestText_ExplicitBillDate(t *testing.T) {
	s := washSummary()
	date := time.Date(2023, 12, 25, 9, 5, 0, 0, time.UTC)
	s.BillDate = &date

	text := New(testClock).Text(s)
	assert.Contains(t, text, "Date: 25/12/2023, 9:05 AM")
	assert.NotContains(t, text, "01/05/2024")
}

func TestText_Deterministic(t *testing.T) {
	f := New(testClock)
	require.Equal(t, f.Text(washSummary()), f.Text(washSummary()))
}

// The raster and text representations must agree on which optional rows
// appear for every presence combination.
func TestText_PresenceMatchesSummaryHelpers(t *testing.T) {
	charge := 25.0
	for mask := 0; mask < 8; mask++ {
		s := washSummary()
		if mask&1 != 0 {
			s.Discount = &charge
		}
		if mask&2 != 0 {
			s.DeliveryCharge = &charge
		}
		if mask&4 != 0 {
			s.PreviousBalance = &charge
		}

		text := New(testClock).Text(s)
		assert.Equal(t, s.HasDiscount(), strings.Contains(text, "Discount:"), "mask %d", mask)
		assert.Equal(t, s.HasDeliveryCharge(), strings.Contains(text, "Delivery:"), "mask %d", mask)
		assert.Equal(t, s.HasPreviousBalance(), strings.Contains(text, "Previous Balance:"), "mask %d", mask)
	}
}
