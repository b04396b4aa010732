// Package billformat defines the bill summary record handed to the engine
package billformat

import "time"

// BillSummary is the immutable input to the rendering and sharing pipeline.
// It is produced by the billing CRUD layer and transferred by value; the
// engine never mutates it.
type BillSummary struct {
	BillNumber    string     `json:"bill_number"`
	CustomerName  string     `json:"customer_name"`
	CustomerPhone string     `json:"customer_phone,omitempty"`
	Items         []LineItem `json:"items"`

	Subtotal        float64  `json:"subtotal"`
	Discount        *float64 `json:"discount,omitempty"`
	DeliveryCharge  *float64 `json:"delivery_charge,omitempty"`
	PreviousBalance *float64 `json:"previous_balance,omitempty"`
	GrandTotal      float64  `json:"grand_total"`

	BusinessName  string `json:"business_name"`
	BusinessPhone string `json:"business_phone,omitempty"`

	// BillDate is optional; when nil the current date is used at
	// render/format time.
	BillDate *time.Time `json:"bill_date,omitempty"`
}

// LineItem is one billed product or service.
type LineItem struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Rate     float64 `json:"rate"`
	Amount   float64 `json:"amount"`
}

// The three optional charge fields follow a shared presence rule: a field
// is rendered only when it is supplied and strictly greater than zero.
// Both the raster and the plain-text representation go through these
// helpers so they can never disagree about which rows are shown.

// HasDiscount reports whether the discount row should be rendered.
func (s *BillSummary) HasDiscount() bool {
	return present(s.Discount)
}

// HasDeliveryCharge reports whether the delivery charge row should be rendered.
func (s *BillSummary) HasDeliveryCharge() bool {
	return present(s.DeliveryCharge)
}

// HasPreviousBalance reports whether the previous balance row should be rendered.
func (s *BillSummary) HasPreviousBalance() bool {
	return present(s.PreviousBalance)
}

// OptionalChargeCount returns how many of the three optional charge rows
// are present, which drives the receipt height.
func (s *BillSummary) OptionalChargeCount() int {
	count := 0
	if s.HasDiscount() {
		count++
	}
	if s.HasDeliveryCharge() {
		count++
	}
	if s.HasPreviousBalance() {
		count++
	}
	return count
}

func present(v *float64) bool {
	return v != nil && *v > 0
}
