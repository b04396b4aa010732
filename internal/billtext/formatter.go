// Package billtext produces the plain-text representation of a bill used
// for text-only sharing and the clipboard fallback.
package billtext

import (
	"fmt"
	"strings"

	"github.com/billshare/bill-engine/internal/clock"
	"github.com/billshare/bill-engine/pkg/billformat"
)

const divider = "------------------------------"

// ThankYouLine is the fixed closing line of every text receipt.
const ThankYouLine = "Thank you for your business!"

// Formatter renders bill summaries as chat-friendly text. It is pure and
// deterministic under an injected clock.
type Formatter struct {
	clock clock.Clock
}

// New creates a Formatter.
func New(clk clock.Clock) *Formatter {
	return &Formatter{clock: clk}
}

// Text formats the full receipt. The optional charge rows follow the same
// presence rule as the raster receipt so the two representations always
// show the same set of rows.
func (f *Formatter) Text(s *billformat.BillSummary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "*%s*\n", strings.ToUpper(s.BusinessName))
	if s.BusinessPhone != "" {
		fmt.Fprintf(&b, "Ph: %s\n", s.BusinessPhone)
	}
	b.WriteString(divider + "\n")

	when := f.clock.Now()
	if s.BillDate != nil {
		when = *s.BillDate
	}
	fmt.Fprintf(&b, "Bill No: %s\n", s.BillNumber)
	fmt.Fprintf(&b, "Customer: %s\n", s.CustomerName)
	fmt.Fprintf(&b, "Date: %s, %s\n", when.Format("02/01/2006"), when.Format("3:04 PM"))
	b.WriteString(divider + "\n")

	for i, item := range s.Items {
		fmt.Fprintf(&b, "%d. %s\n", i+1, item.Name)
		fmt.Fprintf(&b, "   %d × %s = %s\n", item.Quantity, rupees(item.Rate), rupees(item.Amount))
	}
	b.WriteString(divider + "\n")

	fmt.Fprintf(&b, "Subtotal: %s\n", rupees(s.Subtotal))
	if s.HasDiscount() {
		fmt.Fprintf(&b, "Discount: -%s\n", rupees(*s.Discount))
	}
	if s.HasDeliveryCharge() {
		fmt.Fprintf(&b, "Delivery: +%s\n", rupees(*s.DeliveryCharge))
	}
	if s.HasPreviousBalance() {
		fmt.Fprintf(&b, "Previous Balance: +%s\n", rupees(*s.PreviousBalance))
	}
	fmt.Fprintf(&b, "*Grand Total: %s*\n", rupees(s.GrandTotal))
	b.WriteString(divider + "\n")

	b.WriteString(ThankYouLine)

	return b.String()
}

func rupees(v float64) string {
	return fmt.Sprintf("₹%.2f", v)
}
