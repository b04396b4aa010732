// Package renderer draws thermal-style receipt images for bill summaries
package renderer

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"image/png"
	"strings"

	"github.com/fogleman/gg"
	"github.com/rs/zerolog"

	"github.com/billshare/bill-engine/internal/clock"
	"github.com/billshare/bill-engine/pkg/billformat"
)

var (
	// ErrRenderingUnsupported means no raster surface could be created.
	ErrRenderingUnsupported = errors.New("rendering surface unavailable")
	// ErrEncodingFailed means the finished surface could not be serialized.
	ErrEncodingFailed = errors.New("image encoding failed")
)

// SurfaceFactory creates the drawing surface for one render call. A
// factory returning nil models a platform without raster support.
type SurfaceFactory func(width, height int) *gg.Context

// RenderedReceipt is the output of one render call. It is created on
// demand and never cached; ownership passes to the caller.
type RenderedReceipt struct {
	PNG    []byte
	Width  int
	Height int
}

// Options describes the issuer details that are not part of the bill
// summary itself.
type Options struct {
	PayeeID   string // UPI virtual payment address
	PayeeName string
	Tagline   string
	Website   string
}

// Renderer turns bill summaries into receipt images. It is stateless
// across calls; every render owns a fresh surface.
type Renderer struct {
	surfaces SurfaceFactory
	layout   Layout
	clock    clock.Clock
	log      zerolog.Logger
	opts     Options
	fontPath string
}

// New creates a renderer drawing onto in-memory gg contexts.
func New(opts Options, clk clock.Clock, log zerolog.Logger) *Renderer {
	return &Renderer{
		surfaces: func(width, height int) *gg.Context {
			return gg.NewContext(width, height)
		},
		clock:    clk,
		log:      log,
		opts:     opts,
		fontPath: findFontPath(),
	}
}

// NewWithSurfaces creates a renderer with an injected surface factory.
func NewWithSurfaces(opts Options, clk clock.Clock, log zerolog.Logger, surfaces SurfaceFactory) *Renderer {
	r := New(opts, clk, log)
	r.surfaces = surfaces
	return r
}

// canvas holds the cursor state for a single render call. It is never
// shared: concurrent renders each get their own.
type canvas struct {
	ctx      *gg.Context
	width    int
	y        float64
	fontPath string
	fontSize float64
}

// Render draws the complete receipt and serializes it to PNG.
func (r *Renderer) Render(summary *billformat.BillSummary) (*RenderedReceipt, error) {
	width, height := r.layout.Size(summary)

	ctx := r.surfaces(width, height)
	if ctx == nil {
		return nil, ErrRenderingUnsupported
	}

	c := &canvas{ctx: ctx, width: width, fontPath: r.fontPath}

	// Background and full-bleed frame
	ctx.SetColor(color.White)
	ctx.Clear()
	ctx.SetColor(color.Black)
	ctx.SetLineWidth(2)
	ctx.DrawRectangle(3, 3, float64(width-6), float64(height-6))
	ctx.Stroke()

	r.drawHeader(c, summary)
	r.drawMeta(c, summary)
	r.drawItems(c, summary)
	r.drawTotals(c, summary)
	r.drawPaymentBlock(c, summary)
	r.drawFooter(c)

	var buf bytes.Buffer
	if err := png.Encode(&buf, ctx.Image()); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncodingFailed, err)
	}

	return &RenderedReceipt{
		PNG:    buf.Bytes(),
		Width:  width,
		Height: height,
	}, nil
}

func (r *Renderer) drawHeader(c *canvas, summary *billformat.BillSummary) {
	c.y = topPadding

	c.setFont(22)
	c.center(strings.ToUpper(summary.BusinessName))
	c.advance(businessNameAdvance)

	c.setFont(13)
	if r.opts.Tagline != "" {
		c.center(r.opts.Tagline)
	}
	c.advance(taglineAdvance)

	if summary.BusinessPhone != "" {
		c.center("Ph: " + summary.BusinessPhone)
	}
	c.advance(businessInfoAdvance)

	c.rule()
}

func (r *Renderer) drawMeta(c *canvas, summary *billformat.BillSummary) {
	c.setFont(14)
	c.left("Customer: "+summary.CustomerName, colItemX)
	c.advance(metaLineAdvance)

	c.left("Bill No: "+summary.BillNumber, colItemX)
	c.advance(metaLineAdvance)

	when := r.clock.Now()
	if summary.BillDate != nil {
		when = *summary.BillDate
	}
	c.left(fmt.Sprintf("Date: %s, %s", when.Format("02/01/2006"), when.Format("3:04 PM")), colItemX)
	c.advance(metaLineAdvance)

	c.rule()
}

func (r *Renderer) drawItems(c *canvas, summary *billformat.BillSummary) {
	c.setFont(15)
	c.center("ORDER DETAILS")
	c.advance(headingAdvance)

	c.rule()

	c.setFont(13)
	c.left("Item", colItemX)
	c.centerAt("Qty", colQtyX)
	c.centerAt("Price", colRateX)
	c.right("Total", colAmountX)
	c.advance(tableHeaderAdvance)

	c.rule()

	// Every item is drawn, in input order.
	c.setFont(13)
	for _, item := range summary.Items {
		c.left(c.ellipsize(item.Name, colItemMaxW), colItemX)
		c.centerAt(fmt.Sprintf("%d", item.Quantity), colQtyX)
		c.centerAt(trimAmount(item.Rate), colRateX)
		c.right(trimAmount(item.Amount), colAmountX)
		c.advance(ItemRowHeight)
	}
}

func (r *Renderer) drawTotals(c *canvas, summary *billformat.BillSummary) {
	c.rule()

	c.setFont(14)
	c.left("Subtotal", colItemX)
	c.right(rupees(summary.Subtotal), colAmountX)
	c.advance(ChargeRowHeight)

	// Optional rows follow the presence rule shared with the text
	// representation: supplied and strictly greater than zero.
	if summary.HasDiscount() {
		c.left("Discount", colItemX)
		c.right("-"+rupees(*summary.Discount), colAmountX)
		c.advance(ChargeRowHeight)
	}
	if summary.HasDeliveryCharge() {
		c.left("Delivery", colItemX)
		c.right("+"+rupees(*summary.DeliveryCharge), colAmountX)
		c.advance(ChargeRowHeight)
	}
	if summary.HasPreviousBalance() {
		c.left("Previous Balance", colItemX)
		c.right("+"+rupees(*summary.PreviousBalance), colAmountX)
		c.advance(ChargeRowHeight)
	}

	c.doubleRule()

	c.setFont(20)
	c.center("TOTAL: " + rupees(summary.GrandTotal))
	c.advance(grandTotalAdvance)

	c.doubleRule()
}

func (r *Renderer) drawFooter(c *canvas) {
	c.setFont(14)
	c.center("Thank you for your business!")
	c.advance(thankYouAdvance)

	c.setFont(12)
	if r.opts.Website != "" {
		c.center(r.opts.Website)
	}
	c.advance(websiteAdvance)
}

func rupees(v float64) string {
	return fmt.Sprintf("₹%.2f", v)
}

// trimAmount renders item-table numbers without trailing zero noise so
// the narrow columns stay readable.
func trimAmount(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	return s
}
