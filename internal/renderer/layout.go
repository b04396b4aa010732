package renderer

import "github.com/billshare/bill-engine/pkg/billformat"

// All pixel geometry lives here so a visual change is a single-point edit.
// The receipt is a fixed-width, variable-height canvas calibrated to a
// 58mm thermal form factor.

// ReceiptWidth is the fixed canvas width in pixels.
const ReceiptWidth = 384

// Vertical advances for the fixed sections. Each named segment height is
// the sum of the advances its drawing steps take, so the layout formula
// and the cursor always agree.
const (
	topPadding          = 26
	businessNameAdvance = 30
	taglineAdvance      = 20
	businessInfoAdvance = 22

	metaLineAdvance = 22

	headingAdvance     = 24
	tableHeaderAdvance = 22

	ruleAdvance       = 16
	doubleRuleAdvance = 18

	grandTotalAdvance = 34

	thankYouAdvance = 24
	websiteAdvance  = 20
	bottomPadding   = 22
)

const (
	headerHeight    = topPadding + businessNameAdvance + taglineAdvance + businessInfoAdvance + ruleAdvance
	metaHeight      = 3*metaLineAdvance + ruleAdvance
	tableHeadHeight = headingAdvance + ruleAdvance + tableHeaderAdvance + ruleAdvance
	totalsHeight    = ruleAdvance + ChargeRowHeight + doubleRuleAdvance + grandTotalAdvance + doubleRuleAdvance
	footerHeight    = thankYouAdvance + websiteAdvance + bottomPadding
)

// BaseHeight fits the header, metadata block, table chrome, subtotal and
// grand total, and the footer of an empty bill.
const BaseHeight = headerHeight + metaHeight + tableHeadHeight + totalsHeight + footerHeight

// ItemRowHeight is the advance per line item row.
const ItemRowHeight = 28

// ChargeRowHeight is the advance per optional charge row (and the
// subtotal row, which is always present).
const ChargeRowHeight = 26

// Payment QR block geometry.
const (
	payHeadingAdvance = 24
	qrTileSize        = 140
	qrTilePadding     = 8
	qrTileBorder      = 2
	qrTileAdvance     = qrTileSize + 8
	qrInnerSize       = qrTileSize - 2*qrTilePadding - 2*qrTileBorder
	payHintAdvance    = 20
	payeeAdvance      = 24
)

// QRBlockHeight is reserved for the payment section whether or not the QR
// encoder succeeds; a failed encode leaves the tile area blank.
const QRBlockHeight = payHeadingAdvance + qrTileAdvance + payHintAdvance + payeeAdvance

// qrTileFallbackAdvance replaces the tile advance when QR encoding fails.
const qrTileFallbackAdvance = 24

// Horizontal geometry for the four-column item table.
const (
	contentMargin = 14
	colItemX      = 20
	colItemMaxW   = 186
	colQtyX       = 228
	colRateX      = 284
	colAmountX    = 370
)

// Layout computes canvas dimensions for a bill summary.
type Layout struct{}

// Height returns the exact pixel height required:
// base + perItem*N + perCharge*k + qrBlock.
func (Layout) Height(summary *billformat.BillSummary) int {
	return BaseHeight +
		ItemRowHeight*len(summary.Items) +
		ChargeRowHeight*summary.OptionalChargeCount() +
		QRBlockHeight
}

// Size returns the full canvas dimensions.
func (l Layout) Size(summary *billformat.BillSummary) (width, height int) {
	return ReceiptWidth, l.Height(summary)
}
