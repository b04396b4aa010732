package renderer

import (
	"fmt"
	"image"
	"image/color"
	"net/url"

	"github.com/disintegration/imaging"

	"github.com/billshare/bill-engine/internal/qrgen"
	"github.com/billshare/bill-engine/pkg/billformat"
)

// PaymentPayload builds the UPI deep link embedded in the payment QR:
// upi://pay?pa=<payee>&pn=<name>&am=<amount>&cu=INR&tn=<note>.
func PaymentPayload(opts Options, summary *billformat.BillSummary) string {
	note := "Bill " + summary.BillNumber
	return fmt.Sprintf("upi://pay?pa=%s&pn=%s&am=%.2f&cu=INR&tn=%s",
		opts.PayeeID,
		url.QueryEscape(opts.PayeeName),
		summary.GrandTotal,
		url.QueryEscape(note))
}

func (r *Renderer) drawPaymentBlock(c *canvas, summary *billformat.BillSummary) {
	c.setFont(14)
	c.center("SCAN TO PAY")
	c.advance(payHeadingAdvance)

	payload := PaymentPayload(r.opts, summary)
	qrImg, err := qrgen.Image(payload, qrgen.Options{
		PixelSize: qrInnerSize,
		Margin:    0,
		Level:     "H",
	})
	if err != nil {
		// Non-fatal: the receipt still renders, just without the tile.
		r.log.Warn().Err(err).Str("bill", summary.BillNumber).
			Msg("payment qr encoding failed, omitting tile")
		c.advance(qrTileFallbackAdvance)
	} else {
		r.drawQRTile(c, qrImg)
		c.advance(qrTileAdvance)
	}

	c.setFont(12)
	c.center("Pay via any UPI app")
	c.advance(payHintAdvance)

	c.center(r.opts.PayeeID)
	c.advance(payeeAdvance)
}

// drawQRTile composites the code onto a padded white tile with a border,
// centered on the receipt. It does not advance the cursor.
func (r *Renderer) drawQRTile(c *canvas, qrImg image.Image) {
	tileX := float64(c.width-qrTileSize) / 2
	tileY := c.y

	c.ctx.SetColor(color.White)
	c.ctx.DrawRectangle(tileX, tileY, qrTileSize, qrTileSize)
	c.ctx.Fill()

	c.ctx.SetColor(color.Black)
	c.ctx.SetLineWidth(qrTileBorder)
	c.ctx.DrawRectangle(tileX, tileY, qrTileSize, qrTileSize)
	c.ctx.Stroke()

	if qrImg.Bounds().Dx() != qrInnerSize {
		qrImg = imaging.Resize(qrImg, qrInnerSize, qrInnerSize, imaging.NearestNeighbor)
	}

	inset := float64(qrTileBorder + qrTilePadding)
	c.ctx.DrawImage(qrImg, int(tileX+inset), int(tileY+inset))
}
