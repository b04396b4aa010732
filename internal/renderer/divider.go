package renderer

// rule draws a single horizontal divider and advances the cursor.
func (c *canvas) rule() {
	y := c.y + 7
	x1 := float64(contentMargin)
	x2 := float64(c.width - contentMargin)

	c.ctx.SetLineWidth(1.5)
	c.ctx.DrawLine(x1, y, x2, y)
	c.ctx.Stroke()

	c.advance(ruleAdvance)
}

// doubleRule draws the heavier two-line divider around the grand total.
func (c *canvas) doubleRule() {
	y := c.y + 8
	x1 := float64(contentMargin)
	x2 := float64(c.width - contentMargin)

	c.ctx.SetLineWidth(2)
	c.ctx.DrawLine(x1, y-2, x2, y-2)
	c.ctx.Stroke()
	c.ctx.DrawLine(x1, y+2, x2, y+2)
	c.ctx.Stroke()

	c.advance(doubleRuleAdvance)
}
