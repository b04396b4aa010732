package renderer

import "os"

// Candidate TTF paths for the receipt face. gg falls back to its built-in
// bitmap face when none of these exist, which keeps headless environments
// (CI, tests) working at reduced fidelity.
var systemFonts = []string{
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/truetype/liberation/LiberationSans-Regular.ttf",
	"/System/Library/Fonts/Helvetica.ttc",
	"/System/Library/Fonts/Supplemental/Arial.ttf",
	"C:\\Windows\\Fonts\\arial.ttf",
}

func findFontPath() string {
	for _, path := range systemFonts {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

func (c *canvas) setFont(size float64) {
	if c.fontPath == "" {
		return
	}
	if err := c.ctx.LoadFontFace(c.fontPath, size); err != nil {
		// Keep drawing with whatever face the context has
		c.fontPath = ""
	}
	c.fontSize = size
}

// advance moves the vertical cursor by a fixed increment. All layout
// increments are named constants in layout.go.
func (c *canvas) advance(px int) {
	c.y += float64(px)
}

func (c *canvas) baseline() float64 {
	// Cursor marks the top of the line; baseline sits roughly one
	// em below for the loaded face.
	return c.y + c.fontSize
}

func (c *canvas) left(text string, x float64) {
	c.ctx.DrawString(text, x, c.baseline())
}

// center centers text on the full canvas width.
func (c *canvas) center(text string) {
	w, _ := c.ctx.MeasureString(text)
	c.ctx.DrawString(text, float64(c.width)/2-w/2, c.baseline())
}

// centerAt centers text on a column midpoint.
func (c *canvas) centerAt(text string, x float64) {
	w, _ := c.ctx.MeasureString(text)
	c.ctx.DrawString(text, x-w/2, c.baseline())
}

// right aligns the end of text to x.
func (c *canvas) right(text string, x float64) {
	w, _ := c.ctx.MeasureString(text)
	c.ctx.DrawString(text, x-w, c.baseline())
}

// ellipsize shortens text to fit maxWidth pixels in the current face.
func (c *canvas) ellipsize(text string, maxWidth int) string {
	w, _ := c.ctx.MeasureString(text)
	if w <= float64(maxWidth) {
		return text
	}

	runes := []rune(text)
	for len(runes) > 1 {
		runes = runes[:len(runes)-1]
		candidate := string(runes) + "…"
		if w, _ = c.ctx.MeasureString(candidate); w <= float64(maxWidth) {
			return candidate
		}
	}
	return "…"
}
