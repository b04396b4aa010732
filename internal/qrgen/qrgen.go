// Package qrgen is the QR encoding boundary for the engine. It wraps the
// underlying code generators behind a single options struct so callers
// never see library-specific types.
package qrgen

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/qr"
	"github.com/skip2/go-qrcode"
)

// ErrEncoding wraps any failure from the underlying encoders.
var ErrEncoding = fmt.Errorf("qr encoding failed")

// Options controls how a code is rendered.
type Options struct {
	// PixelSize is the width and height of the output image in pixels.
	PixelSize int
	// Margin is the quiet zone in modules; zero or less disables the border.
	Margin int
	// Level is the error correction level: "L", "M", "Q" or "H".
	Level string
	// DarkColor and LightColor default to black on white when nil.
	DarkColor  color.Color
	LightColor color.Color
}

// Image encodes payload into a QR image. Used for the small
// high-correction payment code embedded in the receipt.
func Image(payload string, opts Options) (image.Image, error) {
	if payload == "" {
		return nil, fmt.Errorf("%w: empty payload", ErrEncoding)
	}

	size := opts.PixelSize
	if size == 0 {
		size = 256
	}

	code, err := qrcode.New(payload, correctionLevel(opts.Level))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncoding, err)
	}

	if opts.Margin <= 0 {
		code.DisableBorder = true
	}
	if opts.DarkColor != nil {
		code.ForegroundColor = opts.DarkColor
	}
	if opts.LightColor != nil {
		code.BackgroundColor = opts.LightColor
	}

	return code.Image(size), nil
}

// PNG encodes payload into PNG bytes.
func PNG(payload string, opts Options) ([]byte, error) {
	img, err := Image(payload, opts)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncoding, err)
	}

	return buf.Bytes(), nil
}

// DisplayImage encodes payload into a larger medium-correction code meant
// for on-screen display rather than embedding, scaled to pixelSize.
func DisplayImage(payload string, pixelSize int) (image.Image, error) {
	if payload == "" {
		return nil, fmt.Errorf("%w: empty payload", ErrEncoding)
	}

	if pixelSize == 0 {
		pixelSize = 512
	}

	code, err := qr.Encode(payload, qr.M, qr.Auto)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncoding, err)
	}

	scaled, err := barcode.Scale(code, pixelSize, pixelSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncoding, err)
	}

	return scaled, nil
}

// DisplayPNG encodes payload into display-sized PNG bytes.
func DisplayPNG(payload string, pixelSize int) ([]byte, error) {
	img, err := DisplayImage(payload, pixelSize)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncoding, err)
	}

	return buf.Bytes(), nil
}

func correctionLevel(level string) qrcode.RecoveryLevel {
	switch level {
	case "L":
		return qrcode.Low
	case "M":
		return qrcode.Medium
	case "Q":
		return qrcode.High
	case "H":
		return qrcode.Highest
	default:
		return qrcode.Medium
	}
}
