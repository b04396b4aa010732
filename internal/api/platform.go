package api

import (
	"context"

	"github.com/billshare/bill-engine/internal/share"
)

// recorderPlatform adapts the HTTP boundary to the share.Platform
// contract. A server has no native share sheet or clipboard; instead the
// platform primitives record their payloads and the handler returns them
// to the web client, which executes them on the real platform. One
// recorder is created per request and never shared.
type recorderPlatform struct {
	downloadName string
	downloadData []byte
	openedURL    string
	clipboard    string
}

func (p *recorderPlatform) CanShareFiles(files []share.File) bool { return false }

func (p *recorderPlatform) ShareFiles(ctx context.Context, files []share.File, title, text string) error {
	return nil
}

func (p *recorderPlatform) CanShareText() bool { return false }

func (p *recorderPlatform) ShareText(ctx context.Context, title, text string) error {
	return nil
}

func (p *recorderPlatform) WriteClipboard(ctx context.Context, text string) error {
	p.clipboard = text
	return nil
}

func (p *recorderPlatform) Download(ctx context.Context, filename string, data []byte) error {
	p.downloadName = filename
	p.downloadData = data
	return nil
}

func (p *recorderPlatform) OpenURL(ctx context.Context, url string) error {
	p.openedURL = url
	return nil
}
