package share

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/billshare/bill-engine/internal/billtext"
	"github.com/billshare/bill-engine/internal/clock"
	"github.com/billshare/bill-engine/internal/qrgen"
	"github.com/billshare/bill-engine/internal/renderer"
	"github.com/billshare/bill-engine/internal/sharelink"
	"github.com/billshare/bill-engine/pkg/billformat"
)

// Action identifies one user-facing share operation.
type Action string

const (
	ActionShareChatImage Action = "share_chat_image"
	ActionShareSystem    Action = "share_system"
	ActionGenerateQR     Action = "generate_qr"
	ActionDownload       Action = "download"
	ActionCopyLink       Action = "copy_link"
)

// Channel names the strategy that actually ran.
const (
	ChannelNativeFiles      = "native_files"
	ChannelDownloadDeeplink = "download_deeplink"
	ChannelNativeText       = "native_text"
	ChannelClipboard        = "clipboard"
	ChannelQRDisplay        = "qr_display"
	ChannelDownload         = "download"
	ChannelLinkCopy         = "link_copy"
)

// Outcome is the single result of a dispatched action. Platform errors
// never escape the dispatcher; they are classified into this record.
// A cancelled outcome has OK set because user dismissal is not a failure.
type Outcome struct {
	ID        string `json:"id"`
	Action    Action `json:"action"`
	Channel   string `json:"channel"`
	OK        bool   `json:"ok"`
	Cancelled bool   `json:"cancelled,omitempty"`
	Message   string `json:"message"`

	// Image carries the display QR for ActionGenerateQR.
	Image    []byte `json:"-"`
	Filename string `json:"filename,omitempty"`
}

// DefaultChatDelay lets the download dialog surface before the chat deep
// link opens. Ordering, not duration, is the requirement.
const DefaultChatDelay = 1500 * time.Millisecond

// Dispatcher executes share actions against an injected platform. Each
// action is independent; the only shared state is immutable configuration.
type Dispatcher struct {
	renderer  *renderer.Renderer
	formatter *billtext.Formatter
	platform  Platform
	clock     clock.Clock
	log       zerolog.Logger

	// Origin is the public base URL for viewer links.
	Origin string
	// ChatDelay separates the image download from the chat deep link.
	ChatDelay time.Duration
	// QRPixelSize is the display QR side length.
	QRPixelSize int
}

// NewDispatcher creates a Dispatcher.
func NewDispatcher(rend *renderer.Renderer, formatter *billtext.Formatter, platform Platform, clk clock.Clock, log zerolog.Logger, origin string) *Dispatcher {
	return &Dispatcher{
		renderer:    rend,
		formatter:   formatter,
		platform:    platform,
		clock:       clk,
		log:         log,
		Origin:      origin,
		ChatDelay:   DefaultChatDelay,
		QRPixelSize: 512,
	}
}

// strategy is one rung of a fallback chain: a capability probe plus the
// execution it guards.
type strategy struct {
	channel     string
	failMessage string
	available   func() bool
	run         func(ctx context.Context) (stepResult, error)
}

type stepResult struct {
	message  string
	image    []byte
	filename string
}

func always() bool { return true }

// ShareChatImage renders the receipt and shares it into a chat app,
// preferring the native file share and falling back to a manual download
// followed by a pre-filled chat deep link.
func (d *Dispatcher) ShareChatImage(ctx context.Context, summary *billformat.BillSummary) *Outcome {
	rendered, err := d.renderer.Render(summary)
	if err != nil {
		return d.renderFailure(ActionShareChatImage, summary, err)
	}

	file := File{Name: receiptFilename(summary), MIME: "image/png", Data: rendered.PNG}
	caption := fmt.Sprintf("Bill %s from %s", summary.BillNumber, summary.BusinessName)

	return d.dispatch(ctx, ActionShareChatImage, summary, []strategy{
		{
			channel:     ChannelNativeFiles,
			failMessage: "Could not share the receipt",
			available:   func() bool { return d.platform.CanShareFiles([]File{file}) },
			run: func(ctx context.Context) (stepResult, error) {
				if err := d.platform.ShareFiles(ctx, []File{file}, caption, caption); err != nil {
					return stepResult{}, err
				}
				return stepResult{message: "Receipt image shared", filename: file.Name}, nil
			},
		},
		{
			channel:     ChannelDownloadDeeplink,
			failMessage: "Could not open the chat app",
			available:   always,
			run: func(ctx context.Context) (stepResult, error) {
				if err := d.platform.Download(ctx, file.Name, file.Data); err != nil {
					return stepResult{}, err
				}
				// Let the save dialog surface before leaving the app.
				if err := d.wait(ctx); err != nil {
					return stepResult{}, err
				}
				text := d.formatter.Text(summary) +
					"\n\n(Receipt image downloaded — please attach it here.)"
				if err := d.platform.OpenURL(ctx, chatDeepLink(summary.CustomerPhone, text)); err != nil {
					return stepResult{}, err
				}
				return stepResult{
					message:  "Receipt downloaded; attach the image in the chat",
					filename: file.Name,
				}, nil
			},
		},
	})
}

// ShareSystem shares the plain-text bill through the native text share,
// falling back to the clipboard.
func (d *Dispatcher) ShareSystem(ctx context.Context, summary *billformat.BillSummary) *Outcome {
	text := d.formatter.Text(summary)
	title := "Bill " + summary.BillNumber

	return d.dispatch(ctx, ActionShareSystem, summary, []strategy{
		{
			channel:     ChannelNativeText,
			failMessage: "Could not share the bill",
			available:   d.platform.CanShareText,
			run: func(ctx context.Context) (stepResult, error) {
				if err := d.platform.ShareText(ctx, title, text); err != nil {
					return stepResult{}, err
				}
				return stepResult{message: "Bill shared"}, nil
			},
		},
		{
			channel:     ChannelClipboard,
			failMessage: "Could not copy the bill to the clipboard",
			available:   always,
			run: func(ctx context.Context) (stepResult, error) {
				if err := d.platform.WriteClipboard(ctx, text); err != nil {
					return stepResult{}, err
				}
				return stepResult{message: "Bill copied to clipboard"}, nil
			},
		},
	})
}

// GenerateQR builds the viewer-link QR for on-screen display. It needs no
// platform share capability.
func (d *Dispatcher) GenerateQR(ctx context.Context, summary *billformat.BillSummary) *Outcome {
	return d.dispatch(ctx, ActionGenerateQR, summary, []strategy{
		{
			channel:     ChannelQRDisplay,
			failMessage: "Could not generate the QR code",
			available:   always,
			run: func(ctx context.Context) (stepResult, error) {
				link := sharelink.ViewerURL(d.Origin, sharelink.FromSummary(summary, d.clock))
				img, err := qrgen.DisplayPNG(link, d.QRPixelSize)
				if err != nil {
					return stepResult{}, err
				}
				return stepResult{
					message:  "QR code ready",
					image:    img,
					filename: qrFilename(summary),
				}, nil
			},
		},
	})
}

// Download renders the receipt and saves it through the platform download
// primitive. It needs no platform share capability.
func (d *Dispatcher) Download(ctx context.Context, summary *billformat.BillSummary) *Outcome {
	rendered, err := d.renderer.Render(summary)
	if err != nil {
		return d.renderFailure(ActionDownload, summary, err)
	}

	filename := receiptFilename(summary)
	return d.dispatch(ctx, ActionDownload, summary, []strategy{
		{
			channel:     ChannelDownload,
			failMessage: "Could not download the receipt",
			available:   always,
			run: func(ctx context.Context) (stepResult, error) {
				if err := d.platform.Download(ctx, filename, rendered.PNG); err != nil {
					return stepResult{}, err
				}
				return stepResult{message: "Receipt downloaded", filename: filename}, nil
			},
		},
	})
}

// CopyLink writes the bill-viewer URL to the clipboard and reports the
// result of that write.
func (d *Dispatcher) CopyLink(ctx context.Context, summary *billformat.BillSummary) *Outcome {
	return d.dispatch(ctx, ActionCopyLink, summary, []strategy{
		{
			channel:     ChannelLinkCopy,
			failMessage: "Could not copy the link",
			available:   always,
			run: func(ctx context.Context) (stepResult, error) {
				link := sharelink.ViewerURL(d.Origin, sharelink.FromSummary(summary, d.clock))
				if err := d.platform.WriteClipboard(ctx, link); err != nil {
					return stepResult{}, err
				}
				return stepResult{message: "Link copied to clipboard"}, nil
			},
		},
	})
}

// dispatch walks the chain and executes the first available strategy,
// classifying any error into the outcome.
func (d *Dispatcher) dispatch(ctx context.Context, action Action, summary *billformat.BillSummary, chain []strategy) *Outcome {
	for _, s := range chain {
		if !s.available() {
			continue
		}

		res, err := s.run(ctx)
		outcome := &Outcome{
			ID:      uuid.New().String(),
			Action:  action,
			Channel: s.channel,
		}

		switch {
		case err == nil:
			outcome.OK = true
			outcome.Message = res.message
			outcome.Image = res.image
			outcome.Filename = res.filename
		case errors.Is(err, ErrRejected):
			outcome.OK = true
			outcome.Cancelled = true
			outcome.Message = "Share cancelled"
		default:
			outcome.Message = s.failMessage
		}

		evt := d.log.Info()
		if !outcome.OK {
			evt = d.log.Warn().Err(err)
		}
		evt.Str("action", string(action)).
			Str("channel", s.channel).
			Str("bill", summary.BillNumber).
			Bool("ok", outcome.OK).
			Msg("share dispatched")

		return outcome
	}

	return &Outcome{
		ID:      uuid.New().String(),
		Action:  action,
		Message: "No share channel available",
	}
}

func (d *Dispatcher) renderFailure(action Action, summary *billformat.BillSummary, err error) *Outcome {
	d.log.Error().Err(err).Str("action", string(action)).
		Str("bill", summary.BillNumber).Msg("receipt render failed")

	return &Outcome{
		ID:      uuid.New().String(),
		Action:  action,
		Message: "Cannot generate the receipt image",
	}
}

func (d *Dispatcher) wait(ctx context.Context) error {
	if d.ChatDelay <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d.ChatDelay):
		return nil
	}
}

// chatDeepLink builds a wa.me link pre-filled with text. The phone target
// is optional; non-digits are stripped from it.
func chatDeepLink(phone, text string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, phone)

	return "https://wa.me/" + digits + "?text=" + url.QueryEscape(text)
}

func receiptFilename(s *billformat.BillSummary) string {
	return fmt.Sprintf("Bill_%s.png", s.BillNumber)
}

func qrFilename(s *billformat.BillSummary) string {
	return fmt.Sprintf("Bill_%s_QR.png", s.BillNumber)
}
