package share

import (
	"bytes"
	"context"
	"errors"
	"image/png"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/fogleman/gg"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/billshare/bill-engine/internal/billtext"
	"github.com/billshare/bill-engine/internal/clock"
	"github.com/billshare/bill-engine/internal/renderer"
	"github.com/billshare/bill-engine/internal/sharelink"
	"github.com/billshare/bill-engine/pkg/billformat"
)

var testClock = clock.FixedClock{T: time.Date(2024, 5, 1, 14, 30, 0, 0, time.UTC)}

// fakePlatform records every invocation in order and can be shaped into
// any of the four capability permutations.
type fakePlatform struct {
	filesSupported bool
	textSupported  bool

	shareFilesErr error
	shareTextErr  error
	clipboardErr  error
	downloadErr   error

	calls []string

	sharedFiles   []File
	sharedTitle   string
	sharedText    string
	clipboard     string
	downloadName  string
	downloadBytes []byte
	openedURL     string
}

func (p *fakePlatform) CanShareFiles(files []File) bool { return p.filesSupported }

func (p *fakePlatform) ShareFiles(ctx context.Context, files []File, title, text string) error {
	p.calls = append(p.calls, "share_files")
	p.sharedFiles = files
	p.sharedTitle = title
	return p.shareFilesErr
}

func (p *fakePlatform) CanShareText() bool { return p.textSupported }

func (p *fakePlatform) ShareText(ctx context.Context, title, text string) error {
	p.calls = append(p.calls, "share_text")
	p.sharedTitle = title
	p.sharedText = text
	return p.shareTextErr
}

func (p *fakePlatform) WriteClipboard(ctx context.Context, text string) error {
	p.calls = append(p.calls, "clipboard")
	p.clipboard = text
	return p.clipboardErr
}

func (p *fakePlatform) Download(ctx context.Context, filename string, data []byte) error {
	p.calls = append(p.calls, "download")
	p.downloadName = filename
	p.downloadBytes = data
	return p.downloadErr
}

func (p *fakePlatform) OpenURL(ctx context.Context, u string) error {
	p.calls = append(p.calls, "open_url")
	p.openedURL = u
	return nil
}

func testSummary() *billformat.BillSummary {
	return &billformat.BillSummary{
		BillNumber:    "GZ000001",
		CustomerName:  "Asha",
		CustomerPhone: "+91 98765 43210",
		BusinessName:  "Sparkle Laundry",
		Items: []billformat.LineItem{
			{Name: "Wash", Quantity: 2, Rate: 50, Amount: 100},
		},
		Subtotal:   100,
		GrandTotal: 100,
	}
}

func testDispatcher(platform Platform) *Dispatcher {
	rend := renderer.New(renderer.Options{
		PayeeID:   "sparkle@upi",
		PayeeName: "Sparkle Laundry",
	}, testClock, zerolog.Nop())

	d := NewDispatcher(rend, billtext.New(testClock), platform, testClock, zerolog.Nop(), "https://bills.example")
	d.ChatDelay = 0 // ordering matters in tests, the pause does not
	return d
}

func TestShareChatImage_NativeFiles(t *testing.T) {
	platform := &fakePlatform{filesSupported: true}
	d := testDispatcher(platform)

	outcome := d.ShareChatImage(context.Background(), testSummary())

	require.True(t, outcome.OK)
	assert.Equal(t, ChannelNativeFiles, outcome.Channel)
	assert.Equal(t, []string{"share_files"}, platform.calls)
	require.Len(t, platform.sharedFiles, 1)
	assert.Equal(t, "Bill_GZ000001.png", platform.sharedFiles[0].Name)
	assert.Equal(t, "image/png", platform.sharedFiles[0].MIME)
	assert.NotEmpty(t, platform.sharedFiles[0].Data)
	assert.Contains(t, platform.sharedTitle, "GZ000001")
}

func TestShareChatImage_FallbackOrdering(t *testing.T) {
	platform := &fakePlatform{filesSupported: false}
	d := testDispatcher(platform)

	outcome := d.ShareChatImage(context.Background(), testSummary())

	require.True(t, outcome.OK)
	assert.Equal(t, ChannelDownloadDeeplink, outcome.Channel)
	// Download must precede the deep link
	assert.Equal(t, []string{"download", "open_url"}, platform.calls)
	assert.Equal(t, "Bill_GZ000001.png", platform.downloadName)

	require.True(t, strings.HasPrefix(platform.openedURL, "https://wa.me/919876543210?text="), platform.openedURL)
	raw := strings.TrimPrefix(platform.openedURL, "https://wa.me/919876543210?text=")
	text, err := url.QueryUnescape(raw)
	require.NoError(t, err)
	assert.Contains(t, text, "Bill No: GZ000001")
	assert.Contains(t, text, "please attach it here")
}

func TestShareChatImage_NoPhone(t *testing.T) {
	platform := &fakePlatform{}
	d := testDispatcher(platform)

	s := testSummary()
	s.CustomerPhone = ""
	outcome := d.ShareChatImage(context.Background(), s)

	require.True(t, outcome.OK)
	assert.True(t, strings.HasPrefix(platform.openedURL, "https://wa.me/?text="), platform.openedURL)
}

func TestShareChatImage_Rejected(t *testing.T) {
	platform := &fakePlatform{filesSupported: true, shareFilesErr: ErrRejected}
	d := testDispatcher(platform)

	outcome := d.ShareChatImage(context.Background(), testSummary())

	assert.True(t, outcome.OK, "rejection is a benign cancellation")
	assert.True(t, outcome.Cancelled)
	assert.Equal(t, "Share cancelled", outcome.Message)
}

func TestShareChatImage_RenderFailure(t *testing.T) {
	platform := &fakePlatform{filesSupported: true}
	rend := renderer.NewWithSurfaces(renderer.Options{}, testClock, zerolog.Nop(),
		func(width, height int) *gg.Context { return nil })
	d := NewDispatcher(rend, billtext.New(testClock), platform, testClock, zerolog.Nop(), "https://bills.example")

	outcome := d.ShareChatImage(context.Background(), testSummary())

	assert.False(t, outcome.OK)
	assert.Equal(t, "Cannot generate the receipt image", outcome.Message)
	assert.Empty(t, platform.calls, "no platform call after a failed render")
}

func TestShareSystem_NativeText(t *testing.T) {
	platform := &fakePlatform{textSupported: true}
	d := testDispatcher(platform)

	outcome := d.ShareSystem(context.Background(), testSummary())

	require.True(t, outcome.OK)
	assert.Equal(t, ChannelNativeText, outcome.Channel)
	assert.Equal(t, []string{"share_text"}, platform.calls)
	assert.Equal(t, "Bill GZ000001", platform.sharedTitle)
	assert.Contains(t, platform.sharedText, billtext.ThankYouLine)
}

func TestShareSystem_ClipboardFallback(t *testing.T) {
	platform := &fakePlatform{textSupported: false}
	d := testDispatcher(platform)

	outcome := d.ShareSystem(context.Background(), testSummary())

	require.True(t, outcome.OK)
	assert.Equal(t, ChannelClipboard, outcome.Channel)
	assert.Equal(t, []string{"clipboard"}, platform.calls)
	assert.Contains(t, platform.clipboard, "Customer: Asha")
}

func TestShareSystem_ClipboardFailure(t *testing.T) {
	platform := &fakePlatform{clipboardErr: errors.New("denied")}
	d := testDispatcher(platform)

	outcome := d.ShareSystem(context.Background(), testSummary())

	assert.False(t, outcome.OK)
	assert.False(t, outcome.Cancelled)
	assert.Equal(t, "Could not copy the bill to the clipboard", outcome.Message)
}

func TestGenerateQR_NeedsNoCapability(t *testing.T) {
	platform := &fakePlatform{} // nothing supported
	d := testDispatcher(platform)

	outcome := d.GenerateQR(context.Background(), testSummary())

	require.True(t, outcome.OK)
	assert.Equal(t, ChannelQRDisplay, outcome.Channel)
	assert.Equal(t, "Bill_GZ000001_QR.png", outcome.Filename)
	assert.Empty(t, platform.calls)

	img, err := png.Decode(bytes.NewReader(outcome.Image))
	require.NoError(t, err)
	assert.Equal(t, 512, img.Bounds().Dx())
}

func TestDownload_NeedsNoCapability(t *testing.T) {
	platform := &fakePlatform{}
	d := testDispatcher(platform)

	outcome := d.Download(context.Background(), testSummary())

	require.True(t, outcome.OK)
	assert.Equal(t, ChannelDownload, outcome.Channel)
	assert.Equal(t, "Bill_GZ000001.png", platform.downloadName)

	_, err := png.Decode(bytes.NewReader(platform.downloadBytes))
	assert.NoError(t, err, "downloaded bytes must be a valid PNG")
}

func TestCopyLink(t *testing.T) {
	platform := &fakePlatform{}
	d := testDispatcher(platform)

	outcome := d.CopyLink(context.Background(), testSummary())

	require.True(t, outcome.OK)
	assert.Equal(t, ChannelLinkCopy, outcome.Channel)
	require.True(t, strings.HasPrefix(platform.clipboard, "https://bills.example/bill/"), platform.clipboard)

	token := strings.TrimPrefix(platform.clipboard, "https://bills.example/bill/")
	reduced, err := sharelink.Decode(token)
	require.NoError(t, err)
	assert.Equal(t, "GZ000001", reduced.BillNumber)
	assert.Equal(t, "2024-05-01", reduced.Date)
}

func TestCopyLink_Failure(t *testing.T) {
	platform := &fakePlatform{clipboardErr: errors.New("denied")}
	d := testDispatcher(platform)

	outcome := d.CopyLink(context.Background(), testSummary())

	assert.False(t, outcome.OK)
	assert.Equal(t, "Could not copy the link", outcome.Message)
}
