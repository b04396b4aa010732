// Package share selects and executes the best available sharing channel
// for a bill, with deterministic fallback when a channel is missing.
package share

import (
	"context"
	"errors"
)

// ErrRejected marks a native share dismissed by the user. It is a benign
// cancellation, never surfaced as a failure.
var ErrRejected = errors.New("share rejected by user")

// File is a shareable payload handed to the platform.
type File struct {
	Name string
	MIME string
	Data []byte
}

// Platform is the injected capability surface of the host. Probes report
// whether a primitive exists; invocations may still fail or be rejected
// by the user. Download implementations must release any transient
// resource (temp file, object handle) before returning, on success and
// failure alike.
type Platform interface {
	CanShareFiles(files []File) bool
	ShareFiles(ctx context.Context, files []File, title, text string) error

	CanShareText() bool
	ShareText(ctx context.Context, title, text string) error

	WriteClipboard(ctx context.Context, text string) error

	Download(ctx context.Context, filename string, data []byte) error

	OpenURL(ctx context.Context, url string) error
}
