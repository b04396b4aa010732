// Package sharelink encodes a reduced bill projection into an opaque
// URL-safe token and builds the shareable viewer link from it.
package sharelink

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/billshare/bill-engine/internal/clock"
	"github.com/billshare/bill-engine/pkg/billformat"
)

// ErrMalformedToken is returned when a token cannot be decoded back into
// a reduced summary.
var ErrMalformedToken = errors.New("invalid or corrupted link token")

// Reduced is the projection of a bill carried inside a share link.
type Reduced struct {
	BillNumber   string  `json:"bn"`
	CustomerName string  `json:"cn"`
	Total        float64 `json:"t"`
	Date         string  `json:"d"` // YYYY-MM-DD
}

// FromSummary builds the reduced projection, stamping the clock's date
// when the bill carries none.
func FromSummary(s *billformat.BillSummary, clk clock.Clock) Reduced {
	when := clk.Now()
	if s.BillDate != nil {
		when = *s.BillDate
	}

	return Reduced{
		BillNumber:   s.BillNumber,
		CustomerName: s.CustomerName,
		Total:        s.GrandTotal,
		Date:         when.Format("2006-01-02"),
	}
}

// Encode serializes the projection into a URL-safe opaque token. Encoding
// cannot fail for any Reduced value.
func Encode(r Reduced) string {
	data, _ := json.Marshal(r)
	return base64.RawURLEncoding.EncodeToString(data)
}

// Decode reverses Encode. It does not fully validate the payload but will
// not coerce garbage into a plausible summary: bad base64, bad JSON, or a
// payload without a bill number all fail with ErrMalformedToken.
func Decode(token string) (Reduced, error) {
	data, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return Reduced{}, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}

	var r Reduced
	if err := json.Unmarshal(data, &r); err != nil {
		return Reduced{}, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}

	if r.BillNumber == "" {
		return Reduced{}, fmt.Errorf("%w: missing bill number", ErrMalformedToken)
	}

	return r, nil
}

// ViewerURL builds the public bill-viewer link for a projection.
func ViewerURL(origin string, r Reduced) string {
	return origin + "/bill/" + Encode(r)
}
