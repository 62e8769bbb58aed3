package service

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/skip2/go-qrcode"
)

const defaultQRSize = 256

type QRGenerator interface {
	Generate(orderID int) ([]byte, error)
}

// OrderQRCode renders the operator link of an order as a PNG.
type OrderQRCode struct {
	publicURL string
	size      int
	level     qrcode.RecoveryLevel
}

// NewOrderQRCode validates the public base URL and the recovery level name
// (low, medium, high, highest). A zero size falls back to 256 pixels.
func NewOrderQRCode(publicURL string, size int, recovery string) (*OrderQRCode, error) {
	base, err := url.Parse(publicURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("qr code: invalid public url %q", publicURL)
	}
	if size < 0 {
		return nil, fmt.Errorf("qr code: negative size %d", size)
	}
	if size == 0 {
		size = defaultQRSize
	}

	level, err := parseRecoveryLevel(recovery)
	if err != nil {
		return nil, err
	}
	return &OrderQRCode{publicURL: publicURL, size: size, level: level}, nil
}

// OrderURL is the address encoded into an order's QR code.
func (q *OrderQRCode) OrderURL(orderID int) (string, error) {
	return url.JoinPath(q.publicURL, "api", "orders", strconv.Itoa(orderID))
}

func (q *OrderQRCode) Generate(orderID int) ([]byte, error) {
	link, err := q.OrderURL(orderID)
	if err != nil {
		return nil, fmt.Errorf("qr code for order %d: %w", orderID, err)
	}

	code, err := qrcode.New(link, q.level)
	if err != nil {
		return nil, fmt.Errorf("qr code for order %d: %w", orderID, err)
	}
	return code.PNG(q.size)
}

func parseRecoveryLevel(name string) (qrcode.RecoveryLevel, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "low":
		return qrcode.Low, nil
	case "", "medium":
		return qrcode.Medium, nil
	case "high":
		return qrcode.High, nil
	case "highest":
		return qrcode.Highest, nil
	}
	return qrcode.Medium, fmt.Errorf("qr code: unknown recovery level %q", name)
}
