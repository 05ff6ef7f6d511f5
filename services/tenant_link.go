package services

import (
	"fmt"
	"net/url"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

const qrSize = 256

// TenantLinks builds the public ticket form address printed on QR codes
type TenantLinks struct {
	baseURL string
}

func NewTenantLinks(baseURL string) *TenantLinks {
	return &TenantLinks{baseURL: strings.TrimRight(baseURL, "/")}
}

// URL returns <base>/tenant-form/<propertyId>
func (l *TenantLinks) URL(propertyID string) string {
	return fmt.Sprintf("%s/tenant-form/%s", l.baseURL, url.PathEscape(propertyID))
}

// QRCode renders the tenant link as a PNG
func (l *TenantLinks) QRCode(propertyID string) ([]byte, error) {
	png, err := qrcode.Encode(l.URL(propertyID), qrcode.Medium, qrSize)
	if err != nil {
		return nil, fmt.Errorf("encode qr code: %w", err)
	}
	return png, nil
}
