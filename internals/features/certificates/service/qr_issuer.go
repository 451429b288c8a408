package service

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image/color"
	"net/url"
	"strings"

	"github.com/chai2010/webp"
	"github.com/skip2/go-qrcode"
)

const (
	VerifyPagePath = "verify.html"

	QRFormatPNG  = "png"
	QRFormatWebP = "webp"

	// 29 modules (version 3 + border) at 10px per module.
	qrImageSize = 290
)

// Brand colour used on the printed certificates.
var qrForeground = color.RGBA{R: 0x00, G: 0x4e, B: 0x89, A: 0xff}

type QRIssuer struct {
	// BaseURL wins over the request origin when set.
	BaseURL string
	// EmbedID appends ?id=<certificate id> to the verification URL.
	EmbedID bool
}

func NewQRIssuer(baseURL string, embedID bool) *QRIssuer {
	return &QRIssuer{BaseURL: strings.TrimRight(baseURL, "/"), EmbedID: embedID}
}

// VerificationURL builds the URL encoded into the QR image.
func (q *QRIssuer) VerificationURL(origin, certificateID string) string {
	base := q.BaseURL
	if base == "" {
		base = strings.TrimRight(origin, "/")
	}
	u := base + "/" + VerifyPagePath
	if q.EmbedID && strings.TrimSpace(certificateID) != "" {
		u += "?id=" + url.QueryEscape(strings.ToUpper(strings.TrimSpace(certificateID)))
	}
	return u
}

// RenderVerificationQR returns the QR image as a data URI.
func (q *QRIssuer) RenderVerificationQR(origin, certificateID, format string) (string, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = QRFormatPNG
	}
	if format != QRFormatPNG && format != QRFormatWebP {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}

	code, err := qrcode.New(q.VerificationURL(origin, certificateID), qrcode.Medium)
	if err != nil {
		return "", fmt.Errorf("encode qr: %w", err)
	}
	code.ForegroundColor = qrForeground
	code.BackgroundColor = color.White

	var raw []byte
	switch format {
	case QRFormatWebP:
		var buf bytes.Buffer
		if err := webp.Encode(&buf, code.Image(qrImageSize), &webp.Options{Lossless: true}); err != nil {
			return "", fmt.Errorf("encode webp: %w", err)
		}
		raw = buf.Bytes()
	default:
		raw, err = code.PNG(qrImageSize)
		if err != nil {
			return "", fmt.Errorf("encode png: %w", err)
		}
	}

	return "data:image/" + format + ";base64," + base64.StdEncoding.EncodeToString(raw), nil
}
