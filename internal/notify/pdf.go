package notify

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	"github.com/go-pdf/fpdf"
)

// errUnsupportedImage signals a screenshot format the PDF engine cannot
// embed; callers fall back to attaching the raw image.
var errUnsupportedImage = errors.New("notify: unsupported image format")

// decodedImage is a payment screenshot stripped of its data-URL wrapper.
type decodedImage struct {
	data   []byte
	format string // "png", "jpeg", "gif", or "" when undetected
}

// decodeDataURL strips an optional "data:image/...;base64," prefix and
// base64-decodes the remainder. Screenshots arrive either as a full data
// URL or as bare base64.
func decodeDataURL(s string) (*decodedImage, error) {
	payload := s
	if strings.HasPrefix(s, "data:") {
		idx := strings.Index(s, "base64,")
		if idx < 0 {
			return nil, errors.New("notify: data URL is not base64 encoded")
		}
		payload = s[idx+len("base64,"):]
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("notify: decode screenshot: %w", err)
	}

	img := &decodedImage{data: data}
	if _, format, err := image.DecodeConfig(bytes.NewReader(data)); err == nil {
		img.format = format
	}
	return img, nil
}

// extension returns a filename extension for the raw-image fallback.
func (d *decodedImage) extension() string {
	switch d.format {
	case "jpeg":
		return "jpg"
	case "gif":
		return "gif"
	default:
		return "png"
	}
}

// mimeType returns the attachment content type for the raw-image fallback.
func (d *decodedImage) mimeType() string {
	if d.format == "" {
		return "application/octet-stream"
	}
	return "image/" + d.format
}

// convertToPDF renders the screenshot as a single-page PDF whose page is
// sized to the image's pixel dimensions (one pixel per point).
func convertToPDF(img *decodedImage) ([]byte, error) {
	var imageType string
	switch img.format {
	case "png":
		imageType = "PNG"
	case "jpeg":
		imageType = "JPG"
	case "gif":
		imageType = "GIF"
	default:
		return nil, errUnsupportedImage
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(img.data))
	if err != nil {
		return nil, fmt.Errorf("notify: read image dimensions: %w", err)
	}

	w := float64(cfg.Width)
	h := float64(cfg.Height)

	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: w, Ht: h},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	opts := fpdf.ImageOptions{ImageType: imageType}
	pdf.RegisterImageOptionsReader("payment-screenshot", opts, bytes.NewReader(img.data))
	pdf.ImageOptions("payment-screenshot", 0, 0, w, h, false, opts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("notify: render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
