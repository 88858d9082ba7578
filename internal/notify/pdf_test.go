package notify

import (
	"bytes"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A 1x1 transparent PNG.
const tinyPNG = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mP8z8BQDwAEhQGAhKmMIQAAAABJRU5ErkJggg=="

func TestDecodeDataURL_FullDataURL(t *testing.T) {
	img, err := decodeDataURL("data:image/png;base64," + tinyPNG)
	require.NoError(t, err)

	assert.Equal(t, "png", img.format)
	assert.Equal(t, "png", img.extension())
	assert.Equal(t, "image/png", img.mimeType())
	assert.NotEmpty(t, img.data)
}

func TestDecodeDataURL_BarePayload(t *testing.T) {
	img, err := decodeDataURL(tinyPNG)
	require.NoError(t, err)
	assert.Equal(t, "png", img.format)
}

func TestDecodeDataURL_Invalid(t *testing.T) {
	_, err := decodeDataURL("data:image/png;base64,%%%not-base64%%%")
	assert.Error(t, err)

	_, err = decodeDataURL("data:image/png,rawpayload")
	assert.Error(t, err)
}

func TestDecodeDataURL_UnknownFormat(t *testing.T) {
	payload := base64.StdEncoding.EncodeToString([]byte("not an image at all"))
	img, err := decodeDataURL(payload)
	require.NoError(t, err)

	assert.Empty(t, img.format)
	assert.Equal(t, "application/octet-stream", img.mimeType())
}

func TestConvertToPDF_ProducesPDF(t *testing.T) {
	img, err := decodeDataURL(tinyPNG)
	require.NoError(t, err)

	pdf, err := convertToPDF(img)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF-")), "output is not a PDF document")
}

func TestConvertToPDF_UnsupportedFormatFallsThrough(t *testing.T) {
	img := &decodedImage{data: []byte("not an image"), format: ""}

	_, err := convertToPDF(img)
	assert.ErrorIs(t, err, errUnsupportedImage)
}
