package mail

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildRaw_PlainHTMLMessage(t *testing.T) {
	msg := To("admin@example.com").
		Subject("New Order Received - ORD-X-YYYYY").
		Body("<h2>New Order</h2>")

	raw := string(msg.buildRaw("Anand Ice Cream <orders@anandicecream.in>"))

	assert.Contains(t, raw, "From: Anand Ice Cream <orders@anandicecream.in>\r\n")
	assert.Contains(t, raw, "To: admin@example.com\r\n")
	assert.Contains(t, raw, "Subject: New Order Received - ORD-X-YYYYY\r\n")
	assert.Contains(t, raw, "Content-Type: text/html")
	assert.Contains(t, raw, "<h2>New Order</h2>")
	assert.NotContains(t, raw, "multipart/mixed")
}

func TestBuildRaw_TextMessage(t *testing.T) {
	msg := To("a@example.com").Subject("hi").Text("plain words")
	raw := string(msg.buildRaw("x <x@example.com>"))

	assert.Contains(t, raw, "Content-Type: text/plain")
	assert.Contains(t, raw, "plain words")
}

func TestBuildRaw_WithAttachment(t *testing.T) {
	content := []byte("%PDF-1.4 fake body")
	msg := To("admin@example.com").
		Subject("order").
		Body("<p>see attachment</p>").
		AttachWithType("payment-screenshot-ORD-X.pdf", content, "application/pdf")

	raw := string(msg.buildRaw("x <x@example.com>"))

	assert.Contains(t, raw, "Content-Type: multipart/mixed; boundary=")
	assert.Contains(t, raw, `Content-Type: application/pdf; name="payment-screenshot-ORD-X.pdf"`)
	assert.Contains(t, raw, "Content-Transfer-Encoding: base64")
	assert.Contains(t, raw, `Content-Disposition: attachment; filename="payment-screenshot-ORD-X.pdf"`)

	// Terminating boundary present exactly once.
	assert.Equal(t, 1, strings.Count(raw, "--"+mimeBoundary+"--"))
}

func TestBuildRaw_Base64LinesWrappedAt76(t *testing.T) {
	big := make([]byte, 4096)
	msg := To("a@example.com").Subject("s").Body("b").
		AttachWithType("blob.bin", big, "application/octet-stream")

	raw := string(msg.buildRaw("x <x@example.com>"))

	// Everything between the encoding header and the closing boundary
	// must stay within the RFC 2045 line limit.
	start := strings.Index(raw, "Content-Transfer-Encoding: base64")
	require.Greater(t, start, 0)
	section := raw[start:]
	for _, line := range strings.Split(section, "\r\n") {
		assert.LessOrEqual(t, len(line), 76, "line exceeds 76 chars: %q", line)
	}
}

func TestAttach_InfersContentType(t *testing.T) {
	msg := To("a@example.com").Attach("photo.png", []byte{0x89, 0x50, 0x4E, 0x47})
	require.Len(t, msg.attachments, 1)
	assert.Equal(t, "image/png", msg.attachments[0].contentType)
}

func TestSend_RequiresCredentials(t *testing.T) {
	msg := To("a@example.com").Subject("s").Body("b").
		UseConfig(SMTP{Host: "smtp.example.com", Port: "587"})

	err := msg.Send()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MAIL_USERNAME")
}
