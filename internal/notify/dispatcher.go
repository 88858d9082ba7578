// Package notify sends order emails. Everything here is best-effort:
// formatting, conversion and SMTP failures are logged and swallowed so
// they can never reach the order intake path.
package notify

import (
	"fmt"
	"strings"

	"github.com/anandicecream/storefront/app/models"
	"github.com/anandicecream/storefront/pkg/logger"
	"github.com/anandicecream/storefront/pkg/mail"
	"github.com/anandicecream/storefront/pkg/metrics"
	"github.com/anandicecream/storefront/pkg/storage"
)

// Dispatcher formats and sends order notifications.
type Dispatcher struct {
	adminEmail string
	archive    storage.Disk

	// send delivers a built message; tests swap it out.
	send func(m *mail.Message) error
}

// New creates a Dispatcher. adminEmail receives new-order mail; archive
// may be nil to skip attachment archiving.
func New(adminEmail string, archive storage.Disk) *Dispatcher {
	return &Dispatcher{
		adminEmail: adminEmail,
		archive:    archive,
		send:       func(m *mail.Message) error { return m.Send() },
	}
}

// OrderReceived emails the order summary to the back office. A payment
// screenshot is attached as a single-page PDF, or as the raw image when
// conversion fails. Runs on a background worker; never returns an error.
func (d *Dispatcher) OrderReceived(order *models.Order) {
	msg := mail.To(d.adminEmail).
		Subject(fmt.Sprintf("New Order Received - %s", order.OrderID)).
		Body(adminOrderBody(order))

	if order.HasScreenshot() {
		d.attachScreenshot(msg, order)
	}

	if err := d.send(msg); err != nil {
		metrics.NotificationFailures.Inc()
		logger.Error("notify: admin email failed", "order_id", order.OrderID, "error", err)
		return
	}

	metrics.NotificationsSent.Inc()
	logger.Info("notify: admin email sent", "order_id", order.OrderID)
}

// attachScreenshot converts the payment proof to PDF and attaches it,
// falling back to the raw image when conversion is impossible. The final
// attachment is also archived to the storage disk for back-office access.
func (d *Dispatcher) attachScreenshot(msg *mail.Message, order *models.Order) {
	img, err := decodeDataURL(order.PaymentScreenshot)
	if err != nil {
		logger.Warn("notify: screenshot unreadable, skipping attachment",
			"order_id", order.OrderID, "error", err)
		return
	}

	pdfBytes, err := convertToPDF(img)
	if err != nil {
		metrics.AttachmentFallbacks.Inc()
		logger.Warn("notify: pdf conversion failed, attaching raw image",
			"order_id", order.OrderID, "error", err)

		name := fmt.Sprintf("payment-screenshot-%s.%s", order.OrderID, img.extension())
		msg.AttachWithType(name, img.data, img.mimeType())
		d.archiveAttachment(order.OrderID, name, img.data)
		return
	}

	name := fmt.Sprintf("payment-screenshot-%s.pdf", order.OrderID)
	msg.AttachWithType(name, pdfBytes, "application/pdf")
	d.archiveAttachment(order.OrderID, name, pdfBytes)
}

func (d *Dispatcher) archiveAttachment(orderID, name string, content []byte) {
	if d.archive == nil {
		return
	}
	path := "payment-proofs/" + name
	if err := d.archive.Put(path, content); err != nil {
		logger.Warn("notify: attachment archive failed", "order_id", orderID, "error", err)
	}
}

// StatusChanged emails the customer when the back office confirms or
// cancels their order. Other transitions are internal and stay silent.
// The error is returned so the job queue can retry failed sends.
func (d *Dispatcher) StatusChanged(order *models.Order) error {
	var subject, body string
	switch order.Status {
	case models.StatusConfirmed:
		subject = fmt.Sprintf("Your order %s is confirmed", order.OrderID)
		body = acceptanceBody(order)
	case models.StatusCancelled:
		subject = fmt.Sprintf("Your order %s has been cancelled", order.OrderID)
		body = rejectionBody(order)
	default:
		return nil
	}

	msg := mail.To(order.Email).Subject(subject).Body(body)
	if err := d.send(msg); err != nil {
		metrics.NotificationFailures.Inc()
		logger.Error("notify: customer email failed",
			"order_id", order.OrderID, "status", order.Status, "error", err)
		return err
	}

	metrics.NotificationsSent.Inc()
	logger.Info("notify: customer email sent", "order_id", order.OrderID, "status", order.Status)
	return nil
}

// adminOrderBody renders the back-office order summary.
func adminOrderBody(order *models.Order) string {
	var b strings.Builder

	fmt.Fprintf(&b, "<h2>New Order: %s</h2>", order.OrderID)

	b.WriteString("<h3>Customer Details</h3><ul>")
	fmt.Fprintf(&b, "<li><strong>Name:</strong> %s</li>", order.FullName)
	fmt.Fprintf(&b, "<li><strong>Email:</strong> %s</li>", order.Email)
	fmt.Fprintf(&b, "<li><strong>Phone:</strong> %s</li>", order.Phone)
	if order.AlternatePhone != "" {
		fmt.Fprintf(&b, "<li><strong>Alternate Phone:</strong> %s</li>", order.AlternatePhone)
	}
	fmt.Fprintf(&b, "<li><strong>Delivery Address:</strong> %s</li>", order.DeliveryAddress)
	fmt.Fprintf(&b, "<li><strong>Pincode:</strong> %s</li>", order.Pincode)
	b.WriteString("</ul>")

	b.WriteString("<h3>Items</h3><ul>")
	for _, item := range order.Items {
		label := item.Product
		if item.Flavor != "" {
			label += " (" + item.Flavor + ")"
		}
		if item.Size != "" {
			label += " - " + item.Size
		}
		fmt.Fprintf(&b, "<li>%s x %d = Rs.%.2f</li>", label, item.Quantity, item.Price)
	}
	b.WriteString("</ul>")

	fmt.Fprintf(&b, "<p><strong>Total Amount:</strong> Rs.%.2f</p>", order.TotalAmount)
	fmt.Fprintf(&b, "<p><strong>Payment Status:</strong> %s</p>", order.PaymentStatus)
	fmt.Fprintf(&b, "<p><strong>Order Date:</strong> %s</p>", order.OrderDate.Format("02 Jan 2006 15:04"))

	if order.HasScreenshot() {
		b.WriteString("<p>Payment screenshot attached.</p>")
	} else {
		b.WriteString("<p>No payment screenshot provided.</p>")
	}

	return b.String()
}

func acceptanceBody(order *models.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<p>Dear %s,</p>", order.FullName)
	fmt.Fprintf(&b, "<p>Great news! Your order <strong>%s</strong> has been confirmed and is being prepared.</p>", order.OrderID)
	fmt.Fprintf(&b, "<p><strong>Total:</strong> Rs.%.2f</p>", order.TotalAmount)
	fmt.Fprintf(&b, "<p>It will be delivered to: %s, %s</p>", order.DeliveryAddress, order.Pincode)
	b.WriteString("<p>Thank you for ordering from Anand Ice Cream!</p>")
	return b.String()
}

func rejectionBody(order *models.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<p>Dear %s,</p>", order.FullName)
	fmt.Fprintf(&b, "<p>We are sorry. Your order <strong>%s</strong> has been cancelled.</p>", order.OrderID)
	b.WriteString("<p>If payment was already made it will be refunded. Please contact us for any questions.</p>")
	return b.String()
}
