package notify

import (
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anandicecream/storefront/app/models"
	"github.com/anandicecream/storefront/pkg/mail"
)

func testOrder() *models.Order {
	return &models.Order{
		OrderID:         "ORD-TEST01-AAAAA",
		FullName:        "Ravi Kumar",
		Email:           "ravi@example.com",
		Phone:           "9876543210",
		DeliveryAddress: "12 MG Road, Udupi",
		Pincode:         "576101",
		Items: models.LineItems{
			{Product: "Kulfi", Flavor: "Badam", Quantity: 2, UnitPrice: 30, Price: 60},
		},
		TotalAmount:   60,
		PaymentStatus: models.PaymentPending,
		OrderDate:     time.Date(2026, 2, 14, 10, 0, 0, 0, time.UTC),
		Status:        models.StatusPending,
	}
}

// capture swaps the dispatcher's send hook and records built messages.
func capture(d *Dispatcher, err error) *[]*mail.Message {
	var sent []*mail.Message
	d.send = func(m *mail.Message) error {
		sent = append(sent, m)
		return err
	}
	return &sent
}

func TestOrderReceived_SendsSummary(t *testing.T) {
	d := New("admin@anandicecream.in", nil)
	sent := capture(d, nil)

	d.OrderReceived(testOrder())

	require.Len(t, *sent, 1)
}

func TestOrderReceived_SendFailureIsSwallowed(t *testing.T) {
	d := New("admin@anandicecream.in", nil)
	capture(d, errors.New("smtp unreachable"))

	// Must not panic or propagate anything.
	d.OrderReceived(testOrder())
}

func TestOrderReceived_ArchivesAttachment(t *testing.T) {
	disk := newMemDisk()
	d := New("admin@anandicecream.in", disk)
	capture(d, nil)

	order := testOrder()
	order.PaymentScreenshot = "data:image/png;base64," + tinyPNG
	d.OrderReceived(order)

	assert.True(t, disk.Exists("payment-proofs/payment-screenshot-"+order.OrderID+".pdf"))
}

func TestOrderReceived_FallsBackToRawImage(t *testing.T) {
	disk := newMemDisk()
	d := New("admin@anandicecream.in", disk)
	capture(d, nil)

	// Valid base64 that is not a renderable image: conversion fails and
	// the raw bytes are attached instead.
	order := testOrder()
	order.PaymentScreenshot = "bm90IGFuIGltYWdl"
	d.OrderReceived(order)

	assert.True(t, disk.Exists("payment-proofs/payment-screenshot-"+order.OrderID+".png"))
}

func TestStatusChanged_OnlyTerminalStatusesMail(t *testing.T) {
	d := New("admin@anandicecream.in", nil)
	sent := capture(d, nil)

	order := testOrder()

	order.Status = models.StatusProcessing
	require.NoError(t, d.StatusChanged(order))
	assert.Empty(t, *sent)

	order.Status = models.StatusConfirmed
	require.NoError(t, d.StatusChanged(order))
	assert.Len(t, *sent, 1)

	order.Status = models.StatusCancelled
	require.NoError(t, d.StatusChanged(order))
	assert.Len(t, *sent, 2)
}

func TestStatusChanged_ReturnsSendError(t *testing.T) {
	d := New("admin@anandicecream.in", nil)
	capture(d, errors.New("smtp unreachable"))

	order := testOrder()
	order.Status = models.StatusConfirmed
	assert.Error(t, d.StatusChanged(order))
}

func TestAdminOrderBody_Contents(t *testing.T) {
	body := adminOrderBody(testOrder())

	assert.Contains(t, body, "ORD-TEST01-AAAAA")
	assert.Contains(t, body, "Ravi Kumar")
	assert.Contains(t, body, "Kulfi (Badam)")
	assert.Contains(t, body, "Rs.60.00")
	assert.Contains(t, body, "No payment screenshot provided")
}

// memDisk is a minimal in-memory storage disk.
type memDisk struct{ files map[string][]byte }

func newMemDisk() *memDisk { return &memDisk{files: map[string][]byte{}} }

func (d *memDisk) Put(path string, content []byte) error {
	d.files[path] = content
	return nil
}
func (d *memDisk) PutStream(path string, r io.Reader) error {
	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	return d.Put(path, b)
}
func (d *memDisk) Exists(path string) bool { _, ok := d.files[path]; return ok }
func (d *memDisk) Get(path string) ([]byte, error) {
	if b, ok := d.files[path]; ok {
		return b, nil
	}
	return nil, errors.New("not found")
}
func (d *memDisk) Delete(path string) error { delete(d.files, path); return nil }
func (d *memDisk) URL(path string) string   { return "mem://" + path }
