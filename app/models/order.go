package models

import (
	"time"
)

// Order statuses the back office can move an order through.
const (
	StatusPending    = "pending"
	StatusConfirmed  = "confirmed"
	StatusProcessing = "processing"
	StatusDelivered  = "delivered"
	StatusCancelled  = "cancelled"
)

// Payment verification states.
const (
	PaymentPending             = "pending"
	PaymentPendingVerification = "pending_verification"
	PaymentVerified            = "verified"
	PaymentFailed              = "failed"
)

// ValidStatus reports whether s is a recognised order status.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusProcessing, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// LineItem is one product/variant/quantity entry in a cart or order.
// The invariant Price == UnitPrice * Quantity holds at all times.
type LineItem struct {
	Product   string  `json:"product"`
	Flavor    string  `json:"flavor"`
	Quantity  int     `json:"quantity"`
	Size      string  `json:"size,omitempty"`
	UnitPrice float64 `json:"unitPrice"`
	Price     float64 `json:"price"`
}

// LineItems is stored as a single JSON column on the order row.
type LineItems []LineItem

// CustomerInfo carries the delivery details collected at checkout.
// Presence, not format, is validated at intake.
type CustomerInfo struct {
	FullName        string `json:"fullName"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	DeliveryAddress string `json:"deliveryAddress"`
	Pincode         string `json:"pincode"`
	AlternatePhone  string `json:"alternatePhone,omitempty"`
}

// OrderDraft is the client-assembled, not-yet-persisted proposed order.
// Pointer fields distinguish "absent" from "present but empty", which
// drives the intake validation kinds.
type OrderDraft struct {
	CustomerInfo      *CustomerInfo `json:"customerInfo"`
	Items             []LineItem    `json:"items"`
	TotalAmount       float64       `json:"totalAmount"`
	OrderDate         *time.Time    `json:"orderDate,omitempty"`
	Status            string        `json:"status,omitempty"`
	PaymentScreenshot string        `json:"paymentScreenshot,omitempty"`
	PaymentStatus     string        `json:"paymentStatus,omitempty"`
}

// Order is the persisted order row. OrderID is globally unique and
// immutable once assigned.
type Order struct {
	ID                uint      `gorm:"primaryKey;autoIncrement" json:"-"`
	OrderID           string    `gorm:"uniqueIndex;size:50;not null" json:"orderId"`
	FullName          string    `gorm:"size:255;not null" json:"fullName"`
	Email             string    `gorm:"index;size:255;not null" json:"email"`
	Phone             string    `gorm:"size:50;not null" json:"phone"`
	DeliveryAddress   string    `gorm:"type:text;not null" json:"deliveryAddress"`
	Pincode           string    `gorm:"size:20;not null" json:"pincode"`
	AlternatePhone    string    `gorm:"size:50" json:"alternatePhone,omitempty"`
	Items             LineItems `gorm:"serializer:json;type:text" json:"items"`
	TotalAmount       float64   `gorm:"type:decimal(10,2);not null" json:"totalAmount"`
	PaymentScreenshot string    `gorm:"type:text" json:"-"`
	PaymentStatus     string    `gorm:"index;size:50;default:pending" json:"paymentStatus"`
	OrderDate         time.Time `json:"orderDate"`
	Status            string    `gorm:"index;size:50;default:pending" json:"status"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// TableName pins the table name regardless of pluralisation settings.
func (Order) TableName() string { return "orders" }

// Customer reassembles the customer block from the flattened columns.
func (o *Order) Customer() CustomerInfo {
	return CustomerInfo{
		FullName:        o.FullName,
		Email:           o.Email,
		Phone:           o.Phone,
		DeliveryAddress: o.DeliveryAddress,
		Pincode:         o.Pincode,
		AlternatePhone:  o.AlternatePhone,
	}
}

// HasScreenshot reports whether a payment proof was attached.
func (o *Order) HasScreenshot() bool { return o.PaymentScreenshot != "" }
