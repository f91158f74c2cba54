package models

import (
	"time"
)

// Order statuses. pending is initial; rejected, completed and cancelled are
// terminal and accept no further transitions.
const (
	OrderPending   = "pending"
	OrderAccepted  = "accepted"
	OrderRejected  = "rejected"
	OrderCompleted = "completed"
	OrderCancelled = "cancelled"
)

// Payment statuses for the sub-flow nested inside an order.
const (
	PaymentPending         = "pending"
	PaymentPendingApproval = "pending_approval"
	PaymentCompleted       = "completed"
	PaymentFailed          = "failed"
)

// Payment methods.
const (
	MethodUPI  = "upi"
	MethodCash = "cash"
)

// OrderStatuses is the closed set of order statuses.
var OrderStatuses = []string{OrderPending, OrderAccepted, OrderRejected, OrderCompleted, OrderCancelled}

// ValidOrderStatus reports whether status is one of OrderStatuses.
func ValidOrderStatus(status string) bool {
	return contains(OrderStatuses, status)
}

// TerminalOrderStatus reports whether status accepts no further transitions.
func TerminalOrderStatus(status string) bool {
	return status == OrderRejected || status == OrderCompleted || status == OrderCancelled
}

// LocationPing is one party's self-reported position. Last write wins; no
// history is kept.
type LocationPing struct {
	Lat         *float64   `json:"lat"`
	Lng         *float64   `json:"lng"`
	LastUpdated *time.Time `json:"lastUpdated"`
}

// LiveTracking is the opt-in pickup coordination sub-record. Each party
// writes only its own slot.
type LiveTracking struct {
	Enabled        bool         `gorm:"default:false" json:"enabled"`
	BuyerLocation  LocationPing `gorm:"embedded;embeddedPrefix:buyer_" json:"buyerLocation"`
	SellerLocation LocationPing `gorm:"embedded;embeddedPrefix:seller_" json:"sellerLocation"`
}

// Payment is the settlement sub-record nested inside an order. It is created
// once at order placement and mutated only through the payment endpoints.
type Payment struct {
	Status        string     `gorm:"size:20;default:'pending'" json:"status"`
	Amount        float64    `json:"amount"`
	UpiID         string     `gorm:"size:100" json:"upiId"`
	TransactionID string     `gorm:"size:64" json:"transactionId"`
	Screenshot    string     `gorm:"size:255" json:"paymentScreenshot"`
	PaidAt        *time.Time `json:"paidAt"`
	Method        string     `gorm:"size:10;default:'upi'" json:"paymentMethod"`
}

// NewPayment builds the payment sub-record for a fresh order. Always invoked
// at order creation so the shape is never conditionally back-filled.
func NewPayment(amount float64) Payment {
	return Payment{
		Status: PaymentPending,
		Amount: amount,
		Method: MethodUPI,
	}
}

// Order is a buyer's claim against a listing. Product, buyer and seller facts
// are copied at creation time so the order stays a faithful record of what was
// agreed even if the listing or the users change later.
type Order struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// Product snapshot
	ProductID    uint    `gorm:"index;not null" json:"productId"`
	ProductTitle string  `gorm:"size:255;not null" json:"productTitle"`
	ProductPrice float64 `gorm:"not null" json:"productPrice"`
	ProductImage string  `gorm:"size:255;default:'📦'" json:"productImage"`

	// Buyer snapshot
	BuyerID       uint   `gorm:"index;not null" json:"buyerId"`
	BuyerName     string `gorm:"size:100;not null" json:"buyerName"`
	BuyerEmail    string `gorm:"size:100;not null" json:"buyerEmail"`
	BuyerPhone    string `gorm:"size:10;not null" json:"buyerPhone"`
	BuyerLocation string `gorm:"size:255;not null" json:"buyerLocation"`

	// Seller snapshot
	SellerID    uint   `gorm:"index;not null" json:"sellerId"`
	SellerName  string `gorm:"size:100;not null" json:"sellerName"`
	SellerEmail string `gorm:"size:100;not null" json:"sellerEmail"`

	Status  string `gorm:"size:20;default:'pending'" json:"status"`
	Message string `gorm:"type:text" json:"message"`

	PickupLocation    string      `gorm:"size:255;not null" json:"pickupLocation"`
	PickupCoordinates Coordinates `gorm:"embedded;embeddedPrefix:pickup_" json:"pickupCoordinates"`

	LiveTracking LiveTracking `gorm:"embedded;embeddedPrefix:tracking_" json:"liveTracking"`
	Payment      Payment      `gorm:"embedded;embeddedPrefix:payment_" json:"payment"`

	// Optimistic concurrency: every mutation is a compare-and-swap on Version.
	Version int `gorm:"default:1" json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
