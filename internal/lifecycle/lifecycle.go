// Package lifecycle holds the transition rules for orders, their payment
// sub-flow, live tracking and grievances. Every rule is a pure function over
// the current record and the acting user, so handlers run exactly one guard
// before writing and tests exercise the rules without a database.
package lifecycle

import (
	"errors"

	"github.com/Adnan2208/CampusCommerce/models"
)

// Error kinds. Guards wrap one of these so handlers can map failures to HTTP
// statuses without string matching.
var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalidState = errors.New("invalid state")
	ErrValidation   = errors.New("validation")
	ErrConflict     = errors.New("conflict")
)

// Error is a guard failure: a kind for status mapping plus a user-facing
// message.
type Error struct {
	kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }
func (e *Error) Unwrap() error { return e.kind }

func fail(kind error, message string) error {
	return &Error{kind: kind, Message: message}
}

// HTTPStatus maps a guard failure to its response status code.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return 404
	case errors.Is(err, ErrUnauthorized):
		return 401
	case errors.Is(err, ErrForbidden):
		return 403
	case errors.Is(err, ErrConflict):
		return 409
	case errors.Is(err, ErrInvalidState), errors.Is(err, ErrValidation):
		return 400
	default:
		return 500
	}
}

// ErrStaleWrite is returned when a compare-and-swap on an order's version
// column matched no row: someone else won the race, the caller should reload
// and retry.
var ErrStaleWrite = fail(ErrConflict, "Order was modified concurrently. Please retry.")

// CanPlaceOrder checks whether buyerID may place an order on product.
func CanPlaceOrder(buyerID uint, product *models.Product) error {
	if product.IsSold {
		return fail(ErrInvalidState, "This product is already sold")
	}
	if product.IsDelisted {
		return fail(ErrInvalidState, "This product is no longer available")
	}
	if product.UserID == buyerID {
		return fail(ErrValidation, "You cannot order your own product")
	}
	return nil
}

// CanUpdateStatus checks whether actorID may move order to target. Only the
// seller transitions an order, only out of a non-terminal status, and only to
// a known, different status.
func CanUpdateStatus(actorID uint, order *models.Order, target string) error {
	if order.SellerID != actorID {
		return fail(ErrForbidden, "Only the seller can update order status")
	}
	if !models.ValidOrderStatus(target) {
		return fail(ErrValidation, "Invalid order status")
	}
	if models.TerminalOrderStatus(order.Status) {
		return fail(ErrInvalidState, "Order is already "+order.Status)
	}
	if target == order.Status {
		return fail(ErrInvalidState, "Order is already "+target)
	}
	return nil
}

// CanCancel checks whether actorID may cancel order. Buyers cancel their own
// pending orders only.
func CanCancel(actorID uint, order *models.Order) error {
	if order.BuyerID != actorID {
		return fail(ErrForbidden, "You can only cancel your own orders")
	}
	if order.Status != models.OrderPending {
		return fail(ErrInvalidState, "Only pending orders can be cancelled")
	}
	return nil
}

// CanEnableTracking checks whether actorID may turn on live tracking:
// seller only, accepted orders only.
func CanEnableTracking(actorID uint, order *models.Order) error {
	if order.SellerID != actorID {
		return fail(ErrForbidden, "Only the seller can enable tracking")
	}
	if order.Status != models.OrderAccepted {
		return fail(ErrInvalidState, "Tracking can only be enabled for accepted orders")
	}
	return nil
}

// CanUpdateLocation checks whether actorID may report a position on order.
// Each party writes only its own slot, and only while the order is accepted
// with tracking enabled.
func CanUpdateLocation(actorID uint, order *models.Order) error {
	if order.BuyerID != actorID && order.SellerID != actorID {
		return fail(ErrForbidden, "Unauthorized access")
	}
	if order.Status != models.OrderAccepted || !order.LiveTracking.Enabled {
		return fail(ErrInvalidState, "Live tracking is not active for this order")
	}
	return nil
}

// CanViewTracking checks whether actorID may read order's tracking data.
func CanViewTracking(actorID uint, order *models.Order) error {
	if order.BuyerID != actorID && order.SellerID != actorID {
		return fail(ErrForbidden, "Unauthorized access")
	}
	return nil
}

// CanInitiatePayment checks whether actorID may fetch UPI payment details.
// Payment starts only after the goods are delivered (order completed).
func CanInitiatePayment(actorID uint, order *models.Order) error {
	if order.BuyerID != actorID {
		return fail(ErrForbidden, "Only the buyer can initiate payment")
	}
	return paymentOpen(order)
}

// CanSubmitScreenshot checks whether actorID may upload a UPI screenshot.
// Allowed until the payment completes, so a buyer can replace a screenshot
// awaiting approval or retry after a rejection.
func CanSubmitScreenshot(actorID uint, order *models.Order) error {
	if order.BuyerID != actorID {
		return fail(ErrForbidden, "Only the buyer can complete payment")
	}
	return paymentOpen(order)
}

// CanMarkCash checks whether actorID may settle the order in cash.
func CanMarkCash(actorID uint, order *models.Order) error {
	if order.BuyerID != actorID {
		return fail(ErrForbidden, "Only the buyer can mark cash payment")
	}
	return paymentOpen(order)
}

func paymentOpen(order *models.Order) error {
	if order.Status != models.OrderCompleted {
		return fail(ErrInvalidState, "Payment can only be made after goods are delivered")
	}
	if order.Payment.Status == models.PaymentCompleted {
		return fail(ErrInvalidState, "Payment already completed")
	}
	return nil
}

// CanApprovePayment checks whether actorID may approve or reject a submitted
// screenshot: seller only, and only while one is awaiting approval.
func CanApprovePayment(actorID uint, order *models.Order) error {
	if order.SellerID != actorID {
		return fail(ErrForbidden, "Only the seller can approve payment")
	}
	if order.Payment.Status != models.PaymentPendingApproval {
		return fail(ErrInvalidState, "Payment is not pending approval")
	}
	return nil
}

// CanViewPayment checks whether actorID may read order's payment status.
func CanViewPayment(actorID uint, order *models.Order) error {
	if order.BuyerID != actorID && order.SellerID != actorID {
		return fail(ErrForbidden, "Unauthorized access")
	}
	return nil
}

// CanSubmitGrievance checks whether user may file a grievance. Admin accounts
// manage grievances, they do not file them.
func CanSubmitGrievance(user *models.User) error {
	if user.IsAdmin {
		return fail(ErrForbidden, "Admins cannot submit grievances. Please use your admin account to manage user grievances only.")
	}
	return nil
}

// RequireAdmin checks that user holds the admin role.
func RequireAdmin(user *models.User) error {
	if !user.IsAdmin {
		return fail(ErrForbidden, "Access denied. Admin only.")
	}
	return nil
}
