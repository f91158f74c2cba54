package lifecycle

import (
	"errors"
	"testing"

	"github.com/Adnan2208/CampusCommerce/models"
	"github.com/stretchr/testify/assert"
)

const (
	buyerID    = uint(1)
	sellerID   = uint(2)
	strangerID = uint(3)
)

func testOrder(status string) *models.Order {
	return &models.Order{
		ID:       1,
		BuyerID:  buyerID,
		SellerID: sellerID,
		Status:   status,
		Payment:  models.NewPayment(500),
	}
}

func TestCanPlaceOrder(t *testing.T) {
	tests := []struct {
		name     string
		buyer    uint
		product  models.Product
		wantKind error
	}{
		{"available product", buyerID, models.Product{UserID: sellerID}, nil},
		{"sold product", buyerID, models.Product{UserID: sellerID, IsSold: true}, ErrInvalidState},
		{"delisted product", buyerID, models.Product{UserID: sellerID, IsDelisted: true}, ErrInvalidState},
		{"own product", sellerID, models.Product{UserID: sellerID}, ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CanPlaceOrder(tt.buyer, &tt.product)
			if tt.wantKind == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantKind)
			}
		})
	}
}

func TestCanUpdateStatus(t *testing.T) {
	tests := []struct {
		name     string
		actor    uint
		status   string
		target   string
		wantKind error
	}{
		{"seller accepts pending", sellerID, models.OrderPending, models.OrderAccepted, nil},
		{"seller rejects pending", sellerID, models.OrderPending, models.OrderRejected, nil},
		{"seller completes accepted", sellerID, models.OrderAccepted, models.OrderCompleted, nil},
		{"buyer cannot transition", buyerID, models.OrderPending, models.OrderAccepted, ErrForbidden},
		{"stranger cannot transition", strangerID, models.OrderPending, models.OrderAccepted, ErrForbidden},
		{"unknown target status", sellerID, models.OrderPending, "shipped", ErrValidation},
		{"completed is terminal", sellerID, models.OrderCompleted, models.OrderAccepted, ErrInvalidState},
		{"rejected is terminal", sellerID, models.OrderRejected, models.OrderAccepted, ErrInvalidState},
		{"cancelled is terminal", sellerID, models.OrderCancelled, models.OrderAccepted, ErrInvalidState},
		{"no-op transition", sellerID, models.OrderAccepted, models.OrderAccepted, ErrInvalidState},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CanUpdateStatus(tt.actor, testOrder(tt.status), tt.target)
			if tt.wantKind == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantKind)
			}
		})
	}
}

func TestCanCancel(t *testing.T) {
	assert.NoError(t, CanCancel(buyerID, testOrder(models.OrderPending)))
	assert.ErrorIs(t, CanCancel(sellerID, testOrder(models.OrderPending)), ErrForbidden)
	assert.ErrorIs(t, CanCancel(buyerID, testOrder(models.OrderAccepted)), ErrInvalidState)
	assert.ErrorIs(t, CanCancel(buyerID, testOrder(models.OrderCompleted)), ErrInvalidState)
}

func TestTrackingGuards(t *testing.T) {
	t.Run("enable", func(t *testing.T) {
		assert.NoError(t, CanEnableTracking(sellerID, testOrder(models.OrderAccepted)))
		assert.ErrorIs(t, CanEnableTracking(buyerID, testOrder(models.OrderAccepted)), ErrForbidden)
		assert.ErrorIs(t, CanEnableTracking(sellerID, testOrder(models.OrderPending)), ErrInvalidState)
		assert.ErrorIs(t, CanEnableTracking(sellerID, testOrder(models.OrderCompleted)), ErrInvalidState)
	})

	t.Run("update location", func(t *testing.T) {
		active := testOrder(models.OrderAccepted)
		active.LiveTracking.Enabled = true

		assert.NoError(t, CanUpdateLocation(buyerID, active))
		assert.NoError(t, CanUpdateLocation(sellerID, active))
		assert.ErrorIs(t, CanUpdateLocation(strangerID, active), ErrForbidden)

		disabled := testOrder(models.OrderAccepted)
		assert.ErrorIs(t, CanUpdateLocation(buyerID, disabled), ErrInvalidState)

		done := testOrder(models.OrderCompleted)
		done.LiveTracking.Enabled = true
		assert.ErrorIs(t, CanUpdateLocation(buyerID, done), ErrInvalidState)
	})

	t.Run("view", func(t *testing.T) {
		order := testOrder(models.OrderAccepted)
		assert.NoError(t, CanViewTracking(buyerID, order))
		assert.NoError(t, CanViewTracking(sellerID, order))
		assert.ErrorIs(t, CanViewTracking(strangerID, order), ErrForbidden)
	})
}

func TestPaymentGuards(t *testing.T) {
	t.Run("payment waits for delivery", func(t *testing.T) {
		for _, status := range []string{models.OrderPending, models.OrderAccepted, models.OrderRejected, models.OrderCancelled} {
			order := testOrder(status)
			assert.ErrorIs(t, CanInitiatePayment(buyerID, order), ErrInvalidState, status)
			assert.ErrorIs(t, CanSubmitScreenshot(buyerID, order), ErrInvalidState, status)
			assert.ErrorIs(t, CanMarkCash(buyerID, order), ErrInvalidState, status)
		}
	})

	t.Run("buyer only", func(t *testing.T) {
		order := testOrder(models.OrderCompleted)
		assert.NoError(t, CanInitiatePayment(buyerID, order))
		assert.ErrorIs(t, CanInitiatePayment(sellerID, order), ErrForbidden)
		assert.ErrorIs(t, CanSubmitScreenshot(sellerID, order), ErrForbidden)
		assert.ErrorIs(t, CanMarkCash(strangerID, order), ErrForbidden)
	})

	t.Run("retry allowed until completed", func(t *testing.T) {
		order := testOrder(models.OrderCompleted)

		order.Payment.Status = models.PaymentPendingApproval
		assert.NoError(t, CanSubmitScreenshot(buyerID, order))

		order.Payment.Status = models.PaymentFailed
		assert.NoError(t, CanSubmitScreenshot(buyerID, order))
		assert.NoError(t, CanMarkCash(buyerID, order))

		order.Payment.Status = models.PaymentCompleted
		assert.ErrorIs(t, CanSubmitScreenshot(buyerID, order), ErrInvalidState)
		assert.ErrorIs(t, CanMarkCash(buyerID, order), ErrInvalidState)
	})

	t.Run("approval", func(t *testing.T) {
		order := testOrder(models.OrderCompleted)
		order.Payment.Status = models.PaymentPendingApproval

		assert.NoError(t, CanApprovePayment(sellerID, order))
		assert.ErrorIs(t, CanApprovePayment(buyerID, order), ErrForbidden)

		order.Payment.Status = models.PaymentPending
		assert.ErrorIs(t, CanApprovePayment(sellerID, order), ErrInvalidState)
	})

	t.Run("view", func(t *testing.T) {
		order := testOrder(models.OrderCompleted)
		assert.NoError(t, CanViewPayment(buyerID, order))
		assert.NoError(t, CanViewPayment(sellerID, order))
		assert.ErrorIs(t, CanViewPayment(strangerID, order), ErrForbidden)
	})
}

func TestGrievanceGuards(t *testing.T) {
	member := &models.User{ID: 1}
	admin := &models.User{ID: 2, IsAdmin: true}

	assert.NoError(t, CanSubmitGrievance(member))
	assert.ErrorIs(t, CanSubmitGrievance(admin), ErrForbidden)

	assert.NoError(t, RequireAdmin(admin))
	assert.ErrorIs(t, RequireAdmin(member), ErrForbidden)
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		kind error
		want int
	}{
		{ErrNotFound, 404},
		{ErrUnauthorized, 401},
		{ErrForbidden, 403},
		{ErrInvalidState, 400},
		{ErrValidation, 400},
		{ErrConflict, 409},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, HTTPStatus(fail(tt.kind, "boom")))
	}
	assert.Equal(t, 500, HTTPStatus(errors.New("unclassified")))
	assert.Equal(t, 409, HTTPStatus(ErrStaleWrite))
}
