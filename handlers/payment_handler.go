package handlers

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/Adnan2208/CampusCommerce/config"
	"github.com/Adnan2208/CampusCommerce/internal/lifecycle"
	"github.com/Adnan2208/CampusCommerce/models"
	"github.com/Adnan2208/CampusCommerce/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const maxScreenshotSize = 5 * 1024 * 1024 // 5MB

type PaymentHandler struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewPaymentHandler(db *gorm.DB, cfg *config.Config) *PaymentHandler {
	return &PaymentHandler{DB: db, Cfg: cfg}
}

func (h *PaymentHandler) loadOrder(c *fiber.Ctx) (*models.Order, error) {
	id, _ := strconv.Atoi(c.Params("orderId"))
	var order models.Order
	if err := h.DB.First(&order, id).Error; err != nil {
		return nil, c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse("Order not found"))
	}
	return &order, nil
}

// InitiatePayment - GET /api/payments/:orderId/initiate
// Returns the seller's UPI details for the buyer to pay against.
func (h *PaymentHandler) InitiatePayment(c *fiber.Ctx) error {
	userID, _ := utils.UserID(c)

	order, err := h.loadOrder(c)
	if err != nil {
		return err
	}

	if err := lifecycle.CanInitiatePayment(userID, order); err != nil {
		return guardFail(c, err)
	}

	var seller models.User
	if err := h.DB.First(&seller, order.SellerID).Error; err != nil || seller.UpiID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Seller UPI ID not configured. Please contact seller."))
	}

	return c.JSON(models.SuccessResponse("Payment details retrieved", fiber.Map{
		"orderId":         order.ID,
		"amount":          order.ProductPrice,
		"sellerUpiId":     seller.UpiID,
		"sellerName":      seller.Name,
		"productTitle":    order.ProductTitle,
		"transactionNote": fmt.Sprintf("Payment for %s", order.ProductTitle),
	}))
}

// CompletePayment - POST /api/payments/:orderId/complete
// Buyer uploads the UPI payment screenshot; payment moves to pending_approval.
func (h *PaymentHandler) CompletePayment(c *fiber.Ctx) error {
	userID, _ := utils.UserID(c)

	file, err := c.FormFile("screenshot")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Payment screenshot is required"))
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp":
	default:
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Only image files are allowed!"))
	}
	if file.Size > maxScreenshotSize {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Screenshot must be smaller than 5MB"))
	}

	order, err := h.loadOrder(c)
	if err != nil {
		return err
	}

	if err := lifecycle.CanSubmitScreenshot(userID, order); err != nil {
		return guardFail(c, err)
	}

	if err := os.MkdirAll(h.Cfg.UploadDir, 0o755); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Could not save screenshot"))
	}
	filename := "payment-" + uuid.NewString() + ext
	if err := c.SaveFile(file, filepath.Join(h.Cfg.UploadDir, filename)); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Could not save screenshot"))
	}

	fields := map[string]interface{}{
		"payment_status":     models.PaymentPendingApproval,
		"payment_screenshot": "/uploads/" + filename,
		"payment_method":     models.MethodUPI,
	}
	if err := casOrderUpdate(h.DB, order, fields); err != nil {
		if errors.Is(err, lifecycle.ErrConflict) {
			return guardFail(c, err)
		}
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Failed to complete payment"))
	}

	if err := h.DB.First(order, order.ID).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Failed to complete payment"))
	}

	return c.JSON(models.SuccessResponse("Payment screenshot uploaded. Waiting for seller approval.", order))
}

// MarkCashPayment - POST /api/payments/:orderId/cash
// Cash settles immediately with no approval step.
func (h *PaymentHandler) MarkCashPayment(c *fiber.Ctx) error {
	userID, _ := utils.UserID(c)

	order, err := h.loadOrder(c)
	if err != nil {
		return err
	}

	if err := lifecycle.CanMarkCash(userID, order); err != nil {
		return guardFail(c, err)
	}

	fields := map[string]interface{}{
		"payment_status":  models.PaymentCompleted,
		"payment_method":  models.MethodCash,
		"payment_paid_at": time.Now(),
	}
	if err := casOrderUpdate(h.DB, order, fields); err != nil {
		if errors.Is(err, lifecycle.ErrConflict) {
			return guardFail(c, err)
		}
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Failed to record cash payment"))
	}

	if err := h.DB.First(order, order.ID).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Failed to record cash payment"))
	}

	return c.JSON(models.SuccessResponse("Cash payment recorded successfully", order))
}

// GetPaymentStatus - GET /api/payments/:orderId/status
// Visible to buyer and seller only; never exposes the screenshot path.
func (h *PaymentHandler) GetPaymentStatus(c *fiber.Ctx) error {
	userID, _ := utils.UserID(c)

	order, err := h.loadOrder(c)
	if err != nil {
		return err
	}

	if err := lifecycle.CanViewPayment(userID, order); err != nil {
		return guardFail(c, err)
	}

	return c.JSON(models.SuccessResponse("", fiber.Map{
		"orderId":       order.ID,
		"paymentStatus": order.Payment.Status,
		"amount":        order.Payment.Amount,
		"transactionId": order.Payment.TransactionID,
		"paidAt":        order.Payment.PaidAt,
		"paymentMethod": order.Payment.Method,
	}))
}

// ApprovePaymentRequest defines the seller's verdict on a screenshot
type ApprovePaymentRequest struct {
	Approved bool `json:"approved"`
}

// ApprovePayment - POST /api/payments/:orderId/approve
// Approval completes the payment and stamps paidAt plus a transaction id;
// rejection fails it and clears the screenshot reference.
func (h *PaymentHandler) ApprovePayment(c *fiber.Ctx) error {
	userID, _ := utils.UserID(c)

	var req ApprovePaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid input"))
	}

	order, err := h.loadOrder(c)
	if err != nil {
		return err
	}

	if err := lifecycle.CanApprovePayment(userID, order); err != nil {
		return guardFail(c, err)
	}

	var fields map[string]interface{}
	if req.Approved {
		fields = map[string]interface{}{
			"payment_status":         models.PaymentCompleted,
			"payment_paid_at":        time.Now(),
			"payment_transaction_id": "TXN-" + uuid.NewString(),
		}
	} else {
		fields = map[string]interface{}{
			"payment_status":     models.PaymentFailed,
			"payment_screenshot": "",
		}
	}

	if err := casOrderUpdate(h.DB, order, fields); err != nil {
		if errors.Is(err, lifecycle.ErrConflict) {
			return guardFail(c, err)
		}
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Failed to process payment approval"))
	}

	if err := h.DB.First(order, order.ID).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Failed to process payment approval"))
	}

	message := "Payment approved successfully"
	if !req.Approved {
		message = "Payment rejected"
	}
	return c.JSON(models.SuccessResponse(message, order))
}
