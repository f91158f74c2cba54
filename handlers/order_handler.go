package handlers

import (
	"errors"
	"strconv"

	"github.com/Adnan2208/CampusCommerce/internal/lifecycle"
	"github.com/Adnan2208/CampusCommerce/models"
	"github.com/Adnan2208/CampusCommerce/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type OrderHandler struct {
	DB *gorm.DB
}

func NewOrderHandler(db *gorm.DB) *OrderHandler {
	return &OrderHandler{DB: db}
}

// CreateOrderRequest defines the payload for placing an order
type CreateOrderRequest struct {
	ProductID uint   `json:"productId"`
	Message   string `json:"message"`
}

// UpdateStatusRequest defines the payload for a seller status transition
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// CreateOrder - POST /api/orders
// Snapshots product, buyer and seller facts onto the order so it stays a
// faithful record of what was agreed, and initializes the payment sub-record.
func (h *OrderHandler) CreateOrder(c *fiber.Ctx) error {
	buyer, err := currentUser(c, h.DB)
	if buyer == nil {
		return err
	}

	var req CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid input"))
	}

	var product models.Product
	if err := h.DB.First(&product, req.ProductID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse("Product not found"))
	}

	if err := lifecycle.CanPlaceOrder(buyer.ID, &product); err != nil {
		return guardFail(c, err)
	}

	var seller models.User
	if err := h.DB.First(&seller, product.UserID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse("Seller not found"))
	}

	order := models.Order{
		ProductID:    product.ID,
		ProductTitle: product.Title,
		ProductPrice: product.Price,
		ProductImage: product.Image,

		BuyerID:       buyer.ID,
		BuyerName:     buyer.Name,
		BuyerEmail:    buyer.Email,
		BuyerPhone:    buyer.Phone,
		BuyerLocation: buyer.Location,

		SellerID:    seller.ID,
		SellerName:  seller.Name,
		SellerEmail: seller.Email,

		Status:  models.OrderPending,
		Message: req.Message,

		PickupLocation:    product.Location,
		PickupCoordinates: product.Coordinates,

		Payment: models.NewPayment(product.Price),
	}

	if err := h.DB.Create(&order).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Failed to place order"))
	}

	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse("Order placed successfully!", order))
}

// GetMyOrders - GET /api/orders/my-orders (as buyer)
func (h *OrderHandler) GetMyOrders(c *fiber.Ctx) error {
	userID, _ := utils.UserID(c)

	var orders []models.Order
	if err := h.DB.Where("buyer_id = ?", userID).Order("created_at desc").Find(&orders).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Failed to fetch orders"))
	}

	return c.JSON(models.ListResponse(orders, len(orders)))
}

// GetReceivedOrders - GET /api/orders/received-orders (as seller)
func (h *OrderHandler) GetReceivedOrders(c *fiber.Ctx) error {
	userID, _ := utils.UserID(c)

	var orders []models.Order
	if err := h.DB.Where("seller_id = ?", userID).Order("created_at desc").Find(&orders).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Failed to fetch orders"))
	}

	return c.JSON(models.ListResponse(orders, len(orders)))
}

// UpdateOrderStatus - PATCH /api/orders/:id/status (seller only)
func (h *OrderHandler) UpdateOrderStatus(c *fiber.Ctx) error {
	id, _ := strconv.Atoi(c.Params("id"))
	userID, _ := utils.UserID(c)

	var req UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid input"))
	}

	var order models.Order
	if err := h.DB.First(&order, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse("Order not found"))
	}

	if err := lifecycle.CanUpdateStatus(userID, &order, req.Status); err != nil {
		return guardFail(c, err)
	}

	if err := casOrderUpdate(h.DB, &order, map[string]interface{}{"status": req.Status}); err != nil {
		if errors.Is(err, lifecycle.ErrConflict) {
			return guardFail(c, err)
		}
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Failed to update order status"))
	}

	// Completed orders mark the product sold. The conditional update keeps
	// the false→true flip one-way even if two completions race.
	if req.Status == models.OrderCompleted {
		if err := h.DB.Model(&models.Product{}).
			Where("id = ? AND is_sold = ?", order.ProductID, false).
			Update("is_sold", true).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Failed to update order status"))
		}
	}

	if err := h.DB.First(&order, id).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Failed to update order status"))
	}

	return c.JSON(models.SuccessResponse("Order status updated successfully", order))
}

// CancelOrder - PATCH /api/orders/:id/cancel (buyer only, pending only)
func (h *OrderHandler) CancelOrder(c *fiber.Ctx) error {
	id, _ := strconv.Atoi(c.Params("id"))
	userID, _ := utils.UserID(c)

	var order models.Order
	if err := h.DB.First(&order, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse("Order not found"))
	}

	if err := lifecycle.CanCancel(userID, &order); err != nil {
		return guardFail(c, err)
	}

	if err := casOrderUpdate(h.DB, &order, map[string]interface{}{"status": models.OrderCancelled}); err != nil {
		if errors.Is(err, lifecycle.ErrConflict) {
			return guardFail(c, err)
		}
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Failed to cancel order"))
	}

	if err := h.DB.First(&order, id).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Failed to cancel order"))
	}

	return c.JSON(models.SuccessResponse("Order cancelled successfully", order))
}
