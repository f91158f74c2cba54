package handlers

import (
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/Adnan2208/CampusCommerce/internal/lifecycle"
	"github.com/Adnan2208/CampusCommerce/internal/ws"
	"github.com/Adnan2208/CampusCommerce/models"
	"github.com/Adnan2208/CampusCommerce/utils"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type TrackingHandler struct {
	Hub *ws.Hub
	DB  *gorm.DB
}

func NewTrackingHandler(hub *ws.Hub, db *gorm.DB) *TrackingHandler {
	return &TrackingHandler{Hub: hub, DB: db}
}

func (h *TrackingHandler) loadOrder(c *fiber.Ctx) (*models.Order, error) {
	id, _ := strconv.Atoi(c.Params("orderId"))
	var order models.Order
	if err := h.DB.First(&order, id).Error; err != nil {
		return nil, c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse("Order not found"))
	}
	return &order, nil
}

// EnableTrackingRequest carries the pickup point the seller shares
type EnableTrackingRequest struct {
	PickupCoordinates *models.Coordinates `json:"pickupCoordinates"`
}

// LocationRequest is one party's current position
type LocationRequest struct {
	Lat *float64 `json:"lat"`
	Lng *float64 `json:"lng"`
}

// EnableTracking - POST /api/orders/:orderId/enable-tracking (seller only)
func (h *TrackingHandler) EnableTracking(c *fiber.Ctx) error {
	userID, _ := utils.UserID(c)

	order, err := h.loadOrder(c)
	if err != nil {
		return err
	}

	if err := lifecycle.CanEnableTracking(userID, order); err != nil {
		return guardFail(c, err)
	}

	var req EnableTrackingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid input"))
	}

	fields := map[string]interface{}{"tracking_enabled": true}
	if req.PickupCoordinates != nil {
		fields["pickup_lat"] = req.PickupCoordinates.Lat
		fields["pickup_lng"] = req.PickupCoordinates.Lng
	}

	if err := casOrderUpdate(h.DB, order, fields); err != nil {
		if errors.Is(err, lifecycle.ErrConflict) {
			return guardFail(c, err)
		}
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Failed to enable tracking"))
	}

	if err := h.DB.First(order, order.ID).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Failed to enable tracking"))
	}

	return c.JSON(models.SuccessResponse("Live tracking enabled", order))
}

// UpdateLocation - PATCH /api/orders/:orderId/update-location
// Each party writes only its own slot; last write wins, no history kept.
func (h *TrackingHandler) UpdateLocation(c *fiber.Ctx) error {
	userID, _ := utils.UserID(c)

	order, err := h.loadOrder(c)
	if err != nil {
		return err
	}

	if err := lifecycle.CanUpdateLocation(userID, order); err != nil {
		return guardFail(c, err)
	}

	var req LocationRequest
	if err := c.BodyParser(&req); err != nil || req.Lat == nil || req.Lng == nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("lat and lng are required"))
	}

	now := time.Now()
	role := "buyer"
	fields := map[string]interface{}{
		"tracking_buyer_lat":          req.Lat,
		"tracking_buyer_lng":          req.Lng,
		"tracking_buyer_last_updated": now,
	}
	if userID == order.SellerID {
		role = "seller"
		fields = map[string]interface{}{
			"tracking_seller_lat":          req.Lat,
			"tracking_seller_lng":          req.Lng,
			"tracking_seller_last_updated": now,
		}
	}

	if err := casOrderUpdate(h.DB, order, fields); err != nil {
		if errors.Is(err, lifecycle.ErrConflict) {
			return guardFail(c, err)
		}
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Failed to update location"))
	}

	// Best-effort push to the counterparty's live connections.
	update, _ := json.Marshal(fiber.Map{
		"type":        "location_update",
		"orderId":     order.ID,
		"role":        role,
		"lat":         req.Lat,
		"lng":         req.Lng,
		"lastUpdated": now,
	})
	h.Hub.SendToOrder(order.ID, userID, update)

	return c.JSON(models.SuccessResponse("Location updated", nil))
}

// GetTracking - GET /api/orders/:orderId/tracking (buyer or seller only)
func (h *TrackingHandler) GetTracking(c *fiber.Ctx) error {
	userID, _ := utils.UserID(c)

	order, err := h.loadOrder(c)
	if err != nil {
		return err
	}

	if err := lifecycle.CanViewTracking(userID, order); err != nil {
		return guardFail(c, err)
	}

	return c.JSON(models.SuccessResponse("", fiber.Map{
		"orderId":           order.ID,
		"trackingEnabled":   order.LiveTracking.Enabled,
		"buyerLocation":     order.LiveTracking.BuyerLocation,
		"sellerLocation":    order.LiveTracking.SellerLocation,
		"pickupCoordinates": order.PickupCoordinates,
	}))
}

// WebSocketUpgradeMiddleware authenticates the upgrade request and checks the
// caller is a party to the order before allowing the connection.
func (h *TrackingHandler) WebSocketUpgradeMiddleware(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}

	claims, err := utils.ParseToken(c.Query("token"))
	if err != nil {
		return fiber.ErrUnauthorized
	}
	userIDFloat, ok := claims["user_id"].(float64)
	if !ok {
		return fiber.ErrUnauthorized
	}
	userID := uint(userIDFloat)

	orderID, err := strconv.Atoi(c.Query("order_id"))
	if err != nil {
		return fiber.ErrBadRequest
	}

	var order models.Order
	if err := h.DB.First(&order, orderID).Error; err != nil {
		return fiber.ErrNotFound
	}
	if err := lifecycle.CanViewTracking(userID, &order); err != nil {
		return fiber.ErrForbidden
	}

	c.Locals("user_id", userID)
	c.Locals("order_id", uint(orderID))
	return c.Next()
}

// Handler returns the websocket handler function
func (h *TrackingHandler) Handler() fiber.Handler {
	return websocket.New(func(c *websocket.Conn) {
		userID, ok := c.Locals("user_id").(uint)
		orderID, ok2 := c.Locals("order_id").(uint)
		if !ok || !ok2 {
			c.Close()
			return
		}

		client := &ws.Client{
			Hub:     h.Hub,
			Conn:    c,
			Send:    make(chan []byte, 64),
			UserID:  userID,
			OrderID: orderID,
		}

		client.Hub.Register <- client

		go client.WritePump()
		client.ReadPump()
	})
}
