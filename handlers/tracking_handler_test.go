package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/Adnan2208/CampusCommerce/models"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnableTracking(t *testing.T) {
	env := newTestEnv(t)
	seller, sellerToken := env.createUser(t, "Priya Sharma", "priya@kjei.edu.in", false)
	_, buyerToken := env.createUser(t, "Rahul Kumar", "rahul@kjei.edu.in", false)
	product := env.createProduct(t, seller, "Badminton Racket", 900)
	order := env.placeOrder(t, buyerToken, product.ID)
	path := fmt.Sprintf("/api/orders/%d/enable-tracking", order.ID)

	t.Run("pending order", func(t *testing.T) {
		resp := env.request(t, http.MethodPost, path, sellerToken, fiber.Map{})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		body := decode(t, resp)
		assert.Equal(t, "Tracking can only be enabled for accepted orders", body.Message)
	})

	t.Run("buyer cannot enable", func(t *testing.T) {
		env.setOrderStatus(t, sellerToken, order.ID, models.OrderAccepted)
		resp := env.request(t, http.MethodPost, path, buyerToken, fiber.Map{})
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("seller enables with pickup point", func(t *testing.T) {
		lat, lng := 18.5204, 73.8567
		resp := env.request(t, http.MethodPost, path, sellerToken, fiber.Map{
			"pickupCoordinates": fiber.Map{"lat": lat, "lng": lng},
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		stored := env.reloadOrder(t, order.ID)
		assert.True(t, stored.LiveTracking.Enabled)
		require.NotNil(t, stored.PickupCoordinates.Lat)
		require.NotNil(t, stored.PickupCoordinates.Lng)
		assert.Equal(t, lat, *stored.PickupCoordinates.Lat)
		assert.Equal(t, lng, *stored.PickupCoordinates.Lng)
	})
}

func TestUpdateLocation(t *testing.T) {
	env := newTestEnv(t)
	seller, sellerToken := env.createUser(t, "Priya Sharma", "priya@kjei.edu.in", false)
	_, buyerToken := env.createUser(t, "Rahul Kumar", "rahul@kjei.edu.in", false)
	_, strangerToken := env.createUser(t, "Amit Verma", "amit@kjei.edu.in", false)
	product := env.createProduct(t, seller, "Guitar", 4500)
	order := env.placeOrder(t, buyerToken, product.ID)
	path := fmt.Sprintf("/api/orders/%d/update-location", order.ID)
	ping := fiber.Map{"lat": 18.52, "lng": 73.85}

	t.Run("tracking not enabled", func(t *testing.T) {
		env.setOrderStatus(t, sellerToken, order.ID, models.OrderAccepted)
		resp := env.request(t, http.MethodPatch, path, buyerToken, ping)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		body := decode(t, resp)
		assert.Equal(t, "Live tracking is not active for this order", body.Message)
	})

	enable := func(t *testing.T) {
		resp := env.request(t, http.MethodPost, fmt.Sprintf("/api/orders/%d/enable-tracking", order.ID), sellerToken, fiber.Map{})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		resp.Body.Close()
	}

	t.Run("each party writes its own slot", func(t *testing.T) {
		enable(t)

		resp := env.request(t, http.MethodPatch, path, buyerToken, ping)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		resp.Body.Close()

		resp = env.request(t, http.MethodPatch, path, sellerToken, fiber.Map{"lat": 18.53, "lng": 73.86})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		resp.Body.Close()

		stored := env.reloadOrder(t, order.ID)
		require.NotNil(t, stored.LiveTracking.BuyerLocation.Lat)
		assert.Equal(t, 18.52, *stored.LiveTracking.BuyerLocation.Lat)
		assert.NotNil(t, stored.LiveTracking.BuyerLocation.LastUpdated)
		require.NotNil(t, stored.LiveTracking.SellerLocation.Lat)
		assert.Equal(t, 18.53, *stored.LiveTracking.SellerLocation.Lat)
	})

	t.Run("third parties are rejected", func(t *testing.T) {
		resp := env.request(t, http.MethodPatch, path, strangerToken, ping)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("coordinates are required", func(t *testing.T) {
		resp := env.request(t, http.MethodPatch, path, buyerToken, fiber.Map{"lat": 18.52})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("stops once the order completes", func(t *testing.T) {
		env.setOrderStatus(t, sellerToken, order.ID, models.OrderCompleted)
		resp := env.request(t, http.MethodPatch, path, buyerToken, ping)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestGetTracking(t *testing.T) {
	env := newTestEnv(t)
	seller, sellerToken := env.createUser(t, "Priya Sharma", "priya@kjei.edu.in", false)
	_, buyerToken := env.createUser(t, "Rahul Kumar", "rahul@kjei.edu.in", false)
	_, strangerToken := env.createUser(t, "Amit Verma", "amit@kjei.edu.in", false)
	product := env.createProduct(t, seller, "Table Fan", 700)
	order := env.placeOrder(t, buyerToken, product.ID)
	env.setOrderStatus(t, sellerToken, order.ID, models.OrderAccepted)
	path := fmt.Sprintf("/api/orders/%d/tracking", order.ID)

	resp := env.request(t, http.MethodGet, path, buyerToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var tracking struct {
		OrderID         uint                `json:"orderId"`
		TrackingEnabled bool                `json:"trackingEnabled"`
		BuyerLocation   models.LocationPing `json:"buyerLocation"`
	}
	decodeData(t, resp, &tracking)
	assert.Equal(t, order.ID, tracking.OrderID)
	assert.False(t, tracking.TrackingEnabled)
	assert.Nil(t, tracking.BuyerLocation.Lat)

	resp = env.request(t, http.MethodGet, path, strangerToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
