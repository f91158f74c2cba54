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

func TestBrowseProducts(t *testing.T) {
	env := newTestEnv(t)
	seller, _ := env.createUser(t, "Priya Sharma", "priya@kjei.edu.in", false)

	env.createProduct(t, seller, "Engineering Mathematics", 350)
	lamp := env.createProduct(t, seller, "Study Lamp", 500)
	require.NoError(t, env.db.Model(lamp).Update("category", "Electronics").Error)
	sold := env.createProduct(t, seller, "Old Router", 900)
	require.NoError(t, env.db.Model(sold).Update("is_sold", true).Error)
	delisted := env.createProduct(t, seller, "Counterfeit Kit", 100)
	require.NoError(t, env.db.Model(delisted).Update("is_delisted", true).Error)

	list := func(t *testing.T, path string) []models.Product {
		t.Helper()
		resp := env.request(t, http.MethodGet, path, "", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var products []models.Product
		decodeData(t, resp, &products)
		return products
	}

	t.Run("hides sold and delisted", func(t *testing.T) {
		products := list(t, "/api/products")
		require.Len(t, products, 2)
		for _, p := range products {
			assert.False(t, p.IsSold)
			assert.False(t, p.IsDelisted)
		}
	})

	t.Run("category filter", func(t *testing.T) {
		products := list(t, "/api/products?category=Electronics")
		require.Len(t, products, 1)
		assert.Equal(t, "Study Lamp", products[0].Title)
	})

	t.Run("case-insensitive search", func(t *testing.T) {
		products := list(t, "/api/products?search=MATHEMATICS")
		require.Len(t, products, 1)
		assert.Equal(t, "Engineering Mathematics", products[0].Title)
	})

	t.Run("price range", func(t *testing.T) {
		products := list(t, "/api/products?minPrice=400&maxPrice=600")
		require.Len(t, products, 1)
		assert.Equal(t, "Study Lamp", products[0].Title)
	})
}

func TestCreateProduct(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.createUser(t, "Priya Sharma", "priya@kjei.edu.in", false)

	t.Run("defaults applied", func(t *testing.T) {
		resp := env.request(t, http.MethodPost, "/api/products", token, fiber.Map{
			"title":    "Mini Fridge",
			"category": "Electronics",
			"price":    3000.0,
			"location": "Hostel C",
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var product models.Product
		decodeData(t, resp, &product)
		assert.Equal(t, 4500.0, product.OriginalPrice)
		assert.Equal(t, "Good", product.Condition)
		assert.Equal(t, models.DefaultProductImage, product.Image)
		assert.Equal(t, "Priya Sharma", product.SellerName)
	})

	t.Run("missing fields", func(t *testing.T) {
		resp := env.request(t, http.MethodPost, "/api/products", token, fiber.Map{"title": "No price"})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("unknown category", func(t *testing.T) {
		resp := env.request(t, http.MethodPost, "/api/products", token, fiber.Map{
			"title":    "Mystery Box",
			"category": "Contraband",
			"price":    100.0,
			"location": "Hostel C",
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("negative price", func(t *testing.T) {
		resp := env.request(t, http.MethodPost, "/api/products", token, fiber.Map{
			"title":    "Freebie",
			"category": "Books",
			"price":    -5.0,
			"location": "Hostel C",
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("requires auth", func(t *testing.T) {
		resp := env.request(t, http.MethodPost, "/api/products", "", fiber.Map{})
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestProductOwnership(t *testing.T) {
	env := newTestEnv(t)
	owner, ownerToken := env.createUser(t, "Priya Sharma", "priya@kjei.edu.in", false)
	_, otherToken := env.createUser(t, "Rahul Kumar", "rahul@kjei.edu.in", false)
	product := env.createProduct(t, owner, "Drafting Table", 2500)
	path := fmt.Sprintf("/api/products/%d", product.ID)

	resp := env.request(t, http.MethodPut, path, otherToken, fiber.Map{"title": "Hijacked"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = env.request(t, http.MethodDelete, path, otherToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = env.request(t, http.MethodPut, path, ownerToken, fiber.Map{"price": 2200.0})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var updated models.Product
	decodeData(t, resp, &updated)
	assert.Equal(t, 2200.0, updated.Price)
	assert.Equal(t, "Drafting Table", updated.Title)

	resp = env.request(t, http.MethodDelete, path, ownerToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestMarkAsSoldFlipsOnce(t *testing.T) {
	env := newTestEnv(t)
	owner, ownerToken := env.createUser(t, "Priya Sharma", "priya@kjei.edu.in", false)
	_, otherToken := env.createUser(t, "Rahul Kumar", "rahul@kjei.edu.in", false)
	product := env.createProduct(t, owner, "Bicycle", 3500)
	path := fmt.Sprintf("/api/products/%d/sold", product.ID)

	resp := env.request(t, http.MethodPatch, path, otherToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = env.request(t, http.MethodPatch, path, ownerToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// The flip is one-way.
	resp = env.request(t, http.MethodPatch, path, ownerToken, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decode(t, resp)
	assert.Equal(t, "Product is already sold", body.Message)
}

func TestMyProductsIncludesSold(t *testing.T) {
	env := newTestEnv(t)
	owner, token := env.createUser(t, "Priya Sharma", "priya@kjei.edu.in", false)
	env.createProduct(t, owner, "Active Listing", 100)
	sold := env.createProduct(t, owner, "Sold Listing", 200)
	require.NoError(t, env.db.Model(sold).Update("is_sold", true).Error)

	resp := env.request(t, http.MethodGet, "/api/products/my-products", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var products []models.Product
	decodeData(t, resp, &products)
	assert.Len(t, products, 2)
}

func TestAdminDelistProduct(t *testing.T) {
	env := newTestEnv(t)
	owner, ownerToken := env.createUser(t, "Priya Sharma", "priya@kjei.edu.in", false)
	_, adminToken := env.createUser(t, "Campus Admin", "admin@kjei.edu.in", true)
	product := env.createProduct(t, owner, "Suspicious Listing", 50)
	path := fmt.Sprintf("/api/products/%d/admin-delist", product.ID)

	resp := env.request(t, http.MethodDelete, path, ownerToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = env.request(t, http.MethodDelete, path, adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var stored models.Product
	require.NoError(t, env.db.First(&stored, product.ID).Error)
	assert.True(t, stored.IsDelisted)

	// Delisted items vanish from public browse.
	resp = env.request(t, http.MethodGet, "/api/products", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var visible []models.Product
	decodeData(t, resp, &visible)
	assert.Empty(t, visible)
}
