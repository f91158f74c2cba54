package handlers

import (
	"strconv"
	"strings"

	"github.com/Adnan2208/CampusCommerce/internal/lifecycle"
	"github.com/Adnan2208/CampusCommerce/models"
	"github.com/Adnan2208/CampusCommerce/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ProductHandler struct {
	DB *gorm.DB
}

func NewProductHandler(db *gorm.DB) *ProductHandler {
	return &ProductHandler{DB: db}
}

// ProductRequest is shared by create and update
type ProductRequest struct {
	Title         *string             `json:"title"`
	Category      *string             `json:"category"`
	Price         *float64            `json:"price"`
	OriginalPrice *float64            `json:"originalPrice"`
	Condition     *string             `json:"condition"`
	Description   *string             `json:"description"`
	Location      *string             `json:"location"`
	Image         *string             `json:"image"`
	Coordinates   *models.Coordinates `json:"coordinates"`
}

// GetAllProducts - GET /api/products
// Public browse endpoint with category/search/condition/price filters.
func (h *ProductHandler) GetAllProducts(c *fiber.Ctx) error {
	query := h.DB.Where("is_sold = ? AND is_delisted = ?", false, false)

	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if search := c.Query("search"); search != "" {
		needle := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ? OR LOWER(category) LIKE ?", needle, needle, needle)
	}
	if condition := c.Query("condition"); condition != "" {
		query = query.Where("condition = ?", condition)
	}
	if minPrice := c.Query("minPrice"); minPrice != "" {
		if v, err := strconv.ParseFloat(minPrice, 64); err == nil {
			query = query.Where("price >= ?", v)
		}
	}
	if maxPrice := c.Query("maxPrice"); maxPrice != "" {
		if v, err := strconv.ParseFloat(maxPrice, 64); err == nil {
			query = query.Where("price <= ?", v)
		}
	}

	var products []models.Product
	if err := query.Order("created_at desc").Find(&products).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Could not fetch products"))
	}

	return c.JSON(models.ListResponse(products, len(products)))
}

// GetProduct - GET /api/products/:id
func (h *ProductHandler) GetProduct(c *fiber.Ctx) error {
	id, _ := strconv.Atoi(c.Params("id"))

	var product models.Product
	if err := h.DB.First(&product, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse("Product not found"))
	}

	return c.JSON(models.SuccessResponse("", product))
}

// CreateProduct - POST /api/products
func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	user, err := currentUser(c, h.DB)
	if user == nil {
		return err
	}

	var req ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid input"))
	}

	if req.Title == nil || req.Category == nil || req.Price == nil || req.Location == nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Please provide all required fields: title, category, price, and location"))
	}
	if !models.ValidCategory(*req.Category) {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid category"))
	}
	if *req.Price < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Price cannot be negative"))
	}

	product := models.Product{
		Title:       strings.TrimSpace(*req.Title),
		Category:    *req.Category,
		Price:       *req.Price,
		Location:    strings.TrimSpace(*req.Location),
		Condition:   "Good",
		Image:       models.DefaultProductImage,
		UserID:      user.ID,
		SellerName:  user.Name,
		SellerEmail: user.Email,
	}
	if req.OriginalPrice != nil {
		product.OriginalPrice = *req.OriginalPrice
	} else {
		product.OriginalPrice = *req.Price * 1.5
	}
	if req.Condition != nil {
		if !models.ValidCondition(*req.Condition) {
			return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid condition"))
		}
		product.Condition = *req.Condition
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Image != nil && *req.Image != "" {
		product.Image = *req.Image
	}
	if req.Coordinates != nil {
		product.Coordinates = *req.Coordinates
	}

	if err := h.DB.Create(&product).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Could not create product"))
	}

	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse("", product))
}

// UpdateProduct - PUT /api/products/:id
func (h *ProductHandler) UpdateProduct(c *fiber.Ctx) error {
	id, _ := strconv.Atoi(c.Params("id"))
	userID, _ := utils.UserID(c)

	var product models.Product
	if err := h.DB.First(&product, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse("Product not found"))
	}

	if product.UserID != userID {
		return c.Status(fiber.StatusForbidden).JSON(models.ErrorResponse("You can only edit your own products"))
	}

	var req ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid input"))
	}

	if req.Title != nil {
		product.Title = strings.TrimSpace(*req.Title)
	}
	if req.Category != nil {
		if !models.ValidCategory(*req.Category) {
			return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid category"))
		}
		product.Category = *req.Category
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Price cannot be negative"))
		}
		product.Price = *req.Price
	}
	if req.OriginalPrice != nil {
		product.OriginalPrice = *req.OriginalPrice
	}
	if req.Condition != nil {
		if !models.ValidCondition(*req.Condition) {
			return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid condition"))
		}
		product.Condition = *req.Condition
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Image != nil {
		product.Image = *req.Image
	}
	if req.Coordinates != nil {
		product.Coordinates = *req.Coordinates
	}

	if err := h.DB.Save(&product).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Could not update product"))
	}

	return c.JSON(models.SuccessResponse("", product))
}

// DeleteProduct - DELETE /api/products/:id
func (h *ProductHandler) DeleteProduct(c *fiber.Ctx) error {
	id, _ := strconv.Atoi(c.Params("id"))
	userID, _ := utils.UserID(c)

	var product models.Product
	if err := h.DB.First(&product, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse("Product not found"))
	}

	if product.UserID != userID {
		return c.Status(fiber.StatusForbidden).JSON(models.ErrorResponse("You can only delete your own products"))
	}

	if err := h.DB.Delete(&product).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Could not delete product"))
	}

	return c.JSON(models.SuccessResponse("Product deleted successfully", nil))
}

// MarkAsSold - PATCH /api/products/:id/sold
// isSold flips false to true exactly once and never reverts.
func (h *ProductHandler) MarkAsSold(c *fiber.Ctx) error {
	id, _ := strconv.Atoi(c.Params("id"))
	userID, _ := utils.UserID(c)

	var product models.Product
	if err := h.DB.First(&product, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse("Product not found"))
	}

	if product.UserID != userID {
		return c.Status(fiber.StatusForbidden).JSON(models.ErrorResponse("You can only update your own products"))
	}

	result := h.DB.Model(&models.Product{}).
		Where("id = ? AND is_sold = ?", product.ID, false).
		Update("is_sold", true)
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Could not update product"))
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Product is already sold"))
	}

	product.IsSold = true
	return c.JSON(models.SuccessResponse("", product))
}

// GetMyProducts - GET /api/products/my-products
// Includes sold and delisted listings, unlike the public browse endpoint.
func (h *ProductHandler) GetMyProducts(c *fiber.Ctx) error {
	userID, _ := utils.UserID(c)

	var products []models.Product
	if err := h.DB.Where("user_id = ?", userID).Order("created_at desc").Find(&products).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Could not fetch products"))
	}

	return c.JSON(models.ListResponse(products, len(products)))
}

// AdminDelistProduct - DELETE /api/products/:id/admin-delist
func (h *ProductHandler) AdminDelistProduct(c *fiber.Ctx) error {
	user, err := currentUser(c, h.DB)
	if user == nil {
		return err
	}
	if err := lifecycle.RequireAdmin(user); err != nil {
		return guardFail(c, err)
	}

	id, _ := strconv.Atoi(c.Params("id"))
	var product models.Product
	if err := h.DB.First(&product, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse("Product not found"))
	}

	if err := h.DB.Model(&product).Update("is_delisted", true).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Could not delist product"))
	}

	return c.JSON(models.SuccessResponse("Product delisted successfully", product))
}
