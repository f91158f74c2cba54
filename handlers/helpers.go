package handlers

import (
	"github.com/Adnan2208/CampusCommerce/internal/lifecycle"
	"github.com/Adnan2208/CampusCommerce/models"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// guardFail translates a lifecycle guard failure into the response envelope.
func guardFail(c *fiber.Ctx, err error) error {
	return c.Status(lifecycle.HTTPStatus(err)).JSON(models.ErrorResponse(err.Error()))
}

// casOrderUpdate applies fields to order iff nobody else has written it since
// it was loaded. Bumps the version column; RowsAffected == 0 means the caller
// lost the race.
func casOrderUpdate(db *gorm.DB, order *models.Order, fields map[string]interface{}) error {
	fields["version"] = order.Version + 1
	result := db.Model(&models.Order{}).
		Where("id = ? AND version = ?", order.ID, order.Version).
		Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return lifecycle.ErrStaleWrite
	}
	return nil
}

// currentUser loads the authenticated user record. A nil user means the
// response has already been written; callers return the accompanying error.
func currentUser(c *fiber.Ctx, db *gorm.DB) (*models.User, error) {
	userID, ok := c.Locals("user_id").(uint)
	if !ok {
		return nil, c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("Authentication required"))
	}
	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		return nil, c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse("User not found"))
	}
	return &user, nil
}
