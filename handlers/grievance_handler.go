package handlers

import (
	"strconv"
	"strings"
	"time"

	"github.com/Adnan2208/CampusCommerce/internal/lifecycle"
	"github.com/Adnan2208/CampusCommerce/models"
	"github.com/Adnan2208/CampusCommerce/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type GrievanceHandler struct {
	DB *gorm.DB
}

func NewGrievanceHandler(db *gorm.DB) *GrievanceHandler {
	return &GrievanceHandler{DB: db}
}

// SubmitGrievanceRequest defines the payload for filing a grievance
type SubmitGrievanceRequest struct {
	Subject     string `json:"subject"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
}

// UpdateGrievanceRequest defines the admin triage payload
type UpdateGrievanceRequest struct {
	Status     *string `json:"status"`
	AdminNotes *string `json:"adminNotes"`
	Priority   *string `json:"priority"`
}

// SubmitGrievance - POST /api/grievances/submit (non-admin users only)
func (h *GrievanceHandler) SubmitGrievance(c *fiber.Ctx) error {
	user, err := currentUser(c, h.DB)
	if user == nil {
		return err
	}
	if err := lifecycle.CanSubmitGrievance(user); err != nil {
		return guardFail(c, err)
	}

	var req SubmitGrievanceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid input"))
	}

	if strings.TrimSpace(req.Subject) == "" || strings.TrimSpace(req.Description) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Subject and description are required"))
	}
	if !models.ValidGrievanceCategory(req.Category) {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid grievance category"))
	}
	priority := "Medium"
	if req.Priority != "" {
		if !models.ValidGrievancePriority(req.Priority) {
			return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid priority"))
		}
		priority = req.Priority
	}

	grievance := models.Grievance{
		UserID:      user.ID,
		UserName:    user.Name,
		UserEmail:   user.Email,
		Subject:     strings.TrimSpace(req.Subject),
		Category:    req.Category,
		Description: req.Description,
		Priority:    priority,
		Status:      models.GrievanceOpen,
	}

	if err := h.DB.Create(&grievance).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Failed to submit grievance"))
	}

	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse("Grievance submitted successfully. We will review it soon.", grievance))
}

// GetMyGrievances - GET /api/grievances/my-grievances
func (h *GrievanceHandler) GetMyGrievances(c *fiber.Ctx) error {
	userID, _ := utils.UserID(c)

	var grievances []models.Grievance
	if err := h.DB.Where("user_id = ?", userID).Order("created_at desc").Find(&grievances).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Failed to fetch your grievances"))
	}

	return c.JSON(models.ListResponse(grievances, len(grievances)))
}

// GetAllGrievances - GET /api/grievances/all (admin only)
func (h *GrievanceHandler) GetAllGrievances(c *fiber.Ctx) error {
	user, err := currentUser(c, h.DB)
	if user == nil {
		return err
	}
	if err := lifecycle.RequireAdmin(user); err != nil {
		return guardFail(c, err)
	}

	var grievances []models.Grievance
	if err := h.DB.Order("created_at desc").Find(&grievances).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Failed to fetch grievances"))
	}

	return c.JSON(models.ListResponse(grievances, len(grievances)))
}

// UpdateGrievance - PUT /api/grievances/:grievanceId (admin only)
// Any admin may set any status at any time; entering Resolved or Closed
// stamps resolvedAt.
func (h *GrievanceHandler) UpdateGrievance(c *fiber.Ctx) error {
	user, err := currentUser(c, h.DB)
	if user == nil {
		return err
	}
	if err := lifecycle.RequireAdmin(user); err != nil {
		return guardFail(c, err)
	}

	id, _ := strconv.Atoi(c.Params("grievanceId"))
	var grievance models.Grievance
	if err := h.DB.First(&grievance, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse("Grievance not found"))
	}

	var req UpdateGrievanceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid input"))
	}

	updates := map[string]interface{}{}
	if req.Status != nil {
		if !models.ValidGrievanceStatus(*req.Status) {
			return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid grievance status"))
		}
		updates["status"] = *req.Status
		if models.SettledGrievanceStatus(*req.Status) {
			updates["resolved_at"] = time.Now()
		}
	}
	if req.AdminNotes != nil {
		updates["admin_notes"] = *req.AdminNotes
	}
	if req.Priority != nil {
		if !models.ValidGrievancePriority(*req.Priority) {
			return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid priority"))
		}
		updates["priority"] = *req.Priority
	}

	if len(updates) > 0 {
		if err := h.DB.Model(&grievance).Updates(updates).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Failed to update grievance"))
		}
	}

	if err := h.DB.First(&grievance, id).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Failed to update grievance"))
	}

	return c.JSON(models.SuccessResponse("Grievance updated successfully", grievance))
}

// DeleteGrievance - DELETE /api/grievances/:grievanceId (admin only)
func (h *GrievanceHandler) DeleteGrievance(c *fiber.Ctx) error {
	user, err := currentUser(c, h.DB)
	if user == nil {
		return err
	}
	if err := lifecycle.RequireAdmin(user); err != nil {
		return guardFail(c, err)
	}

	id, _ := strconv.Atoi(c.Params("grievanceId"))
	var grievance models.Grievance
	if err := h.DB.First(&grievance, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse("Grievance not found"))
	}

	if err := h.DB.Delete(&grievance).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Failed to delete grievance"))
	}

	return c.JSON(models.SuccessResponse("Grievance deleted successfully", nil))
}
