package handlers

import (
	"regexp"
	"strings"

	"github.com/Adnan2208/CampusCommerce/config"
	"github.com/Adnan2208/CampusCommerce/models"
	"github.com/Adnan2208/CampusCommerce/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type AuthHandler struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config) *AuthHandler {
	return &AuthHandler{DB: db, Cfg: cfg}
}

// SignupRequest defines the payload for the first signup step
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
}

// VerifyCodeRequest defines the payload for the second signup step
type VerifyCodeRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

// LoginRequest defines the payload for login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signup - POST /api/auth/signup
// Step 1: validate the account data and email a verification code.
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid input"))
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Name = strings.TrimSpace(req.Name)

	if len(req.Name) < 2 {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Name must be at least 2 characters long"))
	}
	if !emailPattern.MatchString(req.Email) || !strings.HasSuffix(req.Email, "@"+h.Cfg.AllowedEmailDomain) {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Please provide a valid @" + h.Cfg.AllowedEmailDomain + " email address"))
	}
	if len(req.Password) < 6 {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Password must be at least 6 characters long"))
	}
	if !models.ValidPhone(req.Phone) {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Please provide a valid 10-digit phone number"))
	}
	if strings.TrimSpace(req.Location) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Please provide your location"))
	}

	var existing models.User
	if err := h.DB.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("User with this email already exists!"))
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Could not process signup"))
	}

	code := utils.GenerateVerificationCode()

	// Replace any earlier pending signup for this email
	h.DB.Where("email = ?", req.Email).Delete(&models.VerificationCode{})

	verification := models.VerificationCode{
		Email:    req.Email,
		Code:     code,
		Name:     req.Name,
		Password: hashedPassword,
		Phone:    req.Phone,
		Location: req.Location,
	}
	if err := h.DB.Create(&verification).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Failed to send verification code"))
	}

	testMode, err := utils.SendVerificationEmail(req.Email, code)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Failed to send verification code"))
	}

	data := fiber.Map{"testMode": testMode}
	if testMode {
		// Local dev without SMTP: surface the code so signup stays usable
		data["code"] = code
	}
	return c.JSON(models.SuccessResponse("Verification code sent to your email!", data))
}

// VerifyCode - POST /api/auth/verify-code
// Step 2: check the emailed code and create the account.
func (h *AuthHandler) VerifyCode(c *fiber.Ctx) error {
	var req VerifyCodeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid input"))
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	var verification models.VerificationCode
	if err := h.DB.Where("email = ? AND code = ?", req.Email, req.Code).First(&verification).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid or expired verification code"))
	}
	if verification.Expired() {
		h.DB.Where("email = ?", req.Email).Delete(&models.VerificationCode{})
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid or expired verification code"))
	}

	user := models.User{
		Name:     verification.Name,
		Email:    req.Email,
		Password: verification.Password, // already hashed at signup
		Phone:    verification.Phone,
		Location: verification.Location,
		Initials: models.DeriveInitials(verification.Name),
	}
	if err := h.DB.Create(&user).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Failed to create account"))
	}

	h.DB.Where("email = ?", req.Email).Delete(&models.VerificationCode{})

	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse("Account created successfully! You can now login.", nil))
}

// Login - POST /api/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid input"))
	}

	var user models.User
	if err := h.DB.Where("email = ?", strings.ToLower(req.Email)).First(&user).Error; err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("Invalid email or password"))
	}

	if !utils.CheckPasswordHash(req.Password, user.Password) {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("Invalid email or password"))
	}

	token, err := utils.GenerateToken(user.ID, user.Email)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Could not login"))
	}

	return c.JSON(models.SuccessResponse("Login successful!", fiber.Map{
		"token": token,
		"user":  user.Profile(),
	}))
}

// Me - GET /api/auth/me
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	userID, _ := utils.UserID(c)

	var user models.User
	if err := h.DB.First(&user, userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse("User not found"))
	}

	return c.JSON(models.SuccessResponse("", fiber.Map{"user": user.Profile()}))
}

// UpdateProfileRequest uses pointers so absent fields stay untouched
type UpdateProfileRequest struct {
	Name     *string `json:"name"`
	Phone    *string `json:"phone"`
	Location *string `json:"location"`
	UpiID    *string `json:"upiId"`
}

// UpdateProfile - PUT /api/auth/profile
func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	userID, _ := utils.UserID(c)

	var user models.User
	if err := h.DB.First(&user, userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse("User not found"))
	}

	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid input"))
	}

	if req.Name != nil && strings.TrimSpace(*req.Name) != "" {
		user.Name = strings.TrimSpace(*req.Name)
	}
	if req.Phone != nil {
		if !models.ValidPhone(*req.Phone) {
			return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Please provide a valid 10-digit phone number"))
		}
		user.Phone = *req.Phone
	}
	if req.Location != nil {
		user.Location = *req.Location
	}
	if req.UpiID != nil {
		if *req.UpiID != "" && !models.ValidUpiID(*req.UpiID) {
			return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Please provide a valid UPI ID (e.g. name@bank)"))
		}
		user.UpiID = *req.UpiID
	}

	if err := h.DB.Save(&user).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Failed to update profile"))
	}

	return c.JSON(models.SuccessResponse("Profile updated successfully", fiber.Map{"user": user.Profile()}))
}
