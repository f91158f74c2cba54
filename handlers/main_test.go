package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/Adnan2208/CampusCommerce/config"
	"github.com/Adnan2208/CampusCommerce/internal/ws"
	"github.com/Adnan2208/CampusCommerce/models"
	"github.com/Adnan2208/CampusCommerce/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testEnv wires the full route surface against an isolated sqlite database.
type testEnv struct {
	app *fiber.App
	db  *gorm.DB
	cfg *config.Config
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("SMTP_HOST", "")
	t.Setenv("SMTP_USER", "")
	t.Setenv("SMTP_PASS", "")

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "campus.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// Single connection keeps sqlite out of busy-lock territory under the
	// concurrent handler tests.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, config.Migrate(db))

	cfg := &config.Config{
		AllowedEmailDomain: "kjei.edu.in",
		UploadDir:          t.TempDir(),
		JWTSecret:          "test-secret",
	}

	hub := ws.NewHub()
	go hub.Run()

	app := fiber.New()
	RegisterRoutes(app, db, cfg, hub)

	return &testEnv{app: app, db: db, cfg: cfg}
}

// envelope mirrors models.APIResponse with raw data for per-test decoding.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Meta    json.RawMessage `json:"meta"`
}

func (e *testEnv) request(t *testing.T, method, path, token string, body interface{}) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response) envelope {
	t.Helper()
	defer resp.Body.Close()
	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return env
}

func decodeData(t *testing.T, resp *http.Response, out interface{}) envelope {
	t.Helper()
	env := decode(t, resp)
	require.NotNil(t, env.Data)
	require.NoError(t, json.Unmarshal(env.Data, out))
	return env
}

func (e *testEnv) createUser(t *testing.T, name, email string, admin bool) (*models.User, string) {
	t.Helper()
	hash, err := utils.HashPassword("password123")
	require.NoError(t, err)
	user := &models.User{
		Name:     name,
		Email:    email,
		Password: hash,
		Phone:    "9876543210",
		Location: "Hostel A",
		IsAdmin:  admin,
		Initials: models.DeriveInitials(name),
	}
	require.NoError(t, e.db.Create(user).Error)

	token, err := utils.GenerateToken(user.ID, user.Email)
	require.NoError(t, err)
	return user, token
}

func (e *testEnv) createProduct(t *testing.T, seller *models.User, title string, price float64) *models.Product {
	t.Helper()
	product := &models.Product{
		Title:         title,
		Category:      "Books",
		Price:         price,
		OriginalPrice: price * 1.5,
		Condition:     "Good",
		Location:      "Main Library",
		Image:         models.DefaultProductImage,
		UserID:        seller.ID,
		SellerName:    seller.Name,
		SellerEmail:   seller.Email,
	}
	require.NoError(t, e.db.Create(product).Error)
	return product
}

func (e *testEnv) placeOrder(t *testing.T, buyerToken string, productID uint) models.Order {
	t.Helper()
	resp := e.request(t, http.MethodPost, "/api/orders", buyerToken, fiber.Map{"productId": productID})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var order models.Order
	decodeData(t, resp, &order)
	return order
}

func (e *testEnv) setOrderStatus(t *testing.T, sellerToken string, orderID uint, status string) {
	t.Helper()
	resp := e.request(t, http.MethodPatch, fmt.Sprintf("/api/orders/%d/status", orderID), sellerToken, fiber.Map{"status": status})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func (e *testEnv) reloadOrder(t *testing.T, orderID uint) models.Order {
	t.Helper()
	var order models.Order
	require.NoError(t, e.db.First(&order, orderID).Error)
	return order
}

// uploadScreenshot posts a multipart screenshot to the payment complete
// endpoint and returns the raw response.
func (e *testEnv) uploadScreenshot(t *testing.T, token string, orderID uint, filename string) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("screenshot", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte("fake image bytes"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/payments/%d/complete", orderID), &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}
