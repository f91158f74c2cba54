package handlers

import (
	"github.com/Adnan2208/CampusCommerce/config"
	"github.com/Adnan2208/CampusCommerce/internal/ws"
	"github.com/Adnan2208/CampusCommerce/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// RegisterRoutes mounts the full API surface on app.
func RegisterRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config, hub *ws.Hub) {
	authHandler := NewAuthHandler(db, cfg)
	productHandler := NewProductHandler(db)
	orderHandler := NewOrderHandler(db)
	trackingHandler := NewTrackingHandler(hub, db)
	paymentHandler := NewPaymentHandler(db, cfg)
	grievanceHandler := NewGrievanceHandler(db)
	uploadHandler := NewUploadHandler(cfg)

	api := app.Group("/api")

	// Auth
	auth := api.Group("/auth")
	auth.Post("/signup", authHandler.Signup)
	auth.Post("/verify-code", authHandler.VerifyCode)
	auth.Post("/login", authHandler.Login)
	auth.Get("/me", utils.AuthMiddleware, authHandler.Me)
	auth.Put("/profile", utils.AuthMiddleware, authHandler.UpdateProfile)

	// Products
	products := api.Group("/products")
	products.Get("/", productHandler.GetAllProducts)
	products.Get("/my-products", utils.AuthMiddleware, productHandler.GetMyProducts)
	products.Get("/:id", productHandler.GetProduct)
	products.Post("/", utils.AuthMiddleware, productHandler.CreateProduct)
	products.Put("/:id", utils.AuthMiddleware, productHandler.UpdateProduct)
	products.Delete("/:id/admin-delist", utils.AuthMiddleware, productHandler.AdminDelistProduct)
	products.Delete("/:id", utils.AuthMiddleware, productHandler.DeleteProduct)
	products.Patch("/:id/sold", utils.AuthMiddleware, productHandler.MarkAsSold)

	// Orders & live tracking
	orders := api.Group("/orders", utils.AuthMiddleware)
	orders.Post("/", orderHandler.CreateOrder)
	orders.Get("/my-orders", orderHandler.GetMyOrders)
	orders.Get("/received-orders", orderHandler.GetReceivedOrders)
	orders.Patch("/:id/status", orderHandler.UpdateOrderStatus)
	orders.Patch("/:id/cancel", orderHandler.CancelOrder)
	orders.Post("/:orderId/enable-tracking", trackingHandler.EnableTracking)
	orders.Patch("/:orderId/update-location", trackingHandler.UpdateLocation)
	orders.Get("/:orderId/tracking", trackingHandler.GetTracking)

	// Payments
	payments := api.Group("/payments", utils.AuthMiddleware)
	payments.Get("/:orderId/initiate", paymentHandler.InitiatePayment)
	payments.Post("/:orderId/complete", paymentHandler.CompletePayment)
	payments.Get("/:orderId/status", paymentHandler.GetPaymentStatus)
	payments.Post("/:orderId/cash", paymentHandler.MarkCashPayment)
	payments.Post("/:orderId/approve", paymentHandler.ApprovePayment)

	// Grievances
	grievances := api.Group("/grievances", utils.AuthMiddleware)
	grievances.Post("/submit", grievanceHandler.SubmitGrievance)
	grievances.Get("/my-grievances", grievanceHandler.GetMyGrievances)
	grievances.Get("/all", grievanceHandler.GetAllGrievances)
	grievances.Put("/:grievanceId", grievanceHandler.UpdateGrievance)
	grievances.Delete("/:grievanceId", grievanceHandler.DeleteGrievance)

	// Uploads
	api.Post("/upload", utils.AuthMiddleware, uploadHandler.UploadImage)

	// Live tracking websocket
	app.Get("/ws/tracking", trackingHandler.WebSocketUpgradeMiddleware, trackingHandler.Handler())
}
