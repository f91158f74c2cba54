package main

import (
	"flag"
	"log"

	"github.com/Adnan2208/CampusCommerce/config"
	"github.com/Adnan2208/CampusCommerce/handlers"
	"github.com/Adnan2208/CampusCommerce/internal/ws"
	"github.com/Adnan2208/CampusCommerce/middleware"
	"github.com/Adnan2208/CampusCommerce/models"
	"github.com/gofiber/fiber/v2"
)

func main() {
	migrateFresh := flag.Bool("migrate-fresh", false, "drop all tables, re-migrate and seed demo data")
	seed := flag.Bool("seed", false, "seed demo users and products")
	makeAdmin := flag.String("make-admin", "", "promote (or create) an admin account with this email")
	flag.Parse()

	cfg := config.LoadConfig()
	db := config.ConnectDB(cfg.DatabaseURL)

	// One-shot ops paths
	if *migrateFresh {
		if err := config.ResetAndMigrate(db); err != nil {
			log.Fatal("Migration failed:", err)
		}
		return
	}
	if err := config.Migrate(db); err != nil {
		log.Fatal("Migration failed:", err)
	}
	if *seed {
		config.SeedUsers(db)
		config.SeedProducts(db)
		return
	}
	if *makeAdmin != "" {
		if err := config.MakeAdmin(db, *makeAdmin); err != nil {
			log.Fatal("Failed to make admin:", err)
		}
		return
	}

	app := fiber.New(fiber.Config{
		AppName:      "CampusCommerce",
		ServerHeader: "CampusCommerce Server/1.0",
		BodyLimit:    10 * 1024 * 1024, // headroom for screenshot uploads
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Default 500 statuscode
			code := fiber.StatusInternalServerError
			msg := "Internal Server Error"

			// Retrieve the custom statuscode if it's a *fiber.Error
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
				msg = e.Message
			}

			return c.Status(code).JSON(models.ErrorResponse(msg))
		},
	})

	middleware.SetupMiddleware(app, cfg)

	// Health check endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(models.SuccessResponse("API is healthy", nil))
	})
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(models.SuccessResponse("Welcome to CampusCommerce API", nil))
	})

	// Uploaded screenshots and product images
	app.Static("/uploads", cfg.UploadDir)

	hub := ws.NewHub()
	go hub.Run()

	handlers.RegisterRoutes(app, db, cfg, hub)

	middleware.SetupErrorHandler(app)

	log.Printf("🚀 Server starting on host %s in port %s", cfg.HOST, cfg.AppPort)

	if err := app.Listen(cfg.HOST + ":" + cfg.AppPort); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
