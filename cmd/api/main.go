package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"go-chemoventry/internal/config"
	"go-chemoventry/internal/handler"
	"go-chemoventry/internal/middleware"
	"go-chemoventry/internal/model"
	"go-chemoventry/internal/repository"
	"go-chemoventry/internal/service"
	"go-chemoventry/internal/ws"
	"go-chemoventry/pkg/database"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	// 2. Setup Database
	db := database.ConnectDB(cfg.DSN())
	db.AutoMigrate(&model.User{}, &model.Location{}, &model.Chemical{}, &model.ChemicalActivity{})

	// 3. Seed default admin user
	seedAdmin(db)

	// 4. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 5. Dependency Injection (Wiring Layers)
	userRepo := repository.NewUserRepo(db)
	locationRepo := repository.NewLocationRepo(db)
	chemicalRepo := repository.NewChemicalRepo(db)
	activityRepo := repository.NewActivityRepo(db)

	authService := service.NewAuthService(userRepo)
	userService := service.NewUserService(userRepo)
	locationService := service.NewLocationService(locationRepo)
	invService := service.NewInventoryService(chemicalRepo, activityRepo, locationRepo, db, wsHub)
	dashService := service.NewDashboardService(chemicalRepo, activityRepo, cfg.LowStockThreshold)
	reportService := service.NewReportService(chemicalRepo, activityRepo)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	locationHandler := handler.NewLocationHandler(locationService)
	chemicalHandler := handler.NewChemicalHandler(invService)
	activityHandler := handler.NewActivityHandler(invService)
	dashHandler := handler.NewDashboardHandler(dashService)
	reportHandler := handler.NewReportHandler(reportService)

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Chemoventry v1.0",
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// 7. Routes
	api := app.Group("/api")

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", middleware.RequireAuth(userRepo))

	// User Routes
	protected.Get("/users/me", userHandler.GetMe)
	protected.Patch("/users/me", userHandler.UpdateMe)
	protected.Post("/users/change-password", userHandler.ChangePassword)
	protected.Get("/users", userHandler.GetUsers)
	protected.Get("/users/:id", userHandler.GetUser)
	protected.Put("/users/:id", middleware.RequireAdmin(), userHandler.UpdateUser)
	protected.Delete("/users/:id", middleware.RequireAdmin(), userHandler.DeleteUser)

	// Location Routes (admin mutates, everyone reads)
	protected.Get("/locations", locationHandler.GetLocations)
	protected.Get("/locations/:id", locationHandler.GetLocation)
	protected.Post("/locations", middleware.RequireAdmin(), locationHandler.CreateLocation)
	protected.Put("/locations/:id", middleware.RequireAdmin(), locationHandler.UpdateLocation)
	protected.Delete("/locations/:id", middleware.RequireAdmin(), locationHandler.DeleteLocation)

	// Chemical Routes
	protected.Get("/chemicals", chemicalHandler.GetChemicals)
	protected.Get("/chemicals/:id", chemicalHandler.GetChemical)
	protected.Post("/chemicals", chemicalHandler.CreateChemical)
	protected.Put("/chemicals/:id", chemicalHandler.UpdateChemical)
	protected.Delete("/chemicals/:id", chemicalHandler.DeleteChemical)

	// Activity Ledger Routes
	protected.Get("/activities", activityHandler.GetActivities)
	protected.Post("/activities", activityHandler.RecordActivity)

	// Dashboard Route
	protected.Get("/dashboard/overview", dashHandler.GetOverview)

	// Report Route (inventory | usage | expiry | low-stock)
	protected.Get("/reports/:type", reportHandler.GenerateReport)

	// WebSocket Route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 8. Graceful Shutdown
	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Panic(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}

// seedAdmin creates the default admin account if it doesn't exist yet
func seedAdmin(db *gorm.DB) {
	userRepo := repository.NewUserRepo(db)

	if _, err := userRepo.FindByEmail("admin@example.com"); err == nil {
		return
	}

	admin := &model.User{
		Email:     "admin@example.com",
		FirstName: "Lab",
		LastName:  "Administrator",
		Role:      model.RoleAdmin,
		IsActive:  true,
	}
	if err := admin.SetPassword("admin12345"); err != nil {
		log.Printf("Warning: Failed to hash admin password: %v", err)
		return
	}

	if err := userRepo.Create(admin); err != nil {
		log.Printf("Warning: Failed to create admin user: %v", err)
	} else {
		log.Println("Admin user created: admin@example.com / admin12345")
	}
}
