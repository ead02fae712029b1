package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"alkicorp-banksim/internal/adapters/http/middleware"
	"alkicorp-banksim/internal/adapters/http/routes"
	"alkicorp-banksim/internal/adapters/persistence/models"
	"alkicorp-banksim/internal/config"

	"github.com/gofiber/fiber/v2"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer config.CloseDatabase()

	// Auto migrate (creates tables if not exist)
	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("❌ Failed to auto migrate: %v", err)
	}
	log.Println("✅ Database migration completed")

	// Seed admin user, catalogs and per-slot property markets
	seeder := config.NewSeeder(db)
	if err := seeder.Run(cfg.Simulation.SlotCount); err != nil {
		log.Printf("⚠️ Warning: Failed to seed data: %v", err)
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "AlkiCorp BankSim API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes (pass db and cfg for dependency injection)
	simService, cronService := routes.Setup(app, db, cfg)

	// Ensure every slot has a bank state before serving traffic
	ctx := context.Background()
	for slotID := 1; slotID <= cfg.Simulation.SlotCount; slotID++ {
		if err := simService.InitSlot(ctx, slotID); err != nil {
			log.Fatalf("❌ Failed to init slot %d: %v", slotID, err)
		}
	}

	// Start the simulation tick
	if err := cronService.Start(); err != nil {
		log.Fatalf("❌ Failed to start simulation tick: %v", err)
	}
	defer cronService.Stop()

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	log.Printf("🚀 Server starting on port %s [MODE: %s]", cfg.Port, cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("❌ Error during shutdown: %v", err)
	}
	log.Println("✅ Server stopped gracefully")
}
