package routes

import (
	"time"

	"alkicorp-banksim/internal/adapters/http/handlers"
	"alkicorp-banksim/internal/adapters/http/middleware"
	"alkicorp-banksim/internal/adapters/persistence/repositories"
	"alkicorp-banksim/internal/config"
	"alkicorp-banksim/internal/core/services"
	"alkicorp-banksim/internal/pkg/gameclock"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Setup configures all routes for the application and returns the
// background services that main must start and stop.
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) (*services.SimulationService, *services.CronService) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)
	bankRepo := repositories.NewBankStateRepository(db)
	clientRepo := repositories.NewClientRepository(db)
	transactionRepo := repositories.NewTransactionRepository(db)
	eventRepo := repositories.NewInvestmentEventRepository(db)
	productRepo := repositories.NewProductRepository(db)
	catalogRepo := repositories.NewCatalogRepository(db)
	loanRepo := repositories.NewLoanRepository(db)
	mortgageRepo := repositories.NewMortgageRepository(db)
	livingRepo := repositories.NewLivingRepository(db)

	// Simulation core: bankruptcy rule, tick services, then the clock
	// owner everything else runs under
	clock := gameclock.New(cfg.Simulation.DaysPerYear, cfg.Simulation.RealPerGameDay)
	bankruptcySvc := services.NewBankruptcyService(cfg.Simulation.BankruptcyGraceDays)
	payrollSvc := services.NewPayrollService(clientRepo, transactionRepo, bankruptcySvc)
	rentSvc := services.NewRentService(clientRepo, transactionRepo, bankruptcySvc)
	simService := services.NewSimulationService(
		db, cfg.Simulation, clock,
		bankRepo, clientRepo, eventRepo,
		payrollSvc, rentSvc, bankruptcySvc,
	)

	// Command services
	authService := services.NewAuthService(userRepo, refreshTokenRepo, cfg)
	clientService := services.NewClientService(simService, clientRepo)
	ledgerService := services.NewLedgerService(simService, clientRepo, transactionRepo)
	investmentService := services.NewInvestmentService(simService, bankRepo, eventRepo)
	employmentService := services.NewEmploymentService(simService, clientRepo, catalogRepo)
	livingService := services.NewLivingService(simService, clientRepo, livingRepo, productRepo, catalogRepo, transactionRepo, bankRepo)
	lendingService := services.NewLendingService(simService, clientRepo, loanRepo, mortgageRepo, productRepo, livingRepo, transactionRepo, bankRepo)
	slotService := services.NewSlotService(simService, bankRepo, clientRepo, transactionRepo, catalogRepo)
	chartService := services.NewChartService(simService, clientRepo, transactionRepo)
	cronService := services.NewCronService(simService)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService, cfg)
	slotHandler := handlers.NewSlotHandler(slotService)
	clientHandler := handlers.NewClientHandler(clientService, ledgerService)
	investmentHandler := handlers.NewInvestmentHandler(investmentService, slotService)
	chartHandler := handlers.NewChartHandler(chartService)
	lendingHandler := handlers.NewLendingHandler(lendingService)
	employmentHandler := handlers.NewEmploymentHandler(employmentService)
	livingHandler := handlers.NewLivingHandler(livingService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// API group
	api := app.Group("/api")

	// Auth routes (public, rate limited)
	auth := api.Group("/auth")
	auth.Post("/register", middleware.AuthRateLimiter(), authHandler.Register)
	auth.Post("/login", middleware.AuthRateLimiter(), authHandler.Login)
	auth.Post("/refresh", authHandler.RefreshToken)
	auth.Post("/logout", authHandler.Logout)

	// Auth routes (protected)
	authProtected := api.Group("/auth", middleware.AuthMiddleware(cfg))
	authProtected.Post("/logout-all", authHandler.LogoutAll)
	authProtected.Get("/me", middleware.PrivateCacheHeaders(30*time.Second), authHandler.Me)

	// Everything below requires authentication; simulation state must
	// never be cached
	slots := api.Group("/slots", middleware.AuthMiddleware(cfg), middleware.NoCacheHeaders())

	// Slots & bank
	slots.Get("/", slotHandler.ListSlots)
	slots.Post("/:slotId/start", middleware.StrictRateLimiter(), slotHandler.StartSlot)
	slots.Post("/:slotId/seed", middleware.StrictRateLimiter(), slotHandler.SeedDemo)
	slots.Get("/:slotId/bank", slotHandler.GetBank)

	// Clients & ledger
	slots.Get("/:slotId/clients", clientHandler.ListClients)
	slots.Post("/:slotId/clients", clientHandler.CreateClient)
	slots.Get("/:slotId/clients/:clientId", clientHandler.GetClient)
	slots.Post("/:slotId/clients/:clientId/deposit", clientHandler.Deposit)
	slots.Post("/:slotId/clients/:clientId/withdraw", clientHandler.Withdraw)
	slots.Post("/:slotId/clients/:clientId/savings/deposit", clientHandler.SavingsDeposit)
	slots.Post("/:slotId/clients/:clientId/savings/withdraw", clientHandler.SavingsWithdraw)
	slots.Get("/:slotId/clients/:clientId/transactions", clientHandler.ListTransactions)

	// Investments
	slots.Get("/:slotId/investments/sp500", investmentHandler.Snapshot)
	slots.Post("/:slotId/investments/sp500/invest", investmentHandler.Invest)
	slots.Post("/:slotId/investments/sp500/divest", investmentHandler.Divest)

	// Charts
	slots.Get("/:slotId/charts/clients", chartHandler.ClientBalances)
	slots.Get("/:slotId/charts/activity", chartHandler.Activity)

	// Property market
	slots.Get("/:slotId/products", livingHandler.ListProducts)
	slots.Get("/:slotId/products/all", middleware.AdminOnly(), livingHandler.ListAllProducts)

	// Loans (decisions admin-gated)
	slots.Get("/:slotId/loans", lendingHandler.ListLoans)
	slots.Post("/:slotId/loans", lendingHandler.ApplyLoan)
	slots.Post("/:slotId/loans/:loanId/approve", middleware.AdminOnly(), lendingHandler.ApproveLoan)
	slots.Post("/:slotId/loans/:loanId/reject", middleware.AdminOnly(), lendingHandler.RejectLoan)

	// Mortgages
	slots.Get("/:slotId/mortgages", lendingHandler.ListMortgages)
	slots.Post("/:slotId/clients/:clientId/mortgages", lendingHandler.ApplyMortgage)
	slots.Post("/:slotId/mortgages/:mortgageId/approve", lendingHandler.ApproveMortgage)
	slots.Post("/:slotId/mortgages/:mortgageId/reject", lendingHandler.RejectMortgage)

	// Jobs & employment
	slots.Get("/:slotId/jobs", middleware.CatalogCache(), employmentHandler.ListJobs)
	slots.Post("/:slotId/jobs/clients/:clientId/assign/:jobId", employmentHandler.AssignJob)
	slots.Post("/:slotId/jobs/clients/:clientId/quit", employmentHandler.QuitJob)

	// Rentals & living
	slots.Get("/:slotId/rentals", middleware.CatalogCache(), livingHandler.ListRentals)
	slots.Get("/:slotId/clients/:clientId/living", livingHandler.GetLiving)
	slots.Post("/:slotId/clients/:clientId/living/rental/:rentalId", livingHandler.SetRental)
	slots.Post("/:slotId/clients/:clientId/living/owned/:productId", livingHandler.BuyProperty)
	slots.Delete("/:slotId/clients/:clientId/living", livingHandler.ClearLiving)
	slots.Post("/:slotId/clients/:clientId/properties/:productId/sell", livingHandler.SellProperty)

	return simService, cronService
}
