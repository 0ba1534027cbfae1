package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/pointsledger/referral-backend/api/routes"
	"github.com/pointsledger/referral-backend/internal/config"
	"github.com/pointsledger/referral-backend/internal/handlers"
	"github.com/pointsledger/referral-backend/internal/repositories"
	"github.com/pointsledger/referral-backend/internal/repositories/memory"
	mongorepo "github.com/pointsledger/referral-backend/internal/repositories/mongodb"
	"github.com/pointsledger/referral-backend/internal/services"
	mongodb "github.com/pointsledger/referral-backend/pkg/mongodb"
)

func main() {
	// Load .env if present; real environments set variables directly
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize the ledger store. The client handle is process-wide and
	// shared by every request; all coordination happens inside the store.
	var userRepo repositories.UserRepository
	if cfg.MongoDB.UseMemory {
		log.Println("Using in-memory store (STORE_USE_MEMORY)")
		userRepo = memory.NewUserRepository()
	} else {
		mongoClient, err := mongodb.NewClient(cfg.MongoDB.URI)
		if err != nil {
			log.Fatalf("Failed to connect to MongoDB: %v", err)
		}
		defer func() {
			if err := mongoClient.Disconnect(context.Background()); err != nil {
				log.Printf("Error disconnecting from MongoDB: %v", err)
			}
		}()

		db := mongoClient.Database(cfg.MongoDB.Database)
		userRepo = mongorepo.NewUserRepository(db, cfg.MongoDB.Timeout)
	}

	// Initialize services
	pointsService := services.NewPointsService(userRepo)
	referralService := services.NewReferralService(userRepo)
	leaderboardService := services.NewLeaderboardService(userRepo)
	userService := services.NewUserService(userRepo)

	// Initialize handlers
	handlerDeps := routes.HandlerDependencies{
		PointsHandler:      handlers.NewPointsHandler(pointsService),
		ReferralHandler:    handlers.NewReferralHandler(referralService),
		LeaderboardHandler: handlers.NewLeaderboardHandler(leaderboardService),
		UserHandler:        handlers.NewUserHandler(userService),
	}

	// Setup router
	router := routes.SetupRouter(cfg, handlerDeps)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	log.Printf("Server starting on port %s", cfg.Server.Port)

	// Run server in a goroutine so that it doesn't block
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown: ", err)
	}

	log.Println("Server exiting")
}
