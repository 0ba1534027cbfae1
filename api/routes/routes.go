package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/pointsledger/referral-backend/internal/config"
	"github.com/pointsledger/referral-backend/internal/handlers"
	"github.com/pointsledger/referral-backend/internal/middleware"
)

// HandlerDependencies carries the handlers the router wires up
type HandlerDependencies struct {
	PointsHandler      *handlers.PointsHandler
	ReferralHandler    *handlers.ReferralHandler
	LeaderboardHandler *handlers.LeaderboardHandler
	UserHandler        *handlers.UserHandler
}

// SetupRouter sets up the router
func SetupRouter(cfg *config.Config, deps HandlerDependencies) *gin.Engine {
	// Create router
	router := gin.Default()

	// Add middleware
	router.Use(middleware.CORSMiddleware(cfg))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware())

	v1 := router.Group("/api/v1")
	{
		// Health check
		v1.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status": "ok",
			})
		})

		// Points routes
		v1.POST("/points", deps.PointsHandler.AddPoints)
		v1.GET("/points/:user_id", deps.PointsHandler.GetBalance)

		// Referral routes
		v1.POST("/referrals", deps.ReferralHandler.RecordReferral)

		// Leaderboard routes
		v1.GET("/leaderboard", deps.LeaderboardHandler.TopUsers)

		// User routes
		v1.POST("/users", deps.UserHandler.Register)
		v1.GET("/users/:user_id", deps.UserHandler.GetUser)
	}

	return router
}
