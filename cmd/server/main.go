package main

import (
	"log"
	"time"

	"github.com/comfortzone/comfortzone-api/internal/auth"
	"github.com/comfortzone/comfortzone-api/internal/config"
	"github.com/comfortzone/comfortzone-api/internal/database"
	"github.com/comfortzone/comfortzone-api/internal/handlers"
	"github.com/comfortzone/comfortzone-api/internal/logging"
	"github.com/comfortzone/comfortzone-api/internal/mailer"
	"github.com/comfortzone/comfortzone-api/internal/middleware"
	"github.com/comfortzone/comfortzone-api/internal/repository"
	"github.com/comfortzone/comfortzone-api/internal/services"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	logger := logging.NewLogger(cfg.AppEnv)
	defer logger.Sync()

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	db := database.GetDB()

	// Repositories
	userRepo := repository.NewUserRepository(db)
	challengeRepo := repository.NewChallengeRepository(db)
	groupRepo := repository.NewGroupRepository(db)
	inviteRepo := repository.NewInviteRepository(db)
	socialRepo := repository.NewSocialRepository(db)

	// Services
	mail := mailer.NewBrevoClient(cfg.BrevoAPIKey, cfg.EmailFrom, cfg.EmailFromName)
	tokens := auth.NewManager(cfg.JWTSecret, time.Hour)
	authService := services.NewAuthService(userRepo, mail, cfg.FrontendURL)
	challengeService := services.NewChallengeService(challengeRepo)
	groupService := services.NewGroupService(groupRepo, inviteRepo, userRepo, socialRepo)
	socialService := services.NewSocialService(userRepo, socialRepo, inviteRepo, challengeRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, tokens)
	challengeHandler := handlers.NewChallengeHandler(challengeService)
	groupHandler := handlers.NewGroupHandler(groupService, authService)
	postHandler := handlers.NewPostHandler(socialService, authService)
	userHandler := handlers.NewUserHandler(socialService)

	// Initialize Gin router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logging.RequestLogger(logger))

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "ComfortZone API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		api.POST("/register", authHandler.Register)
		api.POST("/login", authHandler.Login)
		api.POST("/verify-email", authHandler.VerifyEmail)
		api.POST("/resend-verification", authHandler.ResendVerification)

		// Public profile routes
		api.GET("/globalChallenge/:date", challengeHandler.GetGlobalChallenge)
		api.GET("/user/:username", userHandler.Profile)
		api.GET("/user/:username/friends", userHandler.UserFriends)

		// Authenticated routes
		protected := api.Group("")
		protected.Use(middleware.RequireAuth(tokens))
		{
			protected.GET("/me", authHandler.Me)
			protected.PATCH("/user/:userId", authHandler.UpdateBio)

			protected.GET("/globalCompletions", challengeHandler.ListGlobalCompletions)
			protected.POST("/globalCompletions", challengeHandler.UpsertGlobalCompletion)

			groups := protected.Group("/groups")
			{
				groups.POST("", groupHandler.CreateGroup)
				groups.GET("/my-groups", groupHandler.MyGroups)
				groups.GET("/my-invites", groupHandler.MyInvites)
				groups.POST("/invites/:inviteId/respond", groupHandler.RespondToInvite)

				member := groups.Group("/:id")
				member.Use(middleware.RequireGroupMembership())
				{
					member.GET("", groupHandler.GetGroup)
					member.POST("/challenges", groupHandler.CreateChallenge)
					member.POST("/challenges/:challengeId/complete", groupHandler.CompleteChallenge)
					member.GET("/messages", groupHandler.ListMessages)
					member.POST("/messages", groupHandler.SendMessage)
					member.POST("/invite", groupHandler.Invite)
				}
			}

			posts := protected.Group("/posts")
			{
				posts.POST("", postHandler.CreatePost)
				posts.GET("", postHandler.ListPosts)
				posts.POST("/friend-request", postHandler.SendFriendRequest)
				posts.GET("/friends", postHandler.ListFriends)
			}

			protected.GET("/friends", userHandler.MyFriends)
			protected.POST("/dm", userHandler.SendDirectMessage)
			protected.GET("/dm/:friendId", userHandler.ListDirectMessages)
		}
	}

	// Start server
	log.Printf("Server starting on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
