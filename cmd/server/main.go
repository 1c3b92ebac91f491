package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/trafylabs/academy-api/adapters/event"
	httpAdapter "github.com/trafylabs/academy-api/adapters/http"
	"github.com/trafylabs/academy-api/adapters/idp"
	"github.com/trafylabs/academy-api/adapters/media_storage"
	"github.com/trafylabs/academy-api/adapters/persistence"
	authUC "github.com/trafylabs/academy-api/internal/application/usecase/auth"
	blogUC "github.com/trafylabs/academy-api/internal/application/usecase/blog"
	enquiryUC "github.com/trafylabs/academy-api/internal/application/usecase/enquiry"
	"github.com/trafylabs/academy-api/internal/config"
	"github.com/trafylabs/academy-api/internal/session"
	"github.com/trafylabs/academy-api/internal/ui"
	"github.com/trafylabs/academy-api/pkg/auth"
	"github.com/trafylabs/academy-api/pkg/logger"
	"github.com/trafylabs/academy-api/pkg/tracing"
)

const uiSessionMaxAge = 30 * time.Minute

func main() {
	fmt.Println("Start Trafy Academy API Server...")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)

	tp, err := tracing.NewTracerProvider(cfg, appLogger, "academy-api")
	if err != nil {
		appLogger.Warn("Tracing disabled: " + err.Error())
	} else {
		defer tp.Shutdown(context.Background())
	}

	// Initialize dependencies
	dbPool, err := persistence.NewPostgresPool(cfg, appLogger)
	if err != nil {
		log.Fatalf("FATAL: cannot connect Postgres: %v", err)
	}
	defer dbPool.Close()

	redisClient, err := persistence.NewRedisClient(cfg, appLogger)
	if err != nil {
		log.Fatalf("FATAL: cannot connect Redis: %v", err)
	}
	defer redisClient.Close()

	kafkaClient, err := event.NewKafkaProducerClient(cfg)
	if err != nil {
		log.Fatalf("FATAL: cannot init Kafka: %v", err)
	}
	defer kafkaClient.Close()

	// Repositories
	userRepo := persistence.NewPostgresUserRepo(dbPool)
	profileRepo := persistence.NewPostgresProfileRepo(dbPool, appLogger)
	enquiryRepo := persistence.NewPostgresEnquiryRepo(dbPool)
	handoffStore := persistence.NewRedisHandoffStore(redisClient, cfg.Auth.HandoffTokenTTL)

	// Services
	jwtSvc := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenLifespan)
	uploader, err := media_storage.NewCloudinaryAdapter(cfg, appLogger)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize uploader: %v", err)
	}

	// Identity provider and the reactive session store
	provider := idp.NewProvider(userRepo, handoffStore, appLogger)
	sessionStore := session.NewStore()
	sessionStore.Start(provider)
	defer sessionStore.Stop()

	// Per-visitor UI sessions
	registry := ui.NewRegistry()
	go func() {
		ticker := time.NewTicker(uiSessionMaxAge / 2)
		defer ticker.Stop()
		for range ticker.C {
			registry.Prune(uiSessionMaxAge)
		}
	}()

	// Use Cases
	loginUseCase := authUC.NewLoginUseCase(provider, profileRepo, jwtSvc, appLogger)
	signOutUseCase := authUC.NewSignOutUseCase(provider, appLogger)
	submitEnquiryUseCase := enquiryUC.NewSubmitUseCase(enquiryRepo, kafkaClient, cfg.Enquiry.SinkURL, appLogger)
	rssUseCase := blogUC.NewRSSUseCase(cfg.App.SiteURL, appLogger)

	// HTTP Handlers
	authHandler := httpAdapter.NewAuthHandler(
		loginUseCase,
		signOutUseCase,
		provider,
		sessionStore,
		appLogger,
		cfg.Auth.HandoffCookieName,
		cfg.Auth.HandoffTokenTTL,
	)
	profileHandler := httpAdapter.NewProfileHandler(userRepo, profileRepo, uploader, kafkaClient, registry, appLogger)
	enquiryHandler := httpAdapter.NewEnquiryHandler(submitEnquiryUseCase, registry)
	blogHandler := httpAdapter.NewBlogHandler(rssUseCase)
	uiHandler := httpAdapter.NewUIHandler(registry)

	// Middleware
	authMiddleware := httpAdapter.AuthMiddleware(jwtSvc)

	// Setup Gin router
	router := gin.Default()
	router.Use(httpAdapter.SessionIDMiddleware())
	router.Use(httpAdapter.ErrorMiddleware(appLogger))

	api := router.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "UP"}) })

		authGroup := api.Group("/auth")
		{
			authGroup.GET("/bridge", authHandler.Bridge)
			authGroup.GET("/session", authHandler.Session)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/federated", authHandler.FederatedLogin)
			authGroup.POST("/logout", authHandler.Logout)
		}

		api.POST("/enquiries", enquiryHandler.SubmitEnquiry)

		api.GET("/blogs", blogHandler.ListBlogs)
		api.GET("/blogs/:id", blogHandler.GetBlog)
		api.GET("/rss", blogHandler.GetRSSFeed)

		uiGroup := api.Group("/ui")
		{
			uiGroup.GET("/state", uiHandler.GetState)
			uiGroup.POST("/nav/menu", uiHandler.ToggleMenu)
			uiGroup.POST("/nav/dropdown", uiHandler.ToggleDropdown)
			uiGroup.POST("/nav/outside-click", uiHandler.OutsideClick)
			uiGroup.POST("/nav/navigate", uiHandler.Navigate)
			uiGroup.POST("/nav/route-changed", uiHandler.RouteChanged)
			uiGroup.POST("/notice/dismiss", uiHandler.DismissNotice)
		}

		account := api.Group("/account")
		account.Use(authMiddleware)
		{
			account.GET("/profile", profileHandler.GetProfile)
			account.PUT("/profile", profileHandler.UpdateProfile)
			account.POST("/handoff", authHandler.Handoff)
		}
	}

	log.Printf("Server running on port %s", cfg.App.Port)
	if err := router.Run(":" + cfg.App.Port); err != nil {
		log.Fatalf("Cannot run server: %v", err)
	}
}
