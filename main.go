package main

import (
	"log"
	"net/http"
	"os"
	"path/filepath"

	"journal-cms/auth"
	"journal-cms/cache"
	"journal-cms/config"
	"journal-cms/handlers"
	"journal-cms/helper"
	"journal-cms/middleware"
	"journal-cms/models"
	"journal-cms/repositories"
	"journal-cms/services"
	"journal-cms/storage"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/joho/godotenv"
	"gopkg.in/go-playground/validator.v9"
	enTranslations "gopkg.in/go-playground/validator.v9/translations/en"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	config.Load()

	// Initialize database
	db := config.InitDB()

	// Token blacklist (degrades to a no-op when Redis is unreachable)
	redisClient := cache.New(config.RedisAddr, config.RedisPassword, config.RedisDB)
	tokenStore := auth.NewTokenStore(redisClient)

	// Media storage
	mediaStore := storage.NewMediaStore(config.UploadRoot)

	// Request validation with translated messages
	httpHelper := newHTTPHelper()

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	articleRepo := repositories.NewArticleRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo, tokenStore)
	articleService := services.NewArticleService(articleRepo, userRepo, mediaStore)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, httpHelper)
	articleHandler := handlers.NewArticleHandler(articleService, httpHelper)
	adminHandler := handlers.NewAdminHandler(articleService, authService, httpHelper)

	// Setup router
	router := gin.Default()
	router.MaxMultipartMemory = 8 << 20

	// Hard upload cap; MaxMultipartMemory above is only the in-memory spill
	// threshold and rejects nothing.
	router.Use(middleware.MaxBodySize(config.MaxUploadBytes))

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	// Uploaded media
	router.Static("/uploads", filepath.Join(config.UploadRoot, "uploads"))

	// API routes
	v1 := router.Group("/api/v1")
	{
		// Auth routes (public)
		authRoutes := v1.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
		}

		// Public article routes (approved only; detail resolves the actor
		// when a token is sent, so owners and moderators see more)
		public := v1.Group("/public")
		{
			public.GET("/home", articleHandler.Home)
			public.GET("/articles", articleHandler.GetArticles)
			public.GET("/articles/:id", middleware.OptionalAuthMiddleware(tokenStore), articleHandler.GetArticle)
		}

		// Protected routes
		protected := v1.Group("/")
		protected.Use(middleware.AuthMiddleware(tokenStore))
		{
			protected.POST("/auth/logout", authHandler.Logout)
			protected.GET("/profile", authHandler.GetProfile)
			protected.GET("/dashboard", articleHandler.Dashboard)

			articles := protected.Group("/articles")
			{
				articles.POST("", articleHandler.CreateArticle)
				articles.PUT("/:id", articleHandler.UpdateArticle)
				articles.DELETE("/:id", articleHandler.DeleteArticle)
			}

			moderator := protected.Group("/moderator")
			moderator.Use(middleware.RequireRole(models.RoleModerator, models.RoleAdmin))
			{
				moderator.GET("/approve/:id", articleHandler.ModeratorApprove)
			}

			admin := protected.Group("/admin")
			admin.Use(middleware.RequireRole(models.RoleAdmin))
			{
				admin.GET("", adminHandler.Dashboard)
				admin.GET("/pending", adminHandler.Pending)
				admin.GET("/approve/:id", adminHandler.Approve)
				admin.GET("/reject/:id", adminHandler.Reject)
				admin.GET("/articles", adminHandler.AllArticles)
				admin.GET("/members", adminHandler.Members)
			}
		}
	}

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	log.Fatal(http.ListenAndServe(":"+port, router))
}

func newHTTPHelper() *helper.HTTPHelper {
	validate := validator.New()
	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ := uni.GetTranslator("en")
	if err := enTranslations.RegisterDefaultTranslations(validate, trans); err != nil {
		log.Println("Failed to register validator translations:", err)
	}
	return &helper.HTTPHelper{Validate: validate, Translator: trans}
}
