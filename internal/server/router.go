package server

import (
	"net/http"
	"time"

	"github.com/benj-n/miguafi/internal/config"
	"github.com/benj-n/miguafi/internal/handler"
	"github.com/benj-n/miguafi/internal/middleware"
	"github.com/benj-n/miguafi/internal/repository"
	"github.com/benj-n/miguafi/internal/service"
	"github.com/benj-n/miguafi/pkg/auth"
	"github.com/benj-n/miguafi/pkg/mailer"
	"github.com/benj-n/miguafi/pkg/storage"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// Deps carries everything the router needs. Mailer may be nil (emails are
// best-effort everywhere).
type Deps struct {
	DB         *gorm.DB
	JWTManager *auth.JWTManager
	Storage    storage.Storage
	Mailer     *mailer.Mailer
	CORS       config.CORSConfig
}

// New assembles the full HTTP surface
func New(deps Deps) *gin.Engine {
	// Repositories
	userRepo := repository.NewUserRepository(deps.DB)
	dogRepo := repository.NewDogRepository(deps.DB)
	availRepo := repository.NewAvailabilityRepository(deps.DB)
	notifRepo := repository.NewNotificationRepository(deps.DB)

	// Services
	authService := service.NewAuthService(deps.DB, userRepo, dogRepo, deps.JWTManager, deps.Mailer)
	availService := service.NewAvailabilityService(deps.DB, availRepo, notifRepo, userRepo, deps.Mailer)
	dogService := service.NewDogService(deps.DB, dogRepo, userRepo, deps.Storage)
	notifService := service.NewNotificationService(notifRepo)

	// Handlers
	authHandler := handler.NewAuthHandler(authService, deps.Storage)
	userHandler := handler.NewUserHandler(authService)
	availHandler := handler.NewAvailabilityHandler(availService)
	dogHandler := handler.NewDogHandler(dogService)
	notifHandler := handler.NewNotificationHandler(notifService)

	router := gin.Default()

	// Swagger configuration
	// Serve swagger.json at /docs/swagger.json to avoid conflict with /swagger/* wildcard
	router.StaticFile("/docs/swagger.json", "./docs/swagger.json")
	url := ginSwagger.URL("/docs/swagger.json")
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, url))

	// Global middleware
	router.Use(middleware.CORSMiddleware(deps.CORS.Origins))

	// Local uploads are served by this process
	if local, ok := deps.Storage.(*storage.LocalStorage); ok {
		router.Static(storage.PublicPathPrefix, local.BaseDir())
	}

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "miguafi-api",
			"time":    time.Now().Format(time.RFC3339),
		})
	})

	// Auth routes (public)
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/register-multipart", authHandler.RegisterMultipart)
		authGroup.POST("/login", authHandler.Login)
	}

	// Protected routes
	protected := router.Group("")
	protected.Use(middleware.AuthMiddleware(authService))
	{
		// Profile
		protected.GET("/users/me", userHandler.Me)
		protected.PUT("/users/me", userHandler.UpdateMe)

		// Availability ledger
		protected.POST("/availability/offers", availHandler.CreateOffer)
		protected.DELETE("/availability/offers/:id", availHandler.DeleteOffer)
		protected.GET("/availability/offers/mine", availHandler.MyOffers)
		protected.POST("/availability/requests", availHandler.CreateRequest)
		protected.DELETE("/availability/requests/:id", availHandler.DeleteRequest)
		protected.GET("/availability/requests/mine", availHandler.MyRequests)

		// Dogs
		protected.GET("/dogs/me", dogHandler.MyDogs)
		protected.POST("/dogs/", dogHandler.Create)
		protected.PUT("/dogs/:id", dogHandler.Update)
		protected.DELETE("/dogs/:id", dogHandler.Delete)
		protected.POST("/dogs/:id/photo", dogHandler.UploadPhoto)
		protected.POST("/dogs/:id/coowners/:user_id", dogHandler.AddCoOwner)
		protected.DELETE("/dogs/:id/coowners/:user_id", dogHandler.RemoveCoOwner)

		// Notifications
		protected.GET("/notifications/me", notifHandler.MyNotifications)
	}

	return router
}
