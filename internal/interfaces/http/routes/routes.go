// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/your-org/warehouse-backend/internal/config"
	"github.com/your-org/warehouse-backend/internal/interfaces/http/handlers"
	"github.com/your-org/warehouse-backend/internal/interfaces/http/middleware"
)

// SetupRoutes wires all API route groups
func SetupRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config) {
	SetupAuthRoutes(rg, db, redisClient, cfg)
	SetupWarehouseRoutes(rg, db, redisClient, cfg)
	SetupWaveRoutes(rg, db, redisClient, cfg)
	SetupAdminRoutes(rg, db, redisClient, cfg)
}

// SetupAuthRoutes sets up authentication related routes
func SetupAuthRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config) {
	authHandler := handlers.NewAuthHandler(db, cfg)

	auth := rg.Group("/auth")
	{
		// Public auth endpoints
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.RefreshToken)

		// Protected auth endpoints
		protected := auth.Group("")
		protected.Use(middleware.AuthMiddleware(cfg))
		{
			protected.POST("/logout", authHandler.Logout)
			protected.GET("/profile", authHandler.GetProfile)
			protected.PUT("/password", authHandler.ChangePassword)
			protected.GET("/validate", authHandler.ValidateToken)
		}
	}
}

// SetupWarehouseRoutes sets up warehouse topology and stock routes
func SetupWarehouseRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config) {
	warehouseHandler := handlers.NewWarehouseHandler(db, cfg)

	warehouse := rg.Group("/warehouse")
	warehouse.Use(middleware.AuthMiddleware(cfg))
	{
		// Read endpoints are open to every authenticated role
		warehouse.GET("/places", warehouseHandler.ListPlaces)
		warehouse.GET("/places/:id/stock", warehouseHandler.GetPlaceStock)
		warehouse.GET("/items", warehouseHandler.ListItems)
		warehouse.GET("/items/:id/stock", warehouseHandler.GetItemStock)

		// Topology and catalog changes are restricted
		manage := warehouse.Group("")
		manage.Use(middleware.RequireRole("admin", "director"))
		{
			manage.POST("/stocks", warehouseHandler.CreateStock)
			manage.POST("/zones", warehouseHandler.CreateZone)
			manage.POST("/places", warehouseHandler.CreatePlace)
			manage.POST("/items", warehouseHandler.CreateItem)
		}
	}
}

// SetupWaveRoutes sets up wave lifecycle and document routes
func SetupWaveRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config) {
	waveHandler := handlers.NewWaveHandler(db, cfg)

	waves := rg.Group("/waves")
	waves.Use(middleware.AuthMiddleware(cfg))
	{
		waves.GET("", waveHandler.ListWaves)
		waves.GET("/form-template", waveHandler.DownloadFormTemplate)
		waves.GET("/number/:number", waveHandler.GetWaveByNumber)
		waves.GET("/:id", waveHandler.GetWave)
		waves.GET("/:id/items", waveHandler.ListLineItems)
		waves.GET("/:id/manifest", waveHandler.DownloadManifest)
		waves.GET("/:id/documents", waveHandler.ListDocuments)
		waves.GET("/:id/documents/archive", waveHandler.DownloadArchive)
		waves.GET("/:id/documents/:docId", waveHandler.DownloadDocument)

		// Creating waves, moving them through the lifecycle and attaching
		// documents require an operational role
		operate := waves.Group("")
		operate.Use(middleware.RequireRole("admin", "director", "operator"))
		{
			operate.POST("", waveHandler.CreateWave)
			operate.PUT("/:id/status", waveHandler.ChangeStatus)
			operate.POST("/:id/documents", waveHandler.UploadDocuments)
		}

		// Deleting a wave removes its documents from disk as well
		remove := waves.Group("")
		remove.Use(middleware.RequireRole("admin", "director"))
		{
			remove.DELETE("/:id", waveHandler.DeleteWave)
		}
	}
}

// SetupAdminRoutes sets up account administration routes
func SetupAdminRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config) {
	authHandler := handlers.NewAuthHandler(db, cfg)

	admin := rg.Group("/admin")
	admin.Use(middleware.AuthMiddleware(cfg))
	admin.Use(middleware.AdminMiddleware())
	{
		users := admin.Group("/users")
		{
			users.GET("", authHandler.ListUsers)
			users.POST("", authHandler.Register)
			users.PUT("/:id/role", authHandler.SetUserRole)
			users.PUT("/:id/status", authHandler.SetUserActive)
		}
	}
}
