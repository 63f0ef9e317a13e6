package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"carematch/config"
	"carematch/internal/service"
)

type Handler struct {
	services *service.Services
	logger   *zap.Logger
	config   *config.Config
}

func NewHandler(services *service.Services, logger *zap.Logger, config *config.Config) *Handler {
	return &Handler{
		services: services,
		logger:   logger,
		config:   config,
	}
}

func (h *Handler) InitRoutes(router *gin.Engine) {
	router.Use(h.loggerMiddleware())

	router.Use(h.errorMiddleware())

	router.Use(h.corsMiddleware())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/swagger", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
	})

	api := router.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", h.register)
			auth.POST("/login", h.login)
			auth.POST("/refresh", h.refreshTokens)
			auth.POST("/logout", h.logout)
		}

		users := api.Group("/users")
		users.Use(h.authMiddleware())
		{
			users.GET("/me", h.getCurrentUser)
			users.GET("/:id", h.getUserByID)
			users.PUT("/:id", h.updateUser)
			users.PUT("/:id/password", h.updatePassword)

			admin := users.Group("/")
			admin.Use(h.adminMiddleware())
			{
				admin.POST("/", h.createUser)
				admin.GET("/", h.getUsers)
				admin.DELETE("/:id", h.deleteUser)
			}
		}

		providers := api.Group("/providers")
		{
			providers.GET("/", h.queryProviders)
			providers.GET("/:id", h.getProviderByID)

			admin := providers.Group("/")
			admin.Use(h.authMiddleware(), h.adminMiddleware())
			{
				admin.POST("/", h.createProvider)
				admin.PUT("/:id", h.updateProvider)
				admin.DELETE("/:id", h.deleteProvider)

				admin.POST("/:id/photo", h.uploadProviderPhoto)
				admin.DELETE("/:id/photo", h.deleteProviderPhoto)
			}
		}

		families := api.Group("/families")
		families.Use(h.authMiddleware())
		{
			families.GET("/", h.getFamilies)
			families.GET("/:id", h.getFamilyByID)
			families.POST("/", h.createFamily)
			families.PUT("/:id", h.updateFamily)
			families.DELETE("/:id", h.adminMiddleware(), h.deleteFamily)
		}

		requests := api.Group("/requests")
		requests.Use(h.authMiddleware())
		{
			requests.POST("/", h.createRequest)
			requests.GET("/", h.getRequests)
			requests.GET("/:id", h.getRequestByID)
			requests.DELETE("/:id", h.deleteRequest)

			requests.POST("/:id/assign", h.assignRequest)
		}

		assignments := api.Group("/assignments")
		assignments.Use(h.authMiddleware())
		{
			assignments.POST("/", h.createAssignment)
			assignments.GET("/", h.getAssignments)
			assignments.GET("/:id", h.getAssignmentByID)
			assignments.PUT("/:id", h.updateAssignment)
			assignments.DELETE("/:id", h.deleteAssignment)
		}

		api.POST("/ai-suggest", h.authMiddleware(), h.suggestProvider)
	}
}
