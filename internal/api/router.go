package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"shared-lists/internal/config"
	"shared-lists/internal/handlers"
	"shared-lists/internal/services"
	"shared-lists/internal/store"
)

func SetupRouter(st store.Store, cfg *config.Config, logger *zap.Logger) *gin.Engine {
	router := gin.Default()

	// Custom CORS middleware
	router.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		allowed := false
		for _, allowedOrigin := range cfg.CORS.AllowedOrigins {
			if origin == allowedOrigin {
				allowed = true
				break
			}
		}

		if allowed {
			c.Header("Access-Control-Allow-Origin", origin)
		}
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Length, Content-Type")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Initialize services
	imageService := services.NewImageService(st)
	notificationService := services.NewNotificationService(st, logger)
	userService := services.NewUserService(st, imageService, logger)
	listService := services.NewListService(st, notificationService, logger)
	categoryService := services.NewCategoryService(st, logger)
	itemService := services.NewItemService(st, imageService, notificationService, logger)

	// Initialize handlers
	userHandler := handlers.NewUserHandler(userService)
	listHandler := handlers.NewListHandler(listService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	itemHandler := handlers.NewItemHandler(itemService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	imageHandler := handlers.NewImageHandler(imageService)

	api := router.Group("/api")
	{
		users := api.Group("/users")
		{
			users.POST("", userHandler.CreateUser)
			users.POST("/login", userHandler.Login)
			users.GET("", userHandler.GetUsers)
			users.GET("/:id", userHandler.GetUser)
			users.PUT("/:id", userHandler.UpdateUser)
		}

		lists := api.Group("/lists")
		{
			lists.GET("", listHandler.GetLists)
			lists.POST("", listHandler.CreateList)
			lists.GET("/share/:code", listHandler.GetListByShareCode)
			lists.GET("/:id", listHandler.GetList)
			lists.PUT("/:id", listHandler.UpdateList)
			lists.DELETE("/:id", listHandler.DeleteList)

			// Membership
			lists.POST("/:id/members/:userId", listHandler.AddMember)
			lists.DELETE("/:id/members/:userId", listHandler.RemoveMember)
			lists.POST("/:id/leave/:userId", listHandler.Leave)
		}

		categories := api.Group("/lists/:id/categories")
		{
			categories.POST("", categoryHandler.CreateCategory)
			categories.GET("/:categoryId", categoryHandler.GetCategory)
			categories.PUT("/:categoryId", categoryHandler.UpdateCategory)
			categories.DELETE("/:categoryId", categoryHandler.DeleteCategory)
		}

		items := api.Group("/lists/:id/items")
		{
			items.POST("", itemHandler.CreateItem)
			items.GET("/:itemId", itemHandler.GetItem)
			items.PUT("/:itemId", itemHandler.UpdateItem)
			items.DELETE("/:itemId", itemHandler.DeleteItem)
			items.POST("/bulk-update", itemHandler.BulkUpdateItems)
		}

		notifications := api.Group("/notifications")
		{
			notifications.GET("/:userId", notificationHandler.GetNotifications)
		}

		images := api.Group("/images")
		{
			images.POST("/upload", imageHandler.Upload)
			images.GET("/:id", imageHandler.GetImage)
		}
	}

	return router
}
