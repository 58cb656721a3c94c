package routes

import (
	"time"

	"bookmarks-backend/internal/config"
	"bookmarks-backend/internal/handlers"
	"bookmarks-backend/internal/metadata"
	"bookmarks-backend/internal/middleware"
	"bookmarks-backend/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Setup(db *gorm.DB, cfg *config.Config) *gin.Engine {
	router := gin.New()

	router.Use(middleware.LoggerMiddleware())
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware(cfg.CORS.AllowOrigins))
	router.Use(middleware.RateLimitMiddleware(60))

	extractor := metadata.NewExtractor(time.Duration(cfg.Metadata.FetchTimeout) * time.Second)

	authService := services.NewAuthService(db)
	bookmarkService := services.NewBookmarkService(db)
	categoryService := services.NewCategoryService(db)
	tagService := services.NewTagService(db)

	authHandler := handlers.NewAuthHandler(authService, cfg)
	bookmarkHandler := handlers.NewBookmarkHandler(bookmarkService, extractor)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	tagHandler := handlers.NewTagHandler(tagService)

	api := router.Group("/api")

	public := api.Group("")
	{
		auth := public.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}
	}

	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(db, cfg))
	{
		user := protected.Group("/auth")
		{
			user.GET("/me", authHandler.GetMe)
			user.POST("/logout", authHandler.Logout)
		}

		bookmarks := protected.Group("/bookmarks")
		{
			bookmarks.GET("", bookmarkHandler.GetBookmarks)
			bookmarks.POST("", bookmarkHandler.CreateBookmark)
			bookmarks.PATCH("/:id", bookmarkHandler.UpdateBookmark)
			bookmarks.DELETE("/:id", bookmarkHandler.DeleteBookmark)

			bookmarks.POST("/:id/tags", tagHandler.AddTagToBookmark)
			bookmarks.DELETE("/:id/tags/:tagId", tagHandler.RemoveTagFromBookmark)
		}

		categories := protected.Group("/categories")
		{
			categories.GET("", categoryHandler.GetCategories)
			categories.POST("", categoryHandler.CreateCategory)
			categories.PUT("/reorder", categoryHandler.ReorderCategories)
			categories.PATCH("/:slug", categoryHandler.RenameCategory)
			categories.DELETE("/:slug", categoryHandler.DeleteCategory)
		}

		tags := protected.Group("/tags")
		{
			tags.GET("", tagHandler.GetTags)
			tags.POST("", tagHandler.CreateTag)
			tags.DELETE("/:id", tagHandler.DeleteTag)
		}
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "服务运行正常",
		})
	})

	return router
}
