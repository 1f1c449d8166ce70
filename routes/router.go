package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/marianaakuma/Projeto-Full-Stack1/config"
	"github.com/marianaakuma/Projeto-Full-Stack1/controllers"
	"github.com/marianaakuma/Projeto-Full-Stack1/middleware"
	"github.com/marianaakuma/Projeto-Full-Stack1/utils"
)

// SetupRouter wires routes, middlewares, and controllers.
func SetupRouter(db *gorm.DB) *gin.Engine {
	cfg := config.Get()
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RequestLogger())
	r.Use(middleware.Recovery())

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	r.GET("/health", func(ctx *gin.Context) {
		utils.Success(ctx, gin.H{"status": "ok"})
	})

	authController := controllers.NewAuthController(db)
	postController := controllers.NewPostController(db)
	commentController := controllers.NewCommentController(db)

	auth := r.Group("/auth")
	auth.POST("/register", authController.Register)
	auth.POST("/login", authController.Login)
	auth.POST("/logout", middleware.AuthRequired(), authController.Logout)
	auth.GET("/me", middleware.AuthRequired(), authController.Me)

	// Listing is public; everything else under /posts requires a bearer token.
	r.GET("/posts", postController.ListPosts)
	posts := r.Group("/posts")
	posts.Use(middleware.AuthRequired())
	posts.POST("", postController.CreatePost)
	posts.GET("/:id", postController.GetPost)
	posts.PUT("/:id", postController.UpdatePost)
	posts.DELETE("/:id", postController.DeletePost)

	comments := r.Group("/comments")
	comments.Use(middleware.AuthRequired())
	comments.GET("/:postId", commentController.ListComments)
	comments.POST("/:postId", commentController.CreateComment)
	comments.PUT("/:postId/:commentId", commentController.UpdateComment)
	comments.DELETE("/:postId/:commentId", commentController.DeleteComment)

	r.NoRoute(func(ctx *gin.Context) {
		utils.Error(ctx, http.StatusNotFound, 40400, "route not found")
	})

	return r
}
