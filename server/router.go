package server

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"vidsocial/domain/repository"
	httpHandler "vidsocial/interfaces/http"
	"vidsocial/interfaces/middleware"
)

// Handlers groups everything InitiateRouter mounts.
type Handlers struct {
	User         httpHandler.IUserHandler
	Video        httpHandler.IVideoHandler
	Tweet        httpHandler.ITweetHandler
	Comment      httpHandler.ICommentHandler
	Like         httpHandler.ILikeHandler
	Subscription httpHandler.ISubscriptionHandler
	Health       httpHandler.IHealthHandler
	// Notifications streams activity events. Nil disables the route.
	Notifications gin.HandlerFunc
}

type Options struct {
	AllowOrigins []string
	SecretKey    string
	RateLimitRPS float64
	RateBurst    int
}

func InitiateRouter(handlers Handlers, userRepository repository.IUser, opts Options) *gin.Engine {
	origins := opts.AllowOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Metrics())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	v1 := router.Group("/api/v1")
	v1.GET("/healthz", handlers.Health.Healthz)
	v1.GET("/metrics", middleware.MetricsHandler())

	limiter := middleware.NewIPRateLimiter(opts.RateLimitRPS, opts.RateBurst)
	v1.POST("/users/register", limiter.Handler(), handlers.User.Register)
	v1.POST("/users/login", limiter.Handler(), handlers.User.Login)

	api := v1.Group("")
	api.Use(middleware.Auth(userRepository, opts.SecretKey))

	users := api.Group("/users")
	{
		users.POST("/logout", handlers.User.Logout)
		users.GET("/current-user", handlers.User.CurrentUser)
		users.PATCH("/update-account", handlers.User.UpdateAccount)
		users.GET("/c/:username", handlers.User.ChannelProfile)
	}

	videos := api.Group("/videos")
	{
		videos.GET("", handlers.Video.List)
		videos.POST("", handlers.Video.Publish)
		videos.GET("/:videoId", handlers.Video.Get)
		videos.PATCH("/:videoId", handlers.Video.Update)
		videos.DELETE("/:videoId", handlers.Video.Delete)
		videos.PATCH("/toggle/publish/:videoId", handlers.Video.TogglePublish)
		videos.PATCH("/views/:videoId", handlers.Video.IncrementViews)
	}

	tweets := api.Group("/tweets")
	{
		tweets.GET("", handlers.Tweet.List)
		tweets.POST("", handlers.Tweet.Create)
		tweets.GET("/user/:userId", handlers.Tweet.ListByUser)
		tweets.PATCH("/:tweetId", handlers.Tweet.Update)
		tweets.DELETE("/:tweetId", handlers.Tweet.Delete)
	}

	comments := api.Group("/comments")
	{
		comments.GET("/:videoId", handlers.Comment.List)
		comments.POST("/:videoId", handlers.Comment.Add)
		comments.PATCH("/c/:commentId", handlers.Comment.Update)
		comments.DELETE("/c/:commentId", handlers.Comment.Delete)
	}

	likes := api.Group("/likes")
	{
		likes.POST("/toggle/v/:videoId", handlers.Like.ToggleVideo)
		likes.POST("/toggle/c/:commentId", handlers.Like.ToggleComment)
		likes.POST("/toggle/t/:tweetId", handlers.Like.ToggleTweet)
		likes.GET("", handlers.Like.LikedVideos)
	}

	subscriptions := api.Group("/subscriptions")
	{
		subscriptions.GET("", handlers.Subscription.SubscribedChannels)
		subscriptions.POST("/c/:channelId", handlers.Subscription.Toggle)
		subscriptions.GET("/c/:channelId/subscribers", handlers.Subscription.Subscribers)
		subscriptions.GET("/u/:subscriberId", handlers.Subscription.SubscribedChannels)
	}

	if handlers.Notifications != nil {
		api.GET("/notifications/stream", handlers.Notifications)
	}

	return router
}
