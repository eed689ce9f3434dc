package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"golang.org/x/sync/errgroup"
	"vidsocial/domain/repository"
	"vidsocial/infrastructure/cache"
	"vidsocial/infrastructure/configuration"
	"vidsocial/infrastructure/events"
	"vidsocial/infrastructure/logger"
	"vidsocial/infrastructure/persistence"
	"vidsocial/infrastructure/pubsub"
	"vidsocial/infrastructure/realtime"
	"vidsocial/infrastructure/servicebus"
	"vidsocial/infrastructure/storage"
	httpHandler "vidsocial/interfaces/http"
	"vidsocial/server"
	"vidsocial/usecase"
)

var httpServer *http.Server

func recoverPanic() {
	if err := recover(); err != nil {
		logger.GetLogger().WithField("error", err).Error("Application panic recovered")
	}
}

func main() {
	defer recoverPanic()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(interrupt)

	g, ctx := errgroup.WithContext(ctx)

	cfg := configuration.C
	app := cfg.App

	mongoClient, err := persistence.NewMongoDb(
		cfg.Database.Mongo.URI,
		cfg.Database.Mongo.Host,
		cfg.Database.Mongo.Port,
		cfg.Database.Mongo.User,
		cfg.Database.Mongo.Password,
	)
	if err != nil {
		logger.GetLogger().WithField("error", err).Fatal("MongoDB client initialization failed")
	}
	if err := persistence.PingMongo(ctx, mongoClient); err != nil {
		logger.GetLogger().WithField("error", err).Fatal("MongoDB ping failed")
	}
	db := mongoClient.Database(cfg.Database.Mongo.Name)
	if err := persistence.EnsureIndexes(ctx, db); err != nil {
		logger.GetLogger().WithField("error", err).Fatal("Ensure MongoDB indexes failed")
	}
	logger.GetLogger().WithField("database", cfg.Database.Mongo.Name).Info("MongoDB connected successfully")

	var redisClient *redis.Client
	if addr := cfg.RedisClient.Addr(); addr != "" {
		redisClient, err = cache.NewCache(ctx, addr, cfg.RedisClient.Username, cfg.RedisClient.Password, cfg.RedisClient.Database)
		if err != nil {
			logger.GetLogger().WithField("error", err).Warn("Redis not available - video cache disabled")
			redisClient = nil
		} else {
			logger.GetLogger().Info("Redis client initialized successfully.")
		}
	}

	mediaCfg := storage.Config{
		Endpoint:      cfg.Media.Endpoint,
		AccessKey:     cfg.Media.AccessKey,
		SecretKey:     cfg.Media.SecretKey,
		UseSSL:        cfg.Media.UseSSL,
		Bucket:        cfg.Media.Bucket,
		Region:        cfg.Media.Region,
		PublicBaseURL: cfg.Media.PublicBaseURL,
	}
	minioClient, err := storage.NewMinioClient(ctx, mediaCfg)
	if err != nil {
		logger.GetLogger().WithField("error", err).Fatal("Media storage initialization failed")
	}
	media := storage.NewMediaStorage(minioClient, mediaCfg)

	hub := realtime.NewActivityHub()
	sinks := []repository.IEventPublisher{hub}
	var closers []func(context.Context)

	if publisher, err := pubsub.Open(ctx, cfg.Pubsub.ProjectID, cfg.Pubsub.CredentialsFile, cfg.Pubsub.TopicID); err != nil {
		logger.GetLogger().WithField("error", err).Warn("PubSub not available - continuing without PubSub sink")
	} else {
		sinks = append(sinks, publisher)
		closers = append(closers, func(context.Context) { publisher.Close() })
	}

	if publisher, err := servicebus.Open(ctx, cfg.ServiceBus.Namespace, cfg.ServiceBus.ConnectionString, cfg.ServiceBus.Queue); err != nil {
		logger.GetLogger().WithField("error", err).Warn("Azure Service Bus not available - continuing without Service Bus sink")
	} else {
		sinks = append(sinks, publisher)
		closers = append(closers, publisher.Close)
	}
	activity := events.NewFanout(sinks...)

	userRepository := persistence.NewUserRepository(db)
	videoRepository := persistence.NewVideoRepository(db)
	tweetRepository := persistence.NewTweetRepository(db)
	commentRepository := persistence.NewCommentRepository(db)
	likeRepository := persistence.NewLikeRepository(db)
	subscriptionRepository := persistence.NewSubscriptionRepository(db)
	videoCache := cache.NewVideoCache(redisClient, cfg.RedisClient.VideoTTL)

	userUsecase := usecase.NewUserUsecase(userRepository, subscriptionRepository, media, app.SecretKey, app.AccessTokenTTL)
	videoUsecase := usecase.NewVideoUsecase(videoRepository, userRepository, media, videoCache, activity)
	tweetUsecase := usecase.NewTweetUsecase(tweetRepository, userRepository, likeRepository, activity)
	commentUsecase := usecase.NewCommentUsecase(commentRepository, videoRepository, userRepository, activity)
	likeUsecase := usecase.NewLikeUsecase(likeRepository, videoRepository, videoCache, activity)
	subscriptionUsecase := usecase.NewSubscriptionUsecase(subscriptionRepository, userRepository, activity)

	if err := httpHandler.RegisterValidators(); err != nil {
		logger.GetLogger().WithField("error", err).Fatal("Register binding validators failed")
	}
	spooler := httpHandler.NewSpooler(cfg.Media.TempDir, cfg.Media.MaxUploadMB)
	handlers := server.Handlers{
		User:         httpHandler.NewUserHandler(userUsecase, spooler, httpHandler.CookieOptions{Secure: app.CookieSecure, TTL: app.AccessTokenTTL}),
		Video:        httpHandler.NewVideoHandler(videoUsecase, spooler),
		Tweet:        httpHandler.NewTweetHandler(tweetUsecase),
		Comment:      httpHandler.NewCommentHandler(commentUsecase),
		Like:         httpHandler.NewLikeHandler(likeUsecase),
		Subscription: httpHandler.NewSubscriptionHandler(subscriptionUsecase),
		Health: httpHandler.NewHealthHandler(map[string]httpHandler.Check{
			"mongo": func(ctx context.Context) error { return persistence.PingMongo(ctx, mongoClient) },
			"redis": redisCheck(redisClient),
		}),
		Notifications: hub.Serve,
	}
	router := server.InitiateRouter(handlers, userRepository, server.Options{
		AllowOrigins: cfg.Cors.AllowOrigins,
		SecretKey:    app.SecretKey,
		RateLimitRPS: cfg.RateLimit.RPS,
		RateBurst:    cfg.RateLimit.Burst,
	})

	port := app.Port
	logger.GetLogger().WithFields(map[string]interface{}{"port": port, "tls": app.TLSEnabled}).Info("Starting application")
	g.Go(func() error {
		httpServer = &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		}
		if app.TLSEnabled {
			cert := app.TLSCertFile
			key := app.TLSKeyFile
			if cert == "" || key == "" {
				logger.GetLogger().Error("TLS enabled but cert or key path empty; falling back to HTTP")
				if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
					return err
				}
			} else {
				logger.GetLogger().WithFields(map[string]interface{}{"cert": cert, "key": key}).Info("Serving HTTPS")
				if err := httpServer.ListenAndServeTLS(cert, key); !errors.Is(err, http.ErrServerClosed) {
					return err
				}
			}
		} else {
			if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
		}
		return nil
	})

	select {
	case <-interrupt:
		logger.GetLogger().Info("Application shutdown requested")
	case <-ctx.Done():
	}

	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if httpServer != nil {
		_ = httpServer.Shutdown(shutdownCtx)
	}
	for _, closeSink := range closers {
		closeSink(shutdownCtx)
	}
	disconnect(shutdownCtx, mongoClient, redisClient)

	if err := g.Wait(); err != nil {
		logger.GetLogger().WithField("error", err).Error("Server returned an error")
		os.Exit(2)
	}
}

func redisCheck(client *redis.Client) httpHandler.Check {
	if client == nil {
		return nil
	}
	return func(ctx context.Context) error { return client.Ping(ctx).Err() }
}

func disconnect(ctx context.Context, mongoClient *mongo.Client, redisClient *redis.Client) {
	if err := mongoClient.Disconnect(ctx); err != nil {
		logger.GetLogger().WithField("error", err).Warn("MongoDB disconnect failed")
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			logger.GetLogger().WithField("error", err).Warn("Redis close failed")
		}
	}
}
