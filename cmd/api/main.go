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

	"vidhub-go/internal/api/handler"
	"vidhub-go/internal/api/middleware"
	"vidhub-go/internal/api/router"
	"vidhub-go/internal/config"
	"vidhub-go/internal/infra/database"
	infraES "vidhub-go/internal/infra/elasticsearch"
	infraKafka "vidhub-go/internal/infra/kafka"
	infraMinio "vidhub-go/internal/infra/minio"
	infraRedis "vidhub-go/internal/infra/redis"
	infraS3 "vidhub-go/internal/infra/s3"
	"vidhub-go/internal/media"
	"vidhub-go/internal/model"
	"vidhub-go/internal/repository"
	"vidhub-go/internal/service"
	"vidhub-go/pkg/logger"

	_ "vidhub-go/api/openapi"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// @title VidHub API
// @version 1.0
// @description 视频分享平台 API 服务

// @host 127.0.0.1:8000
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description 输入格式: Bearer {token}

func main() {
	// 加载配置文件
	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 初始化日志系统
	if err := logger.Init(
		cfg.Log.Level,
		cfg.Log.Format,
		cfg.Log.Output,
		cfg.Log.FilePath,
	); err != nil {
		panic(fmt.Sprintf("Failed to init logger: %v", err))
	}
	defer logger.Sync()

	// 初始化数据库
	db, err := database.Open(&cfg.Database, cfg.App.Mode == gin.DebugMode)
	if err != nil {
		logger.Fatal("Failed to init database", zap.Error(err))
	}
	defer database.Close(db)

	if err := database.AutoMigrate(db, model.All()...); err != nil {
		logger.Fatal("Failed to auto migrate", zap.Error(err))
	}

	// 初始化Redis（access token 注销名单）
	redisCtx, redisCancel := context.WithTimeout(context.Background(), 5*time.Second)
	rdb, err := infraRedis.Open(redisCtx, &cfg.Redis)
	redisCancel()
	if err != nil {
		logger.Fatal("Failed to init redis", zap.Error(err))
	}
	defer infraRedis.Close(rdb)
	denylist := infraRedis.NewTokenDenylist(rdb)

	// 初始化媒体存储
	backend, err := newMediaBackend(cfg)
	if err != nil {
		logger.Fatal("Failed to init media storage", zap.String("driver", cfg.Media.Driver), zap.Error(err))
	}
	store := media.NewBridge(backend, media.NewFFprobe(cfg.Media.FFprobePath), media.Limits{
		MaxImageBytes: cfg.Media.MaxImageSizeMB << 20,
		MaxVideoBytes: cfg.Media.MaxVideoSizeMB << 20,
		Timeout:       cfg.Media.UploadTimeoutDuration(),
	})
	if err := os.MkdirAll(cfg.Media.TempDir, 0o755); err != nil {
		logger.Fatal("Failed to create temp dir", zap.String("dir", cfg.Media.TempDir), zap.Error(err))
	}

	// 初始化Kafka生产者（可选，失败则不发布视频事件）
	var events service.VideoEventPublisher
	if err := infraKafka.InitProducer(&cfg.Kafka); err != nil {
		logger.Warn("Kafka producer init failed, video events disabled", zap.Error(err))
	} else {
		defer infraKafka.CloseProducer()
		events = infraKafka.NewVideoEventPublisher(cfg.Kafka.Topics["video_events"])
	}

	// 初始化 Elasticsearch（可选，失败则搜索降级到 DB）
	var searcher service.VideoSearcher
	if err := infraES.Init(&cfg.Elasticsearch); err != nil {
		logger.Warn("Elasticsearch init failed, search will fallback to DB", zap.Error(err))
	} else {
		defer infraES.Close()
		index := infraES.NewVideoIndex(infraES.Get(), cfg.Elasticsearch.VideosIndex())
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := index.Ensure(ctx); err != nil {
			logger.Warn("Elasticsearch index init failed, search will fallback to DB", zap.Error(err))
		} else {
			searcher = index
		}
		cancel()
	}

	// 初始化依赖（Repository -> Service -> Handler）
	userRepo := repository.NewUserRepository(db)
	videoRepo := repository.NewVideoRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	tweetRepo := repository.NewTweetRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	subRepo := repository.NewSubscriptionRepository(db)
	playlistRepo := repository.NewPlaylistRepository(db)

	authService := service.NewAuthService(userRepo, store, denylist)
	userService := service.NewUserService(userRepo, subRepo, store)
	videoService := service.NewVideoService(videoRepo, userRepo, likeRepo, subRepo, store, events, searcher)
	commentService := service.NewCommentService(commentRepo, videoRepo, likeRepo)
	tweetService := service.NewTweetService(tweetRepo, userRepo, likeRepo)
	likeService := service.NewLikeService(likeRepo, videoRepo, commentRepo, tweetRepo)
	subscriptionService := service.NewSubscriptionService(subRepo, userRepo, videoRepo)
	playlistService := service.NewPlaylistService(playlistRepo, videoRepo, userRepo)

	uploads := handler.Uploads{Dir: cfg.Media.TempDir}
	cookies := handler.CookieSettings{
		Domain:     cfg.Cookie.Domain,
		Secure:     cfg.Cookie.Secure,
		AccessTTL:  cfg.JWT.AccessExpireDuration(),
		RefreshTTL: cfg.JWT.RefreshExpireDuration(),
	}

	handlers := router.Handlers{
		Auth:         handler.NewAuthHandler(authService, uploads, cookies),
		User:         handler.NewUserHandler(userService, uploads),
		Video:        handler.NewVideoHandler(videoService, uploads),
		Comment:      handler.NewCommentHandler(commentService),
		Tweet:        handler.NewTweetHandler(tweetService),
		Like:         handler.NewLikeHandler(likeService),
		Subscription: handler.NewSubscriptionHandler(subscriptionService),
		Playlist:     handler.NewPlaylistHandler(playlistService),
	}

	// 设置Gin模式
	gin.SetMode(cfg.App.Mode)

	// 创建Gin路由器（不使用默认中间件）
	r := gin.New()

	limiter, err := middleware.RateLimit(&cfg.RateLimit)
	if err != nil {
		logger.Fatal("Failed to init rate limiter", zap.Error(err))
	}

	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(&cfg.CORS))
	r.Use(limiter)

	// 注册基础路由
	r.GET("/healthz", healthCheckHandler(&cfg.App))
	r.GET("/", rootHandler(&cfg.App))

	// Swagger 文档路由
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 注册业务路由
	router.Setup(r, handlers, middleware.AuthRequired(denylist), middleware.OptionalAuth(denylist))

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	logger.Info("Starting application",
		zap.String("name", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("mode", cfg.App.Mode),
		zap.String("addr", addr),
	)
	logger.Info("Configuration loaded",
		zap.String("database", fmt.Sprintf("%s@%s:%d/%s", cfg.Database.User, cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)),
		zap.String("redis", cfg.Redis.Addr()),
		zap.String("media_driver", cfg.Media.Driver),
		zap.Bool("search_enabled", searcher != nil),
		zap.Bool("events_enabled", events != nil),
	)

	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// 监听系统信号，优雅退出
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	logger.Info("Received signal, shutting down", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}
	logger.Info("Server exited")
}

// newMediaBackend 按 media.driver 选择对象存储
func newMediaBackend(cfg *config.Config) (media.Backend, error) {
	switch cfg.Media.Driver {
	case "", "minio":
		if err := infraMinio.Init(&cfg.MinIO); err != nil {
			return nil, err
		}
		return infraMinio.NewBucket(&cfg.MinIO), nil
	case "s3":
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return infraS3.NewBucket(ctx, &cfg.S3)
	default:
		return nil, fmt.Errorf("unknown media driver %q", cfg.Media.Driver)
	}
}

// healthCheckHandler 健康检查接口
func healthCheckHandler(app *config.AppConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger.Debug("Health check requested", zap.String("ip", c.ClientIP()))

		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"message":   "Service is healthy",
			"timestamp": time.Now().Format(time.RFC3339),
			"service":   app.Name,
			"version":   app.Version,
			"mode":      app.Mode,
		})
	}
}

// rootHandler 根路径处理器
func rootHandler(app *config.AppConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": fmt.Sprintf("Welcome to %s API", app.Name),
			"project": app.Name,
			"version": app.Version,
			"mode":    app.Mode,
			"docs":    fmt.Sprintf("http://localhost:%d/swagger/index.html", app.Port),
		})
	}
}
