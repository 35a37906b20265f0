package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"mango/internal/config"
	"mango/internal/handler"
	videoHandler "mango/internal/handler/video"
	"mango/internal/pkg/cache"
	"mango/internal/pkg/mongodb"
	"mango/internal/pkg/storage"
	"mango/internal/pkg/storagefactory"
	"mango/internal/server/middleware"
	videoService "mango/internal/service/video"
)

// Server HTTP 服务器
type Server struct {
	cfg      *config.Config
	engine   *gin.Engine
	mongo    *mongodb.Client
	redis    *cache.RedisCache
	videoSvc videoService.VideoService
}

// New 创建服务器实例
func New(cfg *config.Config) (*Server, error) {
	// 设置 Gin 模式
	switch cfg.Server.Mode {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	// 创建 Gin 引擎
	engine := gin.New()

	// 初始化 MongoDB (可选，缺失时不落请求历史)
	var mongoClient *mongodb.Client
	if cfg.Mongo.URI != "" {
		client, err := mongodb.New(&cfg.Mongo)
		if err != nil {
			log.Warn().Err(err).Msg("failed to connect to MongoDB, continuing without it")
		} else {
			mongoClient = client
			log.Info().Str("database", cfg.Mongo.Database).Msg("connected to MongoDB")

			// 创建索引
			if err := mongodb.EnsureIndexes(mongoClient.Database()); err != nil {
				log.Warn().Err(err).Msg("failed to ensure indexes")
			}
		}
	}

	// 初始化 Redis (可选，缺失时模型清单不走缓存)
	var redisCache *cache.RedisCache
	if cfg.Redis.Addr != "" {
		rc, err := cache.NewRedisCache(&cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("failed to connect to Redis, continuing without it")
		} else {
			redisCache = rc
			log.Info().Str("addr", cfg.Redis.Addr).Msg("connected to Redis")
		}
	}

	// 初始化存储 (可选，缺失时成片只留在本地输出目录)
	var store storage.Storage
	if cfg.Storage.Type != "" {
		st, err := storagefactory.NewStorage(context.Background(), &cfg.Storage)
		if err != nil {
			log.Warn().Err(err).Msg("failed to initialize storage, continuing without publishing")
		} else {
			store = st
			log.Info().Str("type", st.GetStorageType()).Msg("initialized storage")
		}
	}

	var db *mongo.Database
	if mongoClient != nil {
		db = mongoClient.Database()
	}

	videoSvc, err := videoService.NewVideoService(cfg, db, redisCache, store)
	if err != nil {
		return nil, err
	}

	srv := &Server{
		cfg:      cfg,
		engine:   engine,
		mongo:    mongoClient,
		redis:    redisCache,
		videoSvc: videoSvc,
	}

	// 设置路由
	srv.setupRoutes()

	return srv, nil
}

// setupRoutes 设置路由
func (s *Server) setupRoutes() {
	// 全局中间件
	s.engine.Use(middleware.Recovery())
	s.engine.Use(middleware.RequestID())
	s.engine.Use(middleware.Logger())
	s.engine.Use(middleware.CORS())

	// 健康检查
	healthHandler := handler.NewHealthHandler()
	s.engine.GET("/health", healthHandler.Health)
	s.engine.GET("/ready", healthHandler.Ready)

	// Swagger 文档
	s.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 本地存储时直接挂静态目录对外提供成片访问
	if s.cfg.Storage.Type == string(storage.StorageTypeLocal) && s.cfg.Storage.Local != nil {
		s.engine.Static("/files", s.cfg.Storage.Local.BasePath)
	}

	// API v1
	v1 := s.engine.Group("/api/v1")
	{
		videoHdl := videoHandler.NewHandler(s.videoSvc)

		videos := v1.Group("/videos")
		{
			videos.POST("/generate", videoHdl.GenerateVideo)
			videos.GET("/requests", videoHdl.ListRequests)
			videos.GET("/requests/:id", videoHdl.GetRequest)
			videos.GET("/models", videoHdl.ListModels)
		}
	}
}

// Run 启动服务器
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.engine,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
	}

	// 启动服务器
	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// 等待关闭信号或错误
	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down server...")

		// 关闭连接
		if s.mongo != nil {
			if err := s.mongo.Close(context.Background()); err != nil {
				log.Error().Err(err).Msg("failed to close MongoDB connection")
			}
		}
		if s.redis != nil {
			if err := s.redis.Close(); err != nil {
				log.Error().Err(err).Msg("failed to close Redis connection")
			}
		}

		return srv.Shutdown(context.Background())
	case err := <-errCh:
		return err
	}
}

// Engine 获取 Gin 引擎 (用于测试)
func (s *Server) Engine() *gin.Engine {
	return s.engine
}
