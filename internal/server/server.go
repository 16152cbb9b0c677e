package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"taskboard/internal/auth"
	"taskboard/internal/config"
	"taskboard/internal/handler"
	"taskboard/internal/middleware"
	"taskboard/internal/migrations"
	"taskboard/internal/repository"
	"taskboard/internal/repository/mongorepo"
	"taskboard/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type Server struct {
	Engine *gin.Engine
	Config *config.Config
	Logger *log.Logger

	closers []func(context.Context) error
}

// Stores is the persistence the handlers run on.
type Stores struct {
	Boards repository.BoardRepositoryInterface
	Users  repository.UserRepositoryInterface
}

// RouterDeps is everything NewRouter needs. Registry may be nil, in which case
// a fresh one is created.
type RouterDeps struct {
	Stores   Stores
	Tokens   *auth.TokenManager
	Logger   *log.Logger
	Registry *prometheus.Registry

	// CORSOrigins empty allows any origin.
	CORSOrigins []string
}

func Init(ctx context.Context, cfg *config.Config, logger *log.Logger) (*Server, error) {
	s := &Server{Config: cfg, Logger: logger}

	stores, err := s.openStores(ctx)
	if err != nil {
		s.close(ctx)
		return nil, err
	}

	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			s.close(ctx)
			return nil, fmt.Errorf("❌ invalid REDIS_URL: %w", err)
		}
		client := redis.NewClient(opts)
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			s.close(ctx)
			return nil, fmt.Errorf("❌ failed to connect to redis: %w", err)
		}
		s.closers = append(s.closers, func(context.Context) error { return client.Close() })
		stores.Boards = repository.NewBoardCache(stores.Boards, client, cfg.BoardCacheTTL, logger)
		logger.WithField("ttl", cfg.BoardCacheTTL).Info("✅ Board cache enabled")
	}

	gin.SetMode(cfg.GinMode)
	s.Engine = NewRouter(RouterDeps{
		Stores: stores,
		Tokens: auth.NewTokenManager(cfg.JWTSecret, cfg.JWTExpiry()),
		Logger: logger,

		CORSOrigins: cfg.CORSAllowedOrigins,
	})
	return s, nil
}

func (s *Server) openStores(ctx context.Context) (Stores, error) {
	switch s.Config.StorageDriver {
	case config.DriverMongo:
		client, err := mongorepo.Connect(ctx, s.Config.MongoURI)
		if err != nil {
			return Stores{}, fmt.Errorf("❌ failed to connect to mongo: %w", err)
		}
		s.closers = append(s.closers, client.Disconnect)

		db := client.Database(s.Config.MongoDatabase)
		if err := mongorepo.EnsureIndexes(ctx, db); err != nil {
			return Stores{}, fmt.Errorf("❌ failed to create mongo indexes: %w", err)
		}
		s.Logger.WithField("database", s.Config.MongoDatabase).Info("✅ Connected to mongo")
		return Stores{
			Boards: mongorepo.NewBoardRepository(db),
			Users:  mongorepo.NewUserRepository(db),
		}, nil

	default:
		if s.Config.AutoMigrate {
			if err := migrations.Up(s.Config.MigrateURL()); err != nil {
				return Stores{}, fmt.Errorf("❌ failed to migrate database: %w", err)
			}
			s.Logger.Info("✅ Database schema is up to date")
		}

		db, err := gorm.Open(postgres.Open(s.Config.PostgresDSN()), &gorm.Config{
			Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
			TranslateError: true,
		})
		if err != nil {
			return Stores{}, fmt.Errorf("❌ failed to connect to DB: %w", err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			return Stores{}, fmt.Errorf("❌ failed to get DB handle: %w", err)
		}
		s.closers = append(s.closers, func(context.Context) error { return sqlDB.Close() })
		s.Logger.Info("✅ Connected to database")
		return Stores{
			Boards: repository.NewBoardRepository(db),
			Users:  repository.NewUserRepository(db),
		}, nil
	}
}

func NewRouter(deps RouterDeps) *gin.Engine {
	reg := deps.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	metrics := middleware.NewMetrics(reg)

	boards := service.NewBoardService(deps.Stores.Boards, deps.Stores.Users, deps.Logger)
	userHandler := handler.NewUserHandler(deps.Stores.Users, deps.Tokens, deps.Logger)
	boardHandler := handler.NewBoardHandler(boards, deps.Stores.Users, deps.Logger)

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(deps.Logger), metrics.Handler(), corsHandler(deps.CORSOrigins))

	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Public routes
	r.POST("/auth/register", userHandler.Register)
	r.POST("/auth/login", userHandler.Login)

	// Protected routes - require authentication
	authorized := r.Group("/")
	authorized.Use(middleware.JWTAuthMiddleware(deps.Tokens))
	{
		authorized.GET("/auth/me", userHandler.Me)

		// Board routes
		authorized.GET("/boards", boardHandler.ListOwned)
		authorized.GET("/boards/shared", boardHandler.ListShared)
		authorized.GET("/boards/:id", boardHandler.Get)
		authorized.POST("/boards", boardHandler.Create)
		authorized.POST("/boards/:id/share", boardHandler.Share)

		// Task routes
		authorized.POST("/boards/:id/tasks", boardHandler.AddTask)
		authorized.PUT("/boards/:id/tasks/:taskId", boardHandler.UpdateTask)
		authorized.POST("/boards/:id/tasks/:taskId/complete", boardHandler.CompleteTask)
		authorized.DELETE("/boards/:id/tasks/:taskId", boardHandler.DeleteTask)
	}
	return r
}

// corsHandler lets the browser client call the API from another origin.
func corsHandler(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}

func (s *Server) Run() {
	srv := &http.Server{
		Addr:              ":" + s.Config.ServerPort,
		Handler:           s.Engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		s.Logger.Infof("🚀 Server running on port %s", s.Config.ServerPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.Logger.Fatalf("❌ Failed to listen: %s", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	s.Logger.Info("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		s.Logger.Fatalf("❌ Server forced to shutdown: %s", err)
	}
	s.close(ctx)

	s.Logger.Info("✅ Server exited properly")
}

// close releases connections in reverse order of opening.
func (s *Server) close(ctx context.Context) {
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](ctx); err != nil {
			s.Logger.WithError(err).Warn("failed to close connection")
		}
	}
	s.closers = nil
}
