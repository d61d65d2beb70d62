// Package main 是服务端的入口点
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"artfolio-server/internal/cache"
	"artfolio-server/internal/config"
	"artfolio-server/internal/handler"
	"artfolio-server/internal/middleware"
	"artfolio-server/internal/model"
	"artfolio-server/internal/repository"
	"artfolio-server/internal/service"
	"artfolio-server/pkg/jwt"
)

func main() {
	// 加载配置
	cfg, err := config.Load("./configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 初始化数据库
	db, err := initDatabase(cfg)
	if err != nil {
		log.Fatalf("Failed to init database: %v", err)
	}

	// 自动迁移数据库表
	if err := autoMigrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// 初始化 Redis
	redisCache, err := cache.NewRedisCache(cfg)
	if err != nil {
		log.Fatalf("Failed to init redis: %v", err)
	}

	// 初始化 JWT 服务
	jwtService := jwt.NewJWTService(
		cfg.JWT.Secret,
		cfg.JWT.AccessExpire,
		cfg.JWT.RefreshExpire,
	)

	// 初始化 Repository 层
	userRepo := repository.NewUserRepository(db)
	artworkRepo := repository.NewArtworkRepository(db)
	collectionRepo := repository.NewCollectionRepository(db)
	dictRepo := repository.NewDictionaryRepository(db)
	stickyNoteRepo := repository.NewStickyNoteRepository(db)
	statsRepo := repository.NewStatsRepository(db)

	// 播种默认字典数据
	if err := dictRepo.SeedDefaults(context.Background()); err != nil {
		log.Fatalf("Failed to seed dictionaries: %v", err)
	}

	// 初始化 Service 层
	authService := service.NewAuthService(userRepo, redisCache, jwtService)
	userService := service.NewUserService(userRepo)
	artworkService := service.NewArtworkService(artworkRepo, dictRepo)
	trackerService := service.NewTrackerService(db)
	statsService := service.NewStatsService(statsRepo)
	collectionService := service.NewCollectionService(collectionRepo, artworkRepo)
	dictService := service.NewDictionaryService(dictRepo)
	stickyNoteService := service.NewStickyNoteService(stickyNoteRepo)

	// 初始化 Handler 层
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	artworkHandler := handler.NewArtworkHandler(artworkService)
	trackerHandler := handler.NewTrackerHandler(trackerService)
	statsHandler := handler.NewStatsHandler(statsService)
	collectionHandler := handler.NewCollectionHandler(collectionService)
	dictHandler := handler.NewDictionaryHandler(dictService)
	stickyNoteHandler := handler.NewStickyNoteHandler(stickyNoteService)
	uploadHandler := handler.NewUploadHandler(&cfg.Upload)

	// 设置 Gin 模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 创建 Gin 引擎
	router := gin.New()

	// 全局中间件
	router.Use(gin.Recovery())                             // 恢复 panic
	router.Use(middleware.LoggerMiddleware())              // 请求日志
	router.Use(middleware.CORSMiddleware(cfg.Server.CORS)) // CORS

	// 上传文件的静态访问
	router.Static("/uploads", cfg.Upload.Dir)

	// 注册路由
	registerRoutes(router, jwtService, redisCache,
		authHandler, userHandler, artworkHandler, trackerHandler,
		statsHandler, collectionHandler, dictHandler, stickyNoteHandler,
		uploadHandler)

	// 创建 HTTP 服务器
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	// 在 goroutine 中启动服务器
	go func() {
		log.Printf("Server starting on %s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	if err := redisCache.Close(); err != nil {
		log.Printf("Failed to close redis: %v", err)
	}

	log.Println("Server exited")
}

// initDatabase 初始化 SQLite 数据库连接
func initDatabase(cfg *config.Config) (*gorm.DB, error) {
	// 确保数据库目录存在
	if dir := filepath.Dir(cfg.SQLite.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create data dir: %w", err)
		}
	}

	// 配置 GORM logger
	gormLogger := logger.Default.LogMode(logger.Warn)
	if cfg.SQLite.LogMode {
		gormLogger = logger.Default.LogMode(logger.Info)
	}

	db, err := gorm.Open(sqlite.Open(cfg.SQLite.Path), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	// SQLite 运行参数
	// WAL 提高并发读写能力，外键约束保证级联关系
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if err := db.Exec(pragma).Error; err != nil {
			return nil, fmt.Errorf("failed to apply %q: %w", pragma, err)
		}
	}

	log.Println("Database connected successfully")
	return db, nil
}

// autoMigrate 自动迁移数据库表
func autoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	if err := db.AutoMigrate(
		&model.User{},
		&model.Genre{},
		&model.Style{},
		&model.Material{},
		&model.Tag{},
		&model.Artwork{},
		&model.ArtworkImage{},
		&model.Session{},
		&model.Note{},
		&model.Collection{},
		&model.CollectionItem{},
		&model.StickyNote{},
	); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}

	log.Println("Database migrations completed")
	return nil
}

// registerRoutes 注册所有路由
func registerRoutes(
	router *gin.Engine,
	jwtService *jwt.JWTService,
	redisCache *cache.RedisCache,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	artworkHandler *handler.ArtworkHandler,
	trackerHandler *handler.TrackerHandler,
	statsHandler *handler.StatsHandler,
	collectionHandler *handler.CollectionHandler,
	dictHandler *handler.DictionaryHandler,
	stickyNoteHandler *handler.StickyNoteHandler,
	uploadHandler *handler.UploadHandler,
) {
	// 健康检查
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 路由组
	v1 := router.Group("/api/v1")

	// 认证相关（无需登录）
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.RefreshToken)
	}

	// 以下路由都需要登录
	authed := v1.Group("")
	authed.Use(middleware.AuthMiddleware(jwtService, redisCache))

	authed.POST("/auth/logout", authHandler.Logout)

	// 用户
	users := authed.Group("/users")
	{
		users.GET("/me", userHandler.GetProfile)
		users.PUT("/me", userHandler.UpdateProfile)
		users.PUT("/me/password", userHandler.ChangePassword)
	}

	// 作品与画廊
	artworks := authed.Group("/artworks")
	{
		artworks.POST("", artworkHandler.Create)
		artworks.GET("", artworkHandler.List)
		artworks.GET("/:id", artworkHandler.Get)
		artworks.PUT("/:id", artworkHandler.Update)
		artworks.DELETE("/:id", artworkHandler.Delete)
		artworks.GET("/:id/sessions", trackerHandler.History)
		artworks.POST("/:id/images", artworkHandler.AddImage)
		artworks.DELETE("/:id/images/:imageId", artworkHandler.DeleteImage)
		artworks.PUT("/:id/images/:imageId/cover", artworkHandler.SetCover)
	}

	// 创作计时器
	tracker := authed.Group("/tracker")
	{
		tracker.GET("/current", trackerHandler.Current)
		tracker.POST("/start", trackerHandler.Start)
		tracker.POST("/pause", trackerHandler.Pause)
		tracker.POST("/stop", trackerHandler.Stop)
		tracker.POST("/discard", trackerHandler.Discard)
	}

	// 统计
	authed.GET("/stats", statsHandler.Get)

	// 合集
	collections := authed.Group("/collections")
	{
		collections.POST("", collectionHandler.Create)
		collections.GET("", collectionHandler.List)
		collections.GET("/:id", collectionHandler.Get)
		collections.PUT("/:id", collectionHandler.Update)
		collections.DELETE("/:id", collectionHandler.Delete)
		collections.POST("/:id/items", collectionHandler.AddItem)
		collections.DELETE("/:id/items/:artworkId", collectionHandler.RemoveItem)
	}

	// 字典与标签
	authed.GET("/dictionaries", dictHandler.List)
	tags := authed.Group("/tags")
	{
		tags.GET("", dictHandler.ListTags)
		tags.POST("", dictHandler.CreateTag)
		tags.DELETE("/:id", dictHandler.DeleteTag)
	}

	// 便签
	stickyNotes := authed.Group("/sticky-notes")
	{
		stickyNotes.POST("", stickyNoteHandler.Create)
		stickyNotes.GET("", stickyNoteHandler.List)
		stickyNotes.PUT("/:id", stickyNoteHandler.Update)
		stickyNotes.DELETE("/:id", stickyNoteHandler.Delete)
	}

	// 照片上传
	authed.POST("/upload", uploadHandler.Upload)
}
