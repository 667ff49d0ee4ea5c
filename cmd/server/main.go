package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"skill-exchange/config"
	"skill-exchange/internal/appstate"
	"skill-exchange/internal/export"
	"skill-exchange/internal/handler"
	"skill-exchange/internal/model"
	"skill-exchange/internal/repository"
	"skill-exchange/internal/service"
	dbPkg "skill-exchange/pkg/db"
	"skill-exchange/pkg/jwt"
	"skill-exchange/pkg/localstore"
	"skill-exchange/pkg/logger"
	redisPkg "skill-exchange/pkg/redis"
	"skill-exchange/pkg/response"
	"skill-exchange/pkg/sessionstore"
	"skill-exchange/pkg/websocket"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// 1. 加载配置
	cfg := config.LoadConfig()

	// 2. 初始化日志系统
	log := logger.InitLogger(cfg.Log)
	defer log.Sync()

	log.Info("=== 技能交换平台启动 ===")
	log.Info("服务器配置信息",
		zap.String("port", cfg.Server.Port),
		zap.String("mirror_host", cfg.Mirror.Host),
		zap.String("mirror_database", cfg.Mirror.Database),
		zap.String("data_dir", cfg.Session.DataDir),
		zap.Int("daily_connection_limit", cfg.Session.DailyConnectionLimit),
		zap.String("log_level", cfg.Log.Level),
	)

	// 3. 初始化本地持久存储（权威数据源）
	local, err := localstore.Open(cfg.Session.DataDir)
	if err != nil {
		log.Fatal("本地存储初始化失败", zap.Error(err))
	}
	defer func() {
		if err := local.Close(); err != nil {
			log.Error("关闭本地存储失败", zap.Error(err))
		}
	}()
	log.Info("本地存储就绪", zap.String("data_dir", cfg.Session.DataDir))

	// 4. 连接远端镜像库：失败不致命，全部远端操作降级为no-op
	if _, err := dbPkg.InitMirror(cfg.Mirror); err != nil {
		log.Warn("镜像库连接失败，远端同步不可用", zap.Error(err))
	} else {
		defer func() {
			if err := dbPkg.CloseDB(); err != nil {
				log.Error("关闭镜像库连接失败", zap.Error(err))
			}
		}()
		if err := dbPkg.AutoMigrate(&model.User{}, &model.FriendRequest{}); err != nil {
			log.Warn("镜像库自动迁移失败", zap.Error(err))
		}
		log.Info("镜像库连接成功")
	}

	// 5. 会话聊天存储：优先Redis，关闭或连接失败时退回内存实现
	var session sessionstore.Store = sessionstore.NewMemoryStore()
	if cfg.Redis.Enabled {
		if err := redisPkg.InitRedis(cfg.Redis); err != nil {
			log.Warn("Redis连接失败，会话聊天使用内存存储", zap.Error(err))
		} else {
			defer func() {
				if err := redisPkg.Close(); err != nil {
					log.Error("关闭Redis连接失败", zap.Error(err))
				}
			}()
			session = sessionstore.NewRedisStore(redisPkg.GetClient(), cfg.Session.ChatTTL)
			log.Info("Redis连接成功，会话聊天使用Redis存储")
		}
	}

	// 6. 初始化仓储与状态控制器
	mirrorDB := dbPkg.GetDB() // 可为nil
	var userRepo *repository.UserRepository
	var requestRepo *repository.FriendRequestRepository
	if mirrorDB != nil {
		userRepo = repository.NewUserRepository(mirrorDB)
		requestRepo = repository.NewFriendRequestRepository(mirrorDB)
	}

	state := appstate.New(
		cfg.Session,
		local,
		session,
		repository.NewMirror(mirrorDB),
		export.NewFileExporter(cfg.Session.ExportDir),
		appstate.WithPusher(websocket.GetManager()),
	)

	// 6.1 初始化业务服务与处理器
	jwtSvc := jwt.NewJWTService(cfg.JWT)
	authSvc := service.NewAuthService(userRepo, jwtSvc)
	directorySvc := service.NewDirectoryService(userRepo)

	authHandler := handler.NewAuthHandler(authSvc, state)
	stateHandler := handler.NewStateHandler(state)
	friendHandler := handler.NewFriendHandler(state, requestRepo, userRepo)
	messageHandler := handler.NewMessageHandler(state)
	directoryHandler := handler.NewDirectoryHandler(directorySvc, state)

	// 7. 设置Gin模式
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 8. 创建Gin路由
	router := gin.New()

	// 注入jwt_config/ws_config到Gin context，供WebSocket使用
	router.Use(func(c *gin.Context) {
		c.Set("jwt_config", cfg.JWT)
		c.Set("ws_config", cfg.WebSocket)
		c.Next()
	})

	router.Use(logger.LoggerMiddleware())
	router.Use(logger.ErrorLoggerMiddleware())

	// 9. 基础路由
	setupBasicRoutes(router, cfg)

	// 9.1 业务路由
	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			// 公开接口（无需认证）
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)

			authed := auth.Group("")
			authed.Use(jwtSvc.AuthMiddleware())
			{
				authed.POST("/logout", authHandler.Logout)
			}
		}

		// 会话状态
		v1.GET("/state", stateHandler.GetState)

		profile := v1.Group("/profile")
		profile.Use(jwtSvc.AuthMiddleware())
		{
			profile.POST("/complete", stateHandler.CompleteProfile)
			profile.PUT("", stateHandler.UpdateUser)
		}

		// 好友与连接额度
		friends := v1.Group("/friends")
		friends.Use(jwtSvc.AuthMiddleware())
		{
			friends.GET("", friendHandler.ListFriends)
			friends.GET("/requests", friendHandler.ListPendingRequests)
			friends.POST("/requests", friendHandler.SendRequest)
			friends.POST("/requests/accept", friendHandler.AcceptRequest)
			friends.POST("/requests/reject", friendHandler.RejectRequest)
			friends.GET("/connections", friendHandler.ConnectionsToday)
		}

		// 会话消息
		messages := v1.Group("/messages")
		messages.Use(jwtSvc.AuthMiddleware())
		{
			messages.POST("/send", messageHandler.SendMessage)
			messages.GET("", messageHandler.ListMessages)
		}

		// 技能广场
		directory := v1.Group("/directory")
		{
			directory.GET("/explore", directoryHandler.Explore)
			directory.GET("/search", directoryHandler.Search)
		}
	}

	// WebSocket路由
	router.GET("/ws", websocket.WsHandler)

	// 10. 创建HTTP服务器
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// 11. 启动HTTP服务器
	go func() {
		log.Info("HTTP服务器启动", zap.String("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP服务器启动失败", zap.Error(err))
		}
	}()

	// 12. 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("正在关闭服务器...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("HTTP服务器关闭失败", zap.Error(err))
	}

	log.Info("服务器已安全关闭")
}

// setupBasicRoutes 设置基础路由
func setupBasicRoutes(router *gin.Engine, cfg *config.Config) {
	// 健康检查
	// 镜像库/Redis掉线不影响核心服务，只体现在状态字段里
	router.GET("/health", func(c *gin.Context) {
		mirror := "ok"
		if err := dbPkg.HealthCheck(); err != nil {
			mirror = "down"
		}
		response.Success(c, gin.H{
			"status": "ok",
			"mirror": mirror,
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// 根路径
	router.GET("/", func(c *gin.Context) {
		response.Success(c, gin.H{
			"message": "欢迎使用技能交换平台",
			"version": "1.0.0",
		})
	})

	// 配置信息路由（系统状态监控）
	router.GET("/config", func(c *gin.Context) {
		response.Success(c, gin.H{
			"server": gin.H{
				"port": cfg.Server.Port,
			},
			"mirror": gin.H{
				"host":     cfg.Mirror.Host,
				"port":     cfg.Mirror.Port,
				"database": cfg.Mirror.Database,
				"driver":   cfg.Mirror.Driver,
			},
			"session": gin.H{
				"dataDir":              cfg.Session.DataDir,
				"exportDir":            cfg.Session.ExportDir,
				"dailyConnectionLimit": cfg.Session.DailyConnectionLimit,
			},
			"jwt": gin.H{
				"expireTime": cfg.JWT.ExpireTime.String(),
				"issuer":     cfg.JWT.Issuer,
			},
			"log": gin.H{
				"level":    cfg.Log.Level,
				"filename": cfg.Log.Filename,
			},
		})
	})
}
