package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"github.com/Gicheru-yvonne/instaclone-cloud-app/config"
	"github.com/Gicheru-yvonne/instaclone-cloud-app/internal/api/feed"
	"github.com/Gicheru-yvonne/instaclone-cloud-app/internal/api/social"
	"github.com/Gicheru-yvonne/instaclone-cloud-app/internal/api/user"
	"github.com/Gicheru-yvonne/instaclone-cloud-app/internal/auth"
	fsrepo "github.com/Gicheru-yvonne/instaclone-cloud-app/internal/repository/firestore"
	"github.com/Gicheru-yvonne/instaclone-cloud-app/internal/middleware"
	"github.com/Gicheru-yvonne/instaclone-cloud-app/internal/service"
	"github.com/Gicheru-yvonne/instaclone-cloud-app/internal/storage"
	"github.com/Gicheru-yvonne/instaclone-cloud-app/internal/util"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			util.Logger.Error("程序发生严重错误", zap.Any("error", r))
		}
	}()

	// 初始化配置
	config.Init()

	// 初始化日志
	util.InitLogger(config.AppConfig.LogLevel)
	defer util.Logger.Sync()

	util.Logger.Info("应用程序启动")

	ctx := context.Background()

	// 连接 Firestore
	var fsOpts []option.ClientOption
	if config.AppConfig.CredentialsFile != "" {
		fsOpts = append(fsOpts, option.WithCredentialsFile(config.AppConfig.CredentialsFile))
	}
	fsClient, err := firestore.NewClient(ctx, config.AppConfig.FirestoreProjectID, fsOpts...)
	if err != nil {
		util.Logger.Fatal("连接 Firestore 失败", zap.Error(err))
	}
	defer fsClient.Close()
	util.Logger.Info("Firestore 连接成功",
		zap.String("project_id", config.AppConfig.FirestoreProjectID))

	// 初始化身份令牌校验器
	verifier, err := auth.NewFirebaseVerifier(ctx,
		config.AppConfig.FirestoreProjectID, config.AppConfig.CredentialsFile)
	if err != nil {
		util.Logger.Fatal("初始化身份校验器失败", zap.Error(err))
	}

	// 按配置选择图片存储后端
	store, err := newStorage(ctx)
	if err != nil {
		util.Logger.Fatal("初始化图片存储失败", zap.Error(err))
	}
	util.Logger.Info("图片存储初始化完成",
		zap.String("provider", config.AppConfig.StorageProvider))

	// 初始化存储库、服务和处理器
	userRepo := fsrepo.NewUserRepository(fsClient)
	postRepo := fsrepo.NewPostRepository(fsClient)

	emailService := service.NewEmailService()
	userService := service.NewUserService(userRepo, postRepo)
	followService := service.NewFollowService(userRepo, emailService)
	feedService := service.NewFeedService(postRepo, store)
	timelineService := service.NewTimelineService(userRepo, postRepo)

	authHandler := user.NewAuthHandler(verifier, userService)
	profileHandler := user.NewProfileHandler(userService)
	feedHandler := feed.NewFeedHandler(feedService, timelineService)
	socialHandler := social.NewSocialHandler(followService, userService)

	// 初始化错误监控
	errorMonitor := middleware.NewErrorMonitor()

	// 设置 Gin 路由
	r := gin.Default()

	// 添加中间件
	r.Use(middleware.RecoveryMiddleware())
	r.Use(middleware.ErrorMonitorMiddleware(errorMonitor))

	// 配置 CORS
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{config.AppConfig.FrontendURL}
	corsConfig.AllowCredentials = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"}
	corsConfig.AllowHeaders = []string{
		"Origin",
		"Content-Length",
		"Content-Type",
		"Authorization",
	}
	r.Use(cors.New(corsConfig))

	// 本地存储时提供静态文件服务
	if config.AppConfig.StorageProvider == "local" {
		r.Static("/uploads", config.AppConfig.LocalStoragePath)
	}

	// 定义 API 路由
	api := r.Group("/api")
	{
		api.POST("/auth/login", authHandler.Login)

		// 需要认证的路由
		authorized := api.Group("/")
		authorized.Use(middleware.AuthMiddleware(verifier))
		{
			authorized.POST("/logout", authHandler.Logout)
			authorized.GET("/profile", profileHandler.GetProfile)

			authorized.GET("/timeline", feedHandler.GetTimeline)
			authorized.POST("/posts", feedHandler.CreatePost)
			authorized.POST("/posts/:id/comments", feedHandler.AddComment)
			authorized.GET("/posts/:id/comments", feedHandler.GetComments)

			authorized.POST("/follow", socialHandler.Follow)
			authorized.POST("/unfollow", socialHandler.Unfollow)
			authorized.GET("/followers", socialHandler.GetFollowers)
			authorized.GET("/following", socialHandler.GetFollowing)
			authorized.GET("/users/:id/follow/status", socialHandler.GetFollowStatus)
			authorized.GET("/users/search", socialHandler.SearchUsers)
		}
	}

	srv := &http.Server{
		Addr:    ":8080",
		Handler: r,
	}

	// 在一个新的 goroutine 中启动服务器
	go func() {
		util.Logger.Info("服务器正在启动，监听端口 :8080")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			util.Logger.Fatal("启动服务器失败", zap.Error(err))
		}
	}()

	// 等待中断信号以优雅地关闭服务器（设置 5 秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	util.Logger.Info("正在关闭服务器...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		util.Logger.Fatal("服务器强制关闭", zap.Error(err))
	}

	util.Logger.Info("服务器已优雅关闭")
}

// newStorage 按 STORAGE_PROVIDER 选择存储后端
func newStorage(ctx context.Context) (storage.Storage, error) {
	switch config.AppConfig.StorageProvider {
	case "s3":
		return storage.NewS3Client(config.AppConfig.S3Region, config.AppConfig.S3Bucket)
	case "local":
		return storage.NewLocalStorage(config.AppConfig.LocalStoragePath, config.AppConfig.BackendURL)
	default:
		return storage.NewGCSClient(ctx, config.AppConfig.GCSBucketName, config.AppConfig.CredentialsFile)
	}
}
