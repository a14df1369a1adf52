package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"blog_crud_jwt/internal/pkg/config"
	"blog_crud_jwt/internal/pkg/mailer"
	"blog_crud_jwt/internal/pkg/middleware"
	"blog_crud_jwt/internal/pkg/registry"
	"blog_crud_jwt/internal/pkg/uploader"
	"blog_crud_jwt/pkg/database"
	"blog_crud_jwt/pkg/logger"
	"blog_crud_jwt/pkg/metrics"
	"blog_crud_jwt/pkg/response"

	// 触发各领域模块的自注册
	_ "blog_crud_jwt/internal/domain/account"
	_ "blog_crud_jwt/internal/domain/blog"

	_ "blog_crud_jwt/docs"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title Blog API
// @version 1.0
// @description 博客平台后端：账号生命周期 + 文章/评论/评分/点赞/收藏
// @BasePath /api/v1
func main() {
	// 1. 配置与日志
	config.LoadConfig()
	if err := logger.InitLogger(config.GlobalConfig.App.Debug); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	// 2. 基础设施
	db := database.InitDatabase()
	rdb := database.InitRedis()
	collector := metrics.NewCollector()

	// 邮件：生产用阿里云 DM，配置缺失时退化为日志实现
	var mail mailer.Mailer
	if m, err := mailer.NewAliyunMailer(); err == nil {
		mail = m
	} else {
		log.Printf("Mailer not configured, falling back to log mailer: %v", err)
		mail = mailer.NewLogMailer()
	}

	// 对象存储：可选，未配置时图片上传接口返回 503
	var up uploader.Uploader
	if u, err := uploader.NewAliyunOSSUploader(); err == nil {
		up = u
	} else {
		log.Printf("OSS not configured, image upload disabled: %v", err)
	}

	// 3. HTTP 引擎
	gin.SetMode(config.GlobalConfig.Server.Mode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.RateLimitMiddleware())
	r.Use(collector.Middleware())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	r.Use(cors.New(corsConfig))

	r.GET("/metrics", metrics.Handler())
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/health", func(c *gin.Context) {
		response.Success(c, gin.H{"status": "ok"})
	})

	// 4. 初始化领域模块
	moduleCtx := &registry.ModuleContext{
		DB:       db,
		Redis:    rdb,
		Router:   r,
		Mailer:   mail,
		Uploader: up,
		Metrics:  collector,
	}
	if err := registry.InitModules(moduleCtx); err != nil {
		log.Fatalf("Failed to init modules: %v", err)
	}

	// 5. 启动与优雅退出
	srv := &http.Server{
		Addr:    ":" + config.GlobalConfig.Server.Port,
		Handler: r,
	}

	go func() {
		log.Printf("Server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	if err := rdb.Close(); err != nil {
		log.Printf("Redis close error: %v", err)
	}

	log.Println("Server exited")
}
