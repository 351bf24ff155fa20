// Package main 是应用程序的入口点。
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"artigos-go/internal/config"
	"artigos-go/internal/handler"
	"artigos-go/internal/middleware"
	"artigos-go/internal/repository"
	"artigos-go/internal/service"
	"artigos-go/pkg/database"
	"artigos-go/pkg/log"
	"artigos-go/pkg/storage"

	"github.com/gin-gonic/gin"
)

func main() {
	// 1. 初始化配置
	config.Init("./configs/config.yaml")
	cfg := config.Conf

	// 2. 初始化日志记录器
	log.Init(cfg.Log.Level, cfg.Log.Format, cfg.Log.OutputPath)
	defer log.Sync() // 确保在程序退出时刷新所有缓冲的日志条目
	log.Info("日志记录器初始化成功")

	// 3. 初始化数据库与文件存储
	database.InitMySQL(cfg.Database.MySQL.DSN())
	store := initFileStore(cfg.Storage)

	// 4. 初始化 Repository / Service / Handler (依赖注入)
	submissionRepo := repository.NewSubmissionRepository(database.DB)
	submissionService := service.NewSubmissionService(submissionRepo, store)
	submissionHandler := handler.NewSubmissionHandler(submissionService)

	// 5. 设置 Gin 模式并创建路由引擎
	gin.SetMode(cfg.Server.Mode)
	r := gin.New() // 使用 New() 创建一个不带默认中间件的引擎
	r.Use(middleware.RequestLogger(), gin.Recovery())

	// 6. 模板与静态资源
	r.LoadHTMLGlob("web/templates/*.html")
	r.StaticFile("/", "./web/static/index.html")
	r.Static("/static", "./web/static")
	if localStore, ok := store.(*storage.LocalStore); ok {
		// 本地后端直接由 HTTP 层提供上传文件下载；
		// MinIO 后端的列表页链接是预签名地址，不经过本服务。
		r.Static("/uploads", localStore.Dir())
	}

	// 7. 注册路由
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	r.POST("/enviar", submissionHandler.Submit)
	r.GET("/documentos", submissionHandler.List)
	r.POST("/deletar/:id", submissionHandler.Delete)

	// 启动 HTTP 服务器并实现优雅停机
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: r,
	}

	go func() {
		log.Infof("服务启动于 %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP 服务监听失败: %s\n", err)
		}
	}()

	// 等待中断信号以实现优雅停机
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("接收到停机信号，正在关闭服务...")

	// 设置一个5秒的超时上下文
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// 关闭 HTTP 服务器，然后释放数据库连接池
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("HTTP 服务器关闭失败: %v", err)
	}
	database.Close()

	log.Info("服务已优雅关闭")
}

// initFileStore 根据配置选择文件存储后端，默认使用本地磁盘。
func initFileStore(cfg config.StorageConfig) storage.FileStore {
	switch cfg.Type {
	case "minio":
		store, err := storage.NewMinIOStore(cfg.MinIO)
		if err != nil {
			log.Fatal("初始化 MinIO 存储失败", err)
		}
		log.Info("MinIO 存储初始化成功")
		return store
	case "", "local":
	default:
		log.Warnf("未知的存储类型 '%s'，回退到本地磁盘", cfg.Type)
	}

	store, err := storage.NewLocalStore(cfg.Local.UploadDir)
	if err != nil {
		log.Fatal("初始化本地存储失败", err)
	}
	log.Infof("本地存储初始化成功, 目录: %s", cfg.Local.UploadDir)
	return store
}
