package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/xiebiao/bookcatalog/internal/infrastructure/config"
	"github.com/xiebiao/bookcatalog/pkg/logger"
	"github.com/xiebiao/bookcatalog/pkg/tracing"
)

// @title Book Catalog API
// @version 1.0
// @description 图书目录只读JSON接口（页面路由见 / 与 /books）
// @BasePath /api/v1

// main 主程序入口
// 依赖由Wire组装（见wire.go / wire_gen.go）
func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

// run 启动服务并阻塞到收到退出信号
// 返回前依次执行defer（停止Wire组装的资源、刷新Span、同步日志）
func run() error {
	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("加载配置失败: %w", err)
	}

	// 2. 初始化日志
	zlog, err := logger.New(logger.Options{
		Level:        cfg.Log.Level,
		Format:       cfg.Log.Format,
		Output:       cfg.Log.Output,
		EnableCaller: cfg.Log.EnableCaller,
	})
	if err != nil {
		return fmt.Errorf("初始化日志失败: %w", err)
	}
	defer func() { _ = zlog.Sync() }()
	zap.ReplaceGlobals(zlog)

	zlog.Info("配置加载成功",
		zap.Int("port", cfg.Server.Port),
		zap.String("mode", cfg.Server.Mode),
		zap.String("database", cfg.Database.Driver),
		zap.Bool("redis", cfg.Redis.Enabled),
	)

	// 3. 链路追踪（可选）
	if cfg.Tracing.Enabled {
		shutdown, err := tracing.InitTracer(cfg.Tracing.ServiceName, cfg.Tracing.Endpoint)
		if err != nil {
			zlog.Error("初始化链路追踪失败", zap.Error(err))
			return fmt.Errorf("初始化链路追踪失败: %w", err)
		}
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				zlog.Warn("关闭链路追踪失败", zap.Error(err))
			}
		}()
	}

	// 4. 依赖注入（Wire生成）
	engine, cleanup, err := InitializeApp(cfg, zlog)
	if err != nil {
		zlog.Error("初始化应用失败", zap.Error(err))
		return fmt.Errorf("初始化应用失败: %w", err)
	}
	defer cleanup()

	// 5. 启动服务
	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		zlog.Info("服务启动成功",
			zap.String("url", "http://localhost"+srv.Addr),
			zap.String("health", "/ping"),
			zap.String("metrics", "/metrics"),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	// 6. 优雅关闭：等待信号，给进行中的请求留出时间
	select {
	case err := <-serveErr:
		if err != nil {
			zlog.Error("服务异常退出", zap.Error(err))
			return fmt.Errorf("服务异常退出: %w", err)
		}
	case <-ctx.Done():
	}
	zlog.Info("正在关闭服务...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Error("服务关闭超时", zap.Error(err))
	}
	zlog.Info("服务已停止")
	return nil
}
