package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"resume-match-go/internal/api/handler"
	"resume-match-go/internal/api/router"
	"resume-match-go/internal/config"
	appLogger "resume-match-go/internal/logger"
	"resume-match-go/internal/matcher"
	"resume-match-go/internal/parser"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	glog "github.com/cloudwego/hertz/pkg/common/hlog"
	hertzadapter "github.com/hertz-contrib/logger/zerolog"
	"github.com/spf13/pflag"
)

var (
	version     = "1.0.0"           //nolint:gochecknoglobals
	serviceName = "resume-match-go" //nolint:gochecknoglobals
)

func main() {
	var configPath string
	pflag.StringVarP(&configPath, "config", "c", "", "Path to config file")
	pflag.Parse()

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		glog.Fatalf("加载配置失败: %v", err)
	}

	appLogger.Init(appLogger.Config{
		Level:        cfg.Logger.Level,
		Format:       cfg.Logger.Format,
		TimeFormat:   cfg.Logger.TimeFormat,
		ReportCaller: cfg.Logger.ReportCaller,
	})
	// Hertz 的日志走同一个zerolog实例
	glog.SetLogger(hertzadapter.From(appLogger.Logger))
	glog.Infof("%s v%s 配置加载成功", serviceName, version)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Embedding模型没有降级路径，初始化失败直接退出
	aliyunEmbedder, err := parser.NewAliyunEmbedder(
		cfg.Aliyun.APIKey,
		cfg.Aliyun.Embedding,
		parser.WithEmbedderLogger(appLogger.Logger),
	)
	if err != nil {
		glog.Fatalf("初始化阿里云Embedder失败: %v", err)
	}
	glog.Info("阿里云Embedder初始化成功")

	pdfExtractor, err := parser.NewEinoPDFTextExtractor(ctx, parser.WithEinoLogger(appLogger.Logger))
	if err != nil {
		glog.Fatalf("创建Eino PDF提取器失败: %v", err)
	}
	glog.Info("使用Eino PDF解析器")

	docExtractor := parser.NewDocumentExtractor(pdfExtractor, parser.WithDocumentLogger(appLogger.Logger))
	recognizer := parser.NewProseRecognizer(parser.WithProseLogger(appLogger.Logger))

	engine := matcher.NewEngine(docExtractor, aliyunEmbedder, recognizer, matcher.WithEngineLogger(appLogger.Logger))
	glog.Info("匹配引擎初始化成功")

	matchHandler := handler.NewMatchHandler(engine, cfg, appLogger.Logger)

	h := server.New(
		server.WithHostPorts(cfg.Server.Address),
		server.WithHandleMethodNotAllowed(true),
	)
	h.Use(func(c context.Context, ctx *app.RequestContext) {
		glog.CtxInfof(c, "Request: %s %s", string(ctx.Method()), string(ctx.Path()))
		ctx.Next(c)
		glog.CtxInfof(c, "Response: status %d", ctx.Response.StatusCode())
	})

	router.RegisterRoutes(h, matchHandler)
	glog.Info("HTTP路由注册成功")

	glog.Infof("HTTP 服务器启动中，监听地址: %s", cfg.Server.Address)
	go func() {
		if err := h.Run(); err != nil {
			glog.Fatalf("启动HTTP服务器失败: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	glog.Info("接收到终止信号，正在优雅退出...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := h.Shutdown(shutdownCtx); err != nil {
		glog.Fatalf("服务器关闭失败: %v", err)
	}
	glog.Info("优雅退出完成")
}
