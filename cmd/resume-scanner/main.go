package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	glog "github.com/cloudwego/hertz/pkg/common/hlog"
	hertzadapter "github.com/hertz-contrib/logger/zerolog"
	"github.com/spf13/pflag"

	"github.com/saniyaacharya04/Resume-Scanner-using-NLP/internal/api/handler"
	"github.com/saniyaacharya04/Resume-Scanner-using-NLP/internal/api/router"
	"github.com/saniyaacharya04/Resume-Scanner-using-NLP/internal/config"
	applogger "github.com/saniyaacharya04/Resume-Scanner-using-NLP/internal/logger"
	"github.com/saniyaacharya04/Resume-Scanner-using-NLP/internal/parser"
	"github.com/saniyaacharya04/Resume-Scanner-using-NLP/internal/processor"
	"github.com/saniyaacharya04/Resume-Scanner-using-NLP/internal/scoring"
	"github.com/saniyaacharya04/Resume-Scanner-using-NLP/internal/storage"
	"github.com/saniyaacharya04/Resume-Scanner-using-NLP/internal/textproc"
)

func main() {
	var configPath string
	pflag.StringVarP(&configPath, "config", "c", "internal/config/config.yaml", "配置文件路径")
	pflag.Parse()

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		applogger.Fatal().Err(err).Msg("加载配置失败")
	}

	applogger.Init(cfg.Logger)
	glog.SetLogger(hertzadapter.From(applogger.Logger))
	glog.Info("配置加载成功")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	storageManager, err := storage.NewStorage(ctx, cfg, applogger.Logger)
	if err != nil {
		glog.Fatalf("初始化存储失败: %v", err)
	}
	defer storageManager.Close()
	glog.Info("存储服务初始化成功")

	embedder, err := parser.NewEmbeddingClient(cfg.Embedding, cfg.EmbeddingTimeout())
	if err != nil {
		glog.Fatalf("初始化Embedding客户端失败: %v", err)
	}
	glog.Info("Embedding客户端初始化成功")

	normalizer, err := textproc.NewNormalizer()
	if err != nil {
		glog.Fatalf("初始化文本归一化器失败: %v", err)
	}

	entityExtractor := parser.NewRegexEntityExtractor()
	scorer := scoring.NewScorer(normalizer, cfg.Scanner.SkillVocabulary, embedder,
		scoring.WithEntityExtractor(entityExtractor),
		scoring.WithWorkers(cfg.RabbitMQ.ConsumerWorkers),
		scoring.WithLogger(applogger.Logger),
	)
	glog.Info("评分器初始化成功")

	extractor, err := parser.NewTextExtractor(ctx)
	if err != nil {
		glog.Fatalf("初始化文本抽取器失败: %v", err)
	}

	scanProcessor := processor.NewScanProcessor(cfg, storageManager, scorer, extractor, applogger.Logger)
	go func() {
		glog.Infof("启动扫描任务消费者，工作线程数: %d", cfg.RabbitMQ.ConsumerWorkers)
		if err := storageManager.RabbitMQ.StartScanConsumers(ctx, scanProcessor.HandleScanTask); err != nil {
			glog.Errorf("扫描任务消费者退出: %v", err)
		}
	}()

	scanHandler := handler.NewScanHandler(cfg, storageManager, scorer, applogger.Logger)

	h := server.New(
		server.WithHostPorts(cfg.Server.Address),
		server.WithHandleMethodNotAllowed(true),
	)
	h.Use(func(c context.Context, ctx *app.RequestContext) {
		glog.CtxInfof(c, "Request: %s %s", string(ctx.Method()), string(ctx.Path()))
		ctx.Next(c)
		glog.CtxInfof(c, "Response: status %d", ctx.Response.StatusCode())
	})

	router.RegisterRoutes(h, scanHandler)
	glog.Info("HTTP路由注册成功")

	go func() {
		glog.Infof("HTTP服务器启动中，监听地址: %s", cfg.Server.Address)
		if err := h.Run(); err != nil {
			glog.Fatalf("启动HTTP服务器失败: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	glog.Info("接收到终止信号，正在优雅退出...")

	cancel()

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := h.Shutdown(shutdownCtx); err != nil {
		glog.Errorf("服务器关闭失败: %v", err)
	}
	glog.Info("优雅退出完成")
}
