package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ats-engine-go/internal/ai"
	"ats-engine-go/internal/api/handler"
	"ats-engine-go/internal/api/router"
	"ats-engine-go/internal/config"
	"ats-engine-go/internal/jobtype"
	"ats-engine-go/internal/logger"
	"ats-engine-go/internal/parser"
	"ats-engine-go/internal/processor"
	"ats-engine-go/internal/scorer"
	"ats-engine-go/internal/storage"
	"ats-engine-go/internal/tracing"
	"ats-engine-go/pkg/ratelimit"

	"github.com/cloudwego/eino/components/embedding"
	"github.com/cloudwego/hertz/pkg/app/server"
	hertzconfig "github.com/cloudwego/hertz/pkg/common/config"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	hertzzerolog "github.com/hertz-contrib/logger/zerolog"
	hertztracing "github.com/hertz-contrib/obs-opentelemetry/tracing"
	"github.com/spf13/pflag"
)

func main() {
	configPath := pflag.StringP("config", "c", "", "配置文件路径，默认按内置搜索路径查找")
	pflag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		logger.Init(logger.Config{Level: "info", Format: "json", TimeFormat: time.RFC3339})
		logger.Fatal().Err(err).Msg("加载配置文件失败")
	}
	initLogger(cfg)

	ctx := context.Background()

	// 链路追踪
	shutdownTracing, err := tracing.InitProvider(ctx, tracing.Config{
		Enabled:     cfg.Tracing.Enabled,
		Endpoint:    cfg.Tracing.Endpoint,
		ServiceName: cfg.Tracing.ServiceName,
		SampleRatio: cfg.Tracing.SampleRatio,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("初始化链路追踪失败")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			logger.Warn().Err(err).Msg("关闭链路追踪失败")
		}
	}()

	// 存储组件失败时降级为无持久化模式，分析能力不受影响
	store, err := storage.NewStorage(ctx, cfg)
	if err != nil {
		logger.Warn().Err(err).Msg("存储组件初始化失败，以无持久化模式运行")
		store = nil
	} else {
		defer store.Close()
	}

	engine, err := buildEngine(ctx, cfg, store)
	if err != nil {
		logger.Fatal().Err(err).Msg("初始化分析引擎失败")
	}

	analyzeHandler := handler.NewAnalyzeHandler(cfg, store, engine)

	serverOpts := []hertzconfig.Option{
		server.WithHostPorts(cfg.Server.Address),
		server.WithMaxRequestBodySize(12 << 20),
	}
	var tracerCfg *hertztracing.Config
	if cfg.Tracing.Enabled {
		tracer, traceCfg := hertztracing.NewServerTracer()
		serverOpts = append(serverOpts, tracer)
		tracerCfg = traceCfg
	}
	h := server.Default(serverOpts...)
	if tracerCfg != nil {
		h.Use(hertztracing.ServerMiddleware(tracerCfg))
	}

	router.RegisterRoutes(h, cfg, analyzeHandler)

	go func() {
		if err := h.Run(); err != nil {
			logger.Fatal().Err(err).Msg("启动HTTP服务器失败")
		}
	}()
	logger.Info().Str("address", cfg.Server.Address).Msg("简历分析服务已启动")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("接收到终止信号，正在优雅退出...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := h.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("服务器关闭失败")
	}
	logger.Info().Msg("优雅退出完成")
}

func initLogger(cfg *config.Config) {
	logger.Init(logger.Config{
		Level:        cfg.Logger.Level,
		Format:       cfg.Logger.Format,
		TimeFormat:   cfg.Logger.TimeFormat,
		ReportCaller: cfg.Logger.ReportCaller,
	})
	logger.Logger = logger.Logger.With().
		Str("app", "ats-engine").
		Str("version", cfg.ActiveEngineVersion).
		Logger()

	// Hertz框架日志统一走zerolog
	hlog.SetLogger(hertzzerolog.From(logger.Logger))
}

// buildEngine 组装分析引擎。未配置模型API密钥时生成式与嵌入组件缺省，
// 引擎自动退回关键词分类与语义降级路径。
func buildEngine(ctx context.Context, cfg *config.Config, store *storage.Storage) (*processor.AnalysisEngine, error) {
	var (
		embedder   embedding.Embedder
		generative *ai.GenerativeTextService
	)

	if cfg.Aliyun.APIKey != "" {
		chatModel, err := ai.NewQwenChatModel(cfg.Aliyun.APIKey, cfg.Generative.ModelName, cfg.Aliyun.APIURL)
		if err != nil {
			logger.Warn().Err(err).Msg("初始化生成式模型失败，分类与JD生成退回离线路径")
		} else {
			genOpts := []ai.GenerativeOption{}
			if cfg.Generative.BreakerEnabled {
				genOpts = append(genOpts, ai.WithChatBreaker(ai.NewChatBreaker("generative", cfg.Generative)))
			}
			if qpm := modelQPM(cfg); qpm > 0 {
				genOpts = append(genOpts, ai.WithRateLimiter(ratelimit.NewTokenBucket(qpm, qpm)))
			}
			svc, err := ai.NewGenerativeTextService(chatModel, cfg.Generative, genOpts...)
			if err != nil {
				logger.Warn().Err(err).Msg("初始化生成式文本服务失败")
			} else {
				generative = svc
			}
		}

		emb, err := ai.NewAliyunEmbedder(cfg.Aliyun.APIKey, cfg.Aliyun.Embedding)
		if err != nil {
			logger.Warn().Err(err).Msg("初始化嵌入服务失败，语义评分走降级路径")
		} else {
			embedder = emb
		}
	} else {
		logger.Info().Msg("未配置模型API密钥，以离线模式运行")
	}

	classifierOpts := []jobtype.ClassifierOption{}
	if store != nil && store.Redis != nil {
		classifierOpts = append(classifierOpts, jobtype.WithVectorCache(store.Redis))
	}
	var generativeClassifier jobtype.GenerativeClassifier
	var jdTextService jobtype.JDTextService
	if generative != nil {
		generativeClassifier = generative
		jdTextService = generative
	}
	classifier := jobtype.NewClassifier(embedder, generativeClassifier, cfg.JobType, classifierOpts...)
	jdGen := jobtype.NewJDGenerator(jdTextService)

	var semanticEmbedder embedding.Embedder
	if cfg.Analysis.SemanticEnabled {
		semanticEmbedder = embedder
	}
	semantic := scorer.NewSemanticScorer(semanticEmbedder, cfg.Analysis.MaxSentencesPerSide)

	extractTimeout, err := time.ParseDuration(cfg.Extractor.Timeout)
	if err != nil {
		extractTimeout = 30 * time.Second
	}
	extractor, err := parser.NewEinoDocumentExtractor(ctx, parser.WithExtractTimeout(extractTimeout))
	if err != nil {
		return nil, err
	}

	engineOpts := []processor.Option{
		processor.WithDocumentExtractor(extractor),
		processor.WithJobClassifier(classifier),
		processor.WithDescriptionGenerator(jdGen),
		processor.WithSemanticScorer(semantic),
	}
	if generative != nil {
		engineOpts = append(engineOpts, processor.WithKeywordClassifier(generative))
	}
	return processor.NewAnalysisEngine(engineOpts...), nil
}

// modelQPM 按生成式模型名取QPM限额，优先使用模型级配置
func modelQPM(cfg *config.Config) int {
	if qpm, ok := cfg.ModelQPMLimits[cfg.Generative.ModelName]; ok {
		return qpm
	}
	return cfg.Generative.QPM
}
