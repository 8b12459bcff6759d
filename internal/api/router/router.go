package router

import (
	"context"

	"ats-engine-go/internal/api/handler"
	"ats-engine-go/internal/config"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/google/uuid"
	"github.com/hertz-contrib/keyauth"
)

const requestIDHeader = "X-Request-ID"

// requestID 为每个请求补充追踪用的请求ID，客户端已携带时原样透传
func requestID() app.HandlerFunc {
	return func(c context.Context, ctx *app.RequestContext) {
		id := string(ctx.GetHeader(requestIDHeader))
		if id == "" {
			id = uuid.NewString()
		}
		ctx.Response.Header.Set(requestIDHeader, id)
		ctx.Set("request_id", id)
		ctx.Next(c)
	}
}

// RegisterRoutes 注册全部API路由。配置了API Key时在v1分组启用keyauth校验。
func RegisterRoutes(h *server.Hertz, cfg *config.Config, analyzeHandler *handler.AnalyzeHandler) {
	h.Use(requestID())

	h.GET("/health", analyzeHandler.HandleHealth)

	api := h.Group("/api/v1")
	if len(cfg.Server.APIKeys) > 0 {
		allowed := make(map[string]struct{}, len(cfg.Server.APIKeys))
		for _, key := range cfg.Server.APIKeys {
			allowed[key] = struct{}{}
		}
		api.Use(keyauth.New(
			keyauth.WithKeyLookUp("header:X-API-Key", ""),
			keyauth.WithValidator(func(c context.Context, ctx *app.RequestContext, key string) (bool, error) {
				_, ok := allowed[key]
				return ok, nil
			}),
		))
	}

	resumes := api.Group("/resumes")
	resumes.POST("/parse", analyzeHandler.HandleParse)
	resumes.POST("/analyze", analyzeHandler.HandleAnalyze)
	resumes.POST("/quick-analyze", analyzeHandler.HandleQuickAnalyze)
	resumes.POST("/structured", analyzeHandler.HandleStructured)
	resumes.POST("/improvement-plan", analyzeHandler.HandleImprovementPlan)

	api.GET("/analyses/:id", analyzeHandler.HandleGetAnalysis)
	api.GET("/meta/supported-formats", analyzeHandler.HandleSupportedFormats)
}
