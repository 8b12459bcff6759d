package handler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"ats-engine-go/internal/config"
	"ats-engine-go/internal/constants"
	"ats-engine-go/internal/logger"
	"ats-engine-go/internal/processor"
	"ats-engine-go/internal/storage"
	"ats-engine-go/internal/storage/models"
	"ats-engine-go/internal/types"
	"ats-engine-go/pkg/utils"

	"github.com/cloudwego/hertz/pkg/app"
	hertzutils "github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/gofrs/uuid/v5"
)

// Response 统一响应信封
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

// AnalyzeHandler 简历分析HTTP处理器。storage 为 nil 时跳过去重、
// 原始文件留存与结果持久化，分析流程本身不受影响。
type AnalyzeHandler struct {
	cfg    *config.Config
	store  *storage.Storage
	engine *processor.AnalysisEngine
}

// NewAnalyzeHandler 创建简历分析处理器
func NewAnalyzeHandler(cfg *config.Config, store *storage.Storage, engine *processor.AnalysisEngine) *AnalyzeHandler {
	return &AnalyzeHandler{
		cfg:    cfg,
		store:  store,
		engine: engine,
	}
}

func respondOK(ctx *app.RequestContext, data interface{}) {
	ctx.JSON(consts.StatusOK, Response{Success: true, Data: data})
}

func respondError(ctx *app.RequestContext, status int, message string) {
	ctx.JSON(status, Response{Success: false, Message: message})
}

// resumeInput 一次请求的简历输入：上传文件或表单纯文本二选一
type resumeInput struct {
	FileBytes []byte
	Filename  string
	Text      string
}

func (in *resumeInput) hasFile() bool {
	return len(in.FileBytes) > 0
}

// readResumeInput 读取并校验简历输入。优先使用multipart文件字段 file，
// 否则回退到表单字段 resume_text。
func (h *AnalyzeHandler) readResumeInput(ctx *app.RequestContext) (*resumeInput, error) {
	fileHeader, err := ctx.FormFile("file")
	if err == nil && fileHeader != nil {
		if fileHeader.Size > constants.MaxUploadSize {
			return nil, processor.NewValidationError("", fmt.Sprintf("文件大小超过限制(%dMB)", constants.MaxUploadSize>>20))
		}

		ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
		if !isSupportedExtension(ext) {
			return nil, processor.NewUnsupportedFormatError("", fmt.Sprintf("%q，仅支持 %s", ext, strings.Join(constants.SupportedExtensions, "/")))
		}

		file, err := fileHeader.Open()
		if err != nil {
			return nil, fmt.Errorf("打开上传文件失败: %w", err)
		}
		defer file.Close()

		data, err := io.ReadAll(io.LimitReader(file, constants.MaxUploadSize+1))
		if err != nil {
			return nil, fmt.Errorf("读取上传文件失败: %w", err)
		}
		if int64(len(data)) > constants.MaxUploadSize {
			return nil, processor.NewValidationError("", fmt.Sprintf("文件大小超过限制(%dMB)", constants.MaxUploadSize>>20))
		}
		return &resumeInput{FileBytes: data, Filename: fileHeader.Filename}, nil
	}

	text := strings.TrimSpace(ctx.PostForm("resume_text"))
	if text == "" {
		return nil, processor.NewValidationError("", "缺少简历输入：请上传 file 或提供 resume_text")
	}
	return &resumeInput{Text: text}, nil
}

func isSupportedExtension(ext string) bool {
	for _, supported := range constants.SupportedExtensions {
		if ext == supported {
			return true
		}
	}
	return false
}

// extractText 将输入统一为纯文本与排版信号
func (h *AnalyzeHandler) extractText(c context.Context, in *resumeInput) (string, *types.FormattingSignals, error) {
	if in.hasFile() {
		return h.engine.ParseDocument(c, in.FileBytes, in.Filename)
	}
	return h.engine.ParseDocument(c, []byte(in.Text), "input.txt")
}

// HandleParse POST /api/v1/resumes/parse
// 上传文件，返回提取出的纯文本与排版信号
func (h *AnalyzeHandler) HandleParse(c context.Context, ctx *app.RequestContext) {
	in, err := h.readResumeInput(ctx)
	if err != nil {
		respondError(ctx, consts.StatusBadRequest, err.Error())
		return
	}

	text, signals, err := h.extractText(c, in)
	if err != nil {
		if errors.Is(err, processor.ErrUnsupportedFormat) {
			respondError(ctx, consts.StatusBadRequest, err.Error())
			return
		}
		logger.Ctx(c).Error().Err(err).Str("filename", in.Filename).Msg("文档解析失败")
		respondError(ctx, consts.StatusUnprocessableEntity, "文档解析失败")
		return
	}

	respondOK(ctx, hertzutils.H{
		"raw_text":            text,
		"word_count":          len(strings.Fields(text)),
		"formatting_analysis": signals,
	})
}

// HandleAnalyze POST /api/v1/resumes/analyze
// 文件或文本 + 职位描述，返回完整分析结果
func (h *AnalyzeHandler) HandleAnalyze(c context.Context, ctx *app.RequestContext) {
	in, err := h.readResumeInput(ctx)
	if err != nil {
		respondError(ctx, consts.StatusBadRequest, err.Error())
		return
	}

	jobDescription := strings.TrimSpace(ctx.PostForm("job_description"))
	generateJD := ctx.PostForm("generate_jd") == "true"
	if jobDescription != "" && len(jobDescription) < constants.MinJobDescriptionLen {
		respondError(ctx, consts.StatusBadRequest, processor.NewValidationError("",
			fmt.Sprintf("职位描述过短，至少需要%d个字符", constants.MinJobDescriptionLen)).Error())
		return
	}
	if jobDescription == "" && !generateJD {
		respondError(ctx, consts.StatusBadRequest, processor.NewValidationError("",
			"缺少职位描述：请提供 job_description 或设置 generate_jd=true").Error())
		return
	}

	submissionUUID, duplicateOf, fileMD5 := h.registerSubmission(c, in)
	if duplicateOf != "" {
		// 重复文件直接复用历史分析
		if cached := h.lookupAnalysis(c, duplicateOf); cached != nil {
			respondOK(ctx, hertzutils.H{
				"duplicate_of": duplicateOf,
				"analysis":     cached,
			})
			return
		}
	}

	text, signals, err := h.extractText(c, in)
	if err != nil {
		if fileMD5 != "" && h.store != nil && h.store.Redis != nil {
			// 解析失败，回滚MD5登记，同一文件允许重试
			if rmErr := h.store.Redis.RemoveFileMD5(c, fileMD5); rmErr != nil {
				logger.Ctx(c).Warn().Err(rmErr).Msg("回滚文件MD5登记失败")
			}
		}
		if errors.Is(err, processor.ErrUnsupportedFormat) {
			respondError(ctx, consts.StatusBadRequest, err.Error())
			return
		}
		logger.Ctx(c).Error().Err(err).Str("filename", in.Filename).Msg("文档解析失败")
		respondError(ctx, consts.StatusUnprocessableEntity, "文档解析失败")
		return
	}

	result, err := h.engine.Analyze(c, processor.AnalyzeRequest{
		SubmissionUUID: submissionUUID,
		ResumeText:     text,
		JobDescription: jobDescription,
		GenerateJD:     generateJD,
		Signals:        signals,
	})
	if err != nil {
		logger.Ctx(c).Error().Err(err).Str("submission_uuid", submissionUUID).Msg("简历分析失败")
		respondError(ctx, consts.StatusInternalServerError, "简历分析失败")
		return
	}

	h.persistAnalysis(c, in, submissionUUID, fileMD5, result)
	respondOK(ctx, result)
}

// HandleQuickAnalyze POST /api/v1/resumes/quick-analyze
// 无职位描述的快速评估，只产出格式、内容与ATS维度
func (h *AnalyzeHandler) HandleQuickAnalyze(c context.Context, ctx *app.RequestContext) {
	in, err := h.readResumeInput(ctx)
	if err != nil {
		respondError(ctx, consts.StatusBadRequest, err.Error())
		return
	}

	text, signals, err := h.extractText(c, in)
	if err != nil {
		if errors.Is(err, processor.ErrUnsupportedFormat) {
			respondError(ctx, consts.StatusBadRequest, err.Error())
			return
		}
		logger.Ctx(c).Error().Err(err).Str("filename", in.Filename).Msg("文档解析失败")
		respondError(ctx, consts.StatusUnprocessableEntity, "文档解析失败")
		return
	}

	result, err := h.engine.QuickAnalyze(c, text, signals)
	if err != nil {
		logger.Ctx(c).Error().Err(err).Msg("快速分析失败")
		respondError(ctx, consts.StatusInternalServerError, "快速分析失败")
		return
	}
	respondOK(ctx, result)
}

// HandleStructured POST /api/v1/resumes/structured
// 只做结构化提取，不评分
func (h *AnalyzeHandler) HandleStructured(c context.Context, ctx *app.RequestContext) {
	in, err := h.readResumeInput(ctx)
	if err != nil {
		respondError(ctx, consts.StatusBadRequest, err.Error())
		return
	}

	text, _, err := h.extractText(c, in)
	if err != nil {
		if errors.Is(err, processor.ErrUnsupportedFormat) {
			respondError(ctx, consts.StatusBadRequest, err.Error())
			return
		}
		logger.Ctx(c).Error().Err(err).Str("filename", in.Filename).Msg("文档解析失败")
		respondError(ctx, consts.StatusUnprocessableEntity, "文档解析失败")
		return
	}

	respondOK(ctx, h.engine.ExtractStructuredResume(text))
}

// HandleImprovementPlan POST /api/v1/resumes/improvement-plan
// 分析后产出按优先级排序的改进计划
func (h *AnalyzeHandler) HandleImprovementPlan(c context.Context, ctx *app.RequestContext) {
	in, err := h.readResumeInput(ctx)
	if err != nil {
		respondError(ctx, consts.StatusBadRequest, err.Error())
		return
	}

	jobDescription := strings.TrimSpace(ctx.PostForm("job_description"))
	if jobDescription != "" && len(jobDescription) < constants.MinJobDescriptionLen {
		respondError(ctx, consts.StatusBadRequest, processor.NewValidationError("",
			fmt.Sprintf("职位描述过短，至少需要%d个字符", constants.MinJobDescriptionLen)).Error())
		return
	}

	text, signals, err := h.extractText(c, in)
	if err != nil {
		if errors.Is(err, processor.ErrUnsupportedFormat) {
			respondError(ctx, consts.StatusBadRequest, err.Error())
			return
		}
		logger.Ctx(c).Error().Err(err).Str("filename", in.Filename).Msg("文档解析失败")
		respondError(ctx, consts.StatusUnprocessableEntity, "文档解析失败")
		return
	}

	result, err := h.engine.Analyze(c, processor.AnalyzeRequest{
		ResumeText:     text,
		JobDescription: jobDescription,
		Signals:        signals,
	})
	if err != nil {
		logger.Ctx(c).Error().Err(err).Msg("简历分析失败")
		respondError(ctx, consts.StatusInternalServerError, "简历分析失败")
		return
	}

	respondOK(ctx, hertzutils.H{
		"analysis": result,
		"plan":     h.engine.BuildImprovementPlan(result),
	})
}

// HandleGetAnalysis GET /api/v1/analyses/:id
// 先查Redis缓存，未命中回源MySQL
func (h *AnalyzeHandler) HandleGetAnalysis(c context.Context, ctx *app.RequestContext) {
	submissionUUID := ctx.Param("id")
	if _, err := uuid.FromString(submissionUUID); err != nil {
		respondError(ctx, consts.StatusBadRequest, "无效的分析ID")
		return
	}

	if h.store == nil {
		respondError(ctx, consts.StatusNotFound, processor.ErrAnalysisNotFound.Error())
		return
	}

	if cached := h.lookupAnalysis(c, submissionUUID); cached != nil {
		respondOK(ctx, cached)
		return
	}

	if h.store.MySQL != nil {
		record, err := h.store.MySQL.GetAnalysisBySubmissionUUID(c, submissionUUID)
		if err == nil {
			respondOK(ctx, record)
			return
		}
		if !errors.Is(err, storage.ErrRecordNotFound) {
			logger.Ctx(c).Error().Err(err).Str("submission_uuid", submissionUUID).Msg("查询分析记录失败")
			respondError(ctx, consts.StatusInternalServerError, "查询分析记录失败")
			return
		}
	}

	respondError(ctx, consts.StatusNotFound, processor.ErrAnalysisNotFound.Error())
}

// HandleSupportedFormats GET /api/v1/meta/supported-formats
func (h *AnalyzeHandler) HandleSupportedFormats(c context.Context, ctx *app.RequestContext) {
	respondOK(ctx, hertzutils.H{
		"extensions":                 constants.SupportedExtensions,
		"max_upload_size_bytes":      constants.MaxUploadSize,
		"min_job_description_length": constants.MinJobDescriptionLen,
	})
}

// registerSubmission 生成提交UUID并登记文件MD5去重。
// 返回 (submissionUUID, 重复文件对应的历史UUID, 文件MD5)。
func (h *AnalyzeHandler) registerSubmission(c context.Context, in *resumeInput) (string, string, string) {
	uuidV7, err := uuid.NewV7()
	if err != nil {
		// UUIDv7依赖系统时钟，失败极罕见，退回V4
		uuidV7 = uuid.Must(uuid.NewV4())
	}
	submissionUUID := uuidV7.String()

	if !in.hasFile() || h.store == nil || h.store.Redis == nil {
		return submissionUUID, "", ""
	}

	fileMD5 := utils.CalculateMD5(in.FileBytes)
	exists, existingUUID, err := h.store.Redis.CheckAndSetFileMD5(c, fileMD5, submissionUUID)
	if err != nil {
		// 去重失败不阻断分析
		logger.Ctx(c).Warn().Err(err).Str("md5", fileMD5).Msg("文件MD5去重检查失败")
		return submissionUUID, "", ""
	}
	if exists {
		logger.Ctx(c).Info().
			Str("md5", fileMD5).
			Str("existing_uuid", existingUUID).
			Msg("检测到重复文件")
		return submissionUUID, existingUUID, ""
	}
	return submissionUUID, "", fileMD5
}

// lookupAnalysis 读取分析结果缓存，未命中或出错返回nil
func (h *AnalyzeHandler) lookupAnalysis(c context.Context, submissionUUID string) *types.AnalysisResult {
	if h.store == nil || h.store.Redis == nil || submissionUUID == "" {
		return nil
	}
	result, err := h.store.Redis.GetCachedAnalysis(c, submissionUUID)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			logger.Ctx(c).Warn().Err(err).Str("submission_uuid", submissionUUID).Msg("读取分析缓存失败")
		}
		return nil
	}
	return result
}

// persistAnalysis 尽力持久化：原始文件、MySQL记录与Redis缓存都是
// 异步可容忍的失败，不影响本次响应
func (h *AnalyzeHandler) persistAnalysis(c context.Context, in *resumeInput, submissionUUID, fileMD5 string, result *types.AnalysisResult) {
	if h.store == nil {
		return
	}

	var objectKey string
	if in.hasFile() && h.store.MinIO != nil {
		ext := strings.ToLower(filepath.Ext(in.Filename))
		key, err := h.store.MinIO.UploadOriginal(c, submissionUUID, ext,
			bytes.NewReader(in.FileBytes), int64(len(in.FileBytes)))
		if err != nil {
			logger.Ctx(c).Warn().
				Err(processor.NewStorageError(submissionUUID, err.Error())).
				Msg("留存原始文件失败")
		} else {
			objectKey = key
		}
	}

	if h.store.MySQL != nil {
		plan := h.engine.BuildImprovementPlan(result)
		record := &models.AnalysisRecord{
			SubmissionUUID:          submissionUUID,
			OriginalFilename:        in.Filename,
			FileMD5:                 fileMD5,
			OriginalObjectKey:       objectKey,
			JobTitle:                result.JobType.Title,
			JobTypeMethod:           result.JobType.Method,
			JobTypeConfidence:       result.JobType.Confidence,
			OverallScore:            result.OverallScore,
			Category:                result.Category,
			KeywordScore:            result.Factors.Keyword,
			SemanticScore:           result.Factors.Semantic,
			FormatScore:             result.Factors.Format,
			ContentScore:            result.Factors.Content,
			ATSScore:                result.Factors.ATS,
			JobDescriptionGenerated: result.JobDescriptionGenerated,
			EngineVersion:           h.engineVersion(),
			StructuredResume:        utils.ConvertToJSON(result.Structured),
			Recommendations:         utils.ConvertToJSON(result.Recommendations),
			ImprovementPlan:         utils.ConvertToJSON(plan),
			Warnings:                utils.ConvertArrayToJSON(result.Warnings),
		}
		if err := h.store.MySQL.SaveAnalysisRecord(c, record); err != nil {
			logger.Ctx(c).Warn().
				Err(processor.NewStorageError(submissionUUID, err.Error())).
				Msg("保存分析记录失败")
		}
	}

	if h.store.Redis != nil {
		if err := h.store.Redis.CacheAnalysisResult(c, result); err != nil {
			logger.Ctx(c).Warn().
				Err(processor.NewStorageError(submissionUUID, err.Error())).
				Msg("缓存分析结果失败")
		}
	}
}

func (h *AnalyzeHandler) engineVersion() string {
	if h.cfg != nil && h.cfg.ActiveEngineVersion != "" {
		return h.cfg.ActiveEngineVersion
	}
	return constants.DefaultEngineVer
}

// HandleHealth GET /health
func (h *AnalyzeHandler) HandleHealth(c context.Context, ctx *app.RequestContext) {
	ctx.JSON(consts.StatusOK, hertzutils.H{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	})
}
