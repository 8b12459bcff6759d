package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"ats-engine-go/internal/config"
	"ats-engine-go/internal/logger"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/minio/minio-go/v7/pkg/lifecycle"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var minioTracer = otel.Tracer("ats-engine-go/storage/minio")

// ObjectStorage 原始简历文件的对象存储接口
type ObjectStorage interface {
	UploadOriginal(ctx context.Context, submissionUUID, fileExt string, reader io.Reader, size int64) (string, error)
	DownloadFile(ctx context.Context, objectKey string) ([]byte, error)
	GetPresignedURL(ctx context.Context, objectKey string, expiry time.Duration) (string, error)
}

// MinIO 对象存储客户端封装
type MinIO struct {
	client *minio.Client
	cfg    *config.MinIOConfig
}

var _ ObjectStorage = (*MinIO)(nil)

// NewMinIO 创建MinIO客户端并确保存储桶存在
func NewMinIO(ctx context.Context, cfg *config.MinIOConfig) (*MinIO, error) {
	if cfg == nil {
		return nil, fmt.Errorf("MinIO配置不能为空")
	}
	if cfg.OriginalsBucket == "" {
		return nil, fmt.Errorf("未配置原始文件存储桶")
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("创建MinIO客户端失败: %w", err)
	}

	m := &MinIO{client: client, cfg: cfg}

	if err := m.ensureBucketExists(ctx, cfg.OriginalsBucket); err != nil {
		return nil, err
	}
	if cfg.OriginalFileExpireDays > 0 {
		if err := m.setupBucketLifecycle(ctx, cfg.OriginalsBucket, cfg.OriginalFileExpireDays); err != nil {
			// 生命周期配置失败不阻断启动，部分MinIO部署不支持
			logger.Warn().Err(err).
				Str("bucket", cfg.OriginalsBucket).
				Msg("配置存储桶生命周期失败")
		}
	}

	return m, nil
}

func (m *MinIO) ensureBucketExists(ctx context.Context, bucket string) error {
	exists, err := m.client.BucketExists(ctx, bucket)
	if err != nil {
		return fmt.Errorf("检查存储桶是否存在失败: %w", err)
	}
	if exists {
		return nil
	}

	err = m.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{Region: m.cfg.Location})
	if err != nil {
		// 并发创建时再确认一次
		exists, checkErr := m.client.BucketExists(ctx, bucket)
		if checkErr == nil && exists {
			return nil
		}
		return fmt.Errorf("创建存储桶失败: %w", err)
	}

	logger.Info().Str("bucket", bucket).Msg("已创建存储桶")
	return nil
}

// setupBucketLifecycle 设置原始文件的自动过期规则
func (m *MinIO) setupBucketLifecycle(ctx context.Context, bucket string, expireDays int) error {
	cfg := lifecycle.NewConfiguration()
	cfg.Rules = []lifecycle.Rule{
		{
			ID:     "expire-original-resumes",
			Status: "Enabled",
			Expiration: lifecycle.Expiration{
				Days: lifecycle.ExpirationDays(expireDays),
			},
		},
	}
	if err := m.client.SetBucketLifecycle(ctx, bucket, cfg); err != nil {
		return fmt.Errorf("设置存储桶生命周期失败: %w", err)
	}
	return nil
}

// UploadOriginal 上传原始简历文件，对象键为 resumes/{submissionUUID}{fileExt}
func (m *MinIO) UploadOriginal(ctx context.Context, submissionUUID, fileExt string, reader io.Reader, size int64) (string, error) {
	ctx, span := minioTracer.Start(ctx, "MinIO.UploadOriginal",
		trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	objectKey := fmt.Sprintf("resumes/%s%s", submissionUUID, fileExt)
	span.SetAttributes(
		attribute.String("minio.bucket", m.cfg.OriginalsBucket),
		attribute.String("minio.object_key", objectKey),
		attribute.Int64("minio.object_size", size),
	)

	_, err := m.client.PutObject(ctx, m.cfg.OriginalsBucket, objectKey, reader, size,
		minio.PutObjectOptions{ContentType: getContentType(fileExt)})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", fmt.Errorf("上传原始文件失败: %w", err)
	}

	span.SetStatus(codes.Ok, "")
	return objectKey, nil
}

// DownloadFile 下载对象内容
func (m *MinIO) DownloadFile(ctx context.Context, objectKey string) ([]byte, error) {
	ctx, span := minioTracer.Start(ctx, "MinIO.DownloadFile",
		trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()
	span.SetAttributes(
		attribute.String("minio.bucket", m.cfg.OriginalsBucket),
		attribute.String("minio.object_key", objectKey),
	)

	obj, err := m.client.GetObject(ctx, m.cfg.OriginalsBucket, objectKey, minio.GetObjectOptions{})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("获取对象失败: %w", err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("读取对象内容失败: %w", err)
	}

	span.SetStatus(codes.Ok, "")
	return data, nil
}

// GetPresignedURL 生成限时下载链接
func (m *MinIO) GetPresignedURL(ctx context.Context, objectKey string, expiry time.Duration) (string, error) {
	reqParams := make(url.Values)
	reqParams.Set("response-content-disposition",
		fmt.Sprintf(`attachment; filename="%s"`, filepath.Base(objectKey)))

	u, err := m.client.PresignedGetObject(ctx, m.cfg.OriginalsBucket, objectKey, expiry, reqParams)
	if err != nil {
		return "", fmt.Errorf("生成预签名链接失败: %w", err)
	}
	return u.String(), nil
}

func getContentType(fileExt string) string {
	switch strings.ToLower(fileExt) {
	case ".pdf":
		return "application/pdf"
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case ".doc":
		return "application/msword"
	case ".txt":
		return "text/plain"
	default:
		return "application/octet-stream"
	}
}
