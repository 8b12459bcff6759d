package storage

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"ats-engine-go/internal/config"
	"ats-engine-go/internal/storage/models"
	"ats-engine-go/internal/tracing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

var mysqlTracer = otel.Tracer("ats-engine-go/storage/mysql")

// ErrRecordNotFound 查询不到记录时返回，包装GORM同名错误便于上层判断
var ErrRecordNotFound = gorm.ErrRecordNotFound

// MySQL 分析记录的关系数据库存储
type MySQL struct {
	db  *gorm.DB
	cfg *config.MySQLConfig
}

// NewMySQL 创建MySQL客户端并自动迁移表结构
func NewMySQL(cfg *config.MySQLConfig) (*MySQL, error) {
	if cfg == nil {
		return nil, fmt.Errorf("MySQL配置不能为空")
	}

	// 构建DSN，带超时设置
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local&timeout=%ds&readTimeout=%ds&writeTimeout=%ds",
		cfg.Username, cfg.Password, cfg.Host, cfg.Port, cfg.Database,
		cfg.ConnectTimeoutSeconds, cfg.ReadTimeoutSeconds, cfg.WriteTimeoutSeconds)

	// 配置GORM日志级别
	var logLevel logger.LogLevel
	switch cfg.LogLevel {
	case 1:
		logLevel = logger.Silent
	case 2:
		logLevel = logger.Error
	case 3:
		logLevel = logger.Warn
	case 4:
		logLevel = logger.Info
	default:
		logLevel = logger.Warn
	}

	gormConfig := &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   logger.Default.LogMode(logLevel),
		PrepareStmt:                              true,
		NowFunc: func() time.Time {
			return time.Now().Local()
		},
	}

	db, err := gorm.Open(mysql.Open(dsn), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("连接MySQL失败: %w", err)
	}

	// 连接池参数
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取底层 sql.DB 失败: %w", err)
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetimeMinutes) * time.Minute)
	sqlDB.SetConnMaxIdleTime(time.Duration(cfg.ConnMaxIdleTimeMinutes) * time.Minute)

	m := &MySQL{db: db, cfg: cfg}

	if err := m.autoMigrateSchema(); err != nil {
		if sqlDB, dbErr := db.DB(); dbErr == nil {
			_ = sqlDB.Close()
		}
		return nil, fmt.Errorf("自动迁移数据库结构失败: %w", err)
	}

	return m, nil
}

// autoMigrateSchema 自动迁移表结构，迁移阶段静默SQL日志
func (m *MySQL) autoMigrateSchema() error {
	silentLogger := logger.New(
		log.New(log.Writer(), "", log.LstdFlags),
		logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Silent,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
	silentDB := m.db.Session(&gorm.Session{Logger: silentLogger})

	if err := silentDB.AutoMigrate(&models.AnalysisRecord{}); err != nil {
		return fmt.Errorf("GORM自动迁移失败: %w", err)
	}
	return nil
}

// DB 返回GORM数据库连接实例
func (m *MySQL) DB() *gorm.DB {
	return m.db
}

// Close 关闭数据库连接
func (m *MySQL) Close() error {
	sqlDB, err := m.db.DB()
	if err != nil {
		return fmt.Errorf("获取底层 sql.DB 失败: %w", err)
	}
	return sqlDB.Close()
}

// SaveAnalysisRecord 保存分析记录；同一submission_uuid重复分析时覆盖评分与JSON载荷
func (m *MySQL) SaveAnalysisRecord(ctx context.Context, record *models.AnalysisRecord) error {
	ctx, span := mysqlTracer.Start(ctx, "MySQL.SaveAnalysisRecord",
		trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	span.SetAttributes(
		semconv.DBSystemMySQL,
		attribute.String("db.name", m.cfg.Database),
		attribute.String("db.sql.table", models.AnalysisRecord{}.TableName()),
		attribute.String("submission.uuid", record.SubmissionUUID),
	)

	err := m.db.WithContext(ctx).Clauses(
		clause.OnConflict{
			Columns: []clause.Column{{Name: "submission_uuid"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"job_title", "job_type_method", "job_type_confidence",
				"overall_score", "category",
				"keyword_score", "semantic_score", "format_score", "content_score", "ats_score",
				"job_description_generated", "engine_version",
				"structured_resume", "recommendations", "improvement_plan", "warnings",
				"updated_at",
			}),
		}).Create(record).Error
	if err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeDB)
		return err
	}

	span.SetStatus(codes.Ok, "")
	return nil
}

// GetAnalysisBySubmissionUUID 按提交UUID查询分析记录
func (m *MySQL) GetAnalysisBySubmissionUUID(ctx context.Context, submissionUUID string) (*models.AnalysisRecord, error) {
	ctx, span := mysqlTracer.Start(ctx, "MySQL.GetAnalysisBySubmissionUUID",
		trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	span.SetAttributes(
		semconv.DBSystemMySQL,
		attribute.String("db.name", m.cfg.Database),
		attribute.String("submission.uuid", submissionUUID),
	)

	var record models.AnalysisRecord
	err := m.db.WithContext(ctx).
		Where("submission_uuid = ?", submissionUUID).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// 未找到是业务正常情况，不算span错误
			span.SetAttributes(attribute.Bool("record.found", false))
			span.SetStatus(codes.Ok, "record not found")
			return nil, ErrRecordNotFound
		}
		tracing.RecordError(span, err, tracing.ErrorTypeDB)
		return nil, fmt.Errorf("查询分析记录失败: %w", err)
	}

	span.SetAttributes(attribute.Bool("record.found", true))
	span.SetStatus(codes.Ok, "")
	return &record, nil
}

// GetAnalysisByFileMD5 按文件MD5查询最近一条分析记录，用于重复上传直接返回历史结果
func (m *MySQL) GetAnalysisByFileMD5(ctx context.Context, fileMD5 string) (*models.AnalysisRecord, error) {
	var record models.AnalysisRecord
	err := m.db.WithContext(ctx).
		Where("file_md5 = ?", fileMD5).
		Order("created_at DESC").
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("按MD5查询分析记录失败: %w", err)
	}
	return &record, nil
}
