package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"gorm.io/datatypes"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/saniyaacharya04/Resume-Scanner-using-NLP/internal/config"
	"github.com/saniyaacharya04/Resume-Scanner-using-NLP/internal/storage/models"
	"github.com/saniyaacharya04/Resume-Scanner-using-NLP/internal/tracing"
	"github.com/saniyaacharya04/Resume-Scanner-using-NLP/internal/types"
)

var mysqlTracer = otel.Tracer("resume-scanner/storage/mysql")

// MySQL 封装 GORM 数据库连接，负责批次与评分结果的持久化
type MySQL struct {
	db *gorm.DB
}

// NewMySQL 创建 MySQL 连接并完成表结构迁移
func NewMySQL(cfg config.MySQLConfig) (*MySQL, error) {
	db, err := gorm.Open(mysql.Open(cfg.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("连接MySQL失败: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取底层sql.DB失败: %w", err)
	}
	maxOpen := cfg.MaxOpenConns
	if maxOpen <= 0 {
		maxOpen = 50
	}
	maxIdle := cfg.MaxIdleConns
	if maxIdle <= 0 {
		maxIdle = 10
	}
	lifetime := time.Duration(cfg.ConnMaxLifetime) * time.Minute
	if lifetime <= 0 {
		lifetime = time.Hour
	}
	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetMaxIdleConns(maxIdle)
	sqlDB.SetConnMaxLifetime(lifetime)

	if err := db.AutoMigrate(&models.ScanBatch{}, &models.CandidateResult{}); err != nil {
		return nil, fmt.Errorf("迁移表结构失败: %w", err)
	}

	return &MySQL{db: db}, nil
}

// DB 暴露底层GORM实例，供需要自定义查询的调用方使用
func (m *MySQL) DB() *gorm.DB {
	return m.db
}

func (m *MySQL) Close() error {
	sqlDB, err := m.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// CreateBatch 创建扫描批次记录
func (m *MySQL) CreateBatch(ctx context.Context, batch *models.ScanBatch) error {
	ctx, span := mysqlTracer.Start(ctx, "MySQL.CreateBatch")
	defer span.End()
	span.SetAttributes(attribute.String("batch_id", batch.BatchID))

	if err := m.db.WithContext(ctx).Create(batch).Error; err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeDB)
		return fmt.Errorf("创建批次记录失败: %w", err)
	}
	span.SetStatus(codes.Ok, "")
	return nil
}

// GetBatch 按批次ID查询批次信息，不存在时返回 gorm.ErrRecordNotFound
func (m *MySQL) GetBatch(ctx context.Context, batchID string) (*models.ScanBatch, error) {
	ctx, span := mysqlTracer.Start(ctx, "MySQL.GetBatch")
	defer span.End()
	span.SetAttributes(attribute.String("batch_id", batchID))

	var batch models.ScanBatch
	if err := m.db.WithContext(ctx).Where("batch_id = ?", batchID).First(&batch).Error; err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeDB)
		return nil, err
	}
	return &batch, nil
}

// SaveCandidateResult 保存单个候选人的评分结果。
// 同一批次内同名文件重复提交按更新处理。
func (m *MySQL) SaveCandidateResult(ctx context.Context, result *models.CandidateResult) error {
	ctx, span := mysqlTracer.Start(ctx, "MySQL.SaveCandidateResult")
	defer span.End()
	span.SetAttributes(
		attribute.String("batch_id", result.BatchID),
		attribute.String("filename", result.Filename),
	)

	err := m.db.WithContext(ctx).
		Where("batch_id = ? AND filename = ?", result.BatchID, result.Filename).
		Assign(map[string]interface{}{
			"candidate_name":      result.CandidateName,
			"email":               result.Email,
			"phone":               result.Phone,
			"education_json":      result.EducationJSON,
			"experience_years":    result.ExperienceYears,
			"experience_level":    result.ExperienceLevel,
			"final_score":         result.FinalScore,
			"skill_ratio":         result.SkillRatio,
			"lexical_similarity":  result.LexicalSimilarity,
			"semantic_similarity": result.SemanticSimilarity,
			"skills_found_json":   result.SkillsFoundJSON,
			"warnings_json":       result.WarningsJSON,
			"object_key":          result.ObjectKey,
		}).
		FirstOrCreate(result).Error
	if err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeDB)
		return fmt.Errorf("保存评分结果失败: %w", err)
	}
	span.SetStatus(codes.Ok, "")
	return nil
}

// ListCandidateResults 查询批次内全部评分结果，按最终得分降序。
// 得分相同的记录按自增ID升序，即先入库者在前。
func (m *MySQL) ListCandidateResults(ctx context.Context, batchID string) ([]models.CandidateResult, error) {
	ctx, span := mysqlTracer.Start(ctx, "MySQL.ListCandidateResults")
	defer span.End()
	span.SetAttributes(attribute.String("batch_id", batchID))

	var results []models.CandidateResult
	err := m.db.WithContext(ctx).
		Where("batch_id = ?", batchID).
		Order("final_score DESC, id ASC").
		Find(&results).Error
	if err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeDB)
		return nil, fmt.Errorf("查询批次评分结果失败: %w", err)
	}
	span.SetAttributes(attribute.Int("result_count", len(results)))
	return results, nil
}

// CandidateResultFromTypes 将评分流水线产出的候选人转换为数据库模型
func CandidateResultFromTypes(batchID, objectKey string, c *types.Candidate) (*models.CandidateResult, error) {
	education, err := json.Marshal(c.Entities.Education)
	if err != nil {
		return nil, fmt.Errorf("序列化学历信息失败: %w", err)
	}
	skills, err := json.Marshal(c.Score.SkillsFound)
	if err != nil {
		return nil, fmt.Errorf("序列化技能列表失败: %w", err)
	}
	warnings, err := json.Marshal(c.Warnings)
	if err != nil {
		return nil, fmt.Errorf("序列化警告列表失败: %w", err)
	}
	return &models.CandidateResult{
		BatchID:            batchID,
		Filename:           c.Identifier,
		CandidateName:      c.Entities.Name,
		Email:              c.Entities.Email,
		Phone:              c.Entities.Phone,
		EducationJSON:      datatypes.JSON(education),
		ExperienceYears:    c.Entities.ExperienceYears,
		ExperienceLevel:    string(c.Level),
		FinalScore:         c.Score.FinalScore,
		SkillRatio:         c.Score.SkillRatio,
		LexicalSimilarity:  c.Score.LexicalSimilarity,
		SemanticSimilarity: c.Score.SemanticSimilarity,
		SkillsFoundJSON:    datatypes.JSON(skills),
		WarningsJSON:       datatypes.JSON(warnings),
		ObjectKey:          objectKey,
	}, nil
}
