package processor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/saniyaacharya04/Resume-Scanner-using-NLP/internal/config"
	"github.com/saniyaacharya04/Resume-Scanner-using-NLP/internal/parser"
	"github.com/saniyaacharya04/Resume-Scanner-using-NLP/internal/scoring"
	"github.com/saniyaacharya04/Resume-Scanner-using-NLP/internal/storage"
	"github.com/saniyaacharya04/Resume-Scanner-using-NLP/internal/tracing"
	"github.com/saniyaacharya04/Resume-Scanner-using-NLP/internal/types"
)

var processorTracer = otel.Tracer("resume-scanner/processor")

// ScanProcessor 消费扫描任务：取回简历原件、抽取文本、评分并落库。
// 单份简历失败只影响该简历，不会中断批次内其他任务。
type ScanProcessor struct {
	cfg       *config.Config
	storage   *storage.Storage
	scorer    *scoring.Scorer
	extractor *parser.TextExtractor
	log       zerolog.Logger
}

// NewScanProcessor 创建扫描任务处理器
func NewScanProcessor(cfg *config.Config, store *storage.Storage, scorer *scoring.Scorer, extractor *parser.TextExtractor, log zerolog.Logger) *ScanProcessor {
	return &ScanProcessor{
		cfg:       cfg,
		storage:   store,
		scorer:    scorer,
		extractor: extractor,
		log:       log.With().Str("component", "scan_processor").Logger(),
	}
}

// HandleScanTask 处理单条扫描任务的完整流程
func (p *ScanProcessor) HandleScanTask(ctx context.Context, task storage.ScanTaskMessage) error {
	ctx, span := processorTracer.Start(ctx, "ScanProcessor.HandleScanTask")
	defer span.End()
	span.SetAttributes(
		attribute.String("batch_id", task.BatchID),
		attribute.String("filename", task.Filename),
	)

	log := p.log.With().
		Str("batch_id", task.BatchID).
		Str("filename", task.Filename).
		Logger()

	start := time.Now()

	// 1. 取回批次的JD与必需技能
	job, err := p.loadJobRequirement(ctx, task.BatchID)
	if err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeDB)
		return fmt.Errorf("加载批次信息失败: %w", err)
	}

	// 2. 下载简历原件并抽取文本
	data, err := p.storage.MinIO.GetResume(ctx, task.ObjectKey)
	if err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeObjectStore)
		return fmt.Errorf("下载简历原件失败: %w", err)
	}

	text := p.extractor.Extract(ctx, task.Filename, data)
	if text == "" {
		log.Warn().Msg("简历文本抽取为空，将以空文本评分")
	}

	// 3. 评分
	candidate := p.scorer.ProcessResume(ctx, scoring.ResumeInput{
		Identifier: task.Filename,
		RawText:    text,
	}, job)

	// 4. 落库
	result, err := storage.CandidateResultFromTypes(task.BatchID, task.ObjectKey, candidate)
	if err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeInternal)
		return err
	}
	if err := p.storage.MySQL.SaveCandidateResult(ctx, result); err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeDB)
		return err
	}
	if err := p.storage.Redis.InvalidateRanking(ctx, task.BatchID); err != nil {
		log.Warn().Err(err).Msg("失效排名缓存失败")
	}

	// 5. 辅助产物：解析文本与向量，失败不影响评分结果
	p.storeSideArtifacts(ctx, task, candidate, text)

	log.Info().
		Float64("final_score", candidate.Score.FinalScore).
		Dur("elapsed", time.Since(start)).
		Msg("扫描任务处理完成")
	span.SetStatus(codes.Ok, "")
	return nil
}

// loadJobRequirement 优先读Redis缓存的JD，未命中回源MySQL
func (p *ScanProcessor) loadJobRequirement(ctx context.Context, batchID string) (types.JobRequirement, error) {
	batch, err := p.storage.MySQL.GetBatch(ctx, batchID)
	if err != nil {
		return types.JobRequirement{}, err
	}

	var skills []string
	if len(batch.RequiredSkillsJSON) > 0 {
		if err := json.Unmarshal(batch.RequiredSkillsJSON, &skills); err != nil {
			return types.JobRequirement{}, fmt.Errorf("解析必需技能失败: %w", err)
		}
	}

	description := batch.JobDescription
	if cached, err := p.storage.Redis.GetJobDescription(ctx, batchID); err == nil {
		description = cached
	} else if !errors.Is(err, storage.ErrCacheMiss) {
		p.log.Warn().Err(err).Str("batch_id", batchID).Msg("读取JD缓存失败，使用数据库JD")
	}

	return types.JobRequirement{
		DescriptionText: description,
		RequiredSkills:  skills,
	}, nil
}

// storeSideArtifacts 保存解析文本与简历向量。
// 这些产物服务于复核与语义检索，任何失败仅记录告警。
func (p *ScanProcessor) storeSideArtifacts(ctx context.Context, task storage.ScanTaskMessage, candidate *types.Candidate, text string) {
	log := p.log.With().
		Str("batch_id", task.BatchID).
		Str("filename", task.Filename).
		Logger()

	if text != "" {
		if _, err := p.storage.MinIO.UploadParsedText(ctx, task.ObjectKey, text); err != nil {
			log.Warn().Err(err).Msg("保存解析文本失败")
		}
	}

	vector, err := p.resumeEmbedding(ctx, text)
	if err != nil {
		log.Warn().Err(err).Msg("获取简历向量失败，跳过向量入库")
		return
	}

	payload := map[string]interface{}{
		"candidate_name":   candidate.Entities.Name,
		"experience_years": candidate.Entities.ExperienceYears,
		"experience_level": string(candidate.Level),
		"final_score":      candidate.Score.FinalScore,
	}
	if _, err := p.storage.Qdrant.StoreResumeVector(ctx, task.BatchID, task.Filename, vector, payload); err != nil {
		log.Warn().Err(err).Msg("简历向量入库失败")
	}
}

// resumeEmbedding 带Redis缓存的文本嵌入
func (p *ScanProcessor) resumeEmbedding(ctx context.Context, text string) ([]float64, error) {
	if text == "" {
		return nil, fmt.Errorf("文本为空")
	}

	if vector, err := p.storage.Redis.GetCachedEmbedding(ctx, text); err == nil {
		return vector, nil
	} else if !errors.Is(err, storage.ErrCacheMiss) {
		p.log.Warn().Err(err).Msg("读取嵌入缓存失败")
	}

	vector, err := p.scorer.EmbedText(ctx, text)
	if err != nil {
		return nil, err
	}
	if err := p.storage.Redis.CacheEmbedding(ctx, text, vector); err != nil {
		p.log.Warn().Err(err).Msg("写入嵌入缓存失败")
	}
	return vector, nil
}
