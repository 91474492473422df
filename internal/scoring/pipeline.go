package scoring

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/saniyaacharya04/Resume-Scanner-using-NLP/internal/logger"
	"github.com/saniyaacharya04/Resume-Scanner-using-NLP/internal/textproc"
	"github.com/saniyaacharya04/Resume-Scanner-using-NLP/internal/tracing"
	"github.com/saniyaacharya04/Resume-Scanner-using-NLP/internal/types"
)

// 评分流水线专用tracer
var scoringTracer = otel.Tracer("resume-scanner/scoring")

// ResumeInput 批量评分的单份输入
type ResumeInput struct {
	// Identifier 候选人标识（源文件名）
	Identifier string
	// RawText 提取出的原始文本，可为空（提取失败时各项得分为0）
	RawText string
}

// Scorer 评分流水线。组合技能匹配、词法相似度与语义相似度，
// 对每份简历产出一个加权得分。依赖通过构造函数注入，
// 没有进程级全局模型状态，便于在测试中替换。
type Scorer struct {
	normalizer *textproc.Normalizer
	matcher    *SkillMatcher
	embedder   TextEmbedder
	entities   EntityExtractor
	workers    int
	log        zerolog.Logger
}

// ScorerOption Scorer的配置选项
type ScorerOption func(*Scorer)

// WithEntityExtractor 注入实体抽取器
func WithEntityExtractor(extractor EntityExtractor) ScorerOption {
	return func(s *Scorer) {
		s.entities = extractor
	}
}

// WithWorkers 设置批量评分的并发数
func WithWorkers(n int) ScorerOption {
	return func(s *Scorer) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithLogger 注入日志记录器
func WithLogger(log zerolog.Logger) ScorerOption {
	return func(s *Scorer) {
		s.log = log
	}
}

// NewScorer 创建评分流水线。
// embedder 可为nil，此时所有候选人都走结构得分降级路径。
func NewScorer(normalizer *textproc.Normalizer, vocabulary []string, embedder TextEmbedder, options ...ScorerOption) *Scorer {
	s := &Scorer{
		normalizer: normalizer,
		matcher:    NewSkillMatcher(vocabulary),
		embedder:   embedder,
		workers:    4,
		log:        logger.Logger,
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

// Matcher 返回底层的技能匹配器
func (s *Scorer) Matcher() *SkillMatcher {
	return s.matcher
}

// EmbedText 通过注入的嵌入服务向量化单段文本。
// 失败时返回包装了ErrEmbeddingService的错误。
func (s *Scorer) EmbedText(ctx context.Context, text string) ([]float64, error) {
	if s.embedder == nil {
		return nil, ErrEmbeddingService
	}
	vectors, err := s.embedder.EmbedStrings(ctx, []string{text})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEmbeddingService, err)
	}
	if len(vectors) == 0 || len(vectors[0]) == 0 {
		return nil, fmt.Errorf("%w: 返回了空向量", ErrEmbeddingService)
	}
	return vectors[0], nil
}

// ScoreCandidate 对单份简历计算完整评分明细。
// 嵌入失败不是错误：按统一降级策略去掉语义项，以结构得分作为最终得分，
// 并在返回的warnings中附加说明。
func (s *Scorer) ScoreCandidate(ctx context.Context, resumeText string, job types.JobRequirement) (types.ScoreBreakdown, []string) {
	ctx, span := scoringTracer.Start(ctx, "scoring.ScoreCandidate",
		trace.WithAttributes(attribute.Int("resume.text_length", len(resumeText))))
	defer span.End()

	breakdown, warnings := s.scoreStructural(resumeText, job)

	semantic, err := s.semanticSimilarity(ctx, resumeText, job.DescriptionText)
	if err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeEmbedding)
		s.log.Warn().Err(err).Msg("嵌入服务调用失败，降级为结构得分")
		warnings = append(warnings, "嵌入服务不可用，最终得分仅由结构项构成")
		breakdown.FinalScore = StructuralOnlyScore(breakdown.SkillRatio, breakdown.LexicalSimilarity)
		return breakdown, warnings
	}

	breakdown.SemanticSimilarity = semantic
	breakdown.FinalScore, _ = CombineScores(breakdown.SkillRatio, breakdown.LexicalSimilarity, semantic)

	span.SetAttributes(
		attribute.Float64("score.final", breakdown.FinalScore),
		attribute.Float64("score.skill_ratio", breakdown.SkillRatio),
	)
	return breakdown, warnings
}

// scoreStructural 计算不依赖外部服务的结构项：技能占比与词法相似度
func (s *Scorer) scoreStructural(resumeText string, job types.JobRequirement) (types.ScoreBreakdown, []string) {
	var warnings []string

	skillsFound := s.matcher.ExtractSkills(resumeText)
	ratio := SkillRatio(skillsFound, job.RequiredSkills)

	resumeNorm := s.normalizer.Normalize(resumeText)
	jdNorm := s.normalizer.Normalize(job.DescriptionText)
	if resumeNorm == "" {
		warnings = append(warnings, "简历归一化后为空，词法与技能得分为0")
	}
	lexical := LexicalSimilarity(resumeNorm, jdNorm)

	return types.ScoreBreakdown{
		SkillRatio:        ratio,
		LexicalSimilarity: lexical,
		SkillsFound:       skillsFound,
	}, warnings
}

// semanticSimilarity 对两段原文（非归一化）各取一次嵌入并计算余弦相似度
func (s *Scorer) semanticSimilarity(ctx context.Context, resumeText, jobText string) (float64, error) {
	if s.embedder == nil {
		return 0, ErrEmbeddingService
	}
	vectors, err := s.embedder.EmbedStrings(ctx, []string{resumeText, jobText})
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrEmbeddingService, err)
	}
	if len(vectors) != 2 {
		return 0, fmt.Errorf("%w: 期望2个向量，得到%d个", ErrEmbeddingService, len(vectors))
	}
	return SemanticSimilarity(vectors[0], vectors[1]), nil
}

// ProcessResume 对单份简历执行完整流水线：实体抽取、经验分级、评分。
// 永不失败：提取为空的文本产出零分记录，嵌入失败走降级路径。
func (s *Scorer) ProcessResume(ctx context.Context, input ResumeInput, job types.JobRequirement) *types.Candidate {
	candidate := &types.Candidate{
		Identifier:     input.Identifier,
		RawText:        input.RawText,
		NormalizedText: s.normalizer.Normalize(input.RawText),
	}

	if s.entities != nil {
		candidate.Entities = s.entities.ExtractEntities(input.RawText)
	}
	candidate.Level = ClassifyExperience(candidate.Entities.ExperienceYears)

	if input.RawText == "" {
		candidate.Warnings = append(candidate.Warnings, "文本提取结果为空，各项得分为0")
	}

	breakdown, warnings := s.ScoreCandidate(ctx, input.RawText, job)
	candidate.Score = breakdown
	candidate.Warnings = append(candidate.Warnings, warnings...)
	return candidate
}

// ScoreBatch 并行评分一个批次。候选人之间无共享可变状态，
// 单个候选人的失败被隔离为该记录上的告警，不会中断批次。
// 返回顺序与输入一致；排序由调用方通过Rank完成。
func (s *Scorer) ScoreBatch(ctx context.Context, inputs []ResumeInput, job types.JobRequirement) []*types.Candidate {
	ctx, span := scoringTracer.Start(ctx, "scoring.ScoreBatch",
		trace.WithAttributes(attribute.Int("batch.size", len(inputs))))
	defer span.End()

	results := make([]*types.Candidate, len(inputs))
	sem := make(chan struct{}, s.workers)
	var wg sync.WaitGroup

	for i, input := range inputs {
		wg.Add(1)
		go func(idx int, in ResumeInput) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			results[idx] = s.ProcessResume(ctx, in, job)
		}(i, input)
	}
	wg.Wait()

	return results
}
