package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/saniyaacharya04/Resume-Scanner-using-NLP/internal/config"
	"github.com/saniyaacharya04/Resume-Scanner-using-NLP/internal/constants"
	"github.com/saniyaacharya04/Resume-Scanner-using-NLP/internal/report"
	"github.com/saniyaacharya04/Resume-Scanner-using-NLP/internal/scoring"
	"github.com/saniyaacharya04/Resume-Scanner-using-NLP/internal/storage"
	"github.com/saniyaacharya04/Resume-Scanner-using-NLP/internal/storage/models"
	"github.com/saniyaacharya04/Resume-Scanner-using-NLP/internal/types"
)

// ScanHandler 评分业务处理器，协调批次创建、简历上传与结果查询
type ScanHandler struct {
	cfg     *config.Config
	storage *storage.Storage
	scorer  *scoring.Scorer
	log     zerolog.Logger
}

// NewScanHandler 创建评分处理器
func NewScanHandler(cfg *config.Config, store *storage.Storage, scorer *scoring.Scorer, log zerolog.Logger) *ScanHandler {
	return &ScanHandler{
		cfg:     cfg,
		storage: store,
		scorer:  scorer,
		log:     log.With().Str("component", "scan_handler").Logger(),
	}
}

// ScoreRequest 单份简历同步评分请求
type ScoreRequest struct {
	ResumeText     string   `json:"resume_text"`
	JobDescription string   `json:"job_description"`
	RequiredSkills []string `json:"required_skills"`
}

// ScoreResponse 单份简历评分结果
type ScoreResponse struct {
	FinalScore         float64  `json:"final_score"`
	SkillRatio         float64  `json:"skill_ratio"`
	LexicalSimilarity  float64  `json:"lexical_similarity"`
	SemanticSimilarity float64  `json:"semantic_similarity"`
	SkillsFound        []string `json:"skills_found"`
	ExperienceYears    float64  `json:"experience_years"`
	ExperienceLevel    string   `json:"experience_level"`
	Entities           EntityPayload `json:"entities"`
	Warnings           []string `json:"warnings,omitempty"`
}

// EntityPayload 实体抽取结果
type EntityPayload struct {
	Name      string   `json:"name,omitempty"`
	Email     string   `json:"email,omitempty"`
	Phone     string   `json:"phone,omitempty"`
	Education []string `json:"education,omitempty"`
}

// ScoreSingle 同步评分一份简历文本。
// 未显式给出必需技能时，从JD文本中按词表抽取。
func (h *ScanHandler) ScoreSingle(ctx context.Context, req ScoreRequest) (*ScoreResponse, error) {
	if req.JobDescription == "" {
		return nil, fmt.Errorf("job_description不能为空")
	}

	skills := req.RequiredSkills
	if len(skills) == 0 {
		skills = h.scorer.Matcher().ExtractSkills(req.JobDescription)
	}

	candidate := h.scorer.ProcessResume(ctx, scoring.ResumeInput{
		Identifier: "inline",
		RawText:    req.ResumeText,
	}, types.JobRequirement{
		DescriptionText: req.JobDescription,
		RequiredSkills:  skills,
	})

	return &ScoreResponse{
		FinalScore:         candidate.Score.FinalScore,
		SkillRatio:         candidate.Score.SkillRatio,
		LexicalSimilarity:  candidate.Score.LexicalSimilarity,
		SemanticSimilarity: candidate.Score.SemanticSimilarity,
		SkillsFound:        candidate.Score.SkillsFound,
		ExperienceYears:    candidate.Entities.ExperienceYears,
		ExperienceLevel:    string(candidate.Level),
		Entities: EntityPayload{
			Name:      candidate.Entities.Name,
			Email:     candidate.Entities.Email,
			Phone:     candidate.Entities.Phone,
			Education: candidate.Entities.Education,
		},
		Warnings: candidate.Warnings,
	}, nil
}

// CreateBatchRequest 创建扫描批次请求
type CreateBatchRequest struct {
	JobDescription string   `json:"job_description"`
	RequiredSkills []string `json:"required_skills"`
}

// CreateBatchResponse 创建扫描批次响应
type CreateBatchResponse struct {
	BatchID        string   `json:"batch_id"`
	RequiredSkills []string `json:"required_skills"`
}

// CreateBatch 创建扫描批次并缓存JD
func (h *ScanHandler) CreateBatch(ctx context.Context, req CreateBatchRequest) (*CreateBatchResponse, error) {
	if req.JobDescription == "" {
		return nil, fmt.Errorf("job_description不能为空")
	}

	skills := req.RequiredSkills
	if len(skills) == 0 {
		skills = h.scorer.Matcher().ExtractSkills(req.JobDescription)
	}

	uuidV7, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("生成批次ID失败: %w", err)
	}
	batchID := uuidV7.String()

	skillsJSON, err := json.Marshal(skills)
	if err != nil {
		return nil, fmt.Errorf("序列化必需技能失败: %w", err)
	}

	batch := &models.ScanBatch{
		BatchID:            batchID,
		JobDescription:     req.JobDescription,
		RequiredSkillsJSON: datatypes.JSON(skillsJSON),
		ScannerVersion:     constants.ScannerVersion,
	}
	if err := h.storage.MySQL.CreateBatch(ctx, batch); err != nil {
		return nil, err
	}

	if err := h.storage.Redis.CacheJobDescription(ctx, batchID, req.JobDescription); err != nil {
		h.log.Warn().Err(err).Str("batch_id", batchID).Msg("缓存JD失败")
	}

	h.log.Info().Str("batch_id", batchID).Int("skill_count", len(skills)).Msg("创建扫描批次")
	return &CreateBatchResponse{BatchID: batchID, RequiredSkills: skills}, nil
}

// UploadResumeResponse 简历上传响应
type UploadResumeResponse struct {
	Filename  string `json:"filename"`
	ObjectKey string `json:"object_key"`
	Status    string `json:"status"`
}

// UploadResume 接收一份简历：原件入对象存储，扫描任务入队
func (h *ScanHandler) UploadResume(ctx context.Context, batchID, filename string, reader io.Reader, size int64, contentType string) (*UploadResumeResponse, error) {
	if _, err := h.storage.MySQL.GetBatch(ctx, batchID); err != nil {
		return nil, err
	}

	objectKey, err := h.storage.MinIO.UploadResume(ctx, batchID, filename, reader, size, contentType)
	if err != nil {
		return nil, err
	}

	task := storage.ScanTaskMessage{
		BatchID:   batchID,
		ObjectKey: objectKey,
		Filename:  filename,
	}
	if err := h.storage.RabbitMQ.PublishScanTask(ctx, task); err != nil {
		return nil, err
	}

	h.log.Info().Str("batch_id", batchID).Str("filename", filename).Msg("简历已入队")
	return &UploadResumeResponse{
		Filename:  filename,
		ObjectKey: objectKey,
		Status:    "QUEUED",
	}, nil
}

// RankedCandidate 排名中的一条候选人记录
type RankedCandidate struct {
	Rank               int      `json:"rank"`
	Filename           string   `json:"filename"`
	CandidateName      string   `json:"candidate_name,omitempty"`
	Email              string   `json:"email,omitempty"`
	Phone              string   `json:"phone,omitempty"`
	Education          []string `json:"education,omitempty"`
	ExperienceYears    float64  `json:"experience_years"`
	ExperienceLevel    string   `json:"experience_level"`
	FinalScore         float64  `json:"final_score"`
	SkillRatio         float64  `json:"skill_ratio"`
	LexicalSimilarity  float64  `json:"lexical_similarity"`
	SemanticSimilarity float64  `json:"semantic_similarity"`
	SkillsFound        []string `json:"skills_found,omitempty"`
	Warnings           []string `json:"warnings,omitempty"`
}

// RankingResponse 批次排名响应
type RankingResponse struct {
	BatchID     string            `json:"batch_id"`
	GeneratedAt time.Time         `json:"generated_at"`
	Candidates  []RankedCandidate `json:"candidates"`
}

// GetRanking 查询批次排名。无过滤条件时优先走Redis快照。
func (h *ScanHandler) GetRanking(ctx context.Context, batchID string, filter scoring.FilterOptions) (*RankingResponse, error) {
	unfiltered := filter.IsZero()
	if unfiltered {
		if data, err := h.storage.Redis.GetCachedRanking(ctx, batchID); err == nil {
			var resp RankingResponse
			if err := json.Unmarshal(data, &resp); err == nil {
				return &resp, nil
			}
			h.log.Warn().Str("batch_id", batchID).Msg("排名缓存内容损坏，回源重建")
		}
	}

	candidates, err := h.loadCandidates(ctx, batchID)
	if err != nil {
		return nil, err
	}

	ranked := scoring.Rank(candidates)
	if !unfiltered {
		ranked = scoring.Filter(ranked, filter)
	}

	resp := &RankingResponse{
		BatchID:     batchID,
		GeneratedAt: time.Now().UTC(),
		Candidates:  make([]RankedCandidate, 0, len(ranked)),
	}
	for i, c := range ranked {
		resp.Candidates = append(resp.Candidates, RankedCandidate{
			Rank:               i + 1,
			Filename:           c.Identifier,
			CandidateName:      c.Entities.Name,
			Email:              c.Entities.Email,
			Phone:              c.Entities.Phone,
			Education:          c.Entities.Education,
			ExperienceYears:    c.Entities.ExperienceYears,
			ExperienceLevel:    string(c.Level),
			FinalScore:         c.Score.FinalScore,
			SkillRatio:         c.Score.SkillRatio,
			LexicalSimilarity:  c.Score.LexicalSimilarity,
			SemanticSimilarity: c.Score.SemanticSimilarity,
			SkillsFound:        c.Score.SkillsFound,
			Warnings:           c.Warnings,
		})
	}

	if unfiltered {
		if data, err := json.Marshal(resp); err == nil {
			if err := h.storage.Redis.CacheRanking(ctx, batchID, data); err != nil {
				h.log.Warn().Err(err).Str("batch_id", batchID).Msg("写入排名缓存失败")
			}
		}
	}
	return resp, nil
}

// SkillGapResponse 技能差距矩阵响应
type SkillGapResponse struct {
	BatchID    string   `json:"batch_id"`
	Candidates []string `json:"candidates"`
	Skills     []string `json:"skills"`
	Rows       [][]int  `json:"rows"`
}

// GetSkillGap 构建批次的技能差距矩阵
func (h *ScanHandler) GetSkillGap(ctx context.Context, batchID string) (*SkillGapResponse, error) {
	batch, err := h.storage.MySQL.GetBatch(ctx, batchID)
	if err != nil {
		return nil, err
	}

	var skills []string
	if len(batch.RequiredSkillsJSON) > 0 {
		if err := json.Unmarshal(batch.RequiredSkillsJSON, &skills); err != nil {
			return nil, fmt.Errorf("解析必需技能失败: %w", err)
		}
	}

	candidates, err := h.loadCandidates(ctx, batchID)
	if err != nil {
		return nil, err
	}

	matrix := scoring.BuildSkillGapMatrix(candidates, skills)
	return &SkillGapResponse{
		BatchID:    batchID,
		Candidates: matrix.Candidates,
		Skills:     matrix.Skills,
		Rows:       matrix.Rows,
	}, nil
}

// ExportCSV 将批次排名写成CSV报表
func (h *ScanHandler) ExportCSV(ctx context.Context, batchID string, w io.Writer) error {
	if _, err := h.storage.MySQL.GetBatch(ctx, batchID); err != nil {
		return err
	}
	candidates, err := h.loadCandidates(ctx, batchID)
	if err != nil {
		return err
	}
	return report.WriteCandidatesCSV(w, scoring.Rank(candidates))
}

// SearchMatch 语义检索的一条命中
type SearchMatch struct {
	Filename        string  `json:"filename"`
	CandidateName   string  `json:"candidate_name,omitempty"`
	Similarity      float32 `json:"similarity"`
	ExperienceLevel string  `json:"experience_level,omitempty"`
	FinalScore      float64 `json:"final_score,omitempty"`
}

// SearchResponse 语义检索响应
type SearchResponse struct {
	BatchID string        `json:"batch_id"`
	Query   string        `json:"query"`
	Matches []SearchMatch `json:"matches"`
}

// SearchSimilar 在批次内按查询文本做语义检索。
// 相似度低于配置阈值的简历不返回。
func (h *ScanHandler) SearchSimilar(ctx context.Context, batchID, query string, topN int) (*SearchResponse, error) {
	if query == "" {
		return nil, fmt.Errorf("query不能为空")
	}
	if _, err := h.storage.MySQL.GetBatch(ctx, batchID); err != nil {
		return nil, err
	}

	if topN <= 0 {
		topN = h.cfg.Scanner.TopNMatches
	}
	if topN <= 0 {
		topN = constants.DefaultTopNMatches
	}
	threshold := h.cfg.Scanner.SimilarityThreshold
	if threshold <= 0 {
		threshold = constants.DefaultSimilarityThreshold
	}

	vector, err := h.scorer.EmbedText(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("查询向量化失败: %w", err)
	}

	results, err := h.storage.Qdrant.SearchSimilarResumes(ctx, batchID, vector, topN, threshold)
	if err != nil {
		return nil, err
	}

	resp := &SearchResponse{
		BatchID: batchID,
		Query:   query,
		Matches: make([]SearchMatch, 0, len(results)),
	}
	for _, r := range results {
		match := SearchMatch{Similarity: r.Score}
		if v, ok := r.Payload["filename"].(string); ok {
			match.Filename = v
		}
		if v, ok := r.Payload["candidate_name"].(string); ok {
			match.CandidateName = v
		}
		if v, ok := r.Payload["experience_level"].(string); ok {
			match.ExperienceLevel = v
		}
		if v, ok := r.Payload["final_score"].(float64); ok {
			match.FinalScore = v
		}
		resp.Matches = append(resp.Matches, match)
	}
	return resp, nil
}

// HighlightResponse 简历高亮预览响应
type HighlightResponse struct {
	BatchID  string `json:"batch_id"`
	Filename string `json:"filename"`
	HTML     string `json:"html"`
}

// HighlightResume 返回一份简历的解析文本，技能命中处加高亮标记。
// intensity 为真时按命中情况着色（命中的必需技能最深），否则统一用<mark>。
// 依赖扫描阶段保存的解析文本副本。
func (h *ScanHandler) HighlightResume(ctx context.Context, batchID, filename string, intensity bool) (*HighlightResponse, error) {
	batch, err := h.storage.MySQL.GetBatch(ctx, batchID)
	if err != nil {
		return nil, err
	}

	var skills []string
	if len(batch.RequiredSkillsJSON) > 0 {
		if err := json.Unmarshal(batch.RequiredSkillsJSON, &skills); err != nil {
			return nil, fmt.Errorf("解析必需技能失败: %w", err)
		}
	}

	results, err := h.storage.MySQL.ListCandidateResults(ctx, batchID)
	if err != nil {
		return nil, err
	}
	var objectKey string
	var skillsFound []string
	for _, r := range results {
		if r.Filename == filename {
			objectKey = r.ObjectKey
			if len(r.SkillsFoundJSON) > 0 {
				_ = json.Unmarshal(r.SkillsFoundJSON, &skillsFound)
			}
			break
		}
	}
	if objectKey == "" {
		return nil, gorm.ErrRecordNotFound
	}

	text, err := h.storage.MinIO.GetParsedText(ctx, storage.ParsedTextKey(objectKey))
	if err != nil {
		return nil, fmt.Errorf("读取解析文本失败: %w", err)
	}

	var html string
	if intensity {
		html = report.HighlightSkillsIntensity(text, skillIntensityWeights(skills, skillsFound))
	} else {
		html = report.HighlightKeywords(text, skills)
	}

	return &HighlightResponse{
		BatchID:  batchID,
		Filename: filename,
		HTML:     html,
	}, nil
}

// skillIntensityWeights 命中的必需技能给满权重，其余命中技能给中等权重
func skillIntensityWeights(required, found []string) map[string]float64 {
	requiredSet := make(map[string]struct{}, len(required))
	for _, s := range required {
		requiredSet[strings.ToLower(s)] = struct{}{}
	}

	weights := make(map[string]float64, len(found))
	for _, s := range found {
		s = strings.ToLower(s)
		if _, ok := requiredSet[s]; ok {
			weights[s] = 1.0
		} else {
			weights[s] = 0.6
		}
	}
	return weights
}

// loadCandidates 从MySQL还原批次内全部候选人
func (h *ScanHandler) loadCandidates(ctx context.Context, batchID string) ([]*types.Candidate, error) {
	results, err := h.storage.MySQL.ListCandidateResults(ctx, batchID)
	if err != nil {
		return nil, err
	}

	candidates := make([]*types.Candidate, 0, len(results))
	for _, r := range results {
		c, err := candidateFromResult(r)
		if err != nil {
			h.log.Warn().Err(err).Str("filename", r.Filename).Msg("还原候选人记录失败，跳过")
			continue
		}
		candidates = append(candidates, c)
	}
	return candidates, nil
}

func candidateFromResult(r models.CandidateResult) (*types.Candidate, error) {
	var education, skills, warnings []string
	if len(r.EducationJSON) > 0 {
		if err := json.Unmarshal(r.EducationJSON, &education); err != nil {
			return nil, fmt.Errorf("解析学历信息失败: %w", err)
		}
	}
	if len(r.SkillsFoundJSON) > 0 {
		if err := json.Unmarshal(r.SkillsFoundJSON, &skills); err != nil {
			return nil, fmt.Errorf("解析技能列表失败: %w", err)
		}
	}
	if len(r.WarningsJSON) > 0 {
		if err := json.Unmarshal(r.WarningsJSON, &warnings); err != nil {
			return nil, fmt.Errorf("解析警告列表失败: %w", err)
		}
	}

	return &types.Candidate{
		Identifier: r.Filename,
		Entities: types.EntityInfo{
			Name:            r.CandidateName,
			Email:           r.Email,
			Phone:           r.Phone,
			Education:       education,
			ExperienceYears: r.ExperienceYears,
		},
		Level: types.ExperienceLevel(r.ExperienceLevel),
		Score: types.ScoreBreakdown{
			FinalScore:         r.FinalScore,
			SkillRatio:         r.SkillRatio,
			LexicalSimilarity:  r.LexicalSimilarity,
			SemanticSimilarity: r.SemanticSimilarity,
			SkillsFound:        skills,
		},
		Warnings: warnings,
	}, nil
}
