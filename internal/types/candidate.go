package types

// ExperienceLevel 候选人经验等级
type ExperienceLevel string

const (
	// LevelJunior 初级 (<3年)
	LevelJunior ExperienceLevel = "Junior"
	// LevelMid 中级 (3-7年，含边界)
	LevelMid ExperienceLevel = "Mid-Level"
	// LevelSenior 高级 (>7年)
	LevelSenior ExperienceLevel = "Senior"
)

// EntityInfo 从简历原文抽取的联系人与背景信息。
// 任意字段都可能缺失，缺失不是错误。
type EntityInfo struct {
	Name            string   `json:"name,omitempty"`
	Email           string   `json:"email,omitempty"`
	Phone           string   `json:"phone,omitempty"`
	Education       []string `json:"education,omitempty"`
	ExperienceYears float64  `json:"experience_years"`
}

// ScoreBreakdown 单个候选人的评分明细
type ScoreBreakdown struct {
	// FinalScore 最终加权得分，[0,1]，保留两位小数，是唯一的排序键
	FinalScore float64 `json:"final_score"`
	// SkillRatio 命中的必需技能占比
	SkillRatio float64 `json:"skill_ratio"`
	// LexicalSimilarity 预处理文本的TF-IDF余弦相似度
	LexicalSimilarity float64 `json:"lexical_similarity"`
	// SemanticSimilarity 嵌入向量余弦相似度，负值在混合前钳制为0
	SemanticSimilarity float64 `json:"semantic_similarity"`
	// SkillsFound 在简历中发现的全部词表技能（小写）
	SkillsFound []string `json:"skills_found"`
}

// Candidate 一次批量扫描中的单份简历记录
type Candidate struct {
	// Identifier 候选人标识（源文件名），批次内唯一
	Identifier string `json:"identifier"`
	// RawText 提取出的原始文本，抽取完成后不再修改
	RawText string `json:"-"`
	// NormalizedText 由RawText确定性派生的预处理文本
	NormalizedText string `json:"-"`

	Entities EntityInfo      `json:"entities"`
	Level    ExperienceLevel `json:"experience_level"`
	Score    ScoreBreakdown  `json:"score"`

	// Warnings 处理过程中产生的非致命告警（如嵌入服务降级）
	Warnings []string `json:"warnings,omitempty"`
}

// JobRequirement 一次评分会话的岗位要求
type JobRequirement struct {
	// DescriptionText 用户提供的岗位描述原文
	DescriptionText string `json:"description_text"`
	// RequiredSkills 必需技能（小写）。允许重复，匹配时按集合处理
	RequiredSkills []string `json:"required_skills"`
}

// SkillGapMatrix 候选人×必需技能的0/1命中矩阵。
// 行序与输入候选人一致，列序为技能首次出现的顺序。
type SkillGapMatrix struct {
	Candidates []string `json:"candidates"`
	Skills     []string `json:"skills"`
	Rows       [][]int  `json:"rows"`
}
