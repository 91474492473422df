package constants

import "time"

const (
	// ScannerVersion 扫描流水线版本号，写入批次记录便于结果追溯
	ScannerVersion = "1.0"

	// 加权评分常量 (两段式加权混合)
	// structural = 0.7*skill_ratio + 0.3*lexical
	// final      = 0.7*structural + 0.3*semantic
	SkillRatioWeight = 0.7
	LexicalWeight    = 0.3
	StructuralWeight = 0.7
	SemanticWeight   = 0.3

	// 经验等级阈值（单位：年），边界值归入中级
	JuniorMaxYears = 3.0
	SeniorMinYears = 7.0

	// DefaultEmbeddingDimensions 嵌入向量默认维度 (all-MiniLM-L6-v2)
	DefaultEmbeddingDimensions = 384

	// DefaultSimilarityThreshold 语义检索的相似度下限
	DefaultSimilarityThreshold = 0.75
	// DefaultTopNMatches 语义检索默认返回的简历数
	DefaultTopNMatches = 5

	// JDCacheDuration JD文本缓存的过期时间
	JDCacheDuration = 24 * time.Hour
	// EmbeddingCacheDuration 简历嵌入缓存的过期时间
	EmbeddingCacheDuration = 7 * 24 * time.Hour
	// RankingCacheDuration 批次排名快照的过期时间
	RankingCacheDuration = 10 * time.Minute
)

// 消息队列相关常量
const (
	// ScanExchange 扫描任务交换机
	ScanExchange = "scan.exchange"
	// ScanTaskQueue 扫描任务队列
	ScanTaskQueue = "scan.tasks"
	// ScanTaskRoutingKey 扫描任务路由键
	ScanTaskRoutingKey = "scan.task.submitted"
)

// DefaultSkillVocabulary 默认技能词表，可被配置文件覆盖。
// 匹配时统一转为小写，顺序即词表的规范顺序。
var DefaultSkillVocabulary = []string{
	"Python", "Java", "C++", "Machine Learning", "Deep Learning",
	"NLP", "Data Analysis", "SQL", "Excel", "Communication",
	"Leadership", "Project Management", "AWS", "Docker", "Kubernetes",
}

// EducationKeywords 学历关键词，用于实体抽取
var EducationKeywords = []string{
	"bachelor", "master", "b.tech", "m.tech", "phd", "b.sc", "m.sc", "btech", "msc",
}
