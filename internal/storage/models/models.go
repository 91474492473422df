package models

import (
	"time"

	"gorm.io/datatypes"
)

// ScanBatch 扫描批次表。一个批次对应一次评分会话（一份JD+一组必需技能）。
type ScanBatch struct {
	BatchID            string         `gorm:"type:char(36);primaryKey"`
	JobDescription     string         `gorm:"type:text;not null"`
	RequiredSkillsJSON datatypes.JSON `gorm:"type:json"`
	ScannerVersion     string         `gorm:"type:varchar(50)"`
	CreatedAt          time.Time      `gorm:"type:datetime(6);default:CURRENT_TIMESTAMP(6)"`
	UpdatedAt          time.Time      `gorm:"type:datetime(6);default:CURRENT_TIMESTAMP(6);autoUpdateTime"`
}

func (ScanBatch) TableName() string {
	return "scan_batches"
}

// CandidateResult 候选人评分结果表
type CandidateResult struct {
	ID       uint   `gorm:"primaryKey;autoIncrement"`
	BatchID  string `gorm:"type:char(36);not null;uniqueIndex:idx_cr_batch_filename,priority:1;index:idx_cr_batch_id"`
	Filename string `gorm:"type:varchar(255);not null;uniqueIndex:idx_cr_batch_filename,priority:2"`

	// 实体信息（均可缺失）
	CandidateName   string         `gorm:"type:varchar(255)"`
	Email           string         `gorm:"type:varchar(255)"`
	Phone           string         `gorm:"type:varchar(50)"`
	EducationJSON   datatypes.JSON `gorm:"type:json"`
	ExperienceYears float64        `gorm:"type:double"`
	ExperienceLevel string         `gorm:"type:varchar(20)"`

	// 评分明细
	FinalScore         float64        `gorm:"type:double;index:idx_cr_final_score"`
	SkillRatio         float64        `gorm:"type:double"`
	LexicalSimilarity  float64        `gorm:"type:double"`
	SemanticSimilarity float64        `gorm:"type:double"`
	SkillsFoundJSON    datatypes.JSON `gorm:"type:json"`
	WarningsJSON       datatypes.JSON `gorm:"type:json"`

	// ObjectKey 简历原件在对象存储中的位置
	ObjectKey string    `gorm:"type:varchar(1024)"`
	CreatedAt time.Time `gorm:"type:datetime(6);default:CURRENT_TIMESTAMP(6)"`
	UpdatedAt time.Time `gorm:"type:datetime(6);default:CURRENT_TIMESTAMP(6);autoUpdateTime"`

	Batch ScanBatch `gorm:"foreignKey:BatchID;references:BatchID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

func (CandidateResult) TableName() string {
	return "candidate_results"
}
