package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/saniyaacharya04/Resume-Scanner-using-NLP/internal/types"
)

// csvHeader 导出列顺序固定，便于下游表格工具直接消费
var csvHeader = []string{
	"rank", "filename", "candidate_name", "email", "phone",
	"experience_years", "experience_level", "education",
	"final_score", "skill_ratio", "lexical_similarity", "semantic_similarity",
	"skills_found", "warnings",
}

// WriteCandidatesCSV 将已排序的候选人列表写成CSV报表。
// 输入顺序即排名顺序，rank列从1开始。
func WriteCandidatesCSV(w io.Writer, candidates []*types.Candidate) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("写CSV表头失败: %w", err)
	}

	for i, c := range candidates {
		record := []string{
			strconv.Itoa(i + 1),
			c.Identifier,
			c.Entities.Name,
			c.Entities.Email,
			c.Entities.Phone,
			formatFloat(c.Entities.ExperienceYears),
			string(c.Level),
			strings.Join(c.Entities.Education, "; "),
			formatFloat(c.Score.FinalScore),
			formatFloat(c.Score.SkillRatio),
			formatFloat(c.Score.LexicalSimilarity),
			formatFloat(c.Score.SemanticSimilarity),
			strings.Join(c.Score.SkillsFound, "; "),
			strings.Join(c.Warnings, "; "),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("写CSV记录失败: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("刷新CSV缓冲失败: %w", err)
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
