package scoring

import (
	"strings"

	"github.com/saniyaacharya04/Resume-Scanner-using-NLP/internal/types"
)

// BuildSkillGapMatrix 构建候选人×必需技能的0/1命中矩阵。
// 列序为技能首次出现的顺序（重复项只保留第一次），行序与输入候选人一致。
// 纯函数，每次从零构建，不修改入参。
func BuildSkillGapMatrix(candidates []*types.Candidate, requiredSkills []string) types.SkillGapMatrix {
	columns := make([]string, 0, len(requiredSkills))
	seen := make(map[string]struct{}, len(requiredSkills))
	for _, skill := range requiredSkills {
		skill = strings.ToLower(strings.TrimSpace(skill))
		if skill == "" {
			continue
		}
		if _, dup := seen[skill]; dup {
			continue
		}
		seen[skill] = struct{}{}
		columns = append(columns, skill)
	}

	matrix := types.SkillGapMatrix{
		Candidates: make([]string, 0, len(candidates)),
		Skills:     columns,
		Rows:       make([][]int, 0, len(candidates)),
	}

	for _, candidate := range candidates {
		candidateSkills := make(map[string]struct{}, len(candidate.Score.SkillsFound))
		for _, skill := range candidate.Score.SkillsFound {
			candidateSkills[strings.ToLower(skill)] = struct{}{}
		}

		row := make([]int, len(columns))
		for i, skill := range columns {
			if _, ok := candidateSkills[skill]; ok {
				row[i] = 1
			}
		}
		matrix.Candidates = append(matrix.Candidates, candidate.Identifier)
		matrix.Rows = append(matrix.Rows, row)
	}
	return matrix
}
