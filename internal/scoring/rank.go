package scoring

import (
	"sort"

	"github.com/saniyaacharya04/Resume-Scanner-using-NLP/internal/types"
)

// Rank 按最终得分降序稳定排序，得分相同的候选人保持原有相对顺序。
// 返回新切片，不修改输入。
func Rank(candidates []*types.Candidate) []*types.Candidate {
	ranked := make([]*types.Candidate, len(candidates))
	copy(ranked, candidates)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score.FinalScore > ranked[j].Score.FinalScore
	})
	return ranked
}
