package scoring

import (
	"strings"

	"github.com/saniyaacharya04/Resume-Scanner-using-NLP/internal/types"
)

// FilterOptions 排名前的结果过滤条件
type FilterOptions struct {
	// MinScore 最低加权得分
	MinScore float64
	// MinYears / MaxYears 工作年限区间，MaxYears<=0表示不设上限
	MinYears float64
	MaxYears float64
	// Education 学历关键词，命中任意一个即保留；为空表示不过滤
	Education []string
}

// IsZero 判断是否未设置任何过滤条件
func (o FilterOptions) IsZero() bool {
	return o.MinScore == 0 && o.MinYears == 0 && o.MaxYears <= 0 && len(o.Education) == 0
}

// Filter 按条件过滤候选人，返回新切片，保持输入顺序
func Filter(candidates []*types.Candidate, opts FilterOptions) []*types.Candidate {
	var out []*types.Candidate
	for _, c := range candidates {
		if c.Score.FinalScore < opts.MinScore {
			continue
		}
		years := c.Entities.ExperienceYears
		if years < opts.MinYears {
			continue
		}
		if opts.MaxYears > 0 && years > opts.MaxYears {
			continue
		}
		if len(opts.Education) > 0 && !matchesEducation(c.Entities.Education, opts.Education) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// matchesEducation 判断候选人学历是否命中任一过滤关键词（大小写不敏感）
func matchesEducation(education, wanted []string) bool {
	for _, have := range education {
		for _, want := range wanted {
			if want == "" {
				continue
			}
			if strings.Contains(strings.ToLower(have), strings.ToLower(want)) {
				return true
			}
		}
	}
	return false
}
