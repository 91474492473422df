package scoring

import "strings"

// SkillMatcher 按固定词表从简历原文中提取技能集合。
// 匹配规则为小写子串匹配，不做词边界判断（沿用参考实现的已知不精确性，
// 例如 "java" 会命中 "javascript"）。
type SkillMatcher struct {
	vocabulary []string
}

// NewSkillMatcher 创建技能匹配器。词表顺序即技能的规范顺序。
func NewSkillMatcher(vocabulary []string) *SkillMatcher {
	vocab := make([]string, 0, len(vocabulary))
	for _, skill := range vocabulary {
		skill = strings.TrimSpace(skill)
		if skill != "" {
			vocab = append(vocab, skill)
		}
	}
	return &SkillMatcher{vocabulary: vocab}
}

// ExtractSkills 返回在简历原文中出现的词表技能（小写，按词表顺序）
func (m *SkillMatcher) ExtractSkills(rawText string) []string {
	lower := strings.ToLower(rawText)
	var found []string
	for _, skill := range m.vocabulary {
		if strings.Contains(lower, strings.ToLower(skill)) {
			found = append(found, strings.ToLower(skill))
		}
	}
	return found
}

// SkillRatio 计算命中的必需技能占比。
// required 先按集合去重，空列表（或全空白）按约定返回0而不是错误。
func SkillRatio(skillsFound, required []string) float64 {
	requiredSet := make(map[string]struct{}, len(required))
	for _, skill := range required {
		skill = strings.ToLower(strings.TrimSpace(skill))
		if skill != "" {
			requiredSet[skill] = struct{}{}
		}
	}
	if len(requiredSet) == 0 {
		return 0.0
	}

	matches := 0
	seen := make(map[string]struct{}, len(skillsFound))
	for _, skill := range skillsFound {
		skill = strings.ToLower(strings.TrimSpace(skill))
		if _, dup := seen[skill]; dup {
			continue
		}
		seen[skill] = struct{}{}
		if _, ok := requiredSet[skill]; ok {
			matches++
		}
	}
	return float64(matches) / float64(len(requiredSet))
}
