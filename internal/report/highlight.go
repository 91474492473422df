package report

import (
	"fmt"
	"regexp"
	"strings"
)

// HighlightKeywords 在文本中用 <mark> 标签包裹所有命中的关键词。
// 匹配不区分大小写，且只命中完整单词，保留原文大小写。
func HighlightKeywords(text string, keywords []string) string {
	for _, kw := range keywords {
		if strings.TrimSpace(kw) == "" {
			continue
		}
		pattern := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(kw) + `\b`)
		text = pattern.ReplaceAllString(text, "<mark>$0</mark>")
	}
	return text
}

// HighlightSkillsIntensity 按相关度给技能着色：相关度越高背景越红。
// skillWeights 的键为小写技能名，值域 [0,1]；未命中的技能按 0.5 处理。
func HighlightSkillsIntensity(text string, skillWeights map[string]float64) string {
	for skill := range skillWeights {
		if strings.TrimSpace(skill) == "" {
			continue
		}
		pattern := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(skill) + `\b`)
		text = pattern.ReplaceAllStringFunc(text, func(match string) string {
			weight, ok := skillWeights[strings.ToLower(match)]
			if !ok {
				weight = 0.5
			}
			intensity := int(weight * 255)
			return fmt.Sprintf("<span style='background-color: rgba(255, %d, 0, 0.5)'>%s</span>", 255-intensity, match)
		})
	}
	return text
}
