package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/saniyaacharya04/Resume-Scanner-using-NLP/internal/constants"
	"github.com/saniyaacharya04/Resume-Scanner-using-NLP/internal/types"
)

var (
	emailPattern      = regexp.MustCompile(`\S+@\S+`)
	phonePattern      = regexp.MustCompile(`\+?\d[\d -]{8,12}\d`)
	experiencePattern = regexp.MustCompile(`(\d+)\+?\s+years?`)
	namelikePattern   = regexp.MustCompile(`^[A-Z][a-zA-Z.'-]*(?: [A-Z][a-zA-Z.'-]*){1,3}$`)
)

// RegexEntityExtractor 基于正则的联系人与背景信息抽取器。
// 任意字段都可能缺失，缺失不是错误；年限解析失败时默认为0。
type RegexEntityExtractor struct{}

// NewRegexEntityExtractor 创建实体抽取器
func NewRegexEntityExtractor() *RegexEntityExtractor {
	return &RegexEntityExtractor{}
}

// ExtractEntities 从简历原文抽取全部实体信息
func (e *RegexEntityExtractor) ExtractEntities(text string) types.EntityInfo {
	return types.EntityInfo{
		Name:            ExtractName(text),
		Email:           ExtractEmail(text),
		Phone:           ExtractPhone(text),
		Education:       ExtractEducation(text),
		ExperienceYears: ExtractExperienceYears(text),
	}
}

// ExtractEmail 返回文本中的第一个邮箱地址，找不到返回空串
func ExtractEmail(text string) string {
	return emailPattern.FindString(text)
}

// ExtractPhone 返回文本中的第一个电话号码，找不到返回空串
func ExtractPhone(text string) string {
	return phonePattern.FindString(text)
}

// ExtractName 返回简历开头看起来像姓名的一行。
// 启发式：前几行中首个由大写开头单词组成、不含数字和联系方式的短行。
func ExtractName(text string) string {
	lines := strings.Split(text, "\n")
	limit := 10
	for _, line := range lines {
		if limit == 0 {
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		limit--
		if strings.ContainsAny(line, "@0123456789") {
			continue
		}
		if namelikePattern.MatchString(line) {
			return line
		}
	}
	return ""
}

// ExtractEducation 扫描学历关键词，返回命中的规范化形式。
// 不含点号的关键词转大写（btech→BTECH），含点号的首字母大写（b.tech→B.Tech）。
func ExtractEducation(text string) []string {
	lower := strings.ToLower(text)
	var found []string
	for _, keyword := range constants.EducationKeywords {
		if !strings.Contains(lower, keyword) {
			continue
		}
		if strings.Contains(keyword, ".") {
			found = append(found, titleCaseDotted(keyword))
		} else {
			found = append(found, strings.ToUpper(keyword))
		}
	}
	return found
}

// titleCaseDotted 把 "b.tech" 转为 "B.Tech"
func titleCaseDotted(s string) string {
	parts := strings.Split(s, ".")
	for i, p := range parts {
		if p == "" {
			continue
		}
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, ".")
}

// ExtractExperienceYears 解析 "N years" / "N+ years" 形式的工作年限。
// 取第一个匹配；无匹配或解析失败一律返回0（归为初级），不报错。
func ExtractExperienceYears(text string) float64 {
	match := experiencePattern.FindStringSubmatch(strings.ToLower(text))
	if len(match) < 2 {
		return 0.0
	}
	years, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return 0.0
	}
	return years
}
