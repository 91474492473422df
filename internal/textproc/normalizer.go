package textproc

import (
	"fmt"
	"strings"

	"github.com/aaaton/golem/v4"
	"github.com/aaaton/golem/v4/dicts/en"
)

// Normalizer 文本归一化器。
// 处理顺序固定：小写 → 压缩空白 → 去除字母和空格以外的字符 → 分词 →
// 去停用词 → 词形还原 → 单空格拼接。
// 初始化后内部状态只读，可并发使用。
type Normalizer struct {
	lemmatizer *golem.Lemmatizer
}

// NewNormalizer 创建归一化器，加载英文词形还原词典
func NewNormalizer() (*Normalizer, error) {
	lemmatizer, err := golem.New(en.New())
	if err != nil {
		return nil, fmt.Errorf("加载词形还原词典失败: %w", err)
	}
	return &Normalizer{lemmatizer: lemmatizer}, nil
}

// CleanText 小写化、压缩空白并去除ASCII字母和空格以外的全部字符
func CleanText(text string) string {
	text = strings.ToLower(text)

	// 压缩所有空白（含换行、制表符）为单个空格
	text = strings.Join(strings.Fields(text), " ")

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if (r >= 'a' && r <= 'z') || r == ' ' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Normalize 返回归一化文本。
// 空字符串是合法输出，表示没有可用内容，下游按零相似度处理。
func (n *Normalizer) Normalize(text string) string {
	cleaned := CleanText(text)
	if cleaned == "" {
		return ""
	}

	tokens := strings.Fields(cleaned)
	result := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if !isAlpha(token) || IsStopword(token) {
			continue
		}
		result = append(result, n.lemmatizer.Lemma(token))
	}
	return strings.Join(result, " ")
}

// isAlpha 判断token是否只含小写字母
func isAlpha(token string) bool {
	for _, r := range token {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return len(token) > 0
}
