package parser

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/nguyenthenguyen/docx"
)

// docx正文是WordprocessingML，抽纯文本前先去掉标签
var docxTagPattern = regexp.MustCompile(`<[^>]+>`)

// ExtractDocxText 从DOCX文件内容中提取纯文本
func ExtractDocxText(data []byte) (string, error) {
	reader := bytes.NewReader(data)
	doc, err := docx.ReadDocxFromMemory(reader, int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("解析DOCX失败: %w", err)
	}
	defer doc.Close()

	content := doc.Editable().GetContent()

	// 段落结束标签转换行，保持段落边界
	content = strings.ReplaceAll(content, "</w:p>", "\n")
	content = docxTagPattern.ReplaceAllString(content, "")
	return strings.TrimSpace(content), nil
}
