package parser

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/saniyaacharya04/Resume-Scanner-using-NLP/internal/logger"
)

// TextExtractor 按文件类型分发的文本提取服务。
// 契约：永不致命失败，任何内部错误都返回空字符串；
// 调用方把空字符串当作"无可用内容"处理，下游各项得分为0。
type TextExtractor struct {
	pdf *PDFExtractor
	log zerolog.Logger
}

// NewTextExtractor 创建文本提取服务
func NewTextExtractor(ctx context.Context) (*TextExtractor, error) {
	pdfExtractor, err := NewPDFExtractor(ctx)
	if err != nil {
		return nil, err
	}
	return &TextExtractor{
		pdf: pdfExtractor,
		log: logger.Logger,
	}, nil
}

// Extract 从文件内容中提取纯文本，按扩展名识别格式。
// 不支持的格式或提取失败都返回空字符串，不报错。
func (t *TextExtractor) Extract(ctx context.Context, filename string, data []byte) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		text, err := t.pdf.ExtractFromBytes(ctx, data, filename)
		if err != nil {
			t.log.Warn().Err(err).Str("filename", filename).Msg("PDF文本提取失败，按空内容处理")
			return ""
		}
		return text
	case ".docx":
		text, err := ExtractDocxText(data)
		if err != nil {
			t.log.Warn().Err(err).Str("filename", filename).Msg("DOCX文本提取失败，按空内容处理")
			return ""
		}
		return text
	case ".txt":
		return string(data)
	default:
		t.log.Warn().Str("filename", filename).Msg("不支持的文件类型")
		return ""
	}
}
