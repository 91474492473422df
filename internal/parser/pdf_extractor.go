package parser

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/cloudwego/eino-ext/components/document/parser/pdf"
	einoParser "github.com/cloudwego/eino/components/document/parser"
	"github.com/rs/zerolog"

	"github.com/saniyaacharya04/Resume-Scanner-using-NLP/internal/logger"
)

// PDFExtractor 基于 Eino PDF Parser 的文本提取器
type PDFExtractor struct {
	parser *pdf.PDFParser
	log    zerolog.Logger
}

// PDFOption PDF提取器的配置选项
type PDFOption func(*PDFExtractor)

// WithPDFLogger 配置自定义日志记录器
func WithPDFLogger(log zerolog.Logger) PDFOption {
	return func(e *PDFExtractor) {
		e.log = log
	}
}

// NewPDFExtractor 初始化PDF文本提取器。
// 不按页面分割，整个文档作为单个字符串返回。
func NewPDFExtractor(ctx context.Context, options ...PDFOption) (*PDFExtractor, error) {
	p, err := pdf.NewPDFParser(ctx, &pdf.Config{
		ToPages: false,
	})
	if err != nil {
		return nil, fmt.Errorf("创建Eino PDF解析器失败: %w", err)
	}

	extractor := &PDFExtractor{
		parser: p,
		log:    logger.Logger,
	}
	for _, option := range options {
		option(extractor)
	}
	return extractor, nil
}

// ExtractFromFile 从PDF文件路径提取完整纯文本
func (e *PDFExtractor) ExtractFromFile(ctx context.Context, filePath string) (string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("打开PDF文件失败 %s: %w", filePath, err)
	}
	defer file.Close()
	return e.ExtractFromReader(ctx, file, filePath)
}

// ExtractFromBytes 从字节数组提取文本
func (e *PDFExtractor) ExtractFromBytes(ctx context.Context, data []byte, uri string) (string, error) {
	return e.ExtractFromReader(ctx, bytes.NewReader(data), uri)
}

// ExtractFromReader 从io.Reader提取文本
func (e *PDFExtractor) ExtractFromReader(ctx context.Context, reader io.Reader, uri string) (string, error) {
	startTime := time.Now()

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	docs, err := e.parser.Parse(ctx, reader, einoParser.WithURI(uri))
	duration := time.Since(startTime)
	if err != nil {
		e.log.Warn().Err(err).Str("uri", uri).Dur("duration", duration).Msg("PDF解析失败")
		return "", fmt.Errorf("eino PDF解析失败 (URI %s): %w", uri, err)
	}
	if len(docs) == 0 {
		return "", fmt.Errorf("eino PDF解析未返回任何文档 (URI %s)", uri)
	}

	var buf bytes.Buffer
	for i, doc := range docs {
		buf.WriteString(doc.Content)
		if i < len(docs)-1 {
			buf.WriteString("\n\n")
		}
	}

	e.log.Debug().
		Str("uri", uri).
		Int("chars", buf.Len()).
		Dur("duration", duration).
		Msg("PDF提取完成")
	return buf.String(), nil
}
