package scoring

import (
	"context"
	"errors"

	"github.com/cloudwego/eino/components/embedding"

	"github.com/saniyaacharya04/Resume-Scanner-using-NLP/internal/types"
)

// ErrEmbeddingService 嵌入服务不可用或调用失败
var ErrEmbeddingService = errors.New("嵌入服务不可用")

// TextEmbedder 文本向量化接口 (符合 cloudwego/eino 规范)
type TextEmbedder interface {
	// EmbedStrings 将文本转换为向量表示
	EmbedStrings(ctx context.Context, texts []string, opts ...embedding.Option) ([][]float64, error)

	// GetDimensions 返回嵌入向量的维度
	GetDimensions() int
}

// EntityExtractor 联系人与背景信息抽取接口
type EntityExtractor interface {
	// ExtractEntities 从简历原文抽取姓名、邮箱、电话、学历和工作年限。
	// 任意字段都可能缺失，缺失不是错误。
	ExtractEntities(text string) types.EntityInfo
}
