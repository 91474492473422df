package parser

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cloudwego/eino/components/embedding"
	"github.com/rs/zerolog"

	"github.com/saniyaacharya04/Resume-Scanner-using-NLP/internal/config"
	"github.com/saniyaacharya04/Resume-Scanner-using-NLP/internal/logger"
)

// EmbeddingClient 通过OpenAI兼容接口调用外部嵌入服务，
// 实现 cloudwego/eino 的 embedding.Embedder 接口。
// 对相同输入在进程生命周期内返回确定的向量（由服务端保证）。
type EmbeddingClient struct {
	apiKey     string
	model      string
	dimensions int
	baseURL    string
	httpClient *http.Client
	log        zerolog.Logger
}

// NewEmbeddingClient 创建嵌入服务客户端
func NewEmbeddingClient(cfg config.EmbeddingConfig, timeout time.Duration) (*EmbeddingClient, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("嵌入服务地址不能为空")
	}
	model := cfg.Model
	if model == "" {
		model = "all-MiniLM-L6-v2"
	}
	return &EmbeddingClient{
		apiKey:     cfg.APIKey,
		model:      model,
		dimensions: cfg.Dimensions,
		baseURL:    cfg.BaseURL,
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.Logger,
	}, nil
}

// GetDimensions 返回嵌入向量的维度
func (c *EmbeddingClient) GetDimensions() int {
	return c.dimensions
}

// embeddingRequest OpenAI兼容的Embedding请求结构
type embeddingRequest struct {
	Input      interface{} `json:"input"` // string 或 []string
	Model      string      `json:"model"`
	Dimensions int         `json:"dimensions,omitempty"`
}

// embeddingResponse OpenAI兼容的Embedding响应结构
type embeddingResponse struct {
	Object string               `json:"object"`
	Data   []embeddingDataEntry `json:"data"`
	Model  string               `json:"model"`
	Error  *embeddingAPIError   `json:"error,omitempty"`
}

type embeddingDataEntry struct {
	Object    string    `json:"object"`
	Embedding []float64 `json:"embedding"`
	Index     int       `json:"index"`
}

// embeddingAPIError 服务端在200响应里也可能携带的API级错误
type embeddingAPIError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Code    string `json:"code"`
}

// EmbedStrings 将一批文本转换为向量，实现 embedding.Embedder 接口
func (c *EmbeddingClient) EmbedStrings(ctx context.Context, texts []string, opts ...embedding.Option) ([][]float64, error) {
	if len(texts) == 0 {
		return [][]float64{}, nil
	}

	options := &embedding.Options{}
	embedding.GetCommonOptions(options, opts...)
	effectiveModel := c.model
	if options.Model != nil && *options.Model != "" {
		effectiveModel = *options.Model
	}

	var input interface{}
	if len(texts) == 1 {
		input = texts[0]
	} else {
		input = texts
	}
	reqBody := embeddingRequest{
		Input: input,
		Model: effectiveModel,
	}
	if c.dimensions > 0 {
		reqBody.Dimensions = c.dimensions
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("序列化嵌入请求失败: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("创建HTTP请求失败: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("发送嵌入请求失败: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("读取嵌入响应失败: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiError embeddingAPIError
		if json.Unmarshal(body, &apiError) == nil && apiError.Message != "" {
			return nil, fmt.Errorf("嵌入服务调用失败, 状态码: %d, 类型: %s, 错误: %s",
				resp.StatusCode, apiError.Type, apiError.Message)
		}
		return nil, fmt.Errorf("嵌入服务调用失败, 状态码: %d, 响应: %s",
			resp.StatusCode, string(body))
	}

	var parsed embeddingResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("解析嵌入响应JSON失败: %w", err)
	}
	if parsed.Error != nil && parsed.Error.Message != "" {
		return nil, fmt.Errorf("嵌入服务返回错误: 类型=%s, 消息='%s'",
			parsed.Error.Type, parsed.Error.Message)
	}

	embeddings := make([][]float64, len(parsed.Data))
	for i, entry := range parsed.Data {
		embeddings[i] = entry.Embedding
	}

	c.log.Debug().
		Int("texts", len(texts)).
		Int("vectors", len(embeddings)).
		Str("model", effectiveModel).
		Msg("嵌入计算完成")
	return embeddings, nil
}
