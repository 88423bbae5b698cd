package parser

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"resume-match-go/internal/config"

	"github.com/cloudwego/eino/components/embedding"
	"github.com/rs/zerolog"
)

// ErrModelUnavailable Embedding模型不可用，没有降级路径，调用方应视为致命错误
var ErrModelUnavailable = errors.New("Embedding模型不可用")

// AliyunEmbedder 阿里云Embedding客户端 (OpenAI兼容endpoint)
// 实现 cloudwego/eino 的 embedding.Embedder 接口
type AliyunEmbedder struct {
	apiKey     string
	model      string
	dimensions int
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
}

// AliyunEmbedderOption Embedder的配置选项
type AliyunEmbedderOption func(*AliyunEmbedder)

// WithEmbedderLogger 配置自定义日志记录器
func WithEmbedderLogger(logger zerolog.Logger) AliyunEmbedderOption {
	return func(a *AliyunEmbedder) {
		a.logger = logger
	}
}

// NewAliyunEmbedder 创建新的阿里云Embedder
func NewAliyunEmbedder(apiKey string, embeddingCfg config.EmbeddingConfig, options ...AliyunEmbedderOption) (*AliyunEmbedder, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: API密钥不能为空", ErrModelUnavailable)
	}

	model := embeddingCfg.Model
	if model == "" {
		model = "text-embedding-v3"
	}
	baseURL := embeddingCfg.BaseURL
	if baseURL == "" {
		baseURL = "https://dashscope.aliyuncs.com/compatible-mode/v1/embeddings"
	}
	timeout := time.Duration(embeddingCfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	embedder := &AliyunEmbedder{
		apiKey:     apiKey,
		model:      model,
		dimensions: embeddingCfg.Dimensions,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     zerolog.Nop(),
	}

	for _, option := range options {
		option(embedder)
	}

	return embedder, nil
}

// GetDimensions 返回嵌入器配置的向量维度
func (a *AliyunEmbedder) GetDimensions() int {
	return a.dimensions
}

// embeddingRequest Embedding请求结构 (OpenAI兼容)
type embeddingRequest struct {
	Input      interface{} `json:"input"` // string 或 []string
	Model      string      `json:"model"`
	Dimensions int         `json:"dimensions,omitempty"`
}

// embeddingResponse Embedding响应结构 (OpenAI兼容)
type embeddingResponse struct {
	Data []struct {
		Embedding []float64 `json:"embedding"`
		Index     int       `json:"index"`
	} `json:"data"`
	Model string `json:"model"`
	Usage struct {
		PromptTokens int `json:"prompt_tokens"`
		TotalTokens  int `json:"total_tokens"`
	} `json:"usage"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    string `json:"code"`
	} `json:"error,omitempty"`
}

// EmbedStrings 将一批文本转换为向量, 实现 embedding.Embedder 接口
func (a *AliyunEmbedder) EmbedStrings(ctx context.Context, texts []string, opts ...embedding.Option) ([][]float64, error) {
	if len(texts) == 0 {
		return [][]float64{}, nil
	}

	options := &embedding.Options{}
	embedding.GetCommonOptions(options, opts...)

	model := a.model
	if options.Model != nil && *options.Model != "" {
		model = *options.Model
	}

	var input interface{}
	if len(texts) == 1 {
		input = texts[0]
	} else {
		input = texts
	}

	reqBody := embeddingRequest{
		Input: input,
		Model: model,
	}
	if a.dimensions > 0 {
		reqBody.Dimensions = a.dimensions
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("序列化Embedding请求失败: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("创建HTTP请求失败: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+a.apiKey)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("发送Embedding请求失败: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("读取Embedding响应失败: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var parsed embeddingResponse
		if json.Unmarshal(body, &parsed) == nil && parsed.Error != nil && parsed.Error.Message != "" {
			return nil, fmt.Errorf("Embedding API调用失败, 状态码: %d, 类型: %s, 错误: %s", resp.StatusCode, parsed.Error.Type, parsed.Error.Message)
		}
		return nil, fmt.Errorf("Embedding API调用失败, 状态码: %d, 响应: %s", resp.StatusCode, string(body))
	}

	var parsed embeddingResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("解析Embedding响应失败: %w", err)
	}
	if parsed.Error != nil && parsed.Error.Message != "" {
		return nil, fmt.Errorf("Embedding API返回错误: 类型=%s, 消息=%s", parsed.Error.Type, parsed.Error.Message)
	}
	if len(parsed.Data) != len(texts) {
		return nil, fmt.Errorf("Embedding响应数量不符: 期望 %d, 实际 %d", len(texts), len(parsed.Data))
	}

	// 按Index归位，响应顺序不做假设
	vectors := make([][]float64, len(texts))
	for _, entry := range parsed.Data {
		if entry.Index < 0 || entry.Index >= len(vectors) {
			return nil, fmt.Errorf("Embedding响应Index越界: %d", entry.Index)
		}
		vectors[entry.Index] = entry.Embedding
	}

	a.logger.Debug().
		Int("texts", len(texts)).
		Int("prompt_tokens", parsed.Usage.PromptTokens).
		Int("total_tokens", parsed.Usage.TotalTokens).
		Msg("Embedding完成")

	return vectors, nil
}
