package parser

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"

	"resume-match-go/internal/config"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewAliyunEmbedderRequiresKey 验证API密钥缺失时直接报错
func TestNewAliyunEmbedderRequiresKey(t *testing.T) {
	_, err := NewAliyunEmbedder("", config.EmbeddingConfig{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrModelUnavailable))
}

// TestEmbedStrings 验证请求构造和按Index归位的响应处理
func TestEmbedStrings(t *testing.T) {
	var gotAuth string
	var gotReq map[string]interface{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		// 故意乱序返回，调用方必须按index归位
		fmt.Fprint(w, `{"data":[{"embedding":[0,1],"index":1},{"embedding":[1,0],"index":0}],"model":"test","usage":{"prompt_tokens":4,"total_tokens":4}}`)
	}))
	defer server.Close()

	e, err := NewAliyunEmbedder("test-key", config.EmbeddingConfig{
		Model:          "text-embedding-v3",
		Dimensions:     2,
		BaseURL:        server.URL,
		TimeoutSeconds: 5,
	})
	require.NoError(t, err)

	vecs, err := e.EmbedStrings(context.Background(), []string{"岗位描述", "简历全文"})
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{1, 0}, {0, 1}}, vecs)

	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "text-embedding-v3", gotReq["model"])
	assert.Equal(t, float64(2), gotReq["dimensions"])
	// 多条文本时input为数组
	assert.IsType(t, []interface{}{}, gotReq["input"])
}

// TestEmbedStringsSingleInput 验证单条文本以字符串形式发送
func TestEmbedStringsSingleInput(t *testing.T) {
	var gotReq map[string]interface{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		fmt.Fprint(w, `{"data":[{"embedding":[0.5,0.5],"index":0}],"model":"test","usage":{}}`)
	}))
	defer server.Close()

	e, err := NewAliyunEmbedder("test-key", config.EmbeddingConfig{BaseURL: server.URL})
	require.NoError(t, err)

	vecs, err := e.EmbedStrings(context.Background(), []string{"only one"})
	require.NoError(t, err)
	require.Len(t, vecs, 1)
	assert.Equal(t, "only one", gotReq["input"])
}

// TestEmbedStringsEmptyInput 验证空输入不发起请求
func TestEmbedStringsEmptyInput(t *testing.T) {
	var calls int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
	}))
	defer server.Close()

	e, err := NewAliyunEmbedder("test-key", config.EmbeddingConfig{BaseURL: server.URL})
	require.NoError(t, err)

	vecs, err := e.EmbedStrings(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, vecs)
	assert.Equal(t, int64(0), atomic.LoadInt64(&calls))
}

// TestEmbedStringsAPIError 验证非200响应的错误解析
func TestEmbedStringsAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"error":{"message":"invalid input","type":"invalid_request_error","code":"400"}}`)
	}))
	defer server.Close()

	e, err := NewAliyunEmbedder("test-key", config.EmbeddingConfig{BaseURL: server.URL})
	require.NoError(t, err)

	_, err = e.EmbedStrings(context.Background(), []string{"text"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "状态码: 400")
	assert.Contains(t, err.Error(), "invalid input")
}

// TestEmbedStringsCountMismatch 验证响应数量与请求不符时报错
func TestEmbedStringsCountMismatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":[{"embedding":[1,0],"index":0}],"model":"test","usage":{}}`)
	}))
	defer server.Close()

	e, err := NewAliyunEmbedder("test-key", config.EmbeddingConfig{BaseURL: server.URL})
	require.NoError(t, err)

	_, err = e.EmbedStrings(context.Background(), []string{"a", "b"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "数量不符")
}

// TestEmbedStringsLive 对真实API的冒烟测试，需要ALIYUN_API_KEY，默认跳过
func TestEmbedStringsLive(t *testing.T) {
	_ = godotenv.Load("../../.env")
	apiKey := os.Getenv("ALIYUN_API_KEY")
	if apiKey == "" {
		t.Skip("未设置ALIYUN_API_KEY，跳过真实API测试")
	}

	e, err := NewAliyunEmbedder(apiKey, config.EmbeddingConfig{Dimensions: 64})
	require.NoError(t, err)

	vecs, err := e.EmbedStrings(context.Background(), []string{"Go后端工程师", "资深简历解析工程师"})
	require.NoError(t, err)
	require.Len(t, vecs, 2)
	assert.Len(t, vecs[0], 64)
}
