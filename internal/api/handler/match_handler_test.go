package handler

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"resume-match-go/internal/config"
	"resume-match-go/internal/matcher"
	"resume-match-go/internal/parser"

	"github.com/cloudwego/eino/components/embedding"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubExtractor 所有文件返回同一段全文，岗位描述原样透传
type stubExtractor struct{}

func (stubExtractor) ExtractFile(ctx context.Context, filePath string) (string, error) {
	return "seasoned engineer resume text", nil
}

func (stubExtractor) ResolveJobDescription(ctx context.Context, source string) (string, error) {
	return source, nil
}

// stubEmbedder 所有文本返回同一个单位向量，相似度恒为1
type stubEmbedder struct{}

func (stubEmbedder) EmbedStrings(ctx context.Context, texts []string, opts ...embedding.Option) ([][]float64, error) {
	out := make([][]float64, len(texts))
	for i := range texts {
		out[i] = []float64{1, 0}
	}
	return out, nil
}

// stubRecognizer 固定返回一个名词短语
type stubRecognizer struct{}

func (stubRecognizer) Annotate(ctx context.Context, text string) (*parser.Annotation, error) {
	return &parser.Annotation{NounPhrases: []string{"backend systems"}}, nil
}

func newTestHandler() *MatchHandler {
	cfg := &config.Config{}
	cfg.Matcher.Threshold = 0.5
	cfg.Matcher.TopN = 10

	engine := matcher.NewEngine(stubExtractor{}, stubEmbedder{}, stubRecognizer{})
	return NewMatchHandler(engine, cfg, zerolog.Nop())
}

func writeResumeFile(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "candidate.pdf"), []byte("placeholder"), 0644))
	return dir
}

// TestMatchValidation 验证整体匹配的参数校验
func TestMatchValidation(t *testing.T) {
	h := newTestHandler()

	_, err := h.Match(context.Background(), &MatchRequest{ResumeDir: "/tmp"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "缺少岗位描述")

	_, err = h.Match(context.Background(), &MatchRequest{JobDescription: "招聘Go工程师"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "缺少简历目录")
}

// TestMatchSuccess 验证整体匹配的完整链路
func TestMatchSuccess(t *testing.T) {
	h := newTestHandler()
	dir := writeResumeFile(t)

	resp, err := h.Match(context.Background(), &MatchRequest{
		JobDescription: "招聘Go后端工程师",
		ResumeDir:      dir,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.BatchID)
	require.Len(t, resp.Results, 1)
	assert.InDelta(t, 1.0, resp.Results[0].Score, 1e-9)
	assert.Equal(t, "candidate.pdf", resp.Results[0].Filename)
	assert.Empty(t, resp.Errors)
}

// TestFilterValidation 验证技能筛选的参数校验
func TestFilterValidation(t *testing.T) {
	h := newTestHandler()

	_, err := h.Filter(context.Background(), &FilterRequest{Skills: []string{"Go"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "缺少简历目录")

	_, err = h.Filter(context.Background(), &FilterRequest{ResumeDir: "/tmp"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "缺少目标技能列表")

	bad := 1.5
	_, err = h.Filter(context.Background(), &FilterRequest{
		ResumeDir: "/tmp",
		Skills:    []string{"Go"},
		Threshold: &bad,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "[0,1]")
}

// TestFilterSuccess 验证技能筛选走配置默认阈值
func TestFilterSuccess(t *testing.T) {
	h := newTestHandler()
	dir := writeResumeFile(t)

	resp, err := h.Filter(context.Background(), &FilterRequest{
		ResumeDir: dir,
		Skills:    []string{"Go", "Kubernetes"},
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.BatchID)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, []string{"Go", "Kubernetes"}, resp.Results[0].MatchedSkills)
	assert.InDelta(t, 1.0, resp.Results[0].MatchScore, 1e-9)
	assert.Empty(t, resp.Errors)
}
