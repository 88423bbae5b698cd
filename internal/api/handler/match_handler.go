package handler

import (
	"context"
	"fmt"

	"resume-match-go/internal/config"
	"resume-match-go/internal/matcher"
	"resume-match-go/internal/types"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// MatchHandler 匹配接口处理器，负责参数校验并调用匹配引擎
// 前端只提供文件路径/文本和展示参数，提取与打分全部在引擎内完成
type MatchHandler struct {
	engine *matcher.Engine
	cfg    *config.Config
	logger zerolog.Logger
}

// NewMatchHandler 创建匹配接口处理器
func NewMatchHandler(engine *matcher.Engine, cfg *config.Config, logger zerolog.Logger) *MatchHandler {
	return &MatchHandler{
		engine: engine,
		cfg:    cfg,
		logger: logger,
	}
}

// MatchRequest 整体匹配请求
type MatchRequest struct {
	// 岗位描述来源：PDF/Word/文本文件路径，或直接粘贴的岗位描述文本
	JobDescription string `json:"job_description"`
	// 简历目录，递归遍历其中的PDF/Word文件
	ResumeDir string `json:"resume_dir"`
	// 返回的最大结果数，0表示使用配置默认值
	TopN int `json:"top_n"`
}

// MatchResponse 整体匹配响应
type MatchResponse struct {
	BatchID string              `json:"batch_id"`
	Results []types.MatchResult `json:"results"`
	// 逐文件的失败信息，供前端展示
	Errors []string `json:"errors"`
}

// FilterRequest 技能筛选请求
type FilterRequest struct {
	ResumeDir string   `json:"resume_dir"`
	Skills    []string `json:"skills"`
	// 相似度阈值，nil时使用配置默认值
	Threshold *float64 `json:"threshold"`
}

// FilterResponse 技能筛选响应
type FilterResponse struct {
	BatchID string                   `json:"batch_id"`
	Results []types.SkillMatchResult `json:"results"`
	Errors  []string                 `json:"errors"`
}

// Match 执行整体匹配
func (h *MatchHandler) Match(ctx context.Context, req *MatchRequest) (*MatchResponse, error) {
	if req.JobDescription == "" {
		return nil, fmt.Errorf("缺少岗位描述")
	}
	if req.ResumeDir == "" {
		return nil, fmt.Errorf("缺少简历目录")
	}

	topN := req.TopN
	if topN <= 0 {
		topN = h.cfg.Matcher.TopN
	}

	batchID := uuid.NewString()
	logger := h.logger.With().Str("batch_id", batchID).Logger()
	logger.Info().Str("resume_dir", req.ResumeDir).Msg("开始整体匹配")

	results, failures, err := h.engine.MatchResumes(ctx, req.JobDescription, req.ResumeDir, topN)
	if err != nil {
		return nil, err
	}

	logger.Info().Int("results", len(results)).Int("failures", len(failures)).Msg("整体匹配完成")

	return &MatchResponse{
		BatchID: batchID,
		Results: results,
		Errors:  failureMessages(failures),
	}, nil
}

// Filter 执行技能筛选
func (h *MatchHandler) Filter(ctx context.Context, req *FilterRequest) (*FilterResponse, error) {
	if req.ResumeDir == "" {
		return nil, fmt.Errorf("缺少简历目录")
	}
	if len(req.Skills) == 0 {
		return nil, fmt.Errorf("缺少目标技能列表")
	}

	threshold := h.cfg.Matcher.Threshold
	if req.Threshold != nil {
		threshold = *req.Threshold
	}
	if threshold < 0 || threshold > 1 {
		return nil, fmt.Errorf("相似度阈值必须在[0,1]范围内: %v", threshold)
	}

	batchID := uuid.NewString()
	logger := h.logger.With().Str("batch_id", batchID).Logger()
	logger.Info().Str("resume_dir", req.ResumeDir).Strs("skills", req.Skills).Float64("threshold", threshold).Msg("开始技能筛选")

	results, failures, err := h.engine.FilterResumesBySkills(ctx, req.ResumeDir, req.Skills, threshold)
	if err != nil {
		return nil, err
	}

	logger.Info().Int("results", len(results)).Int("failures", len(failures)).Msg("技能筛选完成")

	return &FilterResponse{
		BatchID: batchID,
		Results: results,
		Errors:  failureMessages(failures),
	}, nil
}

func failureMessages(failures []types.FileError) []string {
	messages := make([]string, 0, len(failures))
	for _, f := range failures {
		messages = append(messages, f.String())
	}
	return messages
}
