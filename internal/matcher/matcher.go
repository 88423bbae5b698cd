package matcher

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"resume-match-go/internal/parser"
	"resume-match-go/internal/types"

	"github.com/cloudwego/eino/components/embedding"
	"github.com/rs/zerolog"
)

// Engine 简历匹配引擎
// 持有文档提取器、Embedding模型和实体识别器，全部在构造时显式注入；
// 引擎本身无共享可变状态，每份简历独立处理
type Engine struct {
	extractor  TextExtractor
	embedder   embedding.Embedder
	recognizer parser.Recognizer
	contacts   *parser.ContactExtractor
	clients    *parser.ClientExtractor
	logger     zerolog.Logger
}

// EngineOption 匹配引擎的配置选项
type EngineOption func(*Engine)

// WithEngineLogger 配置自定义日志记录器
func WithEngineLogger(logger zerolog.Logger) EngineOption {
	return func(e *Engine) {
		e.logger = logger
	}
}

// NewEngine 创建匹配引擎
// recognizer 可以为nil，此时联系人提取不做NER回退，技能筛选不可用
func NewEngine(extractor TextExtractor, embedder embedding.Embedder, recognizer parser.Recognizer, options ...EngineOption) *Engine {
	e := &Engine{
		extractor:  extractor,
		embedder:   embedder,
		recognizer: recognizer,
		clients:    parser.NewClientExtractor(),
		logger:     zerolog.Nop(),
	}
	for _, option := range options {
		option(e)
	}
	e.contacts = parser.NewContactExtractor(recognizer, parser.WithContactLogger(e.logger))
	return e
}

// MatchResumes 将目录下的全部简历与岗位描述做整体匹配
// 返回按相似度降序排列的结果；单个文件的失败不会中断批次，作为旁路错误返回。
// topN大于0时只保留前topN条结果
func (e *Engine) MatchResumes(ctx context.Context, jobSource string, resumeDir string, topN int) ([]types.MatchResult, []types.FileError, error) {
	jobDesc, err := e.extractor.ResolveJobDescription(ctx, jobSource)
	if err != nil {
		return nil, nil, fmt.Errorf("解析岗位描述失败: %w", err)
	}
	if strings.TrimSpace(jobDesc) == "" {
		return nil, nil, fmt.Errorf("岗位描述不能为空")
	}

	jobVecs, err := e.embedder.EmbedStrings(ctx, []string{jobDesc})
	if err != nil {
		return nil, nil, fmt.Errorf("岗位描述向量化失败: %w", err)
	}
	jobVec := jobVecs[0]

	files, err := collectResumeFiles(resumeDir)
	if err != nil {
		return nil, nil, err
	}

	var results []types.MatchResult
	var failures []types.FileError

	for _, path := range files {
		result, err := e.matchOne(ctx, jobVec, path)
		if err != nil {
			e.logger.Error().Err(err).Str("path", path).Msg("处理简历失败")
			failures = append(failures, types.FileError{
				Filename: filepath.Base(path),
				Path:     path,
				Message:  err.Error(),
			})
			continue
		}
		results = append(results, result)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if topN > 0 && len(results) > topN {
		results = results[:topN]
	}

	return results, failures, nil
}

// matchOne 处理单份简历：提取全文和联系方式，向量化后与岗位向量比对
func (e *Engine) matchOne(ctx context.Context, jobVec []float64, path string) (types.MatchResult, error) {
	text, err := e.extractor.ExtractFile(ctx, path)
	if err != nil {
		return types.MatchResult{}, err
	}

	contact := e.contacts.Extract(ctx, text)
	clients := e.clients.Extract(text)

	vecs, err := e.embedder.EmbedStrings(ctx, []string{text})
	if err != nil {
		return types.MatchResult{}, fmt.Errorf("简历向量化失败: %w", err)
	}

	filename := filepath.Base(path)
	if contact.Name == "" {
		contact.Name = nameFromFilename(filename)
	}

	return types.MatchResult{
		Name:     contact.Name,
		Email:    contact.Email,
		Phone:    contact.Phone,
		Score:    CosineSimilarity(jobVec, vecs[0]),
		Clients:  clients,
		Filename: filename,
		Path:     path,
	}, nil
}

// collectResumeFiles 递归收集目录下的简历文件，忽略其他扩展名
func collectResumeFiles(resumeDir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(resumeDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".pdf", ".docx":
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("遍历简历目录失败: %w", err)
	}
	return files, nil
}

// nameFromFilename 从文件名推导候选人姓名，作为提取不到姓名时的兜底
func nameFromFilename(filename string) string {
	name := strings.TrimSuffix(filename, filepath.Ext(filename))
	name = strings.ReplaceAll(name, "_", " ")
	name = strings.ReplaceAll(name, "-", " ")
	return name
}
