package matcher

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"resume-match-go/internal/parser"
	"resume-match-go/internal/types"
)

// 含有这些关键词的句子被视为技能相关的候选短语
var skillKeywords = []string{
	"experience", "proficient", "skill", "technology", "framework", "language", "tool",
}

// 技能候选短语接受的实体类型
var skillEntityLabels = map[string]bool{
	"ORG":          true,
	"ORGANIZATION": true,
	"PRODUCT":      true,
	"GPE":          true,
}

// FilterResumesBySkills 按目标技能筛选目录下的简历
// 每个技能取其与全部候选短语相似度的最大值，达到阈值即视为命中；
// 至少命中一个技能的简历才会出现在结果中，按命中技能得分的平均值降序排列
func (e *Engine) FilterResumesBySkills(ctx context.Context, resumeDir string, skills []string, threshold float64) ([]types.SkillMatchResult, []types.FileError, error) {
	if len(skills) == 0 {
		return nil, nil, fmt.Errorf("技能列表不能为空")
	}
	if e.recognizer == nil {
		return nil, nil, fmt.Errorf("实体识别器未配置，无法做技能筛选")
	}

	skillVecs, err := e.embedder.EmbedStrings(ctx, skills)
	if err != nil {
		return nil, nil, fmt.Errorf("技能列表向量化失败: %w", err)
	}

	files, err := collectResumeFiles(resumeDir)
	if err != nil {
		return nil, nil, err
	}

	var results []types.SkillMatchResult
	var failures []types.FileError

	for _, path := range files {
		result, matched, err := e.filterOne(ctx, skills, skillVecs, threshold, path)
		if err != nil {
			e.logger.Error().Err(err).Str("path", path).Msg("处理简历失败")
			failures = append(failures, types.FileError{
				Filename: filepath.Base(path),
				Path:     path,
				Message:  err.Error(),
			})
			continue
		}
		if matched {
			results = append(results, result)
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].MatchScore > results[j].MatchScore
	})

	return results, failures, nil
}

// filterOne 处理单份简历的技能筛选
// 第二个返回值表示是否至少命中一个技能
func (e *Engine) filterOne(ctx context.Context, skills []string, skillVecs [][]float64, threshold float64, path string) (types.SkillMatchResult, bool, error) {
	text, err := e.extractor.ExtractFile(ctx, path)
	if err != nil {
		return types.SkillMatchResult{}, false, err
	}

	contact := e.contacts.Extract(ctx, text)
	filename := filepath.Base(path)
	if contact.Name == "" {
		contact.Name = nameFromFilename(filename)
	}

	annotation, err := e.recognizer.Annotate(ctx, text)
	if err != nil {
		return types.SkillMatchResult{}, false, err
	}

	candidates := candidatePhrases(annotation)
	clients := e.clients.Extract(text)

	if len(candidates) == 0 {
		return types.SkillMatchResult{}, false, nil
	}

	candidateVecs, err := e.embedder.EmbedStrings(ctx, candidates)
	if err != nil {
		return types.SkillMatchResult{}, false, fmt.Errorf("候选短语向量化失败: %w", err)
	}

	var matchedSkills []string
	var matchScores []float64
	for i := range skills {
		best := 0.0
		for _, cv := range candidateVecs {
			if sim := CosineSimilarity(skillVecs[i], cv); sim > best {
				best = sim
			}
		}
		if best >= threshold {
			matchedSkills = append(matchedSkills, skills[i])
			matchScores = append(matchScores, best)
		}
	}

	if len(matchedSkills) == 0 {
		return types.SkillMatchResult{}, false, nil
	}

	// 聚合得分只对命中的技能求平均，未达阈值的技能不参与
	var sum float64
	for _, s := range matchScores {
		sum += s
	}

	return types.SkillMatchResult{
		Name:          contact.Name,
		Email:         contact.Email,
		Phone:         contact.Phone,
		MatchScore:    sum / float64(len(matchScores)),
		MatchedSkills: matchedSkills,
		Clients:       clients,
		Filename:      filename,
		Path:          path,
	}, true, nil
}

// candidatePhrases 从NLP分析结果中收集技能候选短语：
// 全部名词短语、指定类型的命名实体、含技能关键词的句子
func candidatePhrases(annotation *parser.Annotation) []string {
	var candidates []string

	candidates = append(candidates, annotation.NounPhrases...)

	for _, ent := range annotation.Entities {
		if skillEntityLabels[ent.Label] {
			candidates = append(candidates, ent.Text)
		}
	}

	for _, sent := range annotation.Sentences {
		lower := strings.ToLower(sent)
		for _, keyword := range skillKeywords {
			if strings.Contains(lower, keyword) {
				candidates = append(candidates, sent)
				break
			}
		}
	}

	return candidates
}
