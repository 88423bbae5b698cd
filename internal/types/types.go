package types

import "fmt"

// ContactInfo 从简历文本中提取的联系方式
// 三个字段均为尽力提取，提不到时保持为空字符串
type ContactInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// MatchResult 单份简历与岗位描述的整体匹配结果
type MatchResult struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`

	// 岗位描述与简历全文的余弦相似度
	Score float64 `json:"score"`

	// 简历中出现的客户名称（去重后）
	Clients []string `json:"clients"`

	Filename string `json:"filename"`
	Path     string `json:"path"`
}

// SkillMatchResult 按技能筛选后的单份简历结果
// 只有至少命中一个目标技能的简历才会产生该结果
type SkillMatchResult struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`

	// 命中技能得分的算术平均值
	MatchScore float64 `json:"match_score"`

	// 达到阈值的目标技能列表
	MatchedSkills []string `json:"matched_skills"`

	Clients []string `json:"clients"`

	Filename string `json:"filename"`
	Path     string `json:"path"`
}

// FileError 批处理中单个文件的失败记录
// 失败不会中断整个批次，作为结果旁路返回给调用方展示
type FileError struct {
	Filename string `json:"filename"`
	Path     string `json:"path"`
	Message  string `json:"message"`
}

func (e FileError) String() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}
