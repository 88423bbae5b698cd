package parser

import (
	"context"
	"regexp"
	"strings"

	"resume-match-go/internal/types"

	"github.com/rs/zerolog"
)

// emailRe 标准的 local@domain 邮箱格式
var emailRe = regexp.MustCompile(`[\w.+-]+@[\w-]+\.[\w.-]+`)

// phoneStrategy 一种电话号码格式
type phoneStrategy struct {
	name string
	re   *regexp.Regexp
}

// 电话格式按优先级排列：北美格式优先，其次是5+5/6位分组，最后是通用的国际分组格式。
// 取第一个命中任意内容的格式的首个匹配，不跨格式合并结果。
var phoneStrategies = []phoneStrategy{
	{"north_american", regexp.MustCompile(`(?:\+\d{1,3}[-.\s]?)?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`)},
	{"grouped_5_5", regexp.MustCompile(`(?:\+\d{1,3}[-.\s]?)?\d{5}[-.\s]?\d{5,6}`)},
	{"international", regexp.MustCompile(`(?:\+\d{1,3}[-.\s]?)?\d{2,4}[-.\s]?\d{2,4}[-.\s]?\d{2,4}[-.\s]?\d{2,4}`)},
}

// nameStrategy 一种姓名行格式，捕获组1为姓名
type nameStrategy struct {
	name string
	re   *regexp.Regexp
}

// 姓名格式按优先级排列，取第一个命中的格式的首个匹配
var nameStrategies = []nameStrategy{
	// 整行为2-4个首字母大写的单词
	{"capitalized_line", regexp.MustCompile(`(?m)^([A-Z][a-z]+(?:\s[A-Z][a-z]+){1,3})\s*$`)},
	// 整行为2-3个全大写单词
	{"all_caps_line", regexp.MustCompile(`(?m)^([A-Z]+\s+[A-Z]+(?:\s+[A-Z]+)?)\s*$`)},
	// 显式的 Name: 标签
	{"name_label", regexp.MustCompile(`(?:Name|NAME):\s*([A-Z][a-z]+(?:\s[A-Z][a-z]+){1,3})`)},
	// 独立成行的2-4个首字母大写单词
	{"standalone_line", regexp.MustCompile(`(?:^|\n)([A-Z][a-z]+(?:\s[A-Z][a-z]+){1,3})(?:\n|$)`)},
}

// nerScanLimit 姓名NER回退只扫描文本开头部分
const nerScanLimit = 1000

// ContactExtractor 联系方式提取器
// 邮箱与电话由正则提取；姓名先走正则级联，全部落空后回退到实体识别
type ContactExtractor struct {
	recognizer Recognizer
	logger     zerolog.Logger
}

// ContactExtractorOption 联系方式提取器的配置选项
type ContactExtractorOption func(*ContactExtractor)

// WithContactLogger 配置自定义日志记录器
func WithContactLogger(logger zerolog.Logger) ContactExtractorOption {
	return func(c *ContactExtractor) {
		c.logger = logger
	}
}

// NewContactExtractor 创建联系方式提取器
// recognizer 可以为nil，此时不启用姓名的NER回退
func NewContactExtractor(recognizer Recognizer, options ...ContactExtractorOption) *ContactExtractor {
	c := &ContactExtractor{
		recognizer: recognizer,
		logger:     zerolog.Nop(),
	}
	for _, option := range options {
		option(c)
	}
	return c
}

// Extract 从简历文本中提取联系方式
// 三个字段均为尽力提取，提不到时保持为空；结果只依赖输入文本，可重复调用
func (c *ContactExtractor) Extract(ctx context.Context, text string) types.ContactInfo {
	info := types.ContactInfo{
		Email: c.extractEmail(text),
		Phone: c.extractPhone(text),
		Name:  c.extractName(ctx, text),
	}

	info.Name = strings.TrimSpace(info.Name)
	info.Email = strings.TrimSpace(info.Email)
	info.Phone = strings.TrimSpace(info.Phone)

	return info
}

func (c *ContactExtractor) extractEmail(text string) string {
	return emailRe.FindString(text)
}

func (c *ContactExtractor) extractPhone(text string) string {
	for _, strategy := range phoneStrategies {
		if match := strategy.re.FindString(text); match != "" {
			c.logger.Debug().Str("pattern", strategy.name).Msg("电话号码命中")
			return match
		}
	}
	return ""
}

func (c *ContactExtractor) extractName(ctx context.Context, text string) string {
	// 第一级：正则级联
	for _, strategy := range nameStrategies {
		if m := strategy.re.FindStringSubmatch(text); m != nil {
			c.logger.Debug().Str("pattern", strategy.name).Msg("姓名格式命中")
			return strings.TrimSpace(m[1])
		}
	}

	// 第二级：实体识别回退
	// 识别器不可用或出错时不中断整个提取流程，姓名保持为空
	if c.recognizer == nil {
		return ""
	}

	head := text
	if runes := []rune(text); len(runes) > nerScanLimit {
		head = string(runes[:nerScanLimit])
	}

	annotation, err := c.recognizer.Annotate(ctx, head)
	if err != nil {
		c.logger.Warn().Err(err).Msg("姓名NER回退失败，跳过")
		return ""
	}

	for _, ent := range annotation.Entities {
		if ent.Label != "PERSON" {
			continue
		}
		// 至少包含两个词才认为是完整姓名
		if len(strings.Fields(ent.Text)) >= 2 {
			c.logger.Debug().Str("name", ent.Text).Msg("NER回退命中姓名")
			return ent.Text
		}
	}

	return ""
}
