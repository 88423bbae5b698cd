package parser

import (
	"context"
	"fmt"
	"strings"

	prose "github.com/jdkato/prose/v2"
	"github.com/rs/zerolog"
)

// ProseRecognizer 基于prose的实体识别器
// 模型数据内嵌在库中，进程内可安全地重复使用同一个实例
type ProseRecognizer struct {
	logger zerolog.Logger
}

// ProseOption 识别器的配置选项
type ProseOption func(*ProseRecognizer)

// WithProseLogger 配置自定义日志记录器
func WithProseLogger(logger zerolog.Logger) ProseOption {
	return func(r *ProseRecognizer) {
		r.logger = logger
	}
}

// NewProseRecognizer 创建prose识别器
func NewProseRecognizer(options ...ProseOption) *ProseRecognizer {
	r := &ProseRecognizer{logger: zerolog.Nop()}
	for _, option := range options {
		option(r)
	}
	return r
}

// Annotate 对文本做实体识别、名词短语抽取和分句
func (r *ProseRecognizer) Annotate(ctx context.Context, text string) (*Annotation, error) {
	doc, err := prose.NewDocument(text)
	if err != nil {
		return nil, fmt.Errorf("NLP分析失败: %w", err)
	}

	annotation := &Annotation{}

	for _, ent := range doc.Entities() {
		annotation.Entities = append(annotation.Entities, Entity{
			Text:  ent.Text,
			Label: ent.Label,
		})
	}

	annotation.NounPhrases = nounPhrases(doc.Tokens())

	for _, sent := range doc.Sentences() {
		annotation.Sentences = append(annotation.Sentences, sent.Text)
	}

	r.logger.Debug().
		Int("entities", len(annotation.Entities)).
		Int("noun_phrases", len(annotation.NounPhrases)).
		Int("sentences", len(annotation.Sentences)).
		Msg("NLP分析完成")

	return annotation, nil
}

// nounPhrases 基于词性标注抽取名词短语
// 连续的 限定词/形容词/名词 序列构成一个候选短语，要求至少包含一个名词
func nounPhrases(tokens []prose.Token) []string {
	var phrases []string
	var current []string
	hasNoun := false

	flush := func() {
		if hasNoun && len(current) > 0 {
			phrases = append(phrases, strings.Join(current, " "))
		}
		current = current[:0]
		hasNoun = false
	}

	for _, tok := range tokens {
		switch {
		case strings.HasPrefix(tok.Tag, "NN"):
			current = append(current, tok.Text)
			hasNoun = true
		case tok.Tag == "DT" || tok.Tag == "PRP$" || strings.HasPrefix(tok.Tag, "JJ") || tok.Tag == "CD":
			// 名词之后再次出现限定成分，说明上一个短语已结束
			if hasNoun {
				flush()
			}
			current = append(current, tok.Text)
		default:
			flush()
		}
	}
	flush()

	return phrases
}
