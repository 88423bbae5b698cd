package parser

import "context"

// Entity 命名实体
type Entity struct {
	Text  string // 实体文本
	Label string // 实体类型标签，例如 PERSON / GPE
}

// Annotation 一段文本的NLP分析结果
type Annotation struct {
	// 命名实体，按出现顺序
	Entities []Entity
	// 名词短语
	NounPhrases []string
	// 切分后的句子
	Sentences []string
}

// Recognizer 实体识别器接口
// 生产实现基于prose，测试中可注入固定结果的桩实现
type Recognizer interface {
	Annotate(ctx context.Context, text string) (*Annotation, error)
}
