package parser

import (
	"context"
	"strings"
	"testing"

	prose "github.com/jdkato/prose/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestProseAnnotate 验证识别器产出句子和名词短语
// 实体识别结果依赖库内置模型，这里只做宽松断言
func TestProseAnnotate(t *testing.T) {
	r := NewProseRecognizer()

	text := "I have five years of experience with Python and Django frameworks. I worked on many backend systems."
	annotation, err := r.Annotate(context.Background(), text)
	require.NoError(t, err)
	require.NotNil(t, annotation)

	assert.Len(t, annotation.Sentences, 2)
	assert.Contains(t, strings.ToLower(annotation.Sentences[0]), "experience")
	assert.NotEmpty(t, annotation.NounPhrases)
}

// TestNounPhrases 验证基于词性序列的名词短语抽取
func TestNounPhrases(t *testing.T) {
	tests := []struct {
		name   string
		tokens []prose.Token
		want   []string
	}{
		{
			name: "限定词加形容词加名词构成一个短语",
			tokens: []prose.Token{
				{Tag: "DT", Text: "The"},
				{Tag: "JJ", Text: "senior"},
				{Tag: "NN", Text: "engineer"},
				{Tag: "VBZ", Text: "uses"},
				{Tag: "NNP", Text: "Python"},
				{Tag: "CC", Text: "and"},
				{Tag: "NNP", Text: "Django"},
			},
			want: []string{"The senior engineer", "Python", "Django"},
		},
		{
			name: "名词之后的限定词开启新短语",
			tokens: []prose.Token{
				{Tag: "NN", Text: "experience"},
				{Tag: "DT", Text: "a"},
				{Tag: "NN", Text: "tool"},
			},
			want: []string{"experience", "a tool"},
		},
		{
			name: "不含名词的序列不产出短语",
			tokens: []prose.Token{
				{Tag: "JJ", Text: "quick"},
				{Tag: "VBZ", Text: "runs"},
				{Tag: "CD", Text: "five"},
			},
			want: nil,
		},
		{
			name: "数词并入后续名词短语",
			tokens: []prose.Token{
				{Tag: "CD", Text: "five"},
				{Tag: "NNS", Text: "years"},
			},
			want: []string{"five years"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, nounPhrases(tt.tokens))
		})
	}
}
