package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestClientExtract 验证客户名称提取与过滤规则
func TestClientExtract(t *testing.T) {
	c := NewClientExtractor()

	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "基础提取并过滤泛化词",
			text: "Client: Acme Corp\nClient:customer\n",
			want: []string{"Acme Corp"},
		},
		{
			name: "多个客户去重并排序",
			text: "Worked on several projects.\nClient: Zenith Bank\nDid backend work.\nclient : Acme Corp\nMore text.\nCLIENT: Acme Corp\n",
			want: []string{"Acme Corp", "Zenith Bank"},
		},
		{
			name: "过短的值被忽略",
			text: "Client: AB\nbuilt internal tooling\nClient: IBM Cloud\n",
			want: []string{"IBM Cloud"},
		},
		{
			name: "没有客户行",
			text: "Senior engineer with ten years of experience.",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Extract(tt.text)
			assert.Equal(t, tt.want, got)
		})
	}
}

// TestClientExtractDenyList 验证拒绝列表大小写不敏感
func TestClientExtractDenyList(t *testing.T) {
	c := NewClientExtractor()

	text := "Client: Customer\nsome text\nClient: ACCOUNT\nmore text\nClient: Globex Inc\n"
	got := c.Extract(text)
	assert.Equal(t, []string{"Globex Inc"}, got)
}
