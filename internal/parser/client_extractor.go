package parser

import (
	"regexp"
	"sort"
	"strings"
)

// 三个写法上略有差异但语义等价的 "Client:" 行格式，全部大小写不敏感地套用，
// 捕获冒号之后直到行尾的内容
var clientPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:^|\n)\s*Client\s*[:]\s*([^\n\r]+?)(?:\s*\n|$)`),
	regexp.MustCompile(`(?i)(?:^|\n)\s*Client\s+[:]\s*([^\n\r]+?)(?:\s*\n|$)`),
	regexp.MustCompile(`(?i)(?:^|\n)\s*Client\s*[:]\s*\n?\s*([^\n\r]+?)(?:\s*\n|$)`),
}

// 过短或过于宽泛的值不算客户名称
var clientDenyList = map[string]bool{
	"client":   true,
	"customer": true,
	"account":  true,
}

// ClientExtractor 客户名称提取器
type ClientExtractor struct{}

// NewClientExtractor 创建客户名称提取器
func NewClientExtractor() *ClientExtractor {
	return &ClientExtractor{}
}

// Extract 提取简历中出现的客户名称集合
// 结果已去重；返回值按字典序排序以保证输出稳定
func (c *ClientExtractor) Extract(text string) []string {
	seen := make(map[string]bool)

	for _, pattern := range clientPatterns {
		for _, m := range pattern.FindAllStringSubmatch(text, -1) {
			name := strings.TrimSpace(m[1])
			if len(name) <= 2 {
				continue
			}
			if clientDenyList[strings.ToLower(name)] {
				continue
			}
			seen[name] = true
		}
	}

	clients := make([]string, 0, len(seen))
	for name := range seen {
		clients = append(clients, name)
	}
	sort.Strings(clients)

	return clients
}
