package parser

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/nguyenthenguyen/docx"
)

var (
	// document.xml 中的文本片段位于 <w:t> 标签内
	docxTextRe = regexp.MustCompile(`(?s)<w:t(?:\s[^>]*)?>(.*?)</w:t>`)
	// XML实体还原
	docxEntityReplacer = strings.NewReplacer(
		"&amp;", "&",
		"&lt;", "<",
		"&gt;", ">",
		"&quot;", `"`,
		"&apos;", "'",
	)
)

// ExtractTextFromDocx 从Word文档(.docx)中提取纯文本
// 按文档顺序逐段提取，段落之间以换行符连接
func ExtractTextFromDocx(docxPath string) (string, error) {
	r, err := docx.ReadDocxFile(docxPath)
	if err != nil {
		return "", fmt.Errorf("读取Word文档失败: %w", err)
	}
	defer r.Close()

	content := r.Editable().GetContent()
	return docxContentToText(content), nil
}

// docxContentToText 把document.xml内容还原成按段落分行的纯文本
func docxContentToText(content string) string {
	paragraphs := strings.Split(content, "</w:p>")

	var lines []string
	for _, para := range paragraphs {
		if !strings.Contains(para, "<w:p") {
			continue
		}
		var sb strings.Builder
		for _, m := range docxTextRe.FindAllStringSubmatch(para, -1) {
			sb.WriteString(m[1])
		}
		lines = append(lines, docxEntityReplacer.Replace(sb.String()))
	}

	return strings.Join(lines, "\n")
}
