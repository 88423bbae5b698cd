package matcher

import (
	"context"
)

// TextExtractor 文档文本提取接口
type TextExtractor interface {
	// ExtractFile 按扩展名提取单个文件的全文
	ExtractFile(ctx context.Context, filePath string) (string, error)

	// ResolveJobDescription 把岗位描述来源（文件路径或纯文本）解析为纯文本
	ResolveJobDescription(ctx context.Context, source string) (string, error)
}
