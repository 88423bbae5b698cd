package parser

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// ErrUnsupportedFormat 文件扩展名不在支持范围内
var ErrUnsupportedFormat = errors.New("不支持的文件格式")

// PDFExtractor PDF提取器接口
type PDFExtractor interface {
	// ExtractFromFile 从PDF文件提取文本
	ExtractFromFile(ctx context.Context, filePath string) (string, error)
}

// DocumentExtractor 统一的文档文本提取器
// 负责把 PDF / Word / 文本文件 / 纯文本字符串 解析为纯文本
type DocumentExtractor struct {
	pdf    PDFExtractor
	logger zerolog.Logger
}

// DocumentExtractorOption 文档提取器的配置选项
type DocumentExtractorOption func(*DocumentExtractor)

// WithDocumentLogger 配置自定义日志记录器
func WithDocumentLogger(logger zerolog.Logger) DocumentExtractorOption {
	return func(d *DocumentExtractor) {
		d.logger = logger
	}
}

// NewDocumentExtractor 创建文档提取器
func NewDocumentExtractor(pdf PDFExtractor, options ...DocumentExtractorOption) *DocumentExtractor {
	d := &DocumentExtractor{
		pdf:    pdf,
		logger: zerolog.Nop(),
	}
	for _, option := range options {
		option(d)
	}
	return d
}

// ExtractFile 按扩展名提取单个文件的全文
func (d *DocumentExtractor) ExtractFile(ctx context.Context, filePath string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filePath))
	switch ext {
	case ".pdf":
		text, err := d.pdf.ExtractFromFile(ctx, filePath)
		if err != nil {
			return "", fmt.Errorf("提取PDF文本失败: %w", err)
		}
		return text, nil
	case ".docx":
		text, err := ExtractTextFromDocx(filePath)
		if err != nil {
			return "", fmt.Errorf("提取Word文本失败: %w", err)
		}
		return text, nil
	case ".txt":
		data, err := os.ReadFile(filePath)
		if err != nil {
			return "", fmt.Errorf("读取文本文件失败: %w", err)
		}
		return string(data), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, filePath)
	}
}

// ResolveJobDescription 把岗位描述来源解析为纯文本
// 来源可以是PDF路径、Word路径、文本文件路径，或直接粘贴的岗位描述文本；
// 不是已存在文件路径的字符串一律按纯文本处理
func (d *DocumentExtractor) ResolveJobDescription(ctx context.Context, source string) (string, error) {
	if _, err := os.Stat(source); err != nil {
		// 不是现有文件，视为粘贴的岗位描述文本
		return source, nil
	}

	ext := strings.ToLower(filepath.Ext(source))
	switch ext {
	case ".txt":
		data, err := os.ReadFile(source)
		if err != nil {
			return "", fmt.Errorf("读取文本文件失败: %w", err)
		}
		return string(data), nil
	case ".docx":
		text, err := ExtractTextFromDocx(source)
		if err != nil {
			return "", fmt.Errorf("提取Word文本失败: %w", err)
		}
		return text, nil
	default:
		// 其余情况按PDF尝试解析
		text, err := d.pdf.ExtractFromFile(ctx, source)
		if err != nil {
			return "", fmt.Errorf("提取PDF文本失败: %w", err)
		}
		return text, nil
	}
}
