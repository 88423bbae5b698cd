package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"resume-match-go/internal/config"
	appLogger "resume-match-go/internal/logger"
	"resume-match-go/internal/matcher"
	"resume-match-go/internal/parser"
	"resume-match-go/internal/types"

	"github.com/spf13/pflag"
)

// 命令行批量匹配工具
// 整体匹配:   resumematch --job jd.pdf --dir ./resumes --top 10
// 技能筛选:   resumematch --dir ./resumes --skills Python --skills Docker --threshold 0.5
func main() {
	var (
		configPath string
		jobSource  string
		resumeDir  string
		skills     []string
		threshold  float64
		topN       int
	)

	pflag.StringVarP(&configPath, "config", "c", "", "配置文件路径")
	pflag.StringVarP(&jobSource, "job", "j", "", "岗位描述：文件路径或直接粘贴的文本")
	pflag.StringVarP(&resumeDir, "dir", "d", "", "简历目录")
	pflag.StringArrayVarP(&skills, "skills", "s", nil, "目标技能，可重复指定")
	pflag.Float64VarP(&threshold, "threshold", "t", 0, "技能匹配阈值，0表示使用配置默认值")
	pflag.IntVarP(&topN, "top", "n", 0, "整体匹配返回的最大结果数")
	pflag.Parse()

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	appLogger.Init(appLogger.Config{
		Level:        cfg.Logger.Level,
		Format:       cfg.Logger.Format,
		TimeFormat:   cfg.Logger.TimeFormat,
		ReportCaller: cfg.Logger.ReportCaller,
	})

	if resumeDir == "" {
		fmt.Fprintln(os.Stderr, "必须指定简历目录 (--dir)")
		os.Exit(1)
	}

	ctx := context.Background()

	embedder, err := parser.NewAliyunEmbedder(cfg.Aliyun.APIKey, cfg.Aliyun.Embedding, parser.WithEmbedderLogger(appLogger.Logger))
	if err != nil {
		appLogger.Fatal().Err(err).Msg("初始化阿里云Embedder失败")
	}

	pdfExtractor, err := parser.NewEinoPDFTextExtractor(ctx, parser.WithEinoLogger(appLogger.Logger))
	if err != nil {
		appLogger.Fatal().Err(err).Msg("创建Eino PDF提取器失败")
	}

	docExtractor := parser.NewDocumentExtractor(pdfExtractor, parser.WithDocumentLogger(appLogger.Logger))
	recognizer := parser.NewProseRecognizer(parser.WithProseLogger(appLogger.Logger))
	engine := matcher.NewEngine(docExtractor, embedder, recognizer, matcher.WithEngineLogger(appLogger.Logger))

	if len(skills) == 0 {
		skills = cfg.Matcher.Skills
	}

	switch {
	case jobSource != "":
		if topN <= 0 {
			topN = cfg.Matcher.TopN
		}
		results, failures, err := engine.MatchResumes(ctx, jobSource, resumeDir, topN)
		if err != nil {
			appLogger.Fatal().Err(err).Msg("整体匹配失败")
		}
		printResults(results, failures)

	case len(skills) > 0:
		if threshold <= 0 {
			threshold = cfg.Matcher.Threshold
		}
		results, failures, err := engine.FilterResumesBySkills(ctx, resumeDir, skills, threshold)
		if err != nil {
			appLogger.Fatal().Err(err).Msg("技能筛选失败")
		}
		printResults(results, failures)

	default:
		fmt.Fprintln(os.Stderr, "必须指定岗位描述 (--job) 或目标技能 (--skills)")
		os.Exit(1)
	}
}

// printResults 以JSON形式输出结果，失败信息打到stderr
func printResults(results interface{}, failures []types.FileError) {
	for _, f := range failures {
		fmt.Fprintf(os.Stderr, "处理失败 %s\n", f.String())
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(results); err != nil {
		appLogger.Fatal().Err(err).Msg("序列化结果失败")
	}
}
