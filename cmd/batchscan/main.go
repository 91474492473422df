package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/saniyaacharya04/Resume-Scanner-using-NLP/internal/config"
	"github.com/saniyaacharya04/Resume-Scanner-using-NLP/internal/constants"
	applogger "github.com/saniyaacharya04/Resume-Scanner-using-NLP/internal/logger"
	"github.com/saniyaacharya04/Resume-Scanner-using-NLP/internal/parser"
	"github.com/saniyaacharya04/Resume-Scanner-using-NLP/internal/report"
	"github.com/saniyaacharya04/Resume-Scanner-using-NLP/internal/scoring"
	"github.com/saniyaacharya04/Resume-Scanner-using-NLP/internal/textproc"
	"github.com/saniyaacharya04/Resume-Scanner-using-NLP/internal/types"
)

// batchscan 离线批量评分工具：对一个目录下的简历文件按指定JD评分，
// 结果以CSV形式写到标准输出或指定文件。不依赖任何后端存储。
func main() {
	var (
		resumeDir    string
		jdPath       string
		skillsCSV    string
		outputPath   string
		embeddingURL string
		apiKey       string
		model        string
		workers      int
		logLevel     string
	)
	pflag.StringVarP(&resumeDir, "resumes", "r", "", "简历目录（支持 .pdf / .docx / .txt）")
	pflag.StringVarP(&jdPath, "jd", "j", "", "JD文本文件路径")
	pflag.StringVarP(&skillsCSV, "skills", "s", "", "必需技能，逗号分隔；缺省时从JD中按词表抽取")
	pflag.StringVarP(&outputPath, "output", "o", "", "CSV输出路径，缺省为标准输出")
	pflag.StringVar(&embeddingURL, "embedding-url", "", "嵌入服务地址，缺省时跳过语义项")
	pflag.StringVar(&apiKey, "api-key", os.Getenv("EMBEDDING_API_KEY"), "嵌入服务API密钥")
	pflag.StringVar(&model, "model", "", "嵌入模型名")
	pflag.IntVarP(&workers, "workers", "w", 4, "并发评分数")
	pflag.StringVar(&logLevel, "log-level", "warn", "日志级别")
	pflag.Parse()

	applogger.Init(applogger.Config{Level: logLevel, Format: "pretty"})

	if resumeDir == "" || jdPath == "" {
		pflag.Usage()
		os.Exit(2)
	}

	jdBytes, err := os.ReadFile(jdPath)
	if err != nil {
		applogger.Fatal().Err(err).Str("path", jdPath).Msg("读取JD文件失败")
	}

	ctx := context.Background()

	normalizer, err := textproc.NewNormalizer()
	if err != nil {
		applogger.Fatal().Err(err).Msg("初始化文本归一化器失败")
	}

	var embedder scoring.TextEmbedder
	if embeddingURL != "" {
		client, err := parser.NewEmbeddingClient(config.EmbeddingConfig{
			APIKey:  apiKey,
			Model:   model,
			BaseURL: embeddingURL,
		}, 30*time.Second)
		if err != nil {
			applogger.Fatal().Err(err).Msg("初始化Embedding客户端失败")
		}
		embedder = client
	} else {
		applogger.Warn().Msg("未配置嵌入服务，最终得分仅由结构项构成")
	}

	scorer := scoring.NewScorer(normalizer, constants.DefaultSkillVocabulary, embedder,
		scoring.WithEntityExtractor(parser.NewRegexEntityExtractor()),
		scoring.WithWorkers(workers),
		scoring.WithLogger(applogger.Logger),
	)

	var requiredSkills []string
	if skillsCSV != "" {
		for _, s := range strings.Split(skillsCSV, ",") {
			if s = strings.TrimSpace(s); s != "" {
				requiredSkills = append(requiredSkills, s)
			}
		}
	} else {
		requiredSkills = scorer.Matcher().ExtractSkills(string(jdBytes))
	}
	job := types.JobRequirement{
		DescriptionText: string(jdBytes),
		RequiredSkills:  requiredSkills,
	}

	inputs, err := collectResumes(ctx, resumeDir)
	if err != nil {
		applogger.Fatal().Err(err).Str("dir", resumeDir).Msg("读取简历目录失败")
	}
	if len(inputs) == 0 {
		applogger.Fatal().Str("dir", resumeDir).Msg("目录中没有可识别的简历文件")
	}

	candidates := scorer.ScoreBatch(ctx, inputs, job)
	ranked := scoring.Rank(candidates)

	out := os.Stdout
	if outputPath != "" {
		f, err := os.Create(outputPath)
		if err != nil {
			applogger.Fatal().Err(err).Str("path", outputPath).Msg("创建输出文件失败")
		}
		defer f.Close()
		out = f
	}
	if err := report.WriteCandidatesCSV(out, ranked); err != nil {
		applogger.Fatal().Err(err).Msg("写CSV报表失败")
	}

	if outputPath != "" {
		fmt.Fprintf(os.Stderr, "已评分 %d 份简历，结果写入 %s\n", len(ranked), outputPath)
	}
}

// collectResumes 遍历目录并抽取每个简历文件的文本
func collectResumes(ctx context.Context, dir string) ([]scoring.ResumeInput, error) {
	extractor, err := parser.NewTextExtractor(ctx)
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var inputs []scoring.ResumeInput
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		switch strings.ToLower(filepath.Ext(name)) {
		case ".pdf", ".docx", ".txt":
		default:
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			applogger.Warn().Err(err).Str("filename", name).Msg("读取文件失败，跳过")
			continue
		}
		inputs = append(inputs, scoring.ResumeInput{
			Identifier: name,
			RawText:    extractor.Extract(ctx, name, data),
		})
	}
	return inputs, nil
}
