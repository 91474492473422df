package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/saniyaacharya04/Resume-Scanner-using-NLP/internal/constants"
	"github.com/saniyaacharya04/Resume-Scanner-using-NLP/internal/logger"
)

// ServerConfig HTTP服务配置
type ServerConfig struct {
	Address string `yaml:"address"` // 监听地址，如 ":8080"
}

// EmbeddingConfig 嵌入服务配置 (OpenAI兼容接口)
type EmbeddingConfig struct {
	APIKey         string `yaml:"api_key"`
	Model          string `yaml:"model"`
	BaseURL        string `yaml:"base_url"`
	Dimensions     int    `yaml:"dimensions"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// MySQLConfig 数据库配置
type MySQLConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	// 连接池设置
	MaxOpenConns    int `yaml:"max_open_conns"`
	MaxIdleConns    int `yaml:"max_idle_conns"`
	ConnMaxLifetime int `yaml:"conn_max_lifetime_minutes"`
}

// DSN 构造MySQL连接串
func (c *MySQLConfig) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		c.User, c.Password, c.Host, c.Port, c.Database)
}

// RedisConfig Redis配置
type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	// 连接池设置
	PoolSize     int `yaml:"pool_size"`
	MinIdleConns int `yaml:"min_idle_conns"`
	// 超时设置
	DialTimeoutSeconds  int `yaml:"dial_timeout_seconds"`
	ReadTimeoutSeconds  int `yaml:"read_timeout_seconds"`
	WriteTimeoutSeconds int `yaml:"write_timeout_seconds"`
}

// MinIOConfig 对象存储配置
type MinIOConfig struct {
	Endpoint        string `yaml:"endpoint"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
	UseSSL          bool   `yaml:"use_ssl"`
	// OriginalsBucket 存放上传的简历原件
	OriginalsBucket string `yaml:"originals_bucket"`
	// ParsedTextBucket 存放提取出的纯文本
	ParsedTextBucket string `yaml:"parsed_text_bucket"`
}

// RabbitMQConfig 消息队列配置
type RabbitMQConfig struct {
	URL string `yaml:"url"`
	// ConsumerWorkers 扫描任务消费者的并发数
	ConsumerWorkers int `yaml:"consumer_workers"`
}

// QdrantConfig 向量数据库配置
type QdrantConfig struct {
	Endpoint   string `yaml:"endpoint"`
	Collection string `yaml:"collection"`
	Dimension  int    `yaml:"dimension"`
}

// ScannerConfig 扫描与评分行为配置
type ScannerConfig struct {
	// SkillVocabulary 技能词表，为空时使用内置默认词表
	SkillVocabulary []string `yaml:"skill_vocabulary"`
	// SimilarityThreshold 语义检索相似度下限
	SimilarityThreshold float64 `yaml:"similarity_threshold"`
	// TopNMatches 语义检索默认返回数
	TopNMatches int `yaml:"top_n_matches"`
}

// Config 应用程序配置
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Logger    logger.Config   `yaml:"logger"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	MySQL     MySQLConfig     `yaml:"mysql"`
	Redis     RedisConfig     `yaml:"redis"`
	MinIO     MinIOConfig     `yaml:"minio"`
	RabbitMQ  RabbitMQConfig  `yaml:"rabbitmq"`
	Qdrant    QdrantConfig    `yaml:"qdrant"`
	Scanner   ScannerConfig   `yaml:"scanner"`
}

// EmbeddingTimeout 嵌入请求超时
func (c *Config) EmbeddingTimeout() time.Duration {
	if c.Embedding.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.Embedding.TimeoutSeconds) * time.Second
}

// LoadConfig 从YAML文件加载配置。
// 未指定路径时在常见位置查找，找不到则回退到内置默认值。
func LoadConfig(configPath string) (*Config, error) {
	if configPath == "" {
		searchPaths := []string{
			"config.yaml",
			"./config.yaml",
			"../config.yaml",
			filepath.Join(os.Getenv("HOME"), ".resume-scanner", "config.yaml"),
		}
		if execPath, err := os.Executable(); err == nil {
			searchPaths = append(searchPaths, filepath.Join(filepath.Dir(execPath), "config.yaml"))
		}
		for _, path := range searchPaths {
			if _, err := os.Stat(path); err == nil {
				configPath = path
				break
			}
		}
	}

	cfg := defaultConfig()

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("解析配置文件失败: %w", err)
		}
	}

	// API密钥允许通过环境变量覆盖，避免写入配置文件
	if key := os.Getenv("EMBEDDING_API_KEY"); key != "" {
		cfg.Embedding.APIKey = key
	}

	applyDefaults(cfg)
	return cfg, nil
}

// defaultConfig 返回内置默认配置
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{Address: ":8080"},
		Logger: logger.Config{Level: "info", Format: "json"},
		Embedding: EmbeddingConfig{
			Model:      "all-MiniLM-L6-v2",
			Dimensions: constants.DefaultEmbeddingDimensions,
		},
		Scanner: ScannerConfig{
			SimilarityThreshold: constants.DefaultSimilarityThreshold,
			TopNMatches:         constants.DefaultTopNMatches,
		},
	}
}

// applyDefaults 补全未配置的字段
func applyDefaults(cfg *Config) {
	if cfg.Embedding.Dimensions <= 0 {
		cfg.Embedding.Dimensions = constants.DefaultEmbeddingDimensions
	}
	if cfg.Qdrant.Dimension <= 0 {
		cfg.Qdrant.Dimension = cfg.Embedding.Dimensions
	}
	if cfg.Qdrant.Collection == "" {
		cfg.Qdrant.Collection = "resume_vectors"
	}
	if cfg.Scanner.SimilarityThreshold <= 0 {
		cfg.Scanner.SimilarityThreshold = constants.DefaultSimilarityThreshold
	}
	if cfg.Scanner.TopNMatches <= 0 {
		cfg.Scanner.TopNMatches = constants.DefaultTopNMatches
	}
	if len(cfg.Scanner.SkillVocabulary) == 0 {
		cfg.Scanner.SkillVocabulary = constants.DefaultSkillVocabulary
	}
	if cfg.RabbitMQ.ConsumerWorkers <= 0 {
		cfg.RabbitMQ.ConsumerWorkers = 4
	}
	if cfg.MinIO.OriginalsBucket == "" {
		cfg.MinIO.OriginalsBucket = "resumes-raw"
	}
	if cfg.MinIO.ParsedTextBucket == "" {
		cfg.MinIO.ParsedTextBucket = "resumes-text"
	}
}
