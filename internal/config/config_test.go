package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saniyaacharya04/Resume-Scanner-using-NLP/internal/config"
	"github.com/saniyaacharya04/Resume-Scanner-using-NLP/internal/constants"
)

func TestLoadConfig_FromFile(t *testing.T) {
	content := `
server:
  address: ":9090"
logger:
  level: "debug"
embedding:
  base_url: "http://embed:8090/v1"
  dimensions: 512
scanner:
  similarity_threshold: 0.6
  skill_vocabulary:
    - "Go"
    - "Rust"
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Address)
	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, "http://embed:8090/v1", cfg.Embedding.BaseURL)
	assert.Equal(t, 512, cfg.Embedding.Dimensions)
	assert.Equal(t, 0.6, cfg.Scanner.SimilarityThreshold)
	assert.Equal(t, []string{"Go", "Rust"}, cfg.Scanner.SkillVocabulary)

	// 未配置的维度回落到嵌入维度
	assert.Equal(t, 512, cfg.Qdrant.Dimension)
}

func TestLoadConfig_Defaults(t *testing.T) {
	// 指向不存在的搜索路径时使用内置默认值
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{}\n"), 0o644))

	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, constants.DefaultEmbeddingDimensions, cfg.Embedding.Dimensions)
	assert.Equal(t, constants.DefaultSimilarityThreshold, cfg.Scanner.SimilarityThreshold)
	assert.Equal(t, constants.DefaultTopNMatches, cfg.Scanner.TopNMatches)
	assert.Equal(t, constants.DefaultSkillVocabulary, cfg.Scanner.SkillVocabulary)
	assert.Equal(t, "resume_vectors", cfg.Qdrant.Collection)
	assert.Equal(t, "resumes-raw", cfg.MinIO.OriginalsBucket)
}

func TestLoadConfig_EnvOverridesAPIKey(t *testing.T) {
	t.Setenv("EMBEDDING_API_KEY", "env-secret")

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("embedding:\n  api_key: file-secret\n"), 0o644))

	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "env-secret", cfg.Embedding.APIKey)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := config.LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestEmbeddingTimeout(t *testing.T) {
	cfg := &config.Config{}
	assert.Equal(t, "30s", cfg.EmbeddingTimeout().String())

	cfg.Embedding.TimeoutSeconds = 5
	assert.Equal(t, "5s", cfg.EmbeddingTimeout().String())
}
