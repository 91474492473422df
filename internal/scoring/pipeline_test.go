package scoring_test

import (
	"context"
	"errors"
	"testing"

	"github.com/cloudwego/eino/components/embedding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saniyaacharya04/Resume-Scanner-using-NLP/internal/parser"
	"github.com/saniyaacharya04/Resume-Scanner-using-NLP/internal/scoring"
	"github.com/saniyaacharya04/Resume-Scanner-using-NLP/internal/textproc"
	"github.com/saniyaacharya04/Resume-Scanner-using-NLP/internal/types"
)

// stubEmbedder 返回固定向量或固定错误的嵌入桩
type stubEmbedder struct {
	vector []float64
	err    error
}

func (s *stubEmbedder) EmbedStrings(ctx context.Context, texts []string, opts ...embedding.Option) ([][]float64, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := make([][]float64, len(texts))
	for i := range texts {
		out[i] = s.vector
	}
	return out, nil
}

func (s *stubEmbedder) GetDimensions() int {
	return len(s.vector)
}

func newTestScorer(t *testing.T, vocabulary []string, embedder scoring.TextEmbedder) *scoring.Scorer {
	t.Helper()
	normalizer, err := textproc.NewNormalizer()
	require.NoError(t, err)
	return scoring.NewScorer(normalizer, vocabulary, embedder,
		scoring.WithEntityExtractor(parser.NewRegexEntityExtractor()),
	)
}

func TestScorer_ProcessResume(t *testing.T) {
	scorer := newTestScorer(t, []string{"Python", "SQL", "Java"}, &stubEmbedder{vector: []float64{1, 0, 0}})

	job := types.JobRequirement{
		DescriptionText: "Looking for a data engineer with Python and SQL experience",
		RequiredSkills:  []string{"Python", "SQL"},
	}

	candidate := scorer.ProcessResume(context.Background(), scoring.ResumeInput{
		Identifier: "alice.pdf",
		RawText:    "Alice has 5 years of Python and SQL experience building data pipelines.",
	}, job)

	require.NotNil(t, candidate)
	assert.Equal(t, "alice.pdf", candidate.Identifier)
	assert.Equal(t, []string{"python", "sql"}, candidate.Score.SkillsFound)
	assert.InDelta(t, 1.0, candidate.Score.SkillRatio, 1e-9)
	assert.Equal(t, 5.0, candidate.Entities.ExperienceYears)
	assert.Equal(t, types.LevelMid, candidate.Level)
	// 两段文本使用同一个桩向量，语义相似度为1
	assert.InDelta(t, 1.0, candidate.Score.SemanticSimilarity, 1e-9)
	assert.Greater(t, candidate.Score.FinalScore, 0.0)
	assert.Empty(t, candidate.Warnings)
}

func TestScorer_ProcessResume_EmptyText(t *testing.T) {
	scorer := newTestScorer(t, []string{"Python"}, &stubEmbedder{vector: []float64{1, 0}})

	candidate := scorer.ProcessResume(context.Background(), scoring.ResumeInput{
		Identifier: "empty.pdf",
		RawText:    "",
	}, types.JobRequirement{
		DescriptionText: "Python developer",
		RequiredSkills:  []string{"Python"},
	})

	assert.Equal(t, 0.0, candidate.Score.SkillRatio)
	assert.Equal(t, 0.0, candidate.Score.LexicalSimilarity)
	assert.NotEmpty(t, candidate.Warnings)
}

func TestScorer_EmbeddingFailureFallsBackToStructural(t *testing.T) {
	scorer := newTestScorer(t, []string{"Python", "SQL"}, &stubEmbedder{err: errors.New("connection refused")})

	job := types.JobRequirement{
		DescriptionText: "Python and SQL engineer",
		RequiredSkills:  []string{"Python", "SQL"},
	}
	candidate := scorer.ProcessResume(context.Background(), scoring.ResumeInput{
		Identifier: "bob.pdf",
		RawText:    "Bob writes Python and SQL daily.",
	}, job)

	assert.Equal(t, 0.0, candidate.Score.SemanticSimilarity)
	expected := scoring.StructuralOnlyScore(candidate.Score.SkillRatio, candidate.Score.LexicalSimilarity)
	assert.Equal(t, expected, candidate.Score.FinalScore)
	assert.NotEmpty(t, candidate.Warnings)
}

func TestScorer_NilEmbedder(t *testing.T) {
	scorer := newTestScorer(t, []string{"Python"}, nil)

	candidate := scorer.ProcessResume(context.Background(), scoring.ResumeInput{
		Identifier: "carol.pdf",
		RawText:    "Carol knows Python.",
	}, types.JobRequirement{
		DescriptionText: "Python developer",
		RequiredSkills:  []string{"Python"},
	})

	assert.Equal(t, 0.0, candidate.Score.SemanticSimilarity)
	assert.NotEmpty(t, candidate.Warnings)

	_, err := scorer.EmbedText(context.Background(), "anything")
	assert.ErrorIs(t, err, scoring.ErrEmbeddingService)
}

func TestScorer_ScoreBatch_PreservesInputOrder(t *testing.T) {
	scorer := newTestScorer(t, []string{"Python", "SQL"}, &stubEmbedder{vector: []float64{1, 0}})

	inputs := []scoring.ResumeInput{
		{Identifier: "a.pdf", RawText: "nothing relevant here"},
		{Identifier: "b.pdf", RawText: "Python and SQL expert"},
		{Identifier: "c.pdf", RawText: "Python only"},
	}
	job := types.JobRequirement{
		DescriptionText: "Python and SQL engineer",
		RequiredSkills:  []string{"Python", "SQL"},
	}

	results := scorer.ScoreBatch(context.Background(), inputs, job)

	require.Len(t, results, 3)
	assert.Equal(t, "a.pdf", results[0].Identifier)
	assert.Equal(t, "b.pdf", results[1].Identifier)
	assert.Equal(t, "c.pdf", results[2].Identifier)

	ranked := scoring.Rank(results)
	assert.Equal(t, "b.pdf", ranked[0].Identifier)
}
