package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/saniyaacharya04/Resume-Scanner-using-NLP/internal/storage/models"
	"github.com/saniyaacharya04/Resume-Scanner-using-NLP/internal/types"
)

// TestCandidateFromResult 验证数据库记录到 Candidate 的转换（含 JSON 字段反序列化）
func TestCandidateFromResult(t *testing.T) {
	result := models.CandidateResult{
		BatchID:            "batch-1",
		Filename:           "alice.pdf",
		CandidateName:      "Alice",
		Email:              "alice@example.com",
		Phone:              "+91 98765 43210",
		EducationJSON:      datatypes.JSON(`["B.Tech"]`),
		ExperienceYears:    5,
		ExperienceLevel:    "Mid-Level",
		FinalScore:         0.68,
		SkillRatio:         0.8,
		LexicalSimilarity:  0.5,
		SemanticSimilarity: 0.6,
		SkillsFoundJSON:    datatypes.JSON(`["python","sql"]`),
		WarningsJSON:       datatypes.JSON(`[]`),
	}

	c, err := candidateFromResult(result)
	require.NoError(t, err)

	assert.Equal(t, "alice.pdf", c.Identifier)
	assert.Equal(t, "Alice", c.Entities.Name)
	assert.Equal(t, []string{"B.Tech"}, c.Entities.Education)
	assert.Equal(t, types.LevelMid, c.Level)
	assert.Equal(t, 0.68, c.Score.FinalScore)
	assert.Equal(t, []string{"python", "sql"}, c.Score.SkillsFound)
	assert.Empty(t, c.Warnings)
}

func TestCandidateFromResult_EmptyJSONFields(t *testing.T) {
	c, err := candidateFromResult(models.CandidateResult{Filename: "bare.pdf"})
	require.NoError(t, err)
	assert.Equal(t, "bare.pdf", c.Identifier)
	assert.Empty(t, c.Entities.Education)
	assert.Empty(t, c.Score.SkillsFound)
}

func TestSkillIntensityWeights(t *testing.T) {
	weights := skillIntensityWeights([]string{"Python", "SQL"}, []string{"python", "excel"})
	assert.Equal(t, 1.0, weights["python"])
	assert.Equal(t, 0.6, weights["excel"])
	assert.NotContains(t, weights, "sql")
}

func TestCandidateFromResult_MalformedJSON(t *testing.T) {
	_, err := candidateFromResult(models.CandidateResult{
		Filename:      "bad.pdf",
		EducationJSON: datatypes.JSON(`{not json`),
	})
	assert.Error(t, err)
}
