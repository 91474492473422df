package scoring_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saniyaacharya04/Resume-Scanner-using-NLP/internal/scoring"
	"github.com/saniyaacharya04/Resume-Scanner-using-NLP/internal/types"
)

func TestSkillMatcher_ExtractSkills(t *testing.T) {
	matcher := scoring.NewSkillMatcher([]string{"Python", "SQL", "Machine Learning"})

	skills := matcher.ExtractSkills("Experienced in python and machine learning projects")
	assert.Equal(t, []string{"python", "machine learning"}, skills)

	assert.Empty(t, matcher.ExtractSkills("前端开发，精通Vue"))
	assert.Empty(t, matcher.ExtractSkills(""))
}

func TestSkillRatio(t *testing.T) {
	t.Run("必需技能为空时返回0", func(t *testing.T) {
		assert.Equal(t, 0.0, scoring.SkillRatio([]string{"Python"}, nil))
	})

	t.Run("部分命中", func(t *testing.T) {
		ratio := scoring.SkillRatio([]string{"Python"}, []string{"Python", "SQL"})
		assert.InDelta(t, 0.5, ratio, 1e-9)
	})

	t.Run("重复技能只计一次", func(t *testing.T) {
		ratio := scoring.SkillRatio(
			[]string{"Python", "python", "Python"},
			[]string{"Python", "PYTHON", "SQL", "sql"},
		)
		assert.InDelta(t, 0.5, ratio, 1e-9)
	})

	t.Run("全部命中", func(t *testing.T) {
		ratio := scoring.SkillRatio([]string{"Python", "SQL"}, []string{"Python", "SQL"})
		assert.InDelta(t, 1.0, ratio, 1e-9)
	})
}

func TestLexicalSimilarity(t *testing.T) {
	t.Run("完全相同的文档相似度为1", func(t *testing.T) {
		sim := scoring.LexicalSimilarity("python data engineer", "python data engineer")
		assert.InDelta(t, 1.0, sim, 1e-9)
	})

	t.Run("完全不相交的文档相似度为0", func(t *testing.T) {
		sim := scoring.LexicalSimilarity("golang backend", "french pastry chef")
		assert.InDelta(t, 0.0, sim, 1e-9)
	})

	t.Run("空文档相似度为0", func(t *testing.T) {
		assert.Equal(t, 0.0, scoring.LexicalSimilarity("", "python"))
		assert.Equal(t, 0.0, scoring.LexicalSimilarity("python", ""))
		assert.Equal(t, 0.0, scoring.LexicalSimilarity("", ""))
	})

	t.Run("部分重叠的文档相似度在0和1之间", func(t *testing.T) {
		sim := scoring.LexicalSimilarity("python sql developer", "python web developer")
		assert.Greater(t, sim, 0.0)
		assert.Less(t, sim, 1.0)
	})
}

func TestSemanticSimilarity(t *testing.T) {
	t.Run("同向向量相似度为1", func(t *testing.T) {
		sim := scoring.SemanticSimilarity([]float64{1, 2, 3}, []float64{2, 4, 6})
		assert.InDelta(t, 1.0, sim, 1e-9)
	})

	t.Run("反向向量截断为0", func(t *testing.T) {
		sim := scoring.SemanticSimilarity([]float64{1, 0}, []float64{-1, 0})
		assert.Equal(t, 0.0, sim)
	})

	t.Run("维度不一致返回0", func(t *testing.T) {
		assert.Equal(t, 0.0, scoring.SemanticSimilarity([]float64{1, 2}, []float64{1, 2, 3}))
	})

	t.Run("零向量返回0", func(t *testing.T) {
		assert.Equal(t, 0.0, scoring.SemanticSimilarity([]float64{0, 0}, []float64{1, 2}))
	})
}

func TestClassifyExperience(t *testing.T) {
	cases := []struct {
		years float64
		want  types.ExperienceLevel
	}{
		{0, types.LevelJunior},
		{2.99, types.LevelJunior},
		{3.0, types.LevelMid},
		{5, types.LevelMid},
		{7.0, types.LevelMid},
		{7.01, types.LevelSenior},
		{20, types.LevelSenior},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, scoring.ClassifyExperience(tc.years), "years=%v", tc.years)
	}
}

func TestCombineScores(t *testing.T) {
	t.Run("两段加权且逐段四舍五入", func(t *testing.T) {
		final, structural := scoring.CombineScores(0.8, 0.5, 0.6)
		assert.InDelta(t, 0.71, structural, 1e-9) // 0.7*0.8 + 0.3*0.5 = 0.71
		assert.InDelta(t, 0.68, final, 1e-9)      // round2(0.7*0.71 + 0.3*0.6) = round2(0.677)
	})

	t.Run("全零输入", func(t *testing.T) {
		final, structural := scoring.CombineScores(0, 0, 0)
		assert.Equal(t, 0.0, structural)
		assert.Equal(t, 0.0, final)
	})

	t.Run("满分输入", func(t *testing.T) {
		final, structural := scoring.CombineScores(1, 1, 1)
		assert.Equal(t, 1.0, structural)
		assert.Equal(t, 1.0, final)
	})
}

func TestStructuralOnlyScore(t *testing.T) {
	assert.InDelta(t, 0.71, scoring.StructuralOnlyScore(0.8, 0.5), 1e-9)
	assert.Equal(t, 0.0, scoring.StructuralOnlyScore(0, 0))
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 0.68, scoring.Round2(0.677))
	assert.Equal(t, 0.67, scoring.Round2(0.674))
	assert.Equal(t, 1.0, scoring.Round2(0.999))
}

func TestRank_StableDescending(t *testing.T) {
	mk := func(id string, score float64) *types.Candidate {
		return &types.Candidate{
			Identifier: id,
			Score:      types.ScoreBreakdown{FinalScore: score},
		}
	}

	input := []*types.Candidate{
		mk("a", 0.5),
		mk("b", 0.9),
		mk("c", 0.5),
		mk("d", 0.7),
	}
	ranked := scoring.Rank(input)

	require.Len(t, ranked, 4)
	assert.Equal(t, "b", ranked[0].Identifier)
	assert.Equal(t, "d", ranked[1].Identifier)
	// 同分保持输入顺序
	assert.Equal(t, "a", ranked[2].Identifier)
	assert.Equal(t, "c", ranked[3].Identifier)

	// 输入切片不被修改
	assert.Equal(t, "a", input[0].Identifier)
}

func TestBuildSkillGapMatrix(t *testing.T) {
	candidates := []*types.Candidate{
		{
			Identifier: "alice.pdf",
			Score:      types.ScoreBreakdown{SkillsFound: []string{"Python"}},
		},
		{
			Identifier: "bob.pdf",
			Score:      types.ScoreBreakdown{SkillsFound: []string{"Python", "SQL"}},
		},
	}

	matrix := scoring.BuildSkillGapMatrix(candidates, []string{"Python", "SQL", "python"})

	assert.Equal(t, []string{"alice.pdf", "bob.pdf"}, matrix.Candidates)
	// 重复技能按首次出现去重，列名统一小写
	assert.Equal(t, []string{"python", "sql"}, matrix.Skills)
	require.Len(t, matrix.Rows, 2)
	assert.Equal(t, []int{1, 0}, matrix.Rows[0])
	assert.Equal(t, []int{1, 1}, matrix.Rows[1])
}

func TestBuildSkillGapMatrix_Empty(t *testing.T) {
	matrix := scoring.BuildSkillGapMatrix(nil, nil)
	assert.Empty(t, matrix.Candidates)
	assert.Empty(t, matrix.Skills)
	assert.Empty(t, matrix.Rows)
}

func TestFilter(t *testing.T) {
	candidates := []*types.Candidate{
		{
			Identifier: "junior.pdf",
			Entities:   types.EntityInfo{ExperienceYears: 1, Education: []string{"B.Tech"}},
			Score:      types.ScoreBreakdown{FinalScore: 0.4},
		},
		{
			Identifier: "senior.pdf",
			Entities:   types.EntityInfo{ExperienceYears: 9, Education: []string{"Master of Science"}},
			Score:      types.ScoreBreakdown{FinalScore: 0.8},
		},
	}

	t.Run("零值条件不过滤", func(t *testing.T) {
		out := scoring.Filter(candidates, scoring.FilterOptions{})
		assert.Len(t, out, 2)
	})

	t.Run("按最低得分过滤", func(t *testing.T) {
		out := scoring.Filter(candidates, scoring.FilterOptions{MinScore: 0.5})
		require.Len(t, out, 1)
		assert.Equal(t, "senior.pdf", out[0].Identifier)
	})

	t.Run("按年限区间过滤", func(t *testing.T) {
		out := scoring.Filter(candidates, scoring.FilterOptions{MaxYears: 5})
		require.Len(t, out, 1)
		assert.Equal(t, "junior.pdf", out[0].Identifier)
	})

	t.Run("按学历关键词过滤", func(t *testing.T) {
		out := scoring.Filter(candidates, scoring.FilterOptions{Education: []string{"master"}})
		require.Len(t, out, 1)
		assert.Equal(t, "senior.pdf", out[0].Identifier)
	})
}
