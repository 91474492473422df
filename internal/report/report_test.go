package report_test

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saniyaacharya04/Resume-Scanner-using-NLP/internal/report"
	"github.com/saniyaacharya04/Resume-Scanner-using-NLP/internal/types"
)

func TestWriteCandidatesCSV(t *testing.T) {
	candidates := []*types.Candidate{
		{
			Identifier: "alice.pdf",
			Entities: types.EntityInfo{
				Name:            "Alice",
				Email:           "alice@example.com",
				Education:       []string{"B.Tech", "MASTER"},
				ExperienceYears: 5,
			},
			Level: types.LevelMid,
			Score: types.ScoreBreakdown{
				FinalScore:  0.68,
				SkillRatio:  0.8,
				SkillsFound: []string{"python", "sql"},
			},
		},
		{
			Identifier: "bob.pdf",
			Level:      types.LevelJunior,
			Warnings:   []string{"文本提取结果为空，各项得分为0"},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, report.WriteCandidatesCSV(&buf, candidates))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3) // 表头 + 两条记录

	assert.Equal(t, "rank", records[0][0])
	assert.Equal(t, "filename", records[0][1])

	assert.Equal(t, "1", records[1][0])
	assert.Equal(t, "alice.pdf", records[1][1])
	assert.Equal(t, "Alice", records[1][2])
	assert.Equal(t, "B.Tech; MASTER", records[1][7])
	assert.Equal(t, "0.68", records[1][8])
	assert.Equal(t, "python; sql", records[1][12])

	assert.Equal(t, "2", records[2][0])
	assert.Equal(t, "bob.pdf", records[2][1])
	assert.NotEmpty(t, records[2][13])
}

func TestWriteCandidatesCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.WriteCandidatesCSV(&buf, nil))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 1) // 只有表头
}

func TestHighlightKeywords(t *testing.T) {
	t.Run("整词匹配并保留原文大小写", func(t *testing.T) {
		out := report.HighlightKeywords("Python and SQL developer", []string{"python", "sql"})
		assert.Equal(t, "<mark>Python</mark> and <mark>SQL</mark> developer", out)
	})

	t.Run("不命中子串", func(t *testing.T) {
		out := report.HighlightKeywords("javascript expert", []string{"java"})
		assert.Equal(t, "javascript expert", out)
	})

	t.Run("空关键词列表不改变文本", func(t *testing.T) {
		assert.Equal(t, "plain text", report.HighlightKeywords("plain text", nil))
	})
}

func TestHighlightSkillsIntensity(t *testing.T) {
	out := report.HighlightSkillsIntensity("Python and NLP", map[string]float64{
		"python": 1.0,
		"nlp":    0.7,
	})

	// 相关度1.0时绿色分量为0，即纯红
	assert.Contains(t, out, "rgba(255, 0, 0, 0.5)'>Python</span>")
	assert.Contains(t, out, "rgba(255, 77, 0, 0.5)'>NLP</span>")
	assert.NotContains(t, out, "<mark>")
}
