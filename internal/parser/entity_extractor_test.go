package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/saniyaacharya04/Resume-Scanner-using-NLP/internal/parser"
)

const sampleResume = `John Smith
Senior Data Engineer
john.smith@example.com
+91 98765 43210

Education: B.Tech in Computer Science, Master of Science

Experienced professional with 8+ years of building data platforms.
Skilled in Python, SQL and machine learning.`

func TestExtractEmail(t *testing.T) {
	assert.Equal(t, "john.smith@example.com", parser.ExtractEmail(sampleResume))
	assert.Equal(t, "", parser.ExtractEmail("no contact info here"))
}

func TestExtractPhone(t *testing.T) {
	assert.NotEmpty(t, parser.ExtractPhone(sampleResume))
	assert.Equal(t, "", parser.ExtractPhone("call me maybe"))
}

func TestExtractName(t *testing.T) {
	assert.Equal(t, "John Smith", parser.ExtractName(sampleResume))

	t.Run("跳过含数字和邮箱的行", func(t *testing.T) {
		text := "123 Main Street\njane@example.com\nJane Doe\n"
		assert.Equal(t, "Jane Doe", parser.ExtractName(text))
	})

	t.Run("找不到姓名时返回空串", func(t *testing.T) {
		assert.Equal(t, "", parser.ExtractName("lowercase only text\nwithout any name"))
	})
}

func TestExtractEducation(t *testing.T) {
	got := parser.ExtractEducation(sampleResume)
	assert.Contains(t, got, "MASTER")
	assert.Contains(t, got, "B.Tech")

	assert.Empty(t, parser.ExtractEducation("self-taught programmer"))
}

func TestExtractExperienceYears(t *testing.T) {
	cases := []struct {
		text string
		want float64
	}{
		{"5 years of experience", 5},
		{"8+ years building platforms", 8},
		{"1 year internship", 1},
		{"no duration mentioned", 0},
		{"", 0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, parser.ExtractExperienceYears(tc.text), "text=%q", tc.text)
	}
}

func TestExtractEntities(t *testing.T) {
	extractor := parser.NewRegexEntityExtractor()
	info := extractor.ExtractEntities(sampleResume)

	assert.Equal(t, "John Smith", info.Name)
	assert.Equal(t, "john.smith@example.com", info.Email)
	assert.NotEmpty(t, info.Phone)
	assert.Equal(t, 8.0, info.ExperienceYears)
	assert.NotEmpty(t, info.Education)
}

func TestExtractEntities_EmptyText(t *testing.T) {
	extractor := parser.NewRegexEntityExtractor()
	info := extractor.ExtractEntities("")

	assert.Equal(t, "", info.Name)
	assert.Equal(t, "", info.Email)
	assert.Equal(t, "", info.Phone)
	assert.Empty(t, info.Education)
	assert.Equal(t, 0.0, info.ExperienceYears)
}
