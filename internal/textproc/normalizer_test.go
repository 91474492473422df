package textproc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saniyaacharya04/Resume-Scanner-using-NLP/internal/textproc"
)

func newNormalizer(t *testing.T) *textproc.Normalizer {
	t.Helper()
	n, err := textproc.NewNormalizer()
	require.NoError(t, err)
	return n
}

func TestCleanText(t *testing.T) {
	t.Run("转小写并去掉非字母字符", func(t *testing.T) {
		assert.Equal(t, "python  develope", textproc.CleanText("Python 3, develope?!"))
	})

	t.Run("压缩空白", func(t *testing.T) {
		assert.Equal(t, "data engineer", textproc.CleanText("  Data\t\nEngineer  "))
	})

	t.Run("空输入", func(t *testing.T) {
		assert.Equal(t, "", textproc.CleanText(""))
	})
}

func TestNormalizer_Normalize(t *testing.T) {
	n := newNormalizer(t)

	t.Run("去停用词", func(t *testing.T) {
		out := n.Normalize("the quick brown fox is in a box")
		assert.NotContains(t, out, "the")
		assert.NotContains(t, out, " is ")
		assert.Contains(t, out, "quick")
		assert.Contains(t, out, "fox")
	})

	t.Run("词形还原", func(t *testing.T) {
		out := n.Normalize("cats dogs databases")
		assert.Contains(t, out, "cat")
		assert.Contains(t, out, "dog")
		assert.NotContains(t, out, "cats")
	})

	t.Run("纯标点和数字归一化为空", func(t *testing.T) {
		assert.Equal(t, "", n.Normalize("123 456 ?!... 789"))
	})

	t.Run("空输入", func(t *testing.T) {
		assert.Equal(t, "", n.Normalize(""))
	})

	t.Run("幂等性", func(t *testing.T) {
		once := n.Normalize("Senior Python developers building data pipelines")
		twice := n.Normalize(once)
		assert.Equal(t, once, twice)
	})
}

func TestIsStopword(t *testing.T) {
	assert.True(t, textproc.IsStopword("the"))
	assert.True(t, textproc.IsStopword("is"))
	assert.False(t, textproc.IsStopword("python"))
	assert.False(t, textproc.IsStopword(""))
}
