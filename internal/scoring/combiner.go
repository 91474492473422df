package scoring

import (
	"math"

	"github.com/saniyaacharya04/Resume-Scanner-using-NLP/internal/constants"
)

// Round2 四舍五入到两位小数
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// CombineScores 两段式加权混合：
//
//	structural = round2(0.7*skillRatio + 0.3*lexical)
//	final      = round2(0.7*structural + 0.3*semantic)
//
// 两段各自舍入一次（与参考行为一致，固定输入0.8/0.5/0.6应得到0.68）。
// 纯函数，可对批次内各候选人独立并行调用。
func CombineScores(skillRatio, lexical, semantic float64) (final, structural float64) {
	structural = Round2(constants.SkillRatioWeight*skillRatio + constants.LexicalWeight*lexical)
	final = Round2(constants.StructuralWeight*structural + constants.SemanticWeight*semantic)
	return final, structural
}

// StructuralOnlyScore 嵌入服务不可用时的降级得分：
// 去掉语义项，直接以结构得分作为最终得分。
func StructuralOnlyScore(skillRatio, lexical float64) float64 {
	return Round2(constants.SkillRatioWeight*skillRatio + constants.LexicalWeight*lexical)
}
