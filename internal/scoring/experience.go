package scoring

import (
	"github.com/saniyaacharya04/Resume-Scanner-using-NLP/internal/constants"
	"github.com/saniyaacharya04/Resume-Scanner-using-NLP/internal/types"
)

// ClassifyExperience 将工作年限映射到经验等级。
// 边界值归属：3.0为中级，7.0为中级，7.01为高级。
func ClassifyExperience(years float64) types.ExperienceLevel {
	switch {
	case years < constants.JuniorMaxYears:
		return types.LevelJunior
	case years <= constants.SeniorMinYears:
		return types.LevelMid
	default:
		return types.LevelSenior
	}
}
