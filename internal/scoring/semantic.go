package scoring

import "math"

// CosineSimilarity 计算两个嵌入向量的余弦相似度。
// 维度不一致或任一向量为零向量时返回0，不报错。
func CosineSimilarity(a, b []float64) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0.0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0.0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// SemanticSimilarity 计算余弦相似度并在混合前钳制负值。
// 负的语义相似度对简历排序没有意义，按0处理。
func SemanticSimilarity(a, b []float64) float64 {
	sim := CosineSimilarity(a, b)
	if sim < 0 {
		return 0.0
	}
	if sim > 1 {
		return 1.0
	}
	return sim
}
