package scoring

import (
	"math"
	"strings"
)

// LexicalSimilarity 计算两段归一化文本的TF-IDF余弦相似度。
// 语料库就是这两篇文档本身：IDF从2篇文档上计算（平滑处理），
// 这会奖励只出现在其中一篇的词项。这是有意的设计性质而非缺陷。
// 词表每次调用重建，调用间相互独立，结果对相同输入确定。
func LexicalSimilarity(docA, docB string) float64 {
	tokensA := strings.Fields(docA)
	tokensB := strings.Fields(docB)
	if len(tokensA) == 0 || len(tokensB) == 0 {
		return 0.0
	}

	tfA := termCounts(tokensA)
	tfB := termCounts(tokensB)

	// 平滑IDF: ln((1+N)/(1+df)) + 1，N=2
	idf := func(term string) float64 {
		df := 0
		if tfA[term] > 0 {
			df++
		}
		if tfB[term] > 0 {
			df++
		}
		return math.Log(3.0/float64(1+df)) + 1.0
	}

	vocab := make(map[string]struct{}, len(tfA)+len(tfB))
	for term := range tfA {
		vocab[term] = struct{}{}
	}
	for term := range tfB {
		vocab[term] = struct{}{}
	}

	var dot, normA, normB float64
	for term := range vocab {
		w := idf(term)
		a := float64(tfA[term]) * w
		b := float64(tfB[term]) * w
		dot += a * b
		normA += a * a
		normB += b * b
	}
	if normA == 0 || normB == 0 {
		return 0.0
	}

	sim := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	return clamp01(sim)
}

// termCounts 统计词频
func termCounts(tokens []string) map[string]int {
	counts := make(map[string]int, len(tokens))
	for _, token := range tokens {
		counts[token]++
	}
	return counts
}

// clamp01 把浮点误差产生的越界值钳回[0,1]
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
