package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestCosineSimilarity 验证余弦相似度的基础性质
func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a    []float64
		b    []float64
		want float64
	}{
		{"相同向量", []float64{0.3, 0.4, 0.5}, []float64{0.3, 0.4, 0.5}, 1.0},
		{"同向不同模长", []float64{1, 0}, []float64{5, 0}, 1.0},
		{"正交向量", []float64{1, 0}, []float64{0, 1}, 0},
		{"反向向量", []float64{1, 2}, []float64{-1, -2}, -1.0},
		{"45度夹角", []float64{1, 0}, []float64{1, 1}, 0.7071067811865476},
		{"零向量", []float64{0, 0}, []float64{1, 1}, 0},
		{"维度不一致", []float64{1, 0}, []float64{1, 0, 0}, 0},
		{"空向量", nil, nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, CosineSimilarity(tt.a, tt.b), 1e-9)
		})
	}
}

// TestCosineSimilaritySymmetric 验证参数顺序不影响结果
func TestCosineSimilaritySymmetric(t *testing.T) {
	a := []float64{0.2, 0.8, 0.1}
	b := []float64{0.9, 0.3, 0.4}
	assert.InDelta(t, CosineSimilarity(a, b), CosineSimilarity(b, a), 1e-12)
}
