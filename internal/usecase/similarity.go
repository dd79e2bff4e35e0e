package usecase

import "math"

// cosineSimilarity computes the cosine of the angle between two equal-length vectors.
// A zero-magnitude vector has similarity 0 to everything, itself included.
func cosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// pairwiseSimilarity returns the n×n cosine similarity matrix of rows
func pairwiseSimilarity(rows [][]float64) [][]float64 {
	n := len(rows)
	sim := make([][]float64, n)
	for i := range sim {
		sim[i] = make([]float64, n)
	}

	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			s := cosineSimilarity(rows[i], rows[j])
			sim[i][j] = s
			sim[j][i] = s
		}
	}
	return sim
}

// rowMeans returns the arithmetic mean of each row of a square matrix
func rowMeans(matrix [][]float64) []float64 {
	means := make([]float64, len(matrix))
	for i, row := range matrix {
		if len(row) == 0 {
			continue
		}
		var sum float64
		for _, v := range row {
			sum += v
		}
		means[i] = sum / float64(len(row))
	}
	return means
}
