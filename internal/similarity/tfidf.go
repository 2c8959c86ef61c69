package similarity

import (
	"math"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Tokenize normalises s (NFKC, Unicode case folding) and splits it on any
// rune that is neither a letter nor a digit.
func Tokenize(s string) []string {
	folded := cases.Fold().String(norm.NFKC.String(s))
	return strings.FieldsFunc(folded, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// vector is a sparse L2-normalised TF-IDF vector keyed by vocabulary column.
type vector map[int]float64

// vectorize computes smoothed TF-IDF vectors for docs:
//
//	idf(t) = ln((1 + n) / (1 + df(t))) + 1
//
// with raw term counts as tf, then L2-normalises each vector.
func vectorize(docs []string) []vector {
	vocab := make(map[string]int)
	tokenized := make([][]int, len(docs))
	df := []int{}

	for i, doc := range docs {
		seen := make(map[int]bool)
		for _, tok := range Tokenize(doc) {
			col, ok := vocab[tok]
			if !ok {
				col = len(vocab)
				vocab[tok] = col
				df = append(df, 0)
			}
			tokenized[i] = append(tokenized[i], col)
			if !seen[col] {
				df[col]++
				seen[col] = true
			}
		}
	}

	n := float64(len(docs))
	idf := make([]float64, len(df))
	for col, d := range df {
		idf[col] = math.Log((1+n)/(1+float64(d))) + 1
	}

	vectors := make([]vector, len(docs))
	for i, cols := range tokenized {
		v := make(vector, len(cols))
		for _, col := range cols {
			v[col]++
		}
		var length float64
		for col, tf := range v {
			w := tf * idf[col]
			v[col] = w
			length += w * w
		}
		if length > 0 {
			length = math.Sqrt(length)
			for col := range v {
				v[col] /= length
			}
		}
		vectors[i] = v
	}
	return vectors
}

// Cell is one stored entry of a sparse similarity row.
type Cell struct {
	Col   int
	Score float64
}

// Matrix is a sparse symmetric cosine-similarity matrix. Zero scores are
// not stored.
type Matrix struct {
	rows [][]Cell
}

// Row returns the stored cells of row i ordered by column.
func (m *Matrix) Row(i int) []Cell {
	if m == nil || i < 0 || i >= len(m.rows) {
		return nil
	}
	return m.rows[i]
}

// Len returns the number of rows.
func (m *Matrix) Len() int {
	if m == nil {
		return 0
	}
	return len(m.rows)
}

// NonZero returns the number of stored cells.
func (m *Matrix) NonZero() int {
	n := 0
	for _, r := range m.rows {
		n += len(r)
	}
	return n
}

// buildMatrix computes pairwise cosine similarity of docs. Because vectors
// are unit length the cosine is the dot product, accumulated through an
// inverted index so only pairs sharing a token are visited.
func buildMatrix(docs []string) *Matrix {
	vectors := vectorize(docs)

	postings := make(map[int][]Cell)
	for i, v := range vectors {
		for col, w := range v {
			postings[col] = append(postings[col], Cell{Col: i, Score: w})
		}
	}

	rows := make([][]Cell, len(vectors))
	for i, v := range vectors {
		acc := make(map[int]float64)
		for col, w := range v {
			for _, p := range postings[col] {
				acc[p.Col] += w * p.Score
			}
		}
		row := make([]Cell, 0, len(acc))
		for j, score := range acc {
			if score <= 0 {
				continue
			}
			row = append(row, Cell{Col: j, Score: math.Min(score, 1)})
		}
		sort.Slice(row, func(a, b int) bool { return row[a].Col < row[b].Col })
		rows[i] = row
	}
	return &Matrix{rows: rows}
}
