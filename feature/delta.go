package feature

import "github.com/ieee0824/signhmm/corpus"

// Delta computes first-derivative coefficients with window n.
// d[t] = sum_{k=1}^{n} k*(c[t+k] - c[t-k]) / (2 * sum_{k=1}^{n} k^2), edges clamped.
func Delta(seq corpus.Sequence, n int) corpus.Sequence {
	T := len(seq)
	if T == 0 {
		return nil
	}
	dim := len(seq[0])

	denom := 0.0
	for k := 1; k <= n; k++ {
		denom += float64(k * k)
	}
	denom *= 2.0

	out := make(corpus.Sequence, T)
	buf := make([]float64, T*dim)
	for t := 0; t < T; t++ {
		out[t] = buf[t*dim : (t+1)*dim]
		for d := 0; d < dim; d++ {
			num := 0.0
			for k := 1; k <= n; k++ {
				tp := min(t+k, T-1)
				tn := max(t-k, 0)
				num += float64(k) * (seq[tp][d] - seq[tn][d])
			}
			out[t][d] = num / denom
		}
	}
	return out
}

// AppendDelta appends first-derivative columns to each frame: [T][D] -> [T][2*D].
func AppendDelta(seq corpus.Sequence, n int) corpus.Sequence {
	T := len(seq)
	if T == 0 {
		return nil
	}
	d1 := Delta(seq, n)
	dim := len(seq[0])
	out := make(corpus.Sequence, T)
	for t := 0; t < T; t++ {
		row := make([]float64, 2*dim)
		copy(row[:dim], seq[t])
		copy(row[dim:], d1[t])
		out[t] = row
	}
	return out
}
