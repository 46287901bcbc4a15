package bc

import (
	"github.com/chewxy/math32"
)

// vec4 is an RGBA colour in float32 space, 0..255 per channel.
type vec4 [4]float32

// powerIterations bounds the principal-axis search.
const powerIterations = 8

func toVec4(blk *block) (px [16]vec4) {
	for i := range blk {
		for c := 0; c < 4; c++ {
			px[i][c] = float32(blk[i][c])
		}
	}
	return px
}

func (v vec4) sub(o vec4) (r vec4) {
	for c := range v {
		r[c] = v[c] - o[c]
	}
	return r
}

func (v vec4) dot(o vec4, channels int) (d float32) {
	for c := 0; c < channels; c++ {
		d += v[c] * o[c]
	}
	return d
}

func (v vec4) clamp() vec4 {
	for c := range v {
		v[c] = math32.Max(0, math32.Min(255, v[c]))
	}
	return v
}

// principalAxis returns the mean of the block and the unit direction of
// greatest variance over the first channels components. The axis is zero for
// a block of identical pixels.
func principalAxis(px *[16]vec4, channels int) (mean, axis vec4) {
	for i := range px {
		for c := 0; c < channels; c++ {
			mean[c] += px[i][c]
		}
	}
	for c := 0; c < channels; c++ {
		mean[c] /= 16
	}

	var cov [4][4]float32
	for i := range px {
		d := px[i].sub(mean)
		for r := 0; r < channels; r++ {
			for c := r; c < channels; c++ {
				cov[r][c] += d[r] * d[c]
			}
		}
	}
	for r := 0; r < channels; r++ {
		for c := 0; c < r; c++ {
			cov[r][c] = cov[c][r]
		}
	}

	// Seed with the covariance row of the channel with the largest variance;
	// a uniform seed can be orthogonal to the dominant axis.
	seed := 0
	for c := 1; c < channels; c++ {
		if cov[c][c] > cov[seed][seed] {
			seed = c
		}
	}
	for c := 0; c < channels; c++ {
		axis[c] = cov[seed][c]
	}
	for it := 0; it < powerIterations; it++ {
		var next vec4
		for r := 0; r < channels; r++ {
			for c := 0; c < channels; c++ {
				next[r] += cov[r][c] * axis[c]
			}
		}
		var peak float32
		for c := 0; c < channels; c++ {
			peak = math32.Max(peak, math32.Abs(next[c]))
		}
		if peak < 1e-6 {
			return mean, vec4{}
		}
		for c := 0; c < channels; c++ {
			axis[c] = next[c] / peak
		}
	}

	length := math32.Sqrt(axis.dot(axis, channels))
	if length < 1e-6 {
		return mean, vec4{}
	}
	for c := 0; c < channels; c++ {
		axis[c] /= length
	}
	return mean, axis
}

// axisEndpoints projects every pixel onto axis and returns the colours at the
// extreme projections, clamped to the representable range. Channels past
// channels are copied from the mean.
func axisEndpoints(px *[16]vec4, mean, axis vec4, channels int) (lo, hi vec4) {
	tMin, tMax := math32.Inf(1), math32.Inf(-1)
	for i := range px {
		t := px[i].sub(mean).dot(axis, channels)
		tMin = math32.Min(tMin, t)
		tMax = math32.Max(tMax, t)
	}
	lo, hi = mean, mean
	for c := 0; c < channels; c++ {
		lo[c] = mean[c] + axis[c]*tMin
		hi[c] = mean[c] + axis[c]*tMax
	}
	return lo.clamp(), hi.clamp()
}

// refitEndpoints solves the least-squares endpoints a, b minimising
// sum |(1-w_i)*a + w_i*b - p_i|^2 for fixed per-pixel weights. ok is false
// when the weights are degenerate (all equal).
func refitEndpoints(px *[16]vec4, weights *[16]float32, channels int) (a, b vec4, ok bool) {
	var aa, bb, ab float32
	var ap, bp vec4
	for i := range px {
		w := weights[i]
		iw := 1 - w
		aa += iw * iw
		bb += w * w
		ab += iw * w
		for c := 0; c < channels; c++ {
			ap[c] += iw * px[i][c]
			bp[c] += w * px[i][c]
		}
	}
	det := aa*bb - ab*ab
	if math32.Abs(det) < 1e-6 {
		return a, b, false
	}
	for c := 0; c < channels; c++ {
		a[c] = (ap[c]*bb - bp[c]*ab) / det
		b[c] = (bp[c]*aa - ap[c]*ab) / det
	}
	return a.clamp(), b.clamp(), true
}

func roundToInt(v float32) int {
	return int(math32.Floor(v + 0.5))
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
