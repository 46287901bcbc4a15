package bc

// BC7 blocks are encoded in mode 6: a single subset with 7-bit RGBA endpoints,
// one p-bit per endpoint and 4-bit indices. It is the fastest mode that
// carries alpha and is what the ultra-fast presets select.

// bc7Weights are the 4-bit interpolation weights out of 64.
var bc7Weights = [16]int{0, 4, 9, 13, 17, 21, 26, 30, 34, 38, 43, 47, 51, 55, 60, 64}

const bc7Mode6 = 1 << 6

// Settings controls the BC7 encoder's quality/speed tradeoff.
type Settings struct {
	// RefineIterations is the number of least-squares endpoint refits per
	// block after the initial principal-axis fit. Zero disables refinement.
	RefineIterations int
	// Alpha enables fitting of the alpha channel. When false every pixel is
	// encoded as fully opaque.
	Alpha bool
}

// AlphaUltraFastSettings is the fastest preset that preserves alpha.
func AlphaUltraFastSettings() Settings {
	return Settings{RefineIterations: 1, Alpha: true}
}

// OpaqueUltraFastSettings is the fastest preset; alpha is discarded.
func OpaqueUltraFastSettings() Settings {
	return Settings{RefineIterations: 1, Alpha: false}
}

// AlphaBasicSettings spends more refits per block than the ultra-fast preset.
func AlphaBasicSettings() Settings {
	return Settings{RefineIterations: 4, Alpha: true}
}

// CompressBC7Into encodes the surface as BC7 blocks into dst, which must hold
// at least CompressedSize(s.Width, s.Height) bytes.
func CompressBC7Into(settings Settings, s Surface, dst []byte) error {
	return compressBlocksInto(s, dst, func(blk *block, out []byte) {
		encodeBC7Block(blk, settings, out)
	})
}

// mode6Endpoint is a quantised endpoint: 7 bits per channel plus a p-bit.
type mode6Endpoint struct {
	c [4]uint8
	p uint8
}

func (e mode6Endpoint) unpack() (r [4]int) {
	for c := range r {
		r[c] = int(e.c[c])<<1 | int(e.p)
	}
	return r
}

// quantizeMode6 picks the p-bit and 7-bit channels closest to v.
func quantizeMode6(v vec4) mode6Endpoint {
	var best mode6Endpoint
	bestErr := float32(-1)
	for p := 0; p < 2; p++ {
		var cand mode6Endpoint
		cand.p = uint8(p)
		var err float32
		for c := 0; c < 4; c++ {
			q := clampInt(roundToInt((v[c]-float32(p))/2), 0, 127)
			cand.c[c] = uint8(q)
			d := float32(q<<1|p) - v[c]
			err += d * d
		}
		if bestErr < 0 || err < bestErr {
			best, bestErr = cand, err
		}
	}
	return best
}

type mode6Fit struct {
	e0, e1 mode6Endpoint
	idx    [16]uint8
	err    int
}

// assign selects the best palette entry for each pixel.
func (f *mode6Fit) assign(px *[16]vec4) {
	a, b := f.e0.unpack(), f.e1.unpack()
	var palette [16][4]int
	for i, w := range bc7Weights {
		for c := 0; c < 4; c++ {
			palette[i][c] = ((64-w)*a[c] + w*b[c] + 32) >> 6
		}
	}

	f.err = 0
	for i := range px {
		bestIdx, bestErr := 0, -1
		for j := range palette {
			e := 0
			for c := 0; c < 4; c++ {
				d := palette[j][c] - int(px[i][c])
				e += d * d
			}
			if bestErr < 0 || e < bestErr {
				bestIdx, bestErr = j, e
			}
		}
		f.idx[i] = uint8(bestIdx)
		f.err += bestErr
	}
}

func fitMode6(px *[16]vec4, lo, hi vec4) mode6Fit {
	f := mode6Fit{e0: quantizeMode6(lo), e1: quantizeMode6(hi)}
	f.assign(px)
	return f
}

func encodeBC7Block(blk *block, settings Settings, out []byte) {
	px := toVec4(blk)
	if !settings.Alpha {
		for i := range px {
			px[i][3] = 255
		}
	}

	mean, axis := principalAxis(&px, 4)
	lo, hi := axisEndpoints(&px, mean, axis, 4)
	best := fitMode6(&px, lo, hi)

	for it := 0; it < settings.RefineIterations && best.err > 0; it++ {
		var weights [16]float32
		for i, idx := range best.idx {
			weights[i] = float32(bc7Weights[idx]) / 64
		}
		a, b, ok := refitEndpoints(&px, &weights, 4)
		if !ok {
			break
		}
		cand := fitMode6(&px, a, b)
		if cand.err >= best.err {
			break
		}
		best = cand
	}

	// The anchor index is stored with an implicit zero MSB.
	if best.idx[0]&0x8 != 0 {
		best.e0, best.e1 = best.e1, best.e0
		for i := range best.idx {
			best.idx[i] = 15 - best.idx[i]
		}
	}

	var w bitWriter
	w.write(bc7Mode6, 7)
	for c := 0; c < 4; c++ {
		w.write(uint32(best.e0.c[c]), 7)
		w.write(uint32(best.e1.c[c]), 7)
	}
	w.write(uint32(best.e0.p), 1)
	w.write(uint32(best.e1.p), 1)
	w.write(uint32(best.idx[0]), 3)
	for _, idx := range best.idx[1:] {
		w.write(uint32(idx), 4)
	}
	copy(out, w.buf[:])
}

// bitWriter packs values LSB-first into a 128-bit block.
type bitWriter struct {
	buf [BlockBytes]byte
	pos uint
}

func (w *bitWriter) write(v uint32, n uint) {
	for i := uint(0); i < n; i++ {
		if v>>i&1 != 0 {
			w.buf[w.pos>>3] |= 1 << (w.pos & 7)
		}
		w.pos++
	}
}
