package bc

import (
	"encoding/binary"
)

// CompressBC3Into encodes the surface as BC3 (DXT5) blocks into dst, which
// must hold at least CompressedSize(s.Width, s.Height) bytes. Each block is
// an 8-byte interpolated alpha block followed by an 8-byte BC1 colour block.
func CompressBC3Into(s Surface, dst []byte) error {
	return compressBlocksInto(s, dst, encodeBC3Block)
}

func encodeBC3Block(blk *block, out []byte) {
	encodeBC3Alpha(blk, out[:8])
	px := toVec4(blk)
	encodeBC1Color(&px, out[8:16])
}

// encodeBC3Alpha writes the alpha endpoints and 3-bit indices. The endpoints
// are ordered a0 > a1 so the block uses the eight-value palette.
func encodeBC3Alpha(blk *block, out []byte) {
	a0, a1 := uint8(0), uint8(255)
	for i := range blk {
		a := blk[i][3]
		if a > a0 {
			a0 = a
		}
		if a < a1 {
			a1 = a
		}
	}
	out[0], out[1] = a0, a1
	for i := 2; i < 8; i++ {
		out[i] = 0
	}
	if a0 == a1 {
		return
	}

	var palette [8]int
	palette[0], palette[1] = int(a0), int(a1)
	for i := 2; i < 8; i++ {
		palette[i] = ((8-i)*int(a0) + (i-1)*int(a1) + 3) / 7
	}

	var bits uint64
	for i := range blk {
		a := int(blk[i][3])
		bestIdx, bestErr := 0, 256
		for j, p := range palette {
			d := a - p
			if d < 0 {
				d = -d
			}
			if d < bestErr {
				bestIdx, bestErr = j, d
			}
		}
		bits |= uint64(bestIdx) << (3 * uint(i))
	}
	for i := 0; i < 6; i++ {
		out[2+i] = byte(bits >> (8 * uint(i)))
	}
}

// bc1Weights maps a colour index to its weight toward the second endpoint.
var bc1Weights = [4]float32{0, 1, 1.0 / 3, 2.0 / 3}

type bc1Fit struct {
	c0, c1 uint16
	idx    [16]uint8
	err    int
}

func encodeBC1Color(px *[16]vec4, out []byte) {
	mean, axis := principalAxis(px, 3)
	lo, hi := axisEndpoints(px, mean, axis, 3)
	best := fitBC1(px, hi, lo)

	if best.err > 0 {
		var weights [16]float32
		for i, idx := range best.idx {
			weights[i] = bc1Weights[idx]
		}
		if a, b, ok := refitEndpoints(px, &weights, 3); ok {
			if cand := fitBC1(px, a, b); cand.err < best.err {
				best = cand
			}
		}
	}

	binary.LittleEndian.PutUint16(out[0:], best.c0)
	binary.LittleEndian.PutUint16(out[2:], best.c1)
	var packed uint32
	for i, idx := range best.idx {
		packed |= uint32(idx) << (2 * uint(i))
	}
	binary.LittleEndian.PutUint32(out[4:], packed)
}

// fitBC1 quantises the endpoints to RGB565, orders them so c0 >= c1 and
// assigns every pixel to the nearest of the four palette colours.
func fitBC1(px *[16]vec4, a, b vec4) bc1Fit {
	f := bc1Fit{c0: to565(a), c1: to565(b)}
	if f.c0 < f.c1 {
		f.c0, f.c1 = f.c1, f.c0
	}

	palette := bc1Palette(f.c0, f.c1)
	for i := range px {
		bestIdx, bestErr := 0, -1
		for j := range palette {
			e := 0
			for c := 0; c < 3; c++ {
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
	return f
}

// bc1Palette expands the endpoints into the four-colour palette.
func bc1Palette(c0, c1 uint16) (p [4][3]int) {
	p[0] = from565(c0)
	p[1] = from565(c1)
	for c := 0; c < 3; c++ {
		p[2][c] = (2*p[0][c] + p[1][c] + 1) / 3
		p[3][c] = (p[0][c] + 2*p[1][c] + 1) / 3
	}
	return p
}

func to565(v vec4) uint16 {
	r := clampInt(roundToInt(v[0]*31/255), 0, 31)
	g := clampInt(roundToInt(v[1]*63/255), 0, 63)
	b := clampInt(roundToInt(v[2]*31/255), 0, 31)
	return uint16(r<<11 | g<<5 | b)
}

func from565(v uint16) [3]int {
	r := int(v>>11) & 0x1f
	g := int(v>>5) & 0x3f
	b := int(v) & 0x1f
	return [3]int{r<<3 | r>>2, g<<2 | g>>4, b<<3 | b>>2}
}
