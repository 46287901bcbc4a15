package bc

import (
	"encoding/binary"
	"fmt"
)

// Reference decoders used to check round trips. They handle the block layouts
// produced by this package: BC3 and BC7 mode 6.

func decodeBC3(width, height int, data []byte) []byte {
	out := make([]byte, width*height*4)
	blocksWide := DivideUp(width, BlockDim)
	for b := 0; b*BlockBytes < len(data); b++ {
		blk := data[b*BlockBytes : (b+1)*BlockBytes]
		bx, by := b%blocksWide, b/blocksWide

		a0, a1 := int(blk[0]), int(blk[1])
		var alpha [8]int
		alpha[0], alpha[1] = a0, a1
		if a0 > a1 {
			for i := 2; i < 8; i++ {
				alpha[i] = ((8-i)*a0 + (i-1)*a1 + 3) / 7
			}
		} else {
			for i := 2; i < 6; i++ {
				alpha[i] = ((6-i)*a0 + (i-1)*a1 + 2) / 5
			}
			alpha[6], alpha[7] = 0, 255
		}
		var alphaBits uint64
		for i := 0; i < 6; i++ {
			alphaBits |= uint64(blk[2+i]) << (8 * uint(i))
		}

		colors := bc1Palette(binary.LittleEndian.Uint16(blk[8:]), binary.LittleEndian.Uint16(blk[10:]))
		indices := binary.LittleEndian.Uint32(blk[12:])

		for p := 0; p < 16; p++ {
			x, y := bx*4+p%4, by*4+p/4
			if x >= width || y >= height {
				continue
			}
			c := colors[(indices>>(2*uint(p)))&0x3]
			o := (y*width + x) * 4
			out[o+0] = uint8(c[0])
			out[o+1] = uint8(c[1])
			out[o+2] = uint8(c[2])
			out[o+3] = uint8(alpha[(alphaBits>>(3*uint(p)))&0x7])
		}
	}
	return out
}

type bitReader struct {
	buf []byte
	pos uint
}

func (r *bitReader) read(n uint) (v uint32) {
	for i := uint(0); i < n; i++ {
		if r.buf[r.pos>>3]>>(r.pos&7)&1 != 0 {
			v |= 1 << i
		}
		r.pos++
	}
	return v
}

func decodeBC7Mode6(width, height int, data []byte) ([]byte, error) {
	out := make([]byte, width*height*4)
	blocksWide := DivideUp(width, BlockDim)
	for b := 0; b*BlockBytes < len(data); b++ {
		r := &bitReader{buf: data[b*BlockBytes : (b+1)*BlockBytes]}
		if mode := r.read(7); mode != bc7Mode6 {
			return nil, fmt.Errorf("block %d: mode bits %#x", b, mode)
		}
		var e0, e1 mode6Endpoint
		for c := 0; c < 4; c++ {
			e0.c[c] = uint8(r.read(7))
			e1.c[c] = uint8(r.read(7))
		}
		e0.p = uint8(r.read(1))
		e1.p = uint8(r.read(1))
		var idx [16]uint32
		idx[0] = r.read(3)
		for i := 1; i < 16; i++ {
			idx[i] = r.read(4)
		}

		a, bb := e0.unpack(), e1.unpack()
		bx, by := b%blocksWide, b/blocksWide
		for p := 0; p < 16; p++ {
			x, y := bx*4+p%4, by*4+p/4
			if x >= width || y >= height {
				continue
			}
			w := bc7Weights[idx[p]]
			o := (y*width + x) * 4
			for c := 0; c < 4; c++ {
				out[o+c] = uint8(((64-w)*a[c] + w*bb[c] + 32) >> 6)
			}
		}
	}
	return out, nil
}
