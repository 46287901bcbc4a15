package texture

// Payload is the result of a conversion: the dimensions actually produced,
// the raw pixel or block data, and the format describing it.
type Payload struct {
	Width  uint32
	Height uint32
	Data   []byte
	Format CompressionFormat
}

// PixelFormat returns the container pixel format of the payload.
func (p *Payload) PixelFormat() PixelFormat {
	return ContainerFormatFor(p.Format)
}

// BlockCount returns the number of 4x4 blocks in a block-compressed payload
// and zero for raw payloads.
func (p *Payload) BlockCount() int {
	if !p.Format.IsBlockCompressed() {
		return 0
	}
	return len(p.Data) / p.PixelFormat().BlockSize()
}
