package capture

// DecodeBlock converts an interleaved little-endian 16-bit PCM block into
// signed samples. A trailing odd byte is ignored.
func DecodeBlock(block []byte) []int16 {
	out := make([]int16, len(block)/2)
	for i := range out {
		out[i] = int16(block[2*i]) | int16(block[2*i+1])<<8
	}
	return out
}
