package binary

// SyncsafeMax is the largest value a 4-byte syncsafe integer can carry
// (28 significant bits, 7 per byte).
const SyncsafeMax = 1<<28 - 1

// DecodeSyncsafe reconstructs a 28-bit integer from 4 syncsafe bytes.
// Only the low 7 bits of each byte contribute; high bits are masked.
func DecodeSyncsafe(b []byte) uint32 {
	if len(b) < 4 {
		return 0
	}
	return uint32(b[0]&0x7F)<<21 |
		uint32(b[1]&0x7F)<<14 |
		uint32(b[2]&0x7F)<<7 |
		uint32(b[3]&0x7F)
}

// PutSyncsafe encodes v into 4 syncsafe bytes. Values above SyncsafeMax
// are truncated to 28 bits.
func PutSyncsafe(b []byte, v uint32) {
	b[0] = byte(v >> 21 & 0x7F)
	b[1] = byte(v >> 14 & 0x7F)
	b[2] = byte(v >> 7 & 0x7F)
	b[3] = byte(v & 0x7F)
}
