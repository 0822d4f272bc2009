package renesas

const kib = 1024

// Code flash capacity by part number character.
var flashSizes = map[byte]uint32{
	'3': 16 * kib,
	'5': 32 * kib,
	'7': 64 * kib,
	'9': 128 * kib,
	'B': 256 * kib,
	'C': 384 * kib,
	'D': 512 * kib,
	'E': 768 * kib,
	'F': 1024 * kib,
	'G': 1536 * kib,
	'H': 2048 * kib,
}

// FlashSize returns the code flash size for a capacity code, or 0 for a code
// that is not known.
func FlashSize(code byte) uint32 {
	return flashSizes[code]
}
