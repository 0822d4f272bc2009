package target

import "context"

// Memory is the raw access capability a debug transport provides for a
// connected device. Accesses are blocking round-trips; a failed access may
// still return a value (typically zero) alongside the error.
type Memory interface {
	// Read32 reads one aligned 32-bit word.
	Read32(ctx context.Context, addr uint32) (uint32, error)
	// Write8 writes a single byte.
	Write8(ctx context.Context, addr uint32, value uint8) error
}

// ReadWords reads n consecutive words starting at addr, one access at a time.
// Failed reads yield zero for that word; the first error is returned after all
// reads have been issued so callers can choose to ignore it.
func ReadWords(ctx context.Context, mem Memory, addr uint32, n int) ([]uint32, error) {
	words := make([]uint32, n)
	var firstErr error
	for i := range words {
		v, err := mem.Read32(ctx, addr+uint32(i)*4)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			v = 0
		}
		words[i] = v
	}
	return words, firstErr
}
