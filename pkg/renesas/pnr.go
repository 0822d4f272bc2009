package renesas

import (
	"context"
	"fmt"
	"strings"

	"github.com/OpenTraceLab/OpenTraceSWD/pkg/target"
	"github.com/golang/glog"
)

const (
	pnrLen          = 16
	pnrWords        = pnrLen / 4
	pnrFamilyIndex  = 3
	pnrMemSizeIndex = 8

	// Characters meaningful in a reversed register; the rest is padding.
	pnrReversedChars = 13
)

// PNR is the content of a part numbering register.
type PNR [pnrLen]byte

// Valid reports whether the register carries the "R7" signature.
func (p PNR) Valid() bool {
	return p[0] == 'R' && p[1] == '7'
}

// MemSizeCode returns the code flash capacity character.
func (p PNR) MemSizeCode() byte {
	return p[pnrMemSizeIndex]
}

// String returns the part number without its trailing padding.
func (p PNR) String() string {
	return strings.TrimRight(string(p[:]), " \x00")
}

// Hex returns the raw register bytes for diagnostics.
func (p PNR) Hex() string {
	return fmt.Sprintf("% X", p[:])
}

// expandWords lays four words out as bytes, least significant byte first.
func expandWords(words []uint32) [pnrLen]byte {
	var out [pnrLen]byte
	for i := range out {
		out[i] = byte(words[i/4] >> (uint(i%4) * 8))
	}
	return out
}

func decodeForward(words []uint32) PNR {
	return PNR(expandWords(words))
}

// decodeReversed undoes the storage order used at the first fixed location:
// the 13 characters are stored last to first in the low 13 bytes. The top
// three bytes hold padding and are forced to spaces.
func decodeReversed(words []uint32) PNR {
	raw := expandWords(words)
	var p PNR
	for i := 0; i < pnrReversedChars; i++ {
		p[i] = raw[pnrReversedChars-1-i]
	}
	for i := pnrReversedChars; i < pnrLen; i++ {
		p[i] = ' '
	}
	return p
}

// readRegister reads the four words of a 16 byte register. Failed reads are
// not fatal; the affected words read as zero.
func readRegister(ctx context.Context, mem target.Memory, base uint32) []uint32 {
	words, err := target.ReadWords(ctx, mem, base, pnrWords)
	if err != nil {
		glog.V(2).Infof("read of 0x%08X failed: %v", base, err)
	}
	return words
}

// readPNR reads and decodes the register at base. The reversed layout is
// used for the first fixed location only.
func readPNR(ctx context.Context, mem target.Memory, base uint32) (PNR, bool) {
	words := readRegister(ctx, mem, base)
	var p PNR
	if base == fixed1PNR {
		p = decodeReversed(words)
	} else {
		p = decodeForward(words)
	}
	return p, p.Valid()
}
