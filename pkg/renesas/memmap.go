package renesas

import (
	"github.com/OpenTraceLab/OpenTraceSWD/pkg/target"
	"github.com/juju/errors"
)

const codeFlashBlockSize = 8 * kib

// buildMemoryMap adds the regions of series s to mm: data flash, RAM banks and
// finally code flash at address 0 sized by the capacity code. An unknown
// capacity code yields a zero length code flash region rather than an error.
func buildMemoryMap(mm *target.MemoryMap, s Series, memSizeCode byte) error {
	info, ok := Lookup(s)
	if !ok {
		return errors.NotSupportedf("series %s", s)
	}
	ops := info.Flash.Ops()

	if ops != nil {
		for _, df := range info.DataFlash {
			addFlash(mm, ops, df.Start, df.Length, df.BlockSize)
		}
	}
	for _, bank := range info.RAM {
		mm.AddRAM(bank.Start, bank.Length)
	}
	if ops != nil {
		addFlash(mm, ops, 0, FlashSize(memSizeCode), codeFlashBlockSize)
	}
	return nil
}

func addFlash(mm *target.MemoryMap, ops target.FlashOps, start, length, blockSize uint32) {
	mm.AddFlash(target.Region{
		Start:     start,
		Length:    length,
		BlockSize: blockSize,
		Erased:    flashErased,
		Ops:       ops,
	})
}
