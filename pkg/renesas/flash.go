package renesas

import (
	"context"

	"github.com/OpenTraceLab/OpenTraceSWD/pkg/target"
	"github.com/juju/errors"
)

// FlashFamily is the flash controller generation of a series.
type FlashFamily uint8

const (
	// FlashNone marks series whose flash is not reachable through this driver.
	FlashNone FlashFamily = iota
	// FlashMF covers the MF3 and MF4 controllers of the RA2 parts and some RA4.
	FlashMF
	// FlashRV40 is the controller of the newer RA4 and all RA6 parts.
	FlashRV40
)

func (f FlashFamily) String() string {
	switch f {
	case FlashMF:
		return "MF3/MF4"
	case FlashRV40:
		return "RV40"
	}
	return "none"
}

// Ops returns the erase/write handler pair of the family, nil for FlashNone.
func (f FlashFamily) Ops() target.FlashOps {
	switch f {
	case FlashMF:
		return mfFlash{}
	case FlashRV40:
		return rv40Flash{}
	}
	return nil
}

const flashErased = 0xFF

type mfFlash struct{}

func (mfFlash) Erase(_ context.Context, _ *target.Region, addr uint32, length int) error {
	return errors.NotImplementedf("MF3/MF4 erase of %d bytes at 0x%08X", length, addr)
}

func (mfFlash) Write(_ context.Context, _ *target.Region, dest uint32, src []byte) error {
	return errors.NotImplementedf("MF3/MF4 write of %d bytes at 0x%08X", len(src), dest)
}

type rv40Flash struct{}

func (rv40Flash) Erase(_ context.Context, _ *target.Region, addr uint32, length int) error {
	return errors.NotImplementedf("RV40 erase of %d bytes at 0x%08X", length, addr)
}

func (rv40Flash) Write(_ context.Context, _ *target.Region, dest uint32, src []byte) error {
	return errors.NotImplementedf("RV40 write of %d bytes at 0x%08X", len(src), dest)
}
