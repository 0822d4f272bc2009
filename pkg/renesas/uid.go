package renesas

import (
	"context"
	"encoding/hex"

	"github.com/OpenTraceLab/OpenTraceSWD/pkg/target"
	"github.com/juju/errors"
)

var commands = []target.Command{
	{Name: "uid", Help: "Prints unique number", Handler: cmdUID},
	{Name: "info", Help: "Prints the decoded part number", Handler: cmdInfo},
}

// uidAddress returns the unique ID register address of dev, picked by series.
func uidAddress(dev *Device) (uint32, error) {
	info, ok := Lookup(dev.series)
	if !ok {
		return 0, errors.NotSupportedf("unique ID of series %s", dev.series)
	}
	switch info.UID {
	case UIDFixed1:
		return fixed1UID, nil
	case UIDFixed2:
		return fixed2UID, nil
	case UIDRootTable:
		return dev.flashRootTable + rootTableUIDOffset, nil
	}
	return 0, errors.NotSupportedf("unique ID of series %s", dev.series)
}

// mcuVersionAddress returns the MCU version register address of dev.
func mcuVersionAddress(dev *Device) (uint32, error) {
	info, ok := Lookup(dev.series)
	if !ok {
		return 0, errors.NotSupportedf("MCU version of series %s", dev.series)
	}
	switch info.UID {
	case UIDFixed1:
		return fixed1MCUVER, nil
	case UIDFixed2:
		return fixed2MCUVER, nil
	case UIDRootTable:
		return dev.flashRootTable + rootTableMCUOffset, nil
	}
	return 0, errors.NotSupportedf("MCU version of series %s", dev.series)
}

// ReadUID reads the 16 byte unique ID of dev.
func ReadUID(ctx context.Context, mem target.Memory, dev *Device) ([16]byte, error) {
	addr, err := uidAddress(dev)
	if err != nil {
		return [16]byte{}, errors.Trace(err)
	}
	return expandWords(readRegister(ctx, mem, addr)), nil
}

func deviceOf(t *target.Target) (*Device, bool) {
	dev, ok := t.Storage().(*Device)
	return dev, ok && dev != nil
}

func cmdUID(ctx context.Context, t *target.Target, _ []string) bool {
	dev, ok := deviceOf(t)
	if !ok {
		return false
	}
	uid, err := ReadUID(ctx, t.Memory(), dev)
	if err != nil {
		return false
	}
	t.Printf("Unique Number: 0x%s\n", hex.EncodeToString(uid[:]))
	return true
}
