package dap

import (
	"context"
	"fmt"

	"github.com/OpenTraceLab/OpenTraceSWD/pkg/partid"
	"github.com/golang/glog"
	"github.com/juju/errors"
)

// MemAPReg is a MEM-AP register address.
type MemAPReg uint8

const (
	CSW  MemAPReg = 0x00
	TAR  MemAPReg = 0x04
	DRW  MemAPReg = 0x0C
	BASE MemAPReg = 0xF8
	IDR  MemAPReg = 0xFC
)

func (r MemAPReg) String() string {
	switch r {
	case CSW:
		return "CSW"
	case TAR:
		return "TAR"
	case DRW:
		return "DRW"
	case BASE:
		return "BASE"
	case IDR:
		return "IDR"
	}
	return fmt.Sprintf("0x%02x", uint8(r))
}

// CSW fields
const (
	cswSize8   = 0x0
	cswSize32  = 0x2
	cswSizeMsk = 0x7
	// DbgSwEnable, privileged data access, no address increment
	cswBase = 0xA3000000
)

const (
	baseEntryPresent = 1 << 0
	baseFormatADIv5  = 1 << 1
	baseLegacyAbsent = 0xFFFFFFFF
	baseAddrMask     = 0xFFFFF000
)

// MemAP accesses target memory through one MEM-AP. It implements
// target.Memory.
type MemAP struct {
	c     *Client
	apSel uint8

	csw      uint32
	cswValid bool
}

// NewMemAP returns a MEM-AP accessor for access port apSel.
func NewMemAP(c *Client, apSel uint8) *MemAP {
	return &MemAP{c: c, apSel: apSel}
}

// ReadReg reads a MEM-AP register.
func (m *MemAP) ReadReg(ctx context.Context, reg MemAPReg) (uint32, error) {
	v, err := m.c.ReadAP(ctx, m.apSel, uint8(reg))
	glog.V(4).Infof("%s == 0x%08x", reg, v)
	return v, err
}

// WriteReg writes a MEM-AP register.
func (m *MemAP) WriteReg(ctx context.Context, reg MemAPReg, value uint32) error {
	glog.V(4).Infof("%s = 0x%08x", reg, value)
	return m.c.WriteAP(ctx, m.apSel, uint8(reg), value)
}

func (m *MemAP) setSize(ctx context.Context, size uint32) error {
	csw := cswBase | size&cswSizeMsk
	if m.cswValid && m.csw == csw {
		return nil
	}
	if err := m.WriteReg(ctx, CSW, csw); err != nil {
		m.cswValid = false
		return errors.Trace(err)
	}
	m.csw, m.cswValid = csw, true
	return nil
}

// Read32 reads one aligned word.
func (m *MemAP) Read32(ctx context.Context, addr uint32) (uint32, error) {
	if addr%4 != 0 {
		return 0, errors.Errorf("addr must be word-aligned, got 0x%x", addr)
	}
	if err := m.setSize(ctx, cswSize32); err != nil {
		return 0, errors.Trace(err)
	}
	if err := m.WriteReg(ctx, TAR, addr); err != nil {
		return 0, errors.Trace(err)
	}
	v, err := m.ReadReg(ctx, DRW)
	if err != nil {
		return 0, errors.Annotatef(err, "read 0x%08x", addr)
	}
	glog.V(4).Infof("Read32(0x%08x) == 0x%08x", addr, v)
	return v, nil
}

// Write8 writes one byte. The value travels on the byte lane selected by
// the low address bits.
func (m *MemAP) Write8(ctx context.Context, addr uint32, value uint8) error {
	glog.V(4).Infof("Write8(0x%08x, 0x%02x)", addr, value)
	if err := m.setSize(ctx, cswSize8); err != nil {
		return errors.Trace(err)
	}
	if err := m.WriteReg(ctx, TAR, addr); err != nil {
		return errors.Trace(err)
	}
	lane := uint32(value) << (8 * (addr & 3))
	return errors.Annotatef(m.WriteReg(ctx, DRW, lane), "write 0x%08x", addr)
}

// ROMTable returns the base address of the ROM table described by BASE.
func (m *MemAP) ROMTable(ctx context.Context) (uint32, error) {
	base, err := m.ReadReg(ctx, BASE)
	if err != nil {
		return 0, errors.Trace(err)
	}
	if base == baseLegacyAbsent || base&baseFormatADIv5 != 0 && base&baseEntryPresent == 0 {
		return 0, errors.NotFoundf("ROM table (BASE 0x%08x)", base)
	}
	return base & baseAddrMask, nil
}

// ReadPartID reads the peripheral ID of the ROM table, which identifies the
// device designer and part.
func (m *MemAP) ReadPartID(ctx context.Context) (partid.PartID, error) {
	rom, err := m.ROMTable(ctx)
	if err != nil {
		return partid.PartID{}, errors.Trace(err)
	}
	var pidr [5]uint32
	for i := 0; i < 4; i++ {
		if pidr[i], err = m.Read32(ctx, rom+partid.PIDR0Offset+uint32(i)*4); err != nil {
			return partid.PartID{}, errors.Annotatef(err, "PIDR%d", i)
		}
	}
	if pidr[4], err = m.Read32(ctx, rom+partid.PIDR4Offset); err != nil {
		return partid.PartID{}, errors.Annotate(err, "PIDR4")
	}
	id := partid.FromPIDR(pidr[0], pidr[1], pidr[2], pidr[3], pidr[4])
	glog.V(1).Infof("ROM table at 0x%08x: %s", rom, id)
	return id, nil
}
