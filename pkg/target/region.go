package target

import (
	"context"
	"fmt"
)

// RegionKind distinguishes flash from RAM regions.
type RegionKind uint8

const (
	RegionRAM RegionKind = iota
	RegionFlash
)

func (k RegionKind) String() string {
	switch k {
	case RegionFlash:
		return "flash"
	case RegionRAM:
		return "ram"
	}
	return fmt.Sprintf("RegionKind(%d)", uint8(k))
}

// FlashOps is the erase/write handler pair bound to a flash region.
type FlashOps interface {
	Erase(ctx context.Context, r *Region, addr uint32, length int) error
	Write(ctx context.Context, r *Region, dest uint32, src []byte) error
}

// Region describes one addressable span of the device memory map.
type Region struct {
	Kind      RegionKind
	Start     uint32
	Length    uint32
	BlockSize uint32 // flash only
	Erased    uint8  // flash fill value after erase
	Ops       FlashOps
}

// End returns the first address past the region.
func (r Region) End() uint64 {
	return uint64(r.Start) + uint64(r.Length)
}

// Usable reports whether the region spans any memory at all. Flash regions
// built from an unknown capacity code have zero length.
func (r Region) Usable() bool {
	return r.Length > 0
}

func (r Region) String() string {
	if r.Kind == RegionFlash {
		return fmt.Sprintf("flash 0x%08X-0x%08X (%d bytes, %d byte blocks)",
			r.Start, r.End(), r.Length, r.BlockSize)
	}
	return fmt.Sprintf("ram   0x%08X-0x%08X (%d bytes)", r.Start, r.End(), r.Length)
}

// MemoryMap is an ordered collection of regions. Order reflects the order in
// which regions were added, not their addresses.
type MemoryMap struct {
	regions []Region
}

// AddFlash appends a flash region.
func (m *MemoryMap) AddFlash(r Region) {
	r.Kind = RegionFlash
	m.regions = append(m.regions, r)
}

// AddRAM appends a RAM region.
func (m *MemoryMap) AddRAM(start, length uint32) {
	m.regions = append(m.regions, Region{Kind: RegionRAM, Start: start, Length: length})
}

// Regions returns a copy of all regions in discovery order.
func (m *MemoryMap) Regions() []Region {
	if m == nil {
		return nil
	}
	return append([]Region(nil), m.regions...)
}

// Flash returns the flash regions in discovery order.
func (m *MemoryMap) Flash() []Region {
	return m.filter(RegionFlash)
}

// RAM returns the RAM regions in discovery order.
func (m *MemoryMap) RAM() []Region {
	return m.filter(RegionRAM)
}

// Len returns the number of regions.
func (m *MemoryMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.regions)
}

func (m *MemoryMap) filter(kind RegionKind) []Region {
	if m == nil {
		return nil
	}
	var out []Region
	for _, r := range m.regions {
		if r.Kind == kind {
			out = append(out, r)
		}
	}
	return out
}
