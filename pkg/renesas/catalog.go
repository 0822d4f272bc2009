package renesas

import (
	"fmt"
	"sort"
)

// UIDLocation tells where the unique ID register of a series lives.
type UIDLocation uint8

const (
	UIDUnknown UIDLocation = iota
	UIDFixed1
	UIDFixed2
	UIDRootTable
)

func (l UIDLocation) String() string {
	switch l {
	case UIDFixed1:
		return "fixed location 1"
	case UIDFixed2:
		return "fixed location 2"
	case UIDRootTable:
		return "flash root table"
	}
	return "unknown"
}

// DataFlash is an auxiliary flash block at a fixed address.
type DataFlash struct {
	Start     uint32
	Length    uint32
	BlockSize uint32
}

// RAMBank is one RAM region of a series.
type RAMBank struct {
	Name   string
	Start  uint32
	Length uint32
}

// SeriesInfo is the static catalog entry of a series.
type SeriesInfo struct {
	Series    Series
	Flash     FlashFamily
	UID       UIDLocation
	DataFlash []DataFlash
	RAM       []RAMBank
	Notes     string
}

// catalog holds every series the driver supports
var catalog = make(map[Series]SeriesInfo)

// register adds a series entry to the catalog
func register(info SeriesInfo) {
	if _, ok := catalog[info.Series]; ok {
		panic(fmt.Sprintf("renesas: series %s registered twice", info.Series))
	}
	catalog[info.Series] = info
}

// Lookup returns the catalog entry of s.
func Lookup(s Series) (SeriesInfo, bool) {
	info, ok := catalog[s]
	return info, ok
}

// Catalog returns all entries ordered by series name.
func Catalog() []SeriesInfo {
	out := make([]SeriesInfo, 0, len(catalog))
	for _, info := range catalog {
		out = append(out, info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Series < out[j].Series })
	return out
}
