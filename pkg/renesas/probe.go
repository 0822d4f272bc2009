package renesas

import (
	"context"

	"github.com/OpenTraceLab/OpenTraceSWD/pkg/partid"
	"github.com/OpenTraceLab/OpenTraceSWD/pkg/target"
	"github.com/golang/glog"
	"github.com/juju/errors"
)

// Part IDs reported by the debug port.
const (
	PartIDRA6M2 uint16 = 0x0150
	PartIDRA4M3 uint16 = 0x0310
)

// Register addresses.
const (
	fixed1UID    = 0x01001C00
	fixed1PNR    = 0x01001C10
	fixed1MCUVER = 0x01001C20

	fixed2UID    = 0x01008190
	fixed2PNR    = 0x010080F0
	fixed2MCUVER = 0x010081B0

	// fmifrt holds the Flash Root Table base address.
	fmifrt             = 0x407FB19C
	rootTableUIDOffset = 0x14
	rootTablePNROffset = 0x24
	rootTableMCUOffset = 0x44

	syocdcr      = 0x4001E40E // System Control OCD Control
	syocdcrDBGEN = 1 << 7
)

// Driver registers the Renesas RA probe for sessions reporting the Renesas
// designer code.
var Driver = target.Driver{
	Name:     "Renesas RA",
	Designer: partid.DesignerRenesas,
	Probe:    Probe,
}

// location is one place a PNR may live. find runs to completion on its own
// and shares nothing with other locations.
type location struct {
	name string
	find func(ctx context.Context, mem target.Memory) (pnr PNR, rootTable uint32, ok bool)
}

var (
	fixed2Location = location{
		name: "fixed location 2",
		find: func(ctx context.Context, mem target.Memory) (PNR, uint32, bool) {
			p, ok := readPNR(ctx, mem, fixed2PNR)
			return p, 0, ok
		},
	}

	// Parts expected here (RA2L1, RA2E1, RA2E2) have no known part ID yet, so
	// only the unrecognised part ID search reaches this location.
	fixed1Location = location{
		name: "fixed location 1",
		find: func(ctx context.Context, mem target.Memory) (PNR, uint32, bool) {
			p, ok := readPNR(ctx, mem, fixed1PNR)
			return p, 0, ok
		},
	}

	// The root table address is not sanity checked; a bogus value simply
	// fails the signature check of the PNR read through it.
	rootTableLocation = location{
		name: "flash root table",
		find: func(ctx context.Context, mem target.Memory) (PNR, uint32, bool) {
			frt, err := mem.Read32(ctx, fmifrt)
			if err != nil {
				glog.V(2).Infof("FMIFRT read failed: %v", err)
				frt = 0
			}
			p, ok := readPNR(ctx, mem, frt+rootTablePNROffset)
			return p, frt, ok
		},
	}
)

// locationsFor picks the PNR locations to try for a part ID. The second
// result is true when the part ID is not recognised and every location is
// searched; fixed location 2 goes first since it is the most common one and
// the least likely to cause illegal accesses.
func locationsFor(partID uint16) ([]location, bool) {
	switch partID {
	case PartIDRA4M3:
		// also RA4E1, RA6M4, RA6M5, RA6E1, RA6T2 (part IDs wanted)
		return []location{fixed2Location}, false
	case PartIDRA6M2:
		// also RA6M1, RA6M3, RA6T1 (part IDs wanted)
		return []location{rootTableLocation}, false
	}
	return []location{fixed2Location, fixed1Location, rootTableLocation}, true
}

// Probe identifies a Renesas RA device and attaches its record, memory map
// and commands to t. It reports false when the device is not an RA part or
// its series is not supported; neither is fatal to the session.
//
// For unrecognised part IDs the search reads addresses that may not hold
// anything on the connected part. That has proven harmless in practice and
// such reads count as plain misses whatever the transport returns.
func Probe(ctx context.Context, t *target.Target) bool {
	dev, err := resolve(ctx, t)
	if err != nil {
		glog.V(2).Infof("renesas: %v", err)
		return false
	}

	mm := &target.MemoryMap{}
	if err := buildMemoryMap(mm, dev.series, dev.pnr.MemSizeCode()); err != nil {
		glog.V(2).Infof("renesas: %v", err)
		return false
	}
	if err := t.Attach(dev, mm, commands); err != nil {
		glog.Errorf("renesas: %v", err)
		return false
	}
	return true
}

func resolve(ctx context.Context, t *target.Target) (*Device, error) {
	// A read back does not show the change on every family, so the write is
	// not checked. See DBGEN in the RA6M4 manual, section 2.13.1.
	if err := t.Write8(ctx, syocdcr, syocdcrDBGEN); err != nil {
		glog.V(2).Infof("renesas: debug enable write failed: %v", err)
	}

	locations, search := locationsFor(t.PartID)
	for i, loc := range locations {
		pnr, rootTable, ok := loc.find(ctx, t.Memory())
		glog.V(2).Infof("renesas: %s: %q valid=%t", loc.name, pnr.String(), ok)
		if !ok {
			continue
		}

		if search {
			if i == 0 {
				glog.Infof("renesas: found %s at %s with unrecognised part ID 0x%04x", pnr, loc.name, t.PartID)
			} else {
				t.Warn("Found renesas chip (%s) with pnr location %s and unsupported Part ID 0x%04x, please report it",
					pnr, loc.name, t.PartID)
			}
		}

		series, known := Classify(pnr)
		if !known {
			t.Warn("Found renesas chip (%s, PNR %s) with unsupported series and Part ID 0x%04x, please report it",
				pnr, pnr.Hex(), t.PartID)
			return nil, errors.NotSupportedf("series %s", series)
		}
		return newDevice(pnr, series, rootTable), nil
	}
	return nil, errors.NotFoundf("part numbering register (part ID 0x%04x)", t.PartID)
}
